// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package phfwd

import "errors"

var (
	// ErrInvalidNumber is returned when a string does not satisfy the
	// alphabet rules required of a phone number (non-empty, every
	// character one of '0'-'9', ':', ';').
	ErrInvalidNumber = errors.New("phfwd: invalid phone number")
	// ErrIdenticalNumbers is returned by ValidateAdd when the source and
	// target numbers are identical.
	ErrIdenticalNumbers = errors.New("phfwd: source and target numbers are identical")
)
