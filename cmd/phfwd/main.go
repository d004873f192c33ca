// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

// Command phfwd runs the phone-number forwarding command-language
// interpreter over standard input, printing query results to standard
// output and reporting the first lexical or operation error (if any) to
// standard error.
package main

import (
	"os"

	"github.com/mdudzinski/phfwd/internal/prettylog"
)

func main() {
	handler := prettylog.NewHandler(os.Stderr, prettylog.WithLevel(levelFromEnv()))
	d := NewDriver(os.Stdin, WithLogger(handler))
	os.Exit(d.Run())
}

func levelFromEnv() string {
	return os.Getenv("PHFWD_LOG_LEVEL")
}
