// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package phfwd

import (
	"iter"
	"sort"

	"github.com/mdudzinski/phfwd/internal/iterutil"
)

// Sequence is an ordered, deduplicated sequence of phone numbers, as
// produced by [Engine.Get] and [Engine.Reverse]. The zero value is an
// empty sequence; Sequence values are never constructed directly by
// callers.
type Sequence struct {
	numbers []string
}

func newSequence(numbers ...string) *Sequence {
	return &Sequence{numbers: numbers}
}

// Len returns the number of strings held by s.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.numbers)
}

// At returns the i-th string, or "" and false if idx is out of range.
func (s *Sequence) At(idx int) (string, bool) {
	if s == nil || idx < 0 || idx >= len(s.numbers) {
		return "", false
	}
	return s.numbers[idx], true
}

// All returns an iterator over the sequence's entries in order.
func (s *Sequence) All() iter.Seq[string] {
	if s == nil {
		return iterutil.SeqOf[string]()
	}
	return iterutil.SeqOf(s.numbers...)
}

// sortAndDedup sorts s's entries lexicographically over the alphabet's
// natural byte order and removes adjacent duplicates.
func (s *Sequence) sortAndDedup() {
	sort.Strings(s.numbers)
	if len(s.numbers) == 0 {
		return
	}
	write := 0
	for read := 1; read < len(s.numbers); read++ {
		if s.numbers[read] != s.numbers[write] {
			write++
			s.numbers[write] = s.numbers[read]
		}
	}
	s.numbers = s.numbers[:write+1]
}
