// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package phfwd

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func firstOf(t *testing.T, s *Sequence) string {
	t.Helper()
	v, ok := s.At(0)
	require.True(t, ok)
	return v
}

func allOf(s *Sequence) []string {
	var out []string
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

func TestEngine_LongestMatch(t *testing.T) {
	e := New()
	require.True(t, e.Add("12", "500"))
	require.True(t, e.Add("1234", "900"))

	require.Equal(t, "900056", firstOf(t, e.Get("123456")))
	require.Equal(t, "50099", firstOf(t, e.Get("1299")))
	require.Equal(t, "9", firstOf(t, e.Get("9")))
}

func TestEngine_ReplacementAndReverseCleanup(t *testing.T) {
	e := New()
	require.True(t, e.Add("5", "77"))
	require.True(t, e.Add("5", "88"))

	require.Equal(t, "88", firstOf(t, e.Get("5")))
	require.Equal(t, []string{"77"}, allOf(e.Reverse("77")))
	require.Equal(t, []string{"5", "88"}, allOf(e.Reverse("88")))
}

func TestEngine_SubtreeRemovalAndLazyReverse(t *testing.T) {
	e := New()
	require.True(t, e.Add("12", "34"))
	require.True(t, e.Add("125", "99"))
	e.Remove("12")

	require.Equal(t, "12999", firstOf(t, e.Get("12999")))
	require.Equal(t, []string{"34"}, allOf(e.Reverse("34")))
	require.Equal(t, []string{"99"}, allOf(e.Reverse("99")))
}

func TestEngine_ReverseSortsAndDedups(t *testing.T) {
	e := New()
	require.True(t, e.Add("1", "2"))
	require.True(t, e.Add("11", "2"))

	require.Equal(t, []string{"1", "11", "2"}, allOf(e.Reverse("2")))
}

func TestEngine_NonTrivialCount(t *testing.T) {
	e := New()
	require.Equal(t, uint64(0), e.NonTrivialCount("0123456789", 5))

	require.True(t, e.Add("07", "99"))
	require.Equal(t, uint64(1), e.NonTrivialCount("9", 3))
	require.Equal(t, uint64(2), e.NonTrivialCount("89", 3))
	require.Equal(t, uint64(1), e.NonTrivialCount("9", 2))
}

func TestEngine_ReverseNonDecimalSymbols(t *testing.T) {
	e := New()
	require.True(t, e.Add(":", ";"))
	require.Equal(t, []string{":", ";"}, allOf(e.Reverse(";")))
}

func TestEngine_AddRejectsInvalidOrIdentical(t *testing.T) {
	e := New()
	require.False(t, e.Add("", "1"))
	require.False(t, e.Add("1", ""))
	require.False(t, e.Add("12<", "34"))
	require.False(t, e.Add("123", "123"))
}

func TestEngine_GetWithNoMatchReturnsNumUnchanged(t *testing.T) {
	e := New()
	require.Equal(t, "555", firstOf(t, e.Get("555")))
}

func TestEngine_GetReturnsExactlyOneResult(t *testing.T) {
	e := New()
	require.True(t, e.Add("1", "2"))
	require.Equal(t, 1, e.Get("123").Len())
	require.Equal(t, 1, e.Get("999").Len())
}

func TestEngine_GetInvalidReturnsEmptySequence(t *testing.T) {
	e := New()
	require.Equal(t, 0, e.Get("ab").Len())
	require.Equal(t, 0, e.Reverse("ab").Len())
}

func TestEngine_ReverseContainsIdentity(t *testing.T) {
	e := New()
	for _, n := range []string{"1", "12", "999", ";:0"} {
		results := allOf(e.Reverse(n))
		require.Contains(t, results, n)
	}
}

func TestEngine_RemoveIdempotent(t *testing.T) {
	e := New()
	require.True(t, e.Add("12", "34"))
	e.Remove("12")
	require.NotPanics(t, func() { e.Remove("12") })
	require.Equal(t, "12", firstOf(t, e.Get("12")))
}

func TestEngine_RemoveInvalidIsNoop(t *testing.T) {
	e := New()
	require.True(t, e.Add("12", "34"))
	require.NotPanics(t, func() { e.Remove("ab") })
	require.Equal(t, "34", firstOf(t, e.Get("12")))
}

func TestEngine_AddReplacementLeavesForwardAsIfOnlySecondAddHappened(t *testing.T) {
	a := New()
	require.True(t, a.Add("1", "3"))

	b := New()
	require.True(t, b.Add("1", "4"))
	require.True(t, b.Add("1", "3"))

	require.Equal(t, firstOf(t, a.Get("123")), firstOf(t, b.Get("123")))
}

func TestEngine_NonTrivialCountZeroLength(t *testing.T) {
	e := New()
	require.True(t, e.Add("1", "2"))
	require.Equal(t, uint64(0), e.NonTrivialCount("0123456789:;", 0))
}

func TestEngine_NonTrivialCountEmptySetIsZero(t *testing.T) {
	e := New()
	require.True(t, e.Add("1", "2"))
	require.Equal(t, uint64(0), e.NonTrivialCount("xyz", 5))
}

func TestPowMod_MatchesNaiveForSmallExponents(t *testing.T) {
	for base := uint64(0); base < 16; base++ {
		for exp := uint64(0); exp < 12; exp++ {
			want := uint64(1)
			for i := uint64(0); i < exp; i++ {
				want *= base
			}
			require.Equal(t, want, powMod(base, exp))
		}
	}
}

func FuzzEngine_AddNeverPanics(f *testing.F) {
	f.Add("12", "34")
	f.Add("", "")
	f.Add("1", "1")
	f.Add(":;", "09")
	f.Fuzz(func(t *testing.T, source, target string) {
		e := New()
		require.NotPanics(t, func() {
			e.Add(source, target)
			e.Get(source)
			e.Reverse(target)
			e.Remove(source)
		})
	})
}

func TestEngine_RandomDistinctPrefixesRoundTripThroughGet(t *testing.T) {
	fz := fuzz.New().NilChance(0).NumElements(1, 6)
	const alphabet = "0123456789:;"

	e := New()
	seen := make(map[string]string)
	for i := 0; i < 20; i++ {
		var idx []uint8
		fz.Fuzz(&idx)
		if len(idx) == 0 {
			continue
		}
		src := make([]byte, len(idx))
		for j, v := range idx {
			src[j] = alphabet[int(v)%len(alphabet)]
		}
		// prefix every source with a marker digit and a '9'. Markers repeat
		// every 10 iterations, so one source may extend another; Get of a
		// source still returns its own target, since that is the longest match.
		source := string(rune('0'+i%10)) + "9" + string(src)
		target := string(src) + "9"
		if source == target {
			continue
		}
		require.True(t, e.Add(source, target))
		seen[source] = target
	}

	for source, target := range seen {
		require.Equal(t, target, firstOf(t, e.Get(source)))
	}
}
