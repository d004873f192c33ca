// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

// Package phfwd implements a dual-trie engine for phone-number forwarding
// rules: longest-prefix forward lookup, reverse lookup with lazy
// consistency repair, and a combinatorial count of non-trivial numbers.
//
// An [Engine] owns two coupled prefix trees over the 12-symbol alphabet
// '0'-'9', ':', ';'. The forward tree maps a source prefix to at most one
// target prefix; the reverse tree maps a target prefix to every source
// prefix that was ever forwarded onto it, pruning stale entries lazily as
// they are visited. The engine is not safe for concurrent use.
package phfwd

// Engine owns a pair of coupled prefix trees: forward maps a source
// number to the target it forwards to, reverse maps a target back to
// every source that (possibly, pending lazy pruning) forwards to it.
type Engine struct {
	forward *node
	reverse *node
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{
		forward: newNode(nil),
		reverse: newNode(nil),
	}
}

// Add registers a forwarding from source to target. It reports false if
// source or target is not a valid number, or if source equals target, and
// leaves the engine unchanged in that case. Adding a forwarding for a
// source that already has one replaces it.
//
// Add is not transactional: of the up to three writes it performs across the
// forward and reverse tries, a panic partway through (out-of-memory being
// the only realistic cause) leaves the engine in a partially updated
// state rather than rolling back.
func (e *Engine) Add(source, target string) bool {
	if !ValidNumber(source) || !ValidNumber(target) || source == target {
		return false
	}

	prevTarget := addText(e.forward, source, target, false)

	if prevTarget != nil {
		removeOneEntry(e.reverse, *prevTarget, source)
	}

	addText(e.reverse, target, source, true)
	return true
}

// Remove deletes the subtree rooted at prefix from the forward trie. It is
// a no-op if prefix is not a valid number or is not present in the
// forward trie. The reverse trie is not touched; entries it now holds that
// are no longer justified by the forward trie are pruned lazily, the next
// time Reverse visits their node.
func (e *Engine) Remove(prefix string) {
	if !ValidNumber(prefix) {
		return
	}
	n := e.forward.find(prefix)
	if n == nil {
		return
	}
	safeDeleteSubtree(e.forward, n)
}

// Get performs a longest-prefix forward lookup: it returns a one-element
// Sequence holding the rewrite of num under the deepest forwarding whose
// source is a prefix of num, or num itself if no forwarding applies. It
// returns an empty Sequence if num is not a valid number.
func (e *Engine) Get(num string) *Sequence {
	if !ValidNumber(num) {
		return newSequence()
	}

	cur := e.forward
	var deepest *node
	depth := 0
	if cur.data != nil {
		deepest = cur
	}

	for i := 0; i < len(num); i++ {
		child := cur.children[symbolIndex(num[i])]
		if child == nil {
			break
		}
		cur = child
		if cur.data != nil {
			deepest = cur
			depth = i + 1
		}
	}

	if deepest == nil {
		return newSequence(num)
	}
	return newSequence(deepest.data.text + num[depth:])
}

// Reverse performs a reverse lookup: every source prefix ever added that
// forwards onto a prefix of num, rewritten with the remainder of num, plus
// num itself. The result is sorted lexicographically and deduplicated. It
// returns an empty Sequence if num is not a valid number.
//
// Reverse mutates the reverse trie: stale entries encountered along the
// walk (whose witness has since been removed from the forward trie) are
// unlinked as they are found. This is the lazy consistency repair
// described by the package invariants; Reverse is a query with a write
// side effect on the reverse trie's shape.
func (e *Engine) Reverse(num string) *Sequence {
	if !ValidNumber(num) {
		return newSequence()
	}

	var results []string
	cur := e.reverse
	for i := 0; i < len(num); i++ {
		child := cur.children[symbolIndex(num[i])]
		if child == nil {
			break
		}
		cur = child
		prefix := num[:i+1]

		var prev *dataEntry
		entry := cur.data
		for entry != nil {
			if !valueUnderPrefix(e.forward, entry.text, &prefix) {
				next := entry.next
				if prev == nil {
					cur.data = next
				} else {
					prev.next = next
				}
				entry = next
				continue
			}
			results = append(results, entry.text+num[i+1:])
			prev = entry
			entry = entry.next
		}
	}

	results = append(results, num)

	s := newSequence(results...)
	s.sortAndDedup()
	return s
}

// NonTrivialCount counts the numbers of exactly len symbols, drawn only
// from the alphabet characters occurring in set, that are the result of
// some forwarding present in the engine. It returns 0 if the engine is
// nil, set contains no alphabet character, or len is zero.
func (e *Engine) NonTrivialCount(set string, length int) uint64 {
	if e == nil || length == 0 {
		return 0
	}
	mask, any := digitMask(set)
	if !any {
		return 0
	}
	c := uint64(popcount(mask))
	return nonTrivialCountAux(e.forward, e.reverse, mask, c, 0, uint64(length))
}

func nonTrivialCountAux(forward, cur *node, mask uint16, c uint64, depth, length uint64) uint64 {
	if containsLiveEntry(forward, cur) {
		return powMod(c, length-depth)
	}
	if depth == length {
		return 0
	}

	var total uint64
	for i := 0; i < alphabetSize; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if child := cur.children[i]; child != nil {
			total += nonTrivialCountAux(forward, child, mask, c, depth+1, length)
		}
	}
	return total
}

// powMod computes base^exp modulo 2^64 (i.e. with native uint64 wraparound)
// using fast exponentiation.
func powMod(base uint64, exp uint64) uint64 {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
