// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package phfwd

// dataEntry is one cell of a node's singly linked payload list.
type dataEntry struct {
	text string
	next *dataEntry
}

// node is a single vertex of a prefix tree over the 12-symbol alphabet.
// Every non-root node is reachable from its parent through exactly one
// child slot, and nonNullChild always equals the number of non-nil
// entries in children, so emptiness is an O(1) test.
type node struct {
	children     [alphabetSize]*node
	nonNullChild int
	parent       *node
	data         *dataEntry
}

func newNode(parent *node) *node {
	return &node{parent: parent}
}

// isEmpty reports whether the node carries no payload and has no children,
// i.e. it exists purely as a dead ancestor.
func (n *node) isEmpty() bool {
	return n.data == nil && n.nonNullChild == 0
}

// setChild installs child at slot idx, maintaining nonNullChild.
func (n *node) setChild(idx int, child *node) {
	if n.children[idx] == nil && child != nil {
		n.nonNullChild++
	} else if n.children[idx] != nil && child == nil {
		n.nonNullChild--
	}
	n.children[idx] = child
}

// childSlot returns the index at which n is registered in parent's
// children array, or -1 if n is not among parent's children.
func childSlot(parent, n *node) int {
	for i, c := range parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// walk follows path from n, creating any missing intermediate nodes, and
// returns the terminal node.
func (n *node) walk(path string) *node {
	cur := n
	for i := 0; i < len(path); i++ {
		idx := symbolIndex(path[i])
		child := cur.children[idx]
		if child == nil {
			child = newNode(cur)
			cur.setChild(idx, child)
		}
		cur = child
	}
	return cur
}

// find follows path from n without creating nodes, returning nil if the
// path breaks before path is exhausted.
func (n *node) find(path string) *node {
	cur := n
	for i := 0; i < len(path) && cur != nil; i++ {
		cur = cur.children[symbolIndex(path[i])]
	}
	return cur
}

// valueUnderPrefix walks the tree along prefix and reports whether its
// data list is non-empty (value == nil) or contains an entry equal to
// value.
func valueUnderPrefix(root *node, prefix string, value *string) bool {
	n := root.find(prefix)
	if n == nil {
		return false
	}
	if value == nil {
		return n.data != nil
	}
	for d := n.data; d != nil; d = d.next {
		if d.text == *value {
			return true
		}
	}
	return false
}

// containsLiveEntry iterates n's data list, checking each payload a against
// witness (the forward trie's root) via valueUnderPrefix(witness, a, nil) --
// i.e. "does the forward trie store any target at path a". Entries that
// fail this check are stale and are unlinked immediately (lazy physical
// deletion). Returns true as soon as a surviving entry is found.
func containsLiveEntry(witness *node, n *node) bool {
	var prev *dataEntry
	cur := n.data
	for cur != nil {
		if valueUnderPrefix(witness, cur.text, nil) {
			return true
		}
		next := cur.next
		if prev == nil {
			n.data = next
		} else {
			prev.next = next
		}
		cur = next
	}
	return false
}

// addText walks/creates the path spelled by text and installs payload at
// the terminal node. If append is false, any single existing entry is
// detached into prevPayload and replaced by payload. If append is true,
// payload is linked at the tail of the (possibly empty) list.
func addText(root *node, text string, payload string, appendEntry bool) (prevPayload *string) {
	n := root.walk(text)
	entry := &dataEntry{text: payload}

	if n.data == nil {
		n.data = entry
		return nil
	}

	if appendEntry {
		tail := n.data
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = entry
		return nil
	}

	prev := n.data.text
	n.data = entry
	return &prev
}

// removeOneEntry walks the path text (which must exist) and unlinks the
// single data-list cell whose text equals entryToRemove (which must
// exist). If the node's list becomes empty and it has no children,
// safeDeleteSubtree is invoked on it.
func removeOneEntry(treeRoot *node, text string, entryToRemove string) {
	n := treeRoot.find(text)
	if n == nil {
		panic("phfwd: removeOneEntry called for a non-existent path")
	}

	var prev *dataEntry
	cur := n.data
	for cur != nil && cur.text != entryToRemove {
		prev = cur
		cur = cur.next
	}
	if cur == nil {
		panic("phfwd: removeOneEntry called for a non-existent entry")
	}

	if prev == nil {
		n.data = cur.next
	} else {
		prev.next = cur.next
	}

	if n.data == nil && n.nonNullChild == 0 {
		safeDeleteSubtree(treeRoot, n)
	}
}

// safeDeleteSubtree removes rootToDelete from the tree rooted at treeRoot,
// trimming dead ancestor chains along the way: nodes that exist only to
// carry the single path down to the deleted subtree are collected too.
func safeDeleteSubtree(treeRoot, rootToDelete *node) {
	if rootToDelete == treeRoot {
		*treeRoot = node{}
		return
	}

	for rootToDelete.parent != treeRoot &&
		rootToDelete.parent.nonNullChild == 1 &&
		rootToDelete.parent.data == nil {
		rootToDelete = rootToDelete.parent
	}

	parent := rootToDelete.parent
	slot := childSlot(parent, rootToDelete)
	parent.setChild(slot, nil)
}
