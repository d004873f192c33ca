// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

package phfwd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_WalkCreatesPath(t *testing.T) {
	root := newNode(nil)
	n := root.walk("123")
	require.NotNil(t, n)
	require.Same(t, n, root.find("123"))
	require.True(t, n.isEmpty())
}

func TestNode_FindMissingReturnsNil(t *testing.T) {
	root := newNode(nil)
	root.walk("12")
	require.Nil(t, root.find("13"))
	require.Nil(t, root.find("123"))
}

func TestNode_SetChildMaintainsCount(t *testing.T) {
	root := newNode(nil)
	child := newNode(root)
	root.setChild(0, child)
	require.Equal(t, 1, root.nonNullChild)
	root.setChild(0, nil)
	require.Equal(t, 0, root.nonNullChild)
}

func TestAddText_FirstInsertSetsData(t *testing.T) {
	root := newNode(nil)
	prev := addText(root, "12", "34", false)
	require.Nil(t, prev)
	n := root.find("12")
	require.Equal(t, "34", n.data.text)
	require.Nil(t, n.data.next)
}

func TestAddText_ReplaceReturnsPrevious(t *testing.T) {
	root := newNode(nil)
	addText(root, "5", "77", false)
	prev := addText(root, "5", "88", false)
	require.NotNil(t, prev)
	require.Equal(t, "77", *prev)
	require.Equal(t, "88", root.find("5").data.text)
}

func TestAddText_AppendBuildsList(t *testing.T) {
	root := newNode(nil)
	addText(root, "2", "1", true)
	addText(root, "2", "11", true)
	n := root.find("2")
	var got []string
	for d := n.data; d != nil; d = d.next {
		got = append(got, d.text)
	}
	require.Equal(t, []string{"1", "11"}, got)
}

func TestRemoveOneEntry_UnlinksAndCollapsesEmptyNode(t *testing.T) {
	root := newNode(nil)
	addText(root, "12", "x", true)
	removeOneEntry(root, "12", "x")
	require.Nil(t, root.find("12"))
}

func TestRemoveOneEntry_PanicsOnMissingPath(t *testing.T) {
	root := newNode(nil)
	require.Panics(t, func() {
		removeOneEntry(root, "12", "x")
	})
}

func TestRemoveOneEntry_PanicsOnMissingEntry(t *testing.T) {
	root := newNode(nil)
	addText(root, "12", "x", true)
	require.Panics(t, func() {
		removeOneEntry(root, "12", "y")
	})
}

func TestSafeDeleteSubtree_StopsAtPayloadAncestor(t *testing.T) {
	root := newNode(nil)
	addText(root, "125", "99", false) // creates 1 -> 2 -> 5, payload at 5
	addText(root, "12", "34", false)  // payload at 2 as well

	n125 := root.find("125")
	safeDeleteSubtree(root, n125)

	// "12" still has a payload, so it must survive.
	require.NotNil(t, root.find("12"))
	require.Nil(t, root.find("125"))
}

func TestSafeDeleteSubtree_RootCase(t *testing.T) {
	root := newNode(nil)
	addText(root, "1", "2", false)
	safeDeleteSubtree(root, root)
	require.True(t, root.isEmpty())
}

func TestSafeDeleteSubtree_ClimbsPureAncestorChain(t *testing.T) {
	root := newNode(nil)
	// "1234" is the only path; every ancestor along it is a dead,
	// single-child, payload-less node once the leaf payload is gone.
	n := root.walk("1234")
	n.data = &dataEntry{text: "z"}

	safeDeleteSubtree(root, n)
	require.True(t, root.isEmpty())
}

func TestValueUnderPrefix(t *testing.T) {
	root := newNode(nil)
	addText(root, "9", "a", true)
	addText(root, "9", "b", true)

	require.True(t, valueUnderPrefix(root, "9", nil))
	require.False(t, valueUnderPrefix(root, "8", nil))

	val := "a"
	require.True(t, valueUnderPrefix(root, "9", &val))
	val = "c"
	require.False(t, valueUnderPrefix(root, "9", &val))
}

func TestContainsLiveEntry_PrunesStaleEntries(t *testing.T) {
	forward := newNode(nil)
	addText(forward, "5", "live", false)

	reverseLeaf := newNode(nil)
	reverseLeaf.data = &dataEntry{text: "8", next: &dataEntry{text: "5"}}

	require.True(t, containsLiveEntry(forward, reverseLeaf))

	var texts []string
	for d := reverseLeaf.data; d != nil; d = d.next {
		texts = append(texts, d.text)
	}
	require.Equal(t, []string{"5"}, texts)
}

func TestContainsLiveEntry_AllStaleReturnsFalse(t *testing.T) {
	forward := newNode(nil)
	n := newNode(nil)
	n.data = &dataEntry{text: "9"}

	require.False(t, containsLiveEntry(forward, n))
	require.Nil(t, n.data)
}
