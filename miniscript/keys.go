// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

// KeySet tracks every key identifier referenced anywhere in a subtree and
// whether any two of them collided. HasDuplicates is sticky: once set by a
// subtree it stays set as that subtree is folded into larger ones, even if
// the larger tree's own key set would otherwise look clean.
type KeySet struct {
	Keys          map[string]struct{}
	HasDuplicates bool
}

func newKeySet() KeySet {
	return KeySet{Keys: make(map[string]struct{})}
}

// deriveKeySet merges a leaf's own key identifiers (if any) with its
// children's key sets, latching HasDuplicates the moment the same identifier
// is seen twice anywhere in the combined subtree.
func deriveKeySet(n *Node, children []KeySet) KeySet {
	out := newKeySet()
	for _, c := range children {
		if c.HasDuplicates {
			out.HasDuplicates = true
		}
		for k := range c.Keys {
			if _, seen := out.Keys[k]; seen {
				out.HasDuplicates = true
			}
			out.Keys[k] = struct{}{}
		}
	}

	for _, k := range leafKeys(n) {
		if _, seen := out.Keys[k]; seen {
			out.HasDuplicates = true
		}
		out.Keys[k] = struct{}{}
	}

	return out
}

// leafKeys returns the key identifiers a node itself introduces, ignoring
// any carried by its children (those are folded in separately).
func leafKeys(n *Node) []string {
	switch n.Tag {
	case TagPkK, TagPkH:
		return []string{n.Key}
	case TagMulti, TagMultiA:
		return n.Keys
	default:
		return nil
	}
}
