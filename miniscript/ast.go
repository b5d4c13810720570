// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

// Tag is an enumeration for the closed set of Miniscript fragment and
// wrapper kinds a Node may carry.
type Tag byte

// The fragment and wrapper tags recognized by the parser, compiler, and
// analyzer. Surface-syntax sugars (pk, pkh, and_n, t:, l:, u:) are expanded
// to these at parse time and never appear in a parsed Node.
const (
	TagZero Tag = iota // 0
	TagOne             // 1

	TagPkK // pk_k(K)
	TagPkH // pk_h(K)

	TagOlder // older(n)
	TagAfter // after(n)

	TagSha256    // sha256(H)
	TagRipemd160 // ripemd160(H)
	TagHash256   // hash256(H)
	TagHash160   // hash160(H)

	TagMulti   // multi(k, keys...)
	TagMultiA  // multi_a(k, keys...)
	TagThresh  // thresh(k, subs...)

	TagAndV // and_v(X,Y)
	TagAndB // and_b(X,Y)
	TagOrB  // or_b(X,Y)
	TagOrC  // or_c(X,Y)
	TagOrD  // or_d(X,Y)
	TagOrI  // or_i(X,Y)
	TagAndOr // andor(X,Y,Z)

	// Wrappers, one child each.
	TagWrapA
	TagWrapS
	TagWrapC
	TagWrapD
	TagWrapV
	TagWrapJ
	TagWrapN
)

var tagNames = map[Tag]string{
	TagZero:      "0",
	TagOne:       "1",
	TagPkK:       "pk_k",
	TagPkH:       "pk_h",
	TagOlder:     "older",
	TagAfter:     "after",
	TagSha256:    "sha256",
	TagRipemd160: "ripemd160",
	TagHash256:   "hash256",
	TagHash160:   "hash160",
	TagMulti:     "multi",
	TagMultiA:    "multi_a",
	TagThresh:    "thresh",
	TagAndV:      "and_v",
	TagAndB:      "and_b",
	TagOrB:       "or_b",
	TagOrC:       "or_c",
	TagOrD:       "or_d",
	TagOrI:       "or_i",
	TagAndOr:     "andor",
	TagWrapA:     "a",
	TagWrapS:     "s",
	TagWrapC:     "c",
	TagWrapD:     "d",
	TagWrapV:     "v",
	TagWrapJ:     "j",
	TagWrapN:     "n",
}

// String returns the canonical fragment name of the tag. If the tag is
// unknown, "invalid" is returned.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "invalid"
}

// wrapperTags maps a single wrapper letter to its Tag, per the wrapper
// alphabet {a,s,c,d,v,j,n}. The sugar wrappers t, l, u are expanded by the
// parser directly into and_v/or_i combinators rather than into a Tag here.
var wrapperTags = map[byte]Tag{
	'a': TagWrapA,
	's': TagWrapS,
	'c': TagWrapC,
	'd': TagWrapD,
	'v': TagWrapV,
	'j': TagWrapJ,
	'n': TagWrapN,
}

// Node is an immutable Miniscript AST node. Its meaning depends on Tag:
// leaves carry Key/Value, thresholds and multisig fragments carry K/Keys,
// and combinators carry Children in left-to-right order. Nodes are never
// mutated once returned by Parse and may be freely shared.
type Node struct {
	Tag Tag

	// Key holds the single key identifier for pk_k/pk_h.
	Key string

	// Value holds the decimal integer literal for older/after, or the hex
	// digest for sha256/ripemd160/hash256/hash160.
	Value string

	// K holds the decimal threshold count for multi/multi_a/thresh.
	K string

	// Keys holds the ordered key identifiers for multi/multi_a.
	Keys []string

	// Children holds the ordered sub-expressions for combinators
	// (2 for and_v/and_b/or_b/or_c/or_d/or_i, 3 for andor, 1 for wrappers,
	// N for thresh).
	Children []*Node
}

// newLeaf builds a zero-arity node.
func newLeaf(tag Tag) *Node {
	return &Node{Tag: tag}
}
