// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strconv"

// Malleability tracks whether a fragment's satisfaction can be altered by a
// third party without invalidating it.
type Malleability struct {
	Signed       bool
	Forced       bool
	Expressive   bool
	NonMalleable bool
}

// deriveMalleability computes the malleability record for a node given its
// children's records. Where a combinator's exact formula is left
// underdetermined, this applies the counting argument used throughout
// Miniscript's malleability tables (an AND-shaped combinator is signed if
// either side is; an OR-shaped one only if both are), documented in
// DESIGN.md.
func deriveMalleability(n *Node, children []Malleability) Malleability {
	switch n.Tag {
	case TagZero:
		return Malleability{Signed: true, Expressive: true, NonMalleable: true}

	case TagOne:
		return Malleability{Forced: true, NonMalleable: true}

	case TagPkK, TagPkH, TagMulti, TagMultiA:
		return Malleability{Signed: true, Expressive: true, NonMalleable: true}

	case TagSha256, TagRipemd160, TagHash256, TagHash160:
		return Malleability{NonMalleable: true}

	case TagOlder, TagAfter:
		return Malleability{Forced: true, NonMalleable: true}

	case TagWrapA, TagWrapS, TagWrapN:
		return children[0]

	case TagWrapC:
		c := children[0]
		return Malleability{Signed: true, Forced: c.Forced, Expressive: c.Expressive, NonMalleable: c.NonMalleable}

	case TagWrapV:
		c := children[0]
		return Malleability{Signed: c.Signed, Forced: true, NonMalleable: c.NonMalleable}

	case TagWrapD, TagWrapJ:
		c := children[0]
		return Malleability{Signed: c.Signed, Expressive: true, NonMalleable: c.NonMalleable}

	case TagAndB:
		x, y := children[0], children[1]
		return Malleability{
			Signed:       x.Signed || y.Signed,
			Forced:       x.Forced || y.Forced,
			Expressive:   x.Expressive && y.Forced,
			NonMalleable: x.NonMalleable && y.NonMalleable,
		}

	case TagAndV:
		x, y := children[0], children[1]
		return Malleability{
			Signed:       x.Signed || y.Signed,
			Forced:       y.Forced,
			NonMalleable: x.NonMalleable && y.NonMalleable,
		}

	case TagOrB:
		x, z := children[0], children[1]
		return Malleability{
			Signed:       x.Signed && z.Signed,
			Forced:       x.Forced && z.Forced,
			Expressive:   (x.Expressive && z.Forced) || (z.Expressive && x.Forced),
			NonMalleable: x.NonMalleable && z.NonMalleable && (x.Expressive || z.Expressive),
		}

	case TagOrC:
		x, z := children[0], children[1]
		return Malleability{
			Signed:       x.Signed && z.Signed,
			Forced:       z.Forced,
			NonMalleable: x.NonMalleable && z.NonMalleable && (x.Expressive || z.Forced),
		}

	case TagOrD:
		x, z := children[0], children[1]
		return Malleability{
			Signed:       x.Signed && z.Signed,
			Forced:       x.Forced && z.Forced,
			Expressive:   z.Expressive || (x.Expressive && z.Forced),
			NonMalleable: x.NonMalleable && z.NonMalleable && (x.Expressive || z.Expressive),
		}

	case TagOrI:
		x, z := children[0], children[1]
		return Malleability{
			Signed:       x.Signed && z.Signed,
			Forced:       x.Forced && z.Forced,
			Expressive:   x.Expressive || z.Expressive,
			NonMalleable: x.NonMalleable && z.NonMalleable,
		}

	case TagAndOr:
		x, y, z := children[0], children[1], children[2]
		return Malleability{
			Signed:       (x.Signed || y.Signed) && z.Signed,
			Forced:       z.Forced,
			Expressive:   z.Expressive || (x.Forced && y.Expressive),
			NonMalleable: x.NonMalleable && y.NonMalleable && z.NonMalleable && (y.Expressive || z.Expressive || x.Forced),
		}

	case TagThresh:
		numSubs := len(children)
		k, _ := strconv.Atoi(n.K)
		signedCount, forcedCount, expressiveCount := 0, 0, 0
		allNonMalleable := true
		for _, c := range children {
			if c.Signed {
				signedCount++
			}
			if c.Forced {
				forcedCount++
			}
			if c.Expressive {
				expressiveCount++
			}
			allNonMalleable = allNonMalleable && c.NonMalleable
		}
		need := numSubs - k + 1
		return Malleability{
			Signed:       signedCount >= need,
			Forced:       forcedCount >= need,
			Expressive:   expressiveCount >= k,
			NonMalleable: allNonMalleable && expressiveCount >= k,
		}

	default:
		return Malleability{}
	}
}
