// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

// Sanity is the pair of top-level well-formedness flags a fully-analyzed
// expression carries.
type Sanity struct {
	IsSaneSublevel bool
	IsSane         bool
}

// deriveSanity computes the sanity flags for a fully-analyzed node and, when
// it is not sane, the single diagnostic error describing why. The checks run
// in a fixed order so that a node failing more than one rule always reports
// the same error regardless of evaluation order: SiglessBranch, Malleable,
// RepeatedPubkeys, HeightTimelockCombination, NonTopLevel.
func deriveSanity(base BasicType, m Malleability, tl TimelockInfo, ks KeySet) (Sanity, error) {
	switch {
	case !m.Signed:
		return Sanity{}, scriptError(ErrSiglessBranch, "expression has no branch requiring a signature")
	case !m.NonMalleable:
		return Sanity{}, scriptError(ErrMalleable, "expression admits a malleable satisfaction")
	case ks.HasDuplicates:
		return Sanity{}, scriptError(ErrRepeatedPubkeys, "expression repeats a public key across branches")
	case tl.ContainsCombination:
		return Sanity{}, scriptError(ErrHeightTimelockCombination, "expression mixes height- and time-based timelocks")
	}

	if base != TypeB {
		return Sanity{IsSaneSublevel: true}, scriptError(ErrNonTopLevel, "expression's top-level basic type is not B")
	}

	return Sanity{IsSaneSublevel: true, IsSane: true}, nil
}
