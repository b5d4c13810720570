// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "github.com/thoughtnetwork/miniscript/miniscript/bip68"

// LockType selects which of the two incompatible numeric domains a locktime
// value belongs to.
type LockType int

const (
	// LockAbsolute is nLockTime: a block height below lockTimeThreshold, or
	// a median-time-past seconds value at or above it.
	LockAbsolute LockType = iota

	// LockRelative is nSequence, BIP-68 encoded as either a block count or
	// a 512-second-granularity time value.
	LockRelative
)

// lockTimeThreshold is the boundary between block-height and
// median-time-past interpretations of an absolute locktime value.
const lockTimeThreshold = 500000000

// Bip68Decoder is the single primitive the core consumes to interpret an
// nSequence value's BIP-68 semantics. Callers may supply one through
// Options.Decode; when they don't, miniscript/bip68's reference decoder is
// used (see bip68DefaultDecode). This package never reimplements the codec
// itself.
type Bip68Decoder func(sequence uint32) (bip68.Decoded, error)

// maxLock combines two optional lock values of the same LockType into their
// maximum, rejecting any mix of incompatible units.
func maxLock(a, b *uint32, t LockType, decode Bip68Decoder) (*uint32, error) {
	if a == nil {
		return cloneUint32(b), validateLock(b, t, decode)
	}
	if b == nil {
		return cloneUint32(a), validateLock(a, t, decode)
	}

	switch t {
	case LockAbsolute:
		aIsHeight := *a < lockTimeThreshold
		bIsHeight := *b < lockTimeThreshold
		if aIsHeight != bIsHeight {
			return nil, scriptError(ErrHeightTimelockCombination,
				"cannot combine a block-height absolute locktime with a median-time-past one")
		}
	case LockRelative:
		da, err := decode(*a)
		if err != nil {
			return nil, wrapScriptError(ErrBadBip68, "invalid relative locktime operand", err)
		}
		db, err := decode(*b)
		if err != nil {
			return nil, wrapScriptError(ErrBadBip68, "invalid relative locktime operand", err)
		}
		if (da.Blocks == nil) != (db.Blocks == nil) {
			return nil, scriptError(ErrHeightTimelockCombination,
				"cannot combine a block-based relative locktime with a time-based one")
		}
	}

	if *a >= *b {
		return cloneUint32(a), nil
	}
	return cloneUint32(b), nil
}

// validateLock checks a single (possibly nil) lock value against its type's
// well-formedness rules without needing to compare it to anything else.
func validateLock(v *uint32, t LockType, decode Bip68Decoder) error {
	if v == nil {
		return nil
	}
	if t == LockRelative {
		if _, err := decode(*v); err != nil {
			return wrapScriptError(ErrBadBip68, "invalid relative locktime operand", err)
		}
	}
	return nil
}

// bip68DefaultDecode adapts bip68.DefaultDecoder to the Bip68Decoder shape
// for callers that don't supply their own collaborator.
func bip68DefaultDecode(sequence uint32) (bip68.Decoded, error) {
	return bip68.DefaultDecoder(sequence)
}

func cloneUint32(v *uint32) *uint32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
