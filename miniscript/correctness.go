// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strconv"

// BasicType is the correctness type's base classification.
type BasicType byte

// The four correctness base types.
const (
	// TypeB is a fragment leaving a boolean on the stack.
	TypeB BasicType = iota
	// TypeK is a fragment leaving a public key on the stack.
	TypeK
	// TypeV is a "verify" fragment: never leaves anything, aborts on
	// failure.
	TypeV
	// TypeW is a "wrapped" boolean fragment expecting one extra stack
	// item below it (used on the non-leftmost branch of and_b/or_b).
	TypeW
)

var basicTypeNames = [...]string{"B", "K", "V", "W"}

// String returns the one-letter name of the basic type.
func (b BasicType) String() string {
	if int(b) < len(basicTypeNames) {
		return basicTypeNames[b]
	}
	return "?"
}

// Correctness is the correctness record tracking a fragment's stack shape
// and the guarantees its satisfaction carries.
type Correctness struct {
	Base           BasicType
	ZeroArg        bool
	OneArg         bool
	NonZero        bool
	Dissatisfiable bool
	Unit           bool
}

// deriveCorrectness computes the correctness record for a node given its
// already-computed children, per the fragment type-inference rules. It
// returns an Error identifying which rule was violated when the node is
// ill-typed.
func deriveCorrectness(n *Node, children []Correctness, ctx ScriptContext) (Correctness, error) {
	switch n.Tag {
	case TagZero:
		return Correctness{Base: TypeB, ZeroArg: true, Dissatisfiable: true, Unit: true}, nil

	case TagOne:
		return Correctness{Base: TypeB, ZeroArg: true, Unit: true}, nil

	case TagPkK:
		return Correctness{Base: TypeK, OneArg: true, NonZero: true, Dissatisfiable: true, Unit: true}, nil

	case TagPkH:
		return Correctness{Base: TypeK, NonZero: true, Dissatisfiable: true, Unit: true}, nil

	case TagOlder, TagAfter:
		return Correctness{Base: TypeB, ZeroArg: true}, nil

	case TagSha256, TagRipemd160, TagHash256, TagHash160:
		return Correctness{Base: TypeB, OneArg: true, NonZero: true, Dissatisfiable: true, Unit: true}, nil

	case TagMulti:
		if err := validateThreshold(n.K, len(n.Keys)); err != nil {
			return Correctness{}, err
		}
		return Correctness{Base: TypeB, NonZero: true, Dissatisfiable: true, Unit: true}, nil

	case TagMultiA:
		if err := validateThreshold(n.K, len(n.Keys)); err != nil {
			return Correctness{}, err
		}
		return Correctness{Base: TypeB, Dissatisfiable: true, Unit: true}, nil

	case TagWrapA:
		c := children[0]
		if c.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "a: requires a B-typed child")
		}
		c.Base = TypeW
		return c, nil

	case TagWrapS:
		c := children[0]
		if c.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "s: requires a B-typed child")
		}
		if !c.OneArg {
			return Correctness{}, scriptError(ErrSwapNonOne, "s: requires a one-arg child")
		}
		return Correctness{Base: TypeW, NonZero: c.NonZero, Dissatisfiable: c.Dissatisfiable, Unit: true}, nil

	case TagWrapC:
		c := children[0]
		if c.Base != TypeK {
			return Correctness{}, scriptError(ErrChildBase1, "c: requires a K-typed child")
		}
		return Correctness{Base: TypeB, ZeroArg: c.ZeroArg, OneArg: c.OneArg, NonZero: c.NonZero, Dissatisfiable: c.Dissatisfiable, Unit: true}, nil

	case TagWrapV:
		c := children[0]
		if c.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "v: requires a B-typed child")
		}
		return Correctness{Base: TypeV, ZeroArg: c.ZeroArg, OneArg: c.OneArg, NonZero: c.NonZero}, nil

	case TagWrapD:
		c := children[0]
		if c.Base != TypeV {
			return Correctness{}, scriptError(ErrChildBase1, "d: requires a V-typed child")
		}
		if !c.ZeroArg {
			return Correctness{}, scriptError(ErrNonZeroDupIf, "d: requires a zero-arg child")
		}
		return Correctness{Base: TypeB, OneArg: true, Dissatisfiable: true, Unit: ctx.MinimalIf}, nil

	case TagWrapJ:
		c := children[0]
		if c.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "j: requires a B-typed child")
		}
		if !c.NonZero {
			return Correctness{}, scriptError(ErrNonZeroZero, "j: requires a nonzero child")
		}
		return Correctness{Base: TypeB, OneArg: c.OneArg, NonZero: true, Dissatisfiable: true, Unit: c.Unit}, nil

	case TagWrapN:
		c := children[0]
		if c.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "n: requires a B-typed child")
		}
		c.Unit = true
		return c, nil

	case TagAndB:
		x, y := children[0], children[1]
		if x.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "and_b requires a B-typed left child")
		}
		if y.Base != TypeW {
			return Correctness{}, scriptError(ErrChildBase2, "and_b requires a W-typed right child")
		}
		return Correctness{
			Base:           TypeB,
			ZeroArg:        x.ZeroArg && y.ZeroArg,
			OneArg:         (x.ZeroArg && y.OneArg) || (x.OneArg && y.ZeroArg),
			NonZero:        x.NonZero || (x.ZeroArg && y.NonZero),
			Dissatisfiable: x.Dissatisfiable && y.Dissatisfiable,
			Unit:           true,
		}, nil

	case TagAndV:
		x, y := children[0], children[1]
		if x.Base != TypeV {
			return Correctness{}, scriptError(ErrChildBase1, "and_v requires a V-typed left child")
		}
		if y.Base != TypeB && y.Base != TypeK && y.Base != TypeV {
			return Correctness{}, scriptError(ErrChildBase2, "and_v requires a B/K/V-typed right child")
		}
		return Correctness{
			Base:    y.Base,
			ZeroArg: x.ZeroArg && y.ZeroArg,
			OneArg:  (x.ZeroArg && y.OneArg) || (x.OneArg && y.ZeroArg),
			NonZero: x.NonZero || (x.ZeroArg && y.NonZero),
			Unit:    y.Unit,
		}, nil

	case TagOrB:
		x, z := children[0], children[1]
		if x.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "or_b requires a B-typed left child")
		}
		if z.Base != TypeW {
			return Correctness{}, scriptError(ErrChildBase2, "or_b requires a W-typed right child")
		}
		if !x.Dissatisfiable {
			return Correctness{}, scriptError(ErrLeftNotDissatisfiable, "or_b requires a dissatisfiable left child")
		}
		if !z.Dissatisfiable {
			return Correctness{}, scriptError(ErrRightNotDissatisfiable, "or_b requires a dissatisfiable right child")
		}
		return Correctness{
			Base:           TypeB,
			ZeroArg:        x.ZeroArg && z.ZeroArg,
			OneArg:         (x.ZeroArg && z.OneArg) || (x.OneArg && z.ZeroArg),
			NonZero:        x.NonZero && z.NonZero,
			Dissatisfiable: true,
			Unit:           true,
		}, nil

	case TagOrC:
		x, z := children[0], children[1]
		if x.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "or_c requires a B-typed left child")
		}
		if z.Base != TypeV {
			return Correctness{}, scriptError(ErrChildBase2, "or_c requires a V-typed right child")
		}
		if !x.Dissatisfiable {
			return Correctness{}, scriptError(ErrLeftNotDissatisfiable, "or_c requires a dissatisfiable left child")
		}
		if !x.Unit {
			return Correctness{}, scriptError(ErrLeftNotUnit, "or_c requires a unit left child")
		}
		return Correctness{
			Base:    TypeV,
			ZeroArg: x.ZeroArg && z.ZeroArg,
			OneArg:  (x.ZeroArg && z.OneArg) || (x.OneArg && z.ZeroArg),
			NonZero: x.NonZero && z.NonZero,
		}, nil

	case TagOrD:
		x, z := children[0], children[1]
		if x.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "or_d requires a B-typed left child")
		}
		if z.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase2, "or_d requires a B-typed right child")
		}
		if !x.Dissatisfiable {
			return Correctness{}, scriptError(ErrLeftNotDissatisfiable, "or_d requires a dissatisfiable left child")
		}
		if !x.Unit {
			return Correctness{}, scriptError(ErrLeftNotUnit, "or_d requires a unit left child")
		}
		return Correctness{
			Base:           TypeB,
			ZeroArg:        x.ZeroArg && z.ZeroArg,
			OneArg:         (x.ZeroArg && z.OneArg) || (x.OneArg && z.ZeroArg),
			NonZero:        x.NonZero && z.NonZero,
			Dissatisfiable: x.Dissatisfiable && z.Dissatisfiable,
			Unit:           z.Unit,
		}, nil

	case TagOrI:
		x, z := children[0], children[1]
		if x.Base != z.Base {
			return Correctness{}, scriptError(ErrChildBase2, "or_i requires children with matching base types")
		}
		if x.Base != TypeB && x.Base != TypeV && x.Base != TypeK {
			return Correctness{}, scriptError(ErrChildBase1, "or_i requires a B/V/K-typed base")
		}
		return Correctness{
			Base:           x.Base,
			OneArg:         x.ZeroArg && z.ZeroArg,
			NonZero:        x.NonZero && z.NonZero,
			Dissatisfiable: x.Dissatisfiable || z.Dissatisfiable,
			Unit:           x.Unit && z.Unit,
		}, nil

	case TagAndOr:
		x, y, z := children[0], children[1], children[2]
		if x.Base != TypeB {
			return Correctness{}, scriptError(ErrChildBase1, "andor requires a B-typed first child")
		}
		if !x.Dissatisfiable {
			return Correctness{}, scriptError(ErrLeftNotDissatisfiable, "andor requires a dissatisfiable first child")
		}
		if !x.Unit {
			return Correctness{}, scriptError(ErrLeftNotUnit, "andor requires a unit first child")
		}
		if y.Base != z.Base {
			return Correctness{}, scriptError(ErrChildBase3, "andor requires matching base types for its second and third children")
		}
		if y.Base != TypeB && y.Base != TypeV && y.Base != TypeK {
			return Correctness{}, scriptError(ErrChildBase2, "andor requires a B/V/K base for its second and third children")
		}
		return Correctness{
			Base:           y.Base,
			ZeroArg:        x.ZeroArg && y.ZeroArg && z.ZeroArg,
			OneArg:         (x.ZeroArg && y.OneArg && z.OneArg) || (x.OneArg && y.ZeroArg && z.ZeroArg),
			NonZero:        x.NonZero || (x.ZeroArg && y.NonZero && z.NonZero),
			Dissatisfiable: z.Dissatisfiable,
			Unit:           y.Unit && z.Unit,
		}, nil

	case TagThresh:
		if len(children) == 0 {
			return Correctness{}, scriptError(ErrThresholdBase, "thresh requires at least one child")
		}
		if err := validateThreshold(n.K, len(children)); err != nil {
			return Correctness{}, err
		}
		if children[0].Base != TypeB {
			return Correctness{}, scriptError(ErrThresholdBase, "thresh requires a B-typed first child")
		}
		allZ := children[0].ZeroArg
		anyN := children[0].NonZero
		allD := children[0].Dissatisfiable
		allU := children[0].Unit
		oneArgCount, zeroArgRestCount := 0, 0
		if children[0].OneArg {
			oneArgCount++
		} else if children[0].ZeroArg {
			zeroArgRestCount++
		}
		for _, c := range children[1:] {
			if c.Base != TypeW {
				return Correctness{}, scriptError(ErrThresholdBase, "thresh requires W-typed children after the first")
			}
			allZ = allZ && c.ZeroArg
			anyN = anyN || c.NonZero
			allD = allD && c.Dissatisfiable
			allU = allU && c.Unit
			if c.OneArg {
				oneArgCount++
			} else if c.ZeroArg {
				zeroArgRestCount++
			}
		}
		if !allD {
			return Correctness{}, scriptError(ErrThresholdDissat, "thresh requires every child to be dissatisfiable")
		}
		if !allU {
			return Correctness{}, scriptError(ErrThresholdNonUnit, "thresh requires every child to be unit")
		}
		derivedOneArg := oneArgCount == 1 && zeroArgRestCount == len(children)-1
		return Correctness{
			Base:           TypeB,
			ZeroArg:        allZ,
			OneArg:         derivedOneArg,
			NonZero:        anyN,
			Dissatisfiable: true,
			Unit:           true,
		}, nil

	default:
		return Correctness{}, scriptError(ErrUnknownFragment, "cannot derive correctness for unrecognized tag")
	}
}

// validateThreshold parses a threshold string and enforces 1 <= k <= n,
// the bound multi/multi_a/thresh's k argument must satisfy per §3.1.
func validateThreshold(kStr string, n int) error {
	k, err := strconv.Atoi(kStr)
	if err != nil {
		return scriptError(ErrOutOfRange, "threshold is not a valid integer")
	}
	if k < 1 || k > n {
		return scriptError(ErrOutOfRange, "threshold must satisfy 1 <= k <= n")
	}
	return nil
}
