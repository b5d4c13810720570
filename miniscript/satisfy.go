// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"strconv"
)

// satisfyNode runs the satisfier over a single node given its already-
// satisfied children. Callers normally reach this via the top-level
// Satisfy public entry point rather than calling it directly.
func satisfyNode(n *Node, children []Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	switch n.Tag {
	case TagZero:
		return Satisfactions{Dsats: []Solution{{}}}, nil

	case TagOne:
		return Satisfactions{Sats: []Solution{{}}}, nil

	case TagPkK:
		return Satisfactions{
			Sats:  []Solution{{Asm: "<sig(" + n.Key + ")>"}},
			Dsats: []Solution{{Asm: "0"}},
		}, nil

	case TagPkH:
		return Satisfactions{
			Sats:  []Solution{{Asm: "<sig(" + n.Key + ")> <" + n.Key + ">"}},
			Dsats: []Solution{{Asm: "0 <" + n.Key + ">"}},
		}, nil

	case TagOlder:
		v, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil {
			return Satisfactions{}, scriptError(ErrOutOfRange, "older() value is not a valid integer")
		}
		seq := uint32(v)
		return Satisfactions{Sats: []Solution{{NSequence: &seq}}}, nil

	case TagAfter:
		v, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil {
			return Satisfactions{}, scriptError(ErrOutOfRange, "after() value is not a valid integer")
		}
		lt := uint32(v)
		return Satisfactions{Sats: []Solution{{NLockTime: &lt}}}, nil

	case TagSha256, TagRipemd160, TagHash256, TagHash160:
		return satisfyHash(n), nil

	case TagMulti:
		return satisfyMulti(n), nil

	case TagMultiA:
		return satisfyMultiA(n), nil

	case TagWrapA, TagWrapS, TagWrapC, TagWrapN:
		return children[0], nil

	case TagWrapD:
		return satisfyWrapD(children[0], decode)

	case TagWrapV:
		return Satisfactions{Sats: children[0].Sats}, nil

	case TagWrapJ:
		return satisfyWrapJ(children[0]), nil

	case TagAndV:
		return satisfyBinary(children[0], children[1], decode,
			[]tplTok{sat("Y"), sat("X")},
			[]tplTok{dsatTok("Y"), sat("X")},
		)

	case TagAndB:
		return satisfyAndB(children[0], children[1], decode)

	case TagOrB:
		return satisfyOrB(children[0], children[1], decode)

	case TagOrC:
		return satisfyOrC(children[0], children[1], decode)

	case TagOrD:
		return satisfyOrD(children[0], children[1], decode)

	case TagOrI:
		return satisfyOrI(children[0], children[1], decode)

	case TagAndOr:
		return satisfyAndOr(children[0], children[1], children[2], decode)

	case TagThresh:
		k, err := strconv.Atoi(n.K)
		if err != nil {
			return Satisfactions{}, scriptError(ErrBadArity, "thresh() threshold is not a valid integer")
		}
		return satisfyThresh(k, children, decode)

	default:
		return Satisfactions{}, scriptError(ErrUnknownFragment, "no satisfier rule for "+n.Tag.String())
	}
}

func satisfyHash(n *Node) Satisfactions {
	var prefix string
	switch n.Tag {
	case TagSha256:
		prefix = "sha256"
	case TagRipemd160:
		prefix = "ripemd160"
	case TagHash256:
		prefix = "hash256"
	case TagHash160:
		prefix = "hash160"
	}
	return Satisfactions{
		Sats:  []Solution{{Asm: "<" + prefix + "_preimage(" + n.Value + ")>"}},
		Dsats: []Solution{{Asm: "<random_preimage()>"}},
	}
}

func satisfyWrapD(x Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	sats, err := combine([]tplTok{sat("X"), lit("1")}, map[string]Satisfactions{"X": x}, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	return Satisfactions{Sats: sats, Dsats: []Solution{{Asm: "0"}}}, nil
}

func satisfyWrapJ(x Satisfactions) Satisfactions {
	dsats := []Solution{{Asm: "0"}}
	for _, d := range x.Dsats {
		if lastToken(d.Asm) != "0" {
			dsats = append(dsats, d)
		}
	}
	return Satisfactions{Sats: x.Sats, Dsats: dsats}
}

func satisfyBinary(x, y Satisfactions, decode Bip68Decoder, satTpl, dsatTpl []tplTok) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Y": y}
	sats, err := combine(satTpl, named, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	if dsatTpl == nil {
		return Satisfactions{Sats: sats}, nil
	}
	dsats, err := combine(dsatTpl, named, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

// satisfyAndB satisfies with both children; it dissatisfies with any of the
// three combinations that leave at least one child dissatisfied, since
// Script's CHECKSIGADD-free and_b uses BOOLAND and can't tell which side
// failed.
func satisfyAndB(x, y Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Y": y}
	sats, err := combine([]tplTok{sat("Y"), sat("X")}, named, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	var dsats []Solution
	for _, tpl := range [][]tplTok{
		{dsatTok("Y"), dsatTok("X")},
		{sat("Y"), dsatTok("X")},
		{dsatTok("Y"), sat("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		dsats = append(dsats, part...)
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

func satisfyOrB(x, z Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Z": z}
	var sats []Solution
	for _, tpl := range [][]tplTok{
		{dsatTok("Z"), sat("X")},
		{sat("Z"), dsatTok("X")},
		{sat("Z"), sat("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		sats = append(sats, part...)
	}
	dsats, err := combine([]tplTok{dsatTok("Z"), dsatTok("X")}, named, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

func satisfyOrC(x, z Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Z": z}
	var sats []Solution
	for _, tpl := range [][]tplTok{
		{sat("X")},
		{sat("Z"), dsatTok("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		sats = append(sats, part...)
	}
	return Satisfactions{Sats: sats}, nil
}

func satisfyOrD(x, z Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Z": z}
	var sats []Solution
	for _, tpl := range [][]tplTok{
		{sat("X")},
		{sat("Z"), dsatTok("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		sats = append(sats, part...)
	}
	dsats, err := combine([]tplTok{dsatTok("Z"), dsatTok("X")}, named, decode)
	if err != nil {
		return Satisfactions{}, err
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

func satisfyOrI(x, z Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Z": z}
	var sats []Solution
	for _, tpl := range [][]tplTok{
		{sat("X"), lit("1")},
		{sat("Z"), lit("0")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		sats = append(sats, part...)
	}
	var dsats []Solution
	for _, tpl := range [][]tplTok{
		{dsatTok("X"), lit("1")},
		{dsatTok("Z"), lit("0")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		dsats = append(dsats, part...)
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

func satisfyAndOr(x, y, z Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	named := map[string]Satisfactions{"X": x, "Y": y, "Z": z}
	var sats []Solution
	for _, tpl := range [][]tplTok{
		{sat("Y"), sat("X")},
		{sat("Z"), dsatTok("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		sats = append(sats, part...)
	}
	var dsats []Solution
	for _, tpl := range [][]tplTok{
		{dsatTok("Z"), dsatTok("X")},
		{dsatTok("Y"), sat("X")},
	} {
		part, err := combine(tpl, named, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		dsats = append(dsats, part...)
	}
	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

// satisfyThresh enumerates every k-of-n sat/dsat assignment: children are
// combined in descending index order, following Script's stack discipline
// where items pushed later appear earlier in the serialized witness.
func satisfyThresh(k int, children []Satisfactions, decode Bip68Decoder) (Satisfactions, error) {
	n := len(children)
	var sats, dsats []Solution

	for mask := 0; mask < (1 << n); mask++ {
		count := popcount(mask)
		assignment, err := combineAssignment(mask, children, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		if count == k {
			sats = append(sats, assignment...)
		} else {
			dsats = append(dsats, assignment...)
		}
	}

	return Satisfactions{Sats: sats, Dsats: dsats}, nil
}

// combineAssignment builds the cross product of solutions for one
// sat/dsat bitmask assignment over children, concatenated in descending
// index order.
func combineAssignment(mask int, children []Satisfactions, decode Bip68Decoder) ([]Solution, error) {
	acc := []Solution{{}}
	for i := len(children) - 1; i >= 0; i-- {
		candidates := children[i].Dsats
		if mask&(1<<uint(i)) != 0 {
			candidates = children[i].Sats
		}
		var next []Solution
		for _, base := range acc {
			for _, cand := range candidates {
				merged, err := mergeSolution(base, cand, decode)
				if err != nil {
					return nil, err
				}
				next = append(next, merged)
			}
		}
		acc = next
	}
	return acc, nil
}

func popcount(v int) int {
	c := 0
	for v != 0 {
		c += v & 1
		v >>= 1
	}
	return c
}

func satisfyMulti(n *Node) Satisfactions {
	k, _ := strconv.Atoi(n.K)
	var sats []Solution
	for _, combo := range combinations(len(n.Keys), k) {
		asm := "0"
		for i := len(combo) - 1; i >= 0; i-- {
			asm = joinAsm(asm, "<sig("+n.Keys[combo[i]]+")>")
		}
		sats = append(sats, Solution{Asm: asm})
	}
	dsatFields := make([]string, k+1)
	for i := range dsatFields {
		dsatFields[i] = "0"
	}
	dsat := ""
	for _, f := range dsatFields {
		dsat = joinAsm(dsat, f)
	}
	return Satisfactions{Sats: sats, Dsats: []Solution{{Asm: dsat}}}
}

func satisfyMultiA(n *Node) Satisfactions {
	k, _ := strconv.Atoi(n.K)
	var sats []Solution
	for _, combo := range combinations(len(n.Keys), k) {
		asm := ""
		for _, idx := range n.allIndices() {
			if contains(combo, idx) {
				asm = joinAsm(asm, "<sig("+n.Keys[idx]+")>")
			} else {
				asm = joinAsm(asm, "0")
			}
		}
		sats = append(sats, Solution{Asm: asm})
	}
	dsatFields := make([]string, len(n.Keys))
	for i := range dsatFields {
		dsatFields[i] = "0"
	}
	dsat := ""
	for _, f := range dsatFields {
		dsat = joinAsm(dsat, f)
	}
	return Satisfactions{Sats: sats, Dsats: []Solution{{Asm: dsat}}}
}

func (n *Node) allIndices() []int {
	idx := make([]int, len(n.Keys))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// combinations returns every k-element subset of {0,...,n-1} in ascending
// index order.
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	var out [][]int
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			out = append(out, append([]int{}, combo...))
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
