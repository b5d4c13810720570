// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Result is the public output of Satisfy.
type Result struct {
	NonMalleableSats []Solution
	MalleableSats    []Solution
	UnknownSats      []Solution
}

// Satisfy runs the analyzer, requires the expression to be sane, and then
// runs the satisfier's template generation and classification passes. It
// returns an Error with code ErrNotSane, carrying the analyzer's error as
// Cause, when expr fails analysis, and ErrConflictingOptions/
// ErrTooManySolutions for option misuse.
func Satisfy(expr *Node, opts Options) (Result, error) {
	if len(opts.Knowns) > 0 && len(opts.Unknowns) > 0 {
		return Result{}, scriptError(ErrConflictingOptions, "knowns and unknowns may not both be supplied")
	}

	rec := Analyze(expr, opts)
	if !rec.Valid || !rec.IsSane {
		return Result{}, wrapScriptError(ErrNotSane, "expression is not sane", rec.Error)
	}

	decode := opts.Decode
	if decode == nil {
		decode = bip68DefaultDecode
	}

	sat, err := satisfyTree(expr, decode)
	if err != nil {
		return Result{}, err
	}

	if opts.MaxSolutions > 0 && len(sat.Sats) > opts.MaxSolutions {
		log.Warn("satisfier enumeration exceeded MaxSolutions",
			zap.Int("candidates", len(sat.Sats)), zap.Int("maxSolutions", opts.MaxSolutions))
		return Result{}, scriptError(ErrTooManySolutions, "satisfier produced more candidates than MaxSolutions")
	}

	return classify(sat.Sats, opts)
}

func satisfyTree(n *Node, decode Bip68Decoder) (Satisfactions, error) {
	children := make([]Satisfactions, len(n.Children))
	for i, c := range n.Children {
		sat, err := satisfyTree(c, decode)
		if err != nil {
			return Satisfactions{}, err
		}
		children[i] = sat
	}
	return satisfyNode(n, children, decode)
}

// classify partitions candidate sats into nonMalleableSats, malleableSats,
// and unknownSats.
func classify(candidates []Solution, opts Options) (Result, error) {
	known, unknown := partitionKnowns(candidates, opts)

	type scored struct {
		sol    Solution
		sigs   map[string]struct{}
		dontuse bool
		weight WeightUnits
	}

	scoredSols := make([]scored, len(known))
	for i, s := range known {
		scoredSols[i] = scored{
			sol:  s,
			sigs: signatureSet(s.Asm),
		}
		if len(scoredSols[i].sigs) == 0 {
			scoredSols[i].dontuse = true
		}
		if strings.Contains(s.Asm, "<random_preimage()>") {
			scoredSols[i].dontuse = true
		}
		w, err := asmWeight(s.Asm)
		if err != nil {
			return Result{}, err
		}
		scoredSols[i].weight = w
	}

	sort.SliceStable(scoredSols, func(i, j int) bool {
		return scoredSols[i].weight < scoredSols[j].weight
	})

	for i := range scoredSols {
		if scoredSols[i].dontuse {
			continue
		}
		for j := range scoredSols {
			if i == j || scoredSols[j].dontuse {
				continue
			}
			if !sameLocks(scoredSols[i].sol, scoredSols[j].sol) {
				continue
			}
			if isSubset(scoredSols[j].sigs, scoredSols[i].sigs) && len(scoredSols[j].sigs) < len(scoredSols[i].sigs) {
				scoredSols[i].dontuse = true
				break
			}
		}
	}

	var result Result
	for _, s := range scoredSols {
		if s.dontuse {
			log.Debug("discarding malleable satisfaction candidate", zap.String("asm", s.sol.Asm))
			result.MalleableSats = append(result.MalleableSats, s.sol)
		} else {
			result.NonMalleableSats = append(result.NonMalleableSats, s.sol)
		}
	}
	result.UnknownSats = unknown
	return result, nil
}

// partitionKnowns applies the knowns/unknowns option.
func partitionKnowns(candidates []Solution, opts Options) (known, unknown []Solution) {
	switch {
	case len(opts.Unknowns) > 0:
		for _, s := range candidates {
			if containsAny(s.Asm, opts.Unknowns) {
				unknown = append(unknown, s)
			} else {
				known = append(known, s)
			}
		}
	case len(opts.Knowns) > 0:
		for _, s := range candidates {
			residual := s.Asm
			for _, k := range opts.Knowns {
				residual = strings.ReplaceAll(residual, k, "")
			}
			if strings.Contains(residual, "<sig(") || strings.Contains(residual, "_preimage(") {
				unknown = append(unknown, s)
			} else {
				known = append(known, s)
			}
		}
	default:
		known = candidates
	}
	return known, unknown
}

func containsAny(asm string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(asm, n) {
			return true
		}
	}
	return false
}

// signatureSet extracts the <sig(K)> fingerprints present in asm.
func signatureSet(asm string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(asm) {
		if strings.HasPrefix(tok, "<sig(") && strings.HasSuffix(tok, ")>") {
			out[tok] = struct{}{}
		}
	}
	return out
}

func asmWeight(asm string) (WeightUnits, error) {
	var total WeightUnits
	for _, tok := range strings.Fields(asm) {
		w, err := tokenWeight(tok)
		if err != nil {
			return 0, err
		}
		total = total.Add(w)
	}
	return total, nil
}

func sameLocks(a, b Solution) bool {
	return uint32PtrEqual(a.NLockTime, b.NLockTime) && uint32PtrEqual(a.NSequence, b.NSequence)
}

func uint32PtrEqual(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isSubset reports whether every element of a is present in b.
func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
