// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strings"

// Solution is one witness candidate for a node. Asm is a space-separated
// token list in witness-stack order (leftmost = top).
type Solution struct {
	Asm       string
	NLockTime *uint32
	NSequence *uint32
}

// Satisfactions bundles the satisfying and dissatisfying witnesses
// available for a node.
type Satisfactions struct {
	Sats  []Solution
	Dsats []Solution
}

// tplTok is one token of a solution template: either a literal ASM
// fragment, or a reference to a named child's sat/dsat set.
type tplTok struct {
	literal string
	ref     string
	dsat    bool
}

func lit(s string) tplTok { return tplTok{literal: s} }
func sat(id string) tplTok { return tplTok{ref: id} }
func dsatTok(id string) tplTok { return tplTok{ref: id, dsat: true} }

// combine folds left-to-right over the template tokens, taking the cross
// product of every symbolic reference's candidate solutions and
// concatenating ASM text and max-merging locks as it goes.
func combine(tpl []tplTok, children map[string]Satisfactions, decode Bip68Decoder) ([]Solution, error) {
	acc := []Solution{{}}
	for _, tok := range tpl {
		if tok.ref == "" {
			for i := range acc {
				acc[i].Asm = joinAsm(acc[i].Asm, tok.literal)
			}
			continue
		}

		set := children[tok.ref]
		candidates := set.Sats
		if tok.dsat {
			candidates = set.Dsats
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

// mergeSolution concatenates two partial solutions' ASM and max-merges
// their locks.
func mergeSolution(a, b Solution, decode Bip68Decoder) (Solution, error) {
	nLock, err := maxLock(a.NLockTime, b.NLockTime, LockAbsolute, decode)
	if err != nil {
		return Solution{}, err
	}
	nSeq, err := maxLock(a.NSequence, b.NSequence, LockRelative, decode)
	if err != nil {
		return Solution{}, err
	}
	return Solution{
		Asm:       joinAsm(a.Asm, b.Asm),
		NLockTime: nLock,
		NSequence: nSeq,
	}, nil
}

// joinAsm appends next to asm, normalizing whitespace to single spaces and
// trimming the result.
func joinAsm(asm, next string) string {
	next = strings.TrimSpace(next)
	if next == "" {
		return strings.TrimSpace(asm)
	}
	asm = strings.TrimSpace(asm)
	if asm == "" {
		return next
	}
	return asm + " " + next
}

// lastToken returns the final whitespace-delimited token of asm, or "" for
// an empty witness.
func lastToken(asm string) string {
	fields := strings.Fields(asm)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
