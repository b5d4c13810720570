// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "go.uber.org/zap"

// Options bundles the caller-supplied knobs shared by Analyze, Compile, and
// Satisfy.
type Options struct {
	// Tapscript selects the Tapscript context over the Legacy one.
	Tapscript bool

	// Decode interprets older()'s BIP-68 semantics. Defaults to
	// bip68.DefaultDecoder when nil.
	Decode Bip68Decoder

	// Knowns and Unknowns partition the preimages/signatures the satisfier
	// should assume are available; supplying both is an error.
	Knowns   []string
	Unknowns []string

	// MaxSolutions caps the satisfier's combinatorial enumeration; zero
	// means unbounded.
	MaxSolutions int
}

// Record is the full analyzer output for one node: the composite
// correctness, malleability, timelock, and key-set records plus the sanity
// verdict derived from them. A Record with Valid false carries only Error;
// every other field is the zero value.
type Record struct {
	Correctness
	Malleability
	Timelock TimelockInfo
	Keys     KeySet
	Sanity

	Valid bool
	Error error
}

// Analyze runs the full bottom-up analysis pipeline over expr and returns
// its Record. It never panics; a malformed subtree yields a Record with
// Valid false and Error set, short-circuiting on the first failing subtree
// rather than continuing to analyze siblings.
func Analyze(expr *Node, opts Options) Record {
	ctx := contextFor(opts.Tapscript)
	decode := opts.Decode
	if decode == nil {
		decode = bip68DefaultDecode
	}
	return analyzeNode(expr, ctx, decode)
}

func analyzeNode(n *Node, ctx ScriptContext, decode Bip68Decoder) Record {
	children := make([]Record, len(n.Children))
	for i, c := range n.Children {
		children[i] = analyzeNode(c, ctx, decode)
		if !children[i].Valid {
			return Record{Valid: false, Error: children[i].Error}
		}
	}

	if err := checkContext(n, ctx); err != nil {
		return Record{Valid: false, Error: err}
	}

	corrChildren := make([]Correctness, len(children))
	malChildren := make([]Malleability, len(children))
	keyChildren := make([]KeySet, len(children))
	for i, c := range children {
		corrChildren[i] = c.Correctness
		malChildren[i] = c.Malleability
		keyChildren[i] = c.Keys
	}

	corr, err := deriveCorrectness(n, corrChildren, ctx)
	if err != nil {
		return Record{Valid: false, Error: err}
	}

	mal := deriveMalleability(n, malChildren)
	keys := deriveKeySet(n, keyChildren)

	tl, err := deriveTimelockNode(n, children, decode)
	if err != nil {
		return Record{Valid: false, Error: err}
	}

	sanity, sanityErr := deriveSanity(corr.Base, mal, tl, keys)

	rec := Record{
		Correctness:  corr,
		Malleability: mal,
		Timelock:     tl,
		Keys:         keys,
		Sanity:       sanity,
		Valid:        true,
	}
	if sanityErr != nil {
		rec.Error = sanityErr
		log.Debug("node failed sanity derivation", zap.String("fragment", n.Tag.String()), zap.Error(sanityErr))
	}
	return rec
}

// checkContext rejects fragments that are only meaningful in one script
// context.
func checkContext(n *Node, ctx ScriptContext) error {
	switch n.Tag {
	case TagMulti:
		if !ctx.AllowCheckMultisig {
			return scriptError(ErrContextMismatch, "multi() is not available under the tapscript context")
		}
	case TagMultiA:
		if !ctx.AllowCheckSigAdd {
			return scriptError(ErrContextMismatch, "multi_a() is only available under the tapscript context")
		}
	}
	return nil
}

// deriveTimelockNode computes the timelock info for a node: a leaf
// older()/after() value, a conjunction combining its children with the
// mixed-unit check, a disjunction that only unions them, or a pass-through
// for wrappers and andor's two-stage shape.
func deriveTimelockNode(n *Node, children []Record, decode Bip68Decoder) (TimelockInfo, error) {
	switch n.Tag {
	case TagOlder, TagAfter:
		return deriveTimelockLeaf(n, decode)

	case TagWrapA, TagWrapS, TagWrapC, TagWrapD, TagWrapV, TagWrapJ, TagWrapN:
		return children[0].Timelock, nil

	case TagAndV, TagAndB:
		return conjunctionCombine([]TimelockInfo{children[0].Timelock, children[1].Timelock}), nil

	case TagOrB, TagOrC, TagOrD, TagOrI:
		return unionTimelock([]TimelockInfo{children[0].Timelock, children[1].Timelock}), nil

	case TagAndOr:
		xy := conjunctionCombine([]TimelockInfo{children[0].Timelock, children[1].Timelock})
		return unionTimelock([]TimelockInfo{xy, children[2].Timelock}), nil

	case TagThresh:
		infos := make([]TimelockInfo, len(children))
		for i, c := range children {
			infos[i] = c.Timelock
		}
		if n.K == "1" {
			return unionTimelock(infos), nil
		}
		return conjunctionCombine(infos), nil

	default:
		return TimelockInfo{}, nil
	}
}
