// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strconv"

// TimelockInfo tracks which kinds of CSV/CLTV timelocks a subtree uses.
// ContainsCombination latches true anywhere in the subtree where an
// unsatisfiable mixed-unit conjunction was detected, and never clears.
type TimelockInfo struct {
	CsvWithHeight        bool
	CsvWithTime          bool
	CltvWithHeight        bool
	CltvWithTime          bool
	ContainsCombination  bool
}

// deriveTimelockLeaf computes the leaf-level timelock info for
// older()/after() nodes and returns an empty info for any other tag.
// Wrappers and combinators are handled in analyzer.go, which passes wrapper
// info through and calls conjunctionCombine/unionTimelock (andor needs both
// in sequence).
func deriveTimelockLeaf(n *Node, decode Bip68Decoder) (TimelockInfo, error) {
	switch n.Tag {
	case TagOlder:
		v, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil || v < 1 || v >= 1<<31 {
			return TimelockInfo{}, scriptError(ErrOutOfRange, "older() value must satisfy 1 <= v < 2^31")
		}
		d, err := decode(uint32(v))
		if err != nil {
			return TimelockInfo{}, wrapScriptError(ErrBadBip68, "invalid older() value", err)
		}
		return TimelockInfo{CsvWithHeight: d.Blocks != nil, CsvWithTime: d.Seconds != nil}, nil

	case TagAfter:
		v, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil || v < 1 || v >= 1<<31 {
			return TimelockInfo{}, scriptError(ErrOutOfRange, "after() value must satisfy 1 <= v < 2^31")
		}
		if v < lockTimeThreshold {
			return TimelockInfo{CltvWithHeight: true}, nil
		}
		return TimelockInfo{CltvWithTime: true}, nil

	default:
		return TimelockInfo{}, nil
	}
}

// unionTimelock unions the flags of a set of sibling timelock infos without
// introducing a new combination latch; used for disjunctions.
func unionTimelock(infos []TimelockInfo) TimelockInfo {
	var out TimelockInfo
	for _, i := range infos {
		out.CsvWithHeight = out.CsvWithHeight || i.CsvWithHeight
		out.CsvWithTime = out.CsvWithTime || i.CsvWithTime
		out.CltvWithHeight = out.CltvWithHeight || i.CltvWithHeight
		out.CltvWithTime = out.CltvWithTime || i.CltvWithTime
		out.ContainsCombination = out.ContainsCombination || i.ContainsCombination
	}
	return out
}

// conjunctionCombine unions a set of sibling timelock infos and additionally
// latches ContainsCombination if the union mixes height- and time-denominated
// locks of the same kind (CSV or CLTV).
func conjunctionCombine(infos []TimelockInfo) TimelockInfo {
	out := unionTimelock(infos)
	if out.CsvWithHeight && out.CsvWithTime {
		out.ContainsCombination = true
	}
	if out.CltvWithHeight && out.CltvWithTime {
		out.ContainsCombination = true
	}
	return out
}
