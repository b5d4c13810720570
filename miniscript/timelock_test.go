// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTimelockLeafOlderHeight(t *testing.T) {
	n := forceParse(t, "older(10)")
	info, err := deriveTimelockLeaf(n, bip68DefaultDecode)
	require.NoError(t, err)
	assert.True(t, info.CsvWithHeight)
	assert.False(t, info.CsvWithTime)
}

func TestDeriveTimelockLeafOlderTime(t *testing.T) {
	n := forceParse(t, "older(4194304)")
	info, err := deriveTimelockLeaf(n, bip68DefaultDecode)
	require.NoError(t, err)
	assert.True(t, info.CsvWithTime)
	assert.False(t, info.CsvWithHeight)
}

func TestDeriveTimelockLeafAfterHeightVsTime(t *testing.T) {
	n := forceParse(t, "after(10)")
	info, err := deriveTimelockLeaf(n, bip68DefaultDecode)
	require.NoError(t, err)
	assert.True(t, info.CltvWithHeight)

	n = forceParse(t, "after(600000000)")
	info, err = deriveTimelockLeaf(n, bip68DefaultDecode)
	require.NoError(t, err)
	assert.True(t, info.CltvWithTime)
}

func TestDeriveTimelockLeafOutOfRange(t *testing.T) {
	n := forceParse(t, "older(0)")
	_, err := deriveTimelockLeaf(n, bip68DefaultDecode)
	assert.Error(t, err)
}

func TestUnionTimelockDoesNotLatchCombination(t *testing.T) {
	out := unionTimelock([]TimelockInfo{
		{CsvWithHeight: true},
		{CsvWithTime: true},
	})
	assert.True(t, out.CsvWithHeight)
	assert.True(t, out.CsvWithTime)
	assert.False(t, out.ContainsCombination)
}

func TestConjunctionCombineLatchesMixedCsv(t *testing.T) {
	out := conjunctionCombine([]TimelockInfo{
		{CsvWithHeight: true},
		{CsvWithTime: true},
	})
	assert.True(t, out.ContainsCombination)
}

func TestConjunctionCombineLatchesMixedCltv(t *testing.T) {
	out := conjunctionCombine([]TimelockInfo{
		{CltvWithHeight: true},
		{CltvWithTime: true},
	})
	assert.True(t, out.ContainsCombination)
}

func TestAnalyzeRejectsMixedTimelockConjunction(t *testing.T) {
	n := forceParse(t, "and_v(v:pk(A),and_v(v:older(10),older(4194304)))")
	rec := Analyze(n, Options{})
	assert.True(t, rec.Valid)
	assert.True(t, rec.Timelock.ContainsCombination)
	assert.False(t, rec.IsSane)
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	assert.Equal(t, ErrHeightTimelockCombination, scriptErr.ErrorCode)
}

func TestAnalyzeAllowsMixedTimelockDisjunction(t *testing.T) {
	n := forceParse(t, "or_i(older(10),older(4194304))")
	rec := Analyze(n, Options{})
	assert.True(t, rec.Timelock.CsvWithHeight)
	assert.True(t, rec.Timelock.CsvWithTime)
	assert.False(t, rec.Timelock.ContainsCombination)
}
