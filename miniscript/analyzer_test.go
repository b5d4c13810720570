// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMultiRejectedUnderTapscript(t *testing.T) {
	n := forceParse(t, "multi(1,A,B)")
	rec := Analyze(n, Options{Tapscript: true})
	assert.False(t, rec.Valid)
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	assert.Equal(t, ErrContextMismatch, scriptErr.ErrorCode)
}

func TestAnalyzeMultiARejectedUnderLegacy(t *testing.T) {
	n := forceParse(t, "multi_a(1,A,B)")
	rec := Analyze(n, Options{})
	assert.False(t, rec.Valid)
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	assert.Equal(t, ErrContextMismatch, scriptErr.ErrorCode)
}

func TestAnalyzeShortCircuitsOnInvalidChild(t *testing.T) {
	n := forceParse(t, "and_v(v:multi(1,A,B),pk(C))")
	rec := Analyze(n, Options{Tapscript: true})
	assert.False(t, rec.Valid)
	require.Error(t, rec.Error)
	// The propagated error is the child's own ContextMismatch, not a
	// fresh error describing the parent and_v node.
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	assert.Equal(t, ErrContextMismatch, scriptErr.ErrorCode)
}

func TestAnalyzeFullySaneTopLevel(t *testing.T) {
	n := forceParse(t, "and_v(v:pk(A),older(10))")
	rec := Analyze(n, Options{})
	require.NoError(t, rec.Error)
	assert.True(t, rec.Valid)
	assert.True(t, rec.IsSane)
}

func TestAnalyzeSublevelNotTopLevel(t *testing.T) {
	n := forceParse(t, "pk_k(A)")
	rec := Analyze(n, Options{})
	assert.True(t, rec.Valid)
	assert.False(t, rec.IsSane)
	assert.True(t, rec.IsSaneSublevel)
}
