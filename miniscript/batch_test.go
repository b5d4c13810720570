// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAllPreservesInputOrder(t *testing.T) {
	exprs := []*Node{
		forceParse(t, "pk(A)"),
		forceParse(t, "pk(B)"),
		forceParse(t, "pk(C)"),
	}
	results, err := CompileAll(context.Background(), exprs, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "<A> OP_CHECKSIG", results[0].Asm)
	assert.Equal(t, "<B> OP_CHECKSIG", results[1].Asm)
	assert.Equal(t, "<C> OP_CHECKSIG", results[2].Asm)
}

func TestAnalyzeAllPreservesInputOrder(t *testing.T) {
	exprs := []*Node{
		forceParse(t, "pk(A)"),
		forceParse(t, "older(10)"),
	}
	results, err := AnalyzeAll(context.Background(), exprs, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, TypeB, results[0].Base)
	assert.Equal(t, TypeB, results[1].Base)
}
