// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeySetNoDuplicates(t *testing.T) {
	n := forceParse(t, "and_v(v:pk(A),pk(B))")
	rec := Analyze(n, Options{})
	assert.False(t, rec.Keys.HasDuplicates)
	assert.Len(t, rec.Keys.Keys, 2)
}

func TestDeriveKeySetDetectsDuplicateAcrossBranches(t *testing.T) {
	n := forceParse(t, "and_v(v:pk(A),pk(A))")
	rec := Analyze(n, Options{})
	assert.True(t, rec.Keys.HasDuplicates)
}

func TestDeriveKeySetDetectsDuplicateWithinMulti(t *testing.T) {
	n := forceParse(t, "multi(2,A,A,B)")
	rec := Analyze(n, Options{})
	assert.True(t, rec.Keys.HasDuplicates)
}

func TestDeriveKeySetStickyThroughLargerTree(t *testing.T) {
	dirty := KeySet{Keys: map[string]struct{}{"A": {}}, HasDuplicates: true}
	clean := KeySet{Keys: map[string]struct{}{"B": {}}}
	n := forceParse(t, "sha256(deadbeef)")
	out := deriveKeySet(n, []KeySet{dirty, clean})
	assert.True(t, out.HasDuplicates)
	assert.Len(t, out.Keys, 2)
}

func TestLeafKeysForMultiA(t *testing.T) {
	n := forceParse(t, "multi_a(1,K1,K2)")
	assert.Equal(t, []string{"K1", "K2"}, leafKeys(n))
}
