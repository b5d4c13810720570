// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownsModePartition(t *testing.T) {
	n := forceParse(t, "or_i(pk(A),pk(B))")
	res, err := Satisfy(n, Options{Knowns: []string{"<sig(A)>"}})
	require.NoError(t, err)
	for _, s := range res.NonMalleableSats {
		assert.Contains(t, s.Asm, "<sig(A)>")
	}
	assert.NotEmpty(t, res.UnknownSats)
}

func TestClassifyWeightTieStable(t *testing.T) {
	// Two branches of identical shape and weight; ordering among ties
	// should follow generation order (left branch's template first).
	n := forceParse(t, "or_i(pk(A),pk(B))")
	res, err := Satisfy(n, Options{})
	require.NoError(t, err)
	require.Len(t, res.NonMalleableSats, 2)
	assert.Equal(t, "<sig(A)> 1", res.NonMalleableSats[0].Asm)
	assert.Equal(t, "<sig(B)> 0", res.NonMalleableSats[1].Asm)
}

func TestClassifyDontuseEmptySignatureSet(t *testing.T) {
	// thresh(1,pk(A),sln:1) admits a candidate that satisfies the
	// threshold using only the sln:1 branch with no signature at all;
	// that candidate must be pushed to MalleableSats rather than
	// NonMalleableSats.
	n := forceParse(t, "thresh(1,pk(A),sln:1)")
	res, err := Satisfy(n, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1 <sig(A)>"}, solAsms(res.NonMalleableSats))
	assert.Equal(t, []string{"0 0"}, solAsms(res.MalleableSats))
}
