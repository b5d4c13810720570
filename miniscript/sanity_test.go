// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSanitySane(t *testing.T) {
	s, err := deriveSanity(TypeB, Malleability{Signed: true, NonMalleable: true}, TimelockInfo{}, newKeySet())
	require.NoError(t, err)
	assert.True(t, s.IsSane)
	assert.True(t, s.IsSaneSublevel)
}

func TestDeriveSanitySiglessBranchTakesPrecedence(t *testing.T) {
	_, err := deriveSanity(TypeB, Malleability{Signed: false, NonMalleable: false}, TimelockInfo{ContainsCombination: true}, KeySet{HasDuplicates: true})
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrSiglessBranch, scriptErr.ErrorCode)
}

func TestDeriveSanityMalleableAfterSigned(t *testing.T) {
	_, err := deriveSanity(TypeB, Malleability{Signed: true, NonMalleable: false}, TimelockInfo{ContainsCombination: true}, KeySet{HasDuplicates: true})
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrMalleable, scriptErr.ErrorCode)
}

func TestDeriveSanityRepeatedPubkeysAfterMalleable(t *testing.T) {
	_, err := deriveSanity(TypeB, Malleability{Signed: true, NonMalleable: true}, TimelockInfo{ContainsCombination: true}, KeySet{HasDuplicates: true})
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrRepeatedPubkeys, scriptErr.ErrorCode)
}

func TestDeriveSanityHeightTimelockAfterRepeatedPubkeys(t *testing.T) {
	_, err := deriveSanity(TypeB, Malleability{Signed: true, NonMalleable: true}, TimelockInfo{ContainsCombination: true}, newKeySet())
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrHeightTimelockCombination, scriptErr.ErrorCode)
}

func TestDeriveSanityNonTopLevel(t *testing.T) {
	s, err := deriveSanity(TypeK, Malleability{Signed: true, NonMalleable: true}, TimelockInfo{}, newKeySet())
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrNonTopLevel, scriptErr.ErrorCode)
	assert.True(t, s.IsSaneSublevel)
	assert.False(t, s.IsSane)
}
