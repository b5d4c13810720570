// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctnessErr(t *testing.T, expr string) Error {
	t.Helper()
	n, err := Parse(expr)
	require.NoError(t, err)
	rec := Analyze(n, Options{})
	require.Error(t, rec.Error)
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	return scriptErr
}

func TestCorrectnessBaseTypes(t *testing.T) {
	n := forceParse(t, "pk_k(key)")
	rec := Analyze(n, Options{})
	require.NoError(t, rec.Error)
	assert.Equal(t, TypeK, rec.Base)
	assert.True(t, rec.Dissatisfiable)
	assert.True(t, rec.Unit)

	n = forceParse(t, "sha256(deadbeef)")
	rec = Analyze(n, Options{})
	require.NoError(t, rec.Error)
	assert.Equal(t, TypeB, rec.Base)
	assert.True(t, rec.NonZero)
}

func TestCorrectnessAndVRequiresVLeft(t *testing.T) {
	scriptErr := correctnessErr(t, "and_v(pk_k(A),pk_k(B))")
	assert.Equal(t, ErrChildBase1, scriptErr.ErrorCode)
}

func TestCorrectnessAndVRequiresValidRight(t *testing.T) {
	scriptErr := correctnessErr(t, "and_v(v:pk(A),s:pk(B))")
	assert.Equal(t, ErrChildBase2, scriptErr.ErrorCode)
}

func TestCorrectnessSwapRequiresOneArg(t *testing.T) {
	scriptErr := correctnessErr(t, "s:older(1)")
	assert.Equal(t, ErrSwapNonOne, scriptErr.ErrorCode)
}

func TestCorrectnessDupIfRequiresZeroArg(t *testing.T) {
	scriptErr := correctnessErr(t, "d:v:pk(A)")
	assert.Equal(t, ErrNonZeroDupIf, scriptErr.ErrorCode)
}

func TestCorrectnessJRequiresNonZero(t *testing.T) {
	scriptErr := correctnessErr(t, "j:older(1)")
	assert.Equal(t, ErrNonZeroZero, scriptErr.ErrorCode)
}

func TestCorrectnessOrDRequiresBTypedRight(t *testing.T) {
	scriptErr := correctnessErr(t, "or_d(pk(A),v:pk(B))")
	assert.Equal(t, ErrChildBase2, scriptErr.ErrorCode)
}

func TestCorrectnessOrDRequiresDissatisfiableLeft(t *testing.T) {
	scriptErr := correctnessErr(t, "or_d(1,pk(B))")
	assert.Equal(t, ErrLeftNotDissatisfiable, scriptErr.ErrorCode)
}

func TestCorrectnessOrCRequiresUnitLeft(t *testing.T) {
	scriptErr := correctnessErr(t, "or_c(d:v:older(1),v:pk(B))")
	assert.Equal(t, ErrLeftNotUnit, scriptErr.ErrorCode)
}

func TestCorrectnessAndOrRequiresBTypedFirst(t *testing.T) {
	scriptErr := correctnessErr(t, "andor(v:pk(A),pk(B),pk(C))")
	assert.Equal(t, ErrChildBase1, scriptErr.ErrorCode)
}

func TestCorrectnessAndOrRequiresMatchingSecondThird(t *testing.T) {
	scriptErr := correctnessErr(t, "andor(pk(A),pk(B),v:pk(C))")
	assert.Equal(t, ErrChildBase3, scriptErr.ErrorCode)
}

func TestCorrectnessThreshRequiresBTypedFirst(t *testing.T) {
	scriptErr := correctnessErr(t, "thresh(1,s:pk(A))")
	assert.Equal(t, ErrThresholdBase, scriptErr.ErrorCode)
}

func TestCorrectnessThreshRequiresWTypedRest(t *testing.T) {
	scriptErr := correctnessErr(t, "thresh(1,pk(A),pk(B))")
	assert.Equal(t, ErrThresholdBase, scriptErr.ErrorCode)
}

func TestCorrectnessThreshRejectsOutOfRangeK(t *testing.T) {
	scriptErr := correctnessErr(t, "thresh(3,pk(A),s:pk(B))")
	assert.Equal(t, ErrOutOfRange, scriptErr.ErrorCode)

	scriptErr = correctnessErr(t, "thresh(0,pk(A),s:pk(B))")
	assert.Equal(t, ErrOutOfRange, scriptErr.ErrorCode)
}

func TestCorrectnessMultiRejectsOutOfRangeK(t *testing.T) {
	scriptErr := correctnessErr(t, "multi(3,A,B)")
	assert.Equal(t, ErrOutOfRange, scriptErr.ErrorCode)
}

func TestCorrectnessMultiARejectsOutOfRangeK(t *testing.T) {
	// multi_a is only valid under tapscript; under legacy the context check
	// would reject it before the threshold is looked at.
	n := forceParse(t, "multi_a(0,A,B)")
	rec := Analyze(n, Options{Tapscript: true})
	var scriptErr Error
	require.ErrorAs(t, rec.Error, &scriptErr)
	assert.Equal(t, ErrOutOfRange, scriptErr.ErrorCode)
}
