// Copyright 2020 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtnetwork/miniscript/miniscript"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ContextEnv, "")
	t.Setenv(MaxSolutionsEnv, "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Legacy, cfg.Context)
	assert.Equal(t, 1000, cfg.MaxSolutions)
	assert.False(t, cfg.IsTapscript())
}

func TestLoadReadsTapscriptContext(t *testing.T) {
	t.Setenv(ContextEnv, "TAPSCRIPT")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsTapscript())
}

func TestLoadRejectsUnknownContext(t *testing.T) {
	t.Setenv(ContextEnv, "BOGUS")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadReadsMaxSolutionsOverride(t *testing.T) {
	t.Setenv(MaxSolutionsEnv, "50")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxSolutions)
}

func TestLoadRejectsNegativeMaxSolutions(t *testing.T) {
	t.Setenv(MaxSolutionsEnv, "-5")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadContext(t *testing.T) {
	cfg := &Configuration{Context: "NOT_A_CONTEXT", MaxSolutions: 1}
	assert.Error(t, cfg.Validate())
}

func TestToOptionsFeedsAnalyzeAndSatisfy(t *testing.T) {
	t.Setenv(ContextEnv, "TAPSCRIPT")
	t.Setenv(MaxSolutionsEnv, "10")
	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.ToOptions(nil)
	assert.True(t, opts.Tapscript)
	assert.Equal(t, 10, opts.MaxSolutions)

	// multi_a() only analyzes as valid under the tapscript context, so this
	// exercises that ToOptions' Tapscript flag actually reaches Analyze.
	expr, err := miniscript.Parse("multi_a(1,key1,key2)")
	require.NoError(t, err)

	rec := miniscript.Analyze(expr, opts)
	assert.True(t, rec.Valid)
	assert.True(t, rec.IsSane)

	res, err := miniscript.Satisfy(expr, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, res.NonMalleableSats)
}

func TestToOptionsRejectsLegacyMultiA(t *testing.T) {
	cfg := &Configuration{Context: Legacy, MaxSolutions: 1000}
	opts := cfg.ToOptions(nil)
	assert.False(t, opts.Tapscript)

	expr, err := miniscript.Parse("multi_a(1,key1,key2)")
	require.NoError(t, err)

	rec := miniscript.Analyze(expr, opts)
	assert.False(t, rec.Valid)
}
