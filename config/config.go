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

// Package config holds the operational knobs for the miniscript core's
// public entry points: which script context to analyze/compile against and
// how aggressively the satisfier is allowed to enumerate candidates.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/thoughtnetwork/miniscript/miniscript"
)

// Context selects which script execution environment the core analyzes
// and compiles against.
type Context string

const (
	// Legacy is the pre-tapscript execution environment.
	Legacy Context = "LEGACY"

	// Tapscript is the BIP-342 execution environment.
	Tapscript Context = "TAPSCRIPT"

	// defaultMaxSolutions is the satisfier enumeration cap applied when
	// the environment doesn't override it.
	defaultMaxSolutions = 1000

	// ContextEnv is the environment variable read to determine the
	// script context.
	ContextEnv = "MINISCRIPT_CONTEXT"

	// MaxSolutionsEnv is the environment variable read to override
	// MaxSolutions.
	MaxSolutionsEnv = "MINISCRIPT_MAX_SOLUTIONS"
)

// Configuration bundles the knobs Analyze, Compile, and Satisfy need.
type Configuration struct {
	Context      Context
	MaxSolutions int
}

// Load builds a Configuration from the environment, falling back to the
// Legacy context and the default solutions cap when unset.
func Load() (*Configuration, error) {
	cfg := &Configuration{
		Context:      Legacy,
		MaxSolutions: defaultMaxSolutions,
	}

	if v := os.Getenv(ContextEnv); v != "" {
		switch Context(v) {
		case Legacy, Tapscript:
			cfg.Context = Context(v)
		default:
			return nil, fmt.Errorf("%s is not a valid script context", v)
		}
	}

	if v := os.Getenv(MaxSolutionsEnv); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: unable to parse %s", err, MaxSolutionsEnv)
		}
		cfg.MaxSolutions = n
	}

	return cfg, cfg.Validate()
}

// Validate reports whether the Configuration is self-consistent.
func (c *Configuration) Validate() error {
	switch c.Context {
	case Legacy, Tapscript:
	default:
		return errors.New("Context must be LEGACY or TAPSCRIPT")
	}
	if c.MaxSolutions < 0 {
		return errors.New("MaxSolutions must not be negative")
	}
	return nil
}

// IsTapscript reports whether this configuration selects the tapscript
// context, the shape the miniscript package's Options.Tapscript expects.
func (c *Configuration) IsTapscript() bool {
	return c.Context == Tapscript
}

// ToOptions builds the miniscript.Options this Configuration selects,
// threading decode through for older()'s BIP-68 interpretation (pass nil to
// take miniscript's default decoder). Knowns/Unknowns aren't a Configuration
// concern and are left zero; callers needing them set those fields directly
// on the returned value.
func (c *Configuration) ToOptions(decode miniscript.Bip68Decoder) miniscript.Options {
	return miniscript.Options{
		Tapscript:    c.IsTapscript(),
		Decode:       decode,
		MaxSolutions: c.MaxSolutions,
	}
}
