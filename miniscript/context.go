// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "fmt"

// ScriptContextKind identifies which Script execution environment an
// expression is being analyzed or compiled for. The two environments
// disagree on whether OP_CHECKMULTISIG is available and on the semantics
// of d: (MINIMALIF).
type ScriptContextKind byte

// The two recognized script contexts.
const (
	// Legacy is the pre-tapscript execution environment: OP_CHECKMULTISIG
	// is available, multi_a is not, and d: leaves !unit.
	Legacy ScriptContextKind = iota

	// Tapscript is the BIP-342 execution environment: OP_CHECKMULTISIG is
	// disabled in favor of multi_a/OP_CHECKSIGADD, and MINIMALIF forces
	// d: to be unit.
	Tapscript
)

var scriptContextNames = map[ScriptContextKind]string{
	Legacy:    "legacy",
	Tapscript: "tapscript",
}

// String returns the context kind in human-readable form.
func (k ScriptContextKind) String() string {
	if s, ok := scriptContextNames[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown script context (%d)", byte(k))
}

// ScriptContext bundles the execution-environment parameters that the
// analyzer and compiler must agree on for a given expression. Analogous to
// a chain's network Params, but parameterizing Script semantics instead of
// address/magic encodings.
type ScriptContext struct {
	// Kind selects legacy or tapscript semantics.
	Kind ScriptContextKind

	// MinimalIf forces d: to be treated as unit (tapscript's MINIMALIF
	// consensus rule).
	MinimalIf bool

	// AllowCheckMultisig permits the multi fragment; false under tapscript.
	AllowCheckMultisig bool

	// AllowCheckSigAdd permits the multi_a fragment; true only under
	// tapscript.
	AllowCheckSigAdd bool
}

// LegacyContext is the pre-taproot analysis/compilation context.
var LegacyContext = ScriptContext{
	Kind:               Legacy,
	MinimalIf:          false,
	AllowCheckMultisig: true,
	AllowCheckSigAdd:   false,
}

// TapscriptContext is the BIP-342 tapscript analysis/compilation context.
var TapscriptContext = ScriptContext{
	Kind:               Tapscript,
	MinimalIf:          true,
	AllowCheckMultisig: false,
	AllowCheckSigAdd:   true,
}

// contextFor returns the well-known ScriptContext for a boolean tapscript
// flag, matching the Options.Tapscript knob from the public entry points.
func contextFor(tapscript bool) ScriptContext {
	if tapscript {
		return TapscriptContext
	}
	return LegacyContext
}
