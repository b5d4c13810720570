// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

// ErrorCode identifies a kind of error produced anywhere in the miniscript
// pipeline: parsing, type analysis, sanity derivation, domain validation,
// or the satisfier.
type ErrorCode int

// Parse errors.
const (
	ErrUnknownFragment ErrorCode = iota
	ErrInvalidWrapper
	ErrBadArity
	ErrMalformedExpression

	// Type errors (analyzer).
	ErrChildBase1
	ErrChildBase2
	ErrChildBase3
	ErrSwapNonOne
	ErrNonZeroDupIf
	ErrNonZeroZero
	ErrLeftNotDissatisfiable
	ErrRightNotDissatisfiable
	ErrLeftNotUnit
	ErrThresholdBase
	ErrThresholdNonUnit
	ErrThresholdDissat

	// Sanity derivations.
	ErrSiglessBranch
	ErrMalleable
	ErrRepeatedPubkeys
	ErrHeightTimelockCombination
	ErrNonTopLevel

	// Domain errors.
	ErrOutOfRange
	ErrBadBip68
	ErrContextMismatch
	ErrBadKeyEncoding

	// Satisfier errors.
	ErrNotSane
	ErrConflictingOptions
	ErrBadOptionType
	ErrTooManySolutions
)

var errorCodeStrings = map[ErrorCode]string{
	ErrUnknownFragment:           "UnknownFragment",
	ErrInvalidWrapper:            "InvalidWrapper",
	ErrBadArity:                  "BadArity",
	ErrMalformedExpression:       "MalformedExpression",
	ErrChildBase1:                "ChildBase1",
	ErrChildBase2:                "ChildBase2",
	ErrChildBase3:                "ChildBase3",
	ErrSwapNonOne:                "SwapNonOne",
	ErrNonZeroDupIf:              "NonZeroDupIf",
	ErrNonZeroZero:               "NonZeroZero",
	ErrLeftNotDissatisfiable:     "LeftNotDissatisfiable",
	ErrRightNotDissatisfiable:    "RightNotDissatisfiable",
	ErrLeftNotUnit:               "LeftNotUnit",
	ErrThresholdBase:             "ThresholdBase",
	ErrThresholdNonUnit:          "ThresholdNonUnit",
	ErrThresholdDissat:           "ThresholdDissat",
	ErrSiglessBranch:             "SiglessBranch",
	ErrMalleable:                 "Malleable",
	ErrRepeatedPubkeys:           "RepeatedPubkeys",
	ErrHeightTimelockCombination: "HeightTimelockCombination",
	ErrNonTopLevel:               "NonTopLevel",
	ErrOutOfRange:                "OutOfRange",
	ErrBadBip68:                  "BadBip68",
	ErrContextMismatch:           "ContextMismatch",
	ErrBadKeyEncoding:            "BadKeyEncoding",
	ErrNotSane:                   "NotSane",
	ErrConflictingOptions:        "ConflictingOptions",
	ErrBadOptionType:             "BadOptionType",
	ErrTooManySolutions:          "TooManySolutions",
}

// String returns the human-readable name of the error code.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return "Unknown ErrorCode"
}

// Error identifies a miniscript error. It carries both a stable ErrorCode,
// useful for programmatic dispatch, and a human-readable description.
type Error struct {
	ErrorCode   ErrorCode
	Description string

	// Cause holds the underlying error this one wraps, if any (for example
	// the analyzer error attached to a satisfier NotSane failure).
	Cause error
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return e.Description
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e Error) Unwrap() error {
	return e.Cause
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// wrapScriptError creates an Error that wraps an underlying cause, used when
// the satisfier rejects a non-sane expression and wants to surface the
// analyzer's own error code and message as the diagnostic cause.
func wrapScriptError(c ErrorCode, desc string, cause error) Error {
	return Error{ErrorCode: c, Description: desc, Cause: cause}
}
