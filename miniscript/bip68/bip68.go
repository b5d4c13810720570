// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bip68 provides a reference nSequence relative-locktime codec. The
// miniscript core treats this as an external collaborator and falls back to
// this decoder when the caller supplies none. It is grounded in the
// disable/type/mask bit layout used throughout BIP-68/BIP-112 sequence-field
// handling.
package bip68

import "fmt"

// The bit layout of a BIP-68 encoded nSequence value.
const (
	// DisableFlag, if set, means the sequence number carries no relative
	// locktime semantics at all.
	DisableFlag = uint32(1) << 31

	// TypeFlag distinguishes a block-height-denominated locktime (0) from
	// a 512-second-granularity time-denominated one (1).
	TypeFlag = uint32(1) << 22

	// ValueMask extracts the 16-bit locktime value itself.
	ValueMask = uint32(0x0000ffff)

	// secondsGranularity is the number of seconds each unit of a
	// time-based relative locktime represents.
	secondsGranularity = 512
)

// Decoded is the result of decoding a BIP-68 nSequence value: exactly one of
// Blocks or Seconds is set.
type Decoded struct {
	Blocks  *uint32
	Seconds *uint32
}

// Decode extracts the type-locked semantics of an older() value per BIP-68.
// It returns an error if the disable flag is set, since a disabled sequence
// number carries no relative-locktime meaning for Miniscript's purposes.
func Decode(sequence uint32) (Decoded, error) {
	if sequence&DisableFlag != 0 {
		return Decoded{}, fmt.Errorf("bip68: sequence 0x%08x has the disable flag set", sequence)
	}

	value := sequence & ValueMask
	if sequence&TypeFlag != 0 {
		seconds := value * secondsGranularity
		return Decoded{Seconds: &seconds}, nil
	}
	blocks := value
	return Decoded{Blocks: &blocks}, nil
}

// DefaultDecoder is a func value implementing the single-primitive
// collaborator shape the miniscript core expects: func(uint32) (Decoded,
// error).
var DefaultDecoder = Decode
