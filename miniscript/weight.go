// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strconv"

// WeightUnits represents an approximate witness cost: per-token weight, not
// full BIP141 serialization weight. It is enough to rank candidate
// solutions relative to one another.
type WeightUnits int

// Per-token weight approximations used to rank candidate solutions from
// cheapest to most expensive.
const (
	SignatureWeight     WeightUnits = 74
	PreimageWeight      WeightUnits = 33
	PubKeyPushWeight    WeightUnits = 34
	SmallIntWeight      WeightUnits = 1
)

// String formats a weight as "<n> WU".
func (w WeightUnits) String() string {
	return strconv.Itoa(int(w)) + " WU"
}

// Add returns the sum of two weights.
func (w WeightUnits) Add(o WeightUnits) WeightUnits {
	return w + o
}

// tokenWeight returns the approximate weight of a single witness token, or
// an error if the token isn't one of the recognized fingerprint/literal
// shapes.
func tokenWeight(token string) (WeightUnits, error) {
	switch {
	case token == "0" || token == "1":
		return SmallIntWeight, nil
	case hasPrefixSuffix(token, "<sig(", ")>"):
		return SignatureWeight, nil
	case hasPrefixSuffix(token, "<sha256_preimage(", ")>"),
		hasPrefixSuffix(token, "<ripemd160_preimage(", ")>"),
		hasPrefixSuffix(token, "<hash256_preimage(", ")>"),
		hasPrefixSuffix(token, "<hash160_preimage(", ")>"),
		token == "<random_preimage()>":
		return PreimageWeight, nil
	case hasPrefixSuffix(token, "<", ">") && !hasPrefixSuffix(token, "<HASH160(", ")>"):
		// A bare pubkey push, e.g. "<k1>".
		return PubKeyPushWeight, nil
	case hasPrefixSuffix(token, "<HASH160(", ")>"):
		return PubKeyPushWeight, nil
	default:
		return 0, scriptError(ErrBadOptionType, "unrecognized witness token: "+token)
	}
}

func hasPrefixSuffix(s, prefix, suffix string) bool {
	return len(s) >= len(prefix)+len(suffix) && s[:len(prefix)] == prefix && s[len(s)-len(suffix):] == suffix
}
