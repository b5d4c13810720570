// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// ValidateKeySyntax optionally strictly validates a pk_k/pk_h/multi/multi_a
// key token: if it decodes as 33 or 65 raw bytes, it must encode a valid
// secp256k1 curve point. Keys of any other length are left alone (this
// module never assumes a particular key-identifier scheme; callers that
// use raw strings rather than hex pubkeys simply skip this check). Plain
// Parse never calls this; ParseStrict does.
func ValidateKeySyntax(key string) error {
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil
	}
	switch len(raw) {
	case 33, 65:
		if _, err := secp256k1.ParsePubKey(raw); err != nil {
			return wrapScriptError(ErrBadKeyEncoding, "key does not encode a valid secp256k1 point", err)
		}
	}
	return nil
}

// ValidateDigestLength checks a hash-fragment's hex digest argument against
// the length the named hash function actually produces. No hashing occurs;
// only the digest size constants are consulted.
func ValidateDigestLength(tag Tag, hexDigest string) error {
	raw, err := hex.DecodeString(hexDigest)
	if err != nil {
		return wrapScriptError(ErrBadOptionType, "digest is not valid hex", err)
	}

	var want int
	switch tag {
	case TagSha256, TagHash256:
		want = sha256.Size
	case TagRipemd160, TagHash160:
		want = ripemd160.Size
	default:
		return nil
	}

	if len(raw) != want {
		return scriptError(ErrOutOfRange, "digest length does not match the hash fragment's output size")
	}
	return nil
}
