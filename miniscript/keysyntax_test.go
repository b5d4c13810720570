// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeySyntaxAcceptsValidCompressedPoint(t *testing.T) {
	// The secp256k1 generator point, compressed encoding.
	key := "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	assert.NoError(t, ValidateKeySyntax(key))
}

func TestValidateKeySyntaxRejectsBadCompressedPoint(t *testing.T) {
	key := "02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	assert.Error(t, ValidateKeySyntax(key))
}

func TestValidateKeySyntaxIgnoresNonPubkeyLengths(t *testing.T) {
	assert.NoError(t, ValidateKeySyntax("deadbeef"))
	assert.NoError(t, ValidateKeySyntax("not-even-hex"))
}

func TestValidateDigestLengthSha256(t *testing.T) {
	good := strings.Repeat("ab", 32)
	assert.NoError(t, ValidateDigestLength(TagSha256, good))

	assert.Error(t, ValidateDigestLength(TagSha256, "deadbeef"))
}

func TestValidateDigestLengthRipemd160(t *testing.T) {
	good := strings.Repeat("ab", 20)
	assert.NoError(t, ValidateDigestLength(TagHash160, good))
	assert.Error(t, ValidateDigestLength(TagHash160, "00"))
}

func TestValidateDigestLengthRejectsBadHex(t *testing.T) {
	assert.Error(t, ValidateDigestLength(TagSha256, "zz"))
}

func TestParseStrictAcceptsValidKeysAndDigests(t *testing.T) {
	pubkey := "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	digest := strings.Repeat("ab", 32)
	n, err := ParseStrict("and_v(v:pk(" + pubkey + "),sha256(" + digest + "))")
	require.NoError(t, err)
	assert.Equal(t, TagAndV, n.Tag)
}

func TestParseStrictRejectsBadPubkeyPoint(t *testing.T) {
	badKey := "02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	_, err := ParseStrict("pk(" + badKey + ")")
	require.Error(t, err)
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, ErrBadKeyEncoding, scriptErr.ErrorCode)
}

func TestParseStrictRejectsBadDigestLength(t *testing.T) {
	_, err := ParseStrict("sha256(deadbeef)")
	require.Error(t, err)
}

func TestParseStrictIgnoresOpaqueKeyIdentifiers(t *testing.T) {
	// Non-pubkey-shaped key tokens (this repo's usual test fixture style)
	// are left untouched by strict validation.
	n, err := ParseStrict("pk(key)")
	require.NoError(t, err)
	assert.Equal(t, TagWrapC, n.Tag)
}
