// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

// Opcode name constants used by the compiler. These are textual ASM
// mnemonics, not numeric opcode values — the compiler never touches a
// binary script, only the token stream.
const (
	opDup                = "OP_DUP"
	opSwap                = "OP_SWAP"
	opSize                = "OP_SIZE"
	opHash160             = "OP_HASH160"
	opHash256             = "OP_HASH256"
	opSha256              = "OP_SHA256"
	opRipemd160           = "OP_RIPEMD160"
	opEqual               = "OP_EQUAL"
	opEqualVerify         = "OP_EQUALVERIFY"
	opVerify              = "OP_VERIFY"
	opIf                  = "OP_IF"
	opNotIf               = "OP_NOTIF"
	opElse                = "OP_ELSE"
	opEndIf               = "OP_ENDIF"
	opIfDup               = "OP_IFDUP"
	opToAltStack          = "OP_TOALTSTACK"
	opFromAltStack        = "OP_FROMALTSTACK"
	opBoolAnd             = "OP_BOOLAND"
	opBoolOr              = "OP_BOOLOR"
	opAdd                 = "OP_ADD"
	op0NotEqual           = "OP_0NOTEQUAL"
	opCheckSig            = "OP_CHECKSIG"
	opCheckSigVerify      = "OP_CHECKSIGVERIFY"
	opCheckMultisig       = "OP_CHECKMULTISIG"
	opCheckMultisigVerify = "OP_CHECKMULTISIGVERIFY"
	opCheckSigAdd         = "OP_CHECKSIGADD"
	opNumEqual            = "OP_NUMEQUAL"
	opNumEqualVerify      = "OP_NUMEQUALVERIFY"
	opCheckLockTimeVerify = "OP_CHECKLOCKTIMEVERIFY"
	opCheckSequenceVerify = "OP_CHECKSEQUENCEVERIFY"
)

// verifyForms maps an opcode to the VERIFY-suffixed opcode applyVerify
// rewrites it to in place.
var verifyForms = map[string]string{
	opCheckSig:      opCheckSigVerify,
	opCheckMultisig: opCheckMultisigVerify,
	opEqual:         opEqualVerify,
	opNumEqual:      opNumEqualVerify,
}

// isVerifyOpcode reports whether op is already a VERIFY-suffixed opcode
// (so applyVerify has nothing left to do).
func isVerifyOpcode(op string) bool {
	switch op {
	case opCheckSigVerify, opCheckMultisigVerify, opEqualVerify, opNumEqualVerify, opVerify:
		return true
	default:
		return false
	}
}
