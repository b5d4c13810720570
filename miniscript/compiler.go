// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"strconv"
	"strings"
)

// asmBuilder accumulates ASM tokens for a (sub)script. It follows the same
// fluent add-and-return-self shape as txscript's ScriptBuilder, adapted to
// build a token slice instead of a raw byte script.
type asmBuilder struct {
	tokens []string
}

func newASMBuilder() *asmBuilder {
	return &asmBuilder{}
}

func (b *asmBuilder) AddOp(op string) *asmBuilder {
	b.tokens = append(b.tokens, op)
	return b
}

func (b *asmBuilder) AddToken(tok string) *asmBuilder {
	b.tokens = append(b.tokens, tok)
	return b
}

func (b *asmBuilder) AddTokens(toks []string) *asmBuilder {
	b.tokens = append(b.tokens, toks...)
	return b
}

func (b *asmBuilder) AddData(data string) *asmBuilder {
	b.tokens = append(b.tokens, "<"+data+">")
	return b
}

func (b *asmBuilder) Script() []string {
	return b.tokens
}

func (b *asmBuilder) String() string {
	return strings.Join(b.tokens, " ")
}

// scriptNum renders an integer as a compiler number token: digits for
// [0,16], otherwise a minimally-encoded little-endian hex push.
func scriptNum(v int64) (string, error) {
	if v < 0 {
		return "", scriptError(ErrOutOfRange, "numeric value must be non-negative")
	}
	if v >= 0 && v <= 16 {
		return strconv.FormatInt(v, 10), nil
	}

	var b []byte
	n := uint64(v)
	for n > 0 {
		b = append(b, byte(n&0xff))
		n >>= 8
	}
	if len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		b = append(b, 0x00)
	}

	var sb strings.Builder
	sb.WriteByte('<')
	for _, by := range b {
		sb.WriteString(strconv.FormatInt(int64(by>>4), 16))
		sb.WriteString(strconv.FormatInt(int64(by&0x0f), 16))
	}
	sb.WriteByte('>')
	return sb.String(), nil
}

// applyVerify rewrites a script's final opcode into its VERIFY form when one
// exists, or appends OP_VERIFY otherwise.
func applyVerify(script []string) []string {
	if len(script) == 0 {
		return []string{opVerify}
	}
	last := script[len(script)-1]
	if isVerifyOpcode(last) {
		return script
	}
	if v, ok := verifyForms[last]; ok {
		out := make([]string, len(script))
		copy(out, script)
		out[len(out)-1] = v
		return out
	}
	return append(append([]string{}, script...), opVerify)
}

// compile performs the depth-first ASM translation for a single AST node,
// given its children's already-compiled scripts.
func compile(n *Node, children [][]string, verify bool) ([]string, error) {
	script, err := compileBody(n, children)
	if err != nil {
		return nil, err
	}
	if verify {
		return applyVerify(script), nil
	}
	return script, nil
}

func compileBody(n *Node, c [][]string) ([]string, error) {
	switch n.Tag {
	case TagZero:
		return []string{"0"}, nil

	case TagOne:
		return []string{"1"}, nil

	case TagPkK:
		return newASMBuilder().AddData(n.Key).Script(), nil

	case TagPkH:
		return newASMBuilder().
			AddOp(opDup).AddOp(opHash160).
			AddData("HASH160(" + n.Key + ")").
			AddOp(opEqualVerify).Script(), nil

	case TagOlder:
		tok, err := numberToken(n.Value)
		if err != nil {
			return nil, err
		}
		return newASMBuilder().AddToken(tok).AddOp(opCheckSequenceVerify).Script(), nil

	case TagAfter:
		tok, err := numberToken(n.Value)
		if err != nil {
			return nil, err
		}
		return newASMBuilder().AddToken(tok).AddOp(opCheckLockTimeVerify).Script(), nil

	case TagSha256, TagRipemd160, TagHash256, TagHash160:
		return compileHash(n)

	case TagMulti:
		return compileMulti(n)

	case TagMultiA:
		return compileMultiA(n)

	case TagAndV:
		return newASMBuilder().AddTokens(c[0]).AddTokens(c[1]).Script(), nil

	case TagAndB:
		return newASMBuilder().AddTokens(c[0]).AddTokens(c[1]).AddOp(opBoolAnd).Script(), nil

	case TagOrB:
		return newASMBuilder().AddTokens(c[0]).AddTokens(c[1]).AddOp(opBoolOr).Script(), nil

	case TagOrC:
		return newASMBuilder().AddTokens(c[0]).AddOp(opNotIf).AddTokens(c[1]).AddOp(opEndIf).Script(), nil

	case TagOrD:
		return newASMBuilder().AddTokens(c[0]).AddOp(opIfDup).AddOp(opNotIf).AddTokens(c[1]).AddOp(opEndIf).Script(), nil

	case TagOrI:
		return newASMBuilder().AddOp(opIf).AddTokens(c[0]).AddOp(opElse).AddTokens(c[1]).AddOp(opEndIf).Script(), nil

	case TagAndOr:
		return newASMBuilder().
			AddTokens(c[0]).AddOp(opNotIf).
			AddTokens(c[2]).AddOp(opElse).
			AddTokens(c[1]).AddOp(opEndIf).Script(), nil

	case TagThresh:
		return compileThresh(n, c)

	case TagWrapA:
		return newASMBuilder().AddOp(opToAltStack).AddTokens(c[0]).AddOp(opFromAltStack).Script(), nil

	case TagWrapS:
		return newASMBuilder().AddOp(opSwap).AddTokens(c[0]).Script(), nil

	case TagWrapC:
		return newASMBuilder().AddTokens(c[0]).AddOp(opCheckSig).Script(), nil

	case TagWrapD:
		return newASMBuilder().AddOp(opDup).AddOp(opIf).AddTokens(c[0]).AddOp(opEndIf).Script(), nil

	case TagWrapV:
		return applyVerify(c[0]), nil

	case TagWrapJ:
		return newASMBuilder().AddOp(opSize).AddOp(op0NotEqual).AddOp(opIf).AddTokens(c[0]).AddOp(opEndIf).Script(), nil

	case TagWrapN:
		return newASMBuilder().AddTokens(c[0]).AddOp(op0NotEqual).Script(), nil

	default:
		return nil, scriptError(ErrUnknownFragment, "no compilation rule for "+n.Tag.String())
	}
}

func compileHash(n *Node) ([]string, error) {
	var hashOp string
	switch n.Tag {
	case TagSha256:
		hashOp = opSha256
	case TagRipemd160:
		hashOp = opRipemd160
	case TagHash256:
		hashOp = opHash256
	case TagHash160:
		hashOp = opHash160
	}
	size, err := numberToken(int64(32))
	if err != nil {
		return nil, err
	}
	return newASMBuilder().
		AddOp(opSize).AddToken(size).AddOp(opEqualVerify).
		AddOp(hashOp).AddData(n.Value).AddOp(opEqual).Script(), nil
}

func compileMulti(n *Node) ([]string, error) {
	k, err := parseArity(n.K)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > len(n.Keys) {
		return nil, scriptError(ErrOutOfRange, "multi() threshold out of range")
	}
	ktok, _ := numberToken(int64(k))
	ntok, _ := numberToken(int64(len(n.Keys)))
	b := newASMBuilder().AddToken(ktok)
	for _, key := range n.Keys {
		b.AddData(key)
	}
	return b.AddToken(ntok).AddOp(opCheckMultisig).Script(), nil
}

func compileMultiA(n *Node) ([]string, error) {
	k, err := parseArity(n.K)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > len(n.Keys) {
		return nil, scriptError(ErrOutOfRange, "multi_a() threshold out of range")
	}
	b := newASMBuilder()
	for i, key := range n.Keys {
		b.AddData(key)
		if i == 0 {
			b.AddOp(opCheckSig)
		} else {
			b.AddOp(opCheckSigAdd)
		}
	}
	ktok, _ := numberToken(int64(k))
	return b.AddToken(ktok).AddOp(opNumEqual).Script(), nil
}

func compileThresh(n *Node, c [][]string) ([]string, error) {
	k, err := parseArity(n.K)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > len(c) {
		return nil, scriptError(ErrOutOfRange, "thresh() threshold out of range")
	}
	b := newASMBuilder().AddTokens(c[0])
	for i := 1; i < len(c); i++ {
		b.AddTokens(c[i]).AddOp(opAdd)
	}
	ktok, _ := numberToken(int64(k))
	return b.AddToken(ktok).AddOp(opEqual).Script(), nil
}

func numberToken(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return "", scriptError(ErrOutOfRange, "value is not a valid integer")
		}
		return scriptNum(n)
	case int64:
		return scriptNum(t)
	default:
		return "", scriptError(ErrBadOptionType, "unsupported numeric token type")
	}
}

func parseArity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, scriptError(ErrBadArity, "threshold is not a valid integer")
	}
	return n, nil
}
