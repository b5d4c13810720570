// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strings"

// wrapperAlphabet is the set of letters the parser will greedily consume as
// a wrapper prefix before falling back to treating the input as a bare
// fragment name.
const wrapperAlphabet = "ascdvjntlu"

// Parse parses a single Miniscript surface-syntax expression into an AST.
// It fails fast: the first malformed fragment aborts parsing with no
// partial AST returned.
func Parse(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, scriptError(ErrMalformedExpression, "empty expression")
	}

	prefix, rest := extractWrapperPrefix(s)
	base, err := parseBase(rest)
	if err != nil {
		return nil, err
	}
	return applyWrapperPrefix(prefix, base)
}

// ParseStrict parses s exactly like Parse, then additionally walks the
// resulting tree validating every pk_k/pk_h/multi/multi_a key against
// ValidateKeySyntax and every hash fragment's digest against
// ValidateDigestLength, failing on the first violation found. Use this
// instead of Parse when key tokens are expected to be raw compressed or
// uncompressed secp256k1 points rather than opaque identifiers.
func ParseStrict(s string) (*Node, error) {
	n, err := Parse(s)
	if err != nil {
		return nil, err
	}
	if err := validateNodeStrict(n); err != nil {
		return nil, err
	}
	return n, nil
}

// validateNodeStrict recurses over n applying ValidateKeySyntax and
// ValidateDigestLength to every node that carries a key or digest token.
func validateNodeStrict(n *Node) error {
	switch n.Tag {
	case TagPkK, TagPkH:
		if err := ValidateKeySyntax(n.Key); err != nil {
			return err
		}
	case TagMulti, TagMultiA:
		for _, k := range n.Keys {
			if err := ValidateKeySyntax(k); err != nil {
				return err
			}
		}
	case TagSha256, TagRipemd160, TagHash256, TagHash160:
		if err := ValidateDigestLength(n.Tag, n.Value); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := validateNodeStrict(c); err != nil {
			return err
		}
	}
	return nil
}

// extractWrapperPrefix consumes the leading run of wrapper-alphabet letters
// immediately followed by ':', if any, and returns it alongside the
// remainder of the string. If the run isn't immediately followed by ':',
// no prefix is extracted and s is returned unchanged.
func extractWrapperPrefix(s string) (string, string) {
	i := 0
	for i < len(s) && strings.IndexByte(wrapperAlphabet, s[i]) >= 0 {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != ':' {
		return "", s
	}
	return s[:i], s[i+1:]
}

// applyWrapperPrefix re-wraps base in the reverse order the prefix letters
// were extracted, so the outermost wrapper is the prefix's first letter.
func applyWrapperPrefix(prefix string, base *Node) (*Node, error) {
	n := base
	for i := len(prefix) - 1; i >= 0; i-- {
		wrapped, err := applyWrapperLetter(prefix[i], n)
		if err != nil {
			return nil, err
		}
		n = wrapped
	}
	return n, nil
}

func applyWrapperLetter(letter byte, child *Node) (*Node, error) {
	switch letter {
	case 't':
		return &Node{Tag: TagAndV, Children: []*Node{child, newLeaf(TagOne)}}, nil
	case 'l':
		return &Node{Tag: TagOrI, Children: []*Node{newLeaf(TagZero), child}}, nil
	case 'u':
		return &Node{Tag: TagOrI, Children: []*Node{child, newLeaf(TagZero)}}, nil
	}
	tag, ok := wrapperTags[letter]
	if !ok {
		return nil, scriptError(ErrInvalidWrapper, "unrecognized wrapper letter")
	}
	return &Node{Tag: tag, Children: []*Node{child}}, nil
}

// parseBase parses the wrapper-stripped remainder: a literal 0/1, or a
// `name(args...)` fragment.
func parseBase(s string) (*Node, error) {
	switch s {
	case "0":
		return newLeaf(TagZero), nil
	case "1":
		return newLeaf(TagOne), nil
	}

	open := strings.IndexByte(s, '(')
	if open <= 0 || s[len(s)-1] != ')' {
		return nil, scriptError(ErrMalformedExpression, "expected name(args) or a literal 0/1")
	}
	name := s[:open]
	argsStr := s[open+1 : len(s)-1]

	var args []string
	if argsStr != "" {
		var err error
		args, err = splitTopLevelArgs(argsStr)
		if err != nil {
			return nil, err
		}
	}

	return dispatchFragment(name, args)
}

// splitTopLevelArgs splits a comma-separated argument list, honoring
// parenthesis nesting so a child fragment's own commas aren't mistaken for
// separators.
func splitTopLevelArgs(s string) ([]string, error) {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, scriptError(ErrMalformedExpression, "unbalanced parenthesis")
			}
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, scriptError(ErrMalformedExpression, "unbalanced parenthesis")
	}
	args = append(args, s[start:])
	return args, nil
}

func dispatchFragment(name string, args []string) (*Node, error) {
	switch name {
	case "pk":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "pk() takes exactly one argument")
		}
		return &Node{Tag: TagWrapC, Children: []*Node{{Tag: TagPkK, Key: args[0]}}}, nil

	case "pkh":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "pkh() takes exactly one argument")
		}
		return &Node{Tag: TagWrapC, Children: []*Node{{Tag: TagPkH, Key: args[0]}}}, nil

	case "pk_k":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "pk_k() takes exactly one argument")
		}
		return &Node{Tag: TagPkK, Key: args[0]}, nil

	case "pk_h":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "pk_h() takes exactly one argument")
		}
		return &Node{Tag: TagPkH, Key: args[0]}, nil

	case "older":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "older() takes exactly one argument")
		}
		return &Node{Tag: TagOlder, Value: args[0]}, nil

	case "after":
		if len(args) != 1 {
			return nil, scriptError(ErrBadArity, "after() takes exactly one argument")
		}
		return &Node{Tag: TagAfter, Value: args[0]}, nil

	case "sha256":
		return hashFragment(TagSha256, args)
	case "ripemd160":
		return hashFragment(TagRipemd160, args)
	case "hash256":
		return hashFragment(TagHash256, args)
	case "hash160":
		return hashFragment(TagHash160, args)

	case "multi":
		return multiFragment(TagMulti, args)
	case "multi_a":
		return multiFragment(TagMultiA, args)

	case "thresh":
		return threshFragment(args)

	case "and_v":
		return binaryFragment(TagAndV, args)
	case "and_b":
		return binaryFragment(TagAndB, args)
	case "or_b":
		return binaryFragment(TagOrB, args)
	case "or_c":
		return binaryFragment(TagOrC, args)
	case "or_d":
		return binaryFragment(TagOrD, args)
	case "or_i":
		return binaryFragment(TagOrI, args)

	case "and_n":
		if len(args) != 2 {
			return nil, scriptError(ErrBadArity, "and_n() takes exactly two arguments")
		}
		x, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		y, err := Parse(args[1])
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagAndOr, Children: []*Node{x, y, newLeaf(TagZero)}}, nil

	case "andor":
		if len(args) != 3 {
			return nil, scriptError(ErrBadArity, "andor() takes exactly three arguments")
		}
		x, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		y, err := Parse(args[1])
		if err != nil {
			return nil, err
		}
		z, err := Parse(args[2])
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagAndOr, Children: []*Node{x, y, z}}, nil

	default:
		return nil, scriptError(ErrUnknownFragment, "unrecognized fragment name: "+name)
	}
}

func hashFragment(tag Tag, args []string) (*Node, error) {
	if len(args) != 1 {
		return nil, scriptError(ErrBadArity, "hash fragment takes exactly one argument")
	}
	return &Node{Tag: tag, Value: args[0]}, nil
}

func multiFragment(tag Tag, args []string) (*Node, error) {
	if len(args) < 2 {
		return nil, scriptError(ErrBadArity, "multi/multi_a requires a threshold and at least one key")
	}
	return &Node{Tag: tag, K: args[0], Keys: append([]string{}, args[1:]...)}, nil
}

func threshFragment(args []string) (*Node, error) {
	if len(args) < 2 {
		return nil, scriptError(ErrBadArity, "thresh() requires a threshold and at least one child")
	}
	children := make([]*Node, len(args)-1)
	for i, a := range args[1:] {
		c, err := Parse(a)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return &Node{Tag: TagThresh, K: args[0], Children: children}, nil
}

func binaryFragment(tag Tag, args []string) (*Node, error) {
	if len(args) != 2 {
		return nil, scriptError(ErrBadArity, tag.String()+"() takes exactly two arguments")
	}
	x, err := Parse(args[0])
	if err != nil {
		return nil, err
	}
	y, err := Parse(args[1])
	if err != nil {
		return nil, err
	}
	return &Node{Tag: tag, Children: []*Node{x, y}}, nil
}
