// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "strings"

// CompileResult is the public output of Compile.
type CompileResult struct {
	Asm            string
	IsSane         bool
	IsSaneSublevel bool
	Error          error
}

// Compile analyzes and compiles expr, returning the ASM token string
// alongside the sanity flags computed along the way. Compilation itself
// never fails except on malformed numeric literals; an expression that
// analyzes as insane still compiles, since sanity is advisory metadata,
// not a compilation precondition.
func Compile(expr *Node, opts Options) CompileResult {
	rec := Analyze(expr, opts)

	script, err := compileTree(expr)
	if err != nil {
		return CompileResult{Error: err}
	}

	return CompileResult{
		Asm:            strings.Join(script, " "),
		IsSane:         rec.Valid && rec.IsSane,
		IsSaneSublevel: rec.Valid && rec.IsSaneSublevel,
		Error:          rec.Error,
	}
}

func compileTree(n *Node) ([]string, error) {
	children := make([][]string, len(n.Children))
	for i, c := range n.Children {
		script, err := compileTree(c)
		if err != nil {
			return nil, err
		}
		children[i] = script
	}
	return compile(n, children, false)
}
