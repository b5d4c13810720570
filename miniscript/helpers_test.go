// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "testing"

// forceParse parses s or fails the test immediately, for fixtures that
// must succeed.
func forceParse(t *testing.T, s string) *Node {
	t.Helper()
	n, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return n
}

func forceCompile(t *testing.T, s string, opts Options) CompileResult {
	t.Helper()
	n := forceParse(t, s)
	res := Compile(n, opts)
	if res.Error != nil {
		t.Fatalf("Compile(%q) failed: %v", s, res.Error)
	}
	return res
}
