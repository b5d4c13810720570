// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miniscript implements the core of a Bitcoin Miniscript toolchain:
// a parser from surface syntax to an abstract syntax tree, a compiler from
// the tree to Bitcoin Script opcodes, a static analyzer computing
// correctness and malleability types, and a witness satisfier that
// enumerates every satisfaction and dissatisfaction of a sane expression.
//
// The package is purely functional. None of its entry points perform I/O,
// retain state across calls, or block; every call owns its own AST and
// result graph and may be invoked concurrently with any other call.
package miniscript
