// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CompileAll compiles a batch of independent expressions concurrently.
// Each goroutine owns its own AST and result value; the returned slice is
// in input order regardless of completion order.
func CompileAll(ctx context.Context, exprs []*Node, opts Options) ([]CompileResult, error) {
	results := make([]CompileResult, len(exprs))
	g, _ := errgroup.WithContext(ctx)
	for i, expr := range exprs {
		i, expr := i, expr
		g.Go(func() error {
			results[i] = Compile(expr, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzeAll analyzes a batch of independent expressions concurrently.
func AnalyzeAll(ctx context.Context, exprs []*Node, opts Options) ([]Record, error) {
	results := make([]Record, len(exprs))
	g, _ := errgroup.WithContext(ctx)
	for i, expr := range exprs {
		i, expr := i, expr
		g.Go(func() error {
			results[i] = Analyze(expr, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
