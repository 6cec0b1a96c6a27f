package compiler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Unit is one named source handed to CompileAll.
type Unit struct {
	Name   string
	Source string
}

// CompileAll compiles units concurrently. Results are returned in input
// order. The first failure cancels the remaining work and is returned
// wrapped with the unit's name.
func CompileAll(ctx context.Context, units []Unit, opts Options) ([]*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(units))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, u := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(u.Source, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", u.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
