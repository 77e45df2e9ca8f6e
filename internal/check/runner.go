package check

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner evaluates a Registry and produces a Summary. It never fails itself:
// check errors and panics become failed results.
type Runner struct {
	// Concurrency caps concurrent evaluation in RunConcurrent. Zero or
	// negative means one goroutine per check.
	Concurrency int
}

// Run evaluates every check in order, one at a time.
func (rn *Runner) Run(ctx context.Context, reg Registry) Summary {
	results := make([]Result, len(reg))
	for i, c := range reg {
		results[i] = evaluate(ctx, c)
	}
	return newSummary(results)
}

// RunConcurrent dispatches all checks and joins before summarizing. Checks
// are independent and share no mutable state, so this is safe and strictly
// faster for I/O-bound registries. Results keep registry order.
func (rn *Runner) RunConcurrent(ctx context.Context, reg Registry) Summary {
	results := make([]Result, len(reg))
	g, gctx := errgroup.WithContext(ctx)
	if rn.Concurrency > 0 {
		g.SetLimit(rn.Concurrency)
	}
	for i, c := range reg {
		i, c := i, c
		g.Go(func() error {
			results[i] = evaluate(gctx, c)
			return nil
		})
	}
	_ = g.Wait() // evaluate never returns an error
	return newSummary(results)
}

func evaluate(ctx context.Context, c Check) (res Result) {
	res = Result{Name: c.Name, Required: c.Required, Remediation: c.Remediation}
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if p := recover(); p != nil {
			res.Passed = false
			res.Err = fmt.Sprintf("panic: %v", p)
		}
	}()

	err := c.Run(ctx)
	if err == nil {
		res.Passed = true
		return res
	}
	res.Passed = false
	res.Err = err.Error()
	res.Kind = KindOf(err)
	if res.Err == "" {
		res.Err = c.Remediation
	}
	return res
}
