package coordinator

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"solbalance/internal/fetcher"
)

// Coordinator fans balance queries out over a worker pool and collects
// the results in input order
type Coordinator struct {
	fetcher        fetcher.BalanceFetcher
	maxConcurrency int
	logger         *slog.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithMaxConcurrency caps the number of in-flight fetches.
// Zero (the default) runs one goroutine per address.
func WithMaxConcurrency(n int) Option {
	return func(c *Coordinator) { c.maxConcurrency = n }
}

// WithLogger sets the logger failures are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// New creates a new Coordinator around f
func New(f fetcher.BalanceFetcher, opts ...Option) *Coordinator {
	c := &Coordinator{fetcher: f}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Collect runs one fetch per address and waits for all of them. It never
// stops early: a failing or panicking fetch only affects its own slot.
// The returned slice is indexed like addresses.
func (c *Coordinator) Collect(ctx context.Context, addresses []string) []fetcher.Result {
	results := make([]fetcher.Result, len(addresses))
	if len(addresses) == 0 {
		return results
	}

	limit := c.maxConcurrency
	if limit <= 0 || limit > len(addresses) {
		limit = len(addresses)
	}

	p := pool.New().WithMaxGoroutines(limit)
	for i, address := range addresses {
		p.Go(func() {
			// Each task writes only results[i]
			recovered := panics.Try(func() {
				balance, err := c.fetcher.FetchBalance(ctx, address)
				if err == nil {
					balance.Address = address
				}
				results[i] = fetcher.Result{Address: address, Balance: balance, Err: err}
			})
			if recovered != nil {
				results[i] = fetcher.Result{
					Address: address,
					Err:     fetcher.NewInfrastructureError(address, recovered.AsError()),
				}
			}
		})
	}
	p.Wait()

	return results
}

// Run queries every address and returns the successful balances in input
// order. Each failure is logged once with its address and left out; the
// batch as a whole never fails.
func (c *Coordinator) Run(ctx context.Context, addresses []string) []fetcher.Balance {
	results := c.Collect(ctx, addresses)

	balances := make([]fetcher.Balance, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			c.logger.Warn("failed to fetch balance",
				"address", result.Address,
				"error", result.Err)
			continue
		}
		c.logger.Debug("fetched balance",
			"address", result.Address,
			"lamports", result.Balance.Lamports,
			"slot", result.Balance.Slot)
		balances = append(balances, result.Balance)
	}

	return balances
}
