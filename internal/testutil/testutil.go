package testutil

import (
	"context"
	"sync/atomic"

	"solbalance/internal/fetcher"
)

// MockFetcher is a mock implementation of the BalanceFetcher interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context, address string) (fetcher.Balance, error)

	calls atomic.Int64
}

// FetchBalance implements the BalanceFetcher interface
func (m *MockFetcher) FetchBalance(ctx context.Context, address string) (fetcher.Balance, error) {
	m.calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, address)
	}
	return fetcher.Balance{Address: address}, nil
}

// Calls returns how many times FetchBalance was invoked
func (m *MockFetcher) Calls() int {
	return int(m.calls.Load())
}

// NewMockFetcher creates a mock fetcher that answers from a fixed table.
// Addresses present in errs fail with that error; everything else succeeds
// with the amount from amounts (zero if absent).
func NewMockFetcher(amounts map[string]float64, errs map[string]error) *MockFetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context, address string) (fetcher.Balance, error) {
			if err, ok := errs[address]; ok {
				return fetcher.Balance{}, err
			}
			return fetcher.Balance{Address: address, Amount: amounts[address]}, nil
		},
	}
}
