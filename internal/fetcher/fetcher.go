package fetcher

import "context"

// BalanceFetcher is the core interface every balance source implements.
// Implementations must be safe for concurrent use: the coordinator calls
// FetchBalance from many goroutines at once.
type BalanceFetcher interface {
	// FetchBalance queries the balance of a single wallet address.
	// Failures are returned as *FetchError carrying the address.
	FetchBalance(ctx context.Context, address string) (Balance, error)
}
