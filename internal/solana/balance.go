package solana

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"resty.dev/v3"

	"solbalance/internal/fetcher"
	"solbalance/internal/rpc"
)

// MethodGetBalance is the JSON-RPC method queried for each wallet
const MethodGetBalance = "getBalance"

// BalanceValue is the result member of a getBalance response
type BalanceValue struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	// Value is the balance in lamports; nil when the node omitted it
	Value *uint64 `json:"value"`
}

// BalanceFetcher fetches SOL balances over JSON-RPC
type BalanceFetcher struct {
	endpoint        string
	client          *resty.Client
	ids             rpc.IDSource
	validateAddress bool
}

// Option configures a BalanceFetcher
type Option func(*options)

type options struct {
	http            fetcher.HTTPClientOptions
	validateAddress bool
}

// WithRetryCount enables retries on transient failures
func WithRetryCount(n int) Option {
	return func(o *options) { o.http.RetryCount = n }
}

// WithTimeout sets a per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.http.Timeout = d }
}

// WithAddressValidation rejects addresses that are not base58 ed25519
// public keys before any request is sent
func WithAddressValidation(enabled bool) Option {
	return func(o *options) { o.validateAddress = enabled }
}

// NewBalanceFetcher creates a balance fetcher for the node at endpoint.
// The underlying HTTP client is shared by all calls.
func NewBalanceFetcher(endpoint string, opts ...Option) *BalanceFetcher {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &BalanceFetcher{
		endpoint:        endpoint,
		client:          fetcher.NewHTTPClient(endpoint, o.http),
		validateAddress: o.validateAddress,
	}
}

// FetchBalance retrieves the balance of address in whole SOL
func (f *BalanceFetcher) FetchBalance(ctx context.Context, address string) (fetcher.Balance, error) {
	if f.validateAddress {
		if _, err := solanago.PublicKeyFromBase58(strings.TrimSpace(address)); err != nil {
			return fetcher.Balance{}, fetcher.NewValidationError(address, err)
		}
	}

	req := rpc.NewRequest(f.ids.Next(), MethodGetBalance, address)

	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("")
	if err != nil {
		return fetcher.Balance{}, fetcher.NewTransportError(address, "request failed", err)
	}

	var envelope rpc.Response[BalanceValue]
	if err := json.Unmarshal(resp.Bytes(), &envelope); err != nil {
		if !resp.IsSuccess() {
			return fetcher.Balance{}, fetcher.NewHTTPStatusError(address, resp.StatusCode())
		}
		return fetcher.Balance{}, fetcher.NewTransportError(address, "failed to parse response", err)
	}

	// An error object wins even if a result is also present
	if envelope.Error != nil {
		return fetcher.Balance{}, fetcher.NewRPCError(address, envelope.Error.Code, envelope.Error.Message)
	}

	if !resp.IsSuccess() {
		return fetcher.Balance{}, fetcher.NewHTTPStatusError(address, resp.StatusCode())
	}

	if envelope.Result == nil {
		return fetcher.Balance{}, fetcher.NewEmptyResultError(address)
	}

	if envelope.Result.Value == nil {
		return fetcher.Balance{}, fetcher.NewTransportError(address, "failed to parse response",
			errors.New("result has no value field"))
	}

	lamports := *envelope.Result.Value

	return fetcher.Balance{
		Address:  address,
		Amount:   LamportsToSOL(lamports),
		Lamports: lamports,
		Slot:     envelope.Result.Context.Slot,
	}, nil
}

// Endpoint returns the RPC URL the fetcher talks to
func (f *BalanceFetcher) Endpoint() string {
	return f.endpoint
}

// Close releases idle connections held by the HTTP client
func (f *BalanceFetcher) Close() error {
	return f.client.Close()
}

// LamportsToSOL converts base units to whole SOL with a plain float64
// division. Values above 2^53 lamports lose precision.
func LamportsToSOL(lamports uint64) float64 {
	return float64(lamports) / float64(solanago.LAMPORTS_PER_SOL)
}
