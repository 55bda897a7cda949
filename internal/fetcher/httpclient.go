package fetcher

import (
	"log/slog"
	"net/http"
	"time"

	"resty.dev/v3"
)

const (
	// Retry backoff, only used when retries are enabled
	defaultRetryWaitTime    = 500 * time.Millisecond
	defaultRetryMaxWaitTime = 5 * time.Second
)

// HTTPClientOptions tunes the shared JSON-RPC HTTP client.
// The zero value means no retries and no client-side timeout.
type HTTPClientOptions struct {
	RetryCount int
	Timeout    time.Duration
}

// NewHTTPClient creates a JSON HTTP client rooted at baseURL. When
// opts.RetryCount > 0 it retries with exponential backoff on network
// errors, 408, 429 and 5xx.
func NewHTTPClient(baseURL string, opts HTTPClientOptions) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RetryCount > 0 {
		client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(defaultRetryWaitTime).
			SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
			// getBalance is read-only, so retrying a POST is safe
			SetAllowNonIdempotentRetry(true).
			AddRetryConditions(retryCondition).
			AddRetryHooks(retryHook)
	}

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	switch code := r.StatusCode(); {
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	case code >= 500:
		return true
	default:
		return false
	}
}

// retryHook logs retry attempts for observability
func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	slog.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
