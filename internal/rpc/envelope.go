package rpc

import (
	"fmt"
	"sync/atomic"
)

// Version is the only JSON-RPC protocol version spoken
const Version = "2.0"

// Request is a JSON-RPC 2.0 call
type Request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// NewRequest wraps method and positional params into a request envelope.
func NewRequest(id uint64, method string, params ...any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{
		Version: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// Response is a JSON-RPC 2.0 reply. Exactly one of Result and Error is
// expected to be set, but nothing on the wire enforces that.
type Response[T any] struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Result  *T     `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is the error member of a response
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// IDSource hands out request ids. The zero value starts at 1.
type IDSource struct {
	last atomic.Uint64
}

// Next returns the next unused id; safe for concurrent use.
func (s *IDSource) Next() uint64 {
	return s.last.Add(1)
}
