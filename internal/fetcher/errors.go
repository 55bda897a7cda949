package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error that occurred during a fetch operation
type ErrorType string

const (
	// ErrorTypeTransport indicates the HTTP exchange itself failed (connection, timeout, unreadable body)
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeRPC indicates the node answered with a JSON-RPC error object
	ErrorTypeRPC ErrorType = "rpc"
	// ErrorTypeEmptyResult indicates the response carried neither result nor error
	ErrorTypeEmptyResult ErrorType = "empty_result"
	// ErrorTypeValidation indicates the address was rejected before any request was sent
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInfrastructure indicates the fetch task itself crashed
	ErrorTypeInfrastructure ErrorType = "infrastructure"
)

// FetchError represents a structured error from a fetch operation
type FetchError struct {
	Type    ErrorType
	Address string

	// StatusCode is the HTTP status, when one was received
	StatusCode int

	// Code is the remote JSON-RPC error code (ErrorTypeRPC only)
	Code int

	Message string
	Cause   error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	switch e.Type {
	case ErrorTypeRPC:
		return fmt.Sprintf("RPC error for wallet %s: %s (code: %d)", e.Address, e.Message, e.Code)
	case ErrorTypeEmptyResult:
		return fmt.Sprintf("no balance result for wallet %s", e.Address)
	}

	msg := fmt.Sprintf("%s error for wallet %s: %s", e.Type, e.Address, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s error for wallet %s (status %d): %s", e.Type, e.Address, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a transport error
func NewTransportError(address, message string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTransport,
		Address: address,
		Message: message,
		Cause:   cause,
	}
}

// NewHTTPStatusError creates a transport error for a non-2xx reply that
// did not carry a JSON-RPC error object
func NewHTTPStatusError(address string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeTransport,
		Address:    address,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected HTTP status: %s", http.StatusText(statusCode)),
	}
}

// NewRPCError creates an error for a JSON-RPC error object returned by the node
func NewRPCError(address string, code int, message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeRPC,
		Address: address,
		Code:    code,
		Message: message,
	}
}

// NewEmptyResultError creates an error for a response with neither result nor error
func NewEmptyResultError(address string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeEmptyResult,
		Address: address,
		Message: "response carried neither result nor error",
	}
}

// NewValidationError creates a validation error
func NewValidationError(address string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeValidation,
		Address: address,
		Message: "invalid wallet address",
		Cause:   cause,
	}
}

// NewInfrastructureError creates an error for a fetch task that failed to run
func NewInfrastructureError(address string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeInfrastructure,
		Address: address,
		Message: "fetch task failed",
		Cause:   cause,
	}
}

// IsType reports whether err is a *FetchError of type t.
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == t
}
