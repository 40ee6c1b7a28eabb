package multijson

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownAdapter indicates an identifier that is not in the registry.
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrAdapterUnavailable indicates a registered backend whose dependency
	// cannot be used in this build.
	ErrAdapterUnavailable = errors.New("adapter unavailable")

	// ErrDuplicateAdapter indicates a second registration for the same identifier.
	ErrDuplicateAdapter = errors.New("duplicate adapter")

	// ErrInvalidAdapter indicates a malformed descriptor or an unsupported reference type.
	ErrInvalidAdapter = errors.New("invalid adapter")

	// ErrParse indicates the backend failed to parse input data.
	ErrParse = errors.New("parse failed")

	// ErrEncode indicates the backend failed to serialize a value.
	ErrEncode = errors.New("encode failed")
)

// AdapterError represents a failure to select or register an adapter.
type AdapterError struct {
	Err error  // Underlying sentinel error (ErrUnknownAdapter, etc.)
	Ref string // Identifier or type that was rejected
}

func (e *AdapterError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Ref)
	}
	return e.Err.Error()
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// ParseError normalizes backend parse failures into one shape.
// Callers never need backend-specific handling.
type ParseError struct {
	Adapter ID     // Backend that rejected the input
	Data    []byte // Input that failed to parse
	Cause   error  // Original error from the backend
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrParse.Error(), e.Cause)
	}
	return ErrParse.Error()
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// EncodeError represents a value the backend could not serialize.
type EncodeError struct {
	Adapter ID    // Backend that rejected the value
	Cause   error // Original error from the backend
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrEncode.Error(), e.Cause)
	}
	return ErrEncode.Error()
}

func (e *EncodeError) Unwrap() error {
	return ErrEncode
}

// newAdapterError creates an AdapterError for selection or registration failures.
func newAdapterError(sentinel error, ref string) error {
	return &AdapterError{
		Err: sentinel,
		Ref: ref,
	}
}

// newParseError creates a ParseError for decode failures.
func newParseError(adapter ID, data []byte, cause error) error {
	return &ParseError{
		Adapter: adapter,
		Data:    data,
		Cause:   cause,
	}
}

// newEncodeError creates an EncodeError for encode failures.
func newEncodeError(adapter ID, cause error) error {
	return &EncodeError{
		Adapter: adapter,
		Cause:   cause,
	}
}
