// Package errors provides structured error handling for chartkit.
//
// The clock and the rendering context stack never return errors: degenerate
// requests simply do nothing. Errors that do occur (encoding, configuration,
// panics in posted callbacks) are reported here.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a display, refresh link or run loop failure.
	KindPlatform
	// KindRender indicates a rasterization failure.
	KindRender
	// KindEncode indicates an image encoding failure.
	KindEncode
	// KindConfig indicates an invalid configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindRender:
		return "render"
	case KindEncode:
		return "encode"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ChartError represents a structured error in chartkit.
type ChartError struct {
	// Op is the operation that failed (e.g., "rendering.EncodePNG").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New wraps err with an operation name and kind. It returns nil if err is nil.
func New(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &ChartError{Op: op, Kind: kind, Err: err}
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.RunLoop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by chartkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ChartError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
