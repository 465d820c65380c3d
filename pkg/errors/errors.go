// Package errors provides structured error handling for the kiosk UI core.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNullParam indicates a required argument was nil.
	KindNullParam
	// KindInvalidParam indicates an argument was out of range (e.g. negative size).
	KindInvalidParam
	// KindOutOfMemory indicates the widget budget or an allocation limit was exceeded.
	KindOutOfMemory
	// KindNotFound indicates a child, subscription, or root lookup failed.
	KindNotFound
	// KindAlreadyExists indicates a duplicate registration.
	KindAlreadyExists
	// KindRenderFailed indicates a surface primitive failed.
	KindRenderFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNullParam:
		return "null-param"
	case KindInvalidParam:
		return "invalid-param"
	case KindOutOfMemory:
		return "out-of-memory"
	case KindNotFound:
		return "not-found"
	case KindAlreadyExists:
		return "already-exists"
	case KindRenderFailed:
		return "render-failed"
	default:
		return "unknown"
	}
}

// KioskError represents a structured error in the kiosk UI core.
type KioskError struct {
	// Op is the operation that failed (e.g., "widget.AddChild").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget is the ID of the widget involved, if applicable.
	Widget string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *KioskError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KioskError) Unwrap() error {
	return e.Err
}

// E constructs a KioskError from an operation, a kind, and a message.
func E(op string, kind ErrorKind, msg string) *KioskError {
	return &KioskError{Op: op, Kind: kind, Err: errors.New(msg)}
}

// Ef constructs a KioskError with a formatted message.
func Ef(op string, kind ErrorKind, format string, args ...any) *KioskError {
	return &KioskError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap constructs a KioskError around an existing error.
func Wrap(op string, kind ErrorKind, err error) *KioskError {
	return &KioskError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the ErrorKind of err, or KindUnknown if err is not a
// KioskError anywhere in its chain.
func KindOf(err error) ErrorKind {
	var ke *KioskError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsNullParam reports whether err is a nil-argument error.
func IsNullParam(err error) bool { return IsKind(err, KindNullParam) }

// IsInvalidParam reports whether err is an out-of-range argument error.
func IsInvalidParam(err error) bool { return IsKind(err, KindInvalidParam) }

// IsAlreadyExists reports whether err is a duplicate registration error.
func IsAlreadyExists(err error) bool { return IsKind(err, KindAlreadyExists) }

// IsOutOfMemory reports whether err is a budget/allocation error.
func IsOutOfMemory(err error) bool { return IsKind(err, KindOutOfMemory) }

// IsRenderFailed reports whether err is a surface primitive failure.
func IsRenderFailed(err error) bool { return IsKind(err, KindRenderFailed) }

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "manager.HandleSample").
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

// ErrorHandler receives errors reported by the kiosk UI core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *KioskError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
