// Package tableerrors provides structured error handling for coltable with
// error categorization, key-value context and stack traces.
//
// # Overview
//
// Every failure reported by the column and table packages is a *Error whose
// Type tells the caller what went wrong:
//   - ErrorTypeOutOfRange: a row or element index outside the valid range
//   - ErrorTypeUnknownColumn: a column name that is not registered
//   - ErrorTypeSchema: column lengths, counts or kinds that disagree
//   - ErrorTypeType: a value or column of the wrong element kind
//   - ErrorTypeBinding: record fields that do not line up with table columns
//
// All of them are raised before any state is mutated, so a caller that
// receives one can keep using the table as it was.
//
// # Basic Usage
//
//	v, err := table.Get[int32](t, table.Name("age"), 12)
//	if tableerrors.IsType(err, tableerrors.ErrorTypeUnknownColumn) {
//	    // fall back to positional access
//	}
//
// # Thread Safety
//
// Error instances are not thread-safe for modification. Add details with
// WithDetail before sharing them across goroutines.
package tableerrors

import (
	"errors"
	"runtime"

	stringpool "github.com/ajitpratap0/coltable/pkg/strings"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	// ErrorTypeInternal represents invariant violations inside the engine
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents invalid arguments such as a bad pattern
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeOutOfRange represents an index outside the valid range
	ErrorTypeOutOfRange ErrorType = "out_of_range"
	// ErrorTypeUnknownColumn represents a reference to a missing column name
	ErrorTypeUnknownColumn ErrorType = "unknown_column"
	// ErrorTypeSchema represents length, count or kind disagreements
	ErrorTypeSchema ErrorType = "schema"
	// ErrorTypeType represents a value or column of an incompatible kind
	ErrorTypeType ErrorType = "type"
	// ErrorTypeBinding represents record fields that do not match columns
	ErrorTypeBinding ErrorType = "binding"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents malformed encoded input (snapshots, JSON, CSV)
	ErrorTypeData ErrorType = "data"
)

// Error represents a structured error with context.
//
// Fields:
//   - Type: Categorizes the error
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning the error type, message
// and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return stringpool.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return stringpool.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. It can be chained.
//
// Example:
//
//	err := tableerrors.New(tableerrors.ErrorTypeSchema, "column length mismatch").
//	    WithDetail("column", 2).
//	    WithDetail("want", 10).
//	    WithDetail("got", 7)
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: stringpool.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType reports whether the outermost structured error in err's chain has
// the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the type of the outermost structured error in err's chain,
// or the empty ErrorType if there is none.
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Type
}

// OutOfRange reports index outside [0, length).
func OutOfRange(index, length int) *Error {
	return &Error{
		Type:    ErrorTypeOutOfRange,
		Message: stringpool.Sprintf("index %d out of range [0, %d)", index, length),
		Details: map[string]interface{}{"index": index, "length": length},
		Stack:   captureStack(2),
	}
}

// UnknownColumn reports a column name that is not registered.
func UnknownColumn(name string) *Error {
	return &Error{
		Type:    ErrorTypeUnknownColumn,
		Message: stringpool.Sprintf("unknown column %q", name),
		Details: map[string]interface{}{"column": name},
		Stack:   captureStack(2),
	}
}

// TypeMismatch reports a value or column whose kind is not the expected one.
func TypeMismatch(want, got interface{}) *Error {
	return &Error{
		Type:    ErrorTypeType,
		Message: stringpool.Sprintf("expected %v, got %v", want, got),
		Details: map[string]interface{}{"want": want, "got": got},
		Stack:   captureStack(2),
	}
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the given number of frames.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
