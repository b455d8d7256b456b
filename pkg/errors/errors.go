// Package errors provides structured error types for the appicon application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - DOCUMENT_*: Layer documents that cannot be read as SVG
//   - RENDER*: Rasterization failures
//   - IO_*, INTERNAL_*: Environment and unexpected failures
//
// # Typed Errors
//
// The pipeline reports its three domain failures with dedicated types that
// carry the offending detail: [DocumentParseError] (which layer),
// [InvalidSizeError] (which size token) and [RenderError] (which size, and
// the renderer's cause). They participate in [Is] and [GetCode] through
// their Code method.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Document errors
	ErrCodeDocumentParse Code = "DOCUMENT_PARSE"

	// Rendering errors
	ErrCodeRender           Code = "RENDER_FAILED"
	ErrCodeRendererNotFound Code = "RENDERER_NOT_FOUND"

	// Environment errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by the typed errors of this package.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It walks the error chain and compares the code of the first coded error found.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message and cause without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// =============================================================================
// Typed Errors
// =============================================================================

// DocumentParseError reports a layer that is not a well-formed SVG document.
type DocumentParseError struct {
	Index int   // Zero-based position of the layer in the input sequence
	Cause error // Parser error (optional)
}

// Error implements the error interface.
func (e *DocumentParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layer %d: invalid svg document: %v", e.Index, e.Cause)
	}
	return fmt.Sprintf("layer %d: invalid svg document", e.Index)
}

// Unwrap returns the parser error.
func (e *DocumentParseError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *DocumentParseError) Code() Code { return ErrCodeDocumentParse }

// InvalidSizeError reports a raster size that is not a positive integer.
type InvalidSizeError struct {
	Value string // The size as supplied by the caller
}

// Error implements the error interface.
func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid size %q: must be a positive integer", e.Value)
}

// Code returns the error code for this error type.
func (e *InvalidSizeError) Code() Code { return ErrCodeInvalidSize }

// RenderError reports a rasterization failure at a specific size.
type RenderError struct {
	Size  int
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %dx%d: %v", e.Size, e.Size, e.Cause)
	}
	return fmt.Sprintf("render %dx%d failed", e.Size, e.Size)
}

// Unwrap returns the renderer's error.
func (e *RenderError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *RenderError) Code() Code { return ErrCodeRender }
