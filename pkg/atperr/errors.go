// Package atperr defines the error taxonomy shared by every ATP package.
//
// Errors carry a stable numeric code so callers (and the processor's error
// log) can classify failures without string matching. Codes are grouped in
// ranges: 1xx lookup and file errors, 2xx construction and execution
// contract violations, 3xx malformed persisted forms.
package atperr

import (
	"errors"
	"fmt"
)

// Code identifies an error category.
type Code int

const (
	CodeFileNotFound       Code = 100
	CodeTokenNotFound      Code = 101
	CodeTokenArrayNotFound Code = 102
	CodeFileReadingError   Code = 103
	CodeFileWritingError   Code = 104
	CodeFileOpeningError   Code = 105

	CodeInvalidArgumentNumber Code = 200
	CodeIndexOutOfRange       Code = 201
	CodeInvalidIndex          Code = 202
	CodeInvalidParameters     Code = 203
	CodeIncompatibleType      Code = 204
	CodeParamCountMismatch    Code = 205
	CodeBlockNotFound         Code = 206
	CodeVariableNotFound      Code = 207

	CodeTextParsing          Code = 300
	CodeBytecodeParsing      Code = 301
	CodeBytecodeParamParsing Code = 302
	CodeValidation           Code = 303
)

// String returns the canonical name for a code.
func (c Code) String() string {
	switch c {
	case CodeFileNotFound:
		return "FileNotFound"
	case CodeTokenNotFound:
		return "TokenNotFound"
	case CodeTokenArrayNotFound:
		return "TokenArrayNotFound"
	case CodeFileReadingError:
		return "FileReadingError"
	case CodeFileWritingError:
		return "FileWritingError"
	case CodeFileOpeningError:
		return "FileOpeningError"
	case CodeInvalidArgumentNumber:
		return "InvalidArgumentNumber"
	case CodeIndexOutOfRange:
		return "IndexOutOfRange"
	case CodeInvalidIndex:
		return "InvalidIndex"
	case CodeInvalidParameters:
		return "InvalidParameters"
	case CodeIncompatibleType:
		return "IncompatibleTypeError"
	case CodeParamCountMismatch:
		return "ParamCountMismatch"
	case CodeBlockNotFound:
		return "BlockNotFound"
	case CodeVariableNotFound:
		return "VariableNotFound"
	case CodeTextParsing:
		return "TextParsingError"
	case CodeBytecodeParsing:
		return "BytecodeParsingError"
	case CodeBytecodeParamParsing:
		return "BytecodeParamParsingError"
	case CodeValidation:
		return "ValidationError"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is the concrete error type used across ATP.
type Error struct {
	// Code identifies the category.
	Code Code

	// Op names the operation or instruction that failed.
	Op string

	// Detail is a human-readable description, usually including the
	// offending input or value.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// New builds an *Error.
func New(code Code, op, detail string) *Error {
	return &Error{Code: code, Op: op, Detail: detail}
}

// Newf builds an *Error with a formatted detail.
func Newf(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err, unwrapping as needed.
// Returns 0 when err is nil or carries no *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
