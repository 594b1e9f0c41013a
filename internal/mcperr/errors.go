// Package mcperr carries the error taxonomy surfaced over the MCP boundary.
// Every failure leaving a service is one of these kinds; the numeric codes
// follow the JSON-RPC error space used by the protocol.
package mcperr

import (
	"errors"
	"fmt"
)

// Code is a protocol-level error code.
type Code int

const (
	// CodeInvalidRequest marks semantically invalid references: unknown
	// ids, missing required cross-fields, unresolvable symbolic values.
	CodeInvalidRequest Code = -32600
	// CodeMethodNotFound marks dispatch for an unrecognized tool name. The
	// protocol registry produces it; services never construct it.
	CodeMethodNotFound Code = -32601
	// CodeInvalidParams marks malformed tool arguments caught before any
	// upstream call.
	CodeInvalidParams Code = -32602
	// CodeInternal marks upstream failures and caught exceptions whose
	// root cause is not itself a typed protocol error.
	CodeInternal Code = -32603
)

// Error is a typed protocol error with an optional chained cause. Wrapping
// an already-typed error is a deliberate, visible operation: some service
// methods re-wrap the message of a typed error on purpose and the resulting
// nested message chain is part of the compatibility contract.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the chained cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// InvalidParams creates an InvalidParams error.
func InvalidParams(message string) *Error {
	return &Error{Code: CodeInvalidParams, Message: message}
}

// InvalidParamsf creates an InvalidParams error with formatting.
func InvalidParamsf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequest creates an InvalidRequest error.
func InvalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message}
}

// InvalidRequestf creates an InvalidRequest error with formatting.
func InvalidRequestf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an InternalError.
func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// Internalf creates an InternalError with formatting.
func Internalf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// As extracts a typed protocol error from err, unwrapping as needed.
func As(err error) (*Error, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// Passthrough returns err unchanged when it is already typed, otherwise
// wraps it as an InternalError carrying the original message. This is the
// no-double-wrapping path.
func Passthrough(err error) *Error {
	if typed, ok := As(err); ok {
		return typed
	}
	return &Error{Code: CodeInternal, Message: err.Error(), cause: err}
}

// Rewrap nests err's message under prefix, keeping the code of an
// already-typed error so parameter and reference classification survive the
// extra wrap; untyped errors become InternalError. The resulting nested
// message chain ("{prefix}: {inner message}") is part of the compatibility
// contract on the issue update path.
func Rewrap(prefix string, err error) *Error {
	code := CodeInternal
	if typed, ok := As(err); ok {
		code = typed.Code
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", prefix, err.Error()),
		cause:   err,
	}
}

// WrapInternal always produces an InternalError with "{prefix}: {message}",
// even when err is already typed. Methods that need the nested message
// chain (update/create/delete issue wrappers) call this deliberately.
func WrapInternal(prefix string, err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: fmt.Sprintf("%s: %s", prefix, err.Error()),
		cause:   err,
	}
}
