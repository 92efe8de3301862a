package rpc

import "fmt"

// Code is a JSON-RPC 2.0 / LSP error code.
type Code int64

const (
	CodeParseError       Code = -32700
	CodeInvalidRequest   Code = -32600
	CodeMethodNotFound   Code = -32601
	CodeInvalidParams    Code = -32602
	CodeInternalError    Code = -32603
	CodeServerOverloaded Code = -32000
	CodeRequestCancelled Code = -32800
	CodeContentModified  Code = -32801
)

// Error is a structured JSON-RPC error, distinct from an arbitrary Go error
// so that it serializes to the wire shape LSP clients expect.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// NewError builds an *Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError coerces an arbitrary error into an *Error, wrapping it as an
// internal error if it isn't already one.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(*Error); ok {
		return rpcErr
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
