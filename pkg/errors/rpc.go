package errors

import (
	"fmt"
)

// Reserved JSON-RPC 2.0 error codes. Application specific codes must use the
// server error range (-32099 .. -32000) or live outside the reserved space.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// ServerErrorMin and ServerErrorMax bound the implementation defined range.
	ServerErrorMin = -32099
	ServerErrorMax = -32000
)

/*
Reason classifies a protocol failure. The five reserved variants carry their
reserved code; every other code is a server defined error that maps back to
itself. A Reason is just the resolved integer, so decoding an arbitrary code
and re-encoding it is always the identity.
*/
type Reason struct {
	code int
}

var (
	ParseError     = Reason{CodeParseError}
	InvalidRequest = Reason{CodeInvalidRequest}
	MethodNotFound = Reason{CodeMethodNotFound}
	InvalidParams  = Reason{CodeInvalidParams}
	InternalError  = Reason{CodeInternalError}
)

/*
ServerError builds a Reason for an implementation defined code. Passing one of
the five reserved codes yields the matching named variant, which keeps
ReasonFromCode(code).Code() == code for every integer.
*/
func ServerError(code int) Reason {
	return Reason{code}
}

/*
ReasonFromCode is the total inverse of Reason.Code.
*/
func ReasonFromCode(code int) Reason {
	return Reason{code}
}

func (r Reason) Code() int {
	return r.code
}

func (r Reason) String() string {
	switch r.code {
	case CodeParseError:
		return "Parse error"
	case CodeInvalidRequest:
		return "Invalid Request"
	case CodeMethodNotFound:
		return "Method not found"
	case CodeInvalidParams:
		return "Invalid params"
	case CodeInternalError:
		return "Internal error"
	default:
		return fmt.Sprintf("Server error: %d", r.code)
	}
}

/*
RpcError is the JSON-RPC error object embedded in a response. Data is always
emitted on the wire and defaults to null. The reason is stored as its resolved
code, so the original Reason can be recovered without retaining the enum.
*/
type RpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

/*
New is the single constructor for RpcError.
*/
func New(reason Reason, message string, data any) *RpcError {
	return &RpcError{
		Code:    reason.Code(),
		Message: message,
		Data:    data,
	}
}

/*
Error implements the error interface for RpcError.
*/
func (e *RpcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason(), e.Message)
}

/*
Reason recovers the error classification from the stored code.
*/
func (e *RpcError) Reason() Reason {
	return ReasonFromCode(e.Code)
}

// Convenience errors (JSON-RPC reserved codes -32700 .. -32000).
var (
	ErrParseError     = New(ParseError, "Parse error", nil)
	ErrInvalidRequest = New(InvalidRequest, "Invalid Request", nil)
	ErrMethodNotFound = New(MethodNotFound, "Method not found", nil)
	ErrInvalidParams  = New(InvalidParams, "Invalid params", nil)
	ErrInternal       = New(InternalError, "Internal error", nil)
)

// WithMessagef creates a *copy* of an RpcError with a formatted message.
// It does not modify the original error variable.
func (e *RpcError) WithMessagef(format string, args ...any) *RpcError {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}
