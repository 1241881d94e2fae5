// Package goerror defines the tagged errors use cases return and the HTTP
// status and wire code each tag maps to.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels returned by repositories and matched by use cases.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrInvalidReference  = errors.New("resource reference invalid")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Type is the broad class of an error.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code is the stable identifier sent to clients as "code".
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeMissingField
	CodeInvalidField
	CodeNoRecord
	CodeConflict
	CodeUnauthorized
	CodeTooManyRequest
	CodeTimeout
)

type codeInfo struct {
	wire   string
	status int
}

var codes = map[Code]codeInfo{
	CodeInternal:       {"INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:  {"INVALID_FORMAT", http.StatusBadRequest},
	CodeMissingField:   {"MISSING_FIELD", http.StatusBadRequest},
	CodeInvalidField:   {"INVALID_FIELD", http.StatusBadRequest},
	CodeNoRecord:       {"NO_RECORD", http.StatusNotFound},
	CodeConflict:       {"CONFLICT", http.StatusConflict},
	CodeUnauthorized:   {"UNAUTHORIZED", http.StatusUnauthorized},
	CodeTooManyRequest: {"TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	CodeTimeout:        {"TIMEOUT", http.StatusRequestTimeout},
}

func (c Code) info() codeInfo {
	if i, ok := codes[c]; ok {
		return i
	}
	return codes[CodeInternal]
}

// String returns the wire name, e.g. "NO_RECORD".
func (c Code) String() string {
	return c.info().wire
}

// Error carries a client-facing message, a Type and a Code, optionally
// wrapping the cause.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error prefers the wrapped cause, then the client message.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String()
	}
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("%s/%s: %q (cause: %v)", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string { return e.msg }
func (e *Error) Type() Type { return e.errType }
func (e *Error) Code() Code { return e.code }
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to its HTTP status.
func (e *Error) StatusCode() int {
	return e.code.info().status
}

// NewServer wraps an unexpected failure; clients only ever see a bare 500.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness reports a rule violation with the given code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

func NewMissingField(msg string) error {
	return &Error{msg: msg, errType: TypeValidation, code: CodeMissingField}
}

func NewInvalidField(msg string) error {
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidField}
}

func NewNoRecord(msg string) error {
	return &Error{msg: msg, errType: TypeValidation, code: CodeNoRecord}
}

// NewInvalidFormat reports an undecodable request. The message defaults to
// "Invalid request body".
func NewInvalidFormat(msg ...string) error {
	m := "Invalid request body"
	if len(msg) > 0 {
		m = msg[0]
	}
	return &Error{msg: m, errType: TypeValidation, code: CodeInvalidFormat}
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code Code) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.code == code
}
