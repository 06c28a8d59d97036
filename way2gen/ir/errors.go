package ir

import (
	"fmt"
	"strings"
)

// ErrorCode is a machine-readable diagnostic code.
type ErrorCode string

const (
	CodeParseFailed         ErrorCode = "parse_failed"
	CodeNotProtocol         ErrorCode = "not_protocol"
	CodeNamespaceMismatch   ErrorCode = "namespace_mismatch"
	CodeInvalidIdentifier   ErrorCode = "invalid_identifier"
	CodeUnresolvedReference ErrorCode = "unresolved_reference"
	CodeMalformedReference  ErrorCode = "malformed_reference"
	CodeBitfieldWidth       ErrorCode = "bitfield_width"
	CodeEnumValueRange      ErrorCode = "enum_value_range"
	CodeDuplicateInterface  ErrorCode = "duplicate_interface"
	CodeDuplicateDocument   ErrorCode = "duplicate_document"
	CodeReservedUnitName    ErrorCode = "reserved_unit_name"
	CodeFormatFailed        ErrorCode = "format_failed"
)

// Error is a fatal compilation diagnostic.
// It names the offending document, interface and subject where known.
type Error struct {
	Code ErrorCode

	// Document is the protocol name, or the source path before the
	// name is known.
	Document  string
	Interface string

	// Subject is the offending item, e.g. `argument "mode" of request "set"`.
	Subject string

	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Document != "" {
		fmt.Fprintf(&b, "document %q: ", e.Document)
	}
	if e.Interface != "" {
		fmt.Fprintf(&b, "interface %q: ", e.Interface)
	}
	if e.Subject != "" {
		b.WriteString(e.Subject)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf creates a diagnostic with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// In returns a copy of e scoped to a document and interface.
// Empty arguments keep the existing values.
func (e *Error) In(document, iface string) *Error {
	c := *e
	if document != "" {
		c.Document = document
	}
	if iface != "" {
		c.Interface = iface
	}
	return &c
}

// About returns a copy of e with the subject set.
func (e *Error) About(subject string) *Error {
	c := *e
	c.Subject = subject
	return &c
}

// Wrap returns a copy of e with its cause set.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// Warning is a non-fatal issue found while loading or generating.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Message
}
