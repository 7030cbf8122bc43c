// Package common holds the boundary error taxonomy and small testing
// helpers shared by every hashlog package, in the style of
// mosaicnetworks/babble's src/common package (StoreErr / IsStore).
package common

import "fmt"

// Kind identifies one of the error categories surfaced at the hashlog
// boundary, per spec.md section 6.
type Kind uint32

const (
	// StoreNotDefined is returned when an operation that requires a
	// store.BlockStore is invoked with a nil one.
	StoreNotDefined Kind = iota
	// LogNotDefined is returned when an operation that requires a Log is
	// invoked with a nil one.
	LogNotDefined
	// InvalidArgument is returned by precondition checks on Entry/Log
	// constructor arguments.
	InvalidArgument
	// InvalidHash is returned when a supplied digest string does not
	// parse.
	InvalidHash
	// NotALog is returned when a fetched byte image does not match the
	// Log on-store schema ({id, heads}).
	NotALog
	// EmptyLog is returned by ToMultihash when the Log has no items or
	// no heads.
	EmptyLog
	// ParseError is returned when a fetched byte image cannot be parsed
	// as the expected schema.
	ParseError
	// StoreError wraps an underlying block-store failure.
	StoreError
)

var kindNames = map[Kind]string{
	StoreNotDefined: "store not defined",
	LogNotDefined:   "log not defined",
	InvalidArgument: "invalid argument",
	InvalidHash:     "invalid hash",
	NotALog:         "not a log",
	EmptyLog:        "empty log",
	ParseError:      "parse error",
	StoreError:      "store error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the concrete type behind every error hashlog packages return.
type Error struct {
	kind    Kind
	message string
	wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.wrapped)
	}
	if e.message != "" {
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	}
	return e.kind.String()
}

// Unwrap exposes the wrapped cause (a store failure or a decode failure),
// if any, to errors.Unwrap/Is/As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// Kind returns the error's Kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Is reports whether err is a hashlog Error of the given Kind. It mirrors
// the IsStore helper from mosaicnetworks/babble's src/common package.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}

// NewStoreNotDefined constructs the StoreNotDefined error.
func NewStoreNotDefined() error {
	return &Error{kind: StoreNotDefined}
}

// NewLogNotDefined constructs the LogNotDefined error.
func NewLogNotDefined() error {
	return &Error{kind: LogNotDefined}
}

// NewInvalidArgument constructs an InvalidArgument error with a message.
func NewInvalidArgument(message string) error {
	return &Error{kind: InvalidArgument, message: message}
}

// NewInvalidHash constructs an InvalidHash error naming the offending value.
func NewInvalidHash(value string) error {
	return &Error{kind: InvalidHash, message: value}
}

// NewNotALog constructs a NotALog error naming the offending digest.
func NewNotALog(digest string) error {
	return &Error{kind: NotALog, message: digest}
}

// NewEmptyLog constructs the EmptyLog error.
func NewEmptyLog() error {
	return &Error{kind: EmptyLog}
}

// NewParseError constructs a ParseError, naming the offending digest and
// wrapping the underlying decode failure.
func NewParseError(digest string, cause error) error {
	return &Error{kind: ParseError, message: digest, wrapped: cause}
}

// NewStoreError wraps a block-store failure.
func NewStoreError(cause error) error {
	return &Error{kind: StoreError, wrapped: cause}
}
