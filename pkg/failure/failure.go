// Package failure defines the error categories reported by coverletter.
// Every fatal error carries exactly one Kind, which decides the message
// prefix and the process exit code.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the category of a fatal error.
type Kind int

const (
	// Unknown is used for errors that were never categorized.
	Unknown Kind = iota
	// Configuration means bad or missing local input.
	Configuration
	// Authentication means the credential is missing or was rejected.
	Authentication
	// Transport means the generation backend could not be reached or failed.
	Transport
	// MalformedResponse means the backend reply failed schema or invariant checks.
	MalformedResponse
	// FileSystem means an output file or directory could not be written.
	FileSystem
)

var kindNames = map[Kind]string{
	Unknown:           "Error",
	Configuration:     "ConfigurationError",
	Authentication:    "AuthenticationError",
	Transport:         "TransportError",
	MalformedResponse: "MalformedResponseError",
	FileSystem:        "FileSystemError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case Configuration:
		return 2
	case Authentication:
		return 3
	case Transport:
		return 4
	case MalformedResponse:
		return 5
	case FileSystem:
		return 6
	default:
		return 1
	}
}

// Error is a categorized error.
type Error struct {
	Kind Kind
	// Msg describes what failed, without the category prefix.
	Msg string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...any) error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// Configurationf returns a Configuration error.
func Configurationf(err error, format string, args ...any) error {
	return newError(Configuration, err, format, args...)
}

// Authenticationf returns an Authentication error.
func Authenticationf(err error, format string, args ...any) error {
	return newError(Authentication, err, format, args...)
}

// Transportf returns a Transport error.
func Transportf(err error, format string, args ...any) error {
	return newError(Transport, err, format, args...)
}

// MalformedResponsef returns a MalformedResponse error.
func MalformedResponsef(err error, format string, args ...any) error {
	return newError(MalformedResponse, err, format, args...)
}

// FileSystemf returns a FileSystem error.
func FileSystemf(err error, format string, args ...any) error {
	return newError(FileSystem, err, format, args...)
}

// KindOf returns the kind of the outermost categorized error in the chain,
// or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err is categorized as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to a process exit code. A nil error exits with 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}

// Line formats err as the single line written to stderr.
func Line(err error) string {
	return fmt.Sprintf("%s: %v", KindOf(err), err)
}
