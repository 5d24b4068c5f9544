// Package errz defines the diagnostic error type shared by the parser and
// the transforms.
package errz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/jsfuse/internal/token"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrSyntax indicates a syntax/parsing error.
	ErrSyntax ErrorKind = iota
	// ErrMalformed indicates a recognized pattern whose shape is invalid,
	// such as a composition applied to the wrong number of arguments.
	ErrMalformed
	// ErrConfig indicates an invalid configuration value.
	ErrConfig
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrMalformed:
		return "malformed input"
	case ErrConfig:
		return "config error"
	default:
		return "error"
	}
}

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // the line of source code
}

// Location converts a token position into a SourceLocation. The source line
// text is optional.
func Location(pos token.Position, source string) SourceLocation {
	if !pos.IsValid() && source == "" {
		return SourceLocation{Filename: pos.File}
	}
	return SourceLocation{
		Filename: pos.File,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   source,
	}
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Error is a diagnostic with a kind and an optional source location.
type Error struct {
	Kind     ErrorKind
	Message  string
	Location SourceLocation
	Cause    error
}

// New creates an Error with a formatted message.
func New(kind ErrorKind, loc SourceLocation, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Location)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause wraps the error with a cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// FriendlyErrorMessage returns a human-friendly error message including the
// offending source line with a caret under the error column.
func (e *Error) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if e.Location.Source != "" {
		msg.WriteString(" | ")
		msg.WriteString(e.Location.Source)
		msg.WriteString("\n")
		if e.Location.Column > 0 {
			msg.WriteString(" | ")
			msg.WriteString(strings.Repeat(" ", e.Location.Column-1))
			msg.WriteString("^\n")
		}
	}
	return msg.String()
}

// IsKind reports whether any error in err's chain is an *Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
