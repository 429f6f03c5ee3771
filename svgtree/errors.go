package svgtree

import (
	"fmt"
)

// ErrorKind classifies the errors reported while building a Document.
type ErrorKind uint8

const (
	// CannotReadSource is fatal: the input could not be read.
	CannotReadSource ErrorKind = iota + 1
	// CannotParseMarkup is fatal: the markup is malformed.
	CannotParseMarkup
	// ExpectedNumber is reported for an attribute requiring numbers
	// (including transforms, path data and view boxes).
	ExpectedNumber
	// ExpectedLength is reported for an attribute requiring a length.
	ExpectedLength
	// UnrecognizedEnumeratedValue is reported for an unknown keyword,
	// including unknown color names.
	UnrecognizedEnumeratedValue
)

func (k ErrorKind) String() string {
	switch k {
	case CannotReadSource:
		return "cannot read source"
	case CannotParseMarkup:
		return "cannot parse markup"
	case ExpectedNumber:
		return "expected number"
	case ExpectedLength:
		return "expected length"
	case UnrecognizedEnumeratedValue:
		return "unrecognized enumerated value"
	default:
		return fmt.Sprintf("<error kind %d>", uint8(k))
	}
}

// Fatal returns true for the kinds aborting the parse.
func (k ErrorKind) Fatal() bool {
	return k == CannotReadSource || k == CannotParseMarkup
}

// ParseError is a structured error record.
// Element, Attribute and Value are empty for fatal errors.
type ParseError struct {
	Kind      ErrorKind
	Element   string
	Attribute string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Kind.Fatal() {
		if e.Err != nil {
			return fmt.Sprintf("svgtree: %s: %s", e.Kind, e.Err)
		}
		return "svgtree: " + e.Kind.String()
	}
	msg := fmt.Sprintf("svgtree: %s in <%s %s=%q>", e.Kind, e.Element, e.Attribute, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorMode determines what happens to recoverable errors when
// no Options.OnError callback is set.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently drops recoverable errors.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode traces recoverable errors at Info level.
	WarnErrorMode
)
