// Package lserr provides the structured error type shared by every codec
// in this module.
package lserr

import "fmt"

// Kind identifies the category of a codec failure.
type Kind string

// Error kinds surfaced to callers without recovery, except where the LSF
// reader's value-block decoder recovers locally (see internal/compress).
const (
	KindFormat                 Kind = "FormatError"
	KindCorruptHeader          Kind = "CorruptHeader"
	KindCorruptIndex           Kind = "CorruptIndex"
	KindCorruptBlock           Kind = "CorruptBlock"
	KindCorruptPayload         Kind = "CorruptPayload"
	KindUnsupportedCompression Kind = "UnsupportedCompression"
	KindUnsupportedVersion     Kind = "UnsupportedVersion"
	KindUnsupported            Kind = "Unsupported"
	KindIO                     Kind = "Io"
)

// Error wraps a Kind and a context message around an underlying cause.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no wrapped cause.
func New(kind Kind, context string) error {
	return &Error{Kind: kind, Context: context}
}

// Wrap creates a contextual Error around cause. Returns nil if cause is nil.
func Wrap(kind Kind, context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Context: context, Cause: cause}
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
