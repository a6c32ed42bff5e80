// Package gameerr defines the closed error taxonomy of the engine.
//
// Every fallible engine operation returns an error whose innermost cause is
// an *Error tagged with a Kind. Call sites add context with Wrap, so the
// message reads as a causal path from the outermost caller down to the fault
// while errors.As and KindOf still recover the kind.
package gameerr

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-rogue/internal/core"
)

// Kind classifies an engine failure.
type Kind uint8

const (
	// Index is an out-of-bounds or invalid spatial access.
	Index Kind = iota + 1
	// Input is a key that has no meaning in the current state.
	Input
	// IncompleteInput is a multi-key command abandoned mid-entry.
	IncompleteInput
	// InvalidSetting is a configuration value out of bounds.
	InvalidSetting
	// LogicError is a broken invariant. It signals a defect and is not
	// meant to be handled.
	LogicError
	// UnsupportedKind is an item kind whose behaviour is not implemented.
	UnsupportedKind
)

// String returns the short description of the kind.
func (k Kind) String() string {
	switch k {
	case Index:
		return "Invalid index access"
	case Input:
		return "Invalid input"
	case IncompleteInput:
		return "Incomplete input"
	case InvalidSetting:
		return "Invalid setting"
	case LogicError:
		return "Logic error"
	case UnsupportedKind:
		return "Unsupported item kind"
	default:
		return "Unknown error"
	}
}

// Recoverable reports whether a front end may report the error and keep the
// session going.
func (k Kind) Recoverable() bool {
	return k == Input || k == IncompleteInput
}

// Error is the innermost cause of an engine failure.
type Error struct {
	Kind   Kind
	Detail string
	// Key is the rejected key for Input errors.
	Key core.Key
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind == Input:
		return fmt.Sprintf("%s: key: %q", e.Kind, e.Key)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	default:
		return e.Kind.String()
	}
}

// Is makes errors.Is match any *Error of the same kind when the target has
// no detail, e.g. errors.Is(err, &gameerr.Error{Kind: gameerr.Input}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Detail == "" && t.Key == ""
}

// New returns an error of the given kind with a human-readable detail.
func New(kind Kind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf is like New with a formatted detail.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// InvalidKey returns an Input error carrying the rejected key.
func InvalidKey(key core.Key) error {
	return &Error{Kind: Input, Key: key}
}

// Wrap adds a context frame such as "in Handler::SetupGold".
// It returns nil when err is nil.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// KindOf extracts the kind of the innermost engine error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is checks if the error chain contains an engine error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
