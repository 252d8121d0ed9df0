package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds carried by *Error.
var (
	ErrInvalidName          = errors.New("theme: invalid theme name")
	ErrStylesheetMissing    = errors.New("theme: theme.css not readable")
	ErrInvalidExtension     = errors.New("theme: invalid theme extension")
	ErrExtensionFailed      = errors.New("theme: extension setup failed")
	ErrAlreadyActive        = errors.New("theme: already active")
	ErrNotActive            = errors.New("theme: not active")
	ErrUnsupportedAssetType = errors.New("theme: only css and js assets can be queued")
)

// Error reports a theme lifecycle failure. Message is localized for the
// administrator; Kind is one of the sentinel errors above.
type Error struct {
	Theme   string
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	out := []error{e.Kind}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func newError(st *State, theme string, kind, cause error, key string, args ...any) *Error {
	return &Error{
		Theme:   theme,
		Kind:    kind,
		Message: st.T(key, args...),
		Err:     cause,
	}
}

// UnknownStepsError lists layout entries with no registered render step.
type UnknownStepsError struct {
	Part  string
	Names []string
}

func (e *UnknownStepsError) Error() string {
	return fmt.Sprintf("theme: undefined render steps in %q part: %s", e.Part, strings.Join(e.Names, ", "))
}
