package relmap

import (
	"errors"
	"strings"
)

// Standard sentinel errors for model validation.
var (
	// ErrInvalidModel is matched by every hard validation failure.
	ErrInvalidModel = errors.New("relmap: invalid model")

	// ErrWarningAsError is matched by warnings that the warnings
	// configuration escalated to errors.
	ErrWarningAsError = errors.New("relmap: warning configured as error")

	// ErrLoad is matched by failures reading or resolving a model document.
	ErrLoad = errors.New("relmap: load failed")
)

// Code identifies the kind of a validation failure, for example
// "IncompatibleTableKeyNameMismatch". Codes are stable across releases;
// messages are not.
type Code string

// ValidationError is a hard model validation failure. The message is a
// complete sentence naming the offending entity types, properties, columns
// and store objects.
type ValidationError struct {
	Code    Code
	Message string
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether the target error matches ValidationError.
// This allows errors.Is(err, ErrInvalidModel) to return true.
func (e *ValidationError) Is(err error) bool {
	if err == ErrInvalidModel {
		return true
	}
	var other *ValidationError
	if errors.As(err, &other) {
		return other.Code == e.Code
	}
	return false
}

// NewValidationError returns a new ValidationError.
func NewValidationError(code Code, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// HasCode reports whether err is, or wraps, a ValidationError with the given code.
func HasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// CodeOf returns the code of the first ValidationError in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *ValidationError
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Code, true
}

// WarningError is returned in place of a logged warning when the warnings
// configuration maps its event to "throw".
type WarningError struct {
	Event   string
	Message string
}

// Error returns the error string.
func (e *WarningError) Error() string {
	return "relmap: warning " + e.Event + " raised as error: " + e.Message
}

// Is reports whether the target error matches WarningError.
func (e *WarningError) Is(err error) bool {
	return err == ErrWarningAsError
}

// NewWarningError returns a new WarningError.
func NewWarningError(event, msg string) *WarningError {
	return &WarningError{Event: event, Message: msg}
}

// IsWarningError returns true if the error is a WarningError.
func IsWarningError(err error) bool {
	if err == nil {
		return false
	}
	var e *WarningError
	return errors.As(err, &e)
}

// LoadError reports a problem in a model document.
type LoadError struct {
	Path   string // document path, empty for in-memory documents
	Entity string // entity type, if known
	Member string // property, key, navigation or other member, if known
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("relmap: load")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Entity != "" {
		b.WriteString(": entity ")
		b.WriteString(e.Entity)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// NewLoadError returns a new LoadError.
func NewLoadError(path, entity, member string, err error) *LoadError {
	return &LoadError{Path: path, Entity: entity, Member: member, Err: err}
}

// IsLoadError returns true if the error is a LoadError.
func IsLoadError(err error) bool {
	if err == nil {
		return false
	}
	var e *LoadError
	return errors.As(err, &e)
}
