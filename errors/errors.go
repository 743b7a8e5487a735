package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHeader  Phase = "header"  // container header reading
	PhaseDecode  Phase = "decode"  // payload wire decoding
	PhaseResolve Phase = "resolve" // descriptor construction
	PhaseScope   Phase = "scope"   // package scope materialization
)

// Kind categorizes the error
type Kind string

const (
	KindIncompatibleABI   Kind = "incompatible_abi"
	KindInvalidData       Kind = "invalid_data"
	KindNotFound          Kind = "not_found"
	KindDanglingReference Kind = "dangling_reference"
	KindInvalidEnum       Kind = "invalid_enum"
	KindOutOfBounds       Kind = "out_of_bounds"
)

// Error is the structured error type used throughout the loader
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	EntityID string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.EntityID != "" {
		b.WriteString(" in ")
		b.WriteString(e.EntityID)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Entity sets the identifier of the entity being processed
func (b *Builder) Entity(id string) *Builder {
	b.err.EntityID = id
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IncompatibleABI creates an ABI version mismatch error
func IncompatibleABI(entityID string, found, expected fmt.Stringer) *Error {
	return &Error{
		Phase:    PhaseHeader,
		Kind:     KindIncompatibleABI,
		EntityID: entityID,
		Detail:   fmt.Sprintf("metadata version %s, reader expects %s", found, expected),
	}
}

// Malformed creates a malformed payload error
func Malformed(entityID string, cause error) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidData,
		EntityID: entityID,
		Detail:   "malformed metadata payload",
		Cause:    cause,
	}
}

// NotFound creates a missing metadata error
func NotFound(entityID string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindNotFound,
		EntityID: entityID,
		Detail:   "no metadata for identifier",
	}
}

// DanglingReference creates an unresolvable reference error
func DanglingReference(entityID string, path []string, target string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindDanglingReference,
		EntityID: entityID,
		Path:     path,
		Detail:   fmt.Sprintf("reference to %s cannot be resolved", target),
	}
}

// InvalidEnum creates an out-of-range enum tag error
func InvalidEnum(entityID string, path []string, value uint32, enumType string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidEnum,
		EntityID: entityID,
		Path:     path,
		Detail:   fmt.Sprintf("invalid %s tag %d", enumType, value),
	}
}

// OutOfBounds creates a string-table index error
func OutOfBounds(entityID string, path []string, index uint32, length int) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindOutOfBounds,
		EntityID: entityID,
		Path:     path,
		Detail:   fmt.Sprintf("string table index %d out of bounds (table size %d)", index, length),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
