package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDefine  Phase = "define"  // adapter / descriptor construction
	PhaseMeasure Phase = "measure" // layout and footprint calculation
	PhaseLoad    Phase = "load"    // WIT document loading
	PhaseRender  Phase = "render"  // report rendering
)

// Kind categorizes the error
type Kind string

const (
	KindNoVariants      Kind = "no_variants"
	KindTooManyVariants Kind = "too_many_variants"
	KindDuplicateCase   Kind = "duplicate_case"
	KindInvalidTag      Kind = "invalid_tag"
	KindUnsupported     Kind = "unsupported"
	KindOverflow        Kind = "overflow"
	KindInvalidData     Kind = "invalid_data"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	WitType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "::"))
	}

	if e.GoType != "" || e.WitType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.WitType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", WIT type ")
			b.WriteString(e.WitType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WitType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the variant path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string) *Builder {
	b.err.Detail = msg
	return b
}

// Detailf sets a formatted detail message
func (b *Builder) Detailf(format string, args ...any) *Builder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoVariants creates an error for a variant set without any cases
func NoVariants(phase Phase, setName string) *Error {
	e := &Error{
		Phase:  phase,
		Kind:   KindNoVariants,
		Detail: "variant set has no cases",
	}
	if setName != "" {
		e.Path = []string{setName}
	}
	return e
}

// TooManyVariants creates an error for a variant set whose tags do not fit a tag word
func TooManyVariants(phase Phase, setName string, count, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTooManyVariants,
		Path:   []string{setName},
		Detail: fmt.Sprintf("%d cases exceed the limit of %d", count, limit),
		Value:  count,
	}
}

// DuplicateCase creates an error for a case name that appears twice in a set
func DuplicateCase(phase Phase, setName, caseName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateCase,
		Path:   []string{setName, caseName},
		Detail: fmt.Sprintf("case %q defined more than once", caseName),
	}
}

// InvalidTag creates an error for a tag outside [0, numVariants)
func InvalidTag(phase Phase, path []string, tag uint64, numVariants int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidTag,
		Path:   path,
		Detail: fmt.Sprintf("tag %d out of range (variants %d)", tag, numVariants),
		Value:  tag,
	}
}

// UnsupportedWIT creates an error for a WIT type that is not a variant set
func UnsupportedWIT(phase Phase, path []string, witType string) *Error {
	return New(phase, KindUnsupported).
		Path(path...).
		WitType(witType).
		Detail("not a variant set").
		Build()
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a document loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}
