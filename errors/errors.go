package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // converter registration
	PhaseEncode   Phase = "encode"   // Go graph to wire tree
	PhaseDecode   Phase = "decode"   // wire tree to Go graph
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownTag    Kind = "unknown_tag"
	KindDanglingRef   Kind = "dangling_reference"
	KindDuplicateTag  Kind = "duplicate_tag"
	KindDepthExceeded Kind = "depth_exceeded"
	KindCyclicPayload Kind = "cyclic_payload"
	KindUnsupported   Kind = "unsupported"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidInput  Kind = "invalid_input"
	KindConverter     Kind = "converter"
)

// Kind-only match targets for errors.Is.
var (
	ErrUnknownTag        = &Error{Kind: KindUnknownTag}
	ErrDanglingReference = &Error{Kind: KindDanglingRef}
	ErrDuplicateTag      = &Error{Kind: KindDuplicateTag}
	ErrDepthExceeded     = &Error{Kind: KindDepthExceeded}
	ErrCyclicPayload     = &Error{Kind: KindCyclicPayload}
	ErrUnsupported       = &Error{Kind: KindUnsupported}
	ErrInvalidData       = &Error{Kind: KindInvalidData}
)

// Error is the structured error type used throughout graphwire
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Tag    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(FormatPath(e.Path))
	}

	if e.GoType != "" || e.Tag != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Tag != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", tag ")
			b.WriteString(strconv.Quote(e.Tag))
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("tag ")
			b.WriteString(strconv.Quote(e.Tag))
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Tag != "" {
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

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// FormatPath joins path segments, attaching index segments ("[2]") to
// the preceding segment without a dot.
func FormatPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
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

// Path sets the property path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Tag sets the wire tag
func (b *Builder) Tag(tag string) *Builder {
	b.err.Tag = tag
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

// UnknownTag creates an error for a wire tag with no registered converter
func UnknownTag(path []string, tag string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownTag,
		Path:   path,
		Tag:    tag,
		Detail: "no converter registered for tag",
	}
}

// DanglingReference creates an error for a back-reference to an undefined id
func DanglingReference(path []string, id int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDanglingRef,
		Path:   path,
		Detail: fmt.Sprintf("reference to undefined id %d", id),
		Value:  id,
	}
}

// CyclicPayload creates an error for a back-reference into a converter node
// whose payload is still being decoded
func CyclicPayload(path []string, id int, tag string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindCyclicPayload,
		Path:   path,
		Tag:    tag,
		Detail: fmt.Sprintf("reference to id %d while its payload is still being decoded", id),
		Value:  id,
	}
}

// DuplicateTag creates a registration error for a tag already in use
func DuplicateTag(tag string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindDuplicateTag,
		Tag:    tag,
		Detail: "tag already registered",
	}
}

// DepthExceeded creates an error for traversal deeper than the configured limit
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("nesting deeper than %d", limit),
		Value:  limit,
	}
}

// Unsupported creates an error for a value the encoder cannot represent
func Unsupported(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		GoType: goType,
		Detail: "no converter registered and not a plain value",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
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

// Converter wraps a failure returned by a converter's encode or decode step
func Converter(phase Phase, path []string, tag string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConverter,
		Path:   path,
		Tag:    tag,
		Detail: "converter failed",
		Cause:  cause,
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
