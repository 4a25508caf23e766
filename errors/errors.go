package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile  Phase = "compile"   // type and declaration registration
	PhaseToJava   Phase = "to_java"   // Go to JVM conversion
	PhaseFromJava Phase = "from_java" // JVM to Go conversion
	PhaseDispatch Phase = "dispatch"  // trampoline argument/result handling
	PhaseResolve  Phase = "resolve"   // method and field resolution
	PhaseRuntime  Phase = "runtime"   // VM collaborator operations
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindNullValue        Kind = "null_value"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidData      Kind = "invalid_data"
	KindUnsupported      Kind = "unsupported"
	KindNotFound         Kind = "not_found"
	KindAmbiguous        Kind = "ambiguous"
	KindDuplicate        Kind = "duplicate"
	KindInvalidName      Kind = "invalid_name"
	KindInvalidInput     Kind = "invalid_input"
	KindPendingException Kind = "pending_exception"
	KindRegistration     Kind = "registration"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	JavaType string
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

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.JavaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.JavaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", Java type ")
			b.WriteString(e.JavaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("Java type ")
			b.WriteString(e.JavaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.JavaType != "" {
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

// Path sets the value path (parameter, element or field chain)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// JavaType sets the Java type descriptor
func (b *Builder) JavaType(t string) *Builder {
	b.err.JavaType = t
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, javaType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		JavaType: javaType,
	}
}

// NullValue creates an error for a VM null where a non-optional value was expected
func NullValue(phase Phase, path []string, javaType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNullValue,
		Path:     path,
		JavaType: javaType,
		Detail:   "null where a non-optional value was expected",
	}
}

// Unsupported creates an unsupported type shape error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
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

// Ambiguous creates an overload ambiguity error
func Ambiguous(phase Phase, class, name, signature string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindAmbiguous,
		JavaType: signature,
		Detail:   fmt.Sprintf("%s.%s resolves to more than one target", class, name),
	}
}

// Duplicate creates a duplicate declaration error
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q declared more than once", what, name),
	}
}

// InvalidName creates an invalid declared name error
func InvalidName(phase Phase, name, rule string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidName,
		Detail: fmt.Sprintf("invalid name %q: %s", name, rule),
		Value:  name,
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

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// PendingException signals that the VM already has an exception pending and
// no further VM interaction was attempted
func PendingException(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPendingException,
		Detail: "VM exception pending, call aborted",
	}
}

// Registration creates a declaration registration error
func Registration(class, method string, cause error) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s.%s", class, method),
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
