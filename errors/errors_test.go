package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseFromJava,
				Kind:     KindTypeMismatch,
				Path:     []string{"arg[2]", "[elem]"},
				GoType:   "int32",
				JavaType: "Ljava/lang/String;",
				Detail:   "cannot convert",
			},
			contains: []string{"[from_java]", "type_mismatch", "arg[2].[elem]", "int32", "Ljava/lang/String;", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseToJava,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[to_java]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindNotFound,
				Detail: "method missing",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "not_found", "method missing", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseToJava,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := NullValue(PhaseFromJava, []string{"arg[0]"}, "Ljava/lang/String;")
	target := &Error{Phase: PhaseFromJava, Kind: KindNullValue}

	if !errors.Is(err, target) {
		t.Error("errors.Is should match on Phase and Kind")
	}

	other := &Error{Phase: PhaseToJava, Kind: KindNullValue}
	if errors.Is(err, other) {
		t.Error("errors.Is should not match a different phase")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseCompile, KindUnsupported).
		Path("field", "inner").
		GoType("map[string]int").
		Detail("maps have no Java representation").
		Build()

	if err.Phase != PhaseCompile {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCompile)
	}
	if err.Kind != KindUnsupported {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
	}
	if len(err.Path) != 2 {
		t.Errorf("Path len = %d, want 2", len(err.Path))
	}
	if err.GoType != "map[string]int" {
		t.Errorf("GoType = %q", err.GoType)
	}
}

func TestBuilder_DetailFormatting(t *testing.T) {
	err := New(PhaseResolve, KindNotFound).
		Detail("method %s.%s not found", "User", "getPassword").
		Build()

	if !strings.Contains(err.Detail, "User.getPassword") {
		t.Errorf("Detail = %q, want formatted message", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"TypeMismatch", TypeMismatch(PhaseCompile, nil, "uint32", "I"), KindTypeMismatch},
		{"NullValue", NullValue(PhaseFromJava, nil, "I"), KindNullValue},
		{"Unsupported", Unsupported(PhaseCompile, "channels"), KindUnsupported},
		{"OutOfBounds", OutOfBounds(PhaseFromJava, nil, 3, 2), KindOutOfBounds},
		{"NotFound", NotFound(PhaseResolve, "class", "User"), KindNotFound},
		{"Ambiguous", Ambiguous(PhaseCompile, "User", "get", "(I)I"), KindAmbiguous},
		{"Duplicate", Duplicate(PhaseCompile, "method", "get"), KindDuplicate},
		{"InvalidName", InvalidName(PhaseCompile, "get_x", "no underscores"), KindInvalidName},
		{"InvalidInput", InvalidInput(PhaseDispatch, "nil body"), KindInvalidInput},
		{"PendingException", PendingException(PhaseDispatch), KindPendingException},
		{"Registration", Registration("User", "get", errors.New("boom")), KindRegistration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
