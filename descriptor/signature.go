package descriptor

import (
	"strings"

	"github.com/vmglue/javabind/errors"
)

// MethodSignature builds the VM method signature for the given parameter
// and return types. A nil ret is a void return.
func MethodSignature(params []Type, ret *Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(p.Descriptor())
	}
	b.WriteByte(')')
	if ret == nil {
		b.WriteByte('V')
	} else {
		b.WriteString(ret.Descriptor())
	}
	return b.String()
}

// Symbol returns the exported native symbol name for a declared method,
// following the host VM's native-method resolution convention:
// "Java_" + package (dots become underscores) + "_" + class + "_" + method.
func Symbol(pkg, class, method string) string {
	var b strings.Builder
	b.WriteString("Java_")
	if pkg != "" {
		b.WriteString(strings.ReplaceAll(pkg, ".", "_"))
		b.WriteByte('_')
	}
	b.WriteString(class)
	b.WriteByte('_')
	b.WriteString(method)
	return b.String()
}

// ValidateMethodName rejects method names the symbol mangling cannot
// represent unambiguously.
func ValidateMethodName(name string) error {
	if name == "" {
		return errors.InvalidName(errors.PhaseCompile, name, "empty method name")
	}
	if strings.Contains(name, "_") {
		return errors.InvalidName(errors.PhaseCompile, name, "native method names cannot contain '_'")
	}
	return nil
}

// LowerCamel converts an exported Go name to the VM's method naming
// convention (GetHTTPURL -> getHTTPURL, Add -> add).
func LowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}
