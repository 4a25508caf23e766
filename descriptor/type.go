package descriptor

import (
	"strings"

	"github.com/vmglue/javabind/errors"
)

// Type is the compile-time shape of a bridged value. The zero value is
// not meaningful; construct types through the package functions so that
// unsupported compositions are rejected up front.
type Type struct {
	// Elem is the element type for List, Array and Option kinds. For
	// List it is not part of the wire descriptor (VM collections are
	// erased at the ABI level) but is required for overload resolution
	// and element conversion.
	Elem  *Type
	Class string // slash-separated class path for Object kinds
	Kind  Kind
}

var (
	Bool   = Type{Kind: KindBool}
	Byte   = Type{Kind: KindByte}
	Char   = Type{Kind: KindChar}
	Short  = Type{Kind: KindShort}
	Int    = Type{Kind: KindInt}
	Long   = Type{Kind: KindLong}
	Float  = Type{Kind: KindFloat}
	Double = Type{Kind: KindDouble}
	String = Type{Kind: KindString}
	Void   = Type{Kind: KindVoid}
)

// ListOf builds the type of a VM collection holding elem values.
// The element type is kept out-of-band; the wire descriptor is always
// the erased collection class.
func ListOf(elem Type) Type {
	e := elem
	return Type{Kind: KindList, Elem: &e}
}

// ArrayOf builds the type of a VM array holding elem values.
func ArrayOf(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

// OptionOf builds a nullable slot holding elem values. The VM model has
// no first-class optional, so the payload must occupy a reference slot;
// an optional of a primitive is rejected at build time.
func OptionOf(elem Type) (Type, error) {
	if elem.Kind.IsPrimitive() {
		return Type{}, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			JavaType(string(elem.Kind.Code())).
			Detail("optional of primitive %s: primitive slots are not nullable", elem.Kind).
			Build()
	}
	if elem.Kind == KindVoid {
		return Type{}, errors.Unsupported(errors.PhaseCompile, "optional of void")
	}
	e := elem
	return Type{Kind: KindOption, Elem: &e}, nil
}

// Class builds a user-defined class mapping. pkg is the dotted package
// ("com.example"); an empty pkg maps to the default package.
func Class(pkg, name string) Type {
	return Type{Kind: KindObject, Class: classPath(pkg, name)}
}

func classPath(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return strings.ReplaceAll(pkg, ".", "/") + "/" + name
}

// Descriptor returns the canonical wire descriptor for t. Computation is
// structural and deterministic: composite descriptors concatenate their
// component descriptors leaf-first, and an Option erases to its payload.
func (t Type) Descriptor() string {
	switch t.Kind {
	case KindBool, KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return string(t.Kind.Code())
	case KindVoid:
		return "V"
	case KindString:
		return "Ljava/lang/String;"
	case KindList:
		return "Ljava/util/List;"
	case KindArray:
		return "[" + t.Elem.Descriptor()
	case KindOption:
		return t.Elem.Descriptor()
	case KindObject:
		return "L" + t.Class + ";"
	default:
		return ""
	}
}

// Unerased returns t with Option layers stripped, exposing the type that
// actually occupies the VM slot.
func (t Type) Unerased() Type {
	for t.Kind == KindOption {
		t = *t.Elem
	}
	return t
}

// BoxedClass returns the class path of the wrapper type used when a value
// of this kind is stored in an erased collection slot, and whether boxing
// is required at all.
func (t Type) BoxedClass() (string, bool) {
	switch t.Kind {
	case KindBool:
		return "java/lang/Boolean", true
	case KindByte:
		return "java/lang/Byte", true
	case KindChar:
		return "java/lang/Character", true
	case KindShort:
		return "java/lang/Short", true
	case KindInt:
		return "java/lang/Integer", true
	case KindLong:
		return "java/lang/Long", true
	case KindFloat:
		return "java/lang/Float", true
	case KindDouble:
		return "java/lang/Double", true
	default:
		return "", false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindList:
		return "list<" + t.Elem.String() + ">"
	case KindArray:
		return "array<" + t.Elem.String() + ">"
	case KindOption:
		return "option<" + t.Elem.String() + ">"
	case KindObject:
		return t.Class
	default:
		return t.Kind.String()
	}
}
