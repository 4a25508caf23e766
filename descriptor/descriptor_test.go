package descriptor

import (
	"testing"
)

func TestPrimitiveCodes(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Bool, "Z"},
		{Byte, "B"},
		{Char, "C"},
		{Short, "S"},
		{Int, "I"},
		{Long, "J"},
		{Float, "F"},
		{Double, "D"},
		{Void, "V"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReferenceDescriptors(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"string", String, "Ljava/lang/String;"},
		{"list erases element", ListOf(Int), "Ljava/util/List;"},
		{"list of string erases too", ListOf(String), "Ljava/util/List;"},
		{"byte array", ArrayOf(Byte), "[B"},
		{"bool array", ArrayOf(Bool), "[Z"},
		{"string array", ArrayOf(String), "[Ljava/lang/String;"},
		{"class", Class("com.example", "User"), "Lcom/example/User;"},
		{"default package class", Class("", "User"), "LUser;"},
		{"array of class", ArrayOf(Class("com.example", "User")), "[Lcom/example/User;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionErasure(t *testing.T) {
	opt, err := OptionOf(String)
	if err != nil {
		t.Fatalf("OptionOf(String) failed: %v", err)
	}
	if got := opt.Descriptor(); got != "Ljava/lang/String;" {
		t.Errorf("option<string> = %q, want payload descriptor", got)
	}

	optArr, err := OptionOf(ArrayOf(String))
	if err != nil {
		t.Fatalf("OptionOf(ArrayOf(String)) failed: %v", err)
	}
	if got := optArr.Descriptor(); got != "[Ljava/lang/String;" {
		t.Errorf("option<array<string>> = %q, want [Ljava/lang/String;", got)
	}
}

func TestOptionOfPrimitiveRejected(t *testing.T) {
	for _, p := range []Type{Bool, Byte, Char, Short, Int, Long, Float, Double} {
		if _, err := OptionOf(p); err == nil {
			t.Errorf("OptionOf(%s) should fail: primitive slots are not nullable", p.Kind)
		}
	}
}

func TestNestedComposition(t *testing.T) {
	// sequence-of-optional-array-of-bytes resolves leaf-first
	opt, err := OptionOf(ArrayOf(Byte))
	if err != nil {
		t.Fatalf("OptionOf failed: %v", err)
	}
	typ := ListOf(opt)

	if got := typ.Descriptor(); got != "Ljava/util/List;" {
		t.Errorf("outer descriptor = %q, want erased list", got)
	}
	if got := typ.Elem.Descriptor(); got != "[B" {
		t.Errorf("element descriptor = %q, want [B", got)
	}

	// Array of option of array: option erases inside the array marker.
	arr := ArrayOf(opt)
	if got := arr.Descriptor(); got != "[[B" {
		t.Errorf("array<option<array<byte>>> = %q, want [[B", got)
	}
}

func TestDescriptorDeterminism(t *testing.T) {
	a := ListOf(ArrayOf(Class("com.example", "User")))
	b := ListOf(ArrayOf(Class("com.example", "User")))
	if a.Descriptor() != b.Descriptor() {
		t.Error("identical shapes must produce identical descriptors")
	}
	if a.Elem.Descriptor() != b.Elem.Descriptor() {
		t.Error("identical element shapes must produce identical descriptors")
	}
}

func TestMethodSignature(t *testing.T) {
	tests := []struct {
		name   string
		params []Type
		ret    *Type
		want   string
	}{
		{"void no args", nil, nil, "()V"},
		{"primitives", []Type{Int, Bool}, &String, "(IZ)Ljava/lang/String;"},
		{"list param", []Type{ListOf(String)}, &String, "(Ljava/util/List;)Ljava/lang/String;"},
		{"array return", []Type{}, ptr(ArrayOf(String)), "()[Ljava/lang/String;"},
		{"mixed", []Type{Int, String, ArrayOf(Byte)}, &Int, "(ILjava/lang/String;[B)I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MethodSignature(tt.params, tt.ret); got != tt.want {
				t.Errorf("MethodSignature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func ptr(t Type) *Type { return &t }

func TestSymbol(t *testing.T) {
	tests := []struct {
		pkg, class, method string
		want               string
	}{
		{"com.example.greeter", "HelloWorld", "special", "Java_com_example_greeter_HelloWorld_special"},
		{"", "User", "getInt", "Java_User_getInt"},
	}

	for _, tt := range tests {
		if got := Symbol(tt.pkg, tt.class, tt.method); got != tt.want {
			t.Errorf("Symbol(%q, %q, %q) = %q, want %q", tt.pkg, tt.class, tt.method, got, tt.want)
		}
	}
}

func TestValidateMethodName(t *testing.T) {
	if err := ValidateMethodName("getPassword"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateMethodName("get_password"); err == nil {
		t.Error("underscore name should be rejected")
	}
	if err := ValidateMethodName(""); err == nil {
		t.Error("empty name should be rejected")
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"GetPassword", "getPassword"},
		{"Add", "add"},
		{"already", "already"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LowerCamel(tt.in); got != tt.want {
			t.Errorf("LowerCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnerased(t *testing.T) {
	opt, _ := OptionOf(String)
	if got := opt.Unerased(); got.Kind != KindString {
		t.Errorf("Unerased() kind = %v, want string", got.Kind)
	}
	if got := Int.Unerased(); got.Kind != KindInt {
		t.Errorf("Unerased() on non-option changed kind to %v", got.Kind)
	}
}

func TestBoxedClass(t *testing.T) {
	cls, ok := Int.BoxedClass()
	if !ok || cls != "java/lang/Integer" {
		t.Errorf("Int.BoxedClass() = %q, %v", cls, ok)
	}
	if _, ok := String.BoxedClass(); ok {
		t.Error("reference kinds must not report a boxed class")
	}
}
