package convert_test

import (
	stderrors "errors"
	"math"
	"reflect"
	"testing"

	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
	"github.com/vmglue/javabind/jvmtest"
)

func TestCompileDescriptors(t *testing.T) {
	c := convert.NewCompiler()

	tests := []struct {
		name   string
		goType reflect.Type
		want   string
	}{
		{"bool", reflect.TypeOf(false), "Z"},
		{"int8", reflect.TypeOf(int8(0)), "B"},
		{"uint16", reflect.TypeOf(uint16(0)), "C"},
		{"int16", reflect.TypeOf(int16(0)), "S"},
		{"int32", reflect.TypeOf(int32(0)), "I"},
		{"int64", reflect.TypeOf(int64(0)), "J"},
		{"float32", reflect.TypeOf(float32(0)), "F"},
		{"float64", reflect.TypeOf(float64(0)), "D"},
		{"string", reflect.TypeOf(""), "Ljava/lang/String;"},
		{"slice erases to list", reflect.TypeOf([]int32(nil)), "Ljava/util/List;"},
		{"nested slice erases once", reflect.TypeOf([][]string(nil)), "Ljava/util/List;"},
		{"bytes", reflect.TypeOf([]byte(nil)), "[B"},
		{"bools", reflect.TypeOf([]bool(nil)), "[Z"},
		{"string array", reflect.TypeOf(convert.StringArray(nil)), "[Ljava/lang/String;"},
		{"optional erases to payload", reflect.TypeOf((*string)(nil)), "Ljava/lang/String;"},
		{"optional array", reflect.TypeOf((*convert.StringArray)(nil)), "[Ljava/lang/String;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := c.Compile(tt.goType)
			if err != nil {
				t.Fatalf("Compile(%s): %v", tt.goType, err)
			}
			if got := ct.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileRejections(t *testing.T) {
	c := convert.NewCompiler()

	tests := []struct {
		name   string
		goType reflect.Type
	}{
		{"platform int", reflect.TypeOf(0)},
		{"platform uint", reflect.TypeOf(uint(0))},
		{"uint8 scalar", reflect.TypeOf(uint8(0))},
		{"uint32", reflect.TypeOf(uint32(0))},
		{"uint64", reflect.TypeOf(uint64(0))},
		{"optional primitive", reflect.TypeOf((*int32)(nil))},
		{"unregistered struct", reflect.TypeOf(struct{ X int32 }{})},
		{"map", reflect.TypeOf(map[string]int32(nil))},
		{"chan", reflect.TypeOf((chan int)(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Compile(tt.goType); err == nil {
				t.Errorf("Compile(%s) should fail", tt.goType)
			}
		})
	}
}

func TestCompileIsCachedAndDeterministic(t *testing.T) {
	c := convert.NewCompiler()

	a, err := c.Compile(reflect.TypeOf([]string(nil)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compile(reflect.TypeOf([]string(nil)))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical Go types should share one compiled shape")
	}
}

func TestConsumeAsymmetry(t *testing.T) {
	c := convert.NewCompiler()

	// A collection of optional arrays converts to the VM but not back.
	ct, err := c.Compile(reflect.TypeOf([]*convert.StringArray(nil)))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := ct.ConsumeSupported(); err == nil {
		t.Fatal("ConsumeSupported should reject a collection of optional arrays")
	}

	plain, err := c.Compile(reflect.TypeOf([]string(nil)))
	if err != nil {
		t.Fatal(err)
	}
	if err := plain.ConsumeSupported(); err != nil {
		t.Errorf("ConsumeSupported([]string) = %v, want nil", err)
	}
}

func roundTrip(t *testing.T, value any) any {
	t.Helper()
	vm := jvmtest.NewVM()
	c := convert.NewCompiler()
	enc := convert.NewEncoder(c)
	dec := convert.NewDecoder(c)

	ct, err := c.Compile(reflect.TypeOf(value))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	slot, err := enc.Encode(vm.Env(), ct, value)
	if err != nil {
		t.Fatalf("Encode(%v): %v", value, err)
	}
	out, err := dec.Decode(vm.Env(), ct, slot)
	if err != nil {
		t.Fatalf("Decode(%v): %v", value, err)
	}
	return out
}

func TestPrimitiveRoundTrips(t *testing.T) {
	tests := []any{
		true, false,
		int8(math.MinInt8), int8(math.MaxInt8),
		uint16(0), uint16(math.MaxUint16),
		int16(math.MinInt16), int16(math.MaxInt16),
		int32(math.MinInt32), int32(math.MaxInt32),
		int64(math.MinInt64), int64(math.MaxInt64),
		float32(math.Pi), float32(math.Inf(-1)),
		math.Pi, math.Inf(1), math.SmallestNonzeroFloat64,
	}
	for _, v := range tests {
		if got := roundTrip(t, v); got != v {
			t.Errorf("round trip %T(%v) = %v", v, v, got)
		}
	}
}

func TestFloatRoundTripsPreserveNaN(t *testing.T) {
	got := roundTrip(t, math.NaN()).(float64)
	if !math.IsNaN(got) {
		t.Error("float64 NaN should survive the round trip")
	}
	got32 := roundTrip(t, float32(math.NaN())).(float32)
	if !math.IsNaN(float64(got32)) {
		t.Error("float32 NaN should survive the round trip")
	}
}

func TestTextRoundTrips(t *testing.T) {
	tests := []string{
		"",
		"plain",
		"with\x00nul",
		"line\r\nwith\ttabs",
		"accentué",
		"é combining cluster",
		"🇮🇹 flag sequence",
		"🙂 outside the BMP",
	}
	for _, v := range tests {
		if got := roundTrip(t, v); got != v {
			t.Errorf("round trip %q = %q", v, got)
		}
	}
}

func TestSequenceRoundTrips(t *testing.T) {
	tests := []any{
		[]int32{},
		[]int32{1, -2, 3},
		[]string{"a", "b", "c"},
		[][]int32{{1}, {}, {2, 3}},
		[]byte{0x00, 0x7f, 0xff},
		[]bool{true, false, true},
		convert.StringArray{"x", "y"},
	}
	for _, v := range tests {
		got := roundTrip(t, v)
		if !reflect.DeepEqual(got, v) {
			t.Errorf("round trip %T(%v) = %v", v, v, got)
		}
	}
}

func TestOptionalRoundTrips(t *testing.T) {
	s := "present"
	got := roundTrip(t, &s).(*string)
	if got == nil || *got != s {
		t.Fatalf("round trip &%q = %v", s, got)
	}

	gotNil := roundTrip(t, (*string)(nil)).(*string)
	if gotNil != nil {
		t.Errorf("round trip nil = %v, want nil", gotNil)
	}
}

func TestNullInNonOptionalPositionFails(t *testing.T) {
	vm := jvmtest.NewVM()
	c := convert.NewCompiler()
	dec := convert.NewDecoder(c)

	ct, err := c.Compile(reflect.TypeOf(""))
	if err != nil {
		t.Fatal(err)
	}
	_, err = dec.Decode(vm.Env(), ct, jvm.Null())
	if err == nil {
		t.Fatal("decoding null into string should fail")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) || cerr.Kind != errors.KindNullValue {
		t.Errorf("error = %v, want kind %s", err, errors.KindNullValue)
	}
}

func TestElementReadFailureReportsInvalidData(t *testing.T) {
	vm := jvmtest.NewVM()
	vm.DefineClass("com/example/BrokenList", jvmtest.Implements("java/util/List")).
		Constructor("()V", func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
			return jvm.Value{}, nil
		}).
		Method("size", "()I", func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
			return jvm.IntValue(1), nil
		}).
		Method("get", "(I)Ljava/lang/Object;", func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
			return jvm.Value{}, stderrors.New("backing store corrupted")
		})

	ref, err := vm.NewObject("com/example/BrokenList", "()V")
	if err != nil {
		t.Fatal(err)
	}

	c := convert.NewCompiler()
	dec := convert.NewDecoder(c)
	ct, err := c.Compile(reflect.TypeOf([]string(nil)))
	if err != nil {
		t.Fatal(err)
	}

	_, err = dec.Decode(vm.Env(), ct, jvm.RefValue(ref))
	if err == nil {
		t.Fatal("decoding a broken collection should fail")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) || cerr.Kind != errors.KindInvalidData {
		t.Errorf("error = %v, want kind %s", err, errors.KindInvalidData)
	}
	if cerr != nil && cerr.Unwrap() == nil {
		t.Error("element read failure should carry its cause")
	}
}

func TestMustDecodePanicsOnNull(t *testing.T) {
	vm := jvmtest.NewVM()
	c := convert.NewCompiler()
	dec := convert.NewDecoder(c)

	ct, err := c.Compile(reflect.TypeOf(""))
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustDecode should panic on null")
		}
	}()
	dec.MustDecode(vm.Env(), ct, jvm.Null())
}

type user struct {
	convert.Object
}

func TestRegisteredClassRoundTrip(t *testing.T) {
	vm := jvmtest.NewVM()
	vm.DefineClass("com/example/User").
		Constructor("()V", func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
			return jvm.Value{}, nil
		})

	c := convert.NewCompiler()
	if err := c.RegisterClass(reflect.TypeOf(user{}), "com.example", "User"); err != nil {
		t.Fatalf("RegisterClass: %v", err)
	}

	ct, err := c.Compile(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := ct.Descriptor(); got != "Lcom/example/User;" {
		t.Fatalf("Descriptor() = %q", got)
	}

	ref, err := vm.NewObject("com/example/User", "()V")
	if err != nil {
		t.Fatal(err)
	}

	dec := convert.NewDecoder(c)
	out, err := dec.Decode(vm.Env(), ct, jvm.RefValue(ref))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u := out.(user)
	if u.JavaRef() != ref {
		t.Error("decoded handle should alias the incoming reference")
	}
	if u.JavaClass() != "com/example/User" {
		t.Errorf("JavaClass() = %q", u.JavaClass())
	}

	enc := convert.NewEncoder(c)
	slot, err := enc.Encode(vm.Env(), ct, u)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if slot.Ref() != ref {
		t.Error("encoding a handle should pass through the same reference")
	}
}

func TestDecodeRejectsWrongClass(t *testing.T) {
	vm := jvmtest.NewVM()
	vm.DefineClass("com/example/User")
	c := convert.NewCompiler()
	if err := c.RegisterClass(reflect.TypeOf(user{}), "com.example", "User"); err != nil {
		t.Fatal(err)
	}
	ct, err := c.Compile(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatal(err)
	}

	str := vm.MustNewString("not a user")
	dec := convert.NewDecoder(c)
	if _, err := dec.Decode(vm.Env(), ct, jvm.RefValue(str)); err == nil {
		t.Error("decoding a string into a User mapping should fail")
	}
}

func TestRegisterClassIdempotent(t *testing.T) {
	c := convert.NewCompiler()
	if err := c.RegisterClass(reflect.TypeOf(user{}), "com.example", "User"); err != nil {
		t.Fatal(err)
	}
	if err := c.RegisterClass(reflect.TypeOf(user{}), "com.example", "User"); err != nil {
		t.Errorf("re-registering the same mapping should be a no-op, got %v", err)
	}
	if err := c.RegisterClass(reflect.TypeOf(user{}), "com.example", "Other"); err == nil {
		t.Error("conflicting class mapping should fail")
	}
}

func TestRegisterClassRequiresEmbeddedObject(t *testing.T) {
	c := convert.NewCompiler()
	err := c.RegisterClass(reflect.TypeOf(struct{ X int32 }{}), "com.example", "Bad")
	if err == nil {
		t.Error("RegisterClass without an embedded Object should fail")
	}
}
