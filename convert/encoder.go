package convert

import (
	"reflect"
	"strconv"

	"github.com/vmglue/javabind/descriptor"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

// Encoder converts Go values into VM call slots following a compiled
// type shape.
type Encoder struct {
	compiler *Compiler
}

func NewEncoder(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// Encode converts value into the VM slot described by ct. The fallible
// role of the to-VM direction: every representability problem surfaces
// as an error, nothing panics.
func (e *Encoder) Encode(env jvm.Env, ct *CompiledType, value any) (jvm.Value, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		if ct.Type.Kind == descriptor.KindOption {
			return jvm.Null(), nil
		}
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindNullValue).
			GoType(ct.GoType.String()).
			JavaType(ct.Descriptor()).
			Detail("nil value for a non-optional type").
			Build()
	}
	if v.Type() != ct.GoType {
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindTypeMismatch).
			GoType(v.Type().String()).
			JavaType(ct.Descriptor()).
			Detail("value type %s does not match compiled type %s", v.Type(), ct.GoType).
			Build()
	}
	return e.encode(env, ct, v, nil)
}

// MustEncode is the infallible role: identical conversion, but any
// failure panics with the underlying error. Callers take on the
// obligation that the value is representable.
func (e *Encoder) MustEncode(env jvm.Env, ct *CompiledType, value any) jvm.Value {
	out, err := e.Encode(env, ct, value)
	if err != nil {
		panic(err)
	}
	return out
}

// EncodeArgs converts a call's argument list slot by slot.
func (e *Encoder) EncodeArgs(env jvm.Env, cts []*CompiledType, values []any) ([]jvm.Value, error) {
	if len(values) != len(cts) {
		return nil, errors.New(errors.PhaseToJava, errors.KindInvalidInput).
			Detail("argument count mismatch: got %d, want %d", len(values), len(cts)).
			Build()
	}
	out := make([]jvm.Value, len(values))
	for i, v := range values {
		slot, err := e.Encode(env, cts[i], v)
		if err != nil {
			return nil, err
		}
		out[i] = slot
	}
	return out, nil
}

func (e *Encoder) encode(env jvm.Env, ct *CompiledType, v reflect.Value, path []string) (jvm.Value, error) {
	switch ct.Type.Kind {
	case descriptor.KindBool:
		return jvm.BoolValue(v.Bool()), nil
	case descriptor.KindByte:
		if v.Kind() == reflect.Uint8 {
			return jvm.ByteValue(int8(uint8(v.Uint()))), nil
		}
		return jvm.ByteValue(int8(v.Int())), nil
	case descriptor.KindChar:
		return jvm.CharValue(uint16(v.Uint())), nil
	case descriptor.KindShort:
		return jvm.ShortValue(int16(v.Int())), nil
	case descriptor.KindInt:
		return jvm.IntValue(int32(v.Int())), nil
	case descriptor.KindLong:
		return jvm.LongValue(v.Int()), nil
	case descriptor.KindFloat:
		return jvm.FloatValue(float32(v.Float())), nil
	case descriptor.KindDouble:
		return jvm.DoubleValue(v.Float()), nil
	case descriptor.KindString:
		return e.encodeString(env, v, path)
	case descriptor.KindList:
		return e.encodeList(env, ct, v, path)
	case descriptor.KindArray:
		return e.encodeArray(env, ct, v, path)
	case descriptor.KindOption:
		return e.encodeOption(env, ct, v, path)
	case descriptor.KindObject:
		return e.encodeObject(ct, v, path)
	default:
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("cannot encode %s", ct.Type.Kind).
			Build()
	}
}

func (e *Encoder) encodeString(env jvm.Env, v reflect.Value, path []string) (jvm.Value, error) {
	r, err := env.NewString(v.String())
	if err != nil {
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("string allocation failed").
			Build()
	}
	return jvm.RefValue(r), nil
}

// encodeList materializes a slice as a growable VM collection,
// pre-sized to the slice length. Primitive elements box on the way in.
func (e *Encoder) encodeList(env jvm.Env, ct *CompiledType, v reflect.Value, path []string) (jvm.Value, error) {
	n := v.Len()
	list, err := env.NewObject("java/util/ArrayList", "(I)V", jvm.IntValue(int32(n)))
	if err != nil {
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("collection allocation failed").
			Build()
	}

	for i := 0; i < n; i++ {
		elemPath := appendIndex(path, i)
		slot, err := e.encode(env, ct.Elem, v.Index(i), elemPath)
		if err != nil {
			return jvm.Value{}, err
		}
		if ct.Elem.Type.Kind.IsPrimitive() {
			boxed, err := box(env, ct.Elem.Type, slot)
			if err != nil {
				return jvm.Value{}, err
			}
			slot = jvm.RefValue(boxed)
		}
		if _, err := env.CallMethod(list, "java/util/List", "add", "(Ljava/lang/Object;)Z", slot); err != nil {
			return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindInvalidData).
				Path(elemPath...).
				Cause(err).
				Detail("collection append failed").
				Build()
		}
	}
	return jvm.RefValue(list), nil
}

func (e *Encoder) encodeArray(env jvm.Env, ct *CompiledType, v reflect.Value, path []string) (jvm.Value, error) {
	n := v.Len()
	arr, err := env.NewArray(ct.Elem.Descriptor(), n)
	if err != nil {
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("array allocation failed").
			Build()
	}

	for i := 0; i < n; i++ {
		slot, err := e.encode(env, ct.Elem, v.Index(i), appendIndex(path, i))
		if err != nil {
			return jvm.Value{}, err
		}
		if err := env.ArraySet(arr, i, slot); err != nil {
			return jvm.Value{}, errors.OutOfBounds(errors.PhaseToJava, appendIndex(path, i), i, n)
		}
	}
	return jvm.RefValue(arr), nil
}

func (e *Encoder) encodeOption(env jvm.Env, ct *CompiledType, v reflect.Value, path []string) (jvm.Value, error) {
	if v.IsNil() {
		return jvm.Null(), nil
	}
	return e.encode(env, ct.Elem, v.Elem(), path)
}

func (e *Encoder) encodeObject(ct *CompiledType, v reflect.Value, path []string) (jvm.Value, error) {
	ov, ok := v.Interface().(ObjectValue)
	if !ok {
		return jvm.Value{}, errors.New(errors.PhaseToJava, errors.KindTypeMismatch).
			Path(path...).
			GoType(ct.GoType.String()).
			JavaType(ct.Descriptor()).
			Detail("mapped class value does not expose its VM handle").
			Build()
	}
	return jvm.RefValue(ov.JavaRef()), nil
}

func appendIndex(path []string, i int) []string {
	return append(append([]string{}, path...), "["+strconv.Itoa(i)+"]")
}
