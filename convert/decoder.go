package convert

import (
	"reflect"

	"github.com/vmglue/javabind/descriptor"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

// Decoder converts VM call slots into Go values following a compiled
// type shape.
type Decoder struct {
	compiler *Compiler
}

func NewDecoder(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

// Decode converts a VM slot into a Go value of ct's type. The fallible
// role of the from-VM direction: null references in non-optional
// positions and class mismatches surface as errors.
func (d *Decoder) Decode(env jvm.Env, ct *CompiledType, slot jvm.Value) (any, error) {
	v, err := d.decode(env, ct, slot, nil)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// MustDecode is the infallible role of Decode; failures panic with the
// underlying error.
func (d *Decoder) MustDecode(env jvm.Env, ct *CompiledType, slot jvm.Value) any {
	out, err := d.Decode(env, ct, slot)
	if err != nil {
		panic(err)
	}
	return out
}

func (d *Decoder) decode(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	switch ct.Type.Kind {
	case descriptor.KindBool:
		return convertTo(ct.GoType, slot.Bool()), nil
	case descriptor.KindByte:
		return convertTo(ct.GoType, slot.Byte()), nil
	case descriptor.KindChar:
		return convertTo(ct.GoType, slot.Char()), nil
	case descriptor.KindShort:
		return convertTo(ct.GoType, slot.Short()), nil
	case descriptor.KindInt:
		return convertTo(ct.GoType, slot.Int()), nil
	case descriptor.KindLong:
		return convertTo(ct.GoType, slot.Long()), nil
	case descriptor.KindFloat:
		return convertTo(ct.GoType, slot.Float()), nil
	case descriptor.KindDouble:
		return convertTo(ct.GoType, slot.Double()), nil
	case descriptor.KindString:
		return d.decodeString(env, ct, slot, path)
	case descriptor.KindList:
		return d.decodeList(env, ct, slot, path)
	case descriptor.KindArray:
		return d.decodeArray(env, ct, slot, path)
	case descriptor.KindOption:
		return d.decodeOption(env, ct, slot, path)
	case descriptor.KindObject:
		return d.decodeObject(env, ct, slot, path)
	default:
		return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("cannot decode %s", ct.Type.Kind).
			Build()
	}
}

func (d *Decoder) requireRef(ct *CompiledType, slot jvm.Value, path []string) (jvm.Ref, error) {
	if !slot.IsRef() {
		return 0, errors.TypeMismatch(errors.PhaseFromJava, path, ct.GoType.String(), ct.Descriptor())
	}
	if slot.Ref().IsNil() {
		return 0, errors.NullValue(errors.PhaseFromJava, path, ct.Descriptor())
	}
	return slot.Ref(), nil
}

func (d *Decoder) decodeString(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	r, err := d.requireRef(ct, slot, path)
	if err != nil {
		return reflect.Value{}, err
	}
	s, err := env.GetString(r)
	if err != nil {
		return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("string read failed").
			Build()
	}
	return convertTo(ct.GoType, s), nil
}

// decodeList reads the collection element by element through the
// collection interface. Primitive elements unbox on the way out.
func (d *Decoder) decodeList(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	r, err := d.requireRef(ct, slot, path)
	if err != nil {
		return reflect.Value{}, err
	}

	sizeSlot, err := env.CallMethod(r, "java/util/List", "size", "()I")
	if err != nil {
		return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("collection size failed").
			Build()
	}
	n := int(sizeSlot.Int())

	out := reflect.MakeSlice(ct.GoType, n, n)
	for i := 0; i < n; i++ {
		elemPath := appendIndex(path, i)
		elemSlot, err := env.CallMethod(r, "java/util/List", "get", "(I)Ljava/lang/Object;", jvm.IntValue(int32(i)))
		if err != nil {
			return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindInvalidData).
				Path(elemPath...).
				Cause(err).
				Detail("collection element read failed").
				Build()
		}
		if ct.Elem.Type.Kind.IsPrimitive() {
			if elemSlot.IsNullRef() {
				return reflect.Value{}, errors.NullValue(errors.PhaseFromJava, elemPath, ct.Elem.Descriptor())
			}
			elemSlot, err = unbox(env, ct.Elem.Type, elemSlot.Ref())
			if err != nil {
				return reflect.Value{}, err
			}
		}
		ev, err := d.decode(env, ct.Elem, elemSlot, elemPath)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev.Convert(ct.GoType.Elem()))
	}
	return out, nil
}

func (d *Decoder) decodeArray(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	r, err := d.requireRef(ct, slot, path)
	if err != nil {
		return reflect.Value{}, err
	}

	n, err := env.ArrayLen(r)
	if err != nil {
		return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("array length failed").
			Build()
	}

	out := reflect.MakeSlice(ct.GoType, n, n)
	for i := 0; i < n; i++ {
		elemPath := appendIndex(path, i)
		elemSlot, err := env.ArrayGet(r, i)
		if err != nil {
			return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindInvalidData).
				Path(elemPath...).
				Cause(err).
				Detail("array element read failed").
				Build()
		}
		ev, err := d.decode(env, ct.Elem, elemSlot, elemPath)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev.Convert(ct.GoType.Elem()))
	}
	return out, nil
}

func (d *Decoder) decodeOption(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	if slot.IsNullRef() {
		return reflect.Zero(ct.GoType), nil
	}
	ev, err := d.decode(env, ct.Elem, slot, path)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(ct.GoType.Elem())
	out.Elem().Set(ev)
	return out, nil
}

func (d *Decoder) decodeObject(env jvm.Env, ct *CompiledType, slot jvm.Value, path []string) (reflect.Value, error) {
	r, err := d.requireRef(ct, slot, path)
	if err != nil {
		return reflect.Value{}, err
	}

	ok, err := env.IsInstanceOf(r, ct.Type.Class)
	if err != nil {
		return reflect.Value{}, errors.Wrap(errors.PhaseFromJava, errors.KindInvalidData, err, "instance check failed")
	}
	if !ok {
		return reflect.Value{}, errors.New(errors.PhaseFromJava, errors.KindTypeMismatch).
			Path(path...).
			GoType(ct.GoType.String()).
			JavaType(ct.Descriptor()).
			Detail("reference is not an instance of %s", ct.Type.Class).
			Build()
	}

	out := reflect.New(ct.GoType)
	out.Interface().(objectBinder).bindJava(env, r, ct.Type.Class)
	return out.Elem(), nil
}

func convertTo(goType reflect.Type, v any) reflect.Value {
	rv := reflect.ValueOf(v)
	if rv.Type() == goType {
		return rv
	}
	return rv.Convert(goType)
}
