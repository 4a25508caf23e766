package bridge

import (
	"reflect"

	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

type envCarrier interface {
	JavaEnv() jvm.Env
}

// Field is a typed handle to an instance field, the write-through half
// of the borrowed-reference contract: Get reads the live VM value and
// Set writes it back through the owning handle, so mutations are visible
// to the VM caller after the native entry returns. The owning class path
// and field name are fixed at construction; the value type compiles
// eagerly so shape problems surface before any call.
type Field[T any] struct {
	class string
	name  string
	ct    *convert.CompiledType
	enc   *convert.Encoder
	dec   *convert.Decoder
}

// FieldOf builds a field handle against the registry's compiler. class
// is the slash-separated owning class path.
func FieldOf[T any](r *Registry, class, name string) (*Field[T], error) {
	ct, err := r.compiler.Compile(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	if err := ct.ConsumeSupported(); err != nil {
		return nil, err
	}
	return &Field[T]{
		class: class,
		name:  name,
		ct:    ct,
		enc:   convert.NewEncoder(r.compiler),
		dec:   convert.NewDecoder(r.compiler),
	}, nil
}

// Get reads the field through obj's handle.
func (f *Field[T]) Get(obj convert.ObjectValue) (T, error) {
	var zero T
	env, err := f.envOf(obj)
	if err != nil {
		return zero, err
	}
	slot, err := env.GetField(obj.JavaRef(), f.class, f.name, f.ct.Descriptor())
	if err != nil {
		return zero, errors.New(errors.PhaseDispatch, errors.KindNotFound).
			JavaType(f.ct.Descriptor()).
			Cause(err).
			Detail("field %s.%s read failed", f.class, f.name).
			Build()
	}
	out, err := f.dec.Decode(env, f.ct, slot)
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

// Set writes the field through obj's handle. The write lands on the VM
// instance itself, not a local copy.
func (f *Field[T]) Set(obj convert.ObjectValue, v T) error {
	env, err := f.envOf(obj)
	if err != nil {
		return err
	}
	slot, err := f.enc.Encode(env, f.ct, v)
	if err != nil {
		return err
	}
	if err := env.SetField(obj.JavaRef(), f.class, f.name, f.ct.Descriptor(), slot); err != nil {
		return errors.New(errors.PhaseDispatch, errors.KindNotFound).
			JavaType(f.ct.Descriptor()).
			Cause(err).
			Detail("field %s.%s write failed", f.class, f.name).
			Build()
	}
	return nil
}

// MustGet is the unchecked-unwrap form of Get.
func (f *Field[T]) MustGet(obj convert.ObjectValue) T {
	v, err := f.Get(obj)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is the unchecked-unwrap form of Set.
func (f *Field[T]) MustSet(obj convert.ObjectValue, v T) {
	if err := f.Set(obj, v); err != nil {
		panic(err)
	}
}

func (f *Field[T]) envOf(obj convert.ObjectValue) (jvm.Env, error) {
	if obj == nil || obj.JavaRef().IsNil() {
		return nil, errors.NullValue(errors.PhaseDispatch, nil, "L"+f.class+";")
	}
	carrier, ok := obj.(envCarrier)
	if !ok || carrier.JavaEnv() == nil {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "handle is not bound to a call environment")
	}
	return carrier.JavaEnv(), nil
}

// StaticField is a typed read handle to a static field.
type StaticField[T any] struct {
	class string
	name  string
	ct    *convert.CompiledType
	dec   *convert.Decoder
}

// StaticFieldOf builds a static field handle against the registry's
// compiler.
func StaticFieldOf[T any](r *Registry, class, name string) (*StaticField[T], error) {
	ct, err := r.compiler.Compile(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	if err := ct.ConsumeSupported(); err != nil {
		return nil, err
	}
	return &StaticField[T]{
		class: class,
		name:  name,
		ct:    ct,
		dec:   convert.NewDecoder(r.compiler),
	}, nil
}

// Get reads the static field through env.
func (f *StaticField[T]) Get(env jvm.Env) (T, error) {
	var zero T
	slot, err := env.GetStaticField(f.class, f.name, f.ct.Descriptor())
	if err != nil {
		return zero, errors.New(errors.PhaseDispatch, errors.KindNotFound).
			JavaType(f.ct.Descriptor()).
			Cause(err).
			Detail("static field %s.%s read failed", f.class, f.name).
			Build()
	}
	out, err := f.dec.Decode(env, f.ct, slot)
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
