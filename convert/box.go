package convert

import (
	"github.com/vmglue/javabind/descriptor"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

// unboxMethods maps a primitive kind to the accessor on its java/lang
// wrapper class.
var unboxMethods = map[descriptor.Kind]string{
	descriptor.KindBool:   "booleanValue",
	descriptor.KindByte:   "byteValue",
	descriptor.KindChar:   "charValue",
	descriptor.KindShort:  "shortValue",
	descriptor.KindInt:    "intValue",
	descriptor.KindLong:   "longValue",
	descriptor.KindFloat:  "floatValue",
	descriptor.KindDouble: "doubleValue",
}

// box wraps a primitive slot in its java/lang wrapper via the static
// valueOf factory, the same path the VM's autoboxing takes.
func box(env jvm.Env, t descriptor.Type, v jvm.Value) (jvm.Ref, error) {
	class, ok := t.BoxedClass()
	if !ok {
		return 0, errors.Unsupported(errors.PhaseToJava, "boxing of "+t.Descriptor())
	}
	sig := "(" + string(t.Kind.Code()) + ")L" + class + ";"
	out, err := env.CallStaticMethod(class, "valueOf", sig, v)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseToJava, errors.KindInvalidData, err, "boxing via "+class+".valueOf failed")
	}
	return out.Ref(), nil
}

// unbox extracts the primitive slot from a java/lang wrapper instance.
func unbox(env jvm.Env, t descriptor.Type, r jvm.Ref) (jvm.Value, error) {
	class, ok := t.BoxedClass()
	if !ok {
		return jvm.Value{}, errors.Unsupported(errors.PhaseFromJava, "unboxing of "+t.Descriptor())
	}
	method := unboxMethods[t.Kind]
	sig := "()" + string(t.Kind.Code())
	out, err := env.CallMethod(r, class, method, sig)
	if err != nil {
		return jvm.Value{}, errors.Wrap(errors.PhaseFromJava, errors.KindInvalidData, err, "unboxing via "+class+"."+method+" failed")
	}
	return out, nil
}
