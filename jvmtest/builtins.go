package jvmtest

import (
	"fmt"

	"github.com/vmglue/javabind/jvm"
)

// defineBuiltins installs the minimal java/lang and java/util surface
// the conversion layer touches: the primitive wrappers with their
// valueOf factories and accessors, strings, and ArrayList behind the
// List interface.
func (vm *VM) defineBuiltins() {
	vm.DefineClass("java/lang/Object")
	vm.DefineClass("java/lang/String", Implements("java/lang/CharSequence"))
	vm.DefineClass("java/util/List")
	vm.DefineClass("java/lang/RuntimeException", Extends("java/lang/Exception"))
	vm.DefineClass("java/lang/Exception", Extends("java/lang/Throwable"))
	vm.DefineClass("java/lang/Throwable")

	vm.defineWrapper("java/lang/Boolean", "Z", "booleanValue")
	vm.defineWrapper("java/lang/Byte", "B", "byteValue")
	vm.defineWrapper("java/lang/Character", "C", "charValue")
	vm.defineWrapper("java/lang/Short", "S", "shortValue")
	vm.defineWrapper("java/lang/Integer", "I", "intValue")
	vm.defineWrapper("java/lang/Long", "J", "longValue")
	vm.defineWrapper("java/lang/Float", "F", "floatValue")
	vm.defineWrapper("java/lang/Double", "D", "doubleValue")

	vm.defineArrayList()
}

// defineWrapper installs a java/lang primitive box: a static valueOf
// factory storing the primitive slot in a field, and the matching
// accessor reading it back.
func (vm *VM) defineWrapper(class, code, accessor string) {
	cls := vm.DefineClass(class)

	cls.StaticMethod("valueOf", "("+code+")L"+class+";", func(env jvm.Env, _ jvm.Ref, args []jvm.Value) (jvm.Value, error) {
		if len(args) != 1 {
			return jvm.Value{}, fmt.Errorf("jvmtest: %s.valueOf wants 1 argument, got %d", class, len(args))
		}
		vm.mu.Lock()
		r := vm.alloc(&object{
			class:  class,
			kind:   kindPlain,
			fields: map[string]jvm.Value{"value": args[0]},
		})
		vm.mu.Unlock()
		return jvm.RefValue(r), nil
	})

	cls.Method(accessor, "()"+code, func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		o, err := vm.get(recv)
		if err != nil {
			return jvm.Value{}, err
		}
		return o.fields["value"], nil
	})
}

func (vm *VM) defineArrayList() {
	cls := vm.DefineClass("java/util/ArrayList", Implements("java/util/List"))

	cls.Constructor("(I)V", func(env jvm.Env, recv jvm.Ref, args []jvm.Value) (jvm.Value, error) {
		if len(args) == 1 && args[0].Int() < 0 {
			return jvm.Value{}, fmt.Errorf("jvmtest: negative ArrayList capacity %d", args[0].Int())
		}
		return jvm.Value{}, nil
	})

	cls.Method("add", "(Ljava/lang/Object;)Z", func(env jvm.Env, recv jvm.Ref, args []jvm.Value) (jvm.Value, error) {
		if len(args) != 1 {
			return jvm.Value{}, fmt.Errorf("jvmtest: List.add wants 1 argument, got %d", len(args))
		}
		vm.mu.Lock()
		defer vm.mu.Unlock()
		o, err := vm.get(recv)
		if err != nil {
			return jvm.Value{}, err
		}
		o.list = append(o.list, args[0])
		return jvm.BoolValue(true), nil
	})

	cls.Method("get", "(I)Ljava/lang/Object;", func(env jvm.Env, recv jvm.Ref, args []jvm.Value) (jvm.Value, error) {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		o, err := vm.get(recv)
		if err != nil {
			return jvm.Value{}, err
		}
		i := int(args[0].Int())
		if i < 0 || i >= len(o.list) {
			vm.hasPending = true
			vm.pendingClass = "java/lang/IndexOutOfBoundsException"
			vm.pendingMsg = fmt.Sprintf("Index %d out of bounds for length %d", i, len(o.list))
			return jvm.Value{}, fmt.Errorf("jvmtest: list index %d out of range [0,%d)", i, len(o.list))
		}
		return o.list[i], nil
	})

	cls.Method("size", "()I", func(env jvm.Env, recv jvm.Ref, _ []jvm.Value) (jvm.Value, error) {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		o, err := vm.get(recv)
		if err != nil {
			return jvm.Value{}, err
		}
		return jvm.IntValue(int32(len(o.list))), nil
	})
}
