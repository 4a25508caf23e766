package jvmtest

import "github.com/vmglue/javabind/jvm"

// MustNewString allocates a VM string or panics. Test convenience.
func (vm *VM) MustNewString(s string) jvm.Ref {
	r, err := vm.NewString(s)
	if err != nil {
		panic(err)
	}
	return r
}

// MustGetString reads a VM string or panics. Test convenience.
func (vm *VM) MustGetString(r jvm.Ref) string {
	s, err := vm.GetString(r)
	if err != nil {
		panic(err)
	}
	return s
}

// NewList builds a populated ArrayList from call slots. Primitive slots
// must already be boxed.
func (vm *VM) NewList(slots ...jvm.Value) (jvm.Ref, error) {
	list, err := vm.NewObject("java/util/ArrayList", "(I)V", jvm.IntValue(int32(len(slots))))
	if err != nil {
		return 0, err
	}
	for _, s := range slots {
		if _, err := vm.CallMethod(list, "java/util/List", "add", "(Ljava/lang/Object;)Z", s); err != nil {
			return 0, err
		}
	}
	return list, nil
}

// MustNewList is NewList or panic. Test convenience.
func (vm *VM) MustNewList(slots ...jvm.Value) jvm.Ref {
	r, err := vm.NewList(slots...)
	if err != nil {
		panic(err)
	}
	return r
}
