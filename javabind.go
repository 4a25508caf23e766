package javabind

import (
	"github.com/vmglue/javabind/bridge"
	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/jvm"
)

// The root package re-exports the surface most bindings touch, so a
// typical program imports javabind alone and reaches into the
// subpackages only for the less common pieces.

type (
	// Env is the call-scoped VM handle. See jvm.Env.
	Env = jvm.Env
	// Ref is an opaque VM object reference.
	Ref = jvm.Ref
	// Value is one VM call slot.
	Value = jvm.Value

	// Object is the borrowed handle embedded in mapped class structs.
	Object = convert.Object
	// StringArray converts as a VM string array instead of an erased
	// collection.
	StringArray = convert.StringArray

	// Registry is the declaration table for classes and methods.
	Registry = bridge.Registry
	// Bound is a built registry: trampolines and callers.
	Bound = bridge.Bound
	// Trampoline is one exported VM-to-Go entry point.
	Trampoline = bridge.Trampoline
	// Caller is one resolved Go-to-VM call-back.
	Caller = bridge.Caller
	// Discipline selects checked or unchecked conversion.
	Discipline = bridge.Discipline
)

const (
	Checked   = bridge.Checked
	Unchecked = bridge.Unchecked
)

// NewRegistry returns an empty declaration table.
func NewRegistry() *Registry {
	return bridge.NewRegistry()
}
