package convert

import (
	"github.com/vmglue/javabind/jvm"
)

// StringArray converts as a VM array of strings instead of the erased
// collection that a plain []string produces.
type StringArray []string

// ObjectValue is implemented by every struct that embeds Object. It
// exposes the underlying VM reference without copying the instance.
type ObjectValue interface {
	JavaRef() jvm.Ref
	JavaClass() string
}

type objectBinder interface {
	bindJava(env jvm.Env, ref jvm.Ref, class string)
}

// Object is the borrowed VM handle embedded in every mapped class
// struct. It aliases a VM instance: copying the struct copies the
// handle, and field writes through either copy land on the same
// instance. The handle borrows the call's environment and must not
// outlive the native call that produced it.
type Object struct {
	env   jvm.Env
	ref   jvm.Ref
	class string
}

func (o *Object) bindJava(env jvm.Env, ref jvm.Ref, class string) {
	o.env = env
	o.ref = ref
	o.class = class
}

// JavaRef returns the VM reference this handle aliases.
func (o Object) JavaRef() jvm.Ref { return o.ref }

// JavaClass returns the slash-separated class path of the handle, or ""
// for an unbound handle.
func (o Object) JavaClass() string { return o.class }

// JavaEnv returns the environment the handle was bound with.
func (o Object) JavaEnv() jvm.Env { return o.env }

// IsNil reports whether the handle holds no VM reference.
func (o Object) IsNil() bool { return o.ref.IsNil() }
