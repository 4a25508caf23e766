package jvm

// Env is the call-scoped handle granting access to the VM for exactly
// one native entry. It is provided by the embedding runtime when the VM
// enters native code and is valid only on that thread and only until the
// entry returns. No conversion or call-back may retain it.
//
// Every method reports VM-side failures as an error; a returned error
// usually means the VM has also recorded a pending exception, which the
// dispatch layer propagates unchanged.
type Env interface {
	// NewString creates a VM string with the exact content of s.
	NewString(s string) (Ref, error)

	// GetString reads back the full content of a VM string.
	GetString(r Ref) (string, error)

	// NewArray allocates a VM array of length n whose elements have the
	// given descriptor (for example "I" or "Ljava/lang/String;").
	NewArray(elemDescriptor string, n int) (Ref, error)

	// ArrayLen returns the length of a VM array.
	ArrayLen(r Ref) (int, error)

	// ArrayGet reads element i of a VM array. Primitive arrays yield
	// primitive slots; reference arrays yield reference slots.
	ArrayGet(r Ref, i int) (Value, error)

	// ArraySet writes element i of a VM array.
	ArraySet(r Ref, i int, v Value) error

	// NewObject constructs an instance of class by invoking the
	// constructor with the given signature (for example "(I)V").
	NewObject(class, ctorSignature string, args ...Value) (Ref, error)

	// CallMethod invokes an instance method resolved by the exact
	// (class, name, signature) triple on recv.
	CallMethod(recv Ref, class, name, signature string, args ...Value) (Value, error)

	// CallStaticMethod invokes a static method resolved by the exact
	// (class, name, signature) triple.
	CallStaticMethod(class, name, signature string, args ...Value) (Value, error)

	// GetField reads an instance field through the handle.
	GetField(recv Ref, class, name, descriptor string) (Value, error)

	// SetField writes an instance field through the handle. The write is
	// visible to the VM caller after the native call returns.
	SetField(recv Ref, class, name, descriptor string, v Value) error

	// GetStaticField reads a static field.
	GetStaticField(class, name, descriptor string) (Value, error)

	// Throw records a pending VM exception of the given class carrying
	// msg. The exception surfaces in the VM caller when the native entry
	// returns.
	Throw(class, msg string) error

	// ExceptionPending reports whether the VM has an exception recorded
	// for the current entry. While one is pending no further VM
	// interaction may be attempted except returning to the VM.
	ExceptionPending() bool

	// IsInstanceOf reports whether r is an instance of class. A null
	// reference is an instance of nothing.
	IsInstanceOf(r Ref, class string) (bool, error)
}
