// Package convert is the type-directed conversion layer between Go
// values and VM call slots.
//
// A Compiler turns a Go type into a CompiledType, the shared shape both
// directions follow. Compilation is structural for primitives, strings,
// slices and pointers, and registration-driven for class mappings and
// named array types. Results are cached, so a type compiles once no
// matter how many call sites use it.
//
// Each direction comes in two roles. Encode and Decode are the fallible
// roles: they return an error for anything the target cannot represent,
// such as a null reference in a non-optional position. MustEncode and
// MustDecode are the infallible roles, derived from the fallible ones:
// same conversion, but a failure panics, shifting the representability
// obligation to the caller.
//
// The mapping follows VM slot widths exactly:
//
//	bool    -> Z          string          -> java/lang/String
//	int8    -> B          []T             -> java/util/List (erased)
//	uint16  -> C          []byte, []bool  -> primitive arrays
//	int16   -> S          StringArray     -> [Ljava/lang/String;
//	int32   -> I          *T              -> nullable T
//	int64   -> J          mapped struct   -> its registered class
//	float32 -> F
//	float64 -> D
//
// Platform-width and unsigned integers do not compile; the VM has no
// slot for them, and silently narrowing would corrupt values.
//
// Mapped class structs embed Object, a borrowed handle over a live VM
// instance. The handle carries the call's environment and is valid only
// until the native call that produced it returns.
package convert
