// Package javabind is a type-directed marshaling layer between Go and a
// Java-style virtual machine's native call interface.
//
// Go types compile into wire descriptors; values convert bidirectionally
// between Go representations and the VM's boxed object model; and an
// explicit declaration table generates the trampolines that glue an
// exported native symbol to an ordinary Go function, threading a
// call-scoped VM handle and translating conversion failures into VM
// exceptions.
//
// The packages, leaves first:
//
//   - descriptor: wire descriptors, method signatures, symbol mangling
//   - jvm: the narrow Env interface and jvalue-like call slots
//   - convert: the Go type compiler and the four conversion roles
//   - bridge: the declaration registry, trampolines, call-backs, and
//     borrowed field handles
//   - jvmtest: an in-memory VM for hermetic tests
//   - errors: the structured error type shared by all of the above
//
// The root package re-exports the common surface; see javabind.go.
package javabind
