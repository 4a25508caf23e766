// Package jvmtest provides an in-memory VM implementing jvm.Env for
// hermetic tests. It models exactly the surface the conversion and
// dispatch layers touch: a reference heap, UTF-16 strings, typed
// arrays, the java/lang primitive wrappers, ArrayList behind the List
// interface, user-defined classes with Go closures as method bodies,
// and the pending exception flag.
//
// It is a test double, not an interpreter: there is no bytecode, no
// garbage collection, and no verifier. Classes are defined with
// DefineClass and instantiated through the ordinary Env surface.
package jvmtest
