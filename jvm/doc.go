// Package jvm defines the collaborator surface the bridge requires from
// a VM runtime: a call-scoped Env handle, opaque object references, and
// the jvalue-shaped Value slot type.
//
// The package contains interfaces and plain value types only. A real
// attachment (JNI over cgo, a remote debug channel, or the in-memory VM
// in package jvmtest) supplies the implementation. The bridge never
// assumes anything about an Env beyond this contract:
//
//   - an Env is valid for exactly one native entry, on the entering
//     thread, and must not be stored beyond it;
//   - a method returning an error generally leaves a pending VM
//     exception, observable via ExceptionPending;
//   - while an exception is pending, the only permitted interaction is
//     returning control to the VM.
package jvm
