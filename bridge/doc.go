// Package bridge turns declarations into callable glue between the VM
// and Go: trampolines for VM-to-Go entries and callers for Go-to-VM
// call-backs.
//
// Declarations form an explicit table. A Registry collects classes, each
// class collects exported methods and call-backs, and Build validates
// the whole table at once: every involved type compiles, method names
// pass the VM's naming rules, exported symbols are unique, and each
// call-back's (class, name, signature) triple resolves unambiguously.
// Anything that can fail is failed at build time; a built Bound holds
// only dispatch work.
//
// Exported methods run under one of two disciplines. Checked, the
// default, converts arguments and results fallibly: a failure raises a
// VM exception carrying the failure's description and the Go body never
// runs on bad input. Unchecked trades that safety for the direct path;
// a shape mismatch there is the caller's contract breach. An exception
// already pending on the environment short-circuits both.
//
// Field handles complete the borrowed-reference picture: a Field[T]
// reads and writes an instance field through the live VM handle, so a
// mutation made by the Go body is what the VM caller observes after the
// entry returns.
package bridge
