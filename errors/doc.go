// Package errors provides structured error types for the javabind library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: value path, Go type name, Java type descriptor,
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFromJava, errors.KindTypeMismatch).
//		Path("arg[0]", "[elem]").
//		GoType("int32").
//		JavaType("Ljava/lang/String;").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseCompile, path, "int32", "I")
//	err := errors.NullValue(errors.PhaseFromJava, path, "Ljava/lang/String;")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
