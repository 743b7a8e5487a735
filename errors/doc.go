// Package errors provides the structured error type used throughout the
// descriptor loader.
//
// Errors are categorized by Phase (where the failure occurred) and Kind
// (what went wrong), with optional entity identifier, field path and
// cause chain. Two errors match under errors.Is when Phase and Kind
// agree, which lets callers classify failures without string matching.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Entity("com/example/Foo").
//		Path("function", "return type").
//		Detail("truncated varint").
//		Build()
//
// Or the convenience constructors for common patterns:
//
//	err := errors.IncompatibleABI("com/example/Foo", found, expected)
//	err := errors.Malformed("com/example/Foo", cause)
//
// Most negative outcomes in this layer are not errors at all: kind
// mismatches and missing metadata are expected results expressed as
// absence. This package covers what is worth reporting.
package errors
