// Package deserialization turns decoded metadata into linked descriptor
// graphs.
//
// The entry point is Resolver, which gates a compiled entity's header on
// ABI compatibility and kind before handing the payload to the class
// deserializer or a package member scope. All decode operations share a
// Components aggregate (finder, loaders, package fragment provider) and
// run inside a per-declaration Context carrying the payload's name
// resolver and a chain of type-parameter scopes from enclosing
// declarations.
//
// Identity is the central invariant: the class deserializer memoizes by
// class identifier and registers each descriptor before decoding its
// body, so mutually recursive classes resolve to single canonical
// instances without infinite recursion.
//
// Failure is localized. An incompatible artifact is reported and
// skipped; a malformed payload poisons only its own identifier; an
// unresolvable type reference becomes an error type inside an otherwise
// sound declaration. Absence is a normal outcome everywhere, expressed
// as (value, false) returns.
package deserialization
