// Package descriptors defines the in-memory symbol model reconstructed
// from compiled metadata: modules, package fragments, classes, members,
// type parameters and type expressions.
//
// Descriptors are created on first resolution and live for the rest of
// the compilation session. Their public shape never changes after full
// construction, although construction itself may fill fields lazily:
// a class registered in the deserialization cache is visible to
// re-entrant lookups before its supertypes and members are materialized,
// which is what makes mutually recursive class graphs constructible.
//
// Identity matters more than equality here: within one session a given
// class identifier maps to exactly one *Class, so pointer comparison is
// the canonical sameness check.
package descriptors
