// Package metadata implements the binary metadata format embedded in
// compiled loom artifacts.
//
// Each compiled entity carries a small typed header (kind, ABI version,
// entity name) followed by an opaque payload. Payloads are protobuf
// wire-format messages describing a class or a package facade, decoded
// here into plain proto structs together with a NameResolver backed by
// the payload's string table.
//
// # Key Types
//
//   - Kind: entity discriminator (class, package facade, ...)
//   - ABIVersion: ordered triple gating whether a payload may be decoded
//   - ClassID: hierarchical identifier of a class or package member
//   - Header: the typed header read before any full decoding
//   - BinaryClass: handle to one compiled entity
//   - ClassData / PackageData: decoded payload plus its NameResolver
//
// The same wire format can be produced with StringTable and the
// Marshal functions, which exist for tests and tooling; the production
// writer lives in the compiler back end, not here.
package metadata
