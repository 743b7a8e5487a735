// Package descriptorloader reconstructs in-memory symbol information
// from the compact binary metadata embedded in compiled loom artifacts,
// so that source being compiled can reference previously compiled
// classes without re-parsing their original source.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	descriptor-loader/       Root package with the Session entry point
//	├── metadata/            Binary format: headers, identifiers, payload codec
//	├── descriptors/         The symbol model descriptors are built from
//	├── deserialization/     Resolver, components, class/type/member decoding
//	├── memoize/             Compute-once caching underlying descriptor identity
//	├── errors/              Structured error types
//	└── cmd/desctool/        CLI for inspecting and browsing metadata
//
// # Quick Start
//
// Build a session over a class-data finder and resolve a compiled class:
//
//	session := descriptorloader.NewSession("main", finder, fragments)
//	class, ok := session.Resolver().ResolveClass(handle)
//
// Resolution never panics and never aborts the session: incompatible or
// malformed artifacts are reported through the session's ErrorReporter
// and yield absence, exactly like probing a handle for the wrong kind.
package descriptorloader
