// Package transcoder converts Go object graphs to wire trees and back.
//
// This package handles bidirectional conversion between arbitrary Go values
// and the tree form defined in package wire, preserving identity: a value
// reachable along several paths, or along a cycle, is emitted once and
// referenced afterwards.
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go graph ←→ [Transcoder + Registry] ←→ wire tree (JSON)  │
//	└──────────────────────────────────────────────────────────┘
//
// # Key Types
//
//	Encoder  - Walks a Go value and emits a wire tree
//	Decoder  - Walks a wire tree and rebuilds the Go graph
//
// # Encoding Flow
//
// Depth-first, pre-order. For each value:
//
//  1. nil and primitives are emitted verbatim
//  2. a value whose identity was already seen becomes {"ref": id}
//  3. otherwise it gets the next id, then
//     a. a registered converter's payload is encoded recursively and wrapped
//     as {"id", "tag", "data"}
//     b. slices and arrays become "array" nodes
//     c. *wire.Object and string-keyed maps become "object" nodes
//     (map keys sorted, Object keys in insertion order)
//
// Any other value (an unregistered struct, a func, a chan) is rejected.
//
// # Decoding Flow
//
// Array and object shells are allocated and recorded before their children
// are decoded, so a child referring back to its parent gets the same shell.
// Converter payloads are decoded completely before the converter's Decode
// runs. A reference into a converter node whose payload is still being
// decoded fails with a cyclic_payload error: converters never see partially
// built payloads.
//
// # Depth
//
// Traversal is recursive. Nesting deeper than the configured maximum
// (DefaultMaxDepth unless overridden) fails with a depth_exceeded error
// instead of exhausting the goroutine stack.
//
// # Thread Safety
//
// Encoder and Decoder keep no per-call state and are safe for concurrent
// use. Each call owns a fresh reference table. The registry must not gain
// converters while calls are in flight.
//
// # Error Handling
//
// Errors use the structured types from the errors package and name the
// property path where traversal stopped:
//
//	[decode] unknown_tag at people[1]: tag "Person" - no converter registered for tag
//	[decode] dangling_reference at c.f: reference to undefined id 9
//
// A failed call returns a nil value.
package transcoder
