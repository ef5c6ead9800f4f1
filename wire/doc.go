// Package wire defines the tree-shaped wire form produced by the encoder
// and consumed by the decoder.
//
// # Node Shapes
//
// Every composite value is a node carrying a synthetic identity, the tag of
// the converter (or structural kind) that produced it, and its payload:
//
//	{"id": 1, "tag": "object", "data": {"a": 1, "self": {"ref": 1}}}
//
// Later occurrences of the same identity are back-references:
//
//	{"ref": 1}
//
// Primitives (null, booleans, numbers, strings) are embedded verbatim and
// never carry an identity.
//
// # Reserved Tags
//
//	object  - payload is an ordered set of properties
//	array   - payload is a list of elements
//
// Any other tag names a registered converter.
//
// # Property Order
//
// Object payloads are held in Object, which keeps insertion order. Marshal
// and Unmarshal preserve that order through JSON. The encoding/json decoder
// into any does not; trees parsed that way decode with keys sorted.
//
// # Protobuf
//
// ToProto and FromProto bridge trees to structpb.Value. structpb.Struct is a
// map, so property order does not survive the proto form.
package wire
