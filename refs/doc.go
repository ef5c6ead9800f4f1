// Package refs provides the per-call reference tables used to detect
// shared and cyclic values.
//
// A table lives for exactly one encode or decode call and is never shared
// between calls or goroutines.
//
// # Identity
//
// Only values with a runtime identity can be shared:
//
//	pointer, map     (type, address)
//	slice            (type, address of first element, length)
//
// Structs, arrays and empty slices have no identity. They still consume an
// id when encoded but are never emitted as back-references.
//
// # Encode Side
//
// Table hands out ids in first-encounter order:
//
//	table := refs.NewTable()
//	if id, seen := table.Lookup(key); seen {
//	    // emit back-reference
//	}
//	id := table.Insert(key)
//
// # Decode Side
//
// Slots maps ids read from the wire back to values. A slot is Pending while
// a converter payload is being decoded and Ready once a value (possibly a
// shell still being filled) is available.
//
// ID 0 is reserved and always invalid.
package refs
