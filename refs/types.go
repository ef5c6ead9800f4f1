package refs

import "reflect"

// ID identifies a composite value within one call.
// ID 0 is reserved and always invalid.
type ID int

// Key is the runtime identity of a value.
type Key struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// KeyOf returns the identity of v, or false when v has none.
func KeyOf(v reflect.Value) (Key, bool) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Type().Elem().Size() == 0 {
			return Key{}, false
		}
		return Key{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Map:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.UnsafePointer:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		if v.Len() == 0 || v.Type().Elem().Size() == 0 {
			return Key{}, false
		}
		return Key{typ: v.Type(), ptr: v.Pointer(), n: v.Len()}, true
	default:
		return Key{}, false
	}
}

// State of a decode-side slot.
type State uint8

const (
	StateUnknown State = iota
	StatePending
	StateReady
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
