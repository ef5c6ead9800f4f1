package registry

import (
	"fmt"
	"reflect"
)

// EncodeOptions are handed to every converter's encode step.
type EncodeOptions struct {
	// Stack includes stack trace text in payloads of converters that carry one.
	Stack bool
}

// Descriptor describes one converter.
type Descriptor struct {
	// Recognize reports whether the converter handles v. Used only while encoding.
	Recognize func(v any) bool
	// Encode maps v to a payload. The payload is encoded recursively, so it
	// may contain further shared or converter-typed values.
	Encode func(v any, opts EncodeOptions) (any, error)
	// Decode rebuilds a value from a fully decoded payload.
	Decode func(data any) (any, error)
	// Tag names the converter on the wire.
	Tag string
}

// Marshaler is implemented by types that know their own payload.
type Marshaler interface {
	MarshalGraph() (any, error)
}

// TypeOf builds a descriptor for values of type T, recognized by type assertion.
func TypeOf[T any](tag string, encode func(T, EncodeOptions) (any, error), decode func(any) (T, error)) Descriptor {
	return Descriptor{
		Tag: tag,
		Recognize: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
		Encode: func(v any, opts EncodeOptions) (any, error) {
			t, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("%s: expected %s, got %T", tag, typeName[T](), v)
			}
			return encode(t, opts)
		},
		Decode: func(data any) (any, error) {
			return decode(data)
		},
	}
}

// Self builds a descriptor for a type that implements Marshaler.
func Self[T Marshaler](tag string, decode func(any) (T, error)) Descriptor {
	return TypeOf(tag, func(v T, _ EncodeOptions) (any, error) {
		return v.MarshalGraph()
	}, decode)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
