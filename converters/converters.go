package converters

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"

	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

// Tags of the built-in converters.
const (
	TagError    = "Error"
	TagDate     = "Date"
	TagRegExp   = "RegExp"
	TagGoRegexp = "GoRegexp"
)

// All returns the built-in descriptors in registration order.
func All() []registry.Descriptor {
	return []registry.Descriptor{
		ErrorDescriptor(),
		DateDescriptor(),
		RegExpDescriptor(),
		GoRegexpDescriptor(),
	}
}

// Register adds every built-in converter to r.
func Register(r *registry.Registry) error {
	for _, d := range All() {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(r *registry.Registry) {
	if err := Register(r); err != nil {
		panic(err)
	}
}

func properties(tag string, data any) (*wire.Object, error) {
	obj, ok := wire.Properties(data)
	if !ok {
		return nil, errors.Errorf("%s: payload must be an object, got %T", tag, data)
	}
	return obj, nil
}

func stringField(tag string, obj *wire.Object, key string) (string, error) {
	v, ok := obj.Get(key)
	if !ok {
		return "", errors.Errorf("%s: missing %q", tag, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("%s: %q must be a string, got %T", tag, key, v)
	}
	return s, nil
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	}
	return 0, false
}
