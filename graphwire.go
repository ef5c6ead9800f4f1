package graphwire

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/graphwire/converters"
	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/transcoder"
	"github.com/wippyai/graphwire/wire"
)

// Object is a string-keyed property set that keeps insertion order.
type Object = wire.Object

// NewObject returns an empty Object.
func NewObject() *Object { return wire.NewObject() }

// ObjectOf builds an Object from alternating keys and values.
func ObjectOf(kv ...any) *Object { return wire.ObjectOf(kv...) }

var defaultRegistry = sync.OnceValue(func() *registry.Registry {
	r := registry.New()
	converters.MustRegister(r)
	return r
})

// Default returns the process-wide registry, created with the built-in
// converters on first use.
func Default() *registry.Registry {
	return defaultRegistry()
}

// NewRegistry returns a registry with the built-in converters.
func NewRegistry() *registry.Registry {
	r := registry.New()
	converters.MustRegister(r)
	return r
}

// RegisterType adds a converter to the default registry.
func RegisterType(d registry.Descriptor) error {
	return Default().Register(d)
}

// MustRegisterType is like RegisterType but panics on error.
func MustRegisterType(d registry.Descriptor) {
	Default().MustRegister(d)
}

// Encode converts v into a wire tree using the default registry.
func Encode(v any, opts ...transcoder.EncodeOption) (any, error) {
	return transcoder.NewEncoder(Default(), opts...).Encode(v)
}

// Decode rebuilds a value from a wire tree using the default registry.
func Decode(tree any, opts ...transcoder.DecodeOption) (any, error) {
	return transcoder.NewDecoder(Default(), opts...).Decode(tree)
}

// Marshal encodes v and renders the tree as JSON.
func Marshal(v any, opts ...transcoder.EncodeOption) ([]byte, error) {
	tree, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return wire.Marshal(tree)
}

// Unmarshal parses JSON produced by Marshal and decodes it.
func Unmarshal(data []byte, opts ...transcoder.DecodeOption) (any, error) {
	tree, err := wire.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Decode(tree, opts...)
}

// SetLogger routes registry and transcoder logs to l. A nil logger restores
// the no-op default.
func SetLogger(l *zap.Logger) {
	registry.SetLogger(l)
	transcoder.SetLogger(l)
}
