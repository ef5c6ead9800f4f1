package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/graphwire/errors"
	"github.com/wippyai/graphwire/wire"
)

// Registry maps tags to converters and values to the converter that claims them.
type Registry struct {
	byTag   map[string]*Descriptor
	ordered []*Descriptor // registration order
	mu      sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byTag: make(map[string]*Descriptor),
	}
}

// Register adds a converter. Tags must be unique and must not collide with
// the structural tags "object" and "array".
func (r *Registry) Register(d Descriptor) error {
	if err := validate(d); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTag[d.Tag]; exists {
		return errors.DuplicateTag(d.Tag)
	}

	desc := d
	r.byTag[d.Tag] = &desc
	r.ordered = append(r.ordered, &desc)

	Logger().Debug("registered converter",
		zap.String("tag", d.Tag),
		zap.Int("count", len(r.ordered)))
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

func validate(d Descriptor) error {
	switch {
	case d.Tag == "":
		return errors.InvalidInput(errors.PhaseRegister, "converter tag cannot be empty")
	case wire.IsReserved(d.Tag):
		return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Tag(d.Tag).
			Detail("tag is reserved for structural nodes").
			Build()
	case d.Recognize == nil, d.Encode == nil, d.Decode == nil:
		return errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Tag(d.Tag).
			Detail("converter needs a recognizer, an encode and a decode function").
			Build()
	}
	return nil
}

// Match returns the most recently registered converter whose recognizer
// accepts v.
func (r *Registry) Match(v any) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.ordered) - 1; i >= 0; i-- {
		if d := r.ordered[i]; d.Recognize(v) {
			return d, true
		}
	}
	return nil, false
}

// Lookup returns the converter registered under tag.
func (r *Registry) Lookup(tag string) (*Descriptor, error) {
	r.mu.RLock()
	d, ok := r.byTag[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.UnknownTag(nil, tag)
	}
	return d, nil
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, len(r.ordered))
	for i, d := range r.ordered {
		tags[i] = d.Tag
	}
	return tags
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}
