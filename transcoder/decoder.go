package transcoder

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/graphwire/errors"
	"github.com/wippyai/graphwire/refs"
	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

type Decoder struct {
	reg *registry.Registry
	cfg decodeConfig
}

func NewDecoder(reg *registry.Registry, opts ...DecodeOption) *Decoder {
	cfg := defaultDecodeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{reg: reg, cfg: cfg}
}

// Decode rebuilds the Go graph described by tree.
func (d *Decoder) Decode(tree any) (any, error) {
	st := &decodeState{
		dec:   d,
		slots: refs.NewSlots(),
	}

	out, err := st.decode(tree, 0)
	if err != nil {
		Logger().Debug("decode failed", zap.Error(err))
		return nil, err
	}

	Logger().Debug("decoded graph",
		zap.Int("nodes", st.slots.Len()),
		zap.Int("refs", st.refs))
	return out, nil
}

type decodeState struct {
	dec   *Decoder
	slots *refs.Slots
	path  []string
	refs  int
}

func (s *decodeState) currentPath() []string {
	if len(s.path) == 0 {
		return nil
	}
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

func (s *decodeState) push(seg string) { s.path = append(s.path, seg) }
func (s *decodeState) pop()            { s.path = s.path[:len(s.path)-1] }

func (s *decodeState) decode(v any, depth int) (any, error) {
	if depth >= s.dec.cfg.maxDepth {
		return nil, errors.DepthExceeded(errors.PhaseDecode, s.currentPath(), s.dec.cfg.maxDepth)
	}

	shape, err := wire.Inspect(v)
	if err != nil {
		return nil, errors.InvalidData(errors.PhaseDecode, s.currentPath(), err.Error())
	}

	switch shape.Kind {
	case wire.ShapeRef:
		return s.resolve(refs.ID(shape.ID))
	case wire.ShapeNode:
		switch shape.Tag {
		case wire.TagArray:
			return s.decodeArray(shape, depth)
		case wire.TagObject:
			return s.decodeObject(shape, depth)
		default:
			return s.decodeConverted(shape, depth)
		}
	default:
		return shape.Value, nil
	}
}

func (s *decodeState) resolve(id refs.ID) (any, error) {
	value, tag, state := s.slots.Get(id)
	switch state {
	case refs.StateReady:
		s.refs++
		return value, nil
	case refs.StatePending:
		return nil, errors.CyclicPayload(s.currentPath(), int(id), tag)
	default:
		return nil, errors.DanglingReference(s.currentPath(), int(id))
	}
}

func (s *decodeState) duplicate(id int) error {
	return errors.InvalidData(errors.PhaseDecode, s.currentPath(), fmt.Sprintf("id %d defined more than once", id))
}

func (s *decodeState) decodeArray(shape wire.Shape, depth int) (any, error) {
	elems, ok := wire.Elements(shape.Data)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, s.currentPath(),
			fmt.Sprintf("array payload is %T", shape.Data))
	}

	out := make([]any, len(elems))
	if !s.slots.Define(refs.ID(shape.ID), wire.TagArray, out) {
		return nil, s.duplicate(shape.ID)
	}

	for i, elem := range elems {
		s.push("[" + strconv.Itoa(i) + "]")
		item, err := s.decode(elem, depth+1)
		s.pop()
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

func (s *decodeState) decodeObject(shape wire.Shape, depth int) (any, error) {
	props, ok := wire.Properties(shape.Data)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, s.currentPath(),
			fmt.Sprintf("object payload is %T", shape.Data))
	}

	var set func(string, any)
	var shell any
	if s.dec.cfg.plainMaps {
		m := make(map[string]any, props.Len())
		set = func(k string, v any) { m[k] = v }
		shell = m
	} else {
		obj := wire.NewObject()
		set = obj.Set
		shell = obj
	}
	if !s.slots.Define(refs.ID(shape.ID), wire.TagObject, shell) {
		return nil, s.duplicate(shape.ID)
	}

	var err error
	props.Range(func(k string, v any) bool {
		var item any
		s.push(k)
		item, err = s.decode(v, depth+1)
		s.pop()
		if err != nil {
			return false
		}
		set(k, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return shell, nil
}

func (s *decodeState) decodeConverted(shape wire.Shape, depth int) (any, error) {
	desc, err := s.dec.reg.Lookup(shape.Tag)
	if err != nil {
		return nil, errors.UnknownTag(s.currentPath(), shape.Tag)
	}

	id := refs.ID(shape.ID)
	if !s.slots.Reserve(id, shape.Tag) {
		return nil, s.duplicate(shape.ID)
	}

	payload, err := s.decode(shape.Data, depth+1)
	if err != nil {
		return nil, err
	}

	value, err := desc.Decode(payload)
	if err != nil {
		return nil, errors.Converter(errors.PhaseDecode, s.currentPath(), shape.Tag, err)
	}

	s.slots.Resolve(id, value)
	return value, nil
}
