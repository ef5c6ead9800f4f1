package transcoder

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/graphwire/errors"
	"github.com/wippyai/graphwire/refs"
	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

type Encoder struct {
	reg *registry.Registry
	cfg encodeConfig
}

func NewEncoder(reg *registry.Registry, opts ...EncodeOption) *Encoder {
	cfg := defaultEncodeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{reg: reg, cfg: cfg}
}

// Encode converts v into a wire tree.
func (e *Encoder) Encode(v any) (any, error) {
	st := &encodeState{
		enc:   e,
		table: refs.NewTable(),
		opts:  registry.EncodeOptions{Stack: e.cfg.stack},
	}

	out, err := st.encode(v, 0)
	if err != nil {
		Logger().Debug("encode failed", zap.Error(err))
		return nil, err
	}

	Logger().Debug("encoded graph",
		zap.Int("nodes", st.table.Assigned()),
		zap.Int("tracked", st.table.Tracked()),
		zap.Int("refs", st.refs))
	return out, nil
}

type encodeState struct {
	enc   *Encoder
	table *refs.Table
	path  []string
	opts  registry.EncodeOptions
	refs  int
	// converter payloads stay reachable until the call ends so their
	// addresses are not reused by later allocations
	pins  []any
}

func (s *encodeState) currentPath() []string {
	if len(s.path) == 0 {
		return nil
	}
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

func (s *encodeState) push(seg string) { s.path = append(s.path, seg) }
func (s *encodeState) pop()            { s.path = s.path[:len(s.path)-1] }

func (s *encodeState) encode(v any, depth int) (any, error) {
	if depth >= s.enc.cfg.maxDepth {
		return nil, errors.DepthExceeded(errors.PhaseEncode, s.currentPath(), s.enc.cfg.maxDepth)
	}

	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return v, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, nil
		}
	}

	key, tracked := refs.KeyOf(rv)
	if tracked {
		if id, seen := s.table.Lookup(key); seen {
			s.refs++
			return wire.Ref{ID: int(id)}, nil
		}
	}

	if desc, ok := s.enc.reg.Match(v); ok {
		return s.encodeConverted(desc, v, s.assign(key, tracked), depth)
	}

	if obj, ok := v.(*wire.Object); ok {
		return s.encodeObject(obj, s.assign(key, tracked), depth)
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// named primitive types without a converter
		return v, nil
	case reflect.Slice, reflect.Array:
		return s.encodeList(rv, s.assign(key, tracked), depth)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
				Path(s.currentPath()...).
				GoType(rv.Type().String()).
				Detail("map keys must be strings").
				Build()
		}
		return s.encodeMap(rv, s.assign(key, tracked), depth)
	}

	return nil, errors.Unsupported(errors.PhaseEncode, s.currentPath(), rv.Type().String())
}

func (s *encodeState) assign(key refs.Key, tracked bool) refs.ID {
	if tracked {
		return s.table.Insert(key)
	}
	return s.table.Assign()
}

func (s *encodeState) encodeConverted(desc *registry.Descriptor, v any, id refs.ID, depth int) (any, error) {
	payload, err := desc.Encode(v, s.opts)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindConverter).
			Path(s.currentPath()...).
			GoType(reflect.TypeOf(v).String()).
			Tag(desc.Tag).
			Detail("converter failed").
			Cause(err).
			Build()
	}

	s.pins = append(s.pins, payload)
	data, err := s.encode(payload, depth+1)
	if err != nil {
		return nil, err
	}
	return &wire.Node{ID: int(id), Tag: desc.Tag, Data: data}, nil
}

func (s *encodeState) encodeList(rv reflect.Value, id refs.ID, depth int) (any, error) {
	n := rv.Len()
	items := make([]any, n)
	for i := 0; i < n; i++ {
		s.push("[" + strconv.Itoa(i) + "]")
		item, err := s.encode(rv.Index(i).Interface(), depth+1)
		s.pop()
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return &wire.Node{ID: int(id), Tag: wire.TagArray, Data: items}, nil
}

func (s *encodeState) encodeObject(obj *wire.Object, id refs.ID, depth int) (any, error) {
	props := wire.NewObject()
	var err error
	obj.Range(func(k string, v any) bool {
		var item any
		s.push(k)
		item, err = s.encode(v, depth+1)
		s.pop()
		if err != nil {
			return false
		}
		props.Set(k, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &wire.Node{ID: int(id), Tag: wire.TagObject, Data: props}, nil
}

func (s *encodeState) encodeMap(rv reflect.Value, id refs.ID, depth int) (any, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	props := wire.NewObject()
	for _, k := range keys {
		name := k.String()
		s.push(name)
		item, err := s.encode(rv.MapIndex(k).Interface(), depth+1)
		s.pop()
		if err != nil {
			return nil, err
		}
		props.Set(name, item)
	}
	return &wire.Node{ID: int(id), Tag: wire.TagObject, Data: props}, nil
}
