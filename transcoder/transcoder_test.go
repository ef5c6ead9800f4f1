package transcoder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/graphwire/errors"
	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

type point struct{ X, Y float64 }

type linked struct {
	Next  *linked
	Label string
}

type box struct {
	Items []any
}

func pointDescriptor() registry.Descriptor {
	return registry.TypeOf("Point",
		func(p *point, _ registry.EncodeOptions) (any, error) {
			return []any{p.X, p.Y}, nil
		},
		func(data any) (*point, error) {
			xy, ok := data.([]any)
			if !ok || len(xy) != 2 {
				return nil, fmt.Errorf("bad point payload %v", data)
			}
			x, _ := xy[0].(float64)
			y, _ := xy[1].(float64)
			return &point{X: x, Y: y}, nil
		},
	)
}

func linkedDescriptor() registry.Descriptor {
	return registry.TypeOf("Linked",
		func(l *linked, _ registry.EncodeOptions) (any, error) {
			return wire.ObjectOf("label", l.Label, "next", l.Next), nil
		},
		func(data any) (*linked, error) {
			obj := data.(*wire.Object)
			label, _ := obj.Get("label")
			next, _ := obj.Get("next")
			l := &linked{Label: label.(string)}
			if next != nil {
				l.Next = next.(*linked)
			}
			return l, nil
		},
	)
}

func boxDescriptor() registry.Descriptor {
	return registry.TypeOf("Box",
		func(b *box, _ registry.EncodeOptions) (any, error) {
			return b.Items, nil
		},
		func(data any) (*box, error) {
			items, _ := data.([]any)
			return &box{Items: items}, nil
		},
	)
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.MustRegister(pointDescriptor())
	r.MustRegister(linkedDescriptor())
	r.MustRegister(boxDescriptor())
	return r
}

func roundTrip(t *testing.T, r *registry.Registry, v any, opts ...DecodeOption) any {
	t.Helper()
	tree, err := NewEncoder(r).Encode(v)
	require.NoError(t, err)
	out, err := NewDecoder(r, opts...).Decode(tree)
	require.NoError(t, err)
	return out
}

// jsonRoundTrip encodes, renders JSON, parses it back and decodes.
func jsonRoundTrip(t *testing.T, r *registry.Registry, v any) any {
	t.Helper()
	tree, err := NewEncoder(r).Encode(v)
	require.NoError(t, err)
	data, err := wire.Marshal(tree)
	require.NoError(t, err)
	parsed, err := wire.Unmarshal(data)
	require.NoError(t, err)
	out, err := NewDecoder(r).Decode(parsed)
	require.NoError(t, err)
	return out
}

func sampleData() *wire.Object {
	return wire.ObjectOf(
		"a", 1.0,
		"b", "str",
		"c", wire.ObjectOf(
			"d", 2.0,
			"e", "str",
			"f", []any{wire.ObjectOf("g", 3.0), wire.ObjectOf("e", nil)},
		),
	)
}

func TestEncode_Primitives(t *testing.T) {
	enc := NewEncoder(registry.New())
	for _, v := range []any{nil, true, "s", 1, int8(-2), uint64(3), 1.5, float32(2.5)} {
		got, err := enc.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestEncode_TypedNilIsNil(t *testing.T) {
	enc := NewEncoder(registry.New())
	for _, v := range []any{(*wire.Object)(nil), []any(nil), map[string]any(nil), (*point)(nil)} {
		got, err := enc.Encode(v)
		require.NoError(t, err)
		assert.Nil(t, got, "%T", v)
	}
}

func TestEncode_NamedPrimitive(t *testing.T) {
	type color string
	got, err := NewEncoder(registry.New()).Encode(color("red"))
	require.NoError(t, err)
	assert.Equal(t, color("red"), got)
}

func TestRoundTrip_PlainData(t *testing.T) {
	r := testRegistry(t)
	data := sampleData()

	assert.Equal(t, data, roundTrip(t, r, data))
	assert.Equal(t, data, jsonRoundTrip(t, r, data))
}

func TestRoundTrip_PreservesKeyOrder(t *testing.T) {
	r := testRegistry(t)
	data := wire.ObjectOf("z", 1.0, "a", 2.0, "m", 3.0)

	out := jsonRoundTrip(t, r, data).(*wire.Object)
	assert.Equal(t, []string{"z", "a", "m"}, out.Keys())
}

func TestEncode_WireShape(t *testing.T) {
	shared := wire.ObjectOf("h", 3.0)
	root := wire.ObjectOf("x", shared, "y", []any{shared, shared})

	tree, err := NewEncoder(registry.New()).Encode(root)
	require.NoError(t, err)

	data, err := wire.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1, "tag": "object", "data": {
			"x": {"id": 2, "tag": "object", "data": {"h": 3}},
			"y": {"id": 3, "tag": "array", "data": [{"ref": 2}, {"ref": 2}]}
		}
	}`, string(data))
}

func TestEncode_SharedPayloadEmittedOnce(t *testing.T) {
	shared := wire.ObjectOf("v", 1.0)
	p := &point{X: 1, Y: 2}
	root := []any{shared, p, wire.ObjectOf("again", shared, "p", p), shared, p}

	tree, err := NewEncoder(testRegistry(t)).Encode(root)
	require.NoError(t, err)

	full, backRefs := countIDs(tree)
	for id, n := range full {
		assert.Equal(t, 1, n, "id %d emitted with payload %d times", id, n)
	}
	assert.Equal(t, 5, len(full))
	assert.Equal(t, 4, backRefs)
}

func countIDs(tree any) (map[int]int, int) {
	full := map[int]int{}
	backRefs := 0
	var walk func(any)
	walk = func(v any) {
		switch t := v.(type) {
		case *wire.Node:
			full[t.ID]++
			walk(t.Data)
		case wire.Ref:
			backRefs++
		case []any:
			for _, x := range t {
				walk(x)
			}
		case *wire.Object:
			t.Range(func(_ string, x any) bool {
				walk(x)
				return true
			})
		}
	}
	walk(tree)
	return full, backRefs
}

func TestRoundTrip_CyclesAndSharing(t *testing.T) {
	r := testRegistry(t)

	c := wire.ObjectOf("d", 2.0, "e", "str", "f", nil)
	g := wire.ObjectOf("h", 3.0)
	data := wire.ObjectOf("a", 1.0, "b", "str", "c", c, "g", g, "i", []any{})
	c.Set("f", c)
	data.Set("i", []any{g, c})

	for name, out := range map[string]any{
		"memory": roundTrip(t, r, data),
		"json":   jsonRoundTrip(t, r, data),
	} {
		t.Run(name, func(t *testing.T) {
			obj := out.(*wire.Object)
			assert.Equal(t, data, obj)

			gotC, _ := obj.Get("c")
			gotG, _ := obj.Get("g")
			gotI, _ := obj.Get("i")
			f, _ := gotC.(*wire.Object).Get("f")

			assert.Same(t, gotC, f, "self reference must be preserved")
			items := gotI.([]any)
			assert.Same(t, gotG, items[0])
			assert.Same(t, gotC, items[1])
		})
	}
}

func TestRoundTrip_SliceCycle(t *testing.T) {
	s := make([]any, 2)
	s[0] = s
	s[1] = "x"

	out := roundTrip(t, registry.New(), s).([]any)
	require.Len(t, out, 2)
	inner := out[0].([]any)
	assert.Equal(t, reflect.ValueOf(out).Pointer(), reflect.ValueOf(inner).Pointer())
	assert.Equal(t, "x", inner[1])
}

func TestRoundTrip_MapCycleWithPlainMaps(t *testing.T) {
	m := map[string]any{"n": 1.0}
	m["self"] = m

	out := roundTrip(t, registry.New(), m, WithPlainMaps(true)).(map[string]any)
	self := out["self"].(map[string]any)
	assert.Equal(t, reflect.ValueOf(out).Pointer(), reflect.ValueOf(self).Pointer())
	assert.Equal(t, 1.0, self["n"])
}

func TestEncode_MapKeysSorted(t *testing.T) {
	tree, err := NewEncoder(registry.New()).Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)

	node := tree.(*wire.Node)
	assert.Equal(t, wire.TagObject, node.Tag)
	assert.Equal(t, []string{"a", "b", "c"}, node.Data.(*wire.Object).Keys())
}

func TestEncode_TypedSlicesAndArrays(t *testing.T) {
	out := jsonRoundTrip(t, registry.New(), wire.ObjectOf(
		"ints", []int{1, 2},
		"arr", [2]string{"a", "b"},
	)).(*wire.Object)

	ints, _ := out.Get("ints")
	arr, _ := out.Get("arr")
	assert.Equal(t, []any{1.0, 2.0}, ints)
	assert.Equal(t, []any{"a", "b"}, arr)
}

func TestRoundTrip_ConverterIdentity(t *testing.T) {
	p := &point{X: 1, Y: 2}
	out := jsonRoundTrip(t, testRegistry(t), []any{p, p}).([]any)

	first, ok := out[0].(*point)
	require.True(t, ok)
	assert.Equal(t, p, first)
	assert.Same(t, first, out[1])
}

func TestRoundTrip_ConverterAcyclicChain(t *testing.T) {
	tail := &linked{Label: "tail"}
	head := &linked{Label: "head", Next: tail}

	out := jsonRoundTrip(t, testRegistry(t), []any{head, tail}).([]any)
	gotHead := out[0].(*linked)
	assert.Equal(t, "head", gotHead.Label)
	assert.Same(t, gotHead.Next, out[1])
}

func TestDecode_CycleThroughConverterPayload(t *testing.T) {
	r := testRegistry(t)
	l := &linked{Label: "loop"}
	l.Next = l

	tree, err := NewEncoder(r).Encode(l)
	require.NoError(t, err, "encoding a converter cycle emits a back-reference")

	out, err := NewDecoder(r).Decode(tree)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errors.ErrCyclicPayload)

	var gwErr *errors.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Linked", gwErr.Tag)
	assert.Equal(t, []string{"next"}, gwErr.Path)
}

func TestRoundTrip_StructuralCycleInsideConverterPayload(t *testing.T) {
	items := make([]any, 2)
	items[0] = items
	items[1] = 7.0
	b := &box{Items: items}

	out := jsonRoundTrip(t, testRegistry(t), b).(*box)
	require.Len(t, out.Items, 2)
	inner := out.Items[0].([]any)
	assert.Equal(t, reflect.ValueOf(out.Items).Pointer(), reflect.ValueOf(inner).Pointer())
}

func TestDecode_UnknownTag(t *testing.T) {
	tree, err := NewEncoder(testRegistry(t)).Encode(wire.ObjectOf("p", &point{X: 1}))
	require.NoError(t, err)

	out, err := NewDecoder(registry.New()).Decode(tree)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errors.ErrUnknownTag)

	var gwErr *errors.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Point", gwErr.Tag)
	assert.Equal(t, []string{"p"}, gwErr.Path)
}

func TestDecode_DanglingReference(t *testing.T) {
	tree := &wire.Node{ID: 1, Tag: wire.TagArray, Data: []any{wire.Ref{ID: 9}}}

	out, err := NewDecoder(registry.New()).Decode(tree)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errors.ErrDanglingReference)
}

func TestDecode_MalformedTrees(t *testing.T) {
	tests := []struct {
		name string
		tree any
	}{
		{"duplicate id", &wire.Node{ID: 1, Tag: wire.TagArray, Data: []any{
			&wire.Node{ID: 1, Tag: wire.TagArray, Data: []any{}},
		}}},
		{"array payload not a list", &wire.Node{ID: 1, Tag: wire.TagArray, Data: "nope"}},
		{"object payload not an object", &wire.Node{ID: 1, Tag: wire.TagObject, Data: []any{}}},
		{"bare object", wire.ObjectOf("a", 1.0)},
		{"zero id", map[string]any{"id": 0.0, "tag": "array", "data": []any{}}},
		{"unexpected type", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewDecoder(registry.New()).Decode(tt.tree)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, errors.ErrInvalidData)
		})
	}
}

func TestDecode_GenericJSON(t *testing.T) {
	r := testRegistry(t)
	tree, err := NewEncoder(r).Encode(wire.ObjectOf("p", &point{X: 1, Y: 2}, "n", 3))
	require.NoError(t, err)
	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var generic any
	require.NoError(t, json.Unmarshal(data, &generic))

	out, err := NewDecoder(r).Decode(generic)
	require.NoError(t, err)
	obj := out.(*wire.Object)
	p, _ := obj.Get("p")
	n, _ := obj.Get("n")
	assert.Equal(t, &point{X: 1, Y: 2}, p)
	assert.Equal(t, 3.0, n)
}

func TestDecode_JSONNumber(t *testing.T) {
	out, err := NewDecoder(registry.New()).Decode(json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, 42.0, out)
}

func TestEncode_Unsupported(t *testing.T) {
	enc := NewEncoder(registry.New())

	for _, v := range []any{
		struct{ A int }{1},
		&struct{ A int }{1},
		map[int]string{1: "a"},
		func() {},
		make(chan int),
	} {
		out, err := enc.Encode(wire.ObjectOf("bad", v))
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errors.ErrUnsupported, "%T", v)
	}
}

func TestEncode_ConverterFailure(t *testing.T) {
	r := registry.New()
	r.MustRegister(registry.TypeOf("Broken",
		func(p *point, _ registry.EncodeOptions) (any, error) { return nil, fmt.Errorf("boom") },
		func(any) (*point, error) { return nil, nil },
	))

	_, err := NewEncoder(r).Encode([]any{1, &point{}})
	var gwErr *errors.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, errors.KindConverter, gwErr.Kind)
	assert.Equal(t, []string{"[1]"}, gwErr.Path)
	assert.Equal(t, "Broken", gwErr.Tag)
	assert.EqualError(t, gwErr.Cause, "boom")
}

func TestDecode_ConverterFailure(t *testing.T) {
	tree := &wire.Node{ID: 1, Tag: "Point", Data: "not a pair"}
	_, err := NewDecoder(testRegistry(t)).Decode(tree)

	var gwErr *errors.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, errors.KindConverter, gwErr.Kind)
	assert.Equal(t, errors.PhaseDecode, gwErr.Phase)
}

func TestEncode_StackOptionReachesConverters(t *testing.T) {
	var seen []bool
	r := registry.New()
	r.MustRegister(registry.TypeOf("Probe",
		func(p *point, opts registry.EncodeOptions) (any, error) {
			seen = append(seen, opts.Stack)
			return nil, nil
		},
		func(any) (*point, error) { return &point{}, nil },
	))

	_, err := NewEncoder(r).Encode(&point{})
	require.NoError(t, err)
	_, err = NewEncoder(r, WithStack(false)).Encode(&point{})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, seen)
}

func nested(depth int) any {
	var v any = "leaf"
	for i := 0; i < depth; i++ {
		v = []any{v}
	}
	return v
}

func TestDepthExceeded(t *testing.T) {
	r := registry.New()
	deep := nested(50)

	_, err := NewEncoder(r, WithMaxDepth(10)).Encode(deep)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	tree, err := NewEncoder(r).Encode(deep)
	require.NoError(t, err)

	_, err = NewDecoder(r, WithDecodeMaxDepth(10)).Decode(tree)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	out, err := NewDecoder(r).Decode(tree)
	require.NoError(t, err)
	assert.Equal(t, deep, out)
}

func TestEncode_Deterministic(t *testing.T) {
	r := testRegistry(t)
	data := sampleData()
	data.Set("m", map[string]any{"q": 1, "p": []any{2, 3}})

	first, err := NewEncoder(r).Encode(data)
	require.NoError(t, err)
	second, err := NewEncoder(r).Encode(data)
	require.NoError(t, err)

	a, err := wire.Marshal(first)
	require.NoError(t, err)
	b, err := wire.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	shared := wire.ObjectOf()
	tree, err := NewEncoder(registry.New()).Encode([]any{shared, shared})
	require.NoError(t, err)
	_, err = NewDecoder(registry.New()).Decode(tree)
	require.NoError(t, err)

	enc := logs.FilterMessage("encoded graph").All()
	require.Len(t, enc, 1)
	assert.EqualValues(t, 2, enc[0].ContextMap()["nodes"])
	assert.EqualValues(t, 1, enc[0].ContextMap()["refs"])

	dec := logs.FilterMessage("decoded graph").All()
	require.Len(t, dec, 1)
	assert.EqualValues(t, 1, dec[0].ContextMap()["refs"])
}
