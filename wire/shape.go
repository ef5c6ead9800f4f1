package wire

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// ShapeKind classifies a value found at a node position of a wire tree.
type ShapeKind uint8

const (
	ShapePrimitive ShapeKind = iota
	ShapeNode
	ShapeRef
)

// Shape is the normalized view of a wire value. Value is set for
// primitives, ID for nodes and refs, Tag and Data for nodes.
type Shape struct {
	Value any
	Data  any
	Tag   string
	ID    int
	Kind  ShapeKind
}

// Inspect classifies v, accepting the typed nodes produced by the encoder
// as well as generic trees parsed from JSON (*Object or map[string]any).
// json.Number primitives are converted to float64.
func Inspect(v any) (Shape, error) {
	switch t := v.(type) {
	case nil, bool, string, float64:
		return Shape{Kind: ShapePrimitive, Value: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Shape{}, fmt.Errorf("invalid number %q", string(t))
		}
		return Shape{Kind: ShapePrimitive, Value: f}, nil
	case *Node:
		if t == nil {
			return Shape{Kind: ShapePrimitive}, nil
		}
		return nodeShape(t.ID, t.Tag, t.Data)
	case Node:
		return nodeShape(t.ID, t.Tag, t.Data)
	case Ref:
		return refShape(t.ID)
	case *Ref:
		if t == nil {
			return Shape{Kind: ShapePrimitive}, nil
		}
		return refShape(t.ID)
	case *Object:
		return fieldsShape(t.Get, t.Len())
	case map[string]any:
		return fieldsShape(func(k string) (any, bool) {
			x, ok := t[k]
			return x, ok
		}, len(t))
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Shape{Kind: ShapePrimitive, Value: v}, nil
	}
	return Shape{}, fmt.Errorf("unexpected wire value of type %T", v)
}

func fieldsShape(get func(string) (any, bool), n int) (Shape, error) {
	if ref, ok := get("ref"); ok {
		if n != 1 {
			return Shape{}, fmt.Errorf("reference carries extra fields")
		}
		id, ok := ToID(ref)
		if !ok {
			return Shape{}, fmt.Errorf("reference id %v is not an integer", ref)
		}
		return refShape(id)
	}

	rawID, hasID := get("id")
	rawTag, hasTag := get("tag")
	if !hasID || !hasTag {
		return Shape{}, fmt.Errorf("object is neither a node nor a reference")
	}
	id, ok := ToID(rawID)
	if !ok {
		return Shape{}, fmt.Errorf("node id %v is not an integer", rawID)
	}
	tag, ok := rawTag.(string)
	if !ok {
		return Shape{}, fmt.Errorf("node tag is %T, not string", rawTag)
	}
	data, _ := get("data")
	return nodeShape(id, tag, data)
}

func nodeShape(id int, tag string, data any) (Shape, error) {
	if id <= 0 {
		return Shape{}, fmt.Errorf("node id %d is not positive", id)
	}
	if tag == "" {
		return Shape{}, fmt.Errorf("node %d has an empty tag", id)
	}
	return Shape{Kind: ShapeNode, ID: id, Tag: tag, Data: data}, nil
}

func refShape(id int) (Shape, error) {
	if id <= 0 {
		return Shape{}, fmt.Errorf("reference id %d is not positive", id)
	}
	return Shape{Kind: ShapeRef, ID: id}, nil
}

// ToID converts a numeric wire value to an id.
func ToID(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt32 {
			return 0, false
		}
		return int(rv.Uint()), true
	}
	return 0, false
}

// Elements returns the payload of an array node.
func Elements(data any) ([]any, bool) {
	arr, ok := data.([]any)
	return arr, ok
}

// Properties returns the payload of an object node as an Object.
// A map payload is converted with its keys sorted.
func Properties(data any) (*Object, bool) {
	switch t := data.(type) {
	case *Object:
		if t == nil {
			return nil, false
		}
		return t, true
	case map[string]any:
		return objectFromMap(t), true
	}
	return nil, false
}
