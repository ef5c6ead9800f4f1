package wire

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wippyai/graphwire/errors"
)

// ToProto converts a wire tree into a structpb.Value.
// Numbers become doubles; property order is not preserved.
func ToProto(tree any) (*structpb.Value, error) {
	return toProto(tree, nil)
}

func toProto(v any, path []string) (*structpb.Value, error) {
	switch t := v.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case bool:
		return structpb.NewBoolValue(t), nil
	case string:
		return structpb.NewStringValue(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, errors.InvalidData(errors.PhaseEncode, path, fmt.Sprintf("invalid number %q", string(t)))
		}
		return structpb.NewNumberValue(f), nil
	case *Node:
		data, err := toProto(t.Data, path)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"id":   structpb.NewNumberValue(float64(t.ID)),
			"tag":  structpb.NewStringValue(t.Tag),
			"data": data,
		}}), nil
	case Ref:
		return refProto(t.ID), nil
	case *Ref:
		return refProto(t.ID), nil
	case *Object:
		fields := make(map[string]*structpb.Value, t.Len())
		var err error
		t.Range(func(k string, x any) bool {
			fields[k], err = toProto(x, append(path, k))
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	case map[string]any:
		return toProto(objectFromMap(t), path)
	case []any:
		values := make([]*structpb.Value, len(t))
		for i, x := range t {
			pv, err := toProto(x, append(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			values[i] = pv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return structpb.NewBoolValue(rv.Bool()), nil
	case reflect.String:
		return structpb.NewStringValue(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return structpb.NewNumberValue(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return structpb.NewNumberValue(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return structpb.NewNumberValue(rv.Float()), nil
	}
	return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
		Path(path...).
		GoType(fmt.Sprintf("%T", v)).
		Detail("not representable in structpb").
		Build()
}

func refProto(id int) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"ref": structpb.NewNumberValue(float64(id)),
	}})
}

// FromProto converts a structpb.Value back into the generic tree form.
// Struct fields are emitted in sorted key order.
func FromProto(v *structpb.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_BoolValue:
		return k.BoolValue, nil
	case *structpb.Value_NumberValue:
		return k.NumberValue, nil
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		out := make([]any, len(values))
		for i, x := range values {
			item, err := FromProto(x)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, key := range keys {
			item, err := FromProto(fields[key])
			if err != nil {
				return nil, err
			}
			obj.Set(key, item)
		}
		return obj, nil
	}
	return nil, errors.InvalidData(errors.PhaseDecode, nil, fmt.Sprintf("unknown structpb kind %T", v.GetKind()))
}
