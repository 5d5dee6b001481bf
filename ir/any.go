package ir

import (
	"fmt"
	"maps"
	"slices"
)

// FromAny converts a plain Go value into a Node. An existing Node passes
// through cloned. Maps produce objects with sorted keys; use the container
// mutators to control order.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		res := NewArray()
		for _, elt := range x {
			y, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res.Append(y)
		}
		return res, nil
	case []string:
		res := NewArray()
		for _, elt := range x {
			res.Append(FromString(elt))
		}
		return res, nil
	case []map[string]any:
		res := NewArray()
		for _, elt := range x {
			y, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			res.Append(y)
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			y, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			res.SetField(key, y)
		}
		return res, nil
	case map[string]string:
		res := NewObject()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			res.SetField(key, FromString(x[key]))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("cannot represent %T as a document value", v)
	}
}

// MustFromAny is FromAny for values known to be representable.
func MustFromAny(v any) *Node {
	y, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return y
}

// ToAny converts a Node into plain Go values: map[string]any, []any,
// string, int64, float64, bool, or nil.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
