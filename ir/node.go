// Package ir is the in-memory representation of configuration documents.
// A document is a tree of Nodes: scalars (string, number, bool), arrays,
// and objects whose fields keep insertion order.
package ir

import (
	"maps"
	"slices"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	res := NewObject()
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	for _, kv := range kvs {
		res.SetField(kv.Key, kv.Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := NewArray()
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Len is the number of entries of a container, zero for leaves.
func (y *Node) Len() int {
	switch y.Type {
	case ObjectType:
		return len(y.Fields)
	case ArrayType:
		return len(y.Values)
	default:
		return 0
	}
}

// SetField inserts or replaces a field value, preserving insertion order.
func (y *Node) SetField(name string, v *Node) {
	for i := range y.Fields {
		if y.Fields[i].String == name {
			v.Parent = y
			v.ParentIndex = i
			v.ParentField = name
			y.Values[i] = v
			return
		}
	}
	i := len(y.Fields)
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = name
	y.Fields = append(y.Fields, &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: name,
		Type:        StringType,
		String:      name,
	})
	y.Values = append(y.Values, v)
}

// DeleteField removes a field and reports whether it was present.
func (y *Node) DeleteField(name string) bool {
	for i := range y.Fields {
		if y.Fields[i].String == name {
			y.Fields = slices.Delete(y.Fields, i, i+1)
			y.Values = slices.Delete(y.Values, i, i+1)
			y.renumber(i)
			return true
		}
	}
	return false
}

// SetIndex replaces the element at i. The index must be in range.
func (y *Node) SetIndex(i int, v *Node) {
	v.Parent = y
	v.ParentIndex = i
	y.Values[i] = v
}

// RemoveIndex removes the element at i, shifting later elements down,
// and reports whether i was in range.
func (y *Node) RemoveIndex(i int) bool {
	if i < 0 || i >= len(y.Values) {
		return false
	}
	y.Values = slices.Delete(y.Values, i, i+1)
	y.renumber(i)
	return true
}

func (y *Node) Append(v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Values = append(y.Values, v)
}

func (y *Node) renumber(from int) {
	for i := from; i < len(y.Values); i++ {
		y.Values[i].ParentIndex = i
	}
	for i := from; i < len(y.Fields); i++ {
		y.Fields[i].ParentIndex = i
	}
}

// ReType reinterprets a string node as the scalar its text spells,
// used when accepting values from sources that only carry text.
func (y *Node) ReType() {
	if y.Type != StringType {
		return
	}
	v := y.String
	switch v {
	case "null":
		y.Type = NullType
		return
	case "true":
		y.Type = BoolType
		y.Bool = true
		return
	case "false":
		y.Type = BoolType
		y.Bool = false
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		y.Type = NumberType
		y.Int64 = &i
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		y.Type = NumberType
		y.Float64 = &f
	}
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
