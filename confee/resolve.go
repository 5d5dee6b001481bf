package confee

import (
	"fmt"
	"iter"
	"maps"

	"github.com/cupcake-build/cupcake/ir"
	"github.com/cupcake-build/cupcake/pred"
)

func toNode(value any) *ir.Node {
	if value == nil {
		return nil
	}
	y, err := ir.FromAny(value)
	if err != nil {
		panic("confee: " + err.Error())
	}
	return y
}

// fromNode reads a stored value as T, with the numeric and container
// conversions a config consumer expects.
func fromNode[T any](n *ir.Node, path string) (T, error) {
	var zero T
	var res any
	switch any(zero).(type) {
	case string:
		if n.Type == ir.StringType {
			res = n.String
		}
	case bool:
		if n.Type == ir.BoolType {
			res = n.Bool
		}
	case int64:
		if n.Type == ir.NumberType && n.Int64 != nil {
			res = *n.Int64
		}
	case int:
		if n.Type == ir.NumberType && n.Int64 != nil {
			res = int(*n.Int64)
		}
	case float64:
		if n.Type == ir.NumberType {
			if n.Float64 != nil {
				res = *n.Float64
			} else if n.Int64 != nil {
				res = float64(*n.Int64)
			}
		}
	case []string:
		if n.Type == ir.ArrayType {
			ss := make([]string, 0, len(n.Values))
			for _, elt := range n.Values {
				if elt.Type != ir.StringType {
					ss = nil
					break
				}
				ss = append(ss, elt.String)
			}
			if ss != nil || len(n.Values) == 0 {
				res = ss
			}
		}
	case map[string]string:
		if n.Type == ir.ObjectType {
			m := make(map[string]string, len(n.Fields))
			ok := true
			for i := range n.Fields {
				if n.Values[i].Type != ir.StringType {
					ok = false
					break
				}
				m[n.Fields[i].String] = n.Values[i].String
			}
			if ok {
				res = m
			}
		}
	case map[string]any:
		if n.Type == ir.ObjectType {
			res = ir.ToAny(n)
		}
	case []any:
		if n.Type == ir.ArrayType {
			res = ir.ToAny(n)
		}
	case *ir.Node:
		res = n
	default:
		res = ir.ToAny(n)
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%s: cannot read %s value as %T", path, n.Type, zero)
	}
	return v, nil
}

// Resolve implements the option precedence chain: an explicit override
// wins and is persisted into the config; otherwise the stored value;
// otherwise the default. A nil override means "not given".
func Resolve[T any](override *T, proxy *Proxy, def T) (T, error) {
	return ResolveFunc(override, proxy, func() T { return def })
}

// ResolveFunc is Resolve with a lazily built default.
func ResolveFunc[T any](override *T, proxy *Proxy, def func() T) (T, error) {
	if override == nil {
		n := proxy.node
		if n.value == nil {
			return def(), nil
		}
		return fromNode[T](n.value, n.pathString())
	}
	// The proxy should point to a leaf in the config.
	if proxy.node.parent == nil {
		panic("confee: resolve override requires a non-root proxy")
	}
	proxy.node.parent.set(proxy.node.key, toNode(*override))
	return *override, nil
}

// Merge compiles a group of named options. Start from the stored group
// (default when absent), overwrite adds, remove removes, then write the
// result back, or delete the stored group entirely when it equals the
// default so the on-disk config stays minimal.
//
// Unlike Resolve, the stored value takes precedence over the default:
// accumulating option sets replace their default wholesale.
func Merge(adds map[string]any, removes []string, proxy *Proxy, def map[string]any) (map[string]any, error) {
	group := maps.Clone(def)
	if group == nil {
		group = map[string]any{}
	}
	if proxy.node.value != nil {
		stored, ok := ir.ToAny(proxy.node.value).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object, got %s", proxy.Path(), proxy.node.value.Type)
		}
		group = stored
	}
	for name, value := range adds {
		group[name] = value
	}
	for _, name := range removes {
		delete(group, name)
	}
	groupNode, err := ir.FromAny(normalizeMap(group))
	if err != nil {
		return nil, err
	}
	defNode, err := ir.FromAny(normalizeMap(def))
	if err != nil {
		return nil, err
	}
	if ir.Equal(groupNode, defNode) {
		Delete(proxy)
	} else {
		Set(proxy, groupNode)
	}
	return group, nil
}

func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// Set writes a whole value through a proxy, the free-function form of
// assignment for when the proxy itself is the target.
func Set(proxy *Proxy, value any) {
	n := proxy.node
	if n.parent == nil {
		v := toNode(value)
		if v == nil {
			panic("confee: cannot delete document root")
		}
		n.value = v
		return
	}
	n.parent.set(n.key, toNode(value))
}

// Delete removes the value a proxy points at, pruning emptied ancestors.
func Delete(proxy *Proxy) {
	if proxy.node.parent == nil {
		panic("confee: cannot delete document root")
	}
	proxy.node.parent.del(proxy.node.key)
}

// Add appends an item to the array a proxy points at, creating the array
// when absent.
func Add(proxy *Proxy, item any) {
	items := proxy.ValueOrFunc(ir.NewArray)
	if items.Type != ir.ArrayType {
		panic("confee: cannot add to " + items.Type.String() + " at " + proxy.Path())
	}
	arr := items.Clone()
	arr.Append(toNode(item))
	Set(proxy, arr)
}

// Filter lazily yields the proxies whose extracted value satisfies e.
// Absent proxies never match.
func Filter(proxies Seq, e pred.Expr) iter.Seq[*Proxy] {
	return func(yield func(*Proxy) bool) {
		for p := range proxies.Proxies() {
			if p.node.value == nil {
				continue
			}
			if !e.Matches(p.node.value) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// RemoveIf deletes every proxy whose extracted value satisfies e.
// Matches are collected first and deleted in reverse yield order, so
// array index shifts cannot skip elements.
func RemoveIf(proxies Seq, e pred.Expr) {
	var matched []*Proxy
	for p := range Filter(proxies, e) {
		matched = append(matched, p)
	}
	for i := len(matched) - 1; i >= 0; i-- {
		Delete(matched[i])
	}
}
