package confee

import (
	"strconv"

	"github.com/cupcake-build/cupcake/debug"
	"github.com/cupcake-build/cupcake/format"
	"github.com/cupcake-build/cupcake/ir"
)

type subKind int

const (
	fieldSub subKind = iota
	indexSub
)

// subscript is a key within a container: an object field or an array index.
// Only strings and integers are permissible because documents must stay
// serializable to TOML and JSON.
type subscript struct {
	kind  subKind
	field string
	index int
}

func fieldKey(name string) subscript {
	return subscript{kind: fieldSub, field: name}
}

func indexKey(i int) subscript {
	return subscript{kind: indexSub, index: i}
}

func (s subscript) String() string {
	if s.kind == indexSub {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return "." + ir.QuoteField(s.field)
}

// node tracks a path's current materialized value and parent linkage.
// A nil value means the key is absent from the document. members caches
// child proxies so repeated navigation to the same path returns an
// identity-stable handle.
type node struct {
	parent  *node
	key     subscript
	value   *ir.Node
	members map[subscript]*Proxy
	self    *Proxy

	// root only
	format format.Format
	path   string
}

func newRoot(f format.Format, path string, value *ir.Node) *Proxy {
	p := &Proxy{node: &node{
		value:   value,
		members: map[subscript]*Proxy{},
		format:  f,
		path:    path,
	}}
	p.node.self = p
	return p
}

func (n *node) root() *node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

func (n *node) pathString() string {
	if n.parent == nil {
		return "$"
	}
	return n.parent.pathString() + n.key.String()
}

// get returns the cached child proxy for k, creating and caching one
// bound to the child's current value otherwise. Never mutates n.value.
func (n *node) get(k subscript) *Proxy {
	k = n.normalize(k)
	if p, ok := n.members[k]; ok {
		return p
	}
	var value *ir.Node
	if n.value != nil {
		value = lookup(n.value, k, n.pathString())
	}
	p := &Proxy{node: &node{
		parent:  n,
		key:     k,
		value:   value,
		members: map[subscript]*Proxy{},
	}}
	p.node.self = p
	n.members[k] = p
	return p
}

// normalize folds integer subscripts against object values into decimal
// string fields, so At(1) and Get("1") share one cache entry.
func (n *node) normalize(k subscript) subscript {
	if k.kind == indexSub && n.value != nil && n.value.Type == ir.ObjectType {
		return fieldKey(strconv.Itoa(k.index))
	}
	return k
}

// set writes v under k, materializing this node's own value through the
// parent first when absent. A nil (or null) v is a delete request: TOML
// has no null representation.
func (n *node) set(k subscript, v *ir.Node) {
	if v == nil || v.Type == ir.NullType {
		n.del(k)
		return
	}
	if n.value == nil {
		// Materializing through the parent usually refreshes n.value
		// via the members-cache coherency path below. The cache misses
		// when this handle was evicted by a delete, or was cached under
		// a pre-normalized key while the parent was still absent; then
		// re-read the materialized container and re-adopt the handle.
		n.parent.set(n.key, ir.NewObject())
		if n.value == nil {
			old := n.key
			n.key = n.parent.normalize(old)
			if n.key != old {
				delete(n.parent.members, old)
			}
			n.value = lookup(n.parent.value, n.key, n.parent.pathString())
			if _, ok := n.parent.members[n.key]; !ok {
				n.parent.members[n.key] = n.self
			}
		}
	}
	k = n.normalize(k)
	if debug.Confee() {
		debug.Logf("set %s%s\n", n.pathString(), k)
	}
	assign(n.value, k, v, n.pathString())
	if p, ok := n.members[k]; ok {
		p.node.value = v
	}
}

// del removes k from this node's value. Removing the last entry of a
// container cascades: the now-empty container is deleted from its parent
// too, so empty shells never persist.
func (n *node) del(k subscript) {
	if n.value == nil {
		return
	}
	k = n.normalize(k)
	if debug.Confee() {
		debug.Logf("delete %s%s\n", n.pathString(), k)
	}
	remove(n.value, k, n.pathString())
	// Parents are always containers. Empty containers should be removed.
	if !ir.Truth(n.value) && n.parent != nil {
		n.parent.del(n.key)
	}
	if p, ok := n.members[k]; ok {
		delete(n.members, k)
		// The evicted handle reads as absent from here on.
		p.node.value = nil
	}
}

// lookup resolves k in a container value, or nil when absent. Indexing an
// array with a field name, or navigating through a scalar, is a caller
// programming error.
func lookup(container *ir.Node, k subscript, at string) *ir.Node {
	switch container.Type {
	case ir.ObjectType:
		if k.kind == indexSub {
			return ir.Get(container, strconv.Itoa(k.index))
		}
		return ir.Get(container, k.field)
	case ir.ArrayType:
		if k.kind == fieldSub {
			panic("confee: cannot index array at " + at + " with field " + strconv.Quote(k.field))
		}
		i := k.index
		if i < 0 {
			i += len(container.Values)
		}
		if i < 0 || i >= len(container.Values) {
			return nil
		}
		return container.Values[i]
	default:
		panic("confee: cannot navigate through scalar at " + at)
	}
}

func assign(container *ir.Node, k subscript, v *ir.Node, at string) {
	switch container.Type {
	case ir.ObjectType:
		if k.kind == indexSub {
			container.SetField(strconv.Itoa(k.index), v)
			return
		}
		container.SetField(k.field, v)
	case ir.ArrayType:
		if k.kind == fieldSub {
			panic("confee: cannot assign field " + strconv.Quote(k.field) + " in array at " + at)
		}
		i := k.index
		if i < 0 {
			i += len(container.Values)
		}
		if i < 0 || i >= len(container.Values) {
			panic("confee: index " + strconv.Itoa(k.index) + " out of range at " + at)
		}
		container.SetIndex(i, v)
	default:
		panic("confee: cannot assign through scalar at " + at)
	}
}

func remove(container *ir.Node, k subscript, at string) {
	switch container.Type {
	case ir.ObjectType:
		if k.kind == indexSub {
			container.DeleteField(strconv.Itoa(k.index))
			return
		}
		container.DeleteField(k.field)
	case ir.ArrayType:
		if k.kind == fieldSub {
			return
		}
		i := k.index
		if i < 0 {
			i += len(container.Values)
		}
		container.RemoveIndex(i)
	default:
		panic("confee: cannot delete through scalar at " + at)
	}
}
