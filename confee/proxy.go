package confee

import (
	"fmt"
	"iter"

	"github.com/cupcake-build/cupcake/format"
	"github.com/cupcake-build/cupcake/ir"
)

// Proxy is a stable handle to one place in a document tree. Navigating to
// the same place twice returns handles that observe each other's writes.
//
// The original design kept proxy state in an external identity-keyed
// table; here each Proxy owns its node directly.
type Proxy struct {
	node *node
}

// MissingError reports extraction from a place the document does not hold.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing key at %s", e.Path)
}

// Get navigates to a field, materializing nothing. The result is a live
// handle whether or not the field exists.
func (p *Proxy) Get(field string) *Proxy {
	return p.node.get(fieldKey(field))
}

// At navigates to an array index. Negative indices count from the end at
// lookup time.
func (p *Proxy) At(index int) *Proxy {
	return p.node.get(indexKey(index))
}

// Set writes a value under field, materializing absent ancestors as empty
// objects first. A nil value deletes instead.
func (p *Proxy) Set(field string, value any) {
	p.node.set(fieldKey(field), toNode(value))
}

// SetAt writes a value at an existing array index.
func (p *Proxy) SetAt(index int, value any) {
	p.node.set(indexKey(index), toNode(value))
}

// Delete removes a field, pruning ancestor containers it leaves empty.
func (p *Proxy) Delete(field string) {
	p.node.del(fieldKey(field))
}

// DeleteAt removes an array element, shifting later elements down.
func (p *Proxy) DeleteAt(index int) {
	p.node.del(indexKey(index))
}

// Exists reports whether the document holds a value here. An explicitly
// stored empty container is still present.
func (p *Proxy) Exists() bool {
	return p.node.value != nil
}

// Value extracts the current value, or a path-qualified MissingError.
func (p *Proxy) Value() (*ir.Node, error) {
	if p.node.value == nil {
		return nil, &MissingError{Path: p.node.pathString()}
	}
	return p.node.value, nil
}

// ValueOr extracts the current value, defaulting when absent.
func (p *Proxy) ValueOr(def *ir.Node) *ir.Node {
	if p.node.value == nil {
		return def
	}
	return p.node.value
}

// ValueOrFunc is ValueOr with a lazily built default.
func (p *Proxy) ValueOrFunc(def func() *ir.Node) *ir.Node {
	if p.node.value == nil {
		return def()
	}
	return p.node.value
}

// MustValue extracts the current value and panics when absent.
func (p *Proxy) MustValue() *ir.Node {
	v, err := p.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// StringOr extracts a string value, defaulting when absent.
func (p *Proxy) StringOr(def string) string {
	if v := p.node.value; v != nil && v.Type == ir.StringType {
		return v.String
	}
	return def
}

// BoolOr extracts a bool value, defaulting when absent.
func (p *Proxy) BoolOr(def bool) bool {
	if v := p.node.value; v != nil && v.Type == ir.BoolType {
		return v.Bool
	}
	return def
}

// IntOr extracts an integer value, defaulting when absent.
func (p *Proxy) IntOr(def int64) int64 {
	if v := p.node.value; v != nil && v.Type == ir.NumberType && v.Int64 != nil {
		return *v.Int64
	}
	return def
}

// Path renders the dotted path from the document root to this place.
func (p *Proxy) Path() string {
	return p.node.pathString()
}

// Format reports the serialized format of the document this proxy
// belongs to.
func (p *Proxy) Format() format.Format {
	return p.node.root().format
}

// File reports the path of the file the document was read from and will
// be written to.
func (p *Proxy) File() string {
	return p.node.root().path
}

// Seq is a source of proxies: a single Proxy yields itself, a Multi
// yields its selection. Uniform code can take "a value or a collection
// of values" without special-casing.
type Seq interface {
	Proxies() iter.Seq[*Proxy]
}

// Proxies yields exactly this proxy.
func (p *Proxy) Proxies() iter.Seq[*Proxy] {
	return func(yield func(*Proxy) bool) {
		yield(p)
	}
}

// All selects every element of the current or future collection value,
// lazily: doc.Get("arr").All() constructed before an insertion reflects
// the insertion when iterated afterward.
func (p *Proxy) All() *Multi {
	return p.Span(Span{})
}

// Span selects array elements by slice, resolved against the collection's
// length at iteration time. Only the unbounded Span is legal over objects.
func (p *Proxy) Span(s Span) *Multi {
	return &Multi{base: p, sel: selection{span: &s}}
}

// Fields selects the named fields, in the given order.
func (p *Proxy) Fields(names ...string) *Multi {
	return &Multi{base: p, sel: fieldSelection(names)}
}

// Indices selects the given array indices, in the given order.
func (p *Proxy) Indices(is ...int) *Multi {
	return &Multi{base: p, sel: indexSelection(is)}
}
