package confee

import (
	"iter"
	"slices"

	"github.com/cupcake-build/cupcake/ir"
)

// Span is a Python-style slice: optional start, stop, and step, with
// negative indices counting from the end. The zero Span selects all.
type Span struct {
	Start, Stop, Step *int
}

func (s Span) WithStart(v int) Span { s.Start = &v; return s }
func (s Span) WithStop(v int) Span  { s.Stop = &v; return s }
func (s Span) WithStep(v int) Span  { s.Step = &v; return s }

func (s Span) unbounded() bool {
	return s.Start == nil && s.Stop == nil
}

type selection struct {
	span *Span
	subs []subscript
}

func fieldSelection(names []string) selection {
	subs := make([]subscript, len(names))
	for i, name := range names {
		subs[i] = fieldKey(name)
	}
	return selection{subs: subs}
}

func indexSelection(is []int) selection {
	subs := make([]subscript, len(is))
	for i, idx := range is {
		subs[i] = indexKey(idx)
	}
	return selection{subs: subs}
}

// Multi is a lazy view over zero or more proxies selected from a base
// Proxy (or another Multi) by a span or explicit subscripts. Nothing is
// resolved until iteration: span indices are recomputed against the
// collection's length each time.
type Multi struct {
	base Seq
	sel  selection
}

func (m *Multi) Proxies() iter.Seq[*Proxy] {
	return func(yield func(*Proxy) bool) {
		for p := range m.base.Proxies() {
			if !m.emit(p, yield) {
				return
			}
		}
	}
}

func (m *Multi) emit(p *Proxy, yield func(*Proxy) bool) bool {
	if m.sel.span == nil {
		for _, k := range m.sel.subs {
			if !yield(p.node.get(k)) {
				return false
			}
		}
		return true
	}
	if !p.Exists() {
		return true
	}
	v := p.MustValue()
	switch v.Type {
	case ir.ObjectType:
		// Only unbounded spans are valid for objects.
		if !m.sel.span.unbounded() {
			panic("confee: bounded span over object at " + p.Path())
		}
		for _, f := range v.Fields {
			if !yield(p.Get(f.String)) {
				return false
			}
		}
		return true
	case ir.ArrayType:
		for _, i := range spanIndices(*m.sel.span, len(v.Values)) {
			if !yield(p.At(i)) {
				return false
			}
		}
		return true
	default:
		panic("confee: cannot slice scalar at " + p.Path())
	}
}

// Get selects the named field of each proxy in the view.
func (m *Multi) Get(field string) *Multi {
	return &Multi{base: m, sel: fieldSelection([]string{field})}
}

// At selects the indexed element of each proxy in the view.
func (m *Multi) At(index int) *Multi {
	return &Multi{base: m, sel: indexSelection([]int{index})}
}

// All selects every element of each proxy in the view.
func (m *Multi) All() *Multi {
	return m.Span(Span{})
}

func (m *Multi) Span(s Span) *Multi {
	return &Multi{base: m, sel: selection{span: &s}}
}

func (m *Multi) Fields(names ...string) *Multi {
	return &Multi{base: m, sel: fieldSelection(names)}
}

func (m *Multi) Indices(is ...int) *Multi {
	return &Multi{base: m, sel: indexSelection(is)}
}

// Collect resolves a view into a slice of proxies.
func Collect(s Seq) []*Proxy {
	return slices.Collect(s.Proxies())
}

func sign(i int) int {
	switch {
	case i > 0:
		return 1
	case i < 0:
		return -1
	default:
		return 0
	}
}

// spanIndices resolves a span against a concrete length, with Python
// slice semantics: negative indices count from the end, out-of-range
// bounds clamp, and a negative step walks backwards.
func spanIndices(s Span, length int) []int {
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		panic("confee: span step cannot be zero")
	}

	var start int
	switch {
	case s.Start == nil:
		if step > 0 {
			start = 0
		} else {
			start = length - 1
		}
	default:
		start = *s.Start
		if start < 0 {
			start += length
		}
	}
	if start < 0 {
		start = -1 + sign(step)
	} else if start >= length {
		start = length + sign(step)
	}

	var stop int
	switch {
	case s.Stop == nil:
		if step > 0 {
			stop = length
		} else {
			stop = -1
		}
	default:
		stop = *s.Stop
		if stop < 0 {
			stop += length
		}
	}
	if stop < 0 {
		stop = -1
	} else if stop > length {
		stop = length
	}

	var res []int
	for sign(stop-start) == sign(step) {
		res = append(res, start)
		start += step
	}
	return res
}
