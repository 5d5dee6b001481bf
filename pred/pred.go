// Package pred is a small predicate sublanguage over document values.
// Predicates are composable expressions evaluated against a subject
// node; evaluation failures become values, not panics, so a malformed
// field access fails closed (matches nothing) instead of aborting
// iteration over unrelated elements.
package pred

import (
	"fmt"

	"github.com/cupcake-build/cupcake/ir"
)

// Result is the outcome of evaluating an expression against a subject.
// Comparisons treat an error result as a non-match.
type Result struct {
	Node *ir.Node
	Err  error
}

func (r Result) Truthy() bool {
	return r.Err == nil && r.Node != nil && ir.Truth(r.Node)
}

func errResult(format string, args ...any) Result {
	return Result{Err: fmt.Errorf(format, args...)}
}

// Expr is a boolean-valued expression over a subject value.
type Expr struct {
	eval func(subject *ir.Node) Result
}

// Subject is the identity expression: evaluating it returns the tested
// value unchanged.
func Subject() Expr {
	return Expr{eval: func(subject *ir.Node) Result {
		return Result{Node: subject}
	}}
}

// Lit is a constant expression.
func Lit(v any) Expr {
	node, err := ir.FromAny(v)
	return Expr{eval: func(*ir.Node) Result {
		if err != nil {
			return Result{Err: err}
		}
		return Result{Node: node}
	}}
}

// Func lifts a plain function into an expression.
func Func(f func(subject *ir.Node) (*ir.Node, error)) Expr {
	return Expr{eval: func(subject *ir.Node) Result {
		node, err := f(subject)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Node: node}
	}}
}

// Eval evaluates the expression against a subject.
func (e Expr) Eval(subject *ir.Node) Result {
	return e.eval(subject)
}

// Matches reports whether evaluating against subject yields truth.
func (e Expr) Matches(subject *ir.Node) bool {
	return e.Eval(subject).Truthy()
}

// MatchAny reports whether some item satisfies the predicate, the
// "match(pred) in collection" form.
func (e Expr) MatchAny(items []*ir.Node) bool {
	for _, item := range items {
		if e.Matches(item) {
			return true
		}
	}
	return false
}

// Field indexes the result of e by an object field. A missing field or a
// non-object value is an error result, not a panic.
func (e Expr) Field(name string) Expr {
	return Expr{eval: func(subject *ir.Node) Result {
		r := e.eval(subject)
		if r.Err != nil {
			return r
		}
		if r.Node == nil || r.Node.Type != ir.ObjectType {
			return errResult("no field %q on %s", name, typeName(r.Node))
		}
		v := ir.Get(r.Node, name)
		if v == nil {
			return errResult("no field %q", name)
		}
		return Result{Node: v}
	}}
}

// At indexes the result of e by an array index.
func (e Expr) At(index int) Expr {
	return Expr{eval: func(subject *ir.Node) Result {
		r := e.eval(subject)
		if r.Err != nil {
			return r
		}
		if r.Node == nil || r.Node.Type != ir.ArrayType {
			return errResult("no index %d on %s", index, typeName(r.Node))
		}
		i := index
		if i < 0 {
			i += len(r.Node.Values)
		}
		if i < 0 || i >= len(r.Node.Values) {
			return errResult("index %d out of range", index)
		}
		return Result{Node: r.Node.Values[i]}
	}}
}

// Eq compares the result of e with v (an Expr or a literal) for value
// equality. An error operand compares unequal.
func (e Expr) Eq(v any) Expr {
	rhs := asExpr(v)
	return Expr{eval: func(subject *ir.Node) Result {
		l := e.eval(subject)
		r := rhs.eval(subject)
		if l.Err != nil || r.Err != nil {
			return Result{Node: ir.FromBool(false)}
		}
		return Result{Node: ir.FromBool(ir.Equal(l.Node, r.Node))}
	}}
}

// Or is logical disjunction on truthiness; an error operand contributes
// false.
func (e Expr) Or(rhs Expr) Expr {
	return Expr{eval: func(subject *ir.Node) Result {
		if e.eval(subject).Truthy() || rhs.eval(subject).Truthy() {
			return Result{Node: ir.FromBool(true)}
		}
		return Result{Node: ir.FromBool(false)}
	}}
}

// Contains tests membership: whether the collection coll evaluates to
// contains the result of item. Both operands are evaluated against the
// subject.
func Contains(coll, item any) Expr {
	cExpr := asExpr(coll)
	iExpr := asExpr(item)
	return Expr{eval: func(subject *ir.Node) Result {
		c := cExpr.eval(subject)
		i := iExpr.eval(subject)
		if c.Err != nil || i.Err != nil {
			return Result{Node: ir.FromBool(false)}
		}
		if c.Node == nil || c.Node.Type != ir.ArrayType {
			return errResult("contains on %s", typeName(c.Node))
		}
		for _, elt := range c.Node.Values {
			if ir.Equal(elt, i.Node) {
				return Result{Node: ir.FromBool(true)}
			}
		}
		return Result{Node: ir.FromBool(false)}
	}}
}

func asExpr(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Lit(v)
}

func typeName(n *ir.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Type.String()
}
