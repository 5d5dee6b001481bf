package pred

import (
	"github.com/cupcake-build/cupcake/debug"
	"github.com/cupcake-build/cupcake/ir"

	"github.com/expr-lang/expr"
)

// Script compiles an expr program into a predicate. The subject is bound
// as `subject` in the program environment, converted to plain Go values.
//
//	e, err := pred.Script(`subject.name == "fmt"`)
func Script(src string) (Expr, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return Expr{}, err
	}
	return Func(func(subject *ir.Node) (*ir.Node, error) {
		env := map[string]any{"subject": ir.ToAny(subject)}
		res, err := expr.Run(prg, env)
		if err != nil {
			if debug.Pred() {
				debug.Logf("script %q failed on %s: %s\n", src, subject.Path(), err)
			}
			return nil, err
		}
		return ir.FromAny(res)
	}), nil
}
