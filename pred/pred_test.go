package pred

import (
	"testing"

	"github.com/cupcake-build/cupcake/ir"
)

func dep(name, version string) *ir.Node {
	return ir.MustFromAny(map[string]any{"name": name, "version": version})
}

func TestSubject(t *testing.T) {
	n := ir.FromInt(1)
	r := Subject().Eval(n)
	if r.Err != nil || r.Node != n {
		t.Errorf("subject eval = %v", r)
	}
	if !Subject().Matches(ir.FromBool(true)) {
		t.Error("true subject should match")
	}
	if Subject().Matches(ir.FromInt(0)) {
		t.Error("zero subject should not match")
	}
}

func TestEq(t *testing.T) {
	e := Subject().Eq("zlib")
	if !e.Matches(ir.FromString("zlib")) {
		t.Error("should match equal string")
	}
	if e.Matches(ir.FromString("fmt")) {
		t.Error("should not match different string")
	}
	// Mixed int/float equality follows value comparison.
	if !Subject().Eq(1.0).Matches(ir.FromInt(1)) {
		t.Error("1 should equal 1.0")
	}
}

func TestField(t *testing.T) {
	e := Subject().Field("name").Eq("zlib")
	if !e.Matches(dep("zlib", "1.3")) {
		t.Error("should match by field")
	}
	if e.Matches(dep("fmt", "10.0")) {
		t.Error("should not match other dep")
	}
}

func TestFieldFailsClosed(t *testing.T) {
	missing := Subject().Field("nope").Eq("x")
	if missing.Matches(dep("zlib", "1.3")) {
		t.Error("missing field should not match")
	}
	if Subject().Field("name").Matches(ir.FromInt(3)) {
		t.Error("field access on a scalar should not match")
	}
	r := Subject().Field("name").Eval(ir.FromInt(3))
	if r.Err == nil {
		t.Error("expected error result")
	}
}

func TestAt(t *testing.T) {
	xs := ir.MustFromAny([]any{"a", "b", "c"})
	if !Subject().At(1).Eq("b").Matches(xs) {
		t.Error("at 1 should be b")
	}
	if !Subject().At(-1).Eq("c").Matches(xs) {
		t.Error("at -1 should be c")
	}
	if Subject().At(5).Eq("a").Matches(xs) {
		t.Error("out of range should not match")
	}
}

func TestOr(t *testing.T) {
	e := Subject().Field("name").Eq("zlib").Or(Subject().Field("name").Eq("fmt"))
	if !e.Matches(dep("zlib", "1.3")) || !e.Matches(dep("fmt", "10.0")) {
		t.Error("or should match either side")
	}
	if e.Matches(dep("catch2", "3.5")) {
		t.Error("or should not match neither")
	}
	// A failing side contributes false, it does not poison the other.
	withErr := Subject().Field("nope").Or(Subject().Eq(1))
	if !withErr.Matches(ir.FromInt(1)) {
		t.Error("error side should fall back to the other")
	}
}

func TestContains(t *testing.T) {
	e := Contains(Subject().Field("tags"), "fast")
	subject := ir.MustFromAny(map[string]any{"tags": []string{"fast", "small"}})
	if !e.Matches(subject) {
		t.Error("should find member")
	}
	if Contains(Subject().Field("tags"), "slow").Matches(subject) {
		t.Error("should not find non-member")
	}
	if Contains(Subject(), "x").Matches(ir.FromString("x")) {
		t.Error("contains over a scalar should not match")
	}
}

func TestMatchAny(t *testing.T) {
	items := []*ir.Node{dep("zlib", "1.3"), dep("fmt", "10.0")}
	if !Subject().Field("name").Eq("fmt").MatchAny(items) {
		t.Error("should match one of the items")
	}
	if Subject().Field("name").Eq("boost").MatchAny(items) {
		t.Error("should match none")
	}
}

func TestLitError(t *testing.T) {
	e := Lit(struct{}{})
	if e.Matches(ir.FromInt(1)) {
		t.Error("unrepresentable literal should never match")
	}
	if e.Eval(ir.FromInt(1)).Err == nil {
		t.Error("expected error result")
	}
}

func TestScript(t *testing.T) {
	e, err := Script(`subject.name == "zlib"`)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Matches(dep("zlib", "1.3")) {
		t.Error("script should match")
	}
	if e.Matches(dep("fmt", "10.0")) {
		t.Error("script should not match")
	}

	if _, err := Script(`subject ==`); err == nil {
		t.Error("expected compile error")
	}

	// Runtime errors fail closed.
	e, err = Script(`subject.name.inner == 1`)
	if err != nil {
		t.Fatal(err)
	}
	if e.Matches(dep("zlib", "1.3")) {
		t.Error("runtime failure should not match")
	}
}
