package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b *Node
		want int
	}{
		{Null(), Null(), 0},
		{Null(), FromBool(false), -1},
		{FromBool(false), FromBool(true), -1},
		{FromBool(true), FromInt(0), -1},
		{FromInt(1), FromInt(2), -1},
		{FromInt(2), FromInt(2), 0},
		{FromInt(1), FromFloat(1), 0},
		{FromFloat(0.5), FromInt(1), -1},
		{FromInt(3), FromString("0"), -1},
		{FromString("a"), FromString("b"), -1},
		{FromString("b"), FromString("b"), 0},
		{FromString("z"), NewArray(), -1},
		{MustFromAny([]any{1}), MustFromAny([]any{1, 0}), -1},
		{MustFromAny([]any{1, 2}), MustFromAny([]any{1, 2}), 0},
		{MustFromAny([]any{2}), MustFromAny([]any{1, 9}), 1},
		{NewArray(), NewObject(), -1},
		{MustFromAny(map[string]any{"a": 1}), MustFromAny(map[string]any{"a": 1}), 0},
		{MustFromAny(map[string]any{"a": 1}), MustFromAny(map[string]any{"a": 2}), -1},
		{MustFromAny(map[string]any{"a": 1}), MustFromAny(map[string]any{"b": 1}), -1},
	}
	for _, tt := range tests {
		if got := sign(Compare(tt.a, tt.b)); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", ToAny(tt.a), ToAny(tt.b), got, tt.want)
		}
		if got := sign(Compare(tt.b, tt.a)); got != -tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", ToAny(tt.b), ToAny(tt.a), got, -tt.want)
		}
	}
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

func TestEqualIgnoresFieldOrder(t *testing.T) {
	a := NewObject()
	a.SetField("x", FromInt(1))
	a.SetField("y", FromInt(2))
	b := NewObject()
	b.SetField("y", FromInt(2))
	b.SetField("x", FromInt(1))
	if !Equal(a, b) {
		t.Error("objects with the same fields should compare equal")
	}
}
