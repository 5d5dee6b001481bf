package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Object fields compare by key, not by insertion position.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports value equality. Key order in objects is not significant.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if fa, fb, ok := bothFloats(a, b); ok {
		return cmp.Compare(fa, fb)
	}
	// Sub-rank: Int64 < Float64 < String
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}
	return strings.Compare(a.Number, b.Number)
}

// bothFloats widens mixed int/float pairs so that 1 == 1.0.
func bothFloats(a, b *Node) (float64, float64, bool) {
	fa, okA := floatValue(a)
	fb, okB := floatValue(b)
	return fa, fb, okA && okB
}

func floatValue(n *Node) (float64, bool) {
	if n.Float64 != nil {
		return *n.Float64, true
	}
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	return 0, false
}

func numberSubRank(n *Node) int {
	if n.Int64 != nil {
		return 0
	}
	if n.Float64 != nil {
		return 1
	}
	return 2
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	aIdx := sortedFieldIndex(a)
	bIdx := sortedFieldIndex(b)
	minLen := min(len(aIdx), len(bIdx))

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[aIdx[i]].String, b.Fields[bIdx[i]].String); c != 0 {
			return c
		}
		if c := Compare(a.Values[aIdx[i]], b.Values[bIdx[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(aIdx), len(bIdx))
}

func sortedFieldIndex(y *Node) []int {
	idx := make([]int, len(y.Fields))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(i, j int) int {
		return strings.Compare(y.Fields[i].String, y.Fields[j].String)
	})
	return idx
}
