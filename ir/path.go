package ir

import (
	"strconv"
	"strings"
)

func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		return y.Parent.Path() + "." + QuoteField(y.ParentField)
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// QuoteField renders a field name for use in a path string, quoting it
// when it contains path metacharacters. Backslashes are escaped too, so
// a quoted name always scans back to itself.
func QuoteField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	f = strings.ReplaceAll(f, "'", "\\'")
	return "'" + f + "'"
}
