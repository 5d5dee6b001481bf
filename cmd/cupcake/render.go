package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cupcake-build/cupcake/confee"
	"github.com/cupcake-build/cupcake/format"
	"github.com/cupcake-build/cupcake/ir"

	"github.com/fatih/color"
)

type colors struct {
	field func(string, ...any) string
	str   func(string, ...any) string
	num   func(string, ...any) string
	boolC func(string, ...any) string
	null  func(string, ...any) string
}

func newColors() *colors {
	return &colors{
		field: color.RGB(196, 96, 16).SprintfFunc(),
		str:   color.GreenString,
		num:   color.RGB(128, 216, 236).SprintfFunc(),
		boolC: color.MagentaString,
		null:  color.RGB(96, 96, 96).SprintfFunc(),
	}
}

// printValue prints a document value for the terminal: scalars as their
// literal text, containers as a document in the file's format. Colored
// container output is rendered in JSON shape, where the colorizer owns
// the encoding.
func printValue(w io.Writer, n *ir.Node, f format.Format, colored bool) error {
	if n.Type.IsLeaf() {
		text := scalarText(n)
		if colored {
			text = newColors().scalar(n, text)
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}
	if colored {
		buf := &bytes.Buffer{}
		if err := newColors().write(n, buf, 0); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	}
	return confee.Encode(n, f, w)
}

func scalarText(n *ir.Node) string {
	switch n.Type {
	case ir.StringType:
		return n.String
	case ir.BoolType:
		return strconv.FormatBool(n.Bool)
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return strconv.FormatInt(*n.Int64, 10)
		case n.Float64 != nil:
			return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
		default:
			return n.Number
		}
	case ir.NullType:
		return "null"
	}
	return ""
}

func (c *colors) scalar(n *ir.Node, text string) string {
	switch n.Type {
	case ir.StringType:
		return c.str("%s", text)
	case ir.BoolType:
		return c.boolC("%s", text)
	case ir.NumberType:
		return c.num("%s", text)
	default:
		return c.null("%s", text)
	}
}

func (c *colors) write(n *ir.Node, buf *bytes.Buffer, depth int) error {
	indent := func(d int) { buf.WriteString(strings.Repeat("  ", d)) }
	switch n.Type {
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := range n.Fields {
			indent(depth + 1)
			key, err := json.Marshal(n.Fields[i].String)
			if err != nil {
				return err
			}
			buf.WriteString(c.field("%s", key))
			buf.WriteString(": ")
			if err := c.write(n.Values[i], buf, depth+1); err != nil {
				return err
			}
			if i != len(n.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(depth)
		buf.WriteByte('}')
		return nil
	case ir.ArrayType:
		if len(n.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, elt := range n.Values {
			indent(depth + 1)
			if err := c.write(elt, buf, depth+1); err != nil {
				return err
			}
			if i != len(n.Values)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(depth)
		buf.WriteByte(']')
		return nil
	case ir.StringType:
		d, err := json.Marshal(n.String)
		if err != nil {
			return err
		}
		buf.WriteString(c.str("%s", d))
		return nil
	default:
		buf.WriteString(c.scalar(n, scalarText(n)))
		return nil
	}
}
