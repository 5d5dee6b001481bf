package confee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cupcake-build/cupcake/ir"
)

// decodeJSON parses a JSON document over the token stream, preserving
// object key order, which a decode through map[string]any would lose.
func decodeJSON(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after document")
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonValue(dec, tok)
}

func jsonValue(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := ir.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.SetField(key, v)
			}
			// consume '}'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := ir.NewArray()
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return ir.FromString(t), nil
	case bool:
		return ir.FromBool(t), nil
	case json.Number:
		return jsonNumber(t)
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func jsonNumber(num json.Number) (*ir.Node, error) {
	if i, err := num.Int64(); err == nil {
		y := ir.FromInt(i)
		y.Number = num.String()
		return y, nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, err
	}
	y := ir.FromFloat(f)
	y.Number = num.String()
	return y, nil
}

func encodeJSON(node *ir.Node, w io.Writer) error {
	buf := &bytes.Buffer{}
	if err := writeJSON(node, buf, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSON(node *ir.Node, buf *bytes.Buffer, depth int) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := range node.Fields {
			writeIndent(buf, depth+1)
			if err := writeJSONString(node.Fields[i].String, buf); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSON(node.Values[i], buf, depth+1); err != nil {
				return err
			}
			if i != len(node.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
		return nil
	case ir.ArrayType:
		if len(node.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, elt := range node.Values {
			writeIndent(buf, depth+1)
			if err := writeJSON(elt, buf, depth+1); err != nil {
				return err
			}
			if i != len(node.Values)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
		return nil
	case ir.StringType:
		return writeJSONString(node.String, buf)
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
		return nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*node.Int64, 10))
		case node.Float64 != nil:
			buf.WriteString(strconv.FormatFloat(*node.Float64, 'g', -1, 64))
		default:
			buf.WriteString(node.Number)
		}
		return nil
	case ir.NullType:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("cannot encode %s", node.Type)
	}
}

func writeJSONString(s string, buf *bytes.Buffer) error {
	d, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}
