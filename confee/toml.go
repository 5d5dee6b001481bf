package confee

import (
	"fmt"
	"io"

	"github.com/cupcake-build/cupcake/ir"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML parses a TOML document. Key order is normalized (sorted) on
// the way in; order-sensitive tests compare documents key-insensitively.
func decodeTOML(data []byte) (*ir.Node, error) {
	m := map[string]any{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return ir.FromAny(m)
}

func encodeTOML(node *ir.Node, w io.Writer) error {
	v, ok := ir.ToAny(node).(map[string]any)
	if !ok {
		return fmt.Errorf("toml document root must be an object, got %s", node.Type)
	}
	data, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
