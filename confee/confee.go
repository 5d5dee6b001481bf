// Package confee is a lazy, path-aware, mutable proxy over a serialized
// configuration document (TOML or JSON).
//
// Reading a file yields a root Proxy. Navigation returns child proxies
// whether or not their paths exist; writing through an absent path
// materializes the intermediate containers; deleting the last entry of a
// container prunes the emptied ancestors so empty tables never persist.
// Writes go back to disk atomically.
package confee

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cupcake-build/cupcake/debug"
	"github.com/cupcake-build/cupcake/format"
	"github.com/cupcake-build/cupcake/ir"
)

var (
	// ErrCancelled signals an in-progress atomic write to commit
	// nothing. It is swallowed at the Atomic boundary; any other error
	// also aborts the write but propagates to the caller.
	ErrCancelled = errors.New("confee: operation cancelled")

	ErrParse = errors.New("parse error")
)

// Read parses the document at path into a root Proxy. A nonexistent file
// reads as an empty document; a malformed one is a fatal parse error.
// The format comes from the file extension: ".json" is JSON, anything
// else TOML.
func Read(path string) (*Proxy, error) {
	return ReadFormat(path, format.FromPath(path))
}

func ReadFormat(path string, f format.Format) (*Proxy, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newRoot(f, path, ir.NewObject()), nil
	}
	if err != nil {
		return nil, err
	}
	root, err := decodeDoc(f, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return newRoot(f, path, root), nil
}

// Write serializes the document the proxy belongs to back to its
// original path, atomically.
func Write(proxy *Proxy) error {
	n := proxy.node.root()
	if debug.Write() {
		debug.Logf("write %s (%s)\n", n.path, n.format)
	}
	return Atomic(n.path, func(w io.Writer) error {
		return encodeDoc(n.format, n.value, w)
	})
}

// Atomic writes to a temporary file in the destination's directory and
// renames it into place, so a reader never observes a partial file. The
// temporary file is removed on every exit path. A producer returning
// ErrCancelled aborts the write without error.
func Atomic(path string, produce func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if err := produce(tmp); err != nil {
		tmp.Close()
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// Encode serializes a value to w as a standalone document in f.
func Encode(node *ir.Node, f format.Format, w io.Writer) error {
	return encodeDoc(f, node, w)
}

// Decode parses a standalone document in f.
func Decode(f format.Format, data []byte) (*ir.Node, error) {
	return decodeDoc(f, data)
}

func decodeDoc(f format.Format, data []byte) (*ir.Node, error) {
	if f.IsJSON() {
		return decodeJSON(data)
	}
	return decodeTOML(data)
}

func encodeDoc(f format.Format, node *ir.Node, w io.Writer) error {
	if f.IsJSON() {
		return encodeJSON(node, w)
	}
	return encodeTOML(node, w)
}
