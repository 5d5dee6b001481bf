package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cupcake-build/cupcake/confee"
	"github.com/cupcake-build/cupcake/format"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
)

// patch applies an RFC 6902 patch to the configuration. The document is
// round-tripped through JSON for the patch engine, whatever its on-disk
// format.
func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: patch requires one argument, a patch file", cli.ErrUsage)
	}
	patchData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	ops, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := confee.Encode(doc.MustValue(), format.JSONFormat, &buf); err != nil {
		return err
	}
	patched, err := ops.Apply(buf.Bytes())
	if err != nil {
		return err
	}
	root, err := confee.Decode(format.JSONFormat, patched)
	if err != nil {
		return err
	}
	confee.Set(doc, root)
	return confee.Write(doc)
}
