package main

import (
	"fmt"

	"github.com/cupcake-build/cupcake/confee"
	"github.com/cupcake-build/cupcake/pred"

	"github.com/scott-cotton/cli"
)

func add(cfg *AddConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Add.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: add requires a name and a version", cli.ErrUsage)
	}
	name, version := args[0], args[1]
	meta, err := confee.Read(cfg.Meta)
	if err != nil {
		return err
	}
	// Replace an existing entry for the same name.
	confee.RemoveIf(meta.Get("dependencies").All(), pred.Subject().Field("name").Eq(name))
	confee.Add(meta.Get("dependencies"), map[string]any{
		"name":    name,
		"version": version,
	})
	return confee.Write(meta)
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: remove requires a name", cli.ErrUsage)
	}
	meta, err := confee.Read(cfg.Meta)
	if err != nil {
		return err
	}
	confee.RemoveIf(meta.Get("dependencies").All(), pred.Subject().Field("name").Eq(args[0]))
	return confee.Write(meta)
}

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: filter requires an expression and an optional path", cli.ErrUsage)
	}
	e, err := pred.Script(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}
	base := doc
	if len(args) == 2 {
		base, err = confee.Walk(doc, args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	for p := range confee.Filter(base.All(), e) {
		if err := printValue(cc.Out, p.MustValue(), doc.Format(), cfg.colorize()); err != nil {
			return err
		}
	}
	return nil
}
