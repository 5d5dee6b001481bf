package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cupcake-build/cupcake/confee"
	"github.com/cupcake-build/cupcake/ir"

	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}
	p, err := confee.Walk(doc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	v, err := p.Value()
	if err != nil {
		return err
	}
	return printValue(cc.Out, v, doc.Format(), cfg.colorize())
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: set requires a path and a value", cli.ErrUsage)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}
	var before bytes.Buffer
	if cfg.Diff {
		if err := confee.Encode(doc.MustValue(), doc.Format(), &before); err != nil {
			return err
		}
	}
	p, err := confee.Walk(doc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	value := ir.FromString(args[1])
	value.ReType()
	confee.Set(p, value)
	if cfg.Diff {
		return printDiff(cfg.MainConfig, cc, before.String(), doc)
	}
	return confee.Write(doc)
}

// printDiff shows the pending document change without writing it.
func printDiff(cfg *MainConfig, cc *cli.Context, before string, doc *confee.Proxy) error {
	var after bytes.Buffer
	if err := confee.Encode(doc.MustValue(), doc.Format(), &after); err != nil {
		return err
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after.String(), true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if cfg.colorize() {
		_, err := fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
		return err
	}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			fmt.Fprintf(cc.Out, "{+%s+}", d.Text)
		case diffpatch.DiffDelete:
			fmt.Fprintf(cc.Out, "[-%s-]", d.Text)
		case diffpatch.DiffEqual:
			fmt.Fprint(cc.Out, d.Text)
		}
	}
	return nil
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: rm requires one argument, a path", cli.ErrUsage)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}
	p, err := confee.Walk(doc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if p == doc {
		return fmt.Errorf("%w: cannot remove the document root", cli.ErrUsage)
	}
	if !p.Exists() {
		fmt.Fprintf(os.Stderr, "nothing at %s\n", p.Path())
		return nil
	}
	confee.Delete(p)
	return confee.Write(doc)
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: view takes no arguments", cli.ErrUsage)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}
	return printValue(cc.Out, doc.MustValue(), doc.Format(), cfg.colorize())
}
