package main

import (
	"fmt"

	"github.com/cupcake-build/cupcake/confee"

	"github.com/scott-cotton/cli"
)

// Build setting defaults, used when neither a flag nor the stored
// configuration provides a value.
const (
	defaultGenerator = "Ninja"
	defaultFlavor    = "release"
	defaultPrefix    = ".install"
)

func defaultVariables() map[string]any {
	return map[string]any{
		"BUILD_TESTING":                 true,
		"CMAKE_EXPORT_COMPILE_COMMANDS": true,
	}
}

func configure(cfg *ConfigureConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Configure.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: configure takes no arguments", cli.ErrUsage)
	}
	if cfg.Flavor != nil && *cfg.Flavor != "debug" && *cfg.Flavor != "release" {
		return fmt.Errorf("%w: flavor must be debug or release, got %q", cli.ErrUsage, *cfg.Flavor)
	}
	doc, err := confee.Read(cfg.File)
	if err != nil {
		return err
	}

	generator, err := confee.Resolve(cfg.Generator, doc.Get("generator"), defaultGenerator)
	if err != nil {
		return err
	}
	flavor, err := confee.Resolve(cfg.Flavor, doc.Get("flavor"), defaultFlavor)
	if err != nil {
		return err
	}
	shared, err := confee.Resolve(cfg.Shared, doc.Get("shared"), false)
	if err != nil {
		return err
	}
	prefix, err := confee.Resolve(cfg.Prefix, doc.Get("prefix"), defaultPrefix)
	if err != nil {
		return err
	}
	variables, err := confee.Merge(cfg.Define, cfg.Undef, doc.Get("variables"), defaultVariables())
	if err != nil {
		return err
	}

	if err := confee.Write(doc); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "generator: %s\n", generator)
	fmt.Fprintf(cc.Out, "flavor:    %s\n", flavor)
	fmt.Fprintf(cc.Out, "shared:    %t\n", shared)
	fmt.Fprintf(cc.Out, "prefix:    %s\n", prefix)
	for name, value := range variables {
		fmt.Fprintf(cc.Out, "  -D %s=%v\n", name, value)
	}
	return nil
}
