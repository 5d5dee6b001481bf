package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "cupcake").
		WithSynopsis("cupcake [opts] command [opts]").
		WithDescription("cupcake manages a project's build configuration.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cupcakeMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			RmCommand(cfg),
			ViewCommand(cfg),
			ConfigureCommand(cfg),
			AddCommand(cfg),
			RemoveCommand(cfg),
			FilterCommand(cfg),
			PatchCommand(cfg))
}

func cupcakeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path>").
		WithDescription("print the value at a path, like $.build.jobs").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithAliases("s").
		WithSynopsis("set [-diff] <path> <value>").
		WithDescription("store a value at a path, creating missing tables").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func RmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RmConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("rm").
		WithSynopsis("rm <path>").
		WithDescription("remove the value at a path, pruning emptied tables").
		WithRun(func(cc *cli.Context, args []string) error {
			return rm(cfg, cc, args)
		})
	cfg.Rm = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view").
		WithDescription("print the whole configuration document").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func ConfigureCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConfigureConfig{MainConfig: mainCfg, Define: map[string]any{}}
	opts := []*cli.Opt{
		{
			Name:        "generator",
			Aliases:     []string{"G"},
			Description: "build system generator",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Generator), "(name)"),
		},
		{
			Name:        "flavor",
			Description: "build flavor: debug or release",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Flavor), "(flavor)"),
		},
		{
			Name:        "shared",
			Description: "build shared libraries",
			Type:        cli.NamedFuncOpt(boolOpt(&cfg.Shared), "(bool)"),
		},
		{
			Name:        "prefix",
			Description: "install prefix",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Prefix), "(dir)"),
		},
		{
			Name:        "D",
			Aliases:     []string{"define"},
			Description: "set a build variable",
			Type:        cli.NamedFuncOpt(defineOpt(cfg.Define), "(name=value)"),
		},
		{
			Name:        "U",
			Aliases:     []string{"undefine"},
			Description: "unset a build variable",
			Type:        cli.NamedFuncOpt(undefOpt(&cfg.Undef), "(name)"),
		},
	}
	cmd := cli.NewCommand("configure").
		WithAliases("c", "conf").
		WithSynopsis("configure [-generator g] [-flavor f] [-shared b] [-prefix p] [-D name=value]... [-U name]...").
		WithDescription("persist build settings, with flags taking precedence over stored values").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return configure(cfg, cc, args)
		})
	cfg.Configure = cmd
	return cmd
}

func AddCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AddConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("add").
		WithSynopsis("add <name> <version>").
		WithDescription("add a dependency to the project metadata").
		WithRun(func(cc *cli.Context, args []string) error {
			return add(cfg, cc, args)
		})
	cfg.Add = cmd
	return cmd
}

func RemoveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemoveConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("remove").
		WithSynopsis("remove <name>").
		WithDescription("remove a dependency from the project metadata").
		WithRun(func(cc *cli.Context, args []string) error {
			return remove(cfg, cc, args)
		})
	cfg.Remove = cmd
	return cmd
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("filter").
		WithSynopsis("filter <expr> [path]").
		WithDescription("print collection elements matching an expression, e.g. 'subject.name == \"zlib\"'").
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
	cfg.Filter = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("patch").
		WithSynopsis("patch <patchfile>").
		WithDescription("apply an RFC 6902 JSON patch to the configuration").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
