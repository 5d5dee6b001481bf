package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cupcake-build/cupcake/ir"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

const (
	defaultConfigFile = ".cupcake.toml"
	defaultMetaFile   = "cupcake.json"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='print values in color'"`
	NoColor bool `cli:"name=no-color desc='never print values in color'"`

	// File is the configuration document most commands operate on;
	// the dependency commands (add, remove) use Meta instead.
	File string `cli:"name=f aliases=file desc='configuration file' default=.cupcake.toml"`
	Meta string `cli:"name=m aliases=meta desc='project metadata file' default=cupcake.json"`

	Main *cli.Command
}

// colorize decides whether value output goes out colored: an explicit
// flag wins, otherwise color is on exactly when stdout is a terminal.
func (cfg *MainConfig) colorize() bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Diff bool `cli:"name=diff desc='show the change as a diff instead of writing'"`

	Set *cli.Command
}

type RmConfig struct {
	*MainConfig
	Rm *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type ConfigureConfig struct {
	*MainConfig

	Generator *string
	Flavor    *string
	Shared    *bool
	Prefix    *string

	Define map[string]any
	Undef  []string

	Configure *cli.Command
}

// stringOpt captures an optional string flag: unset stays nil.
func stringOpt(dst **string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		*dst = &v
		return v, nil
	})
}

func boolOpt(dst **bool) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		var b bool
		switch v {
		case "true", "yes", "on":
			b = true
		case "false", "no", "off":
			b = false
		default:
			return nil, fmt.Errorf("%w: not a boolean: %q", cli.ErrUsage, v)
		}
		*dst = &b
		return b, nil
	})
}

// defineOpt accumulates -D name=value pairs. Values are retyped the way
// document scalars are, so -D BUILD_TESTING=true stores a boolean.
func defineOpt(vars map[string]any) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", cli.ErrUsage, a)
		}
		n := ir.FromString(value)
		n.ReType()
		vars[name] = ir.ToAny(n)
		return a, nil
	})
}

func undefOpt(names *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		*names = append(*names, a)
		return a, nil
	})
}

type AddConfig struct {
	*MainConfig
	Add *cli.Command
}

type RemoveConfig struct {
	*MainConfig
	Remove *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch *cli.Command
}
