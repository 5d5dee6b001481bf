// Package format names the serialized document formats the configuration
// backend understands: TOML (the default) and JSON.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Format int

const (
	TOMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"t":    TOMLFormat,
		"toml": TOMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath selects a format from a file extension.
// TOML is the default; only ".json" selects JSON.
func FromPath(path string) Format {
	if filepath.Ext(path) == ".json" {
		return JSONFormat
	}
	return TOMLFormat
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case TOMLFormat:
		return []byte("toml"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsTOML() bool { return f == TOMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case TOMLFormat:
		return ".toml"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{TOMLFormat, JSONFormat}
}
