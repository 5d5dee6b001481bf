package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"t": TOMLFormat, "toml": TOMLFormat,
		"j": JSONFormat, "json": JSONFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(yaml) err = %v", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"cupcake.json", JSONFormat},
		{"cupcake.toml", TOMLFormat},
		{"Makefile", TOMLFormat},
		{"dir.json/cupcake.toml", TOMLFormat},
	}
	for _, tt := range tests {
		if got := FromPath(tt.path); got != tt.want {
			t.Errorf("FromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil || g != f {
			t.Errorf("round trip %v: %v, %v", f, g, err)
		}
		if f.Suffix() != "."+string(d) {
			t.Errorf("suffix %q does not match text %q", f.Suffix(), d)
		}
	}
}
