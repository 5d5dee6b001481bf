package confee

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cupcake-build/cupcake/ir"
)

// emptyDoc returns an empty document whose path does not exist yet but
// whose directory does, so tests can also write it back.
func emptyDoc(t *testing.T, ext string) *Proxy {
	t.Helper()
	doc, err := Read(filepath.Join(t.TempDir(), "config."+ext))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return doc
}

func eachFormat(t *testing.T, f func(t *testing.T, doc *Proxy)) {
	for _, ext := range []string{"toml", "json"} {
		t.Run(ext, func(t *testing.T) {
			f(t, emptyDoc(t, ext))
		})
	}
}

func TestEmpty(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		v := doc.MustValue()
		if !ir.Equal(v, ir.NewObject()) {
			t.Errorf("empty document reads as %v", ir.ToAny(v))
		}
	})
}

func TestNotEmpty(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("a", 1)
		if ir.Equal(doc.MustValue(), ir.NewObject()) {
			t.Errorf("document still empty after write")
		}
	})
}

func TestNoDefault(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		_, err := doc.Get("a").Value()
		var missing *MissingError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingError, got %v", err)
		}
		if missing.Path != "$.a" {
			t.Errorf("missing path = %q", missing.Path)
		}
	})
}

func TestDefault(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		if got := doc.Get("a").IntOr(1); got != 1 {
			t.Errorf("default = %d, want 1", got)
		}
		doc.Set("a", 2)
		if got := doc.Get("a").IntOr(1); got != 2 {
			t.Errorf("stored = %d, want 2", got)
		}
	})
}

func TestSetKeysGetDict(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("a", 1)
		doc.Set("b", 2)
		want := ir.MustFromAny(map[string]any{"a": 1, "b": 2})
		if !ir.Equal(doc.MustValue(), want) {
			t.Errorf("document = %v", ir.ToAny(doc.MustValue()))
		}
	})
}

func TestWriteThroughMaterialization(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Get("a").Get("b").Set("c", 1)
		if got := doc.Get("a").Get("b").Get("c").IntOr(0); got != 1 {
			t.Errorf("a.b.c = %d, want 1", got)
		}
		want := ir.MustFromAny(map[string]any{"b": map[string]any{"c": 1}})
		if !ir.Equal(doc.Get("a").MustValue(), want) {
			t.Errorf("a = %v", ir.ToAny(doc.Get("a").MustValue()))
		}
	})
}

func TestDeleteCascade(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Get("a").Get("b").Set("c", 1)
		if !doc.Get("a").Get("b").Get("c").Exists() {
			t.Fatal("a.b.c should exist")
		}
		Delete(doc.Get("a").Get("b").Get("c"))
		if doc.Get("a").Get("b").Get("c").Exists() {
			t.Error("a.b.c should be gone")
		}
		if doc.Get("a").Get("b").Exists() {
			t.Error("a.b should be pruned")
		}
		if doc.Get("a").Exists() {
			t.Error("a should be pruned")
		}
		if _, err := doc.Get("a").Value(); err == nil {
			t.Error("a should read as missing")
		}
		// The root is still an empty, present document.
		if !ir.Equal(doc.MustValue(), ir.NewObject()) {
			t.Errorf("root = %v", ir.ToAny(doc.MustValue()))
		}
	})
}

func TestCacheCoherency(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		p1 := doc.Get("a")
		p2 := doc.Get("a")
		if p1 != p2 {
			t.Fatal("repeated navigation should return the same handle")
		}
		p1.Set("b", 1)
		if got := p2.Get("b").IntOr(0); got != 1 {
			t.Errorf("p2.b = %d, want 1", got)
		}
	})
}

func TestStaleHandleAfterDelete(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		p := doc.Get("a").Get("b")
		doc.Get("a").Set("b", 1)
		Delete(p)
		if p.Exists() {
			t.Error("deleted handle should read as absent")
		}
		// Re-navigation creates a brand-new absent node.
		again := doc.Get("a").Get("b")
		if again.Exists() {
			t.Error("re-navigated path should be absent")
		}
	})
}

func TestWriteThroughEvictedHandle(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		p := doc.Get("a")
		doc.Set("a", 1)
		Delete(p)
		if p.Exists() {
			t.Fatal("deleted handle should read as absent")
		}
		// Writing through the evicted handle re-materializes its spot.
		p.Set("b", 2)
		if got := doc.Get("a").Get("b").IntOr(0); got != 2 {
			t.Errorf("a.b = %d, want 2", got)
		}
		if doc.Get("a") != p {
			t.Error("re-materialized handle should be re-adopted")
		}
	})
}

func TestWriteThroughPrunedChain(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Get("a").Get("b").Set("c", 1)
		pb := doc.Get("a").Get("b")
		// Pruning cascades all the way up, evicting a and b.
		Delete(doc.Get("a").Get("b").Get("c"))
		if pb.Exists() {
			t.Fatal("pruned handle should read as absent")
		}
		pb.Set("x", 5)
		if got := doc.Get("a").Get("b").Get("x").IntOr(0); got != 5 {
			t.Errorf("a.b.x = %d, want 5", got)
		}
	})
}

func TestWriteThroughIndexOnAbsentObject(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		// While "a" is absent the index subscript cannot be normalized;
		// the write must still land under the decimal-string field.
		p := doc.Get("a").At(1)
		p.Set("x", 1)
		if got := doc.Get("a").Get("1").Get("x").IntOr(0); got != 1 {
			t.Errorf("a.1.x = %d, want 1", got)
		}
		if doc.Get("a").At(1) != p {
			t.Error("normalized handle should stay identity-stable")
		}
	})
}

func TestSetNilDeletes(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("a", 1)
		doc.Set("a", nil)
		if doc.Get("a").Exists() {
			t.Error("setting nil should delete")
		}
	})
}

func TestIterScalar(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("scalar", 1)
		ps := Collect(doc.Get("scalar"))
		if len(ps) != 1 || ps[0] != doc.Get("scalar") {
			t.Errorf("iterating a scalar proxy should yield itself, got %d proxies", len(ps))
		}
	})
}

func TestExplicitEmptyStillPresent(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		Set(doc.Get("empty"), map[string]any{})
		if !doc.Get("empty").Exists() {
			t.Error("explicitly stored empty object should be present")
		}
	})
}

func TestPath(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("arr", []any{[]any{1}})
		p := doc.Get("arr").At(0).At(0)
		if got := p.Path(); got != "$.arr[0][0]" {
			t.Errorf("path = %q", got)
		}
		if got := doc.Get("we.ird").Path(); got != "$.'we.ird'" {
			t.Errorf("quoted path = %q", got)
		}
	})
}

func TestNegativeIndexLookup(t *testing.T) {
	eachFormat(t, func(t *testing.T, doc *Proxy) {
		doc.Set("arr", []any{1, 2, 3})
		if got := doc.Get("arr").At(-1).IntOr(0); got != 3 {
			t.Errorf("arr[-1] = %d, want 3", got)
		}
	})
}
