package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.Form, Options) ([]byte, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(namedRenderer("vanilla")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(namedRenderer("vanilla")); err == nil {
		t.Fatal("duplicate registration must error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("nil renderer must error")
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatal("unnamed renderer must error")
	}

	if _, err := reg.Get("vanilla"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := reg.Get("missing"); !errors.Is(err, ErrRendererNotFound) {
		t.Fatalf("missing renderer: got %v, want ErrRendererNotFound", err)
	}
	if !reg.Has("vanilla") || reg.Has("missing") {
		t.Fatal("Has reported wrong membership")
	}
}

func TestRegistry_First(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.First(); !errors.Is(err, ErrRendererNotFound) {
		t.Fatalf("empty registry: got %v, want ErrRendererNotFound", err)
	}

	reg.MustRegister(namedRenderer("vanilla"))
	reg.MustRegister(namedRenderer("json"))

	renderer, err := reg.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if renderer.Name() != "json" {
		t.Fatalf("first renderer = %q, want sorted-first %q", renderer.Name(), "json")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(namedRenderer("tui"))
	reg.MustRegister(namedRenderer("vanilla"))
	reg.MustRegister(namedRenderer("json"))

	want := []string{"json", "tui", "vanilla"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{"version": "3"}
	merged := MergeHiddenFields(base,
		CSRFToken("_csrf", "token-1"),
		Hidden("", "dropped"),
		VersionField("version", 4),
	)

	want := map[string]string{
		"_csrf":   "token-1",
		"version": "4",
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if base["version"] != "3" {
		t.Fatal("base map must not be mutated")
	}
}

func TestSortedHiddenFields(t *testing.T) {
	fields := SortedHiddenFields(map[string]string{
		"b":  "2",
		"a":  "1",
		"  ": "dropped",
	})

	want := []HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
	if SortedHiddenFields(nil) != nil {
		t.Fatal("empty input should produce nil")
	}
}

func TestDeriveCSSVars(t *testing.T) {
	vars := DeriveCSSVars(map[string]string{
		"brand":    "#123456",
		"--radius": "4px",
		"":         "dropped",
	})

	want := map[string]string{
		"--brand":  "#123456",
		"--radius": "4px",
	}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
}
