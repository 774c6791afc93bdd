package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const descriptor = `{"fields":[{"kind":"text","name":"username"}]}`

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(descriptor), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(schema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(doc.Raw()) != descriptor {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/form.json": {Data: []byte(descriptor)},
	}

	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(fsys)))
	doc, err := l.Load(context.Background(), schema.SourceFromFS("forms/form.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Location() != "forms/form.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoadFromFSRequiresFilesystem(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFS("form.json")); err == nil {
		t.Fatalf("expected error without configured filesystem")
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if accept := r.Header.Get("Accept"); !strings.Contains(accept, "application/json") {
			t.Errorf("missing accept header, got %q", accept)
		}
		w.Write([]byte(descriptor))
	}))
	defer srv.Close()

	l := loader.New(schema.NewLoaderOptions(
		schema.WithHTTPClient(srv.Client()),
	))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/form.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(doc.Raw()) != descriptor {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromURL("https://example.com/form.json")); err == nil {
		t.Fatalf("expected http loads to be rejected without opt-in")
	}
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(5 * time.Second)))
	if _, err := l.Load(context.Background(), schema.SourceFromURL(srv.URL)); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestLoadRejectsByteSources(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromBytes("inline")); err == nil {
		t.Fatalf("expected byte sources to be rejected")
	}
}

func TestLoadHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(fstest.MapFS{})))
	if _, err := l.Load(ctx, schema.SourceFromFS("missing.json")); err == nil {
		t.Fatalf("expected cancelled context to abort the load")
	}
}
