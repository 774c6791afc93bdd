package formkit

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestGenerateHTMLFromDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromBytes("contact.json"), []byte(`{
		"id": "contact",
		"title": "Contact",
		"fields": [
			{"kind": "text", "name": "name", "validation": "required"},
			{"kind": "email", "name": "email"}
		]
	}`))

	out, err := GenerateHTMLFromDocument(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("GenerateHTMLFromDocument() error = %v", err)
	}

	html := string(out)
	for _, want := range []string{`name="name"`, `type="email"`, "<form", "formkit-field"} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	fsys := EmbeddedTemplates()
	if _, err := fsys.Open("templates/form.tmpl"); err != nil {
		t.Fatalf("embedded template missing: %v", err)
	}
}
