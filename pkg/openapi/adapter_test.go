package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const petstoreFragment = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/accounts": {
      "post": {
        "operationId": "createAccount",
        "summary": "Create account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "username"],
                "properties": {
                  "username": {"type": "string", "minLength": 3, "maxLength": 32},
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string", "format": "password"},
                  "age": {"type": "integer", "minimum": 13, "maximum": 120},
                  "plan": {"type": "string", "enum": ["free", "pro"], "default": "free"},
                  "bio": {"type": "string", "maxLength": 2000},
                  "newsletter": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      },
      "get": {
        "operationId": "listAccounts",
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func loadForms(t *testing.T, payload string, opts ...openapi.Option) map[string]model.Form {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceFromBytes("spec.json"), []byte(payload))
	forms, err := openapi.New(opts...).Forms(context.Background(), doc)
	if err != nil {
		t.Fatalf("Forms() error = %v", err)
	}
	return forms
}

func TestFormsDerivesFieldsFromRequestBody(t *testing.T) {
	forms := loadForms(t, petstoreFragment)

	form, ok := forms["createAccount"]
	if !ok {
		t.Fatalf("expected createAccount form, got %v", keys(forms))
	}
	if form.Title != "Create account" || form.Action != "/accounts" || form.Method != "POST" {
		t.Fatalf("unexpected form header: %+v", form)
	}

	byName := make(map[string]model.Field, len(form.Fields))
	for _, field := range form.Fields {
		byName[field.Name] = field
	}

	kinds := map[string]model.FieldKind{
		"username":   model.FieldKindText,
		"email":      model.FieldKindEmail,
		"password":   model.FieldKindPassword,
		"age":        model.FieldKindNumber,
		"plan":       model.FieldKindSelect,
		"bio":        model.FieldKindTextarea,
		"newsletter": model.FieldKindCheckbox,
	}
	for name, want := range kinds {
		field, ok := byName[name]
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		if field.Kind != want {
			t.Errorf("field %q: kind = %q, want %q", name, field.Kind, want)
		}
	}

	if !byName["email"].Required() || !byName["username"].Required() {
		t.Fatalf("required list not mapped to rules")
	}
	if byName["password"].Required() {
		t.Fatalf("password should not be required")
	}

	wantUsername := []model.ValidationRule{
		{Kind: model.ValidationRuleRequired},
		{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
		{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "32"}},
	}
	if diff := cmp.Diff(wantUsername, byName["username"].Validations); diff != "" {
		t.Fatalf("username rules mismatch (-want +got):\n%s", diff)
	}

	wantAge := []model.ValidationRule{
		{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "13"}},
		{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "120"}},
	}
	if diff := cmp.Diff(wantAge, byName["age"].Validations); diff != "" {
		t.Fatalf("age rules mismatch (-want +got):\n%s", diff)
	}

	plan := byName["plan"]
	if diff := cmp.Diff([]string{"free", "pro"}, plan.Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
	if plan.Default != "free" {
		t.Fatalf("plan default = %q, want free", plan.Default)
	}
}

func TestFormsSkipsBodylessOperations(t *testing.T) {
	forms := loadForms(t, petstoreFragment)
	if _, ok := forms["listAccounts"]; ok {
		t.Fatalf("GET without body should not produce a form")
	}
}

func TestFormsErrorsWithoutOperations(t *testing.T) {
	payload := `{"openapi": "3.0.3", "info": {"title": "Empty", "version": "1.0.0"}, "paths": {}}`
	doc := schema.MustNewDocument(schema.SourceFromBytes("empty.json"), []byte(payload))

	if _, err := openapi.New().Forms(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without operations")
	}

	forms, err := openapi.New(openapi.WithPartialDocuments()).Forms(context.Background(), doc)
	if err != nil {
		t.Fatalf("partial documents should be tolerated, got %v", err)
	}
	if len(forms) != 0 {
		t.Fatalf("expected no forms, got %d", len(forms))
	}
}

func keys(forms map[string]model.Form) []string {
	out := make([]string, 0, len(forms))
	for key := range forms {
		out = append(out, key)
	}
	return out
}
