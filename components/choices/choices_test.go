package choices

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
)

var languages = []string{"Ada", "Go", "Haskell", "OCaml", "Prolog", "Python"}

func TestLoadValues(t *testing.T) {
	input := "# languages\nGo\n\nAda\nGo\n  Python  \n"
	values, err := LoadValues(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Ada", "Go", "Python"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadValuesNilReader(t *testing.T) {
	if _, err := LoadValues(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestSearchPrefixRanksFirst(t *testing.T) {
	got := Search([]string{"OCaml", "Caml Light", "Scala"}, "ca", 10, NewOptions())
	want := []string{"Caml Light", "OCaml", "Scala"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchEmptyQueryModes(t *testing.T) {
	if got := Search(languages, "", 3, NewOptions()); got != nil {
		t.Fatalf("EmptySearchNone should return nil, got %v", got)
	}
	got := Search(languages, "", 3, NewOptions(WithEmptySearchMode(EmptySearchTop)))
	if diff := cmp.Diff([]string{"Ada", "Go", "Haskell"}, got); diff != "" {
		t.Fatalf("EmptySearchTop mismatch (-want +got):\n%s", diff)
	}
}

type handlerResponse struct {
	Data []Choice `json:"data"`
}

func TestHandlerEmptyQueryReturnsEmptyDataArray(t *testing.T) {
	h := Handler(WithValues(languages))

	req := httptest.NewRequest(http.MethodGet, "/api/choices", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandlerSearchAndLimitClamped(t *testing.T) {
	h := Handler(WithValues(languages), WithMaxLimit(2))

	req := httptest.NewRequest(http.MethodGet, "/api/choices?q=l&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if err := json.NewDecoder(rec.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected limit clamp to 2, got %d: %#v", len(payload.Data), payload.Data)
	}
}

func TestHandlerRejectsOtherMethods(t *testing.T) {
	h := Handler(WithValues(languages))

	req := httptest.NewRequest(http.MethodPost, "/api/choices", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Result().StatusCode)
	}
}

func TestHandlerGuard(t *testing.T) {
	h := Handler(
		WithValues(languages),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/choices?q=go", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected guard status, got %d", rec.Result().StatusCode)
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithValues(languages))
	if err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	if pattern != "/admin/api/choices" {
		t.Fatalf("unexpected mount path %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/choices?q=go", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 via mux, got %d", rec.Result().StatusCode)
	}
}

func TestPopulateDecorator(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindSelect, Name: "language"},
			{Kind: model.FieldKindSelect, Name: "plan", Options: []string{"free"}},
			{Kind: model.FieldKindText, Name: "language-note"},
		},
	}

	decorator := PopulateDecorator("language", WithValues(languages))
	if err := decorator.Decorate(&form); err != nil {
		t.Fatalf("Decorate() error = %v", err)
	}

	if diff := cmp.Diff(languages, form.Fields[0].Options); diff != "" {
		t.Fatalf("options not populated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"free"}, form.Fields[1].Options); diff != "" {
		t.Fatalf("existing options overwritten (-want +got):\n%s", diff)
	}
	if form.Fields[2].Options != nil {
		t.Fatalf("text field should be untouched")
	}
}
