package session

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger injects a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithHiddenFields appends hidden inputs (CSRF tokens and friends) to every
// rendered form.
func WithHiddenFields(fields ...render.HiddenField) HandlerOption {
	return func(h *Handler) {
		h.hidden = render.MergeHiddenFields(h.hidden, fields...)
	}
}

// WithHandlerMessages overrides the status messages shown after submission.
func WithHandlerMessages(success, failure string) HandlerOption {
	return func(h *Handler) {
		if success != "" {
			h.successMessage = success
		}
		if failure != "" {
			h.failureMessage = failure
		}
	}
}

// Handler serves one form over HTTP: GET renders the empty form, POST runs
// the validate → submit sequence and re-renders with inline errors or the
// outcome status line. Each request is an independent form instance, so the
// in-flight guard of the Session state machine maps to request scope here.
type Handler struct {
	form      model.Form
	contract  validation.Contract
	evaluator *validation.Evaluator
	renderer  render.Renderer
	submit    SubmitFunc

	logger         *slog.Logger
	hidden         map[string]string
	successMessage string
	failureMessage string
}

// NewHandler wires a descriptor, renderer, and submit callback into an
// http.Handler.
func NewHandler(form model.Form, renderer render.Renderer, submit SubmitFunc, options ...HandlerOption) (*Handler, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	if submit == nil {
		return nil, ErrNilSubmit
	}

	form = model.Normalize(form)
	h := &Handler{
		form:           form,
		contract:       validation.Build(form.Fields),
		evaluator:      validation.NewEvaluator(),
		renderer:       renderer,
		submit:         submit,
		logger:         slog.Default(),
		successMessage: DefaultSuccessMessage,
		failureMessage: DefaultFailureMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// Nothing is in flight on a fresh GET; the submit control stays
		// enabled and validation happens on the POST.
		h.renderForm(w, r, render.Options{Hidden: h.hidden}, http.StatusOK)
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("parse form", slog.String("form", h.form.ID), slog.String("error", err.Error()))
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	values := h.collectValues(r)

	if failures := h.evaluator.Validate(h.contract, values); len(failures) > 0 {
		h.logger.Info("form submission rejected",
			slog.String("form", h.form.ID),
			slog.Int("invalid_fields", len(failures)),
		)
		h.renderForm(w, r, render.Options{
			Values: values,
			Errors: failures,
			Hidden: h.hidden,
		}, http.StatusUnprocessableEntity)
		return
	}

	if err := h.submit(r.Context(), values); err != nil {
		// The caller's error detail stays in the log; the user sees only the
		// generic message and keeps their entered values.
		h.logger.Error("form submission failed",
			slog.String("form", h.form.ID),
			slog.String("error", err.Error()),
		)
		h.renderForm(w, r, render.Options{
			Values: values,
			Hidden: h.hidden,
			Status: &render.Status{Kind: render.StatusError, Message: h.failureMessage},
		}, http.StatusBadGateway)
		return
	}

	h.logger.Info("form submitted", slog.String("form", h.form.ID))
	h.renderForm(w, r, render.Options{
		Hidden: h.hidden,
		Status: &render.Status{Kind: render.StatusSuccess, Message: h.successMessage},
	}, http.StatusOK)
}

// collectValues reads exactly the declared field names from the posted form.
// Unchecked checkboxes arrive absent and fall back to the empty string, and
// undeclared names are ignored entirely.
func (h *Handler) collectValues(r *http.Request) map[string]string {
	values := model.InitialValues(h.form.Fields)
	for name := range values {
		if posted, ok := r.PostForm[name]; ok && len(posted) > 0 {
			values[name] = strings.TrimSpace(posted[0])
		}
	}
	return values
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, options render.Options, status int) {
	output, err := h.renderer.Render(r.Context(), h.form, options)
	if err != nil {
		h.logger.Error("render form",
			slog.String("form", h.form.ID),
			slog.String("renderer", h.renderer.Name()),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(output)
}
