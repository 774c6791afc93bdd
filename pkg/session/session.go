// Package session implements the form orchestration state machine: one
// Session owns the values, aggregate validation contract, and submission
// outcome for a single rendered form instance. Submission moves idle →
// submitting → idle(success|failure); the external callback's error detail is
// swallowed into a generic message and forwarded only to an optional
// diagnostic hook.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrSubmitInFlight reports a submit attempt while a prior one has not
	// settled.
	ErrSubmitInFlight = errors.New("session: submission already in flight")
	// ErrInvalid reports a submit attempt while the values fail the
	// validation contract. The callback is never invoked in this case.
	ErrInvalid = errors.New("session: form values fail validation")
	// ErrUnknownField reports a write to a name the descriptor list does not
	// declare.
	ErrUnknownField = errors.New("session: unknown field")
)

// SubmitFunc is the external submission collaborator. It receives the
// collected values and settles with nil on success or an error on failure.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Option configures a Session.
type Option func(*Session)

// WithEvaluator injects a shared rule evaluator. Sessions otherwise construct
// their own.
func WithEvaluator(evaluator *validation.Evaluator) Option {
	return func(s *Session) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithDiagnostic registers a hook receiving the original callback error
// whenever a submission fails. The user still only sees the generic failure
// message.
func WithDiagnostic(hook func(error)) Option {
	return func(s *Session) {
		s.diagnostic = hook
	}
}

// WithMessages overrides the default success and failure status messages.
// Empty strings keep the defaults.
func WithMessages(success, failure string) Option {
	return func(s *Session) {
		if success != "" {
			s.successMessage = success
		}
		if failure != "" {
			s.failureMessage = failure
		}
	}
}

// Session tracks one form instance's state. All methods are safe for
// concurrent use, though the intended model is a single caller driving it in
// response to user events.
type Session struct {
	form      model.Form
	contract  validation.Contract
	evaluator *validation.Evaluator
	submit    SubmitFunc

	diagnostic     func(error)
	successMessage string
	failureMessage string

	mu         sync.Mutex
	values     map[string]string
	submitting bool
	outcome    Outcome
}

// New constructs a Session for the descriptor. Initial values map every field
// name to the empty string; the validation contract is derived from the
// descriptor's rules.
func New(form model.Form, submit SubmitFunc, options ...Option) (*Session, error) {
	if submit == nil {
		return nil, ErrNilSubmit
	}

	form = model.Normalize(form)
	s := &Session{
		form:           form,
		contract:       validation.Build(form.Fields),
		submit:         submit,
		successMessage: DefaultSuccessMessage,
		failureMessage: DefaultFailureMessage,
		values:         model.InitialValues(form.Fields),
		outcome:        Outcome{State: OutcomePending},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.evaluator == nil {
		s.evaluator = validation.NewEvaluator()
	}
	return s, nil
}

// Form returns the normalized descriptor this session was built from.
func (s *Session) Form() model.Form {
	return s.form
}

// Contract exposes the aggregate validation contract.
func (s *Session) Contract() validation.Contract {
	return s.contract
}

// Values returns a copy of the current value map.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyValues(s.values)
}

// SetValue records a user edit. Names outside the descriptor list are
// rejected.
func (s *Session) SetValue(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.values[name] = value
	return nil
}

// SetValues applies several edits, stopping at the first unknown name.
func (s *Session) SetValues(values map[string]string) error {
	for name, value := range values {
		if err := s.SetValue(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns every value to its initial empty string and clears the
// outcome.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = model.InitialValues(s.form.Fields)
	s.outcome = Outcome{State: OutcomePending}
}

// Validate evaluates the current values against the aggregate contract and
// returns per-field messages, nil when everything passes.
func (s *Session) Validate() map[string][]string {
	return s.evaluator.Validate(s.contract, s.Values())
}

// Valid reports whether every field passes the contract.
func (s *Session) Valid() bool {
	return len(s.Validate()) == 0
}

// Dirty reports whether any value differs from its initial empty string.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, value := range s.values {
		if value != "" {
			return true
		}
	}
	return false
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Outcome returns the current submission outcome.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// CanSubmit reports whether a submit attempt would be accepted: values must
// be dirty, pass the contract, and no submission may be in flight.
func (s *Session) CanSubmit() bool {
	if s.Submitting() || !s.Dirty() {
		return false
	}
	return s.Valid()
}

// Submit runs the state machine transition idle → submitting → idle. Guard
// failures (in-flight, invalid values) return an error without invoking the
// callback. The callback's own failure does NOT propagate: the outcome
// flips to failure with the generic message, values are kept, and the
// original error goes to the diagnostic hook. On success values reset to
// their initial empty strings and the outcome flips to success.
func (s *Session) Submit(ctx context.Context) error {
	if ctx == nil {
		return errors.New("session: context is required")
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	values := copyValues(s.values)
	s.mu.Unlock()

	if len(s.evaluator.Validate(s.contract, values)) > 0 {
		return ErrInvalid
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.submitting = true
	s.outcome = Outcome{State: OutcomePending}
	s.mu.Unlock()

	err := s.invoke(ctx, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.outcome = Outcome{State: OutcomeFailure, Message: s.failureMessage}
		if s.diagnostic != nil {
			s.diagnostic(err)
		}
		return nil
	}
	s.outcome = Outcome{State: OutcomeSuccess, Message: s.successMessage}
	s.values = model.InitialValues(s.form.Fields)
	return nil
}

// invoke shields the state machine from a panicking callback; a panic is
// treated like any other failed submission.
func (s *Session) invoke(ctx context.Context, values map[string]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: submit callback panicked: %v", r)
		}
	}()
	return s.submit(ctx, values)
}

// RenderOptions assembles the render.Options mirroring the session state:
// current values, validation errors for edited forms, the outcome status
// line, and a submit control disabled whenever CanSubmit is false.
func (s *Session) RenderOptions() render.Options {
	options := render.Options{
		Values:   s.Values(),
		Disabled: !s.CanSubmit(),
	}
	if s.Dirty() {
		options.Errors = s.Validate()
	}
	switch outcome := s.Outcome(); outcome.State {
	case OutcomeSuccess:
		options.Status = &render.Status{Kind: render.StatusSuccess, Message: outcome.Message}
	case OutcomeFailure:
		options.Status = &render.Status{Kind: render.StatusError, Message: outcome.Message}
	}
	return options
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}
