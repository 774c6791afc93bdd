package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func signupForm() model.Form {
	return model.Form{
		Title: "Sign Up",
		Fields: []model.Field{
			{Kind: model.FieldKindText, Name: "username", Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}}},
			{Kind: model.FieldKindPassword, Name: "password"},
			{Kind: model.FieldKindSelect, Name: "plan", Options: []string{"free", "pro"}},
			{Kind: model.FieldKindCheckbox, Name: "newsletter"},
			{Kind: model.FieldKindTextarea, Name: "bio"},
			{Kind: model.FieldKindSubmit, Name: "go", Label: "Go"},
		},
	}
}

func TestRenderCollectsValuesAsJSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada"},
		passwords: []string{"hunter2"},
		selectIdx: []int{1},
		confirm:   []bool{true},
		textAreas: []string{"hello"},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), signupForm(), render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := map[string]string{
		"username":   "ada",
		"password":   "hunter2",
		"plan":       "pro",
		"newsletter": "true",
		"bio":        "hello",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["go"]; ok {
		t.Fatalf("submit pseudo-field should not be prompted")
	}
	if len(driver.infoMessages) == 0 || driver.infoMessages[0] != "Sign Up" {
		t.Fatalf("expected title announcement, got %v", driver.infoMessages)
	}
}

func TestRenderRepromptsUntilValid(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindEmail, Name: "email", Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleRequired},
				{Kind: model.ValidationRuleEmail},
			}},
		},
	}
	driver := &stubDriver{inputs: []string{"nope", "ada@example.com"}}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), "ada@example.com") {
		t.Fatalf("expected corrected value, got %s", out)
	}
	if len(driver.infoMessages) == 0 {
		t.Fatalf("expected validation feedback between attempts")
	}
}

func TestRenderFailsAfterAttemptBudget(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindText, Name: "username", Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}}},
		},
	}
	driver := &stubDriver{inputs: []string{"", "", ""}}
	r := New(WithPromptDriver(driver), WithMaxAttempts(3))

	if _, err := r.Render(context.Background(), form, render.Options{}); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRenderFormEncodedOutput(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindText, Name: "username"},
		},
	}
	driver := &stubDriver{inputs: []string{"ada lovelace"}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := string(out); got != "username=ada+lovelace" {
		t.Fatalf("unexpected encoding %q", got)
	}
	if ct := r.ContentType(); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestRenderPrettyOutputMasksPasswords(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindText, Name: "username", Label: "Username"},
			{Kind: model.FieldKindPassword, Name: "password", Label: "Password"},
		},
	}
	driver := &stubDriver{inputs: []string{"ada"}, passwords: []string{"hunter2"}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "Username: ada") {
		t.Fatalf("missing username line:\n%s", text)
	}
	if strings.Contains(text, "hunter2") {
		t.Fatalf("password leaked into pretty output:\n%s", text)
	}
}

func TestRenderUsesSeededValuesAsDefaults(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Kind: model.FieldKindSelect, Name: "plan", Options: []string{"free", "pro"}},
		},
	}

	var seen SelectConfig
	driver := &recordingDriver{selectIdx: 0, onSelect: func(cfg SelectConfig) { seen = cfg }}
	r := New(WithPromptDriver(driver))

	if _, err := r.Render(context.Background(), form, render.Options{Values: map[string]string{"plan": "pro"}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if seen.DefaultIndex != 1 {
		t.Fatalf("seeded value not used as default, got index %d", seen.DefaultIndex)
	}
}

type recordingDriver struct {
	stubDriver
	selectIdx int
	onSelect  func(SelectConfig)
}

func (r *recordingDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if r.onSelect != nil {
		r.onSelect(cfg)
	}
	return r.selectIdx, nil
}

func TestRenderRequiresContext(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Render(nil, model.Form{}, render.Options{}); err == nil { //nolint:staticcheck
		t.Fatalf("expected error for nil context")
	}
}
