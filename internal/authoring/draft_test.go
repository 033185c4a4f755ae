package authoring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildRequestDropsInvalidQuestionsSilently(t *testing.T) {
	draft := Draft{
		Code:  "abc123 ",
		Title: " Sample quiz ",
		Questions: []QuestionDraft{
			{Text: "Valid?", Options: []string{"yes", "no"}, CorrectAnswerIndex: 0, Points: 2},
			{Text: "Broken", Options: []string{""}},
			{Text: "", Options: []string{"a", "b"}},
		},
	}

	req, err := BuildRequest(draft)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Code != "ABC123" {
		t.Fatalf("expected uppercased trimmed code, got %q", req.Code)
	}
	if req.Title != "Sample quiz" {
		t.Fatalf("expected trimmed title, got %q", req.Title)
	}
	if len(req.Questions) != 1 {
		t.Fatalf("expected only the valid question to survive, got %d", len(req.Questions))
	}
	if req.Questions[0].QuestionText != "Valid?" || req.Questions[0].Points != 2 {
		t.Fatalf("unexpected question: %+v", req.Questions[0])
	}
}

func TestBuildRequestRemovesEmptyOptionsAndDefaultsPoints(t *testing.T) {
	draft := Draft{
		Code:  "Q1",
		Title: "T",
		Questions: []QuestionDraft{
			{Text: "Pick", Options: []string{" a ", "", "b", "  "}},
		},
	}
	req, err := BuildRequest(draft)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	q := req.Questions[0]
	if len(q.Options) != 2 || q.Options[0] != "a" || q.Options[1] != "b" {
		t.Fatalf("expected empty options stripped and trimmed, got %v", q.Options)
	}
	if q.Points != 1 {
		t.Fatalf("expected points default 1, got %d", q.Points)
	}
}

func TestBuildRequestRequiresCodeAndTitle(t *testing.T) {
	for _, draft := range []Draft{
		{Code: "", Title: "T"},
		{Code: "Q1", Title: "   "},
	} {
		if _, err := BuildRequest(draft); !errors.Is(err, ErrMissingCodeOrTitle) {
			t.Fatalf("expected ErrMissingCodeOrTitle, got %v", err)
		}
	}
}

func TestBuildRequestRequiresOneValidQuestion(t *testing.T) {
	draft := Draft{
		Code:      "Q1",
		Title:     "T",
		Questions: []QuestionDraft{{Text: "only one option", Options: []string{"a"}}},
	}
	if _, err := BuildRequest(draft); !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("expected ErrNoValidQuestions, got %v", err)
	}
}

func TestEditOperationsArePure(t *testing.T) {
	original := NewDraft()
	original = SetQuestionText(original, 0, "Q?")

	edited := SetOption(original, 0, 0, "changed")
	if original.Questions[0].Options[0] != "" {
		t.Fatalf("SetOption mutated the original draft")
	}
	if edited.Questions[0].Options[0] != "changed" {
		t.Fatalf("SetOption did not apply: %v", edited.Questions[0].Options)
	}

	grown := AddQuestion(original)
	if len(original.Questions) != 1 || len(grown.Questions) != 2 {
		t.Fatalf("AddQuestion wrong lengths: %d/%d", len(original.Questions), len(grown.Questions))
	}

	withOpt := AddOption(original, 0)
	if len(original.Questions[0].Options) != 2 || len(withOpt.Questions[0].Options) != 3 {
		t.Fatalf("AddOption wrong lengths")
	}
}

func TestRemoveQuestionKeepsLastOne(t *testing.T) {
	draft := NewDraft()
	if got := RemoveQuestion(draft, 0); len(got.Questions) != 1 {
		t.Fatalf("removing the last question must be a no-op")
	}

	draft = AddQuestion(draft)
	draft = SetQuestionText(draft, 1, "second")
	got := RemoveQuestion(draft, 0)
	if len(got.Questions) != 1 || got.Questions[0].Text != "second" {
		t.Fatalf("expected first question removed, got %+v", got.Questions)
	}
}

func TestOutOfRangeEditsAreNoOps(t *testing.T) {
	draft := NewDraft()
	for _, edited := range []Draft{
		SetQuestionText(draft, 5, "x"),
		SetOption(draft, 0, 9, "x"),
		SetCorrectAnswer(draft, -1, 0),
		SetPoints(draft, 2, 3),
		AddOption(draft, 7),
	} {
		if len(edited.Questions) != 1 || edited.Questions[0].Text != "" {
			t.Fatalf("out-of-range edit changed the draft: %+v", edited)
		}
	}
}

func TestLoadDraftFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	data := []byte(`code: demo01
title: Demo quiz
description: A demo
questions:
  - text: "What is 2 + 2?"
    options: ["3", "4"]
    correct: 1
    points: 2
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	draft, err := LoadDraftFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	req, err := BuildRequest(draft)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Code != "DEMO01" || len(req.Questions) != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Questions[0].CorrectAnswerIndex != 1 || req.Questions[0].Points != 2 {
		t.Fatalf("unexpected question: %+v", req.Questions[0])
	}
}
