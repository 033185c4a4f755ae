package flow_test

import (
	"errors"
	"testing"

	"quizora-cli/internal/api"
	"quizora-cli/internal/flow"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{8, 10, 80},
		{0, 0, 0},
		{3, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
	}
	for _, tc := range cases {
		if got := flow.Percentage(tc.score, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	if got := flow.ErrorMessage(&api.Error{Status: 404, Message: "No attempt found"}, "fallback"); got != "No attempt found" {
		t.Fatalf("expected backend message, got %q", got)
	}
	if got := flow.ErrorMessage(&api.Error{Status: 500}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty payload, got %q", got)
	}
	if got := flow.ErrorMessage(errors.New("dial tcp: refused"), "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for transport error, got %q", got)
	}
}
