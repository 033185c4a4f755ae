package flow_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"quizora-cli/internal/api"
	"quizora-cli/internal/domain"
	"quizora-cli/internal/flow"
)

type enterFake struct {
	quiz         domain.Quiz
	quizErr      error
	attempted    bool
	attemptedErr error
	validated    []string
	calls        int
}

func (f *enterFake) ValidateQuizCode(_ context.Context, code string) (domain.Quiz, error) {
	f.calls++
	f.validated = append(f.validated, code)
	if f.quizErr != nil {
		return domain.Quiz{}, f.quizErr
	}
	return f.quiz, nil
}

func (f *enterFake) HasAttempted(_ context.Context, _ string) (bool, error) {
	return f.attempted, f.attemptedErr
}

func TestEnterCodeRoutesToResultWhenAttempted(t *testing.T) {
	gw := &enterFake{quiz: domain.Quiz{Code: "ABC123"}, attempted: true}
	outcome := flow.EnterCode(context.Background(), gw, "abc123")
	if outcome.Route != flow.RouteResult {
		t.Fatalf("expected result route, got %v", outcome.Route)
	}
	if outcome.Code != "ABC123" {
		t.Fatalf("expected normalized code, got %q", outcome.Code)
	}
}

func TestEnterCodeRoutesToTakeWhenNotAttempted(t *testing.T) {
	gw := &enterFake{quiz: domain.Quiz{Code: "ABC123"}}
	outcome := flow.EnterCode(context.Background(), gw, "  abc123 ")
	if outcome.Route != flow.RouteTake {
		t.Fatalf("expected take route, got %v", outcome.Route)
	}
	if gw.validated[0] != "ABC123" {
		t.Fatalf("expected trimmed, uppercased code sent, got %q", gw.validated[0])
	}
}

func TestEnterCodeFailsOpenOnAttemptCheckError(t *testing.T) {
	gw := &enterFake{quiz: domain.Quiz{Code: "ABC123"}, attemptedErr: errors.New("boom")}
	outcome := flow.EnterCode(context.Background(), gw, "ABC123")
	if outcome.Route != flow.RouteTake {
		t.Fatalf("attempt-check failure must fail open to take, got %v", outcome.Route)
	}
}

func TestEnterCodeInvalidStaysOnForm(t *testing.T) {
	gw := &enterFake{quizErr: &api.Error{Status: http.StatusNotFound}}
	outcome := flow.EnterCode(context.Background(), gw, "NOPE")
	if outcome.Route != flow.RouteNone {
		t.Fatalf("expected to stay on form, got %v", outcome.Route)
	}
	if outcome.Message != "Invalid quiz code. Please try again." {
		t.Fatalf("expected fallback message, got %q", outcome.Message)
	}
}

func TestEnterCodeBackendMessagePreferred(t *testing.T) {
	gw := &enterFake{quizErr: &api.Error{Status: http.StatusNotFound, Message: "Quiz not found for this code"}}
	outcome := flow.EnterCode(context.Background(), gw, "NOPE")
	if outcome.Message != "Quiz not found for this code" {
		t.Fatalf("expected backend message, got %q", outcome.Message)
	}
}

func TestEnterCodeEmptyNeverReachesNetwork(t *testing.T) {
	gw := &enterFake{}
	outcome := flow.EnterCode(context.Background(), gw, "   ")
	if outcome.Route != flow.RouteNone || outcome.Message == "" {
		t.Fatalf("expected validation message, got %+v", outcome)
	}
	if gw.calls != 0 {
		t.Fatalf("blank code must not hit the network, got %d calls", gw.calls)
	}
}
