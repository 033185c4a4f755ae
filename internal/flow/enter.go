package flow

import (
	"context"
	"log"

	"quizora-cli/internal/domain"
)

// EnterAPI is the slice of the gateway the code-entry flow needs.
type EnterAPI interface {
	ValidateQuizCode(ctx context.Context, code string) (domain.Quiz, error)
	HasAttempted(ctx context.Context, code string) (bool, error)
}

// Route is where code entry sends the user next.
type Route int

const (
	// RouteNone keeps the user on the entry form; Outcome.Message says why.
	RouteNone Route = iota
	RouteTake
	RouteResult
)

// Outcome is the routing decision from one code-entry submission.
type Outcome struct {
	Route   Route
	Code    string
	Quiz    domain.Quiz
	Message string
}

const (
	fallbackInvalidCode = "Invalid quiz code. Please try again."
	msgEmptyCode        = "Please enter a quiz code"
)

// EnterCode validates a human-entered quiz code and decides where to go:
// the result view when an attempt already exists, the taking view
// otherwise. An attempt-check failure fails open to "not attempted". A
// blank code never reaches the network.
func EnterCode(ctx context.Context, api EnterAPI, raw string) Outcome {
	code := NormalizeCode(raw)
	if code == "" {
		return Outcome{Route: RouteNone, Message: msgEmptyCode}
	}

	quiz, err := api.ValidateQuizCode(ctx, code)
	if err != nil {
		return Outcome{Route: RouteNone, Code: code, Message: ErrorMessage(err, fallbackInvalidCode)}
	}

	attempted, err := api.HasAttempted(ctx, code)
	if err != nil {
		log.Printf("attempt check for %s failed, proceeding as first attempt: %v", code, err)
		attempted = false
	}
	if attempted {
		return Outcome{Route: RouteResult, Code: code, Quiz: quiz}
	}
	return Outcome{Route: RouteTake, Code: code, Quiz: quiz}
}
