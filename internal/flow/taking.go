package flow

import (
	"context"
	"errors"
	"log"
	"strings"

	"quizora-cli/internal/domain"
)

// TakingAPI is the slice of the gateway the taking flow needs.
type TakingAPI interface {
	HasAttempted(ctx context.Context, code string) (bool, error)
	ValidateQuizCode(ctx context.Context, code string) (domain.Quiz, error)
	SubmitQuiz(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionResult, error)
}

// State of the taking flow.
type State int

const (
	StateLoading State = iota
	StateNotFound
	StateAlreadyAttempted
	StateReady
	StateSubmitting
	StateSubmitted
	StateSubmitFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNotFound:
		return "not-found"
	case StateAlreadyAttempted:
		return "already-attempted"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateSubmitFailed:
		return "submit-failed"
	}
	return "unknown"
}

// ErrNotReady is returned when Submit or SelectAnswer is called in a
// state that does not allow it; StateSubmitting doubles as the busy
// guard against duplicate submits.
var ErrNotReady = errors.New("quiz is not ready for this action")

const (
	fallbackLoad   = "Failed to load quiz. Please try again."
	fallbackSubmit = "Failed to submit quiz. Please try again."
)

// Taking drives one pass through a quiz:
// Loading → {NotFound, AlreadyAttempted, Ready} → Submitting →
// {Submitted, SubmitFailed}. The answer map is written only through
// SelectAnswer, so every entry is a valid index into its question's
// options.
type Taking struct {
	api     TakingAPI
	code    string
	state   State
	quiz    domain.Quiz
	answers domain.Answers
	result  domain.SubmissionResult
	message string
}

func NewTaking(api TakingAPI, code string) *Taking {
	return &Taking{
		api:     api,
		code:    NormalizeCode(code),
		state:   StateLoading,
		answers: domain.Answers{},
	}
}

// NormalizeCode applies the client-side code convention: trimmed,
// uppercased.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Load checks attempt status and fetches the quiz definition. A failed
// attempt check is treated as "not yet attempted" rather than blocking
// the user; the server still rejects true duplicates at submit time.
func (t *Taking) Load(ctx context.Context) State {
	attempted, err := t.api.HasAttempted(ctx, t.code)
	if err != nil {
		log.Printf("attempt check for %s failed, proceeding as first attempt: %v", t.code, err)
		attempted = false
	}
	if attempted {
		t.state = StateAlreadyAttempted
		return t.state
	}

	quiz, err := t.api.ValidateQuizCode(ctx, t.code)
	if err != nil {
		t.state = StateNotFound
		t.message = ErrorMessage(err, fallbackLoad)
		return t.state
	}
	t.quiz = quiz
	t.state = StateReady
	return t.state
}

// SelectAnswer records a selection. Unknown question IDs and
// out-of-range indexes are rejected, which keeps the answer map
// invariant intact.
func (t *Taking) SelectAnswer(questionID string, option int) error {
	if t.state != StateReady && t.state != StateSubmitFailed {
		return ErrNotReady
	}
	question, ok := t.question(questionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if option < 0 || option >= len(question.Options) {
		return domain.ErrOptionNotFound
	}
	t.answers[questionID] = option
	return nil
}

// ClearAnswer removes a selection, returning the question to unanswered.
func (t *Taking) ClearAnswer(questionID string) {
	delete(t.answers, questionID)
}

// Unanswered returns the questions without a selection, in quiz order.
func (t *Taking) Unanswered() []domain.Question {
	var out []domain.Question
	for _, q := range t.quiz.Questions {
		if _, ok := t.answers[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// Submit sends the answers. When questions are unanswered, confirm is
// asked exactly once with the count; declining keeps the flow in Ready
// without any network call. Failure surfaces the backend message (or a
// generic fallback) and leaves the answers in place for retry.
func (t *Taking) Submit(ctx context.Context, confirm func(unanswered int) bool) (State, error) {
	if t.state != StateReady && t.state != StateSubmitFailed {
		return t.state, ErrNotReady
	}
	if n := len(t.Unanswered()); n > 0 {
		if confirm == nil || !confirm(n) {
			t.state = StateReady
			return t.state, nil
		}
	}

	t.state = StateSubmitting
	result, err := t.api.SubmitQuiz(ctx, domain.SubmissionRequest{
		QuizCode: t.quiz.Code,
		Answers:  t.answers,
	})
	if err != nil {
		t.state = StateSubmitFailed
		t.message = ErrorMessage(err, fallbackSubmit)
		return t.state, nil
	}
	t.result = result
	t.state = StateSubmitted
	return t.state, nil
}

func (t *Taking) question(id string) (domain.Question, bool) {
	for _, q := range t.quiz.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

// Code returns the normalized quiz code of this flow.
func (t *Taking) Code() string { return t.code }

// Quiz returns the loaded definition; zero until Load reaches Ready.
func (t *Taking) Quiz() domain.Quiz { return t.quiz }

// State reports the current flow state.
func (t *Taking) State() State { return t.state }

// Message is the user-facing error text from the last failed transition.
func (t *Taking) Message() string { return t.message }

// Result is the server's verdict; valid only in StateSubmitted.
func (t *Taking) Result() domain.SubmissionResult { return t.result }

// Answer reports the current selection for a question.
func (t *Taking) Answer(questionID string) (int, bool) {
	v, ok := t.answers[questionID]
	return v, ok
}
