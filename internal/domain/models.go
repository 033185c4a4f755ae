package domain

import "time"

// RoleAdmin is the role claim value that unlocks quiz authoring.
const RoleAdmin = "ADMIN"

// Authority is a single granted authority as reported by the backend.
type Authority struct {
	Authority string `json:"authority"`
}

// User is the profile returned by the backend after login. It can go
// stale if the backend mutates the account out-of-band; the client only
// refetches on login and on explicit request.
type User struct {
	ID                    string      `json:"id"`
	Name                  string      `json:"name"`
	Email                 string      `json:"email"`
	Username              string      `json:"username"`
	Role                  string      `json:"role"`
	Enabled               bool        `json:"enabled"`
	AccountNonExpired     bool        `json:"accountNonExpired"`
	AccountNonLocked      bool        `json:"accountNonLocked"`
	CredentialsNonExpired bool        `json:"credentialsNonExpired"`
	Authorities           []Authority `json:"authorities"`
}

// Question is a quiz question as rendered for taking. The correct answer
// index is never part of this shape; the server keeps it private.
type Question struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// Quiz is a quiz definition fetched by code.
type Quiz struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Answers maps question IDs to selected option indexes. A missing key
// means the question is unanswered.
type Answers map[string]int

// SignInRequest carries login credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the session token issued on login.
type SignInResponse struct {
	Token string `json:"token"`
}

// SignUpRequest carries registration details.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// QuizCodeRequest selects a quiz by its human-entered code.
type QuizCodeRequest struct {
	Code string `json:"code"`
}

// SubmissionRequest carries the collected answers for scoring.
type SubmissionRequest struct {
	QuizCode string  `json:"quizCode"`
	Answers  Answers `json:"answers"`
}

// SubmissionResult is the server's verdict on a submission.
type SubmissionResult struct {
	Score      int  `json:"score"`
	TotalMarks int  `json:"totalMarks"`
	IsRetake   bool `json:"isRetake"`
}

// AttemptResult is a recorded attempt, immutable once fetched.
type AttemptResult struct {
	Score       int       `json:"score"`
	TotalMarks  int       `json:"totalMarks"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

// CreateQuestionRequest is a question as sent to the authoring endpoint.
// Unlike Question, it carries the correct answer index.
type CreateQuestionRequest struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Points             int      `json:"points"`
}

// CreateQuizRequest is the authoring payload.
type CreateQuizRequest struct {
	Code        string                  `json:"code"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions"`
}
