package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quizora-cli/internal/domain"
)

// TokenSource supplies the current session token; an empty string means
// no session. The session store satisfies this.
type TokenSource interface {
	Token() string
}

// Client is the gateway to the quiz backend: one typed method per
// endpoint, bearer auth attached by the transport, no retries.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the backend at baseURL. A zero timeout keeps
// the transport default.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	c := &http.Client{
		Transport: &bearerTransport{tokens: tokens, next: http.DefaultTransport},
	}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: c}
}

// bearerTransport attaches the session token to every request except the
// auth endpoints, which must go out unmodified.
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil && !strings.HasPrefix(req.URL.Path, "/api/v1/auth") {
		if token := t.tokens.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.next.RoundTrip(req)
}

// Error is a non-2xx backend response. Message holds the backend's error
// payload when one was present; callers fall back to generic strings
// when it is empty.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// SignIn exchanges credentials for a session token.
func (c *Client) SignIn(ctx context.Context, req domain.SignInRequest) (domain.SignInResponse, error) {
	var out domain.SignInResponse
	err := c.post(ctx, "/api/v1/auth/login", req, &out)
	return out, err
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, req domain.SignUpRequest) error {
	return c.post(ctx, "/api/v1/auth/signup", req, nil)
}

// FetchProfile returns the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := c.get(ctx, "/api/v1/users/me", &out)
	return out, err
}

// ValidateQuizCode resolves a quiz by code. The returned quiz never
// carries correct-answer data.
func (c *Client) ValidateQuizCode(ctx context.Context, code string) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.post(ctx, "/api/v1/quiz/validate-code", domain.QuizCodeRequest{Code: code}, &out)
	return out, err
}

// SubmitQuiz sends collected answers for server-side scoring.
func (c *Client) SubmitQuiz(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionResult, error) {
	var out domain.SubmissionResult
	err := c.post(ctx, "/api/v1/quiz/submit", req, &out)
	return out, err
}

// FetchAttempt returns the recorded attempt for a quiz code.
func (c *Client) FetchAttempt(ctx context.Context, code string) (domain.AttemptResult, error) {
	var out domain.AttemptResult
	err := c.get(ctx, "/api/v1/quiz/"+url.PathEscape(code)+"/attempt", &out)
	return out, err
}

// HasAttempted reports whether the user already attempted the quiz.
func (c *Client) HasAttempted(ctx context.Context, code string) (bool, error) {
	var out bool
	err := c.get(ctx, "/api/v1/quiz/"+url.PathEscape(code)+"/has-attempted", &out)
	return out, err
}

// CreateQuiz submits an authoring payload. Admin-only server-side.
func (c *Client) CreateQuiz(ctx context.Context, req domain.CreateQuizRequest) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.post(ctx, "/api/v1/admin/quiz/create", req, &out)
	return out, err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return &Error{Status: res.StatusCode, Message: payload.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
