// Package stubserver is an in-process double of the quiz backend. It
// implements the endpoint table the client consumes, with HS256 tokens,
// in-memory state, and server-side scoring, so integration tests and
// local development need no real backend.
package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"quizora-cli/internal/domain"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type account struct {
	user     domain.User
	password string
}

type storedQuestion struct {
	domain.Question
	correct int
	points  int
}

type storedQuiz struct {
	quiz      domain.Quiz
	questions []storedQuestion
}

// Server holds all backend state behind one mutex. Correct answers live
// only here; quiz payloads returned for taking never include them.
type Server struct {
	secret []byte
	now    func() time.Time

	mu       sync.Mutex
	nextID   int
	accounts map[string]*account             // by email
	quizzes  map[string]*storedQuiz          // by code
	attempts map[string]domain.AttemptResult // by email|code
}

func New(secret string) *Server {
	return &Server{
		secret:   []byte(secret),
		now:      time.Now,
		accounts: make(map[string]*account),
		quizzes:  make(map[string]*storedQuiz),
		attempts: make(map[string]domain.AttemptResult),
	}
}

// SeedUser registers an account directly, bypassing signup. Used to
// provision admins.
func (s *Server) SeedUser(name, email, password, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.accounts[email] = &account{
		password: password,
		user: domain.User{
			ID:                    fmt.Sprintf("u%d", s.nextID),
			Name:                  name,
			Email:                 email,
			Username:              email,
			Role:                  role,
			Enabled:               true,
			AccountNonExpired:     true,
			AccountNonLocked:      true,
			CredentialsNonExpired: true,
			Authorities:           []domain.Authority{{Authority: "ROLE_" + role}},
		},
	}
}

// SeedQuiz stores a quiz with its correct answer indexes and per-question
// points.
func (s *Server) SeedQuiz(req domain.CreateQuizRequest) domain.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeQuizLocked(req)
}

func (s *Server) storeQuizLocked(req domain.CreateQuizRequest) domain.Quiz {
	s.nextID++
	quiz := domain.Quiz{
		ID:          fmt.Sprintf("quiz%d", s.nextID),
		Code:        strings.ToUpper(req.Code),
		Title:       req.Title,
		Description: req.Description,
	}
	stored := &storedQuiz{}
	for i, q := range req.Questions {
		question := domain.Question{
			ID:           fmt.Sprintf("%s-q%d", quiz.ID, i+1),
			QuestionText: q.QuestionText,
			Options:      q.Options,
		}
		points := q.Points
		if points <= 0 {
			points = 1
		}
		quiz.Questions = append(quiz.Questions, question)
		stored.questions = append(stored.questions, storedQuestion{
			Question: question,
			correct:  q.CorrectAnswerIndex,
			points:   points,
		})
	}
	stored.quiz = quiz
	s.quizzes[quiz.Code] = stored
	return quiz
}

// Handler builds the HTTP surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", s.handleLogin)
	r.Post("/api/v1/auth/signup", s.handleSignup)
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/api/v1/users/me", s.handleProfile)
		r.Post("/api/v1/quiz/validate-code", s.handleValidateCode)
		r.Post("/api/v1/quiz/submit", s.handleSubmit)
		r.Get("/api/v1/quiz/{code}/attempt", s.handleAttempt)
		r.Get("/api/v1/quiz/{code}/has-attempted", s.handleHasAttempted)
		r.Post("/api/v1/admin/quiz/create", s.handleCreate)
	})
	return r
}

func (s *Server) issueToken(email, role string) (string, error) {
	now := s.now()
	c := &claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*claims, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return c, nil
}

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		c, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), c)))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || acct.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.issueToken(acct.user.Email, acct.user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, domain.SignInResponse{Token: token})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	s.mu.Lock()
	_, exists := s.accounts[req.Email]
	s.mu.Unlock()
	if exists {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	s.SeedUser(req.Name, req.Email, req.Password, "USER")
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	s.mu.Lock()
	acct, ok := s.accounts[c.Subject]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, acct.user)
}

func (s *Server) handleValidateCode(w http.ResponseWriter, r *http.Request) {
	var req domain.QuizCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	stored, ok := s.quizzes[strings.ToUpper(strings.TrimSpace(req.Code))]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found for this code")
		return
	}
	writeJSON(w, http.StatusOK, stored.quiz)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c := claimsFrom(r.Context())
	code := strings.ToUpper(strings.TrimSpace(req.QuizCode))

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[code]
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found for this code")
		return
	}
	key := c.Subject + "|" + code
	if prior, ok := s.attempts[key]; ok {
		// One attempt per user and quiz; the first score stands.
		writeJSON(w, http.StatusOK, domain.SubmissionResult{
			Score:      prior.Score,
			TotalMarks: prior.TotalMarks,
			IsRetake:   true,
		})
		return
	}

	score, total := 0, 0
	for _, q := range stored.questions {
		total += q.points
		if answer, ok := req.Answers[q.ID]; ok && answer == q.correct {
			score += q.points
		}
	}
	s.attempts[key] = domain.AttemptResult{
		Score:       score,
		TotalMarks:  total,
		AttemptedAt: s.now().UTC(),
	}
	writeJSON(w, http.StatusOK, domain.SubmissionResult{Score: score, TotalMarks: total})
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	code := strings.ToUpper(chi.URLParam(r, "code"))
	s.mu.Lock()
	attempt, ok := s.attempts[c.Subject+"|"+code]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "No attempt found for this quiz")
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (s *Server) handleHasAttempted(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	code := strings.ToUpper(chi.URLParam(r, "code"))
	s.mu.Lock()
	_, ok := s.attempts[c.Subject+"|"+code]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	if c.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "Only administrators can create quizzes")
		return
	}
	var req domain.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" || req.Title == "" || len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "code, title and questions are required")
		return
	}
	code := strings.ToUpper(req.Code)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.quizzes[code]; exists {
		writeError(w, http.StatusConflict, "A quiz with this code already exists")
		return
	}
	quiz := s.storeQuizLocked(req)
	writeJSON(w, http.StatusCreated, quiz)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
