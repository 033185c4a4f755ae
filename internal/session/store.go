package session

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"quizora-cli/internal/domain"
)

// Gateway is the slice of the API client the store needs.
type Gateway interface {
	SignIn(ctx context.Context, req domain.SignInRequest) (domain.SignInResponse, error)
	FetchProfile(ctx context.Context) (domain.User, error)
}

// persisted is the on-disk session shape: a single token, nothing else.
type persisted struct {
	Token string `json:"token"`
}

// Store holds the current session. It is written only by Login and
// Logout; everything else reads. The mutex covers the gateway transport
// reading the token concurrently with CLI writes.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *domain.User
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Restore loads the persisted session. Missing or corrupt data fails
// soft to "no session"; corrupt files are removed so they are not read
// again.
func (s *Store) Restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil || p.Token == "" {
		_ = os.Remove(s.path)
		return
	}
	s.mu.Lock()
	s.token = p.Token
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, then fetches the
// user profile best-effort: a profile failure logs and leaves the user
// unset, but login still succeeds. A failed sign-in is returned
// unchanged and mutates nothing.
func (s *Store) Login(ctx context.Context, gw Gateway, creds domain.SignInRequest) error {
	res, err := gw.SignIn(ctx, creds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = res.Token
	s.user = nil
	s.mu.Unlock()
	if err := s.persist(res.Token); err != nil {
		log.Printf("persist session: %v", err)
	}

	profile, err := gw.FetchProfile(ctx)
	if err != nil {
		log.Printf("fetch profile after login: %v", err)
		return nil
	}
	s.SetUser(&profile)
	return nil
}

// Logout clears the in-memory session and the persisted file synchronously.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	_ = os.Remove(s.path)
}

// Token returns the current session token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached profile, nil when none was fetched.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) SetUser(u *domain.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// IsAuthenticated reports whether a token is present. Validity is the
// server's call; an expired token simply fails at the next request.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin decodes the token's role claim without verifying the
// signature. This gates UI only; the server authorizes for real. Any
// decode failure means non-admin.
func (s *Store) IsAdmin() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == domain.RoleAdmin
}

func (s *Store) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(persisted{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
