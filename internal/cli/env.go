package cli

import (
	"time"

	"quizora-cli/internal/api"
	"quizora-cli/internal/config"
	"quizora-cli/internal/domain"
	"quizora-cli/internal/session"
)

// env wires the pieces every command needs: config, the restored session
// store, and the gateway reading its token from that store.
type env struct {
	cfg     config.Config
	session *session.Store
	api     *api.Client
}

func newEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(cfg.Session.Path)
	store.Restore()
	client := api.New(cfg.Server.URL, store, config.TimeoutDuration(cfg.Server.Timeout, 30*time.Second))
	return &env{cfg: cfg, session: store, api: client}, nil
}

// requireAuth gates flows behind a session; the caller sends the user to
// sign-in when this fails.
func (e *env) requireAuth() error {
	if !e.session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return nil
}
