package cli

import (
	"context"
	"errors"
	"fmt"

	"tasklist/internal/config"
	"tasklist/internal/repository"
	"tasklist/internal/repository/googletasks"
	"tasklist/internal/repository/memory"
	"tasklist/internal/repository/sqlstore"
)

var (
	// ErrNoOAuthClient means the google backend has no client credentials.
	ErrNoOAuthClient = errors.New("oauth_client.json not found")

	// ErrNotLoggedIn means the google backend has no stored token.
	ErrNotLoggedIn = errors.New("not logged in (run: tasklist login)")

	// ErrNoDSN means the mysql backend was selected without a DSN.
	ErrNoDSN = errors.New(config.MySQLDSNEnv + " is not set")
)

// OpenRepository is the default RepositoryFactory. It opens the repository named by cfg.Backend.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendGoogle:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w in %s", ErrNoOAuthClient, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, ErrNotLoggedIn
		}
		repo, err := googletasks.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.BackendMySQL:
		if cfg.MySQLDSN == "" {
			return nil, ErrNoDSN
		}
		repo, err := sqlstore.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.Backend)
}
