package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// LocalUser owns the data of a local install that has no identity provider
const LocalUser = "local"

// CLI represents the CLI application context
type CLI struct {
	App     *app.App // Application container with services
	Session *auth.Session
	owned   bool
}

// New wraps an already running App, for callers that manage its lifetime
func New(application *app.App, session *auth.Session) *CLI {
	return &CLI{App: application, Session: session}
}

// NewCLI resolves the caller's session and opens the datastore
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	session, err := ResolveSession(cfg.Auth)
	if err != nil {
		return nil, err
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{
		App:     application,
		Session: session,
		owned:   true,
	}, nil
}

// ResolveSession turns the configured token into a session. Without any key
// material configured the CLI runs as LocalUser.
func ResolveSession(cfg config.AuthConfig) (*auth.Session, error) {
	token := strings.TrimSpace(cfg.Token)

	if cfg.Secret == "" && cfg.JWKSURL == "" {
		if token != "" {
			return nil, fmt.Errorf("%w: a token is set but neither auth.secret nor auth.jwks_url is configured to verify it", models.ErrUnauthenticated)
		}
		return auth.NewSession(LocalUser), nil
	}
	if token == "" {
		return nil, fmt.Errorf("%w: no session token", models.ErrUnauthenticated)
	}

	authn, err := auth.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}
	defer authn.Close()

	return authn.Authenticate(token)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
