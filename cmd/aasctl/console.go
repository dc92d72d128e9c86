package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/finki-emc/aas-client/internal/app/access"
	"github.com/finki-emc/aas-client/internal/app/auth"
	"github.com/finki-emc/aas-client/internal/app/client"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/app/orchestration"
	"github.com/finki-emc/aas-client/internal/app/repositories"
	"github.com/finki-emc/aas-client/internal/config"
	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

// console bundles everything a command needs: configuration, the session
// and the repositories over one shared HTTP adapter.
type console struct {
	cfg     *config.Config
	session *auth.Session
	repos   *repositories.Repositories
	coord   *orchestration.Coordinator
}

// newConsole loads configuration, configures logging and wires the SDK
func newConsole(c *cli.Context) (*console, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	// The adapter reads the token from the session, and the session logs in
	// through the user repository over that same adapter
	session := auth.NewSession(nil)
	httpClient := client.New(cfg.API.BaseURL, session.Token, client.WithTimeout(cfg.RequestTimeout()))
	repos := repositories.NewRepositories(httpClient)
	session.BindLogin(repos.User.Login)

	con := &console{
		cfg:     cfg,
		session: session,
		repos:   repos,
		coord:   orchestration.NewCoordinator(repos.User, repos.Student, orchestration.CompensationKeep),
	}
	con.restoreToken()
	return con, nil
}

// restoreToken loads a previously cached bearer token, if any
func (con *console) restoreToken() {
	data, err := os.ReadFile(con.cfg.Auth.TokenFile)
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(data))
	if token != "" {
		con.session.SetToken(token)
	}
}

// saveToken caches the bearer token for subsequent invocations
func (con *console) saveToken() error {
	return os.WriteFile(con.cfg.Auth.TokenFile, []byte(con.session.Token()), 0o600)
}

// clearToken removes the cached bearer token
func (con *console) clearToken() {
	_ = os.Remove(con.cfg.Auth.TokenFile)
}

// currentRole fetches the role of the logged-in user. It is re-read on
// every command; roles are never cached across invocations.
func (con *console) currentRole(ctx context.Context) enums.UserRole {
	profile, err := con.repos.User.Me(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch current user")
		return access.Unknown
	}
	return profile.UserRole
}

// requireCapability checks the visibility table before running an action.
// This mirrors what the dashboard shows or hides; the backend still has the
// final say.
func (con *console) requireCapability(ctx context.Context, page access.Page, capability access.Capability) error {
	role := con.currentRole(ctx)
	if role == access.Unknown {
		return fmt.Errorf("cannot determine current role; are you logged in?")
	}
	if !access.For(page, role).Has(capability) {
		return fmt.Errorf("action %q on %s is not available for role %s", capability, page, role)
	}
	return nil
}
