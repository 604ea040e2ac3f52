package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/auth"
	"github.com/felixgeelhaar/hackdesk/internal/config"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/session"
)

// EnvHome overrides the state directory, mostly for tests and CI
const EnvHome = "HACKDESK_HOME"

// stateDir resolves where session and config state lives: the --home
// flag, then the environment override, then the per-user default.
func stateDir(cmd *cobra.Command) (string, error) {
	if flag, _ := cmd.Flags().GetString("home"); flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env, nil
	}
	return config.Dir()
}

// buildDeps wires the API client and session store for a command. The
// stored token, when present, is preloaded onto the client.
func buildDeps(cmd *cobra.Command) (*api.Client, *session.Store, error) {
	server, _ := cmd.Flags().GetString("server")

	dir, err := stateDir(cmd)
	if err != nil {
		return nil, nil, err
	}

	store := session.NewStore(dir)
	client := api.NewClient(config.ResolveBaseURL(server))
	if token := store.Token(); token != "" {
		client.SetToken(token)
	}

	return client, store, nil
}

// requireAdmin verifies the session against the backend and checks the
// admin role. The backend's answer is the trust boundary; the cached
// role only serves as a secondary guard.
func requireAdmin(cmd *cobra.Command, svc *auth.Service, store *session.Store) (*api.User, error) {
	state := svc.VerifyAuth(cmd.Context())
	if !state.Authenticated {
		return nil, hderrors.NewAuthRequiredError()
	}

	if !session.IsAdminRole(state.User.Role) {
		return nil, hderrors.NewForbiddenError(cmd.Name())
	}

	if cached, ok := store.User(); ok && !session.IsAdminRole(cached.Role) {
		return nil, hderrors.NewForbiddenError(cmd.Name())
	}

	return state.User, nil
}
