package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/auth"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication and the stored session",
	Long: `Manage authentication against the portal backend.

The session (token, username, role) is stored in the hackdesk state
directory and survives between runs. Logging out clears it; a session
the backend rejects is cleared automatically on the next verification.

Subcommands:
  signup  Create a new account
  login   Login and store the session
  logout  Clear the stored session
  status  Verify the session against the backend

Examples:
  hackdesk auth signup --username alice --password secret
  hackdesk auth login --username alice --password secret
  hackdesk auth status
  hackdesk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authSignupCmd creates an account. Signing up does not log in.
var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long: `Create a new account with the portal.

Signing up does not log you in; run 'hackdesk auth login' afterwards.

Examples:
  hackdesk auth signup --username alice --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentialFlags(cmd)
		if err != nil {
			return err
		}

		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		svc := auth.NewService(client, store)

		result := svc.Signup(cmd.Context(), username, password)
		if !result.Success {
			return hderrors.New(hderrors.ErrCodeAuthFailed, result.Message)
		}

		ux.Toast(cmd.OutOrStdout(), ux.ToastSuccess, result.Message)
		return nil
	},
}

// authLoginCmd logs in and stores the session
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and store the session",
	Long: `Login with username and password.

On success the session token and role are stored locally. Admin
accounts land on the review dashboard; everyone else on the profile.

Examples:
  hackdesk auth login --username alice --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentialFlags(cmd)
		if err != nil {
			return err
		}

		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		svc := auth.NewService(client, store)

		result, route := svc.Login(cmd.Context(), username, password)
		if !result.Success {
			return hderrors.New(hderrors.ErrCodeAuthFailed, result.Message)
		}

		out := cmd.OutOrStdout()
		ux.Toast(out, ux.ToastSuccess, "Login successful!")

		// The route decision is computed by the auth service; acting
		// on it is this layer's job.
		if route == auth.RouteAdmin {
			ux.Muted(out, "Admin account. Run 'hackdesk dashboard' to review teams.")
		} else {
			ux.Muted(out, "Run 'hackdesk profile show' to see your registration.")
		}
		return nil
	},
}

// authLogoutCmd clears the stored session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Long: `Clear the stored session. Unconditional: no network call, no
confirmation.

Examples:
  hackdesk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		svc := auth.NewService(client, store)

		user, hadUser := svc.User()

		if _, err := svc.Logout(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if hadUser {
			fmt.Fprintf(out, "Logged out: %s\n", user.Username)
		} else {
			fmt.Fprintln(out, "Logged out.")
		}
		return nil
	},
}

// authStatusCmd verifies the session against the backend
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Verify the stored session against the backend and show who you
are. With no stored token this answers immediately without a network
call.

Examples:
  hackdesk auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		svc := auth.NewService(client, store)

		out := cmd.OutOrStdout()

		state := svc.VerifyAuth(cmd.Context())
		if !state.Authenticated {
			fmt.Fprintln(out, "Not logged in.")
			ux.Muted(out, "Use 'hackdesk auth login' to authenticate.")
			return nil
		}

		fmt.Fprintln(out, "Logged in")
		fmt.Fprintf(out, "Username: %s\n", state.User.Username)
		fmt.Fprintf(out, "Role:     %s\n", state.User.Role)
		return nil
	},
}

// credentialFlags reads the username/password pair shared by signup and
// login, requiring both to be present
func credentialFlags(cmd *cobra.Command) (string, string, error) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if username == "" {
		return "", "", fmt.Errorf("--username is required")
	}
	if password == "" {
		return "", "", fmt.Errorf("--password is required")
	}
	return username, password, nil
}

func init() {
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	for _, c := range []*cobra.Command{authSignupCmd, authLoginCmd} {
		c.Flags().String("username", "", "Username (required)")
		c.Flags().String("password", "", "Password (required)")
	}

	rootCmd.AddCommand(authCmd)
}
