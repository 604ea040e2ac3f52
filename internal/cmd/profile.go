package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/auth"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/profile"
	"github.com/felixgeelhaar/hackdesk/internal/ux"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View your team profile and upload documents",
	Long: `View your registered team profile and upload documents.

Subcommands:
  show      Show your team profile
  upload    Upload an abstract or prototype PDF

Examples:
  hackdesk profile show
  hackdesk profile upload abstract ./abstract.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// profileShowCmd shows the logged-in user's team profile
var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your team profile",
	Long: `Show the leader, college, and team name for your registration.

If you have not registered a team yet, the profile shows as
unregistered rather than failing.

Examples:
  hackdesk profile show
  hackdesk profile show --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		svc := auth.NewService(client, store)
		if state := svc.VerifyAuth(cmd.Context()); !state.Authenticated {
			return hderrors.NewAuthRequiredError()
		}

		workflow := profile.NewWorkflow(client, store)
		view := workflow.Fetch(cmd.Context())

		format, _ := cmd.Flags().GetString("format")
		return ux.Print(cmd.OutOrStdout(), format, view, func(w io.Writer) error {
			renderProfile(w, view)
			return nil
		})
	},
}

func renderProfile(w io.Writer, view profile.View) {
	switch view.State {
	case profile.StateUnregistered:
		ux.Muted(w, "No team registered yet.")
	case profile.StateError:
		ux.Toast(w, ux.ToastError, view.Message)
	default:
		fmt.Fprintf(w, "Leader:   %s\n", view.LeaderName)
		fmt.Fprintf(w, "College:  %s\n", view.CollegeName)
		fmt.Fprintf(w, "Team:     %s\n", view.TeamName)
	}
}

// profileUploadCmd uploads a document for the logged-in user's team
var profileUploadCmd = &cobra.Command{
	Use:   "upload <abstract|prototype> <file>",
	Short: "Upload an abstract or prototype PDF",
	Long: `Upload a PDF document for your team.

The file is validated locally before anything is sent: it must exist,
carry a .pdf extension with PDF content, and be at most 5 MiB.

Examples:
  hackdesk profile upload abstract ./abstract.pdf
  hackdesk profile upload prototype ./prototype.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !api.ValidDocumentKind(args[0]) {
			return fmt.Errorf("invalid document kind %q: use abstract or prototype", args[0])
		}

		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		svc := auth.NewService(client, store)
		if state := svc.VerifyAuth(cmd.Context()); !state.Authenticated {
			return hderrors.NewAuthRequiredError()
		}

		workflow := profile.NewWorkflow(client, store)
		result := workflow.Upload(cmd.Context(), api.DocumentKind(args[0]), args[1])
		if !result.Success {
			ux.Toast(cmd.ErrOrStderr(), ux.ToastError, result.Message)
			return hderrors.New(hderrors.ErrCodeAPIStatus, result.Message)
		}

		ux.Toast(cmd.OutOrStdout(), ux.ToastSuccess, result.Message)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUploadCmd)

	profileShowCmd.Flags().String("format", "text", "output format (text, json, yaml)")

	rootCmd.AddCommand(profileCmd)
}
