package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/auth"
	"github.com/felixgeelhaar/hackdesk/internal/review"
	"github.com/felixgeelhaar/hackdesk/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive team review dashboard (admin)",
	Long: `Open the interactive review dashboard.

The dashboard lists all teams and lets you select, reject, and inspect
documents without leaving the terminal. Pending teams accept decisions;
decided teams are read-only.

Keys:
  up/k, down/j   move between teams
  s              mark SELECTED
  x              mark REJECTED
  a / p          open the abstract / prototype document
  r              refresh the list
  q              quit

Examples:
  hackdesk dashboard
  hackdesk dashboard --reviewer "Dr. Rao"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		if _, err := requireAdmin(cmd, auth.NewService(client, store), store); err != nil {
			return err
		}

		workflow := review.NewWorkflow(client, store)

		reviewer, _ := cmd.Flags().GetString("reviewer")
		if reviewer == "" {
			reviewer = workflow.Reviewer()
		}
		if reviewer == "" {
			reviewer, err = tui.PromptForReviewer("")
			if err != nil {
				return err
			}
		}
		// Remember the selection for the next session.
		if reviewer != workflow.Reviewer() {
			if err := workflow.SetReviewer(reviewer); err != nil {
				return err
			}
		}

		return tui.Run(cmd.Context(), workflow, reviewer, openPath)
	},
}

func init() {
	dashboardCmd.Flags().String("reviewer", "", "reviewer name recorded with decisions")
	rootCmd.AddCommand(dashboardCmd)
}
