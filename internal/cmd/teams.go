package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/auth"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/review"
	"github.com/felixgeelhaar/hackdesk/internal/tui"
	"github.com/felixgeelhaar/hackdesk/internal/ux"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Review registered teams (admin)",
	Long: `List registered teams and record review decisions.

All subcommands verify the session against the backend and require an
admin role before touching team data.

Subcommands:
  list      List teams with their review status
  decide    Record a SELECTED or REJECTED decision
  doc       Download a team's document
  reviewer  Set the persisted reviewer name

Examples:
  hackdesk teams list
  hackdesk teams decide 7 SELECTED --reviewer "Dr. Rao"
  hackdesk teams doc 7 abstract --open
  hackdesk teams reviewer "Dr. Rao"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// teamsListCmd lists teams with their review status
var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams with their review status",
	Long: `List all teams with status, leader, and reviewer.

Examples:
  hackdesk teams list
  hackdesk teams list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		if _, err := requireAdmin(cmd, auth.NewService(client, store), store); err != nil {
			return err
		}

		workflow := review.NewWorkflow(client, store)
		teams, err := workflow.FetchTeams(cmd.Context())
		if err != nil {
			ux.Toast(cmd.ErrOrStderr(), ux.ToastError, "Failed to load teams")
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return ux.Print(cmd.OutOrStdout(), format, teams, func(w io.Writer) error {
			renderTeamTable(w, teams)
			return nil
		})
	},
}

// renderTeamTable writes the human-readable team listing
func renderTeamTable(w io.Writer, teams []api.Team) {
	if len(teams) == 0 {
		ux.Muted(w, "No teams found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-24s  %-9s  %-12s  %s\n",
		"ID", "TEAM", "COLLEGE", "STATUS", "REVIEWED BY", "MEMBERS")
	for _, t := range teams {
		reviewedBy := t.ReviewedBy
		if reviewedBy == "" {
			reviewedBy = "-"
		}
		fmt.Fprintf(w, "%-4d  %-24s  %-24s  %-9s  %-12s  %s\n",
			t.ID, t.TeamName, t.CollegeName, t.Status, reviewedBy, strings.Join(t.Members, ", "))
	}
}

// teamsDecideCmd records a decision for one team
var teamsDecideCmd = &cobra.Command{
	Use:   "decide <team-id> <SELECTED|REJECTED>",
	Short: "Record a review decision",
	Long: `Record a terminal SELECTED or REJECTED decision for a team.

The reviewer name comes from --reviewer, falling back to the persisted
selection ('hackdesk teams reviewer'). The command asks for
confirmation unless --yes is given.

A 409 conflict means another admin decided first; the refreshed list
shows the authoritative state.

Examples:
  hackdesk teams decide 7 SELECTED --reviewer "Dr. Rao"
  hackdesk teams decide 7 REJECTED --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		status := strings.ToUpper(args[1])
		if !review.ValidStatus(status) {
			return hderrors.New(hderrors.ErrCodeReviewBadStatus,
				fmt.Sprintf("invalid decision %q: use SELECTED or REJECTED", args[1]))
		}

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
			return hderrors.NewReviewerMissingError()
		}

		// Find the team name for the confirmation prompt.
		teamName := args[0]
		teams, err := workflow.FetchTeams(cmd.Context())
		if err == nil {
			for _, t := range teams {
				if t.ID == teamID {
					teamName = t.TeamName
					if !t.Pending() {
						return hderrors.New(hderrors.ErrCodeAPIConflict,
							fmt.Sprintf("team %q was already reviewed by %s", t.TeamName, t.ReviewedBy))
					}
				}
			}
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirmed, err := tui.ConfirmDecision(teamName, status)
			if err != nil {
				return err
			}
			if !confirmed {
				ux.Muted(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		result := workflow.Decide(cmd.Context(), teamID, status, reviewer)

		out := cmd.OutOrStdout()
		switch result.Outcome {
		case review.OutcomeApplied:
			ux.Toast(out, ux.ToastSuccess, result.Message)
		case review.OutcomeConflict:
			ux.Toast(out, ux.ToastWarning, result.Message)
		default:
			ux.Toast(cmd.ErrOrStderr(), ux.ToastError, result.Message)
			return hderrors.New(hderrors.ErrCodeAPIStatus, result.Message)
		}

		// Success and conflict both re-fetch so the user sees the
		// authoritative state.
		if result.Refresh {
			if teams, err := workflow.FetchTeams(cmd.Context()); err == nil {
				fmt.Fprintln(out)
				renderTeamTable(out, teams)
			}
		}

		if result.Outcome == review.OutcomeConflict {
			return hderrors.New(hderrors.ErrCodeAPIConflict, result.Message)
		}
		return nil
	},
}

// teamsDocCmd downloads a team document
var teamsDocCmd = &cobra.Command{
	Use:   "doc <team-id> <abstract|prototype>",
	Short: "Download a team's document",
	Long: `Download a team's abstract or prototype PDF to a temporary file.

With --open the file is also opened with the system viewer.

Examples:
  hackdesk teams doc 7 abstract
  hackdesk teams doc 7 prototype --open`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		if !api.ValidDocumentKind(args[1]) {
			return fmt.Errorf("invalid document kind %q: use abstract or prototype", args[1])
		}

		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		if _, err := requireAdmin(cmd, auth.NewService(client, store), store); err != nil {
			return err
		}

		workflow := review.NewWorkflow(client, store)
		path, err := workflow.SaveDocument(cmd.Context(), teamID, api.DocumentKind(args[1]))
		if err != nil {
			ux.Toast(cmd.ErrOrStderr(), ux.ToastError, "Document unavailable")
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)

		if open, _ := cmd.Flags().GetBool("open"); open {
			if err := openPath(path); err != nil {
				ux.Toast(cmd.ErrOrStderr(), ux.ToastWarning, "Could not open viewer: "+err.Error())
			}
		}
		return nil
	},
}

// teamsReviewerCmd persists the reviewer name used for decisions
var teamsReviewerCmd = &cobra.Command{
	Use:   "reviewer [name]",
	Short: "Set the persisted reviewer name",
	Long: `Set the reviewer name recorded with decisions. Without an
argument, prompts interactively.

Examples:
  hackdesk teams reviewer "Dr. Rao"
  hackdesk teams reviewer`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		if _, err := requireAdmin(cmd, auth.NewService(client, store), store); err != nil {
			return err
		}

		workflow := review.NewWorkflow(client, store)

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			name, err = tui.PromptForReviewer(workflow.Reviewer())
			if err != nil {
				return err
			}
		}

		if err := workflow.SetReviewer(name); err != nil {
			return err
		}

		ux.Toast(cmd.OutOrStdout(), ux.ToastSuccess, "Reviewer set to "+name)
		return nil
	},
}

func init() {
	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsDecideCmd)
	teamsCmd.AddCommand(teamsDocCmd)
	teamsCmd.AddCommand(teamsReviewerCmd)

	teamsListCmd.Flags().String("format", "text", "output format (text, json, yaml)")
	teamsDecideCmd.Flags().String("reviewer", "", "reviewer name recorded with the decision")
	teamsDecideCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	teamsDocCmd.Flags().Bool("open", false, "open the document with the system viewer")

	rootCmd.AddCommand(teamsCmd)
}
