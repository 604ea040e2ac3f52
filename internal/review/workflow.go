// Package review implements the admin review workflow: listing teams,
// recording terminal SELECTED/REJECTED decisions, and retrieving team
// documents.
//
// Decisions race between reviewers. The backend detects the race with
// HTTP 409 and this workflow resolves it by reload-and-inspect: the
// conflict outcome tells the caller to refresh the authoritative list,
// never to merge.
package review

import (
	"context"
	"fmt"
	"os"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/log"
	"github.com/felixgeelhaar/hackdesk/internal/session"
)

// Outcome classifies a decision submission
type Outcome int

const (
	// OutcomeApplied means the decision was recorded; refresh the list
	OutcomeApplied Outcome = iota
	// OutcomeConflict means another reviewer decided first; refresh
	// the list to see the authoritative state
	OutcomeConflict
	// OutcomeFailed means a generic failure; the list is not refreshed
	OutcomeFailed
	// OutcomeInvalid means client-side validation blocked the
	// submission before any network call
	OutcomeInvalid
)

// DecisionResult is the structured outcome of a decision submission
type DecisionResult struct {
	Outcome Outcome
	Message string
	// Refresh tells the caller to re-fetch the team list
	Refresh bool
}

// Workflow drives the admin review operations. The session store
// supplies the token presence check and the persisted reviewer name.
type Workflow struct {
	client *api.Client
	store  *session.Store
	logger *log.Logger
}

// NewWorkflow creates a review workflow
func NewWorkflow(client *api.Client, store *session.Store) *Workflow {
	return &Workflow{
		client: client,
		store:  store,
		logger: log.DefaultLogger().With("component", "review"),
	}
}

// Reviewer returns the persisted reviewer selection
func (w *Workflow) Reviewer() string {
	return w.store.Reviewer()
}

// SetReviewer persists the reviewer selection for later decisions
func (w *Workflow) SetReviewer(name string) error {
	return w.store.SetReviewer(name)
}

// FetchTeams returns the current team list. A missing token is an
// error even though the surface-level auth guard normally runs first.
func (w *Workflow) FetchTeams(ctx context.Context) ([]api.Team, error) {
	token := w.store.Token()
	if token == "" {
		return nil, hderrors.New(hderrors.ErrCodeAuthTokenMissing, "no session token")
	}
	w.client.SetToken(token)

	teams, err := w.client.ListTeams(ctx)
	if err != nil {
		w.logger.WithError(err).Error("cannot fetch teams")
		return nil, err
	}

	return teams, nil
}

// ValidStatus reports whether status is a recordable decision
func ValidStatus(status string) bool {
	return status == api.StatusSelected || status == api.StatusRejected
}

// Decide records a decision for a team. The caller is responsible for
// interactive confirmation; this function assumes the decision is
// confirmed. Reviewer validation happens here, before any network call.
func (w *Workflow) Decide(ctx context.Context, teamID int, status, reviewer string) DecisionResult {
	if !ValidStatus(status) {
		return DecisionResult{
			Outcome: OutcomeInvalid,
			Message: fmt.Sprintf("invalid decision %q: use SELECTED or REJECTED", status),
		}
	}

	if reviewer == "" {
		return DecisionResult{
			Outcome: OutcomeInvalid,
			Message: "Please select a reviewer first!",
		}
	}

	token := w.store.Token()
	if token == "" {
		return DecisionResult{Outcome: OutcomeFailed, Message: "Not logged in"}
	}
	w.client.SetToken(token)

	err := w.client.Decide(ctx, teamID, status, reviewer)
	if err != nil {
		if api.IsConflict(err) {
			w.logger.Info("decision conflict", "team", teamID)
			return DecisionResult{
				Outcome: OutcomeConflict,
				Message: "This team has already been reviewed by another admin.",
				Refresh: true,
			}
		}

		w.logger.WithError(err).Error("decision failed", "team", teamID)
		return DecisionResult{
			Outcome: OutcomeFailed,
			Message: "Failed to update status",
		}
	}

	w.logger.Info("decision recorded", "team", teamID, "status", status, "reviewer", reviewer)
	return DecisionResult{
		Outcome: OutcomeApplied,
		Message: fmt.Sprintf("Team %s successfully!", status),
		Refresh: true,
	}
}

// SaveDocument fetches a team document and writes it to a temporary
// PDF file, returning the path for the caller to open. The file is
// left for the OS temp cleaner: removing it while an external viewer
// still reads it would break the view.
func (w *Workflow) SaveDocument(ctx context.Context, teamID int, kind api.DocumentKind) (string, error) {
	token := w.store.Token()
	if token == "" {
		return "", hderrors.New(hderrors.ErrCodeAuthTokenMissing, "no session token")
	}
	w.client.SetToken(token)

	data, err := w.client.FetchDocument(ctx, teamID, kind)
	if err != nil {
		w.logger.WithError(err).Debug("document fetch failed", "team", teamID, "kind", kind)
		return "", hderrors.Wrap(hderrors.ErrCodeDocumentMissing, "Document unavailable", err)
	}

	f, err := os.CreateTemp("", fmt.Sprintf("team%d-%s-*.pdf", teamID, kind))
	if err != nil {
		return "", fmt.Errorf("cannot create temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("cannot write document: %w", err)
	}

	return f.Name(), nil
}
