package api

import (
	"context"
	"fmt"
	"io"
)

// Team status values. PENDING is the only state that accepts a decision;
// SELECTED and REJECTED are terminal.
const (
	StatusPending  = "PENDING"
	StatusSelected = "SELECTED"
	StatusRejected = "REJECTED"
)

// DocumentKind names the two per-team documents
type DocumentKind string

// Document kinds served by the backend
const (
	DocumentAbstract  DocumentKind = "abstract"
	DocumentPrototype DocumentKind = "prototype"
)

// ValidDocumentKind reports whether kind names a known document
func ValidDocumentKind(kind string) bool {
	return kind == string(DocumentAbstract) || kind == string(DocumentPrototype)
}

// Team is a registration under admin review. The backend owns the
// record; this is a read-only snapshot.
type Team struct {
	ID          int      `json:"id"`
	TeamName    string   `json:"teamName"`
	CollegeName string   `json:"collegeName"`
	LeaderName  string   `json:"leaderName"`
	MemberCount int      `json:"memberCount"`
	Members     []string `json:"members"`
	Status      string   `json:"status"`
	ReviewedBy  string   `json:"reviewedBy,omitempty"`
}

// Pending reports whether the team still accepts a decision
func (t Team) Pending() bool {
	return t.Status == StatusPending
}

// decisionRequest is the body recorded against a team
type decisionRequest struct {
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewedBy"`
}

// ListTeams fetches the teams awaiting or past review
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	resp, err := c.doRequest(ctx, "GET", "/admin/teams", nil)
	if err != nil {
		return nil, err
	}

	var teams []Team
	if err := parseResponse(resp, &teams); err != nil {
		return nil, err
	}

	return teams, nil
}

// Decide records a terminal SELECTED/REJECTED decision for a team.
// HTTP 409 means another reviewer got there first; IsConflict
// distinguishes it from generic failure.
func (c *Client) Decide(ctx context.Context, teamID int, status, reviewedBy string) error {
	resp, err := c.doRequest(ctx, "POST", fmt.Sprintf("/admin/teams/%d/decision", teamID), decisionRequest{
		Status:     status,
		ReviewedBy: reviewedBy,
	})
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// FetchDocument retrieves a team's document bytes. The bearer token is
// required for the document to be served at all.
func (c *Client) FetchDocument(ctx context.Context, teamID int, kind DocumentKind) ([]byte, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/admin/teams/%d/%s", teamID, kind), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	return data, nil
}
