package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/hackdesk/internal/api"
)

// Toast severities
const (
	toastSuccess = "success"
	toastError   = "error"
	toastWarning = "warning"
)

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
	CardHot  lipgloss.Style
	Badge    map[string]lipgloss.Style
	Disabled lipgloss.Style
	Action   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")). // Gray
			Padding(0, 1),
		CardHot: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(0, 1),
		Badge: map[string]lipgloss.Style{
			api.StatusPending: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("226")), // Yellow
			api.StatusSelected: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("46")), // Green
			api.StatusRejected: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196")), // Red
		},
		Disabled: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("241")), // Gray
		Action: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
	}
}

// View renders the dashboard (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Team Review Dashboard"))
	b.WriteString("\n")

	reviewer := m.reviewer
	if reviewer == "" {
		reviewer = "(none)"
	}
	b.WriteString(m.styles.Subtitle.Render("Reviewer: " + reviewer))
	b.WriteString("\n\n")

	switch {
	case m.confirming != nil:
		b.WriteString(m.renderApproval())
	case m.loading:
		b.WriteString(m.styles.Muted.Render("Loading teams..."))
		b.WriteString("\n")
	case m.loadError != "":
		b.WriteString(m.styles.Error.Render(m.loadError))
		b.WriteString("\n")
	case len(m.teams) == 0:
		b.WriteString(m.styles.Muted.Render("No teams found."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTeams())
	}

	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(m.renderToast())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderTeams renders the team cards, one per team
func (m Model) renderTeams() string {
	var b strings.Builder

	for i, t := range m.teams {
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.CardHot
		}
		b.WriteString(style.Render(m.renderCard(t, i == m.cursor)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderCard renders a single team card
func (m Model) renderCard(t api.Team, hot bool) string {
	var b strings.Builder

	badge, ok := m.styles.Badge[t.Status]
	if !ok {
		badge = m.styles.Muted
	}

	b.WriteString(fmt.Sprintf("%s  %s\n",
		lipgloss.NewStyle().Bold(true).Render(t.TeamName),
		badge.Render(t.Status)))
	b.WriteString(m.styles.Muted.Render(t.CollegeName))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Leader: %s   Members: %d\n", t.LeaderName, t.MemberCount))

	if len(t.Members) > 0 {
		b.WriteString(m.styles.Muted.Render(strings.Join(t.Members, ", ")))
		b.WriteString("\n")
	}

	// Decision actions render disabled for decided teams; the key
	// handler enforces the same gate.
	if hot {
		actions := "[s] SELECT   [x] REJECT"
		if t.Pending() {
			b.WriteString(m.styles.Action.Render(actions))
		} else {
			b.WriteString(m.styles.Disabled.Render(actions))
		}
		b.WriteString("   ")
		b.WriteString(m.styles.Muted.Render("[a] abstract  [p] prototype"))
		b.WriteString("\n")
	}

	if t.ReviewedBy != "" {
		b.WriteString(m.styles.Muted.Render("Reviewed by " + t.ReviewedBy))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderApproval renders the confirmation overlay for a pending decision
func (m Model) renderApproval() string {
	d := m.confirming

	verdict := m.styles.Success.Render(d.status)
	if d.status == api.StatusRejected {
		verdict = m.styles.Error.Render(d.status)
	}

	body := fmt.Sprintf("Mark team %q as %s?\n\n%s",
		d.teamName,
		verdict,
		m.styles.Muted.Render("[y] confirm   [n] cancel"))

	return m.styles.CardHot.Render(body) + "\n"
}

// renderToast renders the transient status line
func (m Model) renderToast() string {
	switch m.toastSeverity {
	case toastError:
		return m.styles.Error.Render(m.toast)
	case toastWarning:
		return m.styles.Warning.Render(m.toast)
	default:
		return m.styles.Success.Render(m.toast)
	}
}

// renderHelpLine renders the keybinding help footer
func (m Model) renderHelpLine() string {
	bindings := []string{"↑/↓ move", "s select", "x reject", "a/p docs", "r refresh", "q quit"}
	return m.styles.Help.Render(strings.Join(bindings, " • "))
}
