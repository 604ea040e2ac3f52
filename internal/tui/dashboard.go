// Package tui is the interactive admin review dashboard: a bubbletea
// application that lists teams, gates decision keys on PENDING status,
// and resolves decision conflicts by refreshing the authoritative list.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/review"
)

// toastDuration is how long a toast stays on screen
const toastDuration = 3 * time.Second

// keyMap defines the dashboard keyboard shortcuts
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Reject    key.Binding
	Abstract  key.Binding
	Prototype key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous team"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next team"),
	),
	Select: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "select team"),
	),
	Reject: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reject team"),
	),
	Abstract: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "view abstract"),
	),
	Prototype: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "view prototype"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// pendingDecision is a decision awaiting the approval overlay's verdict
type pendingDecision struct {
	teamID   int
	teamName string
	status   string
}

// Model represents the dashboard state
type Model struct {
	workflow *review.Workflow
	reviewer string

	// Team list state
	teams     []api.Team
	cursor    int
	loading   bool
	loadError string

	// Decision state. busy guards against duplicate in-flight
	// submissions from rapid repeated keypresses.
	busy       bool
	confirming *pendingDecision

	// Toast state
	toast         string
	toastSeverity string

	// Document opener, injected so tests need no desktop environment
	openDoc func(path string) error

	width    int
	height   int
	quitting bool

	styles Styles
}

// NewModel creates a dashboard model. openDoc receives the saved
// document path; pass nil to disable opening.
func NewModel(workflow *review.Workflow, reviewer string, openDoc func(path string) error) Model {
	if openDoc == nil {
		openDoc = func(string) error { return nil }
	}
	return Model{
		workflow: workflow,
		reviewer: reviewer,
		loading:  true,
		openDoc:  openDoc,
		styles:   DefaultStyles(),
	}
}

// Messages

type teamsMsg struct {
	teams []api.Team
	err   error
}

type decisionMsg struct {
	result review.DecisionResult
}

type documentMsg struct {
	err error
}

type clearToastMsg struct{}

// Commands

func (m Model) fetchTeamsCmd() tea.Cmd {
	workflow := m.workflow
	return func() tea.Msg {
		teams, err := workflow.FetchTeams(context.Background())
		return teamsMsg{teams: teams, err: err}
	}
}

func (m Model) decideCmd(d pendingDecision) tea.Cmd {
	workflow, reviewer := m.workflow, m.reviewer
	return func() tea.Msg {
		return decisionMsg{result: workflow.Decide(context.Background(), d.teamID, d.status, reviewer)}
	}
}

func (m Model) openDocumentCmd(teamID int, kind api.DocumentKind) tea.Cmd {
	workflow, open := m.workflow, m.openDoc
	return func() tea.Msg {
		path, err := workflow.SaveDocument(context.Background(), teamID, kind)
		if err != nil {
			return documentMsg{err: err}
		}
		return documentMsg{err: open(path)}
	}
}

func clearToastCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// Init starts the initial team fetch (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return m.fetchTeamsCmd()
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case teamsMsg:
		m.loading = false
		if msg.err != nil {
			m.loadError = "Failed to load data."
			return m.withToast("Failed to load teams", toastError), clearToastCmd()
		}
		m.loadError = ""
		m.teams = msg.teams
		if m.cursor >= len(m.teams) {
			m.cursor = max(0, len(m.teams)-1)
		}
		return m, nil

	case decisionMsg:
		m.busy = false
		var severity string
		switch msg.result.Outcome {
		case review.OutcomeApplied:
			severity = toastSuccess
		case review.OutcomeConflict:
			severity = toastWarning
		default:
			severity = toastError
		}
		next := m.withToast(msg.result.Message, severity)
		if msg.result.Refresh {
			next.loading = true
			return next, tea.Batch(next.fetchTeamsCmd(), clearToastCmd())
		}
		return next, clearToastCmd()

	case documentMsg:
		if msg.err != nil {
			return m.withToast("Document unavailable", toastError), clearToastCmd()
		}
		return m.withToast("Document opened", toastSuccess), clearToastCmd()

	case clearToastMsg:
		m.toast = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The approval overlay owns the keyboard while it is up.
	if m.confirming != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			d := *m.confirming
			m.confirming = nil
			m.busy = true
			return m, m.decideCmd(d)
		case "n", "N", "esc":
			m.confirming = nil
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.teams)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.fetchTeamsCmd()

	case key.Matches(msg, keys.Select):
		return m.beginDecision(api.StatusSelected)

	case key.Matches(msg, keys.Reject):
		return m.beginDecision(api.StatusRejected)

	case key.Matches(msg, keys.Abstract):
		if t, ok := m.current(); ok {
			return m, m.openDocumentCmd(t.ID, api.DocumentAbstract)
		}

	case key.Matches(msg, keys.Prototype):
		if t, ok := m.current(); ok {
			return m, m.openDocumentCmd(t.ID, api.DocumentPrototype)
		}
	}

	return m, nil
}

// beginDecision raises the approval overlay for the highlighted team.
// Decision keys are inert while a submission is in flight, when the
// team is already decided, or when no reviewer is selected.
func (m Model) beginDecision(status string) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	t, ok := m.current()
	if !ok {
		return m, nil
	}

	if !t.Pending() {
		return m.withToast("This team has already been reviewed.", toastWarning), clearToastCmd()
	}

	if m.reviewer == "" {
		return m.withToast("Please select a reviewer first!", toastError), clearToastCmd()
	}

	m.confirming = &pendingDecision{teamID: t.ID, teamName: t.TeamName, status: status}
	return m, nil
}

func (m Model) current() (api.Team, bool) {
	if len(m.teams) == 0 || m.cursor < 0 || m.cursor >= len(m.teams) {
		return api.Team{}, false
	}
	return m.teams[m.cursor], true
}

func (m Model) withToast(message, severity string) Model {
	m.toast = message
	m.toastSeverity = severity
	return m
}

// Run starts the dashboard in the alternate screen
func Run(ctx context.Context, workflow *review.Workflow, reviewer string, openDoc func(path string) error) error {
	p := tea.NewProgram(NewModel(workflow, reviewer, openDoc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
