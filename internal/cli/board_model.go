package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/service"
)

// approvalsLoadedMsg signals that the pending queue has been (re)loaded.
type approvalsLoadedMsg struct {
	approvals []*domain.Approval
	err       error
}

// decidedMsg signals that one approval has been resolved.
type decidedMsg struct {
	id     string
	status domain.ApprovalStatus
	err    error
}

type boardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Approve key.Binding
	Decline key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Approve: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		Decline: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "decline")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the interactive pending-approvals queue.
type boardModel struct {
	app       *App
	projectID string
	userID    string

	keys      boardKeyMap
	approvals []*domain.Approval
	cursor    int
	loading   bool
	status    string
	err       error
}

func newBoardModel(app *App, projectID, userID string) *boardModel {
	return &boardModel{
		app:       app,
		projectID: projectID,
		userID:    userID,
		keys:      defaultBoardKeys(),
		loading:   true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	return func() tea.Msg {
		approvals, err := m.app.Approvals.ListPending(context.Background(), m.projectID)
		return approvalsLoadedMsg{approvals: approvals, err: err}
	}
}

func (m *boardModel) decide(id string, action service.DecideAction) tea.Cmd {
	return func() tea.Msg {
		a, err := m.app.Approvals.Decide(context.Background(), id, action, m.userID, "")
		if err != nil {
			return decidedMsg{id: id, err: err}
		}
		return decidedMsg{id: id, status: a.Status}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case approvalsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.approvals = msg.approvals
		if m.cursor >= len(m.approvals) {
			m.cursor = len(m.approvals) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case decidedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("%s %s", formatter.ApprovalStatusPill(msg.status), formatter.Dim(msg.id))
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.approvals)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Approve):
			if a := m.selected(); a != nil {
				return m, m.decide(a.ID, service.DecideApprove)
			}
		case key.Matches(msg, m.keys.Decline):
			if a := m.selected(); a != nil {
				return m, m.decide(a.ID, service.DecideDecline)
			}
		}
	}
	return m, nil
}

func (m *boardModel) selected() *domain.Approval {
	if m.cursor < 0 || m.cursor >= len(m.approvals) {
		return nil
	}
	return m.approvals[m.cursor]
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Approval board") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	case len(m.approvals) == 0:
		b.WriteString(formatter.StyleGreen.Render("✔ Nothing waiting for review.") + "\n")
	default:
		for i, a := range m.approvals {
			prefix := "  "
			line := fmt.Sprintf("%s %s %s",
				formatter.StylePurple.Render(string(a.Type)),
				formatter.Bold(formatter.Truncate(formatter.ApprovalSummary(a), 48)),
				formatter.Dim(formatter.HumanTimestamp(a.CreatedAt)))
			if i == m.cursor {
				prefix = formatter.StyleHeader.Render("> ")
			}
			b.WriteString(prefix + line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + formatter.Dim("a approve · d decline · r refresh · q quit") + "\n")
	return b.String()
}

func runApprovalBoard(app *App, projectID, userID string) error {
	p := tea.NewProgram(newBoardModel(app, projectID, userID))
	_, err := p.Run()
	return err
}
