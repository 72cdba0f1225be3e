package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/service"
)

// SyncModel is the sync screen model. A nil service means Strava is not
// connected.
type SyncModel struct {
	syncService *service.SyncService
	syncing     bool
	progress    chan service.SyncProgress
	last        service.SyncProgress
	result      *service.SyncResult
	err         error
	done        bool
}

// NewSyncModel creates a new sync model
func NewSyncModel(ss *service.SyncService) SyncModel {
	return SyncModel{syncService: ss}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return nil
}

// SyncDoneMsg is sent when sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

type syncProgressMsg service.SyncProgress

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncProgressMsg:
		m.last = service.SyncProgress(msg)
		return m, waitForProgress(m.progress)

	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, func() tea.Msg { return SyncCompleteMsg{} }

	case tea.KeyMsg:
		if !m.syncing && m.syncService != nil {
			switch msg.String() {
			case "enter", "s":
				m.syncing = true
				m.done = false
				m.err = nil
				m.result = nil
				m.last = service.SyncProgress{}
				m.progress = make(chan service.SyncProgress, 64)
				return m, tea.Batch(m.runSync(m.progress), waitForProgress(m.progress))
			}
		}
	}
	return m, nil
}

func (m SyncModel) runSync(progress chan service.SyncProgress) tea.Cmd {
	return func() tea.Msg {
		result, err := m.syncService.SyncAll(context.Background(), progress)
		return SyncDoneMsg{Result: result, Err: err}
	}
}

// waitForProgress relays one update. It returns nil once SyncAll closes
// the channel.
func waitForProgress(progress <-chan service.SyncProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return nil
		}
		return syncProgressMsg(p)
	}
}

// View renders the sync screen
func (m SyncModel) View() string {
	sections := []string{cardTitleStyle.Render("Strava Sync")}

	if m.syncService == nil {
		sections = append(sections,
			"\n  Strava is not connected.",
			"\n"+statusStyle.Render("  Add [strava] credentials to the config file, then run 'fitcoach login'."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 's' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.syncing {
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '3' to see your progress"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.syncing {
		sections = append(sections, m.renderProgress())
	} else {
		sections = append(sections, m.renderStartPrompt())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	lines := []string{
		"",
		"  This will import your new Strava activities as training sessions.",
		"  Each activity is tagged with the energy system it mostly trained,",
		"  using its sport type, duration and average heart rate.",
		"",
	}

	short, daily := m.syncService.RateLimitStatus()
	lines = append(lines,
		statusStyle.Render(fmt.Sprintf("  API requests left: %d (15min), %d (daily)", short, daily)),
		"",
		statusStyle.Render("  Press 's' or Enter to start sync"),
	)
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderProgress() string {
	lines := []string{
		"",
		"  Syncing with Strava...",
		"",
		fmt.Sprintf("  %d activities fetched, %d imported", m.last.Fetched, m.last.Imported),
	}
	if m.last.CurrentActivity != "" {
		lines = append(lines, mutedStyle.Render("  "+truncate(m.last.CurrentActivity, 50)))
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}
	r := m.result
	lines := []string{""}

	if r.SessionsCreated > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d new sessions", r.SessionsCreated)))
	} else {
		lines = append(lines, statusStyle.Render("  No new activities"))
	}
	if r.SessionsUpdated > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d sessions updated", r.SessionsUpdated)))
	}
	if r.Skipped > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %d too short to count", r.Skipped)))
	}
	if len(r.Errors) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}
	return strings.Join(lines, "\n")
}
