package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
)

// SessionModel shows workout parameters for one energy system at a time
type SessionModel struct {
	coach     *service.CoachService
	equipment []string
	systems   []planning.EnergySystem
	cursor    int
	params    *planning.WorkoutParameters
	loading   bool
	err       error
}

// NewSessionModel creates a session screen that filters exercises by the
// athlete's equipment.
func NewSessionModel(coach *service.CoachService, equipment []string) SessionModel {
	return SessionModel{
		coach:     coach,
		equipment: equipment,
		systems:   planning.EnergySystems(),
		loading:   true,
	}
}

// Init loads the suggested next session
func (m SessionModel) Init() tea.Cmd {
	return m.loadNext
}

type sessionLoadedMsg struct {
	params planning.WorkoutParameters
	err    error
}

func (m SessionModel) loadNext() tea.Msg {
	p, err := m.coach.NextSession(context.Background(), m.equipment, 0)
	return sessionLoadedMsg{params: p, err: err}
}

func (m SessionModel) load() tea.Msg {
	p, err := m.coach.Session(context.Background(), m.systems[m.cursor], m.equipment, 0)
	return sessionLoadedMsg{params: p, err: err}
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			p := msg.params
			m.params = &p
			for i, s := range m.systems {
				if s == p.PrimarySystem {
					m.cursor = i
				}
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "tab":
			m.cursor = (m.cursor + 1) % len(m.systems)
			m.loading = true
			return m, m.load
		case "left", "h", "shift+tab":
			m.cursor = (m.cursor + len(m.systems) - 1) % len(m.systems)
			m.loading = true
			return m, m.load
		case "n":
			m.loading = true
			return m, m.loadNext
		}
	}
	return m, nil
}

// View renders the session screen
func (m SessionModel) View() string {
	tabs := m.renderTabs()
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, tabs, "\n  Loading session...")
	}
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, tabs, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
	}
	if m.params == nil {
		return tabs
	}

	help := statusStyle.Render("  ←/→: change system  n: suggested next session")
	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderParams(*m.params), help)
}

func (m SessionModel) renderTabs() string {
	var tabs []string
	for i, s := range m.systems {
		label := " " + s.String() + " "
		if i == m.cursor {
			label = systemStyle(s).Underline(true).Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		tabs = append(tabs, label)
	}
	return "  " + strings.Join(tabs, " ")
}

func (m SessionModel) renderParams(p planning.WorkoutParameters) string {
	title := cardTitleStyle.Render("Workout: " + systemStyle(p.PrimarySystem).Render(p.PrimarySystem.String()))

	lines := []string{
		RenderMetric("Work", p.WorkDuration),
		RenderMetric("Rest", p.RestDuration),
		RenderMetric("Intensity", p.IntensityTarget),
		RenderMetric("RPE", fmt.Sprintf("%d-%d", p.RPE.Min, p.RPE.Max)),
	}
	if p.SecondarySystem != nil {
		lines = append(lines, RenderMetric("Also trains", systemStyle(*p.SecondarySystem).Render(p.SecondarySystem.String())))
	}
	if p.DurationMinutes > 0 {
		lines = append(lines, RenderMetric("Duration", fmt.Sprintf("%d min", p.DurationMinutes)))
	}

	lines = append(lines,
		"",
		sectionStyle.Render("Exercises"),
		bulletList(humanizeIDs(p.ExerciseSelection)),
		"",
		sectionStyle.Render("Adaptations"),
		bulletList(p.AdaptationsTargeted),
		"",
		mutedStyle.Width(70).Render(p.ProgressionNotes),
	)
	if len(m.equipment) > 0 {
		lines = append(lines, "", mutedStyle.Render("Equipment: "+strings.Join(m.equipment, ", ")))
	}

	return cardStyle.Width(80).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// humanizeIDs turns exercise ids like "box_jumps" into "box jumps".
func humanizeIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.ReplaceAll(id, "_", " ")
	}
	return out
}
