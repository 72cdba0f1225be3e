package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
)

const recentSessionRows = 8

// ProgressModel compares recent training with the plan's targets
type ProgressModel struct {
	coach   *service.CoachService
	data    *progressData
	loading bool
	err     error
}

type progressData struct {
	report planning.ProgressReport
	weeks  []service.WeekCounts
	recent []store.Session
}

// NewProgressModel creates a new progress model
func NewProgressModel(coach *service.CoachService) ProgressModel {
	return ProgressModel{coach: coach, loading: true}
}

// Init loads progress data
func (m ProgressModel) Init() tea.Cmd {
	return m.loadData
}

type progressLoadedMsg struct {
	data *progressData
	err  error
}

func (m ProgressModel) loadData() tea.Msg {
	ctx := context.Background()

	report, err := m.coach.Progress(ctx, service.ProgressSessionLimit, "")
	if err != nil {
		return progressLoadedMsg{err: err}
	}
	weeks, err := m.coach.WeeklySystemCounts(ctx, service.ChartWeeks)
	if err != nil {
		return progressLoadedMsg{err: err}
	}
	recent, err := m.coach.RecentSessions(ctx, recentSessionRows)
	if err != nil {
		return progressLoadedMsg{err: err}
	}
	return progressLoadedMsg{data: &progressData{report: report, weeks: weeks, recent: recent}}
}

// Update handles messages
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the progress screen
func (m ProgressModel) View() string {
	if m.loading {
		return "\n  Loading progress..."
	}
	if errors.Is(m.err, store.ErrNoBundle) {
		return "\n  No plan yet. Open the plan screen with '1' first."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.data == nil {
		return "\n  No data available."
	}

	r := m.data.report
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderBalance(r), "  ", m.renderAdvice(r)),
	}
	if chart := m.renderChart(); chart != "" {
		sections = append(sections, chart)
	}
	sections = append(sections,
		m.renderRecent(),
		statusStyle.Render("Press 'r' to refresh, '2' for the suggested session, 's' to sync"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProgressModel) renderBalance(r planning.ProgressReport) string {
	s := r.Summary
	rows := []struct {
		system   planning.EnergySystem
		count    int
		observed float64
		deficit  float64
	}{
		{planning.Aerobic, s.Tally.Aerobic, s.Observed.Aerobic, s.Deficits.Aerobic},
		{planning.AnaerobicAlactic, s.Tally.Alactic, s.Observed.Alactic, s.Deficits.Alactic},
		{planning.AnaerobicLactic, s.Tally.Lactic, s.Observed.Lactic, s.Deficits.Lactic},
	}

	lines := []string{
		RenderMetric("Sessions", fmt.Sprintf("%d (%d mixed)", s.TotalSessions, s.Tally.Mixed)),
		"",
		mutedStyle.Render(fmt.Sprintf("%-18s %4s %7s %8s", "", "n", "done", "gap")),
	}
	for _, row := range rows {
		gap := deficitAheadStyle.Render(fmt.Sprintf("%+7.1f", row.deficit))
		if row.deficit > 0 {
			gap = deficitBehindStyle.Render(fmt.Sprintf("%+7.1f", row.deficit))
		}
		lines = append(lines, fmt.Sprintf("%s %4d %6.1f%% %s",
			systemStyle(row.system).Width(18).Render(row.system.String()), row.count, row.observed, gap))
	}
	lines = append(lines,
		"",
		RenderMetric("Next focus", systemStyle(r.NextFocus).Render(r.NextFocus.String())),
		"",
		mutedStyle.Width(48).Render(s.Text),
	)

	title := cardTitleStyle.Render("Training Balance")
	return cardStyle.Width(56).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m ProgressModel) renderAdvice(r planning.ProgressReport) string {
	lines := []string{
		sectionStyle.Render("Recommendations"),
		bulletList(r.Recommendations),
		"",
		sectionStyle.Render("Adaptations under way"),
		bulletList(r.AdaptationsOccurring),
	}
	title := cardTitleStyle.Render("Coach Says")
	return cardStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// renderChart plots weekly session counts per system. Empty when there
// is nothing to plot.
func (m ProgressModel) renderChart() string {
	weeks := m.data.weeks
	if len(weeks) < 2 {
		return ""
	}

	series := make([][]float64, 3)
	var hasData bool
	for _, w := range weeks {
		series[0] = append(series[0], float64(w.Tally.Aerobic))
		series[1] = append(series[1], float64(w.Tally.Alactic))
		series[2] = append(series[2], float64(w.Tally.Lactic))
		hasData = hasData || w.Total() > 0
	}
	if !hasData {
		return ""
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue, asciigraph.Orange),
		asciigraph.Caption(fmt.Sprintf("sessions per week since %s", weeks[0].Label)),
	)
	legend := fmt.Sprintf("%s  %s  %s",
		systemStyle(planning.Aerobic).Render("aerobic"),
		systemStyle(planning.AnaerobicAlactic).Render("alactic"),
		systemStyle(planning.AnaerobicLactic).Render("lactic"))

	title := cardTitleStyle.Render("Weekly Sessions")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, "", legend))
}

func (m ProgressModel) renderRecent() string {
	title := cardTitleStyle.Render("Recent Sessions")
	if len(m.data.recent) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title,
			"No sessions yet. Log one with 'fitcoach log' or sync Strava."))
	}

	var rows []string
	for _, s := range m.data.recent {
		name := s.Name
		if name == "" {
			name = s.Note
		}
		rows = append(rows, fmt.Sprintf("%-16s %s %-22s %6s  %s",
			humanize.Time(s.PerformedAt),
			systemStyle(s.System).Width(18).Render(s.System.String()),
			truncate(name, 22),
			formatDuration(s.DurationSeconds),
			mutedStyle.Render(s.Source),
		))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n")))
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
