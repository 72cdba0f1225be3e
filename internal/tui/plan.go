package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// PlanModel shows the current plan bundle
type PlanModel struct {
	coach    *service.CoachService
	inputs   planning.ProfileInputs
	record   *store.BundleRecord
	viewport viewport.Model
	loading  bool
	err      error
	ready    bool
}

// NewPlanModel creates a plan screen. inputs are what the plan should be
// derived from; a stale stored plan is recomputed on load.
func NewPlanModel(coach *service.CoachService, inputs planning.ProfileInputs, width, height int) PlanModel {
	m := PlanModel{coach: coach, inputs: inputs, loading: true}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init loads the plan
func (m PlanModel) Init() tea.Cmd {
	return m.loadPlan
}

type planLoadedMsg struct {
	record *store.BundleRecord
	err    error
}

func (m PlanModel) loadPlan() tea.Msg {
	rec, err := m.coach.Ensure(context.Background(), m.inputs)
	return planLoadedMsg{record: rec, err: err}
}

func (m PlanModel) recompute() tea.Msg {
	rec, err := m.coach.Recompute(context.Background(), m.inputs)
	return planLoadedMsg{record: rec, err: err}
}

// Update handles messages
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.record = msg.record
		}
		if m.ready && m.record != nil {
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoTop()
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.record != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.recompute
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the plan screen
func (m PlanModel) View() string {
	if m.loading {
		return "\n  Building your plan..."
	}
	if m.err != nil && m.record == nil {
		if errors.Is(m.err, store.ErrNoBundle) {
			return "\n  No plan yet. Fill in [profile] in the config file and press 'r'."
		}
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: recompute")
	if m.err != nil {
		footer = errorStyle.Render(fmt.Sprintf("  Recompute failed: %v", m.err)) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m PlanModel) renderContent() string {
	b := m.record.Bundle
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderCoachCard(b), "  ", m.renderProfileCard(b.Profile)),
		m.renderMacrocycle(b.Plan),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderMesocycle(b.Plan.CurrentMesocycle), "  ", m.renderWeek(b.Plan)),
		m.renderProgression(b.Plan.Progression),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PlanModel) renderCoachCard(b planning.PlanBundle) string {
	lines := []string{
		RenderMetric("Level", b.Level.String()),
		RenderMetric("Coach", b.Persona.Persona.String()),
		RenderMetric("Safety", b.Persona.SafetyPriority),
		RenderMetric("Progression", b.Persona.ProgressionRate),
		"",
		mutedStyle.Width(44).Render(b.Persona.Reasoning),
		"",
		mutedStyle.Render("computed " + humanize.Time(b.ComputedAt)),
	}
	title := cardTitleStyle.Render("Your Coach")
	return cardStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PlanModel) renderProfileCard(p planning.EnergySystemProfile) string {
	dist := []struct {
		system planning.EnergySystem
		label  string
		pct    float64
	}{
		{planning.Aerobic, "Aerobic", p.Distribution.Aerobic},
		{planning.AnaerobicAlactic, "Alactic", p.Distribution.Alactic},
		{planning.AnaerobicLactic, "Lactic", p.Distribution.Lactic},
	}

	lines := []string{
		RenderMetric("Dominant", systemStyle(p.Dominant).Render(p.Dominant.String())),
	}
	if p.Secondary != nil {
		lines = append(lines, RenderMetric("Secondary", systemStyle(*p.Secondary).Render(p.Secondary.String())))
	}
	lines = append(lines, RenderMetric("Category", string(p.Demands.Category)), "")

	for _, d := range dist {
		bar := RenderProgressBar(d.pct/100, 20, systemColors[d.system])
		lines = append(lines, fmt.Sprintf("%-8s %s %5.1f%%", d.label, bar, d.pct))
	}
	lines = append(lines, fmt.Sprintf("%-8s %s %5.1f%%", "Recovery",
		RenderProgressBar(p.Distribution.Recovery/100, 20, mutedColor), p.Distribution.Recovery))

	title := cardTitleStyle.Render("Energy Systems")
	return cardStyle.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PlanModel) renderMacrocycle(p planning.PeriodizationPlan) string {
	macro := p.Macrocycle

	var blocks []string
	for i, blk := range p.Schedule {
		label := fmt.Sprintf("%s wk %d-%d", blk.Phase, blk.StartWeek, blk.StartWeek+blk.Weeks-1)
		if i == 0 {
			label = navActiveStyle.Render("▶ " + label)
		} else {
			label = mutedStyle.Render(label)
		}
		blocks = append(blocks, label)
	}

	header := fmt.Sprintf("%d months, primary system %s", macro.DurationMonths,
		systemStyle(macro.PrimarySystem).Render(macro.PrimarySystem.String()))
	if macro.GoalDate != nil {
		header += mutedStyle.Render(fmt.Sprintf("  (goal %s, %s)", macro.GoalDate.Format("Jan 2 2006"), humanize.Time(*macro.GoalDate)))
	}

	lines := []string{
		header,
		"",
		strings.Join(blocks, "  →  "),
		"",
		mutedStyle.Render("Next phase change " + humanize.Time(p.NextPhaseTransition) +
			" (" + p.NextPhaseTransition.Format("Mon Jan 2") + ")"),
		"",
		bulletList(macro.AdaptationNotes),
	}

	title := cardTitleStyle.Render("Season")
	return cardStyle.Width(100).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PlanModel) renderMesocycle(meso planning.MesocyclePlan) string {
	in := meso.Intensity
	lines := []string{
		RenderMetric("Phase", meso.Phase.String()),
		RenderMetric("Block length", fmt.Sprintf("%d weeks", meso.DurationWeeks)),
		"",
		sectionStyle.Render("Focus"),
		bulletList(meso.FocusAreas),
		"",
		sectionStyle.Render("Intensity mix"),
		fmt.Sprintf("  recovery %d%%  base %d%%  tempo %d%%  VO2 %d%%  power %d%%",
			in.Recovery, in.AerobicBase, in.Tempo, in.VO2, in.Neuromuscular),
		"",
		sectionStyle.Render("Overload"),
		bulletList(meso.OverloadVariables),
		"",
		sectionStyle.Render("Recovery"),
		bulletList(meso.RecoveryProtocols),
	}

	title := cardTitleStyle.Render("Current Block")
	return cardStyle.Width(56).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PlanModel) renderWeek(p planning.PeriodizationPlan) string {
	micro := p.CurrentMicrocycle

	var lines []string
	for i, day := range micro.Pattern {
		style := mutedStyle
		switch day {
		case planning.DayTraining:
			style = successStyle
		case planning.DayActiveRecovery, planning.DayCrossTraining:
			style = warningStyle
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", weekdays[i], style.Render(strings.ReplaceAll(string(day), "_", " "))))
	}

	v := micro.Volume
	lines = append(lines,
		"",
		RenderMetric("Training days", fmt.Sprintf("%d / 7", micro.TrainingDays)),
		RenderMetric("Weekly increase", fmt.Sprintf("%d%%", v.WeeklyIncreasePct)),
		RenderMetric("Deload every", fmt.Sprintf("%d weeks", v.DeloadEveryWeeks)),
		RenderMetric("Max hard weeks", fmt.Sprintf("%d", v.MaxConsecutiveHighWeeks)),
	)

	title := cardTitleStyle.Render("This Week")
	return cardStyle.Width(42).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m PlanModel) renderProgression(s planning.ProgressionStrategy) string {
	lines := []string{
		RenderMetric("Rate", s.Rate),
		RenderMetric("Deload", fmt.Sprintf("every %d weeks", s.DeloadFrequency)),
		"",
		sectionStyle.Render("Progress by"),
		bulletList(s.PrimaryVariables),
		"",
		sectionStyle.Render("Avoid plateaus"),
		bulletList(s.PlateauPrevention),
	}
	title := cardTitleStyle.Render("Progression")
	return cardStyle.Width(100).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
