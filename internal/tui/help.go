package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/planning"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

type keyHelp struct {
	key  string
	desc string
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{
		cardTitleStyle.Render("Keyboard Shortcuts"),
		renderKeySection("Navigation", []keyHelp{
			{"1", "Plan"},
			{"2", "Session"},
			{"3", "Progress"},
			{"4 or s", "Sync screen"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		renderKeySection("Plan", []keyHelp{
			{"j/k, pgup/pgdn", "Scroll"},
			{"r", "Recompute from the config profile"},
		}),
		renderKeySection("Session", []keyHelp{
			{"← / →", "Previous / next energy system"},
			{"n", "Suggested next session"},
		}),
		renderKeySection("Progress", []keyHelp{
			{"r", "Refresh"},
		}),
		renderKeySection("Sync Screen", []keyHelp{
			{"s / enter", "Start sync"},
		}),
		renderSystemsHelp(),
		renderLevelsHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderKeySection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func renderSystemsHelp() string {
	lines := []string{"", sectionStyle.Render("Energy Systems"), ""}

	systems := []struct {
		system planning.EnergySystem
		desc   string
	}{
		{planning.Aerobic, "Long, steady work. Builds the base every other system recovers on."},
		{planning.AnaerobicAlactic, "Maximal efforts under ~10s with full rest. Power and speed."},
		{planning.AnaerobicLactic, "Hard efforts of 30s to 2min. Tolerance to burning legs."},
		{planning.Mixed, "Sessions that hit several systems, e.g. circuits or games."},
	}
	for _, s := range systems {
		lines = append(lines, "  "+systemStyle(s.system).Render(s.system.String()))
		lines = append(lines, "  "+mutedStyle.Render(s.desc))
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderLevelsHelp() string {
	names := make([]string, 0, 5)
	for _, l := range planning.ExperienceLevels() {
		names = append(names, l.String())
	}
	return strings.Join([]string{
		sectionStyle.Render("Experience Levels"),
		"  " + mutedStyle.Render(strings.Join(names, ", ")),
		"  " + mutedStyle.Render("Set experience_level in config.toml, or leave it empty to derive it."),
	}, "\n")
}
