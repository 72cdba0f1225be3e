package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenPlan Screen = iota
	ScreenSession
	ScreenProgress
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	plan       PlanModel
	session    SessionModel
	progress   ProgressModel
	syncScreen SyncModel
	help       HelpModel

	// Services
	coach     *service.CoachService
	inputs    planning.ProfileInputs
	equipment []string

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates the root model. syncService may be nil when Strava is
// not connected.
func NewApp(coach *service.CoachService, syncService *service.SyncService, inputs planning.ProfileInputs, equipment []string) *App {
	return &App{
		screen:     ScreenPlan,
		coach:      coach,
		inputs:     inputs,
		equipment:  equipment,
		plan:       NewPlanModel(coach, inputs, 0, 0),
		session:    NewSessionModel(coach, equipment),
		progress:   NewProgressModel(coach),
		syncScreen: NewSyncModel(syncService),
		help:       NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.plan.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless in sync mode)
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenPlan
				a.plan = NewPlanModel(a.coach, a.inputs, a.width, a.height)
				return a, a.plan.Init()
			case "2":
				a.screen = ScreenSession
				return a, a.session.Init()
			case "3":
				a.screen = ScreenProgress
				return a, a.progress.Init()
			case "4", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
				// Let 's' fall through to sync screen when already there
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The plan viewport needs every resize, even off-screen.
		m, cmd := a.plan.Update(msg)
		a.plan = m.(PlanModel)
		if a.screen == ScreenPlan {
			return a, cmd
		}

	case SyncCompleteMsg:
		a.status = "Sync finished"
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenPlan:
		var m tea.Model
		m, cmd = a.plan.Update(msg)
		a.plan = m.(PlanModel)
	case ScreenSession:
		var m tea.Model
		m, cmd = a.session.Update(msg)
		a.session = m.(SessionModel)
	case ScreenProgress:
		var m tea.Model
		m, cmd = a.progress.Update(msg)
		a.progress = m.(ProgressModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenPlan:
		content = a.plan.View()
	case ScreenSession:
		content = a.session.View()
	case ScreenProgress:
		content = a.progress.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("fitcoach - adaptive training planner")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Plan", ScreenPlan},
		{"2", "Session", ScreenSession},
		{"3", "Progress", ScreenProgress},
		{"4", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct{}
