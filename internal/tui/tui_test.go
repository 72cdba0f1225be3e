package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fitcoach/internal/planning"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "-"},
		{59, "0m"},
		{45 * 60, "45m"},
		{90 * 60, "1h 30m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Morning Run", 20); got != "Morning Run" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	if got := truncate("A very long activity name", 10); got != "A very ..." {
		t.Errorf("truncate() = %q, want %q", got, "A very ...")
	}
}

func TestHumanizeIDs(t *testing.T) {
	got := humanizeIDs([]string{"box_jumps", "sprint"})
	if got[0] != "box jumps" || got[1] != "sprint" {
		t.Errorf("humanizeIDs() = %v", got)
	}
}

func TestApp_Navigation(t *testing.T) {
	a := NewApp(nil, nil, planning.ProfileInputs{}, nil)

	steps := []struct {
		key  tea.KeyMsg
		want Screen
	}{
		{runeKey("2"), ScreenSession},
		{runeKey("3"), ScreenProgress},
		{runeKey("?"), ScreenHelp},
		{tea.KeyMsg{Type: tea.KeyEsc}, ScreenProgress},
		{runeKey("s"), ScreenSync},
	}
	for _, s := range steps {
		a.Update(s.key)
		if a.screen != s.want {
			t.Fatalf("after %q screen = %d, want %d", s.key.String(), a.screen, s.want)
		}
	}
}

func TestSyncModel_NotConnected(t *testing.T) {
	m := NewSyncModel(nil)
	next, cmd := m.Update(runeKey("s"))
	if cmd != nil || next.(SyncModel).syncing {
		t.Error("sync started without a Strava connection")
	}
	if !strings.Contains(m.View(), "not connected") {
		t.Errorf("View() = %q, want a not-connected hint", m.View())
	}
}

func TestSessionModel_CyclesSystems(t *testing.T) {
	m := NewSessionModel(nil, nil)
	m.loading = false

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(SessionModel)
	if cmd == nil || m.systems[m.cursor] != planning.AnaerobicAlactic {
		t.Errorf("right arrow selected %s, want anaerobic-alactic", m.systems[m.cursor])
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.(SessionModel).Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(SessionModel)
	if m.systems[m.cursor] != planning.Mixed {
		t.Errorf("wrapping left selected %s, want mixed", m.systems[m.cursor])
	}
}
