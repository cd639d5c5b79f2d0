package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robco-termlink/wastelandhub/internal/catalog"
	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/screen"
	"github.com/robco-termlink/wastelandhub/internal/typewriter"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cat := catalog.New([]catalog.Entry{
		{Key: "COMM_01", Body: "Stock is red."},
		{Key: "DIARY_05", Body: "Day 127"},
	})
	settings := model.DefaultSettings()
	settings.DefaultUser = "overseer"
	m := NewModel(screen.New(cat, settings), nil)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsOnMainMenu(t *testing.T) {
	m := newTestModel(t)
	if m.active != model.MainMenu {
		t.Fatalf("expected main menu, got %s", m.active)
	}
	if m.focused != screen.ControlLogs {
		t.Fatalf("expected logs focused, got %q", m.focused)
	}
	view := m.View()
	for _, want := range []string{"ROBCO INDUSTRIES (TM) TERMLINK PROTOCOL", "WELCOME, OVERSEER", "[ LOGS ]", "[ HACK ]", "[ LOGOUT ]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelRevealFlow(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.active != model.LogsMenu || m.focused != "open-COMM_01" {
		t.Fatalf("expected logs menu focused on COMM_01, got %s %q", m.active, m.focused)
	}
	if view := m.View(); !strings.Contains(view, "AVAILABLE LOGS") || !strings.Contains(view, "[ OPEN DIARY_05 ]") {
		t.Fatalf("logs view missing sidebar:\n%s", view)
	}

	if cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("expected tick command")
	}
	id := m.stack.Session().ID()
	for i := 0; i < 3; i++ {
		m.Update(typewriter.TickMsg{Session: id})
	}
	if m.text != "Sto" {
		t.Fatalf("expected partial text, got %q", m.text)
	}

	press(m, runeKey("s"))
	if m.text != "Stock is red." {
		t.Fatalf("expected full text after skip, got %q", m.text)
	}
	if !strings.Contains(m.View(), "Stock is red.") {
		t.Fatalf("pane missing revealed text")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != model.MainMenu || m.focused != screen.ControlLogs {
		t.Fatalf("expected main menu with logs focused, got %s %q", m.active, m.focused)
	}
}

func TestModelIgnoresStaleTick(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := m.stack.Session().ID()
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if _, cmd := m.Update(typewriter.TickMsg{Session: stale}); cmd != nil {
		t.Fatalf("stale tick scheduled work")
	}
	if m.text != "" {
		t.Fatalf("stale tick changed text: %q", m.text)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	if cmd := press(m, runeKey("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
	if !m.quitting || m.View() != "" {
		t.Fatalf("expected quitting model to render nothing")
	}
}

func TestModelFocusMoves(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.focused != screen.ControlHack {
		t.Fatalf("expected hack focused, got %q", m.focused)
	}
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focused != screen.ControlLogout {
		t.Fatalf("expected focus to wrap to logout, got %q", m.focused)
	}
}
