// Package tui provides the Bubble Tea terminal interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/screen"
	"github.com/robco-termlink/wastelandhub/internal/theme"
	"github.com/robco-termlink/wastelandhub/internal/typewriter"
)

const (
	titleText    = ">> ROBCO INDUSTRIES (TM) TERMLINK PROTOCOL <<"
	logsHeading  = ">> AVAILABLE LOGS <<"
	dividerWidth = 50

	sidebarWidth = 24
	minPaneWidth = 20
	minPaneRows  = 5
	chromeRows   = 10
)

var mainLabels = map[string]string{
	screen.ControlLogs:   "LOGS",
	screen.ControlHack:   "HACK",
	screen.ControlLogout: "LOGOUT",
}

// Model implements the Bubble Tea terminal UI on top of a screen stack.
type Model struct {
	stack  *screen.Stack
	logger *slog.Logger
	zones  *zone.Manager
	styles styles
	keys   keyMap
	help   help.Model
	pane   viewport.Model

	width  int
	height int

	// Render state driven by directives.
	active   model.ScreenKind
	focused  string
	text     string
	quitting bool
}

// NewModel constructs the terminal UI. A nil logger discards.
func NewModel(stack *screen.Stack, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	st := newStyles(theme.Get(stack.Settings().Theme))
	h := help.New()
	h.Styles = st.helpStyles()
	m := &Model{
		stack:  stack,
		logger: logger,
		zones:  zone.New(),
		styles: st,
		keys:   defaultKeyMap(),
		help:   h,
		pane:   viewport.New(dividerWidth, minPaneRows*2),
	}
	m.apply(stack.Show())
	return m
}

// Close releases the mouse zone tracker.
func (m *Model) Close() {
	m.zones.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m, m.apply(m.stack.Handle(screen.KeyPressed(msg.String())))
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, ok := m.clicked(msg); ok {
			return m, m.apply(m.stack.Handle(screen.ButtonActivated(id)))
		}
		return m, nil
	case typewriter.TickMsg:
		return m, m.apply(m.stack.Tick(msg))
	case screen.RecordedMsg:
		if msg.Err != nil {
			m.logger.Warn("record read", "log_key", msg.Record.LogKey, "error", msg.Err)
		} else {
			m.logger.Debug("read recorded", "log_key", msg.Record.LogKey, "outcome", msg.Record.Outcome)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) clicked(msg tea.MouseMsg) (string, bool) {
	for _, id := range m.stack.Active().Controls {
		if zi := m.zones.Get(id); zi != nil && zi.InBounds(msg) {
			return id, true
		}
	}
	return "", false
}

// apply folds a transition into the render state and returns the command
// the program should run next.
func (m *Model) apply(t screen.Transition) tea.Cmd {
	for _, d := range t.Directives {
		switch d.Kind {
		case model.DirectiveNavigate:
			m.active = d.Screen
			m.focused = ""
			if d.Screen == model.LogsMenu {
				m.setText("")
			}
		case model.DirectiveFocus:
			m.focused = d.Control
		case model.DirectiveReplaceText:
			m.setText(d.Text)
		}
	}
	if t.Quit {
		m.quitting = true
		return tea.Sequence(t.Cmd, tea.Quit)
	}
	return t.Cmd
}

func (m *Model) setText(text string) {
	m.text = text
	m.pane.SetContent(wrapText(text, m.pane.Width))
	m.pane.GotoBottom()
}

func (m *Model) resize() {
	w := m.width - sidebarWidth - 6
	if w < minPaneWidth {
		w = minPaneWidth
	}
	h := m.height - chromeRows
	if h < minPaneRows {
		h = minPaneRows
	}
	m.pane.Width = w
	m.pane.Height = h
	m.help.Width = m.width
	m.setText(m.text)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch m.active {
	case model.LogsMenu:
		body = m.renderLogs()
	default:
		body = m.renderMain()
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.renderHeader(),
		"",
		body,
		"",
		m.help.ShortHelpView(m.keys.bindings(m.active)),
	)
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return m.zones.Scan(content)
}

func (m *Model) renderHeader() string {
	user := strings.ToUpper(m.stack.Settings().DefaultUser)
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render(titleText),
		m.styles.text.Render(fmt.Sprintf("WELCOME, %s", user)),
		m.styles.dim.Render(strings.Repeat("=", dividerWidth)),
	)
}

func (m *Model) renderMain() string {
	controls := m.stack.Active().Controls
	buttons := make([]string, 0, len(controls))
	for _, id := range controls {
		label, ok := mainLabels[id]
		if !ok {
			label = strings.ToUpper(id)
		}
		buttons = append(buttons, m.button(id, label))
	}
	return lipgloss.JoinVertical(lipgloss.Center, buttons...)
}

func (m *Model) renderLogs() string {
	rows := []string{m.styles.title.Render(logsHeading), ""}
	for _, id := range m.stack.Active().Controls {
		label := "BACK"
		if key, ok := screen.LogKey(id); ok {
			label = "OPEN " + key
		}
		rows = append(rows, m.button(id, label))
	}
	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	pane := m.styles.pane.Render(m.pane.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)
}

func (m *Model) button(id, label string) string {
	style := m.styles.button
	switch {
	case id == m.focused:
		style = m.styles.focused
	case id == screen.ControlLogout:
		style = m.styles.alert
	}
	return m.zones.Mark(id, style.Render("[ "+label+" ]"))
}
