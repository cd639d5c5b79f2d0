// Package screen implements the navigation stack of the terminal: the main
// menu at the bottom, the logs browser above it, focus restoration when a
// frame is shown, and routing of user input to navigation or to the
// typewriter.
package screen

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/robco-termlink/wastelandhub/internal/catalog"
	"github.com/robco-termlink/wastelandhub/internal/model"
	"github.com/robco-termlink/wastelandhub/internal/typewriter"
)

// Main menu controls.
const (
	ControlLogs   = "logs"
	ControlHack   = "hack"
	ControlLogout = "logout"
)

// ControlBack returns from the logs menu.
const ControlBack = "back"

const logControlPrefix = "open-"

const recordTimeout = 5 * time.Second

var (
	// ErrInvalidTransition is returned when an operation is not valid for
	// the active frame.
	ErrInvalidTransition = errors.New("invalid screen transition")
	// ErrCannotPopSentinel is returned when popping the main menu.
	ErrCannotPopSentinel = errors.New("cannot pop the main menu")
)

// Catalog is the read-only log store the logs menu browses.
type Catalog interface {
	Get(key string) string
	Keys() []string
}

// Recorder persists finished reveal sessions.
type Recorder interface {
	Record(ctx context.Context, r model.ReadRecord) error
}

// RecordedMsg reports the result of persisting a read record.
type RecordedMsg struct {
	Record model.ReadRecord
	Err    error
}

// LogControl returns the control identifier of the button opening key.
func LogControl(key string) string {
	return logControlPrefix + key
}

// LogKey extracts the log key from a log button identifier.
func LogKey(control string) (string, bool) {
	if !strings.HasPrefix(control, logControlPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(control, logControlPrefix)
	return key, key != ""
}

// Frame is one entry of the stack.
type Frame struct {
	Kind model.ScreenKind
	// FocusTarget is the control focused each time the frame is shown.
	FocusTarget string
	// Focused is the control holding focus now.
	Focused  string
	Controls []string
	// SessionID is the reveal session owned by a logs frame, zero if none.
	SessionID uint64
}

// Transition is the outcome of handling one event.
type Transition struct {
	Directives []model.Directive
	Cmd        tea.Cmd
	Quit       bool
}

func (t *Transition) emit(d ...model.Directive) {
	t.Directives = append(t.Directives, d...)
}

func (t *Transition) then(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	t.Cmd = tea.Batch(t.Cmd, cmd)
}

// Stack is the process-wide navigation state. It is not safe for concurrent
// use; all calls happen on the Bubble Tea update loop.
type Stack struct {
	frames   []*Frame
	catalog  Catalog
	settings model.Settings
	engine   *typewriter.Engine
	logger   *slog.Logger
	recorder Recorder
	runID    string
	now      func() time.Time

	sessionKeys map[uint64]string
}

// Option configures a Stack.
type Option func(*Stack)

// WithLogger sets the logger for unrecognized actions and rejected transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stack) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder persists finished sessions when auto_save_logs is enabled.
func WithRecorder(r Recorder) Option {
	return func(s *Stack) {
		s.recorder = r
	}
}

// WithRunID tags read records with the identifier of this run.
func WithRunID(id string) Option {
	return func(s *Stack) {
		s.runID = id
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Stack) {
		s.now = now
	}
}

// New returns a stack holding only the main menu.
func New(cat Catalog, settings model.Settings, opts ...Option) *Stack {
	s := &Stack{
		catalog:     cat,
		settings:    settings,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		sessionKeys: map[uint64]string{},
	}
	if s.catalog == nil {
		s.catalog = catalog.New(nil)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = typewriter.New(typewriter.WithClock(s.now))
	s.frames = []*Frame{newMainFrame()}
	return s
}

func newMainFrame() *Frame {
	return &Frame{
		Kind:        model.MainMenu,
		FocusTarget: ControlLogs,
		Controls:    []string{ControlLogs, ControlHack, ControlLogout},
	}
}

func newLogsFrame(keys []string) *Frame {
	f := &Frame{Kind: model.LogsMenu}
	for _, key := range keys {
		f.Controls = append(f.Controls, LogControl(key))
	}
	if len(keys) > 0 {
		f.FocusTarget = LogControl(keys[0])
	}
	f.Controls = append(f.Controls, ControlBack)
	return f
}

// Active returns a copy of the top frame.
func (s *Stack) Active() Frame {
	return *s.active()
}

func (s *Stack) active() *Frame {
	return s.frames[len(s.frames)-1]
}

// Kinds returns the screen kinds from bottom to top.
func (s *Stack) Kinds() []model.ScreenKind {
	kinds := make([]model.ScreenKind, len(s.frames))
	for i, f := range s.frames {
		kinds[i] = f.Kind
	}
	return kinds
}

// Session returns the latest reveal session, or nil.
func (s *Stack) Session() *typewriter.Session {
	return s.engine.Current()
}

// Settings returns the settings snapshot in use.
func (s *Stack) Settings() model.Settings {
	return s.settings
}

// Catalog returns the catalog browsed by the logs menu.
func (s *Stack) Catalog() Catalog {
	return s.catalog
}

// Show renders the active frame as if it had just become visible.
func (s *Stack) Show() Transition {
	var t Transition
	s.resume(s.active(), &t)
	return t
}

// PushLogsMenu opens the logs browser from the main menu.
func (s *Stack) PushLogsMenu() (Transition, error) {
	if s.active().Kind != model.MainMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "push logs menu from %s", s.active().Kind)
	}
	f := newLogsFrame(s.catalog.Keys())
	s.frames = append(s.frames, f)
	var t Transition
	s.resume(f, &t)
	return t, nil
}

// PopToMainMenu closes the logs browser, canceling its reveal first.
func (s *Stack) PopToMainMenu() (Transition, error) {
	top := s.active()
	if len(s.frames) == 1 {
		return Transition{}, ErrCannotPopSentinel
	}
	if top.Kind != model.LogsMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "pop from %s", top.Kind)
	}
	var t Transition
	s.absorb(s.engine.Stop(), &t)
	top.SessionID = 0
	s.frames = s.frames[:len(s.frames)-1]
	s.resume(s.active(), &t)
	return t, nil
}

// resume re-runs the focus policy of f. It runs every time f is shown.
func (s *Stack) resume(f *Frame, t *Transition) {
	t.emit(model.Navigate(f.Kind))
	f.Focused = ""
	if !containsControl(f.Controls, f.FocusTarget) {
		return
	}
	f.Focused = f.FocusTarget
	t.emit(model.Focus(f.FocusTarget))
}

// SelectLog starts revealing the log named by key. Unknown keys reveal the
// catalog fallback text.
func (s *Stack) SelectLog(key string) (Transition, error) {
	f := s.active()
	if f.Kind != model.LogsMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "select log from %s", f.Kind)
	}
	res, err := s.engine.Start(s.catalog.Get(key), s.settings.TypewriterCPS)
	if err != nil {
		return Transition{}, errors.Wrap(err, "start reveal")
	}
	session := s.engine.Current()
	s.sessionKeys[session.ID()] = key
	f.SessionID = session.ID()
	var t Transition
	s.absorb(res, &t)
	return t, nil
}

// ActivateMenuAction dispatches a main menu action.
func (s *Stack) ActivateMenuAction(action string) (Transition, error) {
	f := s.active()
	if f.Kind != model.MainMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "menu action %q from %s", action, f.Kind)
	}
	switch action {
	case ControlLogs:
		return s.PushLogsMenu()
	case ControlLogout:
		return Transition{Quit: true}, nil
	default:
		s.logger.Warn("unrecognized menu action", "action", action, "screen", f.Kind.String())
		return Transition{}, nil
	}
}

// SkipToEnd shows the whole text of the running reveal.
func (s *Stack) SkipToEnd() (Transition, error) {
	if s.active().Kind != model.LogsMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "skip from %s", s.active().Kind)
	}
	var t Transition
	s.absorb(s.engine.SkipToEnd(), &t)
	return t, nil
}

// StopReveal freezes the running reveal where it is.
func (s *Stack) StopReveal() (Transition, error) {
	if s.active().Kind != model.LogsMenu {
		return Transition{}, errors.Wrapf(ErrInvalidTransition, "stop from %s", s.active().Kind)
	}
	var t Transition
	s.absorb(s.engine.Stop(), &t)
	return t, nil
}

// Tick forwards a typewriter tick to the logs frame that owns the session.
func (s *Stack) Tick(msg typewriter.TickMsg) Transition {
	f := s.active()
	if f.Kind != model.LogsMenu || f.SessionID != msg.Session {
		return Transition{}
	}
	var t Transition
	s.absorb(s.engine.Tick(msg), &t)
	return t
}

// Teardown cancels any reveal and drops every frame above the main menu.
// It is the last call before the application exits.
func (s *Stack) Teardown() Transition {
	t := Transition{Quit: true}
	s.absorb(s.engine.Stop(), &t)
	for _, f := range s.frames {
		f.SessionID = 0
	}
	s.frames = s.frames[:1]
	return t
}

func (s *Stack) absorb(res typewriter.Result, t *Transition) {
	t.emit(res.Directives...)
	t.then(res.Cmd)
	for _, sum := range res.Ended {
		t.then(s.recordCmd(sum))
	}
}

func (s *Stack) recordCmd(sum typewriter.Summary) tea.Cmd {
	key, ok := s.sessionKeys[sum.ID]
	delete(s.sessionKeys, sum.ID)
	if !ok || s.recorder == nil || !s.settings.AutoSaveLogs {
		return nil
	}
	rec := model.ReadRecord{
		RunID:     s.runID,
		LogKey:    key,
		StartedAt: sum.StartedAt,
		EndedAt:   s.now(),
		Outcome:   sum.Outcome,
		Revealed:  sum.Revealed,
		Total:     sum.Total,
		CPS:       sum.CPS,
	}
	recorder := s.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		return RecordedMsg{Record: rec, Err: recorder.Record(ctx, rec)}
	}
}

func containsControl(controls []string, id string) bool {
	if id == "" {
		return false
	}
	for _, c := range controls {
		if c == id {
			return true
		}
	}
	return false
}
