// Package typewriter reveals a text buffer one character at a time.
//
// The engine is driven by Bubble Tea: Start returns a command that delivers a
// TickMsg after the per-character delay, and every accepted tick returns the
// command for the next one. A tick is accepted only when it names the current
// session and that session is still running, so stopping or restarting
// invalidates any tick already in flight before the call returns.
package typewriter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

// ErrInvalidRate is returned by Start when the rate is not positive.
var ErrInvalidRate = errors.New("characters per second must be > 0")

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// TickMsg advances the session it names by one character.
type TickMsg struct {
	Session uint64
}

// Session is one run of the reveal animation.
type Session struct {
	id        uint64
	runes     []rune
	revealed  int
	cps       int
	delay     time.Duration
	status    Status
	startedAt time.Time
}

// ID returns the session identifier carried by its ticks.
func (s *Session) ID() uint64 { return s.id }

// Text returns the full text being revealed.
func (s *Session) Text() string { return string(s.runes) }

// Visible returns the revealed prefix.
func (s *Session) Visible() string { return string(s.runes[:s.revealed]) }

// Revealed returns the number of visible characters.
func (s *Session) Revealed() int { return s.revealed }

// Len returns the number of characters in the full text.
func (s *Session) Len() int { return len(s.runes) }

// CPS returns the rate the session was started with.
func (s *Session) CPS() int { return s.cps }

// Delay returns the time between ticks.
func (s *Session) Delay() time.Duration { return s.delay }

// Status returns the session state.
func (s *Session) Status() Status { return s.status }

// StartedAt returns when Start created the session.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Summary describes a session that reached a terminal state.
type Summary struct {
	ID        uint64
	Outcome   string
	Revealed  int
	Total     int
	CPS       int
	StartedAt time.Time
}

// Result is what a single engine call produced.
type Result struct {
	Directives []model.Directive
	Cmd        tea.Cmd
	Ended      []Summary
}

// Engine owns at most one session at a time.
type Engine struct {
	current *Session
	lastID  uint64
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the latest session, or nil before the first Start.
func (e *Engine) Current() *Session {
	return e.current
}

// Status returns the state of the latest session.
func (e *Engine) Status() Status {
	if e.current == nil {
		return StatusIdle
	}
	return e.current.status
}

// Visible returns the text currently on screen.
func (e *Engine) Visible() string {
	if e.current == nil {
		return ""
	}
	return e.current.Visible()
}

// Start replaces any running session with a new one revealing text at cps
// characters per second.
func (e *Engine) Start(text string, cps int) (Result, error) {
	if cps <= 0 {
		return Result{}, ErrInvalidRate
	}
	var res Result
	if sum, ok := e.cancel(model.OutcomeSuperseded); ok {
		res.Ended = append(res.Ended, sum)
	}
	e.lastID++
	s := &Session{
		id:        e.lastID,
		runes:     []rune(text),
		cps:       cps,
		delay:     time.Second / time.Duration(cps),
		status:    StatusRunning,
		startedAt: e.now(),
	}
	e.current = s
	res.Directives = append(res.Directives, model.ReplaceText(""))
	if len(s.runes) == 0 {
		s.status = StatusCompleted
		res.Ended = append(res.Ended, summarize(s, model.OutcomeCompleted))
		return res, nil
	}
	res.Cmd = tickCmd(s)
	return res, nil
}

// Stop cancels the running session. It is safe to call at any time.
func (e *Engine) Stop() Result {
	sum, ok := e.cancel(model.OutcomeCanceled)
	if !ok {
		return Result{}
	}
	return Result{Ended: []Summary{sum}}
}

// SkipToEnd reveals the rest of the running session at once.
func (e *Engine) SkipToEnd() Result {
	s := e.current
	if s == nil || s.status != StatusRunning {
		return Result{}
	}
	s.revealed = len(s.runes)
	s.status = StatusCompleted
	return Result{
		Directives: []model.Directive{model.ReplaceText(s.Visible())},
		Ended:      []Summary{summarize(s, model.OutcomeSkipped)},
	}
}

// Tick handles a scheduled tick. Ticks for any session other than the
// running one are dropped.
func (e *Engine) Tick(msg TickMsg) Result {
	s := e.current
	if s == nil || s.id != msg.Session || s.status != StatusRunning {
		return Result{}
	}
	s.revealed++
	res := Result{Directives: []model.Directive{model.ReplaceText(s.Visible())}}
	if s.revealed == len(s.runes) {
		s.status = StatusCompleted
		res.Ended = []Summary{summarize(s, model.OutcomeCompleted)}
		return res
	}
	res.Cmd = tickCmd(s)
	return res
}

func (e *Engine) cancel(outcome string) (Summary, bool) {
	s := e.current
	if s == nil || s.status != StatusRunning {
		return Summary{}, false
	}
	s.status = StatusCanceled
	return summarize(s, outcome), true
}

func tickCmd(s *Session) tea.Cmd {
	id := s.id
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return TickMsg{Session: id}
	})
}

func summarize(s *Session, outcome string) Summary {
	return Summary{
		ID:        s.id,
		Outcome:   outcome,
		Revealed:  s.revealed,
		Total:     len(s.runes),
		CPS:       s.cps,
		StartedAt: s.startedAt,
	}
}
