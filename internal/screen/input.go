package screen

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

// InputKind tells buttons from keys. Both are handled as named actions.
type InputKind int

const (
	InputButton InputKind = iota
	InputKey
)

// Input is a discrete user event.
type Input struct {
	Kind InputKind
	Name string
}

// ButtonActivated is a press of the control with the given identifier.
func ButtonActivated(id string) Input {
	return Input{Kind: InputButton, Name: id}
}

// KeyPressed is a key press named the way Bubble Tea names keys.
func KeyPressed(name string) Input {
	return Input{Kind: InputKey, Name: name}
}

// Key names routed by Handle.
const (
	KeyQuit      = "q"
	KeyInterrupt = "ctrl+c"
	KeyBack      = "esc"
	KeyActivate  = "enter"
	KeySkip      = "s"
	KeySpace     = " "
	KeyStop      = "x"
)

// Key groups shared by routing and the help footer.
var (
	QuitKeys = []string{KeyQuit, KeyInterrupt}
	PrevKeys = []string{"up", "k", "shift+tab"}
	NextKeys = []string{"down", "j", "tab"}
	SkipKeys = []string{KeySkip, KeySpace}
)

// Handle routes an input event to the active frame.
func (s *Stack) Handle(in Input) Transition {
	if in.Kind == InputKey {
		switch {
		case slices.Contains(QuitKeys, in.Name):
			return s.Teardown()
		case slices.Contains(PrevKeys, in.Name):
			return s.MoveFocus(-1)
		case slices.Contains(NextKeys, in.Name):
			return s.MoveFocus(1)
		case in.Name == KeyActivate:
			focused := s.active().Focused
			if focused == "" {
				return Transition{}
			}
			return s.Handle(ButtonActivated(focused))
		}
	}

	var (
		t   Transition
		err error
	)
	switch s.active().Kind {
	case model.MainMenu:
		if in.Kind == InputKey {
			s.logger.Debug("unbound key", "key", in.Name, "screen", model.MainMenu.String())
			return Transition{}
		}
		t, err = s.ActivateMenuAction(in.Name)
	case model.LogsMenu:
		t, err = s.handleLogs(in)
	}
	if err != nil {
		s.logger.Warn("rejected input", "input", in.Name, "screen", s.active().Kind.String(), "error", err)
		return Transition{}
	}
	return t
}

func (s *Stack) handleLogs(in Input) (Transition, error) {
	if in.Kind == InputKey {
		switch {
		case in.Name == KeyBack:
			return s.PopToMainMenu()
		case slices.Contains(SkipKeys, in.Name):
			return s.SkipToEnd()
		case in.Name == KeyStop:
			return s.StopReveal()
		}
		s.logger.Debug("unbound key", "key", in.Name, "screen", model.LogsMenu.String())
		return Transition{}, nil
	}
	if in.Name == ControlBack {
		return s.PopToMainMenu()
	}
	key, ok := LogKey(in.Name)
	if !ok {
		s.logger.Warn("unrecognized logs action", "action", in.Name)
		return Transition{}, nil
	}
	var t Transition
	if f := s.active(); f.Focused != in.Name && containsControl(f.Controls, in.Name) {
		f.Focused = in.Name
		t.emit(model.Focus(in.Name))
	}
	sel, err := s.SelectLog(key)
	if err != nil {
		return Transition{}, errors.Wrapf(err, "select %s", key)
	}
	t.emit(sel.Directives...)
	t.then(sel.Cmd)
	return t, nil
}

// MoveFocus moves focus delta controls forward, wrapping around.
func (s *Stack) MoveFocus(delta int) Transition {
	f := s.active()
	n := len(f.Controls)
	if n == 0 || delta == 0 {
		return Transition{}
	}
	idx := -1
	for i, c := range f.Controls {
		if c == f.Focused {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	f.Focused = f.Controls[idx]
	return Transition{Directives: []model.Directive{model.Focus(f.Focused)}}
}
