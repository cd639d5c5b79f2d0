// Package model defines shared data structures.
package model

import "time"

// Settings holds the persisted user preferences.
type Settings struct {
	TypewriterCPS      int    `json:"typewriter_cps"`
	TerminalDifficulty int    `json:"terminal_difficulty"`
	DefaultUser        string `json:"default_user"`
	Theme              string `json:"theme"`
	EnableSound        bool   `json:"enable_sound"`
	AutoSaveLogs       bool   `json:"auto_save_logs"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		TypewriterCPS:      20,
		TerminalDifficulty: 50,
		DefaultUser:        "guest",
		Theme:              "robco_green",
		EnableSound:        false,
		AutoSaveLogs:       true,
	}
}

// ScreenKind identifies a screen in the navigation stack.
type ScreenKind int

const (
	MainMenu ScreenKind = iota
	LogsMenu
)

func (k ScreenKind) String() string {
	switch k {
	case MainMenu:
		return "main_menu"
	case LogsMenu:
		return "logs_menu"
	default:
		return "unknown"
	}
}

// DirectiveKind enumerates what the core asks the renderer to do.
type DirectiveKind int

const (
	// DirectiveReplaceText replaces the visible text with Text.
	DirectiveReplaceText DirectiveKind = iota
	// DirectiveFocus moves input focus to Control.
	DirectiveFocus
	// DirectiveNavigate shows Screen.
	DirectiveNavigate
)

// Directive is one instruction emitted across the rendering boundary.
type Directive struct {
	Kind    DirectiveKind
	Text    string
	Control string
	Screen  ScreenKind
}

// ReplaceText builds a DirectiveReplaceText.
func ReplaceText(text string) Directive {
	return Directive{Kind: DirectiveReplaceText, Text: text}
}

// Focus builds a DirectiveFocus.
func Focus(control string) Directive {
	return Directive{Kind: DirectiveFocus, Control: control}
}

// Navigate builds a DirectiveNavigate.
func Navigate(screen ScreenKind) Directive {
	return Directive{Kind: DirectiveNavigate, Screen: screen}
}

// Reveal outcomes stored with read records.
const (
	OutcomeCompleted  = "completed"
	OutcomeSkipped    = "skipped"
	OutcomeCanceled   = "canceled"
	OutcomeSuperseded = "superseded"
)

// ReadRecord captures one finished reveal of a log entry.
type ReadRecord struct {
	RunID     string
	LogKey    string
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
	Revealed  int
	Total     int
	CPS       int
}

// HistoryFilter narrows history listings.
type HistoryFilter struct {
	LogKey string
	Last   int
}
