// Package theme defines the terminal color palettes.
package theme

import (
	"sort"
	"strings"
)

// DefaultName is used when the configured theme is unknown.
const DefaultName = "robco_green"

// Theme is a phosphor palette.
type Theme struct {
	Name string

	Foreground string // body text
	Dim        string // dividers, help text
	Accent     string // titles, focused border
	Background string // focused button fill
	Alert      string // logout button, errors
}

var registry = map[string]Theme{
	"robco_green": {
		Name:       "robco_green",
		Foreground: "#33FF66",
		Dim:        "#1A7F33",
		Accent:     "#66FF99",
		Background: "#0B3D1A",
		Alert:      "#FF5F56",
	},
	"amber": {
		Name:       "amber",
		Foreground: "#FFB000",
		Dim:        "#7F5800",
		Accent:     "#FFCC4D",
		Background: "#3D2A00",
		Alert:      "#FF5F56",
	},
	"white": {
		Name:       "white",
		Foreground: "#E8E8E8",
		Dim:        "#7A7A7A",
		Accent:     "#FFFFFF",
		Background: "#3A3A3A",
		Alert:      "#FF4D4F",
	},
	"blue": {
		Name:       "blue",
		Foreground: "#5FD7FF",
		Dim:        "#2A6F87",
		Accent:     "#AFEFFF",
		Background: "#0B2A3D",
		Alert:      "#FF5F56",
	},
}

// Get returns a named theme, falling back to robco_green if not found.
func Get(name string) Theme {
	if t, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return registry[DefaultName]
}

// Has reports whether name is a known theme.
func Has(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
