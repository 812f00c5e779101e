package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Signal is the ambient color-scheme preference reported by the environment.
type Signal string

const (
	SignalDark  Signal = "dark"
	SignalLight Signal = "light"
)

// EnvSignal is the environment variable that overrides signal detection.
const EnvSignal = "INKWELL_THEME"

// Theme is an immutable foreground/background pair. Themes are never
// mutated at runtime; they are matched against the ambient signal on every
// style computation.
type Theme struct {
	Name       string `toml:"-"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// Palette holds the accent colors shared by all themes.
type Palette struct {
	Pop                  string
	LinkHover            string
	InlineCodeBackground string
	InlineCodeBorder     string
}

// The two built-in themes.
var (
	Dark = Theme{
		Name:       "dark",
		Foreground: "#fafafa",
		Background: "#1c242e",
	}
	Light = Theme{
		Name:       "light",
		Foreground: "#1c242e",
		Background: "#fafafa",
	}
)

// Accents is the theme-independent accent palette.
var Accents = Palette{
	Pop:                  "#fa7268",
	LinkHover:            "#c6797e",
	InlineCodeBackground: "#83758c26",
	InlineCodeBorder:     "#83758c59",
}

// DefaultSignal is used when the environment expresses no preference.
// The upstream stylesheet left this case to the rendering environment;
// inkwell pins it to light so behavior is the same everywhere.
const DefaultSignal = SignalLight

// Resolve maps the ambient signal to its theme. The mapping is total:
// "dark" selects the dark theme and anything else, including an absent
// signal, selects the light theme.
func Resolve(signal Signal) Theme {
	if normalizeSignal(signal) == SignalDark {
		return Dark
	}
	return Light
}

// DetectSignal determines the ambient signal for the current process.
// Resolution order:
//  1. INKWELL_THEME environment variable (dark|light)
//  2. terminal background color query
//  3. DefaultSignal
func DetectSignal() Signal {
	if v := normalizeSignal(Signal(os.Getenv(EnvSignal))); v != "" {
		return v
	}
	if lipgloss.HasDarkBackground() {
		return SignalDark
	}
	return DefaultSignal
}

// normalizeSignal trims and lowercases a signal, returning "" for anything
// other than the two recognized values.
func normalizeSignal(s Signal) Signal {
	switch Signal(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SignalDark:
		return SignalDark
	case SignalLight:
		return SignalLight
	}
	return ""
}

// Builtin returns the built-in theme with the given name.
func Builtin(name string) (Theme, bool) {
	switch name {
	case Dark.Name:
		return Dark, true
	case Light.Name:
		return Light, true
	}
	return Theme{}, false
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	return []string{Dark.Name, Light.Name}
}

// PopColor returns the Pop accent as a lipgloss color.
func (p Palette) PopColor() lipgloss.Color {
	return lipgloss.Color(p.Pop)
}

// LinkHoverColor returns the LinkHover accent as a lipgloss color.
func (p Palette) LinkHoverColor() lipgloss.Color {
	return lipgloss.Color(p.LinkHover)
}

// ForegroundColor returns the theme foreground as a lipgloss color.
func (t Theme) ForegroundColor() lipgloss.Color {
	return lipgloss.Color(t.Foreground)
}

// BackgroundColor returns the theme background as a lipgloss color.
func (t Theme) BackgroundColor() lipgloss.Color {
	return lipgloss.Color(t.Background)
}
