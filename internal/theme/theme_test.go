package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Dark(t *testing.T) {
	got := Resolve(SignalDark)
	assert.Equal(t, "#1c242e", got.Background)
	assert.Equal(t, "#fafafa", got.Foreground)
}

func TestResolve_Light(t *testing.T) {
	got := Resolve(SignalLight)
	assert.Equal(t, "#fafafa", got.Background)
	assert.Equal(t, "#1c242e", got.Foreground)
}

func TestResolve_AbsentSignalDefaultsToLight(t *testing.T) {
	assert.Equal(t, Light, Resolve(""))
	assert.Equal(t, Light, Resolve("no-preference"))
}

func TestResolve_Idempotent(t *testing.T) {
	for _, signal := range []Signal{SignalDark, SignalLight, ""} {
		first := Resolve(signal)
		second := Resolve(signal)
		assert.Equal(t, first, second, "signal %q", signal)
	}
}

func TestResolve_NormalizesInput(t *testing.T) {
	assert.Equal(t, Dark, Resolve("  DARK "))
	assert.Equal(t, Light, Resolve("Light"))
}

func TestResolve_FlipsFully(t *testing.T) {
	dark := Resolve(SignalDark)
	light := Resolve(SignalLight)

	// A signal change swaps both tokens; there is no mixed state.
	assert.Equal(t, dark.Foreground, light.Background)
	assert.Equal(t, dark.Background, light.Foreground)
}

func TestAccents_ThemeIndependent(t *testing.T) {
	// The accent palette is package-level state shared by both themes:
	// resolving either theme must not touch it.
	before := Accents
	_ = Resolve(SignalDark)
	_ = Resolve(SignalLight)
	assert.Equal(t, before, Accents)

	assert.NotEmpty(t, Accents.Pop)
	assert.NotEmpty(t, Accents.LinkHover)
	assert.NotEmpty(t, Accents.InlineCodeBackground)
	assert.NotEmpty(t, Accents.InlineCodeBorder)
}

func TestBuiltin(t *testing.T) {
	dark, ok := Builtin("dark")
	assert.True(t, ok)
	assert.Equal(t, Dark, dark)

	light, ok := Builtin("light")
	assert.True(t, ok)
	assert.Equal(t, Light, light)

	_, ok = Builtin("solarized")
	assert.False(t, ok)
}

func TestDetectSignal_EnvOverride(t *testing.T) {
	t.Setenv(EnvSignal, "dark")
	assert.Equal(t, SignalDark, DetectSignal())

	t.Setenv(EnvSignal, "light")
	assert.Equal(t, SignalLight, DetectSignal())
}
