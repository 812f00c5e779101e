// Package theme provides the color themes and stylesheet generation for
// inkwell. A theme is a fixed foreground/background pair selected from the
// ambient color-scheme signal; accent colors are shared across all themes.
package theme
