package theme

import (
	"fmt"
	"strings"
)

// Stylesheet renders the element-category rules for a single theme.
// The rule set is fixed: page background and body text come from the theme,
// secondary headings and blockquote borders use the Pop accent, figure
// captions use the LinkHover accent, and inline code gets the shared
// background/border pair.
func Stylesheet(t Theme) string {
	var b strings.Builder
	writeRules(&b, t)
	return b.String()
}

// AdaptiveStylesheet renders both built-in themes behind
// prefers-color-scheme media queries. The light rules double as the
// no-preference fallback. This is the artifact attached to exported pages.
func AdaptiveStylesheet() string {
	var b strings.Builder

	b.WriteString("/* inkwell adaptive stylesheet */\n\n")
	writeRules(&b, Light)

	b.WriteString("\n@media (prefers-color-scheme: dark) {\n")
	var dark strings.Builder
	writeRules(&dark, Dark)
	for _, line := range strings.Split(strings.TrimRight(dark.String(), "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("}\n")

	return b.String()
}

func writeRules(b *strings.Builder, t Theme) {
	fmt.Fprintf(b, "body {\n  background-color: %s;\n  color: %s;\n}\n\n", t.Background, t.Foreground)
	fmt.Fprintf(b, "p {\n  color: %s;\n}\n\n", t.Foreground)
	fmt.Fprintf(b, "h1 {\n  color: %s;\n}\n\n", t.Foreground)
	fmt.Fprintf(b, "h2,\nh3 {\n  color: %s;\n}\n\n", Accents.Pop)
	fmt.Fprintf(b, "a:hover {\n  color: %s;\n}\n\n", Accents.LinkHover)
	fmt.Fprintf(b, "blockquote {\n  color: %s;\n  border-left: 4px solid %s;\n  padding-left: 1rem;\n}\n\n", t.Foreground, Accents.Pop)
	fmt.Fprintf(b, "figcaption {\n  color: %s;\n  font-style: italic;\n}\n\n", Accents.LinkHover)
	fmt.Fprintf(b, "code {\n  background-color: %s;\n  border: 1px solid %s;\n  border-radius: 3px;\n  padding: 0.1em 0.3em;\n}\n", Accents.InlineCodeBackground, Accents.InlineCodeBorder)
}
