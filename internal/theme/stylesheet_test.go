package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStylesheet_ThemeTokens(t *testing.T) {
	css := Stylesheet(Dark)

	assert.Contains(t, css, "background-color: #1c242e")
	assert.Contains(t, css, "color: #fafafa")

	css = Stylesheet(Light)
	assert.Contains(t, css, "background-color: #fafafa")
	assert.Contains(t, css, "color: #1c242e")
}

func TestStylesheet_HeadingRuleUsesPopForBothThemes(t *testing.T) {
	for _, th := range []Theme{Dark, Light} {
		css := Stylesheet(th)
		idx := strings.Index(css, "h2,\nh3 {")
		assert.GreaterOrEqual(t, idx, 0, "theme %s", th.Name)
		rule := css[idx:]
		rule = rule[:strings.Index(rule, "}")]
		assert.Contains(t, rule, Accents.Pop, "theme %s", th.Name)
	}
}

func TestStylesheet_BlockquoteAndCaption(t *testing.T) {
	css := Stylesheet(Light)

	idx := strings.Index(css, "blockquote {")
	assert.GreaterOrEqual(t, idx, 0)
	rule := css[idx:]
	rule = rule[:strings.Index(rule, "}")]
	assert.Contains(t, rule, Light.Foreground)
	assert.Contains(t, rule, "border-left: 4px solid "+Accents.Pop)

	idx = strings.Index(css, "figcaption {")
	assert.GreaterOrEqual(t, idx, 0)
	rule = css[idx:]
	rule = rule[:strings.Index(rule, "}")]
	assert.Contains(t, rule, Accents.LinkHover)
	assert.Contains(t, rule, "font-style: italic")
}

func TestStylesheet_InlineCode(t *testing.T) {
	css := Stylesheet(Dark)
	assert.Contains(t, css, "background-color: "+Accents.InlineCodeBackground)
	assert.Contains(t, css, "border: 1px solid "+Accents.InlineCodeBorder)
}

func TestAdaptiveStylesheet(t *testing.T) {
	css := AdaptiveStylesheet()

	// Light rules first as the no-preference fallback
	darkBlock := strings.Index(css, "@media (prefers-color-scheme: dark)")
	assert.GreaterOrEqual(t, darkBlock, 0)

	lightBody := strings.Index(css, "background-color: #fafafa")
	assert.GreaterOrEqual(t, lightBody, 0)
	assert.Less(t, lightBody, darkBlock, "light rules precede the dark media query")

	// Dark rules inside the media query
	assert.Contains(t, css[darkBlock:], "background-color: #1c242e")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(css), "}"))
}
