package render

import "strings"

// Color scheme selections understood by renderers.
const (
	ColorSchemeAuto  = "auto"
	ColorSchemeLight = "light"
	ColorSchemeDark  = "dark"
)

// RenderOptions carry per-call choices that do not belong to the page.
type RenderOptions struct {
	// ColorScheme forces the light or dark hook set. Empty or "auto" lets
	// the environment decide (prefers-color-scheme in HTML, terminal
	// background detection in the terminal renderer).
	ColorScheme string
}

// Scheme returns the normalised color scheme, defaulting to auto for
// unrecognised values.
func (o RenderOptions) Scheme() string {
	switch strings.ToLower(strings.TrimSpace(o.ColorScheme)) {
	case ColorSchemeLight:
		return ColorSchemeLight
	case ColorSchemeDark:
		return ColorSchemeDark
	default:
		return ColorSchemeAuto
	}
}
