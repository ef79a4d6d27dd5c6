// Package terminal renders a page of display elements as styled terminal
// text using lipgloss. Cards become bordered panels and badges become
// colored pills; hook colors follow the light and dark sets.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/view"
)

// Name is the registry key of the terminal renderer.
const Name = "terminal"

// InteractiveMarker prefixes elements that respond to activation.
const InteractiveMarker = "▸"

type Option func(*Renderer)

// WithLipglossRenderer binds styles to a specific lipgloss renderer, usually
// one created for the output stream so color support is detected on it.
func WithLipglossRenderer(r *lipgloss.Renderer) Option {
	return func(tr *Renderer) {
		if r != nil {
			tr.styles = r
		}
	}
}

// WithWidth caps the width of card panels. Zero lets content decide.
func WithWidth(width int) Option {
	return func(tr *Renderer) {
		if width >= 0 {
			tr.width = width
		}
	}
}

type Renderer struct {
	styles *lipgloss.Renderer
	width  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the terminal renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{styles: lipgloss.DefaultRenderer()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := palette{scheme: options.Scheme(), light: page.Light, dark: page.Dark}
	blocks := make([]string, 0, len(page.Views)+1)
	if title := strings.TrimSpace(sanitizeText(page.Title)); title != "" {
		blocks = append(blocks, r.styles.NewStyle().Bold(true).Underline(true).Render(title))
	}

	for idx, node := range page.Views {
		if node == nil {
			continue
		}
		switch tag, _ := node.Attr("data-element"); tag {
		case element.TagIdentityCard:
			blocks = append(blocks, r.card(node, p))
		case element.TagTagBadge:
			blocks = append(blocks, r.badge(node, p))
		default:
			text := plainText(node)
			if text == "" {
				return nil, fmt.Errorf("terminal renderer: element %d has no printable content", idx)
			}
			blocks = append(blocks, text)
		}
	}

	return []byte(lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"), nil
}

func (r *Renderer) card(node *view.Node, p palette) string {
	var lines []string

	if img := node.Find(view.ByTag("img")); img != nil {
		alt, _ := img.Attr("alt")
		alt = sanitizeText(alt)
		lines = append(lines, r.styles.NewStyle().Foreground(p.color("card-muted")).Render("["+alt+"]"))
	}

	name := textOf(node, "card-name")
	if interactive(node) {
		name = InteractiveMarker + " " + name
	}
	lines = append(lines, r.styles.NewStyle().Bold(true).Foreground(p.color("card-fg")).Render(name))

	if title := textOf(node, "card-title"); title != "" {
		lines = append(lines, r.styles.NewStyle().Foreground(p.color("card-muted")).Render(title))
	}
	if content := textOf(node, "card-content"); content != "" {
		lines = append(lines, "", r.styles.NewStyle().Foreground(p.color("card-fg")).Render(content))
	}

	panel := r.styles.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.color("card-border")).
		Padding(0, 1)
	if interactive(node) {
		panel = panel.BorderForeground(p.color("card-focus-ring"))
	}
	if r.width > 0 {
		panel = panel.Width(r.width)
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) badge(node *view.Node, p palette) string {
	level, _ := node.Attr("data-level")
	lvl := element.ParseLevel(level)

	label := plainText(node)
	if interactive(node) {
		label = InteractiveMarker + " " + label
	}
	style := r.styles.NewStyle().
		Foreground(p.color("tag-" + lvl.String() + "-fg")).
		Background(p.color("tag-" + lvl.String() + "-bg")).
		Padding(0, 1)
	return style.Render(label) + " " + r.styles.NewStyle().Faint(true).Render(lvl.String())
}

func textOf(node *view.Node, class string) string {
	found := node.Find(view.ByClass(class))
	if found == nil {
		return ""
	}
	return plainText(found)
}

func plainText(node *view.Node) string {
	return strings.TrimSpace(sanitizeText(node.TextContent()))
}

// sanitizeText drops C0 and C1 control characters so host text cannot emit
// terminal escape sequences. Newlines and tabs are kept.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func interactive(node *view.Node) bool {
	value, _ := node.Attr("data-interactive")
	return value == "true"
}

// palette maps hook tokens to lipgloss colors for the selected scheme.
type palette struct {
	scheme string
	light  *theme.RendererConfig
	dark   *theme.RendererConfig
}

func (p palette) color(token string) lipgloss.TerminalColor {
	light, dark := tokenValue(p.light, token), tokenValue(p.dark, token)
	switch p.scheme {
	case render.ColorSchemeLight:
		return terminalColor(light)
	case render.ColorSchemeDark:
		return terminalColor(dark)
	}
	if !isHex(light) || !isHex(dark) {
		return lipgloss.NoColor{}
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func tokenValue(cfg *theme.RendererConfig, token string) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.Tokens[token])
}

func terminalColor(value string) lipgloss.TerminalColor {
	if !isHex(value) {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(value)
}

// isHex reports whether value is a #rgb or #rrggbb color, the only CSS forms
// lipgloss understands.
func isHex(value string) bool {
	if !strings.HasPrefix(value, "#") || (len(value) != 4 && len(value) != 7) {
		return false
	}
	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
