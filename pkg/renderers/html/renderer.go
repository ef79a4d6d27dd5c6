// Package html renders a page of display elements as a standalone HTML
// document. Style hooks are emitted as CSS custom properties with the dark
// set behind a prefers-color-scheme query unless a scheme is forced.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/render"
	rendertemplate "github.com/goliatone/go-cardkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cardkit/pkg/styles"
	"github.com/goliatone/go-cardkit/pkg/view"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

const defaultTitle = "cardkit"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	lang             string
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/page.tmpl and templates/styles.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLang sets the document language attribute.
func WithLang(lang string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			cfg.lang = trimmed
		}
	}
}

// WithStylesheet replaces the structural stylesheet appended after the style
// hook declarations.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	lang       string
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		lang:       "en",
		stylesheet: styles.BaseCSS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		lang:       cfg.lang,
		stylesheet: cfg.stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	css, err := r.Stylesheet(page, options)
	if err != nil {
		return nil, err
	}

	elements := make([]string, 0, len(page.Views))
	for idx, node := range page.Views {
		if node == nil {
			continue
		}
		markup, err := view.HTMLString(node)
		if err != nil {
			return nil, fmt.Errorf("html renderer: element %d: %w", idx, err)
		}
		elements = append(elements, markup)
	}

	title := strings.TrimSpace(page.Title)
	if title == "" {
		title = defaultTitle
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"lang":         r.lang,
		"title":        title,
		"color_scheme": colorSchemeMeta(options.Scheme()),
		"styles":       css,
		"elements":     elements,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// Stylesheet renders the style hook declarations for the requested scheme
// followed by the structural stylesheet.
func (r *Renderer) Stylesheet(page render.Page, options render.RenderOptions) (string, error) {
	base, dark := page.Light, page.Dark
	switch options.Scheme() {
	case render.ColorSchemeLight:
		dark = nil
	case render.ColorSchemeDark:
		base, dark = page.Dark, nil
	}

	result, err := r.templates.RenderTemplate(stylesTemplate, map[string]any{
		"base":     declarations(base),
		"dark":     declarations(dark),
		"base_css": r.stylesheet,
	})
	if err != nil {
		return "", fmt.Errorf("html renderer: render styles: %w", err)
	}
	return result, nil
}

func declarations(cfg *theme.RendererConfig) []map[string]any {
	decls := styles.Declarations(cfg)
	if len(decls) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(decls))
	for _, decl := range decls {
		out = append(out, map[string]any{
			"name":  decl.Name,
			"value": decl.Value,
		})
	}
	return out
}

func colorSchemeMeta(scheme string) string {
	switch scheme {
	case render.ColorSchemeLight:
		return "light"
	case render.ColorSchemeDark:
		return "dark"
	default:
		return "light dark"
	}
}
