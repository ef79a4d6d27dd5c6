package html

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/styles"
	"github.com/goliatone/go-cardkit/pkg/testsupport"
	"github.com/goliatone/go-cardkit/pkg/view"
)

func samplePage(t *testing.T) render.Page {
	t.Helper()

	card := element.NewIdentityCard()
	card.SetAttribute(element.AttrIdentifierText, `Sarah <Johnson>`)
	card.SetAttribute(element.AttrSecondaryText, "Frontend Developer")
	card.SetAttribute(element.AttrInteractive, "true")

	badge := element.NewTagBadge()
	badge.SetAttribute(element.AttrLabelText, "Go")
	badge.SetAttribute(element.AttrLevel, "expert")

	light, dark := styles.Resolve(styles.DefaultManifest(), styles.Overrides{
		Tokens: map[string]string{"--card-radius": "4px"},
	})
	return render.Page{
		Title: "Team",
		Views: []*view.Node{card.Render(), nil, badge.Render()},
		Light: light,
		Dark:  dark,
	}
}

func newRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()
	renderer, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRendererMetadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "html" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderAutoScheme(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Team</title>",
		`<meta name="color-scheme" content="light dark">`,
		"--card-bg: #ffffff;",
		"--card-radius: 4px;",
		"@media (prefers-color-scheme: dark)",
		"--card-bg: #1f2937;",
		".card-hoverable",
		`<h3 class="card-name">Sarah &lt;Johnson&gt;</h3>`,
		`class="tag level-expert"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Count(doc, `data-element=`) != 2 {
		t.Fatalf("unrendered views should be skipped:\n%s", doc)
	}
}

func TestRenderForcedSchemes(t *testing.T) {
	renderer := newRenderer(t)
	page := samplePage(t)

	dark, err := renderer.Render(testsupport.Context(), page, render.RenderOptions{ColorScheme: "DARK"})
	if err != nil {
		t.Fatalf("render dark: %v", err)
	}
	if strings.Contains(string(dark), "prefers-color-scheme") {
		t.Fatalf("forced dark must not emit a media query")
	}
	if !strings.Contains(string(dark), "--card-bg: #1f2937;") || strings.Contains(string(dark), "--card-bg: #ffffff;") {
		t.Fatalf("forced dark should only carry dark hooks")
	}
	if !strings.Contains(string(dark), `content="dark"`) {
		t.Fatalf("expected dark color-scheme meta")
	}

	light, err := renderer.Render(testsupport.Context(), page, render.RenderOptions{ColorScheme: render.ColorSchemeLight})
	if err != nil {
		t.Fatalf("render light: %v", err)
	}
	if strings.Contains(string(light), "#1f2937") {
		t.Fatalf("forced light should not carry dark hooks")
	}
}

func TestStylesheetGolden(t *testing.T) {
	renderer := newRenderer(t, WithStylesheet(""))
	page := render.Page{
		Light: &theme.RendererConfig{CSSVars: map[string]string{
			"--card-radius": "4px",
			"--card-bg":     "url(/img/bg.png?w=1&h=2)",
		}},
		Dark: &theme.RendererConfig{CSSVars: map[string]string{
			"--card-bg": "#0f172a",
		}},
	}

	css, err := renderer.Stylesheet(page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	got := strings.TrimSpace(css)

	path := filepath.Join("testdata", "stylesheet_auto.golden")
	if testsupport.WriteMaybeGolden(t, path, []byte(got+"\n")) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, path), got); diff != "" {
		t.Fatalf("stylesheet mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(got, "&amp;") {
		t.Fatalf("declaration values must not be HTML escaped:\n%s", got)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := newRenderer(t)
	page := samplePage(t)

	first, err := renderer.Render(testsupport.Context(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := renderer.Render(testsupport.Context(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("output differs between renders")
	}
}

func TestRenderHonoursContext(t *testing.T) {
	renderer := newRenderer(t)
	ctx, cancel := context.WithCancel(testsupport.Context())
	cancel()
	if _, err := renderer.Render(ctx, samplePage(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCustomTemplates(t *testing.T) {
	renderer := newRenderer(t,
		WithTemplatesFS(fstest.MapFS{
			"templates/page.tmpl":   {Data: []byte("{{ title }}|{{ elements|length }}")},
			"templates/styles.tmpl": {Data: []byte("{{ base_css }}")},
		}),
		WithStylesheet(""),
	)

	out, err := renderer.Render(testsupport.Context(), samplePage(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Team|2" {
		t.Fatalf("unexpected output %q", out)
	}
}
