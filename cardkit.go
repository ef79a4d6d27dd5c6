// Package cardkit exposes the display element toolkit from the module root:
// identity cards and tag badges mounted on a host, re-rendered on mutation and
// printed as HTML or terminal text.
package cardkit

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/host"
	"github.com/goliatone/go-cardkit/pkg/orchestrator"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/renderers/html"
	"github.com/goliatone/go-cardkit/pkg/styles"
)

// Document aliases host.Document for callers building pages in code.
type Document = host.Document

// Declaration aliases host.Declaration.
type Declaration = host.Declaration

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewHost returns an empty host using the built-in element definitions.
func NewHost(options ...host.Option) *host.Host {
	return host.New(options...)
}

// RenderFile loads the document at path and renders it with the named
// renderer. It is the simplest entry point for callers that just want output.
func RenderFile(ctx context.Context, path, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Path:          path,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// RenderDocument renders a pre-built document, bypassing the loader.
func RenderDocument(ctx context.Context, doc Document, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// DefaultManifest returns the style hook defaults as a go-theme manifest that
// callers can copy and adjust.
func DefaultManifest() *theme.Manifest {
	return styles.DefaultManifest()
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
