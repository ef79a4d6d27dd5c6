// Package render defines the renderer seam shared by the HTML and terminal
// outputs, plus a registry for looking renderers up by name.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/view"
)

// Renderer converts a Page into a byte representation (HTML, ANSI text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}

// Page is everything a renderer needs: the rendered element views in host
// order and the resolved light and dark style hook configurations.
type Page struct {
	Title string
	Views []*view.Node
	Light *theme.RendererConfig
	Dark  *theme.RendererConfig
}
