package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	pageTemplate   = "templates/page.tmpl"
	stylesTemplate = "templates/styles.tmpl"
)

// TemplatesFS exposes the embedded page and stylesheet templates so callers
// can copy them as a starting point for their own layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
