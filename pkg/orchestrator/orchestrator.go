package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/host"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/renderers/html"
	"github.com/goliatone/go-cardkit/pkg/renderers/terminal"
	"github.com/goliatone/go-cardkit/pkg/styles"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithElementRegistry injects the element definitions used when mounting.
func WithElementRegistry(registry *element.Registry) Option {
	return func(o *Orchestrator) {
		o.elements = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithManifest replaces the built-in style hook manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(o *Orchestrator) {
		o.manifest = manifest
	}
}

// WithThemeSelector resolves the manifest through a go-theme selector at
// generation time. Request.ThemeName and Request.ThemeVariant are passed
// through, falling back to defaultTheme.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme string) Option {
	return func(o *Orchestrator) {
		o.selector = selector
		o.defaultTheme = defaultTheme
	}
}

// WithLogger injects a zap logger shared with the host.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from host document to rendered
// output: load, mount, flush, resolve style hooks, render. Defaults register
// the HTML and terminal renderers and the built-in element definitions.
type Orchestrator struct {
	registry        *render.Registry
	elements        *element.Registry
	defaultRenderer string
	manifest        *theme.Manifest
	selector        theme.ThemeSelector
	defaultTheme    string
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single rendering.
type Request struct {
	// Path loads the document from disk, or from FS when set.
	Path string
	FS   fs.FS

	// Document bypasses loading when the caller already has one.
	Document *host.Document

	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Generate mounts the requested document on a fresh host and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(req)
	if err != nil {
		return nil, err
	}

	h := host.New(host.WithRegistry(o.elements), host.WithLogger(o.logger))
	defer h.Close()
	if err := h.Mount(doc); err != nil {
		return nil, fmt.Errorf("orchestrator: mount: %w", err)
	}
	h.Flush()

	return o.Render(ctx, h.Snapshot(), req)
}

// Render renders an existing host snapshot. Watch loops use it to re-render
// without remounting.
func (o *Orchestrator) Render(ctx context.Context, snapshot host.Snapshot, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	manifest, err := o.resolveManifest(req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, BuildPage(snapshot, manifest), req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("page rendered",
		zap.String("renderer", renderer.Name()),
		zap.Int("views", len(snapshot.Views)),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// BuildPage resolves the snapshot's theme overrides against manifest and
// returns the renderer input.
func BuildPage(snapshot host.Snapshot, manifest *theme.Manifest) render.Page {
	light, dark := styles.Resolve(manifest, styles.Overrides{
		Tokens: snapshot.Theme.Tokens,
		Dark:   snapshot.Theme.Dark,
	})
	return render.Page{
		Title: snapshot.Title,
		Views: snapshot.Views,
		Light: light,
		Dark:  dark,
	}
}

func (o *Orchestrator) resolveDocument(req Request) (host.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Path == "" {
		return host.Document{}, errors.New("orchestrator: path or document is required")
	}
	var (
		doc host.Document
		err error
	)
	if req.FS != nil {
		doc, err = host.Load(req.FS, req.Path)
	} else {
		doc, err = host.LoadFile(req.Path)
	}
	if err != nil {
		return host.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveManifest(req Request) (*theme.Manifest, error) {
	if o.selector == nil {
		return o.manifest, nil
	}
	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	selection, err := o.selector.Select(name, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return o.manifest, nil
	}
	return selection.Manifest, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.elements == nil {
		o.elements = element.DefaultRegistry()
	}
	if o.manifest == nil {
		o.manifest = styles.DefaultManifest()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(terminal.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
