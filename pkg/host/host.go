// Package host plays the role of the page that declares, configures and
// observes display elements. It mounts elements from a Document, applies
// later documents as attribute mutations, drains the shared render queue and
// exposes a root event target that bubbling, composed events reach.
package host

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/view"
)

// Option customises a Host.
type Option func(*Host)

// WithRegistry supplies the element definitions. Defaults to
// element.DefaultRegistry.
func WithRegistry(registry *element.Registry) Option {
	return func(h *Host) {
		if registry != nil {
			h.registry = registry
		}
	}
}

// WithLogger injects a zap logger shared with mounted elements.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithElementOptions appends options passed to every created element.
func WithElementOptions(options ...element.Option) Option {
	return func(h *Host) {
		h.elementOptions = append(h.elementOptions, options...)
	}
}

// Snapshot is the latest rendered state of the page.
type Snapshot struct {
	Title string
	Theme ThemeConfig
	Views []*view.Node
}

type mounted struct {
	decl     Declaration
	el       element.Element
	view     *view.Node
	unrender func()
}

// Host owns a set of mounted elements. Mutations (Mount, Apply, Flush,
// Activate, Key) must come from one goroutine at a time; Snapshot and
// Elements may be called from anywhere.
type Host struct {
	mu             sync.Mutex
	registry       *element.Registry
	queue          *element.TaskQueue
	root           *element.EventTarget
	logger         *zap.Logger
	elementOptions []element.Option

	title   string
	theme   ThemeConfig
	mounted []*mounted
}

// New constructs an empty host.
func New(options ...Option) *Host {
	h := &Host{
		registry: element.DefaultRegistry(),
		queue:    element.NewTaskQueue(),
		root:     element.NewEventTarget(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Mount replaces the page content with the elements declared in doc. Render
// passes are queued until Flush.
func (h *Host) Mount(doc Document) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.validate(doc); err != nil {
		return err
	}
	created, err := h.createAll(doc.Elements)
	if err != nil {
		return err
	}
	for _, entry := range h.mounted {
		h.unmount(entry)
	}
	h.mounted = created
	h.title = doc.Title
	h.theme = cloneTheme(doc.Theme)

	h.logger.Debug("document mounted",
		zap.String("title", doc.Title),
		zap.Int("elements", len(created)),
	)
	return nil
}

// Apply reconciles the page with doc. Elements whose position and tag match
// are kept and receive attribute mutations; others are replaced, appended or
// removed.
func (h *Host) Apply(doc Document) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.validate(doc); err != nil {
		return err
	}

	next := make([]*mounted, 0, len(doc.Elements))
	var stale, fresh []*mounted
	mutated := 0

	for idx, decl := range doc.Elements {
		if idx < len(h.mounted) && h.mounted[idx].decl.Tag == decl.Tag {
			entry := h.mounted[idx]
			mutated += h.reconcile(entry, decl)
			next = append(next, entry)
			continue
		}
		if idx < len(h.mounted) {
			stale = append(stale, h.mounted[idx])
		}
		entry, err := h.create(decl)
		if err != nil {
			for _, created := range fresh {
				h.unmount(created)
			}
			return err
		}
		fresh = append(fresh, entry)
		next = append(next, entry)
	}
	if len(h.mounted) > len(doc.Elements) {
		stale = append(stale, h.mounted[len(doc.Elements):]...)
	}
	for _, entry := range stale {
		h.unmount(entry)
	}

	h.mounted = next
	h.title = doc.Title
	h.theme = cloneTheme(doc.Theme)

	h.logger.Debug("document applied",
		zap.Int("elements", len(next)),
		zap.Int("mutated_attributes", mutated),
		zap.Int("removed", len(stale)),
	)
	return nil
}

// Flush runs queued render passes and returns how many tasks ran.
func (h *Host) Flush() int {
	return h.queue.Flush()
}

// Pending reports queued render passes.
func (h *Host) Pending() int {
	return h.queue.Pending()
}

// On registers a listener on the page root. Events emitted by any mounted
// element reach it by bubbling.
func (h *Host) On(eventType string, fn element.Listener) func() {
	return h.root.AddEventListener(eventType, fn)
}

// Elements returns the mounted elements in document order.
func (h *Host) Elements() []element.Element {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]element.Element, 0, len(h.mounted))
	for _, entry := range h.mounted {
		out = append(out, entry.el)
	}
	return out
}

// Element returns the element at index.
func (h *Host) Element(index int) (element.Element, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.mounted) {
		return nil, fmt.Errorf("host: no element at index %d", index)
	}
	return h.mounted[index].el, nil
}

// Activate simulates a primary click on the element at index.
func (h *Host) Activate(index int) error {
	el, err := h.Element(index)
	if err != nil {
		return err
	}
	el.HandleActivation()
	return nil
}

// Key simulates a key press on the element at index and reports whether the
// element suppressed the key's default action.
func (h *Host) Key(index int, key element.Key) (bool, error) {
	el, err := h.Element(index)
	if err != nil {
		return false, err
	}
	return el.HandleKeyInput(key), nil
}

// SetAttribute mutates an attribute of the element at index and records it
// in the element's declaration, so a later Apply compares against the value
// actually shown. It reports whether the attribute name is known.
func (h *Host) SetAttribute(index int, name, value string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.mounted) {
		return false, fmt.Errorf("host: no element at index %d", index)
	}
	entry := h.mounted[index]
	if !entry.el.SetAttribute(name, value) {
		return false, nil
	}
	if entry.decl.Attributes == nil {
		entry.decl.Attributes = make(map[string]string)
	}
	entry.decl.Attributes[name] = value
	return true, nil
}

// Snapshot returns the views produced by the latest render passes. Elements
// that have not rendered yet contribute nil entries.
func (h *Host) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	views := make([]*view.Node, 0, len(h.mounted))
	for _, entry := range h.mounted {
		views = append(views, entry.view)
	}
	return Snapshot{
		Title: h.title,
		Theme: cloneTheme(h.theme),
		Views: views,
	}
}

// Close unmounts every element.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, entry := range h.mounted {
		h.unmount(entry)
	}
	h.mounted = nil
}

func (h *Host) validate(doc Document) error {
	for _, decl := range doc.Elements {
		if !h.registry.Has(decl.Tag) {
			return fmt.Errorf("host: unknown element %q", decl.Tag)
		}
	}
	return nil
}

func (h *Host) createAll(decls []Declaration) ([]*mounted, error) {
	created := make([]*mounted, 0, len(decls))
	for _, decl := range decls {
		entry, err := h.create(decl)
		if err != nil {
			for _, fresh := range created {
				h.unmount(fresh)
			}
			return nil, err
		}
		created = append(created, entry)
	}
	return created, nil
}

func (h *Host) create(decl Declaration) (*mounted, error) {
	options := append(slices.Clone(h.elementOptions),
		element.WithScheduler(h.queue),
		element.WithLogger(h.logger),
		element.WithContent(decl.Content),
	)
	el, err := h.registry.Create(decl.Tag, options...)
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	entry := &mounted{decl: cloneDeclaration(decl), el: el}
	entry.unrender = el.OnRender(func(node *view.Node) {
		h.mu.Lock()
		entry.view = node
		h.mu.Unlock()
	})
	el.EventTarget().SetParent(h.root)

	for _, name := range sortedKeys(decl.Attributes) {
		if !el.SetAttribute(name, decl.Attributes[name]) {
			h.logger.Debug("unknown attribute ignored",
				zap.String("tag", decl.Tag),
				zap.String("attribute", name),
			)
		}
	}
	return entry, nil
}

func (h *Host) reconcile(entry *mounted, decl Declaration) int {
	changes := 0
	for _, name := range sortedKeys(entry.decl.Attributes) {
		if _, ok := decl.Attributes[name]; !ok {
			entry.el.RemoveAttribute(name)
			changes++
		}
	}
	for _, name := range sortedKeys(decl.Attributes) {
		value := decl.Attributes[name]
		if previous, ok := entry.decl.Attributes[name]; ok && previous == value {
			continue
		}
		entry.el.SetAttribute(name, value)
		changes++
	}
	if decl.Content != entry.decl.Content {
		if setter, ok := entry.el.(element.ContentSetter); ok {
			setter.SetContent(decl.Content)
			changes++
		}
	}
	entry.decl = cloneDeclaration(decl)
	return changes
}

// unmount must be called with h.mu held; it only touches the element.
func (h *Host) unmount(entry *mounted) {
	if entry.unrender != nil {
		entry.unrender()
	}
	entry.el.Close()
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cloneDeclaration(decl Declaration) Declaration {
	decl.Attributes = maps.Clone(decl.Attributes)
	return decl
}

func cloneTheme(cfg ThemeConfig) ThemeConfig {
	return ThemeConfig{
		Tokens: maps.Clone(cfg.Tokens),
		Dark:   maps.Clone(cfg.Dark),
	}
}
