package element

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Constructor creates a fresh element instance.
type Constructor func(options ...Option) Element

// Registry maps tag names to element constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// DefaultRegistry returns a registry with the identity card and tag badge
// defined.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustDefine(TagIdentityCard, func(options ...Option) Element {
		return NewIdentityCard(options...)
	})
	registry.MustDefine(TagTagBadge, func(options ...Option) Element {
		return NewTagBadge(options...)
	})
	return registry
}

// Define registers ctor under tag. Tag names are lower-cased, must contain a
// hyphen and may only be defined once.
func (r *Registry) Define(tag string, ctor Constructor) error {
	name := normalizeTag(tag)
	if name == "" {
		return fmt.Errorf("element: tag name is required")
	}
	if !strings.Contains(name, "-") {
		return fmt.Errorf("element: tag name %q must contain a hyphen", name)
	}
	if ctor == nil {
		return fmt.Errorf("element: constructor for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return fmt.Errorf("element: tag %q already defined", name)
	}
	r.constructors[name] = ctor
	return nil
}

// MustDefine panics on definition failure. Useful for init-time wiring.
func (r *Registry) MustDefine(tag string, ctor Constructor) {
	if err := r.Define(tag, ctor); err != nil {
		panic(err)
	}
}

// Create instantiates the element defined under tag.
func (r *Registry) Create(tag string, options ...Option) (Element, error) {
	name := normalizeTag(tag)

	r.mu.RLock()
	ctor, ok := r.constructors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("element: unknown element %q", name)
	}
	return ctor(options...), nil
}

// Has reports whether tag is defined.
func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.constructors[normalizeTag(tag)]
	return ok
}

// Names returns the defined tag names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
