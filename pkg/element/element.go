// Package element implements the configurable display elements: the identity
// card and the tag badge. Each element renders a view as a pure function of
// its attributes, schedules a coalesced re-render whenever an attribute
// changes, and emits an activation event when, and only when, it is
// interactive.
package element

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/view"
)

// Activatable is the capability set shared by every variant.
type Activatable interface {
	Render() *view.Node
	HandleActivation()
	HandleKeyInput(key Key) bool
}

// Element is an Activatable that can be declared and configured by a host
// through named string attributes.
type Element interface {
	Activatable

	TagName() string
	// SetAttribute applies a declarative attribute and reports whether the
	// name is known. Unknown attributes are ignored.
	SetAttribute(name, value string) bool
	// RemoveAttribute resets a known attribute to its default.
	RemoveAttribute(name string) bool
	Attributes() map[string]string

	AddEventListener(eventType string, fn Listener) func()
	EventTarget() *EventTarget

	OnRender(fn RenderObserver) func()
	// Flush runs a pending render pass now and reports how many ran.
	Flush() int
	LastView() *view.Node
	RenderCount() int
	Close()
}

// ContentSetter is implemented by elements with a free content region.
type ContentSetter interface {
	SetContent(raw string)
}

// Key names a keyboard key.
type Key string

const (
	// KeyEnter is the confirm key.
	KeyEnter Key = "Enter"
	// KeySpace is the select key.
	KeySpace Key = " "
)

// NormalizeKey maps the common spellings of the confirm and select keys onto
// KeyEnter and KeySpace. Other keys are returned unchanged.
func NormalizeKey(raw string) Key {
	switch raw {
	case " ":
		return KeySpace
	case "\r", "\n":
		return KeyEnter
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "enter", "return":
		return KeyEnter
	case "space", "spacebar":
		return KeySpace
	}
	return Key(raw)
}

// IsActivationKey reports whether k activates an interactive element. Any
// spelling NormalizeKey understands is accepted.
func IsActivationKey(k Key) bool {
	k = NormalizeKey(string(k))
	return k == KeyEnter || k == KeySpace
}

const (
	roleInteractive = "button"

	attrInteractive = "interactive"
)

// Option configures an element at construction time.
type Option func(*config)

type config struct {
	scheduler Scheduler
	logger    *zap.Logger
	content   string
	newID     func() string
}

// WithScheduler sets the scheduler used for deferred render passes. Without
// it each element queues its passes on a private TaskQueue drained by Flush.
// Pass ImmediateScheduler to render inside every setter.
func WithScheduler(s Scheduler) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.scheduler = s
		}
	}
}

// WithLogger injects a zap logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithContent seeds the free content region. Elements without such a region
// ignore it.
func WithContent(raw string) Option {
	return func(cfg *config) {
		cfg.content = raw
	}
}

// WithEventIDs overrides how event ids are generated.
func WithEventIDs(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		logger:    zap.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// parseBool follows HTML boolean attribute rules: a present attribute with an
// empty value is true. Unparseable values are false.
func parseBool(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	switch strings.ToLower(trimmed) {
	case attrInteractive, "yes", "on":
		return true
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return false
	}
	return parsed
}

func tabIndex(interactive bool) string {
	if interactive {
		return "0"
	}
	return "-1"
}

func role(interactive bool, static string) string {
	if interactive {
		return roleInteractive
	}
	return static
}
