package element

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/view"
)

const (
	TagTagBadge = "tag-badge"

	// EventTagActivation is emitted when an interactive badge is activated.
	// Payload keys: labelText, level.
	EventTagActivation = "activation-on-tag"

	AttrLabelText = "label-text"
	AttrLevel     = "level"

	ClassTag = "tag"

	roleTagStatic = "note"
)

// TagBadge is a compact label whose look is chosen by its level.
type TagBadge struct {
	labelText   string
	level       Level
	interactive bool

	target  *EventTarget
	shadow  *EventTarget
	reactor *reactor
	logger  *zap.Logger
	newID   func() string
}

var _ Element = (*TagBadge)(nil)

// NewTagBadge creates a badge at DefaultLevel and schedules the first render.
func NewTagBadge(options ...Option) *TagBadge {
	cfg := newConfig(options)
	badge := &TagBadge{
		level:  DefaultLevel,
		target: NewEventTarget(),
		logger: cfg.logger,
		newID:  cfg.newID,
	}
	badge.shadow = newBoundary(badge.target)
	badge.reactor = newReactor(TagTagBadge, cfg, badge.Render)
	badge.reactor.invalidate()
	return badge
}

// TagName implements Element.
func (b *TagBadge) TagName() string { return TagTagBadge }

func (b *TagBadge) LabelText() string { return b.labelText }
func (b *TagBadge) Level() Level      { return b.level }
func (b *TagBadge) Interactive() bool { return b.interactive }

func (b *TagBadge) SetLabelText(value string) {
	if b.labelText == value {
		return
	}
	b.labelText = value
	b.reactor.invalidate()
}

// SetLevel stores the normalised level; unknown values become DefaultLevel.
func (b *TagBadge) SetLevel(level Level) {
	normalized := ParseLevel(string(level))
	if normalized != level {
		b.logger.Debug("level normalised",
			zap.String("requested", string(level)),
			zap.String("level", string(normalized)),
		)
	}
	if b.level == normalized {
		return
	}
	b.level = normalized
	b.reactor.invalidate()
}

func (b *TagBadge) SetInteractive(value bool) {
	if b.interactive == value {
		return
	}
	b.interactive = value
	b.reactor.invalidate()
}

// SetAttribute implements Element.
func (b *TagBadge) SetAttribute(name, value string) bool {
	switch name {
	case AttrLabelText:
		b.SetLabelText(value)
	case AttrLevel:
		b.SetLevel(Level(value))
	case AttrInteractive:
		b.SetInteractive(parseBool(value))
	default:
		return false
	}
	return true
}

// RemoveAttribute implements Element.
func (b *TagBadge) RemoveAttribute(name string) bool {
	switch name {
	case AttrLabelText:
		b.SetLabelText("")
	case AttrLevel:
		b.SetLevel(DefaultLevel)
	case AttrInteractive:
		b.SetInteractive(false)
	default:
		return false
	}
	return true
}

// Attributes implements Element.
func (b *TagBadge) Attributes() map[string]string {
	return map[string]string{
		AttrLabelText:   b.labelText,
		AttrLevel:       string(b.level),
		AttrInteractive: strconv.FormatBool(b.interactive),
	}
}

// Render builds the badge view. The root always carries exactly one level
// class.
func (b *TagBadge) Render() *view.Node {
	return view.Element("span", []view.Attr{
		view.A("class", ClassTag+" "+b.level.StyleClass()),
		view.A("role", role(b.interactive, roleTagStatic)),
		view.A("tabindex", tabIndex(b.interactive)),
		view.A("data-element", TagTagBadge),
		view.A("data-level", string(b.level)),
		view.A("data-interactive", strconv.FormatBool(b.interactive)),
	},
		view.Text(b.labelText),
	)
}

// HandleActivation emits EventTagActivation when interactive.
func (b *TagBadge) HandleActivation() {
	if !b.interactive {
		b.logger.Debug("activation ignored", zap.String("tag", TagTagBadge))
		return
	}
	evt := Event{
		ID:       b.newID(),
		Type:     EventTagActivation,
		Target:   TagTagBadge,
		Bubbles:  true,
		Composed: true,
		Payload: map[string]string{
			"labelText": b.labelText,
			"level":     string(b.level),
		},
	}
	b.logger.Debug("dispatching activation",
		zap.String("tag", TagTagBadge),
		zap.String("event_id", evt.ID),
	)
	b.shadow.Dispatch(evt)
}

// HandleKeyInput mirrors IdentityCard.HandleKeyInput.
func (b *TagBadge) HandleKeyInput(key Key) bool {
	if !b.interactive || !IsActivationKey(key) {
		return false
	}
	b.HandleActivation()
	return true
}

// AddEventListener implements Element.
func (b *TagBadge) AddEventListener(eventType string, fn Listener) func() {
	return b.target.AddEventListener(eventType, fn)
}

// EventTarget implements Element.
func (b *TagBadge) EventTarget() *EventTarget { return b.target }

// OnRender implements Element.
func (b *TagBadge) OnRender(fn RenderObserver) func() { return b.reactor.observe(fn) }

// Flush implements Element.
func (b *TagBadge) Flush() int { return b.reactor.flushNow() }

// LastView implements Element.
func (b *TagBadge) LastView() *view.Node { return b.reactor.last }

// RenderCount implements Element.
func (b *TagBadge) RenderCount() int { return b.reactor.renders }

// Close releases listeners registered on the badge and stops rendering.
func (b *TagBadge) Close() {
	b.reactor.close()
	b.target.RemoveAll()
	b.shadow.RemoveAll()
	b.target.SetParent(nil)
}
