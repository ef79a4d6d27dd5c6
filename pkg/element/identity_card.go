package element

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/view"
)

const (
	TagIdentityCard = "identity-card"

	// EventIdentityCardActivation is emitted when an interactive card is
	// activated. Payload keys: identifierText, secondaryText.
	EventIdentityCardActivation = "activation-on-identity-card"

	AttrIdentifierText = "identifier-text"
	AttrSecondaryText  = "secondary-text"
	AttrMediaReference = "media-reference"
	AttrInteractive    = attrInteractive

	ClassCard          = "card"
	ClassCardHoverable = "card-hoverable"

	roleCardStatic = "article"
)

// IdentityCard shows a name, an optional title and avatar, and a free content
// region for host supplied markup.
type IdentityCard struct {
	identifierText string
	secondaryText  string
	mediaReference string
	interactive    bool
	content        string
	contentNodes   []*view.Node

	target  *EventTarget
	shadow  *EventTarget
	reactor *reactor
	logger  *zap.Logger
	newID   func() string
}

var _ Element = (*IdentityCard)(nil)

// NewIdentityCard creates a card with every attribute at its default and
// schedules the first render.
func NewIdentityCard(options ...Option) *IdentityCard {
	cfg := newConfig(options)
	card := &IdentityCard{
		target: NewEventTarget(),
		logger: cfg.logger,
		newID:  cfg.newID,
	}
	card.shadow = newBoundary(card.target)
	card.content = cfg.content
	card.contentNodes = view.SanitizeContent(cfg.content)
	card.reactor = newReactor(TagIdentityCard, cfg, card.Render)
	card.reactor.invalidate()
	return card
}

// TagName implements Element.
func (c *IdentityCard) TagName() string { return TagIdentityCard }

func (c *IdentityCard) IdentifierText() string { return c.identifierText }
func (c *IdentityCard) SecondaryText() string  { return c.secondaryText }
func (c *IdentityCard) MediaReference() string { return c.mediaReference }
func (c *IdentityCard) Interactive() bool      { return c.interactive }
func (c *IdentityCard) Content() string        { return c.content }

func (c *IdentityCard) SetIdentifierText(value string) {
	if c.identifierText == value {
		return
	}
	c.identifierText = value
	c.reactor.invalidate()
}

func (c *IdentityCard) SetSecondaryText(value string) {
	if c.secondaryText == value {
		return
	}
	c.secondaryText = value
	c.reactor.invalidate()
}

func (c *IdentityCard) SetMediaReference(value string) {
	if c.mediaReference == value {
		return
	}
	c.mediaReference = value
	c.reactor.invalidate()
}

func (c *IdentityCard) SetInteractive(value bool) {
	if c.interactive == value {
		return
	}
	c.interactive = value
	c.reactor.invalidate()
}

// SetContent replaces the free content region. The markup is sanitised before
// it is stored.
func (c *IdentityCard) SetContent(raw string) {
	if c.content == raw {
		return
	}
	c.content = raw
	c.contentNodes = view.SanitizeContent(raw)
	c.reactor.invalidate()
}

// SetAttribute implements Element.
func (c *IdentityCard) SetAttribute(name, value string) bool {
	switch name {
	case AttrIdentifierText:
		c.SetIdentifierText(value)
	case AttrSecondaryText:
		c.SetSecondaryText(value)
	case AttrMediaReference:
		c.SetMediaReference(value)
	case AttrInteractive:
		c.SetInteractive(parseBool(value))
	default:
		return false
	}
	return true
}

// RemoveAttribute implements Element.
func (c *IdentityCard) RemoveAttribute(name string) bool {
	switch name {
	case AttrIdentifierText, AttrSecondaryText, AttrMediaReference:
		return c.SetAttribute(name, "")
	case AttrInteractive:
		c.SetInteractive(false)
		return true
	}
	return false
}

// Attributes implements Element.
func (c *IdentityCard) Attributes() map[string]string {
	return map[string]string{
		AttrIdentifierText: c.identifierText,
		AttrSecondaryText:  c.secondaryText,
		AttrMediaReference: c.mediaReference,
		AttrInteractive:    strconv.FormatBool(c.interactive),
	}
}

// Render builds the card view from the current attributes.
func (c *IdentityCard) Render() *view.Node {
	class := ClassCard
	if c.interactive {
		class += " " + ClassCardHoverable
	}

	var media *view.Node
	if c.mediaReference != "" {
		media = view.Element("img", []view.Attr{
			view.A("class", "card-media"),
			view.A("src", c.mediaReference),
			view.A("alt", "Avatar of "+c.identifierText),
		})
	}

	var secondary *view.Node
	if c.secondaryText != "" {
		secondary = view.Element("p", []view.Attr{view.A("class", "card-title")},
			view.Text(c.secondaryText),
		)
	}

	return view.Element("div", []view.Attr{
		view.A("class", class),
		view.A("role", role(c.interactive, roleCardStatic)),
		view.A("tabindex", tabIndex(c.interactive)),
		view.A("data-element", TagIdentityCard),
		view.A("data-interactive", strconv.FormatBool(c.interactive)),
	},
		media,
		view.Element("h3", []view.Attr{view.A("class", "card-name")},
			view.Text(c.identifierText),
		),
		secondary,
		view.Element("div", []view.Attr{view.A("class", "card-content")},
			c.contentNodes...,
		),
	)
}

// HandleActivation emits EventIdentityCardActivation when interactive.
func (c *IdentityCard) HandleActivation() {
	if !c.interactive {
		c.logger.Debug("activation ignored", zap.String("tag", TagIdentityCard))
		return
	}
	evt := Event{
		ID:       c.newID(),
		Type:     EventIdentityCardActivation,
		Target:   TagIdentityCard,
		Bubbles:  true,
		Composed: true,
		Payload: map[string]string{
			"identifierText": c.identifierText,
			"secondaryText":  c.secondaryText,
		},
	}
	c.logger.Debug("dispatching activation",
		zap.String("tag", TagIdentityCard),
		zap.String("event_id", evt.ID),
	)
	c.shadow.Dispatch(evt)
}

// HandleKeyInput activates the card on the confirm and select keys and
// reports whether the key's default action should be suppressed.
func (c *IdentityCard) HandleKeyInput(key Key) bool {
	if !c.interactive || !IsActivationKey(key) {
		return false
	}
	c.HandleActivation()
	return true
}

// AddEventListener implements Element.
func (c *IdentityCard) AddEventListener(eventType string, fn Listener) func() {
	return c.target.AddEventListener(eventType, fn)
}

// EventTarget implements Element.
func (c *IdentityCard) EventTarget() *EventTarget { return c.target }

// OnRender implements Element.
func (c *IdentityCard) OnRender(fn RenderObserver) func() { return c.reactor.observe(fn) }

// Flush implements Element.
func (c *IdentityCard) Flush() int { return c.reactor.flushNow() }

// LastView implements Element.
func (c *IdentityCard) LastView() *view.Node { return c.reactor.last }

// RenderCount implements Element.
func (c *IdentityCard) RenderCount() int { return c.reactor.renders }

// Close releases listeners registered on the card and stops rendering.
func (c *IdentityCard) Close() {
	c.reactor.close()
	c.target.RemoveAll()
	c.shadow.RemoveAll()
	c.target.SetParent(nil)
}
