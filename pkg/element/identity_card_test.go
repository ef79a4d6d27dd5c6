package element

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardkit/pkg/view"
)

func collect(target interface {
	AddEventListener(string, Listener) func()
}, eventType string) *[]Event {
	var events []Event
	target.AddEventListener(eventType, func(evt Event) {
		events = append(events, evt)
	})
	return &events
}

func TestIdentityCardScenario(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Sarah Johnson")
	card.SetSecondaryText("Frontend Developer")
	card.SetMediaReference("")
	card.SetInteractive(true)

	root := card.Render()
	text := root.TextContent()
	if !strings.Contains(text, "Sarah Johnson") || !strings.Contains(text, "Frontend Developer") {
		t.Fatalf("expected name and title in output, got %q", text)
	}
	if root.Find(view.ByTag("img")) != nil {
		t.Fatalf("expected no media element for empty media reference")
	}
	if tabindex, _ := root.Attr("tabindex"); tabindex != "0" {
		t.Fatalf("expected focusable root, got tabindex %q", tabindex)
	}
	if r, _ := root.Attr("role"); r != "button" {
		t.Fatalf("expected interactive role, got %q", r)
	}

	events := collect(card, EventIdentityCardActivation)
	card.HandleActivation()

	if len(*events) != 1 {
		t.Fatalf("expected one event, got %d", len(*events))
	}
	want := map[string]string{
		"identifierText": "Sarah Johnson",
		"secondaryText":  "Frontend Developer",
	}
	if diff := cmp.Diff(want, (*events)[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if evt := (*events)[0]; !evt.Bubbles || !evt.Composed || evt.Target != TagIdentityCard {
		t.Fatalf("unexpected event flags: %+v", evt)
	}
}

func TestIdentityCardMediaFallbackText(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Ada Lovelace")
	card.SetMediaReference("https://example.com/ada.png")

	img := card.Render().Find(view.ByTag("img"))
	if img == nil {
		t.Fatalf("expected media element")
	}
	if alt, _ := img.Attr("alt"); alt != "Avatar of Ada Lovelace" {
		t.Fatalf("unexpected alt text %q", alt)
	}
	if src, _ := img.Attr("src"); src != "https://example.com/ada.png" {
		t.Fatalf("unexpected src %q", src)
	}
}

func TestIdentityCardOptionalParts(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Solo")

	root := card.Render()
	if root.Find(view.ByClass("card-title")) != nil {
		t.Fatalf("secondary text block should be omitted when empty")
	}
	if root.Find(view.ByClass("card-name")) == nil {
		t.Fatalf("primary text block must always render")
	}
	if tabindex, _ := root.Attr("tabindex"); tabindex != "-1" {
		t.Fatalf("static card must not be focusable, got %q", tabindex)
	}
	if root.HasClass(ClassCardHoverable) {
		t.Fatalf("static card must not carry hover affordance")
	}

	// content region follows the primary content
	last := root.Children[len(root.Children)-1]
	if !last.HasClass("card-content") {
		t.Fatalf("expected content region last, got %v", last.Classes())
	}
}

func TestIdentityCardContentIsSanitised(t *testing.T) {
	card := NewIdentityCard(WithContent(`<p>Bio</p><img src=x onerror="alert(1)">`))
	card.SetIdentifierText(`<b>Mallory</b>`)

	markup, err := view.HTMLString(card.Render())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(markup, "onerror") {
		t.Fatalf("event handler attribute survived: %s", markup)
	}
	if strings.Contains(markup, "<b>Mallory</b>") {
		t.Fatalf("identifier text interpreted as markup: %s", markup)
	}
	if !strings.Contains(markup, "<p>Bio</p>") {
		t.Fatalf("expected host content in output: %s", markup)
	}
}

func TestIdentityCardNonInteractiveNeverEmits(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Quiet")
	events := collect(card, EventIdentityCardActivation)

	card.HandleActivation()
	for _, key := range []Key{KeyEnter, KeySpace, "Escape", "a"} {
		if card.HandleKeyInput(key) {
			t.Fatalf("key %q should not be consumed by a static card", key)
		}
	}
	if len(*events) != 0 {
		t.Fatalf("expected no events, got %d", len(*events))
	}
}

func TestIdentityCardClickAndKeyPayloadsMatch(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Grace Hopper")
	card.SetSecondaryText("Rear Admiral")
	card.SetInteractive(true)
	events := collect(card, EventIdentityCardActivation)

	card.HandleActivation()
	if !card.HandleKeyInput(KeyEnter) {
		t.Fatalf("enter should be consumed")
	}
	if !card.HandleKeyInput(KeySpace) {
		t.Fatalf("space should be consumed")
	}
	if card.HandleKeyInput("Tab") {
		t.Fatalf("tab must not be consumed")
	}

	if len(*events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(*events))
	}
	for i := 1; i < len(*events); i++ {
		if diff := cmp.Diff((*events)[0].Payload, (*events)[i].Payload); diff != "" {
			t.Fatalf("payload %d differs (-click +key):\n%s", i, diff)
		}
	}
}

func TestIdentityCardPayloadIsSnapshot(t *testing.T) {
	card := NewIdentityCard()
	card.SetIdentifierText("Before")
	card.SetInteractive(true)
	events := collect(card, EventIdentityCardActivation)

	card.HandleActivation()
	card.SetIdentifierText("After")
	(*events)[0].Payload["identifierText"] = "tampered"

	if got := card.IdentifierText(); got != "After" {
		t.Fatalf("payload mutation leaked into the element: %q", got)
	}
}

func TestIdentityCardRenderIsDeterministic(t *testing.T) {
	card := NewIdentityCard(WithContent("<em>hi</em>"))
	card.SetIdentifierText("Linus")
	card.SetSecondaryText("Maintainer")
	card.SetMediaReference("/linus.png")
	card.SetInteractive(true)

	first, err := view.HTMLString(card.Render())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := view.HTMLString(card.Render())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatalf("render not byte identical:\n%s\n%s", first, second)
	}

	twin := NewIdentityCard(WithContent("<em>hi</em>"))
	for name, value := range card.Attributes() {
		twin.SetAttribute(name, value)
	}
	if !view.Equal(card.Render(), twin.Render()) {
		t.Fatalf("same attribute snapshot produced different views")
	}
}

func TestIdentityCardAttributes(t *testing.T) {
	card := NewIdentityCard()

	if !card.SetAttribute(AttrIdentifierText, "Ken") {
		t.Fatalf("identifier-text should be known")
	}
	if card.SetAttribute("unknown-attr", "x") {
		t.Fatalf("unknown attributes must be ignored")
	}
	card.SetAttribute(AttrInteractive, "")
	if !card.Interactive() {
		t.Fatalf("present boolean attribute should enable interactive")
	}
	card.SetAttribute(AttrInteractive, "false")
	if card.Interactive() {
		t.Fatalf("interactive=false should disable")
	}
	card.SetAttribute(AttrInteractive, "true")
	card.RemoveAttribute(AttrInteractive)
	if card.Interactive() {
		t.Fatalf("removing interactive should reset to default")
	}

	want := map[string]string{
		AttrIdentifierText: "Ken",
		AttrSecondaryText:  "",
		AttrMediaReference: "",
		AttrInteractive:    "false",
	}
	if diff := cmp.Diff(want, card.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}
