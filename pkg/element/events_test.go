package element

import (
	"testing"
)

func TestEventsBubbleToAncestors(t *testing.T) {
	page := NewEventTarget()
	section := NewEventTarget()
	section.SetParent(page)

	badge := NewTagBadge()
	badge.SetInteractive(true)
	badge.EventTarget().SetParent(section)

	var seen []string
	badge.AddEventListener(EventTagActivation, func(Event) { seen = append(seen, "element") })
	section.AddEventListener(EventTagActivation, func(Event) { seen = append(seen, "section") })
	page.AddEventListener(EventTagActivation, func(Event) { seen = append(seen, "page") })

	badge.HandleActivation()

	want := []string{"element", "section", "page"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected propagation %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("unexpected propagation order %v", seen)
		}
	}
}

func TestBoundaryStopsNonComposedEvents(t *testing.T) {
	host := NewEventTarget()
	inner := newBoundary(host)

	hits := 0
	host.AddEventListener("ping", func(Event) { hits++ })

	inner.Dispatch(Event{Type: "ping", Bubbles: true})
	if hits != 0 {
		t.Fatalf("non-composed event crossed the boundary")
	}
	inner.Dispatch(Event{Type: "ping", Bubbles: true, Composed: true})
	if hits != 1 {
		t.Fatalf("composed event should cross the boundary, hits=%d", hits)
	}
	inner.Dispatch(Event{Type: "ping", Composed: true})
	if hits != 1 {
		t.Fatalf("non-bubbling event must stay on its target")
	}
}

func TestRemoveListener(t *testing.T) {
	target := NewEventTarget()
	hits := 0
	remove := target.AddEventListener("ping", func(Event) { hits++ })

	target.Dispatch(Event{Type: "ping"})
	remove()
	remove()
	target.Dispatch(Event{Type: "ping"})

	if hits != 1 {
		t.Fatalf("expected one delivery, got %d", hits)
	}
	if target.ListenerCount("ping") != 0 {
		t.Fatalf("listener still registered")
	}
}

func TestEventIDsAreInjectable(t *testing.T) {
	badge := NewTagBadge(WithEventIDs(func() string { return "evt-1" }))
	badge.SetInteractive(true)
	events := collect(badge, EventTagActivation)

	badge.HandleActivation()
	if (*events)[0].ID != "evt-1" {
		t.Fatalf("unexpected event id %q", (*events)[0].ID)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]Key{
		"Enter":    KeyEnter,
		"enter":    KeyEnter,
		"\r":       KeyEnter,
		" ":        KeySpace,
		"Space":    KeySpace,
		"Spacebar": KeySpace,
		"Escape":   Key("Escape"),
	}
	for raw, want := range cases {
		if got := NormalizeKey(raw); got != want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", raw, got, want)
		}
	}
	if IsActivationKey("Escape") {
		t.Fatalf("escape is not an activation key")
	}
}

func TestHandleKeyInputAcceptsKeySpellings(t *testing.T) {
	for _, raw := range []string{"Enter", "enter", "\r", " ", "Space", "spacebar"} {
		badge := NewTagBadge()
		badge.SetInteractive(true)
		events := collect(badge, EventTagActivation)

		if !badge.HandleKeyInput(Key(raw)) {
			t.Fatalf("key %q should prevent the default action", raw)
		}
		if len(*events) != 1 {
			t.Fatalf("key %q: expected one event, got %d", raw, len(*events))
		}
	}

	badge := NewTagBadge()
	badge.SetInteractive(true)
	if badge.HandleKeyInput("Tab") {
		t.Fatalf("tab must not prevent the default action")
	}
}

func TestParseBool(t *testing.T) {
	cases := map[string]bool{
		"":            true,
		"true":        true,
		"interactive": true,
		"1":           true,
		"false":       false,
		"0":           false,
		"maybe":       false,
	}
	for raw, want := range cases {
		if got := parseBool(raw); got != want {
			t.Fatalf("parseBool(%q) = %v, want %v", raw, got, want)
		}
	}
}
