// Package styles documents the style hooks (CSS custom properties) that hosts
// may override to theme the elements. Every hook has a light and a dark
// default; the dark set is applied automatically when the environment prefers
// a dark color scheme. Hooks are expressed as a go-theme manifest so hosts can
// ship their own manifests and variants.
package styles

import (
	"strings"
)

// Hook is a named, overridable style variable.
type Hook struct {
	Name        string
	Light       string
	Dark        string
	Description string
	Color       bool
}

// Token returns the hook name without its leading dashes, the form go-theme
// uses for manifest tokens.
func (h Hook) Token() string {
	return strings.TrimPrefix(h.Name, "--")
}

var hooks = []Hook{
	{Name: "--card-bg", Light: "#ffffff", Dark: "#1f2937", Description: "Card background", Color: true},
	{Name: "--card-fg", Light: "#111827", Dark: "#f9fafb", Description: "Card text color", Color: true},
	{Name: "--card-muted", Light: "#6b7280", Dark: "#9ca3af", Description: "Secondary text color", Color: true},
	{Name: "--card-border", Light: "#e5e7eb", Dark: "#374151", Description: "Card border color", Color: true},
	{Name: "--card-focus-ring", Light: "#2563eb", Dark: "#60a5fa", Description: "Focus outline color", Color: true},
	{Name: "--card-radius", Light: "12px", Dark: "12px", Description: "Card corner radius"},
	{Name: "--card-padding", Light: "1.5rem", Dark: "1.5rem", Description: "Card inner spacing"},
	{Name: "--card-shadow", Light: "0 1px 3px rgba(0, 0, 0, 0.1)", Dark: "0 1px 3px rgba(0, 0, 0, 0.5)", Description: "Resting shadow"},
	{Name: "--card-hover-shadow", Light: "0 8px 24px rgba(0, 0, 0, 0.12)", Dark: "0 8px 24px rgba(0, 0, 0, 0.6)", Description: "Shadow on hover for interactive cards"},
	{Name: "--tag-radius", Light: "9999px", Dark: "9999px", Description: "Badge corner radius"},
	{Name: "--tag-padding", Light: "0.25rem 0.75rem", Dark: "0.25rem 0.75rem", Description: "Badge inner spacing"},
	{Name: "--tag-beginner-bg", Light: "#dcfce7", Dark: "#14532d", Description: "Beginner badge background", Color: true},
	{Name: "--tag-beginner-fg", Light: "#166534", Dark: "#bbf7d0", Description: "Beginner badge text", Color: true},
	{Name: "--tag-intermediate-bg", Light: "#dbeafe", Dark: "#1e3a8a", Description: "Intermediate badge background", Color: true},
	{Name: "--tag-intermediate-fg", Light: "#1e40af", Dark: "#bfdbfe", Description: "Intermediate badge text", Color: true},
	{Name: "--tag-advanced-bg", Light: "#fef3c7", Dark: "#78350f", Description: "Advanced badge background", Color: true},
	{Name: "--tag-advanced-fg", Light: "#92400e", Dark: "#fde68a", Description: "Advanced badge text", Color: true},
	{Name: "--tag-expert-bg", Light: "#fce7f3", Dark: "#831843", Description: "Expert badge background", Color: true},
	{Name: "--tag-expert-fg", Light: "#9d174d", Dark: "#fbcfe8", Description: "Expert badge text", Color: true},
}

var hookIndex = func() map[string]Hook {
	index := make(map[string]Hook, len(hooks))
	for _, hook := range hooks {
		index[hook.Token()] = hook
	}
	return index
}()

// Hooks returns the documented hooks in declaration order.
func Hooks() []Hook {
	out := make([]Hook, len(hooks))
	copy(out, hooks)
	return out
}

// Lookup finds a hook by name, with or without the leading dashes.
func Lookup(name string) (Hook, bool) {
	hook, ok := hookIndex[normalizeToken(name)]
	return hook, ok
}

func normalizeToken(name string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "--")
}

// validValue rejects values that could escape a declaration.
func validValue(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	return !strings.ContainsAny(trimmed, ";{}<>\"'\\")
}
