package element

import (
	"slices"
	"strings"
)

// Level selects one of four mutually exclusive badge styles.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"

	// DefaultLevel is used for empty and unrecognised values.
	DefaultLevel = LevelIntermediate
)

var (
	levelOrder = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

	levelStyles = map[Level]string{
		LevelBeginner:     "level-beginner",
		LevelIntermediate: "level-intermediate",
		LevelAdvanced:     "level-advanced",
		LevelExpert:       "level-expert",
	}
)

// ParseLevel normalises raw input. Anything outside the closed set resolves to
// DefaultLevel; invalid levels are never reported as errors.
func ParseLevel(raw string) Level {
	level := Level(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := levelStyles[level]; ok {
		return level
	}
	return DefaultLevel
}

// Valid reports whether l belongs to the closed set.
func (l Level) Valid() bool {
	_, ok := levelStyles[l]
	return ok
}

// StyleClass returns the style class for l, falling back to the default
// level's class.
func (l Level) StyleClass() string {
	if class, ok := levelStyles[l]; ok {
		return class
	}
	return levelStyles[DefaultLevel]
}

func (l Level) String() string {
	return string(l)
}

// Levels lists the closed set in ascending order.
func Levels() []Level {
	return slices.Clone(levelOrder)
}

// StyleClasses lists the level style classes in the same order as Levels.
func StyleClasses() []string {
	out := make([]string, 0, len(levelOrder))
	for _, level := range levelOrder {
		out = append(out, levelStyles[level])
	}
	return out
}
