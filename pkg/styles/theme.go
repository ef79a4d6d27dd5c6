package styles

import (
	_ "embed"
	"sort"

	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName names the built-in manifest.
	ThemeName = "cardkit"
	// VariantLight and VariantDark name the two resolved configurations.
	VariantLight = "light"
	VariantDark  = "dark"
)

//go:embed assets/base.css
var baseCSS string

// BaseCSS returns the structural rules that consume the hooks. They are not
// overridable.
func BaseCSS() string {
	return baseCSS
}

// Overrides are host supplied hook values. Tokens apply to both schemes, Dark
// only when a dark scheme is active.
type Overrides struct {
	Tokens map[string]string
	Dark   map[string]string
}

// DefaultManifest expresses the hook defaults as a go-theme manifest: light
// values as base tokens and dark values as the "dark" variant.
func DefaultManifest() *theme.Manifest {
	light := make(map[string]string, len(hooks))
	dark := make(map[string]string, len(hooks))
	for _, hook := range hooks {
		light[hook.Token()] = hook.Light
		dark[hook.Token()] = hook.Dark
	}
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens:  light,
		Variants: map[string]theme.Variant{
			VariantDark: {Tokens: dark},
		},
	}
}

// Resolve merges hook defaults, the manifest and host overrides into a light
// and a dark renderer configuration. Base manifest tokens apply to both
// schemes and the manifest's dark variant applies on top for the dark one,
// following go-theme variant inheritance. Keys that are not documented hooks
// and values that could break out of a declaration are ignored.
func Resolve(manifest *theme.Manifest, overrides Overrides) (light, dark *theme.RendererConfig) {
	if manifest == nil {
		manifest = DefaultManifest()
	}

	lightTokens := make(map[string]string, len(hooks))
	darkTokens := make(map[string]string, len(hooks))
	for _, hook := range hooks {
		lightTokens[hook.Token()] = hook.Light
		darkTokens[hook.Token()] = hook.Dark
	}

	mergeTokens(lightTokens, manifest.Tokens)
	mergeTokens(darkTokens, manifest.Tokens)
	if variant, ok := manifest.Variants[VariantDark]; ok {
		mergeTokens(darkTokens, variant.Tokens)
	}

	mergeTokens(lightTokens, overrides.Tokens)
	mergeTokens(darkTokens, overrides.Tokens)
	mergeTokens(darkTokens, overrides.Dark)

	name := manifest.Name
	if name == "" {
		name = ThemeName
	}
	return rendererConfig(name, VariantLight, lightTokens), rendererConfig(name, VariantDark, darkTokens)
}

func mergeTokens(dst, src map[string]string) {
	for key, value := range src {
		hook, ok := Lookup(key)
		if !ok || !validValue(value) {
			continue
		}
		dst[hook.Token()] = value
	}
}

func rendererConfig(name, variant string, tokens map[string]string) *theme.RendererConfig {
	cssVars := make(map[string]string, len(tokens))
	for token, value := range tokens {
		cssVars["--"+token] = value
	}
	return &theme.RendererConfig{
		Theme:   name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}

// Declaration is a single custom property declaration.
type Declaration struct {
	Name  string
	Value string
}

// Declarations lists cfg's CSS variables sorted by name.
func Declarations(cfg *theme.RendererConfig) []Declaration {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return nil
	}
	out := make([]Declaration, 0, len(cfg.CSSVars))
	for name, value := range cfg.CSSVars {
		out = append(out, Declaration{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
