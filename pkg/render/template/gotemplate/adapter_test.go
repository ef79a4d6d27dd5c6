package gotemplate

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardkit/pkg/testsupport"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := New(WithFS(fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"escape.tmpl":     {Data: []byte("{{ value }}|{{ value|safe }}")},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}
}

func TestRenderTemplateAutoescapes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape.tmpl", map[string]any{"value": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "&lt;b&gt;|<b>" {
		t.Fatalf("unexpected escaping %q", result)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestRenderStringWithStruct(t *testing.T) {
	engine := newEngine(t)

	type payload struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderString("Hi {{ name }}", payload{Name: "Grace"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Hi Grace" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	name := "cardkit_shout"
	err := engine.RegisterFilter(name, func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter(name, func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderString("{{ name|cardkit_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestMissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected load error")
	}
}
