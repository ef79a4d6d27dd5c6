package host

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the declarative description of a host page: which elements it
// contains, their attributes and nested content, and theme overrides.
type Document struct {
	Title    string        `json:"title" yaml:"title"`
	Theme    ThemeConfig   `json:"theme" yaml:"theme"`
	Elements []Declaration `json:"elements" yaml:"elements"`
}

// ThemeConfig carries style hook overrides. Tokens apply to both color
// schemes, Dark only to the dark one.
type ThemeConfig struct {
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
	Dark   map[string]string `json:"dark" yaml:"dark"`
}

// Declaration declares a single element instance.
type Declaration struct {
	Tag        string            `json:"tag" yaml:"tag"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
	Content    string            `json:"content" yaml:"content"`
}

// LoadFile reads a document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("host: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Load reads a document from fsys.
func Load(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("host: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("host: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML document. source is only used in errors.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("host: file %s is empty", source)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Document{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return Document{}, fmt.Errorf("host: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	for idx := range doc.Elements {
		tag := strings.ToLower(strings.TrimSpace(doc.Elements[idx].Tag))
		if tag == "" {
			return Document{}, fmt.Errorf("host: file %s element %d has no tag", source, idx)
		}
		doc.Elements[idx].Tag = tag
	}
	return doc, nil
}
