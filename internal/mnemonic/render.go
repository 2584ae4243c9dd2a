package mnemonic

import (
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Renderer turns filled-out parameters into the final prompt text.
type Renderer interface {
	Render(schema *Schema, params Params) (string, error)
}

// Built-in prompt templates, keyed by template name and version
var builtinTemplates = map[string]string{
	templateKey("reading_mnem", 0): `Create a reading mnemonic{{with .target_concept}} for the concept "{{.}}"{{end}}.
{{- with .target_meaning_mnemonic}}
The meaning is already remembered with: {{.}}
{{- end}}
{{- with .component}}
Tie each sound of the reading to its concept:
{{- range $i, $c := .}}
-{{with $c.sound}} {{.}}:{{end}}{{with $c.component_concept}} {{.}}{{end}}{{with $c.component_concept_details}} ({{.}}){{end}}
{{- end}}
{{- end}}
`,
	templateKey("pure_concepts", 0): `Create a short mnemonic story{{with .target_concept}} helping to remember "{{.}}"{{end}}.
{{- with .component_concepts}}
The story must use these concepts:
{{- range $k, $v := .}}
- {{$v}}
{{- end}}
{{- end}}
`,
	templateKey("pure_concepts_revision", 0): `Improve the following mnemonic, keeping its concepts:
{{with .mnemonic}}{{.}}{{end}}
`,
}

func templateKey(name string, version int) string {
	return fmt.Sprintf("%s/%d", name, version)
}

// TextRenderer renders prompts with text/template.
// Empty parameters are removed before rendering.
type TextRenderer struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewTextRenderer creates a renderer holding the built-in templates.
func NewTextRenderer() *TextRenderer {
	r := &TextRenderer{templates: make(map[string]*template.Template)}
	for key, text := range builtinTemplates {
		r.templates[key] = template.Must(template.New(key).Option("missingkey=zero").Parse(text))
	}
	return r
}

// Register adds or replaces the template of (name, version).
func (r *TextRenderer) Register(name string, version int, text string) error {
	key := templateKey(name, version)
	tmpl, err := template.New(key).Option("missingkey=zero").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[key] = tmpl
	return nil
}

// Render executes the template of schema with the filled-out params.
func (r *TextRenderer) Render(schema *Schema, params Params) (string, error) {
	key := templateKey(schema.TemplateName, schema.TemplateVersion)

	r.mu.RLock()
	tmpl, ok := r.templates[key]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
	}

	filled, err := params.FilledOut()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(filled)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", key, err)
	}
	return b.String(), nil
}
