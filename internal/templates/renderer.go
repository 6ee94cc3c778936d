package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer executes declaration templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer over the embedded declaration templates.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: declarations}
}

// Render executes the named template with data.
func (r *Renderer) Render(name Name, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(name)+".tmpl", data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Render executes the named template with the default renderer.
func Render(name Name, data any) (string, error) {
	return NewRenderer().Render(name, data)
}
