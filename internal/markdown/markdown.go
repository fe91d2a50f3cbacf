// Package markdown renders user-supplied free text (event descriptions,
// programs, comments) as sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts text to HTML and strips everything the UGC policy does
// not allow. Conversion failures degrade to escaped plain text.
func (r *Renderer) Render(text string) template.HTML {
	if text == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}
