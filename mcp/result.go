package mcp

import (
	"encoding/json"
	"mime"
	"strings"

	"github.com/fwojciec/context7"
	"github.com/mitchellh/mapstructure"
)

// Ensure Result implements context7.CallResult at compile time.
var _ context7.CallResult = (*Result)(nil)

// Content is a single content item of a tool result.
type Content struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	MimeType string           `json:"mimeType,omitempty"`
	Resource *ResourceContent `json:"resource,omitempty"`
}

// ResourceContent is an embedded resource inside a content item.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Result is the result of a tools/call request.
type Result struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError,omitempty"`
}

// JSON decodes the structured content into v. Without structured content,
// a text body holding a JSON object is decoded instead.
func (r *Result) JSON(v any) bool {
	payload := r.StructuredContent
	if payload == nil {
		text, ok := r.Text()
		if !ok {
			return false
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil {
			return false
		}
		payload = obj
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return false
	}
	return decoder.Decode(payload) == nil
}

// Markdown returns the text of content items declared as markdown.
func (r *Result) Markdown() (string, bool) {
	var parts []string
	for _, c := range r.Content {
		switch {
		case c.Type == "text" && isMarkdown(c.MimeType):
			parts = append(parts, c.Text)
		case c.Type == "resource" && c.Resource != nil && isMarkdown(c.Resource.MimeType):
			parts = append(parts, c.Resource.Text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

// Text returns all text content items joined by newlines.
func (r *Result) Text() (string, bool) {
	var parts []string
	for _, c := range r.Content {
		if c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func isMarkdown(mimeType string) bool {
	if mimeType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return false
	}
	return mt == "text/markdown" || mt == "text/x-markdown"
}
