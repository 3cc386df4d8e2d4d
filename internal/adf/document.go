package adf

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Document is the root of an Atlassian Document Format tree.
type Document struct {
	Version int     `json:"version"`
	Type    string  `json:"type"`
	Content []*Node `json:"content"`
}

// Node is a single block or inline element of a document.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark decorates a text node (strong, em, link, ...).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NewDocument wraps the provided block nodes in a version 1 document.
func NewDocument(content ...*Node) Document {
	if content == nil {
		content = []*Node{}
	}
	return Document{Version: 1, Type: "doc", Content: content}
}

// FolderPlaceholder returns the body used for folders that have no index
// page: a single children-display macro listing the pages beneath it.
func FolderPlaceholder() Document {
	return NewDocument(&Node{
		Type: "extension",
		Attrs: map[string]any{
			"layout":        "default",
			"extensionType": "com.atlassian.confluence.macro.core",
			"extensionKey":  "children",
			"parameters": map[string]any{
				"macroParams": map[string]any{},
				"macroMetadata": map[string]any{
					"schemaVersion": map[string]any{"value": "2"},
					"title":         "Page Tree",
				},
			},
		},
	})
}

// TakeLeadingTitle removes a level one heading at the very start of the
// document and returns its plain text.
func (d *Document) TakeLeadingTitle() (string, bool) {
	if len(d.Content) == 0 {
		return "", false
	}
	first := d.Content[0]
	if first.Type != "heading" || first.Attrs["level"] != 1 {
		return "", false
	}
	title := strings.TrimSpace(first.PlainText())
	if title == "" {
		return "", false
	}
	d.Content = d.Content[1:]
	return title, true
}

// PlainText concatenates the text of the node and all of its descendants.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, child := range n.Content {
		b.WriteString(child.PlainText())
	}
	return b.String()
}

// MarshalIndent encodes the document as indented JSON.
func (d Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
