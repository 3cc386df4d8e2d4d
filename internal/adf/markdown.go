package adf

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// FromMarkdown parses Markdown source and converts it into a document.
// Extension names select goldmark extensions; unknown names are ignored and
// an empty list enables GFM.
func FromMarkdown(source []byte, extensions []string) Document {
	md := goldmark.New(goldmark.WithExtensions(collectExtensions(extensions)...))
	root := md.Parser().Parse(text.NewReader(source))

	c := &converter{source: source}
	return NewDocument(c.blocks(root)...)
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

type converter struct {
	source []byte
}

func (c *converter) blocks(parent ast.Node) []*Node {
	var out []*Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if block := c.block(n); block != nil {
			out = append(out, block)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) *Node {
	switch n := n.(type) {
	case *ast.Heading:
		return &Node{
			Type:    "heading",
			Attrs:   map[string]any{"level": n.Level},
			Content: c.inlines(n, nil),
		}
	case *ast.Paragraph, *ast.TextBlock:
		content := c.inlines(n, nil)
		if len(content) == 0 {
			return nil
		}
		return &Node{Type: "paragraph", Content: content}
	case *ast.List:
		node := &Node{Type: "bulletList"}
		if n.IsOrdered() {
			node.Type = "orderedList"
			node.Attrs = map[string]any{"order": n.Start}
		}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			content := c.blocks(item)
			if len(content) == 0 {
				content = []*Node{{Type: "paragraph"}}
			}
			node.Content = append(node.Content, &Node{Type: "listItem", Content: content})
		}
		return node
	case *ast.FencedCodeBlock:
		node := codeBlock(c.lines(n.Lines()))
		if lang := string(n.Language(c.source)); lang != "" {
			node.Attrs = map[string]any{"language": lang}
		}
		return node
	case *ast.CodeBlock:
		return codeBlock(c.lines(n.Lines()))
	case *ast.HTMLBlock:
		node := codeBlock(c.lines(n.Lines()))
		node.Attrs = map[string]any{"language": "html"}
		return node
	case *ast.Blockquote:
		return &Node{Type: "blockquote", Content: c.blocks(n)}
	case *ast.ThematicBreak:
		return &Node{Type: "rule"}
	case *east.Table:
		return c.table(n)
	}
	return nil
}

func (c *converter) table(t *east.Table) *Node {
	node := &Node{Type: "table"}
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cellType := "tableCell"
		if _, ok := row.(*east.TableHeader); ok {
			cellType = "tableHeader"
		}
		tr := &Node{Type: "tableRow"}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			para := &Node{Type: "paragraph", Content: c.inlines(cell, nil)}
			tr.Content = append(tr.Content, &Node{Type: cellType, Content: []*Node{para}})
		}
		node.Content = append(node.Content, tr)
	}
	return node
}

func (c *converter) inlines(parent ast.Node, marks []Mark) []*Node {
	var out []*Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n, marks)...)
	}
	return out
}

func (c *converter) inline(n ast.Node, marks []Mark) []*Node {
	switch n := n.(type) {
	case *ast.Text:
		value := string(n.Segment.Value(c.source))
		if n.SoftLineBreak() {
			value += " "
		}
		out := textNodes(value, marks)
		if n.HardLineBreak() {
			out = append(out, &Node{Type: "hardBreak"})
		}
		return out
	case *ast.String:
		return textNodes(string(n.Value), marks)
	case *ast.Emphasis:
		mark := Mark{Type: "em"}
		if n.Level >= 2 {
			mark.Type = "strong"
		}
		return c.inlines(n, withMark(marks, mark))
	case *ast.CodeSpan:
		return textNodes(c.plainText(n), []Mark{{Type: "code"}})
	case *ast.Link:
		return c.inlines(n, withMark(marks, linkMark(string(n.Destination))))
	case *ast.AutoLink:
		url := string(n.URL(c.source))
		return textNodes(url, withMark(marks, linkMark(url)))
	case *ast.Image:
		dest := string(n.Destination)
		label := c.plainText(n)
		if label == "" {
			label = dest
		}
		return textNodes(label, withMark(marks, linkMark(dest)))
	case *ast.RawHTML:
		return textNodes(c.segments(n.Segments), marks)
	case *east.Strikethrough:
		return c.inlines(n, withMark(marks, Mark{Type: "strike"}))
	case *east.TaskCheckBox:
		if n.IsChecked {
			return textNodes("[x] ", marks)
		}
		return textNodes("[ ] ", marks)
	}
	return c.inlines(n, marks)
}

func (c *converter) plainText(n ast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			b.Write(child.Segment.Value(c.source))
		case *ast.String:
			b.Write(child.Value)
		default:
			b.WriteString(c.plainText(child))
		}
	}
	return b.String()
}

func (c *converter) lines(lines *text.Segments) string {
	return strings.TrimSuffix(c.segments(lines), "\n")
}

func (c *converter) segments(segs *text.Segments) string {
	if segs == nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func codeBlock(body string) *Node {
	node := &Node{Type: "codeBlock"}
	if body != "" {
		node.Content = []*Node{{Type: "text", Text: body}}
	}
	return node
}

func textNodes(value string, marks []Mark) []*Node {
	if value == "" {
		return nil
	}
	return []*Node{{Type: "text", Text: value, Marks: marks}}
}

func linkMark(href string) Mark {
	return Mark{Type: "link", Attrs: map[string]any{"href": href}}
}

func withMark(marks []Mark, mark Mark) []Mark {
	out := make([]Mark, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}
