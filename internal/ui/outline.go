package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/mdadf/internal/tree"
)

const maxTitleWidth = 48

// row is one visible line of the page outline.
type row struct {
	node  *tree.Node
	depth int
	label string
}

// outline lists the rows for the current expansion state. A non-empty query
// replaces the outline with every page matching it, labelled with the titles
// of its ancestors.
func outline(root *tree.Node, expanded map[*tree.Node]bool, query string) []row {
	if root == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))

	var rows []row
	var visit func(node *tree.Node, depth int, trail []string)
	visit = func(node *tree.Node, depth int, trail []string) {
		if query == "" {
			rows = append(rows, row{node: node, depth: depth, label: nodeLabel(node, depth, expanded[node])})
			if !expanded[node] {
				return
			}
		} else if pageMatches(node, query) {
			crumbs := append(trail[:len(trail):len(trail)], node.Title())
			rows = append(rows, row{node: node, depth: depth, label: strings.Join(crumbs, " > ")})
		}

		next := trail
		if depth > 0 {
			next = append(trail[:len(trail):len(trail)], node.Title())
		}
		for _, child := range node.Children {
			visit(child, depth+1, next)
		}
	}
	visit(root, 0, nil)
	return rows
}

// pageMatches reports whether the page title, file name or one of its tags
// contains the lower-cased query.
func pageMatches(node *tree.Node, query string) bool {
	if strings.Contains(strings.ToLower(node.Title()), query) {
		return true
	}
	if node.File == nil {
		return false
	}
	if strings.Contains(strings.ToLower(node.File.FileName), query) {
		return true
	}
	for _, tag := range node.File.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func nodeLabel(node *tree.Node, depth int, open bool) string {
	marker := "  "
	switch {
	case len(node.Children) > 0 && open:
		marker = "▾ "
	case len(node.Children) > 0:
		marker = "▸ "
	}
	label := strings.Repeat("  ", depth) + marker + ansi.Truncate(node.Title(), maxTitleWidth, "…")
	if node.File != nil && node.File.Synthetic {
		label += "/"
	}
	return label
}
