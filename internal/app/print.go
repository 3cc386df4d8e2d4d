package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	json "github.com/goccy/go-json"

	"github.com/kyaoi/mdadf/internal/adf"
	"github.com/kyaoi/mdadf/internal/tree"
)

// Output formats accepted by Print.
const (
	FormatTree = "tree"
	FormatJSON = "json"
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")).Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	enumeratorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).MarginRight(1)
	syntheticStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
)

// Print writes the tree to w in the given format.
func Print(w io.Writer, root *tree.Node, format string) error {
	switch format {
	case "", FormatTree:
		_, err := fmt.Fprintln(w, renderTree(root))
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTree(root *tree.Node) *ltree.Tree {
	t := ltree.Root(nodeLabel(root)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	addChildren(t, root)
	return t
}

func addChildren(t *ltree.Tree, node *tree.Node) {
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			t.Child(nodeLabel(child))
			continue
		}
		sub := ltree.Root(nodeLabel(child))
		addChildren(sub, child)
		t.Child(sub)
	}
}

func nodeLabel(node *tree.Node) string {
	page := node.File
	if page == nil {
		return titleStyle.Render(node.Name)
	}
	label := titleStyle.Render(page.PageTitle)
	if page.Synthetic {
		return label + " " + syntheticStyle.Render("(folder)")
	}
	meta := page.FileName
	if page.SortOrder != adf.DefaultSortOrder {
		meta = fmt.Sprintf("%s, sort %d", meta, page.SortOrder)
	}
	if page.ContentType == adf.ContentTypeBlogPost {
		meta += ", blog post"
	}
	return label + " " + metaStyle.Render("("+meta+")")
}
