package ui

import (
	"fmt"
	"strings"

	"github.com/kyaoi/mdadf/internal/markdown"
	"github.com/kyaoi/mdadf/internal/tree"
)

// pagePreview renders the Markdown shown for a page: a metadata table
// followed by the page body read from disk, or the child list for a
// generated folder page.
func pagePreview(node *tree.Node) (string, error) {
	if node == nil || node.File == nil {
		return "", nil
	}
	page := node.File

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", page.PageTitle)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| path | `%s` |\n", page.AbsolutePath)
	fmt.Fprintf(&b, "| content type | %s |\n", page.ContentType)
	fmt.Fprintf(&b, "| sort order | %d |\n", page.SortOrder)
	if len(page.Tags) > 0 {
		fmt.Fprintf(&b, "| tags | %s |\n", strings.Join(page.Tags, ", "))
	}
	if page.PageID != "" {
		fmt.Fprintf(&b, "| page id | %s |\n", page.PageID)
	}
	if page.BlogPostDate != "" {
		fmt.Fprintf(&b, "| blog post date | %s |\n", page.BlogPostDate)
	}
	if page.DontChangeParentPage {
		b.WriteString("| parent | kept as is |\n")
	}
	b.WriteString("\n---\n\n")

	if page.Synthetic {
		b.WriteString("_Generated folder page listing its children._\n\n")
		for _, child := range node.Children {
			fmt.Fprintf(&b, "- %s\n", child.Title())
		}
		return b.String(), nil
	}

	source, err := markdown.Load(page.AbsolutePath)
	if err != nil {
		return "", err
	}
	b.WriteString(source.Contents)
	return b.String(), nil
}
