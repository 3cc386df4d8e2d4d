package tree

import "github.com/kyaoi/mdadf/internal/adf"

// CheckUniqueTitles walks the tree and fails on the first page title that
// was already seen. Nodes without a title count as the empty title, so two
// of them collide.
func CheckUniqueTitles(root *Node) error {
	return checkUniqueTitles(root, map[string]struct{}{})
}

func checkUniqueTitles(node *Node, seen map[string]struct{}) error {
	title := node.Title()
	if _, ok := seen[title]; ok {
		return &DuplicateTitleError{Title: title, Path: pathOf(node.File)}
	}
	seen[title] = struct{}{}

	for _, child := range node.Children {
		if err := checkUniqueTitles(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func pathOf(f *adf.LocalFile) string {
	if f == nil {
		return "<no file>"
	}
	return f.AbsolutePath
}
