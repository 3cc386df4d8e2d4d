package tree

import (
	"sort"

	"github.com/kyaoi/mdadf/internal/adf"
)

// Node is one page in the publish tree. Folder nodes carry no file until the
// tree has been processed; after Build every node has one.
type Node struct {
	Name     string         `json:"name"`
	Children []*Node        `json:"children"`
	File     *adf.LocalFile `json:"file,omitempty"`
}

// ChildByName returns the child node with the given name if it exists.
func (n *Node) ChildByName(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// AddChild appends child to the node's children.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk calls fn for the node and every descendant, depth first, parents
// before children. Returning false skips the node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Title is the page title of the node, or "" while it has no file.
func (n *Node) Title() string {
	if n.File == nil {
		return ""
	}
	return n.File.PageTitle
}

func (n *Node) folderChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name && child.File == nil {
			return child
		}
	}
	return nil
}

func (n *Node) removeChild(target *Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child != target {
			kept = append(kept, child)
		}
	}
	n.Children = kept
}

func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return Compare(n.Children[i].File, n.Children[j].File) < 0
	})
}
