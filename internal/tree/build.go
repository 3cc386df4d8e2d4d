package tree

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kyaoi/mdadf/internal/adf"
	"github.com/kyaoi/mdadf/internal/config"
	"github.com/kyaoi/mdadf/internal/markdown"
)

// SortOrderKey is the frontmatter key holding a page's sort order.
const SortOrderKey = "sort-order"

// indexNames are the file stems that stand in for their folder when no file
// is named after the folder itself. The first matching sibling wins.
var indexNames = map[string]struct{}{"index": {}, "README": {}, "readme": {}}

// Converter turns a Markdown file into a page.
type Converter interface {
	Convert(file markdown.File, settings config.Settings) (*adf.LocalFile, error)
}

// Builder constructs page trees from Markdown files.
type Builder struct {
	converter Converter
	stater    Stater
	settings  config.Settings
}

// NewBuilder creates a builder. Settings are handed to the converter as is.
// A nil stater uses the real filesystem.
func NewBuilder(converter Converter, stater Stater, settings config.Settings) *Builder {
	if stater == nil {
		stater = OSStater{}
	}
	return &Builder{converter: converter, stater: stater, settings: settings}
}

// Build constructs a tree that mirrors the directory layout of files below
// their common path. Folders are represented by their index page or by a
// generated placeholder page, siblings are ordered with Compare and page
// titles must be unique across the tree.
func (b *Builder) Build(files []markdown.File) (*Node, error) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.AbsolutePath
	}

	common, err := CommonPath(paths)
	if err != nil {
		return nil, err
	}
	// A common path that is itself one of the files (a single input) is
	// rooted at its directory instead.
	for _, p := range paths {
		if len(splitPath(p)) == len(common) {
			common = common[:len(common)-1]
			break
		}
	}
	commonPath := JoinSegments(common)

	root := &Node{Name: commonPath}
	for _, f := range files {
		rel := splitPath(f.AbsolutePath)[len(common):]
		if err := b.insert(root, f, rel); err != nil {
			return nil, err
		}
	}

	if err := b.process(commonPath, root); err != nil {
		return nil, err
	}
	if err := CheckUniqueTitles(root); err != nil {
		return nil, err
	}
	return root, nil
}

func (b *Builder) insert(node *Node, file markdown.File, rel []string) error {
	if len(rel) == 0 {
		return fmt.Errorf("%s: %w", file.AbsolutePath, ErrMissingFolderSegment)
	}

	name, rest := rel[0], rel[1:]
	if len(rest) == 0 {
		page, err := b.converter.Convert(file, b.settings)
		if err != nil {
			return fmt.Errorf("convert %s: %w", file.AbsolutePath, err)
		}
		if page == nil {
			return fmt.Errorf("convert %s: %w", file.AbsolutePath, errors.New("converter returned no page"))
		}
		page.SortOrder = sortOrder(file.Frontmatter)
		node.AddChild(&Node{Name: name, File: page})
	} else {
		child := node.folderChild(name)
		if child == nil {
			child = &Node{Name: name}
			node.AddChild(child)
		}
		if err := b.insert(child, file, rest); err != nil {
			return err
		}
	}

	node.sortChildren()
	return nil
}

// process gives every folder node a page, depth first. The stater is only
// consulted for nodes with children, to find where those children live; a
// leaf whose file has vanished since discovery is not detected here.
func (b *Builder) process(commonPath string, node *Node) error {
	if node.File == nil {
		if index := node.indexChild(); index != nil {
			node.File = index.File
			node.removeChild(index)
		} else {
			node.File = folderPage(commonPath, node.Name)
		}
	}

	if len(node.Children) == 0 {
		return nil
	}

	childPath, err := b.childCommonPath(node.File.AbsolutePath)
	if err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := b.process(childPath, child); err != nil {
			return err
		}
	}
	// Folder pages only know their sort order now.
	node.sortChildren()
	return nil
}

// childCommonPath is the directory the node's children live in: the
// containing directory when the page is backed by a file, otherwise the
// page path itself.
func (b *Builder) childCommonPath(path string) (string, error) {
	info, err := b.stater.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().IsRegular() {
		return filepath.Dir(path), nil
	}
	return path, nil
}

func (n *Node) indexChild() *Node {
	for _, child := range n.Children {
		if child.File != nil && markdown.Stem(child.Name) == n.Name {
			return child
		}
	}
	for _, child := range n.Children {
		if child.File == nil {
			continue
		}
		if _, ok := indexNames[markdown.Stem(child.Name)]; ok {
			return child
		}
	}
	return nil
}

// folderPage generates the placeholder page for a folder without an index.
// Title and folder name are the last path element of name, which is the folder
// name itself everywhere except at the root, where name is the absolute
// common path and the title becomes its base name.
func folderPage(commonPath, name string) *adf.LocalFile {
	abs := name
	if !filepath.IsAbs(name) {
		abs = filepath.Join(commonPath, name)
	}
	base := filepath.Base(name)
	return &adf.LocalFile{
		FolderName:   base,
		AbsolutePath: abs,
		FileName:     base + ".md",
		Contents:     adf.FolderPlaceholder(),
		PageTitle:    base,
		Frontmatter:  map[string]any{},
		Tags:         []string{},
		ContentType:  adf.ContentTypePage,
		SortOrder:    adf.DefaultSortOrder,
		Synthetic:    true,
	}
}

func sortOrder(fm map[string]any) int {
	switch v := fm[SortOrderKey].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return adf.DefaultSortOrder
}
