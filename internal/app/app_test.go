package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdadf/internal/config"
	"github.com/kyaoi/mdadf/internal/markdown"
	"github.com/kyaoi/mdadf/internal/tree"
)

func setupTestDir(t *testing.T, structure map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	paths := make([]string, 0, len(structure))
	for p := range structure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, relPath := range paths {
		absPath := filepath.Join(tempDir, filepath.FromSlash(relPath))
		require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0o755))
		require.NoError(t, os.WriteFile(absPath, []byte(structure[relPath]), 0o644))
	}
	return tempDir
}

func setupTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func settingsFor(t *testing.T, dir, folder string) config.Settings {
	t.Helper()
	s := config.Settings{ContentRoot: dir, FolderToPublish: folder}
	require.NoError(t, s.Validate())
	return s
}

func TestLoadTreeFromDisk(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"docs/index.md":              "---\ntitle: Home\n---\nwelcome",
		"docs/guide/guide.md":        "---\nsort-order: 1\n---\n# Guide",
		"docs/guide/sub-topic.md":    "sub",
		"docs/empty-folder/child.md": "child",
		"docs/zz-last.md":            "last",
	})

	root, err := LoadTree(settingsFor(t, dir, "docs"), "", setupTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "Home", root.File.PageTitle)
	var names []string
	for _, child := range root.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"guide", "empty-folder", "zz-last.md"}, names)

	guide := root.Children[0]
	assert.Equal(t, filepath.Join(dir, "docs", "guide", "guide.md"), guide.File.AbsolutePath)
	require.Len(t, guide.Children, 1)
	assert.Equal(t, "sub-topic.md", guide.Children[0].Name)

	folder := root.Children[1]
	assert.True(t, folder.File.Synthetic)
	assert.Equal(t, filepath.Join(dir, "docs", "empty-folder"), folder.File.AbsolutePath)
}

func TestLoadTreeNoFiles(t *testing.T) {
	dir := setupTestDir(t, map[string]string{"other/a.md": "a"})
	_, err := LoadTree(settingsFor(t, dir, "docs"), "", nil)
	assert.ErrorIs(t, err, tree.ErrEmptyInput)
}

func TestLoadTreeDuplicateTitles(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"a.md":     "---\ntitle: Overview\n---\n",
		"sub/b.md": "---\ntitle: Overview\n---\n",
	})
	_, err := LoadTree(settingsFor(t, dir, "."), "", nil)

	var dupErr *tree.DuplicateTitleError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "Overview", dupErr.Title)
}

func TestLoadTreeTagFilter(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"a.md":     "---\ntags: [Publish]\n---\n",
		"b.md":     "---\ntags: draft\n---\n",
		"sub/c.md": "---\ntags: publish\n---\n",
	})
	root, err := LoadTree(settingsFor(t, dir, "."), "publish", nil)
	require.NoError(t, err)

	var titles []string
	root.Walk(func(n *tree.Node, _ int) bool {
		titles = append(titles, n.Title())
		return true
	})
	assert.Equal(t, []string{filepath.Base(dir), "a", "sub", "c"}, titles)
}

func TestFilterByTag(t *testing.T) {
	files := []markdown.File{
		{FileName: "a.md", Frontmatter: map[string]any{"tags": []any{"x", "Y"}}},
		{FileName: "b.md", Frontmatter: map[string]any{"tags": "y"}},
		{FileName: "c.md", Frontmatter: map[string]any{"tags": []string{"z"}}},
		{FileName: "d.md", Frontmatter: map[string]any{}},
	}
	kept := FilterByTag(files, "y")
	require.Len(t, kept, 2)
	assert.Equal(t, "a.md", kept[0].FileName)
	assert.Equal(t, "b.md", kept[1].FileName)
	assert.Empty(t, FilterByTag(files, "missing"))
}

func TestPrintTree(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"index.md":      "---\ntitle: Home\n---\n",
		"guide/a.md":    "---\nsort-order: 3\n---\n",
		"guide/post.md": "---\nconnie-content-type: blogpost\n---\n",
	})
	root, err := LoadTree(settingsFor(t, dir, "."), "", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Print(&out, root, FormatTree))
	text := out.String()
	assert.Contains(t, text, "Home")
	assert.Contains(t, text, "guide")
	assert.Contains(t, text, "(folder)")
	assert.Contains(t, text, "a.md, sort 3")
	assert.Contains(t, text, "blog post")
	assert.Less(t, strings.Index(text, "a.md"), strings.Index(text, "post.md"))
}

func TestPrintJSON(t *testing.T) {
	dir := setupTestDir(t, map[string]string{"a.md": "# A", "b.md": "b"})
	root, err := LoadTree(settingsFor(t, dir, "."), "", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Print(&out, root, FormatJSON))

	var decoded struct {
		Name     string `json:"name"`
		Children []struct {
			Name string `json:"name"`
			File struct {
				PageTitle string `json:"pageTitle"`
				SortOrder int    `json:"sortOrder"`
			} `json:"file"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, dir, decoded.Name)
	require.Len(t, decoded.Children, 2)
	assert.Equal(t, "a", decoded.Children[0].File.PageTitle)
	assert.Equal(t, 100000, decoded.Children[0].File.SortOrder)
}

func TestPrintUnknownFormat(t *testing.T) {
	err := Print(&bytes.Buffer{}, &tree.Node{Name: "x"}, "yaml")
	assert.Error(t, err)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRebuildsOnChange(t *testing.T) {
	dir := setupTestDir(t, map[string]string{"first.md": "---\ntitle: First Page\n---\n"})
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, settingsFor(t, dir, "."), Options{Format: FormatTree, Output: out}, setupTestLogger(t))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "First Page")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "later"), 0o755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "later", "second.md"), []byte("---\ntitle: Second Page\n---\n"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Second Page")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
