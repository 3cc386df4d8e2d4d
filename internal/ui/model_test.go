package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdadf/internal/adf"
	"github.com/kyaoi/mdadf/internal/tree"
)

func page(title string) *adf.LocalFile {
	return &adf.LocalFile{PageTitle: title, ContentType: adf.ContentTypePage, SortOrder: adf.DefaultSortOrder}
}

func sampleTree() *tree.Node {
	folder := page("guide")
	folder.Synthetic = true
	root := page("docs")
	root.Synthetic = true
	return &tree.Node{Name: "/docs", File: root, Children: []*tree.Node{
		{Name: "guide", File: folder, Children: []*tree.Node{
			{Name: "intro.md", File: page("Intro")},
		}},
		{Name: "faq.md", File: page("FAQ")},
	}}
}

func labels(m *Model) []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.label)
	}
	return out
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestNodeLabel(t *testing.T) {
	root := sampleTree()
	assert.Equal(t, "▾ docs/", nodeLabel(root, 0, true))
	assert.Equal(t, "  ▸ guide/", nodeLabel(root.Children[0], 1, false))
	assert.Equal(t, "  ▾ guide/", nodeLabel(root.Children[0], 1, true))
	assert.Equal(t, "      Intro", nodeLabel(root.Children[0].Children[0], 2, false))
}

func TestOutlineFilter(t *testing.T) {
	root := sampleTree()
	root.Children[1].File.Tags = []string{"Ops"}

	rows := outline(root, map[*tree.Node]bool{}, "intro")
	require.Len(t, rows, 1)
	assert.Equal(t, "guide > Intro", rows[0].label)

	rows = outline(root, map[*tree.Node]bool{}, " ops ")
	require.Len(t, rows, 1)
	assert.Same(t, root.Children[1], rows[0].node)

	assert.Empty(t, outline(root, map[*tree.Node]bool{}, "nothing"))
	assert.Len(t, outline(root, map[*tree.Node]bool{}, ""), 1, "collapsed root hides its children")
}

func TestModelExpandCollapse(t *testing.T) {
	m := NewModel(State{Root: sampleTree(), DisplayRoot: "docs"})
	assert.Equal(t, []string{"▾ docs/", "  ▸ guide/", "    FAQ"}, labels(m))

	typeText(m, "jl")
	assert.Equal(t, []string{"▾ docs/", "  ▾ guide/", "      Intro", "    FAQ"}, labels(m))
	assert.Equal(t, 1, m.cursor)

	typeText(m, "l")
	assert.Equal(t, 2, m.cursor)

	typeText(m, "h")
	assert.Equal(t, 1, m.cursor, "leaf steps onto its parent")

	typeText(m, "h")
	assert.Equal(t, []string{"▾ docs/", "  ▸ guide/", "    FAQ"}, labels(m))
}

func TestModelFilterAndReveal(t *testing.T) {
	m := NewModel(State{Root: sampleTree()})

	typeText(m, "/in")
	require.True(t, m.filtering)
	assert.Equal(t, []string{"guide > Intro"}, labels(m))

	press(m, keyEnter)
	assert.False(t, m.filtering)
	assert.Equal(t, "in", m.filter.Value())

	press(m, keyEnter)
	assert.Empty(t, m.filter.Value())
	assert.Equal(t, []string{"▾ docs/", "  ▾ guide/", "      Intro", "    FAQ"}, labels(m))
	assert.Equal(t, "Intro", m.selected().Title())
}

func TestModelFilterEscRestoresOutline(t *testing.T) {
	m := NewModel(State{Root: sampleTree()})
	typeText(m, "/faq")
	assert.Equal(t, []string{"FAQ"}, labels(m))

	press(m, keyEsc)
	assert.False(t, m.filtering)
	assert.Equal(t, []string{"▾ docs/", "  ▸ guide/", "    FAQ"}, labels(m))
}

func TestModelPreviewFollowsSelection(t *testing.T) {
	m := NewModel(State{Root: sampleTree()})
	assert.Contains(t, m.markdown, "# docs")

	typeText(m, "j")
	assert.Contains(t, m.markdown, "# guide")
	assert.Contains(t, m.markdown, "- Intro")

	press(m, keyTab)
	typeText(m, "j")
	assert.Equal(t, 1, m.cursor, "keys scroll the preview while it has focus")
}

func TestModelView(t *testing.T) {
	m := NewModel(State{Root: sampleTree(), DisplayRoot: "docs"})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	view := m.View()
	assert.Contains(t, view, "4 pages")
	assert.Contains(t, view, "FAQ")
	assert.Contains(t, view, "filter pages")
}

func TestPagePreviewSynthetic(t *testing.T) {
	root := sampleTree()
	content, err := pagePreview(root.Children[0])
	require.NoError(t, err)
	assert.Contains(t, content, "# guide")
	assert.Contains(t, content, "- Intro")
	assert.Contains(t, content, "| sort order | 100000 |")
}

func TestPagePreviewReadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Note\n---\nbody text\n"), 0o644))

	file := page("Note")
	file.AbsolutePath = path
	file.Tags = []string{"a", "b"}
	content, err := pagePreview(&tree.Node{Name: "note.md", File: file})
	require.NoError(t, err)
	assert.Contains(t, content, "| tags | a, b |")
	assert.Contains(t, content, "body text")
	assert.NotContains(t, content, "title: Note")
}

func TestPagePreviewMissingSource(t *testing.T) {
	file := page("Gone")
	file.AbsolutePath = filepath.Join(t.TempDir(), "gone.md")
	_, err := pagePreview(&tree.Node{Name: "gone.md", File: file})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
