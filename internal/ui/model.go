package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/mdadf/internal/tree"
)

const (
	defaultOutlineWidth = 36
	minOutlineWidth     = 16
)

type pane int

const (
	outlinePane pane = iota
	previewPane
)

var (
	paneBorder   = lipgloss.Color("#3b4261")
	activeBorder = lipgloss.Color("#7aa2f7")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5")).Background(lipgloss.Color("#1f2335")).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	folderRow   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff"))
	cursorRow   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")).Bold(true)
	idleCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")).Background(lipgloss.Color("#283457"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Padding(0, 1)
)

// Model is the Bubble Tea program for inspecting a page tree: an outline of
// pages on the left and a rendered preview of the selected page on the right.
type Model struct {
	root     *tree.Node
	parents  map[*tree.Node]*tree.Node
	expanded map[*tree.Node]bool
	rows     []row
	cursor   int
	offset   int
	focus    pane

	filter    textinput.Model
	filtering bool

	preview   viewport.Model
	renderer  *glamour.TermRenderer
	wrapWidth int
	shown     *tree.Node
	markdown  string

	help         help.Model
	title        string
	message      string
	outlineWidth int
	bodyHeight   int
	width        int
	height       int
	err          error
}

// NewModel constructs the browser for state. The root starts expanded and
// selected.
func NewModel(state State) *Model {
	filter := textinput.New()
	filter.Prompt = "filter: "
	filter.Placeholder = "title, file or tag"
	filter.CharLimit = 128

	m := &Model{
		root:         state.Root,
		parents:      map[*tree.Node]*tree.Node{},
		expanded:     map[*tree.Node]bool{},
		filter:       filter,
		preview:      viewport.New(0, 0),
		help:         help.New(),
		title:        state.DisplayRoot,
		message:      state.Message,
		outlineWidth: state.OutlineWidth,
	}
	if m.outlineWidth <= 0 {
		m.outlineWidth = defaultOutlineWidth
	}

	if m.root == nil {
		m.markdown = m.message
		m.preview.SetContent(m.message)
		return m
	}
	m.root.Walk(func(node *tree.Node, _ int) bool {
		for _, child := range node.Children {
			m.parents[child] = node
		}
		return true
	})
	m.expanded[m.root] = true
	m.rebuild(m.root)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Clear):
		m.stopFiltering()
		m.filter.SetValue("")
		m.rebuild(m.selected())
		return nil
	case msg.Type == tea.KeyEnter:
		m.stopFiltering()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuild(m.selected())
	return cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	case key.Matches(msg, keys.Filter):
		m.filtering = true
		m.focus = outlinePane
		m.filter.CursorEnd()
		m.layout()
		return m.filter.Focus()
	case key.Matches(msg, keys.Clear):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.rebuild(m.selected())
		}
		return nil
	case key.Matches(msg, keys.Pane):
		if m.focus == outlinePane {
			m.focus = previewPane
		} else {
			m.focus = outlinePane
		}
		return nil
	}

	if m.focus == previewPane {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.moveTo(m.cursor - 1)
	case key.Matches(msg, keys.Down):
		m.moveTo(m.cursor + 1)
	case key.Matches(msg, keys.Top):
		m.moveTo(0)
	case key.Matches(msg, keys.Bottom):
		m.moveTo(len(m.rows) - 1)
	case key.Matches(msg, keys.Expand):
		m.expand()
	case key.Matches(msg, keys.Collapse):
		m.collapse()
	case key.Matches(msg, keys.Open):
		if m.filter.Value() != "" {
			m.reveal(m.selected())
		} else {
			m.focus = previewPane
		}
	}
	return nil
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.filter.Blur()
	m.layout()
}

func (m *Model) selected() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

// rebuild recomputes the visible rows and keeps keep selected when it is
// still visible.
func (m *Model) rebuild(keep *tree.Node) {
	m.rows = outline(m.root, m.expanded, m.filter.Value())
	cursor := m.cursor
	for i, r := range m.rows {
		if r.node == keep {
			cursor = i
			break
		}
	}
	m.moveTo(cursor)
}

func (m *Model) moveTo(index int) {
	if len(m.rows) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = max(0, min(index, len(m.rows)-1))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.bodyHeight > 0 && m.cursor >= m.offset+m.bodyHeight {
		m.offset = m.cursor - m.bodyHeight + 1
	}
	m.show(m.selected())
}

// expand opens the selected page, or steps onto its first child when it is
// already open.
func (m *Model) expand() {
	node := m.selected()
	if node == nil || len(node.Children) == 0 || m.filter.Value() != "" {
		return
	}
	if !m.expanded[node] {
		m.expanded[node] = true
		m.rebuild(node)
		return
	}
	m.moveTo(m.cursor + 1)
}

// collapse closes the selected page, or steps onto its parent when there is
// nothing to close.
func (m *Model) collapse() {
	node := m.selected()
	if node == nil || m.filter.Value() != "" {
		return
	}
	if m.expanded[node] && len(node.Children) > 0 {
		m.expanded[node] = false
		m.rebuild(node)
		return
	}
	if parent := m.parents[node]; parent != nil {
		m.rebuild(parent)
	}
}

// reveal drops the filter and opens every ancestor of node so that it is
// selected in the full outline.
func (m *Model) reveal(node *tree.Node) {
	if node == nil {
		return
	}
	for p := m.parents[node]; p != nil; p = m.parents[p] {
		m.expanded[p] = true
	}
	m.filter.SetValue("")
	m.rebuild(node)
}

func (m *Model) show(node *tree.Node) {
	if node == nil || node == m.shown {
		return
	}
	m.shown = node
	content, err := pagePreview(node)
	m.err = err
	if err != nil {
		content = fmt.Sprintf("# %s\n\nCannot read page: %v\n", node.Title(), err)
	}
	m.markdown = content
	m.render()
}

func (m *Model) render() {
	content := m.markdown
	if m.renderer != nil {
		rendered, err := m.renderer.Render(m.markdown)
		if err != nil {
			m.err = err
		} else {
			content = rendered
		}
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width

	m.bodyHeight = max(m.height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()), 1)
	previewWidth := max(m.width-m.outlinePaneWidth()-1, 1)

	m.preview.Width = previewWidth
	m.preview.Height = m.bodyHeight
	m.moveTo(m.cursor)

	wrap := max(previewWidth-2, 10)
	if m.root == nil || wrap == m.wrapWidth {
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.TokyoNightStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	m.wrapWidth = wrap
	m.render()
}

// View implements tea.Model.
func (m *Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.outlineView(), m.preview.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m *Model) headerView() string {
	title := m.title
	if title == "" && m.root != nil {
		title = m.root.Title()
	}
	parts := []string{"mdadf", title}
	if m.root != nil {
		parts = append(parts, fmt.Sprintf("%d pages", m.root.Count()))
	}
	if q := strings.TrimSpace(m.filter.Value()); q != "" {
		parts = append(parts, fmt.Sprintf("%d matching %q", len(m.rows), q))
	}
	return headerStyle.Width(max(m.width, 1)).Render(strings.Join(parts, "  "))
}

func (m *Model) footerView() string {
	lines := []string{m.statusLine()}
	if m.filtering {
		lines = append(lines, " "+m.filter.View())
	}
	lines = append(lines, " "+m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	node := m.selected()
	if node == nil || node.File == nil {
		return statusStyle.Render(m.message)
	}
	page := node.File
	fields := []string{page.AbsolutePath, fmt.Sprintf("sort %d", page.SortOrder)}
	if page.Synthetic {
		fields = append(fields, "generated")
	}
	if len(page.Tags) > 0 {
		fields = append(fields, "#"+strings.Join(page.Tags, " #"))
	}
	return statusStyle.Render(strings.Join(fields, " | "))
}

// outlinePaneWidth is the outline width without its border, capped at half
// the screen.
func (m *Model) outlinePaneWidth() int {
	return max(minOutlineWidth, min(m.outlineWidth, m.width/2))
}

func (m *Model) outlineView() string {
	width := m.outlinePaneWidth()
	height := max(m.bodyHeight, 1)

	var lines []string
	if len(m.rows) == 0 && m.root != nil {
		lines = append(lines, rowStyle.Render("no matching pages"))
	}
	end := min(m.offset+height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		label := ansi.Truncate(r.label, width-1, "…")
		style := rowStyle
		switch {
		case i == m.cursor && m.focus == outlinePane:
			style = cursorRow
		case i == m.cursor:
			style = idleCursor
		case r.node.File != nil && r.node.File.Synthetic:
			style = folderRow
		}
		lines = append(lines, style.Render(label))
	}

	border := paneBorder
	if m.focus == outlinePane {
		border = activeBorder
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(border).
		Render(strings.Join(lines, "\n"))
}
