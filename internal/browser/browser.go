// Package browser implements the interactive catalog explorer: a terminal
// UI for walking modules, groups and subgroups down to a command's usage.
package browser

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/render"
)

// node is one entry in the navigation tree. Leaves carry command metadata;
// inner nodes only group their children.
type node struct {
	name     string
	kind     string
	meta     catalog.CommandMeta
	children []*node
}

func (n *node) leaf() bool {
	return len(n.children) == 0 && n.kind == "command"
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *node) ensureChild(name, kind string) *node {
	if c := n.child(name); c != nil {
		return c
	}
	c := &node{name: name, kind: kind}
	n.children = append(n.children, c)
	return c
}

func (n *node) sortRec() {
	sort.Slice(n.children, func(i, j int) bool {
		return n.children[i].name < n.children[j].name
	})
	for _, c := range n.children {
		c.sortRec()
	}
}

// buildTree arranges the catalog into the module/group/subgroup/command
// hierarchy the browser walks. Root commands sit next to modules at the top
// level.
func buildTree(cat *catalog.Catalog) *node {
	root := &node{name: "", kind: "root"}

	for name, mod := range cat.Modules {
		modNode := root.ensureChild(name, "module")
		for _, set := range mod.Sets {
			for _, meta := range set {
				group, subgroup := meta.Placement()
				parent := modNode.ensureChild(group, "group")
				if subgroup != "" {
					parent = parent.ensureChild(subgroup, "subgroup")
				}
				leaf := parent.ensureChild(meta.Name, "command")
				leaf.meta = meta
			}
		}
	}
	for name, meta := range cat.Roots {
		leaf := root.ensureChild(name, "command")
		leaf.meta = meta
	}

	root.sortRec()
	return root
}

type model struct {
	entryPoint string
	renderer   render.Renderer

	// stack holds the path from the root to the node whose children are
	// listed; cursors holds the remembered cursor per stack level.
	stack   []*node
	cursors []int

	width  int
	height int

	help      help.Model
	cancelled bool
}

func newModel(cat *catalog.Catalog, entryPoint string) model {
	return model{
		entryPoint: entryPoint,
		renderer:   render.Renderer{EntryPoint: entryPoint},
		stack:      []*node{buildTree(cat)},
		cursors:    []int{0},
		help:       help.New(),
	}
}

func (m model) current() *node {
	return m.stack[len(m.stack)-1]
}

func (m model) cursor() int {
	return m.cursors[len(m.cursors)-1]
}

func (m *model) setCursor(i int) {
	m.cursors[len(m.cursors)-1] = i
}

func (m *model) moveCursor(delta int) {
	n := len(m.current().children)
	if n == 0 {
		return
	}
	// wrap around, matching single steps only
	c := m.cursor() + delta
	switch {
	case delta == 1 && c >= n:
		c = 0
	case delta == -1 && c < 0:
		c = n - 1
	case c < 0:
		c = 0
	case c >= n:
		c = n - 1
	}
	m.setCursor(c)
}

func (m *model) descend() {
	children := m.current().children
	if len(children) == 0 {
		return
	}
	selected := children[m.cursor()]
	if selected.leaf() {
		// leaves have no children to list; the detail panel already
		// shows their usage
		return
	}
	m.stack = append(m.stack, selected)
	m.cursors = append(m.cursors, 0)
}

func (m *model) ascend() bool {
	if len(m.stack) == 1 {
		return false
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.cursors = m.cursors[:len(m.cursors)-1]
	return true
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEsc, tea.KeyBackspace:
			if !m.ascend() {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil

		case tea.KeyUp:
			m.moveCursor(-1)
		case tea.KeyDown:
			m.moveCursor(1)
		case tea.KeyHome:
			m.setCursor(0)
		case tea.KeyEnd:
			m.setCursor(len(m.current().children) - 1)
		case tea.KeyEnter, tea.KeySpace:
			m.descend()

		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				m.cancelled = true
				return m, tea.Quit
			case "j":
				m.moveCursor(1)
			case "k":
				m.moveCursor(-1)
			case "g":
				m.setCursor(0)
			case "G":
				m.setCursor(len(m.current().children) - 1)
			case "l":
				m.descend()
			case "h":
				m.ascend()
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n\n")

	children := m.current().children
	if len(children) == 0 {
		b.WriteString("No commands available\n")
	} else {
		left := m.renderList(children)
		right := m.renderDetail(children[m.cursor()])
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) renderBreadcrumb() string {
	title := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	crumbs := []string{m.entryPoint}
	for _, n := range m.stack[1:] {
		crumbs = append(crumbs, n.name)
	}
	return title.Render(strings.Join(crumbs, " > ")) +
		muted.Render(fmt.Sprintf("  (%d entries)", len(m.current().children)))
}

func (m model) renderList(children []*node) string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	width := 0
	for _, c := range children {
		if len(c.name) > width {
			width = len(c.name)
		}
	}

	lines := make([]string, len(children))
	for i, c := range children {
		cursor := "   "
		if i == m.cursor() {
			cursor = " > "
		}

		name := lipgloss.NewStyle().Width(width + 2)
		if i == m.cursor() {
			name = name.Bold(true).Background(lipgloss.Color("237"))
		}

		lines[i] = cursor + name.Render(c.name) + muted.Render(c.kind)
	}
	return strings.Join(lines, "\n")
}

// renderDetail shows the selection's usage text: full command help for a
// leaf, a child summary for inner nodes.
func (m model) renderDetail(selected *node) string {
	var content string
	if selected.leaf() {
		typed := make([]string, 0, len(m.stack))
		for _, n := range m.stack[1:] {
			typed = append(typed, n.name)
		}
		typed = append(typed, selected.name)
		content = strings.TrimSuffix(m.renderer.Command(selected.meta, typed), "\n")
	} else {
		counts := make(map[string]int)
		for _, c := range selected.children {
			counts[c.kind]++
		}
		kinds := make([]string, 0, len(counts))
		for kind := range counts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		lines := []string{selected.name}
		for _, kind := range kinds {
			lines = append(lines, fmt.Sprintf("%d %ss", counts[kind], kind))
		}
		content = strings.Join(lines, "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(content)
}

func (m model) renderFooter() string {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
	return m.help.ShortHelpView(bindings)
}

// Run launches the catalog browser over the given catalog.
func Run(cat *catalog.Catalog, entryPoint string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the catalog browser requires an interactive terminal")
	}

	p := tea.NewProgram(
		newModel(cat, entryPoint),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
