package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/natepiano/brp-mutate/internal/model"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	mutableStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	blockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
	detailPadding = lipgloss.NewStyle().PaddingLeft(2)
)

// BrowseAnalyses runs the interactive browser over saved analyses.
func BrowseAnalyses(output io.Writer, analyses map[m.TypeName]map[string]m.PathEntry) error {
	model := newBrowseModel(analyses)
	if len(model.rows) == 0 {
		_, err := fmt.Fprintln(output, "No saved analyses found")
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// browseRow is one selectable line: a path entry under its root type.
type browseRow struct {
	root  m.TypeName
	path  string
	entry m.PathEntry
}

type browseModel struct {
	rows     []browseRow
	cursor   int
	offset   int
	width    int
	height   int
	detail   viewport.Model
	showing  bool
	quitting bool
}

func newBrowseModel(analyses map[m.TypeName]map[string]m.PathEntry) browseModel {
	roots := make([]m.TypeName, 0, len(analyses))
	for root := range analyses {
		roots = append(roots, root)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	var rows []browseRow

	for _, root := range roots {
		paths := analyses[root]

		keys := make([]string, 0, len(paths))
		for key := range paths {
			keys = append(keys, key)
		}

		m.SortPaths(keys)

		for _, key := range keys {
			rows = append(rows, browseRow{root: root, path: key, entry: paths[key]})
		}
	}

	return browseModel{rows: rows, detail: viewport.New(80, 20)}
}

func (b browseModel) Init() tea.Cmd {
	return nil
}

func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.detail.Width = msg.Width - 2
		b.detail.Height = msg.Height - 3

		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b.showing {
		switch msg.String() {
		case "q", "esc", "enter":
			b.showing = false
			return b, nil
		default:
			var cmd tea.Cmd
			b.detail, cmd = b.detail.Update(msg)

			return b, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		b.quitting = true
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}
	case "enter":
		b.detail.SetContent(renderDetail(b.rows[b.cursor]))
		b.detail.GotoTop()
		b.showing = true
	}

	b.clampOffset()

	return b, nil
}

func (b *browseModel) visibleLines() int {
	if b.height <= 3 {
		return 20
	}

	return b.height - 3
}

func (b *browseModel) clampOffset() {
	lines := b.visibleLines()

	if b.cursor < b.offset {
		b.offset = b.cursor
	}

	if b.cursor >= b.offset+lines {
		b.offset = b.cursor - lines + 1
	}
}

func (b browseModel) View() string {
	if b.quitting {
		return ""
	}

	if b.showing {
		return headerStyle.Render("path detail") + "\n" +
			detailPadding.Render(b.detail.View()) + "\n" +
			footerStyle.Render("q/esc back, arrows scroll")
	}

	var sb strings.Builder

	sb.WriteString(headerStyle.Render("mutation paths"))
	sb.WriteByte('\n')

	end := b.offset + b.visibleLines()
	if end > len(b.rows) {
		end = len(b.rows)
	}

	for i := b.offset; i < end; i++ {
		line := renderRow(b.rows[i])
		if i == b.cursor {
			line = cursorStyle.Render(line)
		}

		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(footerStyle.Render(fmt.Sprintf("%d/%d  enter detail, q quit", b.cursor+1, len(b.rows))))

	return sb.String()
}

func renderRow(row browseRow) string {
	status := string(row.entry.Status)

	switch row.entry.Status {
	case m.Mutable:
		status = mutableStyle.Render(status)
	case m.NotMutable:
		status = blockedStyle.Render(status)
	case m.PartiallyMutable:
		status = partialStyle.Render(status)
	}

	return fmt.Sprintf("%-40s %-30s %s", row.root.Short()+displayRowPath(row.path), row.entry.Type.Short(), status)
}

func displayRowPath(path string) string {
	if path == "" {
		return ""
	}

	return " " + path
}

func renderDetail(row browseRow) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "root:   %s\n", row.root)
	fmt.Fprintf(&sb, "path:   %s\n", displayPath(row.path))
	fmt.Fprintf(&sb, "type:   %s\n", row.entry.Type)
	fmt.Fprintf(&sb, "kind:   %s\n", row.entry.Kind)
	fmt.Fprintf(&sb, "status: %s\n", row.entry.Status)

	if row.entry.Support != nil {
		fmt.Fprintf(&sb, "reason: %s\n", row.entry.Support.Describe())
	}

	if row.entry.Requirement != nil {
		fmt.Fprintf(&sb, "requires: %s\n", row.entry.Requirement.Description)
	}

	if row.entry.Example != nil {
		sb.WriteString("\nexample:\n")
		sb.WriteString(renderJSON(row.entry.Example))
	}

	for _, group := range row.entry.ExampleGroups {
		fmt.Fprintf(&sb, "\nvariants %s (%s):\n", strings.Join(group.Variants, ", "), group.Signature)
		sb.WriteString(renderJSON(group.Example))
	}

	if row.entry.Requirement != nil && row.entry.Requirement.Example != nil {
		sb.WriteString("\nfull root value with required variants:\n")
		sb.WriteString(renderJSON(row.entry.Requirement.Example))
	}

	return sb.String()
}

func renderJSON(v any) string {
	data, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return fmt.Sprintf("  <unrenderable: %v>", err)
	}

	return "  " + string(data) + "\n"
}
