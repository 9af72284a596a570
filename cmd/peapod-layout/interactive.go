package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/peapod/errors"
	"github.com/wippyai/peapod/phenotype"
)

var detailStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

type interactiveModel struct {
	filename string
	layouts  []phenotype.Layout
	table    table.Model
}

func newInteractiveModel(filename string, layouts []phenotype.Layout) *interactiveModel {
	cols := make([]table.Column, len(reportHeaders))
	for i, h := range reportHeaders {
		cols[i] = table.Column{Title: h, Width: max(len(h), 8)}
	}
	cols[colName].Width = 24

	rows := make([]table.Row, len(layouts))
	for i, l := range layouts {
		rows[i] = table.Row(reportRow(l))
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(s)

	return &interactiveModel{filename: filename, layouts: layouts, table: t}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// leave room for the title, detail pane and help line
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(min(h, len(m.layouts)+1))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Peapod layout"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")
	if i := m.table.Cursor(); i >= 0 && i < len(m.layouts) {
		b.WriteString(detailStyle.Render(detail(m.layouts[i])))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • q quit"))
	return b.String()
}

// detail is the per-case breakdown shown under the table.
func detail(l phenotype.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s, %d cases, %d tag bits\n", l.Kind, l.Name, len(l.Cases), l.TagBits)
	for _, line := range caseLines(l) {
		b.WriteString(caseStyle.Render(line))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "element: %d bits split, %d bits canonical (%s)",
		l.ElementBits, l.CanonicalBits, formatSaving(l.Saving()))
	return b.String()
}

func runInteractive(filename string, layouts []phenotype.Layout) error {
	if len(layouts) == 0 {
		return errors.InvalidInput(errors.PhaseRender, "no variant, enum, option or result types to browse")
	}
	p := tea.NewProgram(newInteractiveModel(filename, layouts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
