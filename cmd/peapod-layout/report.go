package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/peapod/phenotype"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nameStyle   = cellStyle.Foreground(lipgloss.Color("#87CEEB"))
	savingStyle = cellStyle.Foreground(lipgloss.Color("#90EE90"))
	losingStyle = cellStyle.Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	caseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
)

var reportHeaders = []string{"TYPE", "KIND", "CASES", "TAG BITS", "PAYLOAD", "CANONICAL", "BITS/ELEM", "SAVING"}

const (
	colName   = 0
	colSaving = 7
)

func reportRow(l phenotype.Layout) []string {
	return []string{
		l.Name,
		l.Kind,
		fmt.Sprint(len(l.Cases)),
		fmt.Sprint(l.TagBits),
		formatBytes(l.PayloadSize, l.PayloadAlign),
		formatBytes(l.CanonicalSize, l.CanonicalAlign),
		fmt.Sprintf("%d/%d", l.ElementBits, l.CanonicalBits),
		formatSaving(l.Saving()),
	}
}

func formatBytes(size, align uint32) string {
	if size == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (align %d)", size, align)
}

func formatSaving(s float64) string {
	return fmt.Sprintf("%+.1f%%", s*100)
}

// report renders one row per layout. With styled false the output is plain
// tab-separated text suitable for pipes.
func report(layouts []phenotype.Layout, styled bool) string {
	if len(layouts) == 0 {
		return "no variant, enum, option or result types found\n"
	}

	rows := make([][]string, len(layouts))
	for i, l := range layouts {
		rows[i] = reportRow(l)
	}

	if !styled {
		var b strings.Builder
		b.WriteString(strings.Join(reportHeaders, "\t"))
		b.WriteByte('\n')
		for _, r := range rows {
			b.WriteString(strings.Join(r, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(reportHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colName:
				return nameStyle
			case col == colSaving && layouts[row].Compact():
				return savingStyle
			case col == colSaving:
				return losingStyle
			}
			return cellStyle
		})

	return titleStyle.Render("Peapod layout") + "\n" + t.Render() + "\n"
}

// caseLines describes the payload of every case of l, one per line.
func caseLines(l phenotype.Layout) []string {
	out := make([]string, len(l.Cases))
	width := 0
	for _, c := range l.Cases {
		width = max(width, len(c.Name))
	}
	for i, c := range l.Cases {
		payload := "-"
		if c.HasPayload {
			payload = formatBytes(c.Size, c.Align)
		}
		out[i] = fmt.Sprintf("%3d  %-*s  %s", i, width, c.Name, payload)
	}
	return out
}
