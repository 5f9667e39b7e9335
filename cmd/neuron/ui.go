package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wlmath-dwl/neuron/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#64748b")).
			Padding(0, 1)
)

// cellTable lays out one row per cell: id, variant, layer, data and links.
func cellTable(cells []model.Store) string {
	rows := [][]string{{"id", "cell", "layer", "data"}}
	for _, s := range cells {
		rows = append(rows, []string{s.ID, s.Name, s.Layer, describe(s)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, col := range row {
			widths[i] = max(widths[i], lipgloss.Width(col))
		}
	}

	lines := make([]string, 0, len(rows))
	for n, row := range rows {
		cols := make([]string, len(row))
		for i, col := range row {
			cols[i] = lipgloss.NewStyle().Width(widths[i]).Render(col)
		}
		line := strings.Join(cols, "  ")
		if n == 0 {
			line = headerStyle.Render(line)
		} else {
			line = mutedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func describe(s model.Store) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(s.Data)) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, s.Data[k]))
	}
	for _, k := range slices.Sorted(maps.Keys(s.LinkChild)) {
		parts = append(parts, fmt.Sprintf("%s->%s", k, strings.Join(s.LinkChild[k], ",")))
	}
	return strings.Join(parts, " ")
}
