package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridColumns() []TableColumn {
	return []TableColumn{
		{Header: "Name", Width: 16},
		{Header: "Email", Width: 20},
		{Header: "Status", Width: 10},
	}
}

func TestTableGridRowsMatchWidth(t *testing.T) {
	rows := [][]string{
		{"alpha", "alpha@example.test", "Active"},
		{"beta", "beta@example.test", "Inactive"},
	}
	out := TableGrid(gridColumns(), rows, 60, -1)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4) // header + rule + 2 rows
	for _, line := range lines {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "Inactive")
}

func TestTableGridTruncatesOverflowingCells(t *testing.T) {
	rows := [][]string{{strings.Repeat("x", 80), "e", "s"}}
	out := TableGrid(gridColumns(), rows, 50, -1)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 50)
	}
}

func TestSkeletonRowMatchesColumnCount(t *testing.T) {
	cells := SkeletonRow(gridColumns())
	require.Len(t, cells, 3)
	for _, c := range cells {
		assert.Contains(t, c, "░")
	}
}

func TestTableGridActiveRowStillFits(t *testing.T) {
	rows := [][]string{
		{"alpha", "a@x", "Active"},
		{"beta", "b@x", "Active"},
	}
	out := TableGrid(gridColumns(), rows, 60, 1)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}
