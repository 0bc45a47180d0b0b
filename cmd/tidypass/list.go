package main

import (
	"github.com/AntoineGS/tidypass/internal/vault"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maskedSecret hides both the secret and its length.
const maskedSecret = "********"

var (
	tableBorderColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor       = lipgloss.Color("#6B7280") // Gray

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	emptyCellStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(0, 1)
)

// renderVault draws one table row per account. Services without accounts
// get a single row with empty account columns.
func renderVault(coll vault.Collection, reveal bool) string {
	if coll.Len() == 0 {
		return "No services stored."
	}

	var rows [][]string
	for _, g := range coll.Groups {
		if len(g.Children) == 0 {
			rows = append(rows, []string{g.Label(), "(no accounts)", ""})
			continue
		}

		for _, c := range g.Children {
			secret := maskedSecret
			if reveal {
				secret = c.Secret
			}
			rows = append(rows, []string{g.Label(), c.Name, secret})
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tableBorderColor)).
		Headers("SERVICE", "ACCOUNT", "PASSWORD").
		Rows(rows...).
		BorderHeader(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if row >= 0 && row < len(rows) && rows[row][1] == "(no accounts)" && col == 1 {
				return emptyCellStyle
			}
			return cellStyle
		})

	return t.String()
}
