package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mrsinham/ctdose/internal/export"
	"github.com/mrsinham/ctdose/internal/record"
)

// EmptyRecordsMessage is shown instead of an empty table.
const EmptyRecordsMessage = "まだ記録はありません。"

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	tableNumberStyle = tableCellStyle.Align(lipgloss.Right)

	tableLastRowStyle = tableCellStyle.Foreground(lipgloss.Color("42"))
)

// numeric columns of export.Header: 年齢, CTDIvol, DLP
var numericColumns = map[int]bool{2: true, 5: true, 6: true}

// RecordsTable renders records in export column order. The most recent
// record is highlighted.
func RecordsTable(records []record.DoseRecord) string {
	if len(records) == 0 {
		return InfoStyle.Render(EmptyRecordsMessage)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = export.Row(r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(export.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row == len(rows)-1 && !numericColumns[col]:
				return tableLastRowStyle
			case row == len(rows)-1:
				return tableLastRowStyle.Align(lipgloss.Right)
			case numericColumns[col]:
				return tableNumberStyle
			default:
				return tableCellStyle
			}
		})

	return t.String()
}
