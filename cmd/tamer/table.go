package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderPairs draws the two-column rounded table used by `rules` and
// `config show`. numericRight right-aligns the second column for the rules
// listing's nice values; settings keep both columns left aligned.
func renderPairs(leftHeader, rightHeader string, rows [][2]string, numericRight bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{leftHeader, rightHeader})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	if numericRight {
		tw.SetColumnConfigs([]table.ColumnConfig{{
			Number:      2,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		}})
	}
	return tw.Render()
}
