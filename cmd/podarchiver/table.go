package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sa6mwa/podarchiver/internal/app/humanreadable"
	"github.com/sa6mwa/podarchiver/internal/app/model"
)

// showsTable renders one row per show and a footer with the archive
// totals.
func showsTable(summaries []model.ShowSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Show", "Episodes", "Size", "Duration"})

	var episodes int
	var bytes int64
	var duration time.Duration
	for _, s := range summaries {
		tw.AppendRow(table.Row{s.Title, strconv.Itoa(s.Episodes), humanreadable.IEC(s.Bytes), model.FormatDuration(s.Duration)})
		episodes += s.Episodes
		bytes += s.Bytes
		duration += s.Duration
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(episodes), humanreadable.IEC(bytes), model.FormatDuration(duration)})

	right := []string{"Episodes", "Size", "Duration"}
	configs := make([]table.ColumnConfig, 0, len(right))
	for _, name := range right {
		configs = append(configs, table.ColumnConfig{
			Name:        name,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignRight,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
