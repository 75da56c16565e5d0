package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/petrzlen/digitaudit/pkg/models"
)

// RenderSummary renders the per-file outcomes of a run for the terminal.
func RenderSummary(results []models.FileResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{}
	for _, h := range Header {
		header = append(header, h)
	}
	header = append(header, "Outcome", "Error")
	tw.AppendHeader(header)

	defaulted := 0
	for _, r := range results {
		rec := r.Record()
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		if r.Outcome == models.Defaulted {
			defaulted++
		}
		tw.AppendRow(table.Row{rec.Filename, rec.Timestamp, rec.WordCount, formatBool(rec.OutOfOrder), rec.LongestRun, r.Outcome.String(), errText})
	}
	tw.AppendFooter(table.Row{"Files", strconv.Itoa(len(results)), "", "", "", "Defaulted", strconv.Itoa(defaulted)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, WidthMax: 60},
	})
	return tw.Render()
}
