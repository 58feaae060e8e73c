package output

import (
	"strconv"
	"strings"

	"github.com/Backland-Labs/wbpeek/internal/runs"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// RunTable is everything printed by the fetch command
type RunTable struct {
	Hours   int
	Filters runs.Filters
	Rows    []runs.Row
	Running int
}

// columnStyles holds the per-column colors of a data row; the state column is
// colored by value
var columnStyles = [runs.NumColumns][]color.Attribute{
	{color.Bold},
	nil,
	{color.FgYellow},
	{color.FgCyan},
	nil,
	nil,
	nil,
}

// PrintRuns prints the recent-runs table. Column widths are computed from the
// rows on every call.
func (p *Printer) PrintRuns(t RunTable) {
	widths := runs.ColumnWidths(t.Rows)

	p.Title("Runs started in the last %d hours:", t.Hours)
	if len(t.Filters) > 0 {
		p.Print("Filters: %s\n", t.Filters.String())
	}

	headers := make([]string, 0, runs.NumColumns)
	for i, col := range runs.Columns {
		headers = append(headers, pad(col.Header, widths[i]))
	}
	p.Title("%s", strings.Join(headers, " "))
	p.Print("%s\n", strings.Repeat("-", widths.Total()+4))

	for _, row := range t.Rows {
		cells := make([]string, 0, runs.NumColumns)
		for i, field := range row.Fields() {
			attrs := columnStyles[i]
			if i == runs.NumColumns-1 {
				attrs = StateColor(runs.State(row.State))
			}
			cells = append(cells, p.paint(pad(field, widths[i]), attrs...))
		}
		p.Print("%s\n", strings.Join(cells, " "))
	}

	p.Print("\n")
	p.Title("Currently running %s runs (most recent job first).",
		p.paint(strconv.Itoa(t.Running), color.FgYellow))
}

// pad left-aligns s in a cell of the given display width
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
