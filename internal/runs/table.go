package runs

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// Row is one line of the recent-runs table.
type Row struct {
	Group   string
	Name    string
	ID      string
	LogsURL string
	Elapsed string
	Step    string
	State   string
}

// Fields returns the row's cells in column order.
func (r Row) Fields() [NumColumns]string {
	return [NumColumns]string{r.Group, r.Name, r.ID, r.LogsURL, r.Elapsed, r.Step, r.State}
}

// Column describes one table column.
type Column struct {
	Header string
	// Min is the narrowest content width before padding.
	Min int
}

// NumColumns is the number of table columns.
const NumColumns = 7

// Columns lists the table columns in display order.
var Columns = [NumColumns]Column{
	{Header: "Group", Min: 5},
	{Header: "Name", Min: 10},
	{Header: "Run ID", Min: 8},
	{Header: "Logs URL", Min: 12},
	{Header: "Time", Min: 8},
	{Header: "Step", Min: 4},
	{Header: "State", Min: 6},
}

// columnPadding is added to every column width.
const columnPadding = 2

// Widths holds the display width of each column.
type Widths [NumColumns]int

// Total returns the sum of all column widths.
func (w Widths) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// ColumnWidths computes column widths for rows: the widest cell or the
// column minimum, whichever is larger, plus padding.
func ColumnWidths(rows []Row) Widths {
	var w Widths
	for i, col := range Columns {
		w[i] = col.Min
	}
	for _, row := range rows {
		for i, cell := range row.Fields() {
			w[i] = max(w[i], runewidth.StringWidth(cell))
		}
	}
	for i := range w {
		w[i] += columnPadding
	}
	return w
}

// Project maps a run to its table row as of now.
func Project(run Run, now time.Time) (Row, error) {
	created, err := run.Created()
	if err != nil {
		return Row{}, err
	}

	state := run.State
	if state == "" {
		state = StateUnknown
	}

	return Row{
		Group:   run.Group,
		Name:    run.DisplayName(),
		ID:      run.ID,
		LogsURL: run.LogsURL(),
		Elapsed: FormatElapsed(now.Sub(created)),
		Step:    run.Step(),
		State:   string(state),
	}, nil
}

// FormatElapsed renders d as H:MM:SS with unpadded hours. Negative durations,
// from clock skew between host and service, render as 0:00:00.
func FormatElapsed(d time.Duration) string {
	total := max(int64(d/time.Second), 0)
	h, rem := total/3600, total%3600
	m, s := rem/60, rem%60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
