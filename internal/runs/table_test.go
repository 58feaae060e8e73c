package runs

import (
	"testing"
	"time"

	"github.com/Backland-Labs/wbpeek/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{name: "zero", elapsed: 0, expected: "0:00:00"},
		{name: "one hour one minute one second", elapsed: 3661 * time.Second, expected: "1:01:01"},
		{name: "sub-second truncated", elapsed: 59*time.Second + 900*time.Millisecond, expected: "0:00:59"},
		{name: "hours are not padded or wrapped", elapsed: 123*time.Hour + 4*time.Minute, expected: "123:04:00"},
		{name: "negative clamps to zero", elapsed: -5 * time.Minute, expected: "0:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.elapsed))
		})
	}
}

func TestProject(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("full run", func(t *testing.T) {
		run := Run{
			ID:        "abc123",
			Name:      "bright-sun-42",
			Group:     "sweep-1",
			State:     StateRunning,
			CreatedAt: now.Add(-3661 * time.Second).Format(time.RFC3339),
			Summary:   params.Document{"_step": params.Number("1500")},
			URL:       "https://wandb.ai/team/proj/runs/abc123",
		}

		row, err := Project(run, now)
		require.NoError(t, err)
		assert.Equal(t, Row{
			Group:   "sweep-1",
			Name:    "bright-sun-42",
			ID:      "abc123",
			LogsURL: "https://wandb.ai/team/proj/runs/abc123/logs",
			Elapsed: "1:01:01",
			Step:    "1500",
			State:   "running",
		}, row)
	})

	t.Run("defaults", func(t *testing.T) {
		run := Run{
			ID:        "abc123",
			CreatedAt: "2025-03-14T11:59:00Z",
			URL:       "u",
		}

		row, err := Project(run, now)
		require.NoError(t, err)
		assert.Equal(t, "abc123", row.Name)
		assert.Equal(t, "", row.Group)
		assert.Equal(t, "0", row.Step)
		assert.Equal(t, "unknown", row.State)
		assert.Equal(t, "0:01:00", row.Elapsed)
	})

	t.Run("null step", func(t *testing.T) {
		run := Run{ID: "x", CreatedAt: "2025-03-14T11:59:00", Summary: params.Document{"_step": params.Null{}}}
		row, err := Project(run, now)
		require.NoError(t, err)
		assert.Equal(t, "0", row.Step)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		_, err := Project(Run{ID: "x", CreatedAt: ""}, now)
		assert.ErrorIs(t, err, ErrMalformedTimestamp)
	})
}

func TestColumnWidths(t *testing.T) {
	t.Run("no rows uses minimums", func(t *testing.T) {
		assert.Equal(t, Widths{7, 12, 10, 14, 10, 6, 8}, ColumnWidths(nil))
	})

	t.Run("wide content", func(t *testing.T) {
		rows := []Row{
			{Group: "g", Name: "a-very-long-run-name", ID: "abc", LogsURL: "https://wandb.ai/e/p/runs/abc/logs", Elapsed: "1:00:00", Step: "123456", State: "preempted"},
			{Group: "longer-group", Name: "short", ID: "abcdefghij", LogsURL: "u", Elapsed: "100:00:00", Step: "0", State: "running"},
		}

		w := ColumnWidths(rows)
		assert.Equal(t, Widths{14, 22, 12, 36, 11, 8, 11}, w)
		assert.Equal(t, 14+22+12+36+11+8+11, w.Total())
	})

	t.Run("display width of wide runes", func(t *testing.T) {
		w := ColumnWidths([]Row{{Name: "実験ランの名前です"}})
		assert.Equal(t, 20, w[1])
	})
}
