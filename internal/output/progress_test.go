package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressIndicator(t *testing.T) {
	t.Run("shows message on error writer", func(t *testing.T) {
		var outBuf, errBuf bytes.Buffer
		printer := NewPrinterWithWriters(&outBuf, &errBuf, true)

		progress := printer.StartProgress("Fetching runs...")
		if progress == nil {
			t.Fatal("expected progress indicator to be created")
		}
		time.Sleep(50 * time.Millisecond)
		progress.Stop()

		if !strings.Contains(errBuf.String(), "Fetching runs...") {
			t.Errorf("expected error output to contain progress message, got: %q", errBuf.String())
		}
		if outBuf.Len() != 0 {
			t.Errorf("expected nothing on regular output, got: %q", outBuf.String())
		}
	})

	t.Run("shows spinner animation", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinterWithWriters(&buf, &buf, true)

		progress := printer.StartProgress("Loading...")
		time.Sleep(150 * time.Millisecond)
		progress.Stop()

		output := buf.String()
		hasSpinner := false
		for _, char := range spinnerChars {
			if strings.Contains(output, char) {
				hasSpinner = true
				break
			}
		}
		if !hasSpinner {
			t.Errorf("expected output to contain spinner animation, got: %q", output)
		}
	})

	t.Run("shows updated message and count", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinterWithWriters(&buf, &buf, true)

		progress := printer.StartProgress("Step 1...")
		progress.UpdateMessage("Step 2...")
		progress.SetCount(42)
		time.Sleep(250 * time.Millisecond)
		progress.Stop()

		output := buf.String()
		if !strings.Contains(output, "Step 2...") {
			t.Errorf("expected output to contain updated message, got: %q", output)
		}
		if !strings.Contains(output, "(42 runs)") {
			t.Errorf("expected output to contain count, got: %q", output)
		}
	})

	t.Run("clears line when stopped", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinterWithWriters(&buf, &buf, true)

		progress := printer.StartProgress("Temporary message...")
		time.Sleep(50 * time.Millisecond)
		progress.Stop()

		if !strings.HasSuffix(buf.String(), "\r\033[K") {
			t.Errorf("expected output to end with line clearing sequence, got: %q", buf.String())
		}
	})

	t.Run("silent without color", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinterWithWriters(&buf, &buf, false)

		progress := printer.StartProgress("No colors...")
		progress.SetCount(3)
		progress.Stop()

		if buf.Len() != 0 {
			t.Errorf("expected no output when colors disabled, got: %q", buf.String())
		}
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinterWithWriters(&buf, &buf, true)

		progress := printer.StartProgress("Twice...")
		progress.Stop()
		progress.Stop()

		if got := strings.Count(buf.String(), "\r\033[K"); got != 1 {
			t.Errorf("expected exactly one clear sequence, got %d in %q", got, buf.String())
		}
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "0.5s"},
		{3 * time.Second, "3s"},
		{90 * time.Second, "90s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
