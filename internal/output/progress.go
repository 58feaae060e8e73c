package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Progress represents an active progress indicator
type Progress struct {
	printer      *Printer
	message      string
	count        int
	startTime    time.Time
	done         chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	mu           sync.Mutex
	spinnerIndex int
}

// Spinner characters for animation
var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StartProgress starts a spinner on the error writer. Without color support
// the returned indicator is silent, so piped output stays clean.
func (p *Printer) StartProgress(message string) *Progress {
	progress := &Progress{
		printer:   p,
		message:   message,
		startTime: time.Now(),
		done:      make(chan struct{}),
	}

	if !p.useColor || p.err == nil {
		close(progress.done)
		return progress
	}

	progress.wg.Add(1)
	go progress.animate()

	return progress
}

// UpdateMessage updates the progress message
func (p *Progress) UpdateMessage(message string) {
	p.mu.Lock()
	p.message = message
	p.mu.Unlock()
}

// SetCount sets the number of items shown next to the message
func (p *Progress) SetCount(n int) {
	p.mu.Lock()
	p.count = n
	p.mu.Unlock()
}

// Stop stops the progress indicator and clears the line. It is safe to call
// more than once.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			// silent indicator, nothing was drawn
			return
		default:
			close(p.done)
		}

		p.wg.Wait()
		_, _ = fmt.Fprint(p.printer.err, "\r\033[K")
	})
}

// animate runs the spinner animation in a goroutine
func (p *Progress) animate() {
	defer p.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	p.render()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.spinnerIndex++
			p.mu.Unlock()
			p.render()
		}
	}
}

// render displays the current progress state
func (p *Progress) render() {
	p.mu.Lock()
	message := p.message
	count := p.count
	spinner := spinnerChars[p.spinnerIndex%len(spinnerChars)]
	p.mu.Unlock()

	elapsed := p.printer.paint(fmt.Sprintf("[%s]", formatDuration(time.Since(p.startTime))), color.FgHiBlack)
	line := fmt.Sprintf("%s %s", p.printer.paint(spinner, color.Bold, color.FgCyan), message)
	if count > 0 {
		line += fmt.Sprintf(" (%d runs)", count)
	}

	_, _ = fmt.Fprintf(p.printer.err, "\r%s %s\033[K", line, elapsed)
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
