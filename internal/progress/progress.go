// Package progress reports completion of long Monte Carlo runs,
// either as plain dots suitable for logs or as a live terminal bar.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// dotsPerLine is how many dots print before a percentage summary.
const dotsPerLine = 50

// DotReporter prints a dot for every 2% of samples completed and a
// running percentage at the end of each line. Safe for concurrent use
// by simulation workers.
type DotReporter struct {
	mu    sync.Mutex
	out   io.Writer
	clock quartz.Clock
	start time.Time
	dots  int
}

// NewDotReporter creates a reporter writing to out on the real clock.
func NewDotReporter(out io.Writer) *DotReporter {
	return NewDotReporterWithClock(out, quartz.NewReal())
}

// NewDotReporterWithClock allows tests to control elapsed time.
func NewDotReporterWithClock(out io.Writer, clock quartz.Clock) *DotReporter {
	return &DotReporter{
		out:   out,
		clock: clock,
		start: clock.Now(),
	}
}

// Progress prints any dots owed for the given completion level.
func (r *DotReporter) Progress(done, total int) {
	if total <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target := done * dotsPerLine / total
	for r.dots < target {
		fmt.Fprint(r.out, ".")
		r.dots++
		if r.dots%dotsPerLine == 0 {
			pct := float64(done) * 100 / float64(total)
			fmt.Fprintf(r.out, " %d/%d (%.0f%%)\n", done, total, pct)
		}
	}
}

// Finish prints the elapsed wall time for the run.
func (r *DotReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.clock.Now().Sub(r.start)
	fmt.Fprintf(r.out, "done in %s\n", elapsed.Truncate(time.Millisecond))
}

// Silent discards all progress updates.
type Silent struct{}

// Progress implements the reporter contract and does nothing.
func (Silent) Progress(done, total int) {}
