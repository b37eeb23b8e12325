package emojimosaic

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/apex/log"
	"golang.org/x/term"
)

// Stage names the pipeline step a progress update belongs to
type Stage string

const (
	// StagePalette counts tiles while the palette is built
	StagePalette Stage = "Loading emoji"
	// StageMosaic counts cells while the grid is generated
	StageMosaic Stage = "Converting image"
	// StageDeliver counts blocks sent to a sink
	StageDeliver Stage = "Sending"
)

// Progress observes (done, total) counts while a stage runs.
// Implementations must be safe for concurrent use when Workers > 1.
type Progress interface {
	Update(stage Stage, done, total int)
}

// ProgressFunc adapts a function to Progress
type ProgressFunc func(stage Stage, done, total int)

// Update calls f
func (f ProgressFunc) Update(stage Stage, done, total int) {
	f(stage, done, total)
}

// NopProgress discards all updates
type NopProgress struct{}

// Update does nothing
func (NopProgress) Update(Stage, int, int) {}

// shouldReport mirrors a ten-step cadence: first item, every tenth, last item
func shouldReport(done, total int) bool {
	if total <= 0 {
		return false
	}
	step := max(total/10, 1)
	return done == 1 || done == total || done%step == 0
}

func percent(done, total int) float64 {
	return float64(done) / float64(total) * 100
}

// LogProgress reports coarse progress through an apex/log logger
type LogProgress struct {
	Logger log.Interface
}

// Update logs at debug level roughly every tenth of total
func (p LogProgress) Update(stage Stage, done, total int) {
	if !shouldReport(done, total) {
		return
	}
	logger := p.Logger
	if logger == nil {
		logger = log.Log
	}
	logger.WithFields(log.Fields{
		"done":  done,
		"total": total,
	}).Debugf("%s - %.2f%%", stage, percent(done, total))
}

// TermProgress redraws a single status line on a terminal
type TermProgress struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTermProgress returns a TermProgress writing to f when f is a terminal,
// and NopProgress otherwise.
func NewTermProgress(f *os.File) Progress {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return NopProgress{}
	}
	return &TermProgress{w: f}
}

// Update rewrites the status line and ends it once done reaches total
func (p *TermProgress) Update(stage Stage, done, total int) {
	if !shouldReport(done, total) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if done == total {
		fmt.Fprintf(p.w, "\r\x1b[K%s - 100%%\n", stage)
		return
	}
	fmt.Fprintf(p.w, "\r\x1b[K%s - %.2f%%", stage, percent(done, total))
}

// reporter serializes updates coming from worker goroutines
type reporter struct {
	mu       sync.Mutex
	progress Progress
	stage    Stage
	done     int
	total    int
}

func newReporter(p Progress, stage Stage, total int) *reporter {
	if p == nil {
		p = NopProgress{}
	}
	return &reporter{progress: p, stage: stage, total: total}
}

func (r *reporter) add(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := r.done
	r.done += n
	// report each crossed boundary so observers see the same counts
	// regardless of batch size
	for d := from + 1; d <= r.done; d++ {
		if shouldReport(d, r.total) {
			r.progress.Update(r.stage, d, r.total)
		}
	}
}
