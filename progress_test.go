package emojimosaic

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
)

func TestShouldReport(t *testing.T) {
	var reported []int
	for d := 1; d <= 25; d++ {
		if shouldReport(d, 25) {
			reported = append(reported, d)
		}
	}
	assert.Equal(t, []int{1, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 25}, reported)
	assert.False(t, shouldReport(0, 0))
}

func TestReporterBatches(t *testing.T) {
	var got [][2]int
	r := newReporter(ProgressFunc(func(_ Stage, done, total int) {
		got = append(got, [2]int{done, total})
	}), StageMosaic, 20)

	for range 4 {
		r.add(5)
	}
	assert.Equal(t, [2]int{20, 20}, got[len(got)-1])
	assert.Equal(t, [2]int{1, 20}, got[0])
}

func TestLogProgress(t *testing.T) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	p := LogProgress{Logger: logger}
	for d := 1; d <= 100; d++ {
		p.Update(StagePalette, d, 100)
	}

	assert.Len(t, h.Entries, 11)
	last := h.Entries[len(h.Entries)-1]
	assert.Equal(t, "Loading emoji - 100.00%", last.Message)
	assert.Equal(t, 100, last.Fields["done"])
}

func TestTermProgress(t *testing.T) {
	var buf bytes.Buffer
	p := &TermProgress{w: &buf}
	p.Update(StageMosaic, 1, 2)
	p.Update(StageMosaic, 2, 2)

	out := buf.String()
	assert.Contains(t, out, "Converting image - 50.00%")
	assert.True(t, strings.HasSuffix(out, "Converting image - 100%\n"))
}

func TestNewTermProgressWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "progress")
	assert.NoError(t, err)
	defer f.Close()

	assert.IsType(t, NopProgress{}, NewTermProgress(f))
	assert.IsType(t, NopProgress{}, NewTermProgress(nil))
}
