package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// TextReporter writes human-readable run results to a writer.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter.
// If w is nil, defaults to os.Stdout. color enables ANSI codes.
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{w: w, color: color}
}

func (r *TextReporter) c(code string) string {
	if r.color {
		return code
	}
	return ""
}

// PrintRun writes a one-line summary of a completed sweep.
func (r *TextReporter) PrintRun(satisfied []string, duration time.Duration, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "%s✗ run failed%s %s(%s)%s\n",
			r.c(colorRed), r.c(colorReset), r.c(colorDim), round(duration), r.c(colorReset))
		return
	}
	fmt.Fprintf(r.w, "%s✓ %s%s %s(%s)%s\n",
		r.c(colorGreen), strings.Join(satisfied, ", "), r.c(colorReset),
		r.c(colorDim), round(duration), r.c(colorReset))
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		return d.Round(100 * time.Millisecond)
	default:
		return d.Round(time.Millisecond)
	}
}
