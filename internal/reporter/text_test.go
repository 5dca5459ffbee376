package reporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPrintRun_Success(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, false)
	r.PrintRun([]string{"build", "test"}, 1234*time.Millisecond, nil)

	got := buf.String()
	if !strings.Contains(got, "✓ build, test") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "1.2s") {
		t.Errorf("output missing duration: %q", got)
	}
	if strings.Contains(got, "\033[") {
		t.Errorf("color disabled but ANSI codes present: %q", got)
	}
}

func TestPrintRun_Failure(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, true)
	r.PrintRun(nil, 40*time.Millisecond, errors.New("boom"))

	got := buf.String()
	if !strings.Contains(got, "✗ run failed") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, colorRed) {
		t.Errorf("expected ANSI color in %q", got)
	}
}

func TestOutputTail(t *testing.T) {
	out := "a\nb\nc\nd\n"
	if got := outputTail(out, 2); got != "c\nd" {
		t.Errorf("tail = %q", got)
	}
	if got := outputTail(out, 10); got != "a\nb\nc\nd" {
		t.Errorf("tail = %q", got)
	}
}
