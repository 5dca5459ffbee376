package task_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/rmake/internal/task"
)

// userAction stands in for user-supplied task code: it lives outside the
// task package so its frames survive the infrastructure filter.
func userAction() error {
	panic("trace me")
}

func TestRun_PanicWithTrace(t *testing.T) {
	var out, errW bytes.Buffer
	r := task.NewRunner(task.Options{Out: &out, Err: &errW, Trace: true})
	r.Add(task.New("a", nil, userAction))

	_, err := r.Run("a")
	var f *task.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %T, want *Fault", err)
	}
	if f.Message != "trace me" {
		t.Errorf("message = %q", f.Message)
	}
	if len(f.Trace) == 0 {
		t.Fatal("expected origin frames with tracing enabled")
	}
	if !strings.Contains(f.Trace[0], "userAction") {
		t.Errorf("first frame = %q, want the panic origin", f.Trace[0])
	}
	for _, frame := range f.Trace {
		if strings.Contains(frame, "(*Runner).Run") || strings.Contains(frame, "(*Task).Invoke") {
			t.Errorf("trace leaked runner infrastructure frame: %q", frame)
		}
	}
	// the report on the error stream carries the frames too
	if !strings.Contains(errW.String(), "userAction") {
		t.Errorf("report missing origin frames: %q", errW.String())
	}
}

func TestRun_TraceDisabledByDefault(t *testing.T) {
	var out, errW bytes.Buffer
	r := task.NewRunner(task.Options{Out: &out, Err: &errW})
	r.Add(task.New("a", nil, userAction))

	_, err := r.Run("a")
	var f *task.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %T, want *Fault", err)
	}
	if len(f.Trace) != 0 {
		t.Errorf("trace should be empty when tracing is off, got %v", f.Trace)
	}
	if got := errW.String(); strings.Count(got, "\n") != 1 {
		t.Errorf("report should be a one-line summary, got %q", got)
	}
}

func TestRun_ErrorCategoryFromType(t *testing.T) {
	var out, errW bytes.Buffer
	r := task.NewRunner(task.Options{Out: &out, Err: &errW})
	r.Add(task.New("a", nil, func() error {
		panic(errors.New("typed failure"))
	}))

	_, err := r.Run("a")
	var f *task.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %T, want *Fault", err)
	}
	if f.Category == "panic" {
		t.Errorf("error panics should carry their type as category, got %q", f.Category)
	}
	if f.Message != "typed failure" {
		t.Errorf("message = %q", f.Message)
	}
}
