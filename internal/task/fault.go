package task

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors callers branch on.
var (
	// ErrUnknownTask marks an invocation of a name absent from the registry.
	ErrUnknownTask = errors.New("no such task")
	// ErrCycle marks a dependency chain that loops back on itself.
	ErrCycle = errors.New("dependency cycle detected")
)

// Fault is the value produced by the failure boundary when a task action
// panics. It carries the panic category and, when tracing is enabled,
// the user frames of the panic origin.
type Fault struct {
	Category string
	Message  string
	Trace    []string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

// contain is the failure boundary. It executes fn; any fault, whether
// an error return or a panic out of user action code, is reported to
// the error stream and handed back as a value rather than re-raised.
//
// Process termination (os.Exit) is not interceptable by recover and
// always passes straight through.
func (r *Runner) contain(fn func() error) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		f := &Fault{Category: "panic", Message: fmt.Sprint(rec)}
		if cause, ok := rec.(error); ok {
			f.Category = fmt.Sprintf("%T", cause)
			f.Message = cause.Error()
		}
		if r.trace {
			f.Trace = userFrames()
		}
		r.report(f)
		err = f
	}()

	if err = fn(); err != nil {
		r.report(err)
	}
	return err
}

// report writes a diagnostic for a fault to the error stream, with
// origin frames when present.
func (r *Runner) report(err error) {
	fmt.Fprintf(r.err, "rmake: %v\n", err)
	var f *Fault
	if errors.As(err, &f) {
		for _, frame := range f.Trace {
			fmt.Fprintf(r.err, "  %s\n", frame)
		}
	}
}

// userFrames walks the panic origin, keeping only frames above the
// runner's own infrastructure: collection starts past the runtime's
// panic plumbing and stops at the first frame inside this package, so
// only user task code is shown.
func userFrames() []string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	pastPanic := false
	for {
		fr, more := frames.Next()
		name := fr.Function
		switch {
		case strings.HasPrefix(name, "runtime."):
			pastPanic = true
		case !pastPanic:
			// our own deferred recover, above the panic frames
		case strings.Contains(name, "/internal/task."):
			return out
		default:
			out = append(out, fmt.Sprintf("%s (%s:%d)", name, fr.File, fr.Line))
		}
		if !more {
			return out
		}
	}
}
