package task

import (
	"bytes"
	"errors"
	"testing"
)

func checkRunner(decls map[string][]string, order []string) *Runner {
	var out, errW bytes.Buffer
	r := testRunner(&out, &errW)
	for _, name := range order {
		r.Add(New(name, decls[name], nil))
	}
	return r
}

func TestCheck_Valid(t *testing.T) {
	r := checkRunner(map[string][]string{
		"build":   {"gen"},
		"test":    {"build"},
		"release": {"build", "test"},
	}, []string{"gen", "build", "test", "release"})

	if err := r.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheck_UnknownDependency(t *testing.T) {
	r := checkRunner(map[string][]string{
		"build": {"ghost"},
	}, []string{"build"})

	err := r.Check()
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("error = %v, want ErrUnknownTask", err)
	}
}

func TestCheck_Cycle(t *testing.T) {
	r := checkRunner(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}, []string{"a", "b", "c"})

	err := r.Check()
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("error = %v, want ErrCycle", err)
	}
}

func TestCheck_SelfCycle(t *testing.T) {
	r := checkRunner(map[string][]string{
		"a": {"a"},
	}, []string{"a"})

	if err := r.Check(); !errors.Is(err, ErrCycle) {
		t.Fatalf("error = %v, want ErrCycle", err)
	}
}

func TestCheck_SharedDiamond(t *testing.T) {
	// a diamond is not a cycle
	r := checkRunner(map[string][]string{
		"left":  {"base"},
		"right": {"base"},
		"top":   {"left", "right"},
	}, []string{"base", "left", "right", "top"})

	if err := r.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	r := checkRunner(map[string][]string{
		"build":   {"gen"},
		"test":    {"build"},
		"release": {"test"},
	}, []string{"gen", "build", "test", "release"})

	if d := r.MaxDepth(); d != 3 {
		t.Errorf("depth = %d, want 3", d)
	}
}

func TestMaxDepth_NoDeps(t *testing.T) {
	r := checkRunner(nil, []string{"a", "b"})
	if d := r.MaxDepth(); d != 0 {
		t.Errorf("depth = %d, want 0", d)
	}
}
