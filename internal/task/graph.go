package task

import "fmt"

const (
	unvisited = iota
	visiting
	done
)

// Check walks every dependency edge in the registry without running
// anything, verifying that each named dependency is registered and that
// no chain loops back on itself. Used by validation; Invoke performs the
// same checks lazily at run time.
func (r *Runner) Check() error {
	state := make(map[string]int, len(r.registry))

	var visit func(name string) error
	visit = func(name string) error {
		t, ok := r.registry[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTask, name)
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %q", ErrCycle, name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range t.deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, name := range r.order {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// MaxDepth returns the length of the longest dependency chain in the
// registry. A registry with no dependencies has depth 0. Unregistered
// dependency names contribute nothing; Check reports those.
func (r *Runner) MaxDepth() int {
	depths := make(map[string]int, len(r.registry))

	var depth func(name string) int
	depth = func(name string) int {
		if d, ok := depths[name]; ok {
			return d
		}
		t, ok := r.registry[name]
		if !ok {
			return 0
		}
		depths[name] = 0 // cycle guard; Check reports real cycles
		d := 0
		for _, dep := range t.deps {
			if dd := depth(dep) + 1; dd > d {
				d = dd
			}
		}
		depths[name] = d
		return d
	}

	max := 0
	for _, name := range r.order {
		if d := depth(name); d > max {
			max = d
		}
	}
	return max
}
