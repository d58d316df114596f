package system

import "sort"

// Runner executes systems in phase order each frame. Systems within a phase
// keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

// Tick runs every system.
func (r *Runner) Tick(f Frame) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(f)
	}
}

// TickPhase runs only the systems of the given phase. The driver uses it to
// split a frame into its update and render halves.
func (r *Runner) TickPhase(phase Phase, f Frame) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(f)
		}
	}
}

// TickRange runs the systems whose phase lies in [from, to].
func (r *Runner) TickRange(from, to Phase, f Frame) {
	r.ensureSorted()
	for _, s := range r.systems {
		if p := s.Phase(); p >= from && p <= to {
			s.Update(f)
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
