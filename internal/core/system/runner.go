package system

import "sort"

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
	tick    uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once and advances the tick counter.
func (r *Runner) Tick() {
	r.ensureSorted()
	r.tick++
	for _, s := range r.systems {
		s.Update(r.tick)
	}
}

// TickPhase runs only the systems of one phase, without advancing the tick.
// Used to drain events and journal batches after the last scenario step.
func (r *Runner) TickPhase(phase Phase) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(r.tick)
		}
	}
}

// Ticks returns the number of completed ticks.
func (r *Runner) Ticks() uint64 {
	return r.tick
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
