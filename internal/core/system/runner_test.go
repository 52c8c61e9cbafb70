package system

import "testing"

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(uint64) { *r.log = append(*r.log, r.name) }

func TestRunner_RunsSystemsInPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhasePersist, "persist", &log})
	r.Register(recorder{PhaseUpdate, "update", &log})
	r.Register(recorder{PhaseDispatch, "dispatch", &log})
	r.Register(recorder{PhaseUpdate, "update2", &log})

	r.Tick()
	want := []string{"dispatch", "update", "update2", "persist"}
	if len(log) != len(want) {
		t.Fatalf("log=%v want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log=%v want %v", log, want)
		}
	}
	if r.Ticks() != 1 {
		t.Fatalf("ticks=%d want 1", r.Ticks())
	}
}

func TestRunner_TickPhaseRunsSinglePhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseUpdate, "update", &log})
	r.Register(recorder{PhasePersist, "persist", &log})

	r.TickPhase(PhasePersist)
	if len(log) != 1 || log[0] != "persist" {
		t.Fatalf("log=%v want [persist]", log)
	}
	if r.Ticks() != 0 {
		t.Fatalf("ticks=%d want 0", r.Ticks())
	}
}
