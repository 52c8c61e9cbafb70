package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/l1jgo/clanworld/internal/core/event"
	coresys "github.com/l1jgo/clanworld/internal/core/system"
	"github.com/l1jgo/clanworld/internal/data"
	"github.com/l1jgo/clanworld/internal/persist"
	"github.com/l1jgo/clanworld/internal/world"
)

type fakeWriter struct {
	batches [][]persist.JournalEntry
	fail    error
}

func (f *fakeWriter) WriteJournal(_ context.Context, entries []persist.JournalEntry) error {
	if f.fail != nil {
		return f.fail
	}
	f.batches = append(f.batches, append([]persist.JournalEntry(nil), entries...))
	return nil
}

func (f *fakeWriter) all() []persist.JournalEntry {
	var out []persist.JournalEntry
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

func TestJournalSystem_RecordsEventsWithEmittingTick(t *testing.T) {
	bus := event.NewBus()
	w := world.NewWorld(bus, nil)
	steps := loadSteps(t, scenarioYAML)
	fw := &fakeWriter{}

	scenario := NewScenarioSystem(w, steps, nil)
	journal := NewJournalSystem(bus, fw, 100, time.Second, nil)
	runner := coresys.NewRunner()
	runner.Register(journal)
	runner.Register(scenario)
	runner.Register(NewEventDispatchSystem(bus))

	for !scenario.Done() {
		runner.Tick()
	}
	runner.TickPhase(coresys.PhaseDispatch)
	runner.TickPhase(coresys.PhasePersist)

	if journal.Pending() != 0 {
		t.Fatalf("pending=%d", journal.Pending())
	}
	entries := fw.all()
	if len(entries) == 0 {
		t.Fatalf("nothing journaled")
	}
	if entries[0].Kind != "clan_added" || entries[0].Subject != "Beta" || entries[0].Tick != 1 {
		t.Fatalf("first=%+v", entries[0])
	}

	var moved *persist.JournalEntry
	for i := range entries {
		if entries[i].Kind == "group_moved" {
			moved = &entries[i]
		}
	}
	// clans, areas x2, reachable, group, then the move: tick 6
	if moved == nil || moved.Tick != 6 || moved.Subject != "g1" || moved.Object != "Carmel" || moved.Detail != "Tel-Aviv" {
		t.Fatalf("moved=%+v", moved)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Tick < entries[i-1].Tick {
			t.Fatalf("ticks out of order at %d: %+v", i, entries)
		}
	}
}

func TestJournalSystem_BatchesAndRetries(t *testing.T) {
	bus := event.NewBus()
	w := world.NewWorld(bus, nil)
	fw := &fakeWriter{fail: errors.New("db down")}
	journal := NewJournalSystem(bus, fw, 2, time.Second, nil)

	for _, s := range []data.Step{
		{Op: data.OpAddClan, Clan: "A"},
		{Op: data.OpAddClan, Clan: "B"},
		{Op: data.OpAddClan, Clan: "C"},
	} {
		if err := ApplyStep(w, s, nil); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	bus.Dispatch()

	journal.Update(1)
	if journal.Pending() != 3 {
		t.Fatalf("failed flush dropped entries: pending=%d", journal.Pending())
	}

	fw.fail = nil
	if err := journal.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(fw.batches) != 2 || len(fw.batches[0]) != 2 || len(fw.batches[1]) != 1 {
		t.Fatalf("batches=%v", fw.batches)
	}
	if journal.Pending() != 0 {
		t.Fatalf("pending=%d", journal.Pending())
	}
}
