package system

import (
	"context"
	"strings"
	"time"

	"github.com/l1jgo/clanworld/internal/core/event"
	coresys "github.com/l1jgo/clanworld/internal/core/system"
	"github.com/l1jgo/clanworld/internal/persist"
	"go.uber.org/zap"
)

// JournalWriter persists a batch of journal entries atomically.
type JournalWriter interface {
	WriteJournal(ctx context.Context, entries []persist.JournalEntry) error
}

// JournalSystem turns world events into journal entries and writes them in
// batches. Entries are stamped with the tick that emitted the event: events
// are delivered during the next tick's dispatch phase, before this system
// has advanced its own tick. Phase 3 (Persist).
type JournalSystem struct {
	writer    JournalWriter
	pending   []persist.JournalEntry
	tick      uint64
	batchSize int
	timeout   time.Duration
	log       *zap.Logger
}

func NewJournalSystem(bus *event.Bus, writer JournalWriter, batchSize int, timeout time.Duration, log *zap.Logger) *JournalSystem {
	if log == nil {
		log = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 256
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &JournalSystem{
		writer:    writer,
		batchSize: batchSize,
		timeout:   timeout,
		log:       log,
	}
	s.subscribe(bus)
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) Update(tick uint64) {
	if err := s.Flush(context.Background()); err != nil {
		s.log.Error("journal flush failed",
			zap.Uint64("tick", tick),
			zap.Int("pending", len(s.pending)),
			zap.Error(err),
		)
	}
	s.tick = tick
}

// Pending returns the number of entries not yet written.
func (s *JournalSystem) Pending() int {
	return len(s.pending)
}

// Flush writes every pending entry, one transaction per batch. Entries of
// a failed batch stay pending for the next attempt.
func (s *JournalSystem) Flush(ctx context.Context) error {
	for len(s.pending) > 0 {
		n := min(len(s.pending), s.batchSize)
		wctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.writer.WriteJournal(wctx, s.pending[:n])
		cancel()
		if err != nil {
			return err
		}
		s.log.Debug("journal batch written", zap.Int("entries", n))
		s.pending = s.pending[n:]
	}
	s.pending = nil
	return nil
}

func (s *JournalSystem) record(kind, subject, object string, amount int, detail string) {
	s.pending = append(s.pending, persist.JournalEntry{
		Tick:    s.tick,
		Kind:    kind,
		Subject: subject,
		Object:  object,
		Amount:  amount,
		Detail:  detail,
	})
}

func (s *JournalSystem) subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.ClanAdded) {
		s.record("clan_added", e.Clan, "", 0, "")
	})
	event.Subscribe(bus, func(e event.AreaAdded) {
		s.record("area_added", e.Area, "", 0, e.Kind)
	})
	event.Subscribe(bus, func(e event.ReachabilityAdded) {
		s.record("reachability_added", e.From, e.To, 0, "")
	})
	event.Subscribe(bus, func(e event.GroupAdded) {
		s.record("group_added", e.Group, e.Area, e.Population, e.Clan)
	})
	event.Subscribe(bus, func(e event.GroupMoved) {
		s.record("group_moved", e.Group, e.To, 0, e.From)
	})
	event.Subscribe(bus, func(e event.ClansBefriended) {
		s.record("clans_befriended", e.A, e.B, 0, "")
	})
	event.Subscribe(bus, func(e event.ClansUnited) {
		s.record("clans_united", e.A, e.B, 0, e.Name)
	})
	event.Subscribe(bus, func(e event.GroupsUnited) {
		s.record("groups_united", e.Survivor, e.Absorbed, e.Population, "")
	})
	event.Subscribe(bus, func(e event.GroupDivided) {
		s.record("group_divided", e.Group, e.Fragment, 0, "")
	})
	event.Subscribe(bus, func(e event.FightResolved) {
		detail := e.Outcome
		if len(e.Cleared) > 0 {
			detail += " cleared=" + strings.Join(e.Cleared, ",")
		}
		s.record("fight_resolved", e.Attacker, e.Defender, 0, detail)
	})
	event.Subscribe(bus, func(e event.TradeCompleted) {
		s.record("trade_completed", e.Initiator, e.Partner, e.Amount, "")
	})
	event.Subscribe(bus, func(e event.RulerChanged) {
		s.record("ruler_changed", e.Area, e.Ruler, 0, "")
	})
}
