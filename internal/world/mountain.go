package world

import "github.com/l1jgo/clanworld/internal/core/event"

// Mountain: one group rules. Arrivals of the ruler's clan take over only if
// strictly stronger; arrivals of other clans fight the ruler and take over
// by winning.
type mountainPolicy struct {
	ruler GroupID
}

func (m *mountainPolicy) Arrive(a *Area, c *Clan, g *Group, _ ClanLookup) error {
	a.add(g)

	ruler, ok := a.store.Get(m.ruler)
	if !ok || ruler.Cleared() {
		m.crown(a, g)
		return nil
	}
	if ruler.clan == c.name {
		if g.Power() > ruler.Power() {
			m.crown(a, g)
		}
		return nil
	}
	result, err := g.Fight(ruler)
	if err != nil {
		return err
	}
	if result == Won {
		m.crown(a, g)
	}
	return nil
}

// Leave picks a new ruler when the ruler departs: the strongest remaining
// group of the departing ruler's clan, otherwise the strongest remaining
// group overall. An area left with no live group has no ruler.
func (m *mountainPolicy) Leave(a *Area, g *Group) {
	if g.id != m.ruler {
		return
	}
	var next *Group
	for _, cur := range a.byStrength() {
		if cur.Cleared() {
			continue
		}
		if next == nil {
			next = cur
		}
		if cur.clan == g.clan {
			next = cur
			break
		}
	}
	m.crown(a, next)
}

func (m *mountainPolicy) crown(a *Area, g *Group) {
	if g == nil {
		m.ruler = 0
		emit(a.store, event.RulerChanged{Area: a.name})
		return
	}
	if m.ruler == g.id {
		return
	}
	m.ruler = g.id
	emit(a.store, event.RulerChanged{Area: a.name, Ruler: g.name})
}
