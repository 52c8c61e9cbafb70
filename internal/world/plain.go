package world

import "fmt"

// Plain: a group larger than a third of its clan splits in two on arrival
// (when it has at least 10 people); a smaller group tries to merge into the
// strongest present group of its own clan.
type plainPolicy struct{ baseLeave }

// plainDivideMin is the smallest population that splits on a plain.
const plainDivideMin = 10

func (plainPolicy) Arrive(a *Area, c *Clan, g *Group, _ ClanLookup) error {
	size, clanSize := g.Population(), c.Population()

	if size*3 > clanSize {
		if size >= plainDivideMin {
			fragmentName := a.fragmentName(g.name)
			fragment, err := g.Divide(fragmentName)
			if err != nil {
				return fmt.Errorf("plain %q: %w", a.name, err)
			}
			if err := c.AddGroup(fragment); err != nil {
				return fmt.Errorf("plain %q: %w", a.name, err)
			}
			f, _ := c.Group(fragmentName)
			a.add(f)
		}
		a.add(g)
		return nil
	}

	maxTotal := clanSize / 3
	for _, present := range a.byStrength() {
		if present.Cleared() || present.clan != c.name {
			continue
		}
		if present.Unite(g, maxTotal) {
			c.release(g.id)
			return nil
		}
	}
	a.add(g)
	return nil
}

// fragmentName appends the smallest free integer from 2 up, e.g. "g_2".
// Free means unused by any group in the store, not only in this area.
func (a *Area) fragmentName(name string) string {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !a.store.Has(candidate) {
			return candidate
		}
	}
}
