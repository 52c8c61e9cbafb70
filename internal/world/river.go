package world

// River: an arriving group trades with the strongest present group of a
// friendly clan that accepts a trade, then stays regardless.
type riverPolicy struct{ baseLeave }

func (riverPolicy) Arrive(a *Area, c *Clan, g *Group, clans ClanLookup) error {
	for _, present := range a.byStrength() {
		if present.Cleared() {
			continue
		}
		other, ok := clans.Clan(present.clan)
		if !ok || !c.IsFriend(other) {
			continue
		}
		traded, err := g.Trade(present)
		if err != nil {
			continue
		}
		if traded {
			break
		}
	}
	a.add(g)
	return nil
}
