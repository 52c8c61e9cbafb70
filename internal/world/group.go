package world

import (
	"fmt"

	"github.com/l1jgo/clanworld/internal/core/ecs"
	"github.com/l1jgo/clanworld/internal/core/event"
)

// Defaults for NewGroup.
const (
	toolsPerAdult = 4
	foodPerAdult  = 3
	foodPerChild  = 2
	initialMorale = 70
)

const (
	maxMorale      = 100
	minUniteMorale = 70
)

// GroupID addresses a Group inside a GroupStore. The zero value means none.
type GroupID = ecs.EntityID

// FightResult is the outcome of a fight from the caller's side.
type FightResult int

const (
	Draw FightResult = iota
	Won
	Lost
)

func (r FightResult) String() string {
	switch r {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "draw"
	}
}

// Group is a population unit. A Group held by a GroupStore is shared by
// pointer between its clan and the area it stands in; renames and clears
// made through any holder are recorded in the store's name registry.
type Group struct {
	name     string
	clan     string
	children int
	adults   int
	tools    int
	food     int
	morale   int

	id    GroupID
	store *GroupStore
}

// NewGroupWithStock builds a group with explicit resources.
func NewGroupWithStock(name, clan string, children, adults, tools, food, morale int) (Group, error) {
	if name == "" || children < 0 || adults < 0 || tools < 0 || food < 0 {
		return Group{}, fmt.Errorf("new group %q: %w", name, ErrInvalidArgument)
	}
	if morale < 0 || morale > maxMorale {
		return Group{}, fmt.Errorf("new group %q: morale %d: %w", name, morale, ErrInvalidArgument)
	}
	if children == 0 && adults == 0 {
		return Group{}, fmt.Errorf("new group %q: no people: %w", name, ErrInvalidArgument)
	}
	return Group{
		name:     name,
		clan:     clan,
		children: children,
		adults:   adults,
		tools:    tools,
		food:     food,
		morale:   morale,
	}, nil
}

// NewGroup builds an unaffiliated group with 4 tools per adult, 3 food per
// adult plus 2 per child, and morale 70.
func NewGroup(name string, children, adults int) (Group, error) {
	return NewGroupWithStock(name, "", children, adults,
		toolsPerAdult*adults,
		foodPerAdult*adults+foodPerChild*children,
		initialMorale)
}

func (g *Group) ID() GroupID     { return g.id }
func (g *Group) Name() string    { return g.name }
func (g *Group) Clan() string    { return g.clan }
func (g *Group) Children() int   { return g.children }
func (g *Group) Adults() int     { return g.adults }
func (g *Group) Tools() int      { return g.tools }
func (g *Group) Food() int       { return g.food }
func (g *Group) Morale() int     { return g.morale }
func (g *Group) Population() int { return g.children + g.adults }

// Cleared reports whether the group was eliminated or merged away.
func (g *Group) Cleared() bool { return g.Population() == 0 }

// Power = (10·adults + 3·children)·(10·tools + food)·morale / 100, truncated.
func (g *Group) Power() int {
	return (10*g.adults + 3*g.children) * (10*g.tools + g.food) * g.morale / 100
}

// Less orders by power ascending, then by name.
func (g *Group) Less(o *Group) bool {
	p1, p2 := g.Power(), o.Power()
	if p1 != p2 {
		return p1 < p2
	}
	return g.name < o.name
}

// ChangeAffiliation moves the group to clan. Joining from no clan raises
// morale by 10% (capped at 100); switching clans lowers it by 10%.
func (g *Group) ChangeAffiliation(clan string) {
	if g.clan == clan {
		return
	}
	if g.clan == "" {
		g.morale = min(g.morale*11/10, maxMorale)
	} else {
		g.morale = g.morale * 9 / 10
	}
	g.clan = clan
}

// Unite absorbs other into g. It refuses, without touching either side,
// when other is g, the clans differ, either morale is below 70 or the
// combined population exceeds maxTotal. The merged group takes the name of
// the stronger side (g's on a tie) and other is cleared.
func (g *Group) Unite(other *Group, maxTotal int) bool {
	if g == other || g.clan != other.clan {
		return false
	}
	if g.morale < minUniteMorale || other.morale < minUniteMorale {
		return false
	}
	size, otherSize := g.Population(), other.Population()
	if size+otherSize > maxTotal {
		return false
	}

	absorbed := other.name
	survivor := g.name
	if g.Power() < other.Power() {
		survivor = other.name
	}
	morale := (g.morale*size + other.morale*otherSize) / (size + otherSize)
	g.children += other.children
	g.adults += other.adults
	g.tools += other.tools
	g.food += other.food
	g.morale = morale
	other.clear()
	if survivor != g.name {
		absorbed = g.name
		g.setName(survivor)
	}

	emit(g.store, event.GroupsUnited{
		Survivor:   survivor,
		Absorbed:   absorbed,
		Population: g.Population(),
	})
	return true
}

// Divide splits off a new group named newName holding the floor half of
// every count. g keeps the ceiling half. Both keep clan and morale.
func (g *Group) Divide(newName string) (Group, error) {
	if newName == "" {
		return Group{}, fmt.Errorf("divide %q: %w", g.name, ErrInvalidArgument)
	}
	if g.children <= 1 && g.adults <= 1 {
		return Group{}, fmt.Errorf("divide %q: %w", g.name, ErrCannotDivide)
	}
	fragment := Group{
		name:     newName,
		clan:     g.clan,
		children: g.children / 2,
		adults:   g.adults / 2,
		tools:    g.tools / 2,
		food:     g.food / 2,
		morale:   g.morale,
	}
	g.children = ceilDiv(g.children, 2)
	g.adults = ceilDiv(g.adults, 2)
	g.tools = ceilDiv(g.tools, 2)
	g.food = ceilDiv(g.food, 2)

	emit(g.store, event.GroupDivided{Group: g.name, Fragment: newName})
	return fragment, nil
}

// Fight resolves a battle between g and opponent. The stronger side wins;
// equal power is a draw with no change. Any side left with zero power is
// cleared.
func (g *Group) Fight(opponent *Group) (FightResult, error) {
	if g == opponent {
		return Draw, fmt.Errorf("fight %q: %w", g.name, ErrFightSelf)
	}
	if g.Population() == 0 || opponent.Population() == 0 {
		return Draw, fmt.Errorf("fight %q vs %q: %w", g.name, opponent.name, ErrFightEmpty)
	}
	attacker, defender := g.name, opponent.name

	result := Draw
	switch p1, p2 := g.Power(), opponent.Power(); {
	case p1 > p2:
		g.defeat(opponent)
		result = Won
	case p1 < p2:
		opponent.defeat(g)
		result = Lost
	}

	var cleared []string
	if result != Draw {
		for _, side := range []*Group{g, opponent} {
			if side.Power() == 0 {
				cleared = append(cleared, side.name)
				side.clear()
			}
		}
	}

	emit(g.store, event.FightResolved{
		Attacker: attacker,
		Defender: defender,
		Outcome:  result.String(),
		Cleared:  cleared,
	})
	return result, nil
}

// defeat applies the aftermath of a fight won by g.
func (g *Group) defeat(loser *Group) {
	lostFood := ceilDiv(loser.food, 2)
	loser.children -= ceilDiv(loser.children, 3)
	loser.adults -= ceilDiv(loser.adults, 3)
	loser.tools -= ceilDiv(loser.tools, 2)
	loser.food -= lostFood
	loser.morale -= ceilDiv(loser.morale, 5)

	g.adults -= g.adults / 4
	g.tools -= g.tools / 4
	g.food += lostFood / 2
	g.morale = min(g.morale+ceilDiv(g.morale, 5), maxMorale)
}

// Trade exchanges tools for food between two groups with opposite
// surpluses. It reports false, changing nothing, when either side is
// already balanced or both have a surplus of the same resource.
func (g *Group) Trade(other *Group) (bool, error) {
	if g == other {
		return false, fmt.Errorf("trade %q: %w", g.name, ErrTradeSelf)
	}
	diff, otherDiff := g.food-g.tools, other.food-other.tools
	if diff == 0 || otherDiff == 0 || (diff > 0) == (otherDiff > 0) {
		return false, nil
	}

	offer := ceilDiv(abs(diff), 2)
	otherOffer := ceilDiv(abs(otherDiff), 2)
	amount := ceilDiv(offer+otherOffer, 2)
	if diff > 0 {
		// g gives food, receives tools
		amount = min(amount, g.food, other.tools)
		g.food -= amount
		other.food += amount
		other.tools -= amount
		g.tools += amount
	} else {
		amount = min(amount, g.tools, other.food)
		g.tools -= amount
		other.tools += amount
		other.food -= amount
		g.food += amount
	}

	emit(g.store, event.TradeCompleted{Initiator: g.name, Partner: other.name, Amount: amount})
	return true, nil
}

// clear empties every field; the group keeps its store slot.
func (g *Group) clear() {
	g.setName("")
	g.clan = ""
	g.children = 0
	g.adults = 0
	g.tools = 0
	g.food = 0
	g.morale = 0
}

func (g *Group) setName(name string) {
	old := g.name
	g.name = name
	if g.store != nil {
		g.store.renamed(g.id, old, name)
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
