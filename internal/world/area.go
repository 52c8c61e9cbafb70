package world

import (
	"fmt"
	"strings"

	"github.com/l1jgo/clanworld/internal/core/set"
)

// Kind selects an area's arrival and departure rules.
type Kind int

const (
	KindPlain Kind = iota
	KindMountain
	KindRiver
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindMountain:
		return "mountain"
	case KindRiver:
		return "river"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "plain", "mountain" or "river", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return KindPlain, nil
	case "mountain":
		return KindMountain, nil
	case "river":
		return KindRiver, nil
	}
	return 0, fmt.Errorf("area kind %q: %w", s, ErrInvalidArgument)
}

// ClanLookup resolves clans by name during arrivals.
type ClanLookup interface {
	Clan(name string) (*Clan, bool)
}

// Policy is the per-kind behavior behind Area.Arrive and Area.Leave.
// Arrive runs after the shared checks and must place g in a.groups itself
// (or release it if merged away). Leave runs after g was removed.
type Policy interface {
	Arrive(a *Area, c *Clan, g *Group, clans ClanLookup) error
	Leave(a *Area, g *Group)
}

var policies = map[Kind]func() Policy{
	KindPlain:    func() Policy { return plainPolicy{} },
	KindMountain: func() Policy { return &mountainPolicy{} },
	KindRiver:    func() Policy { return riverPolicy{} },
}

// Area is a territory holding the groups currently standing in it.
type Area struct {
	name      string
	kind      Kind
	store     *GroupStore
	groups    []GroupID
	reachable *set.Ordered[string]
	policy    Policy
}

// NewArea creates an empty area of the given kind.
func NewArea(name string, kind Kind, store *GroupStore) (*Area, error) {
	if name == "" {
		return nil, fmt.Errorf("new area: %w", ErrInvalidArgument)
	}
	newPolicy, ok := policies[kind]
	if !ok {
		return nil, fmt.Errorf("new area %q: kind %d: %w", name, int(kind), ErrInvalidArgument)
	}
	return &Area{
		name:      name,
		kind:      kind,
		store:     store,
		reachable: set.New[string](),
		policy:    newPolicy(),
	}, nil
}

func (a *Area) Name() string { return a.name }
func (a *Area) Kind() Kind   { return a.kind }

// FindGroup returns the present group with that name, if any.
func (a *Area) FindGroup(name string) (*Group, bool) {
	_, g, ok := a.find(name)
	return g, ok
}

// Groups returns the present groups in arrival order, cleared ones included.
func (a *Area) Groups() []*Group {
	out := make([]*Group, 0, len(a.groups))
	for _, id := range a.groups {
		if g, ok := a.store.Get(id); ok {
			out = append(out, g)
		}
	}
	return out
}

// GroupNames returns the names of the present non-cleared groups.
func (a *Area) GroupNames() *set.Ordered[string] {
	names := set.New[string]()
	for _, g := range a.Groups() {
		if g.name != "" {
			names.Insert(g.name)
		}
	}
	return names
}

func (a *Area) AddReachable(name string) {
	a.reachable.Insert(name)
}

// IsReachable is true for the area itself and for every added name.
func (a *Area) IsReachable(name string) bool {
	return name == a.name || a.reachable.Contains(name)
}

// Reachable returns the added reachable names in insertion order.
func (a *Area) Reachable() []string {
	return a.reachable.Slice()
}

// Ruler returns the ruling group of a mountain area.
func (a *Area) Ruler() (*Group, bool) {
	m, ok := a.policy.(*mountainPolicy)
	if !ok || m.ruler.IsZero() {
		return nil, false
	}
	return a.store.Get(m.ruler)
}

// Arrive brings the named group of the named clan into the area under the
// area's rules.
func (a *Area) Arrive(groupName, clanName string, clans ClanLookup) error {
	c, ok := clans.Clan(clanName)
	if !ok {
		return fmt.Errorf("area %q arrival of %q: clan %q: %w", a.name, groupName, clanName, ErrClanNotFound)
	}
	g, err := c.Group(groupName)
	if err != nil {
		return fmt.Errorf("area %q arrival of %q: clan %q: %w", a.name, groupName, clanName, ErrGroupNotInClan)
	}
	if _, present := a.FindGroup(groupName); present {
		return fmt.Errorf("area %q arrival of %q: %w", a.name, groupName, ErrGroupAlreadyPresent)
	}
	return a.policy.Arrive(a, c, g, clans)
}

// Leave removes the named group and lets the area's rules react.
func (a *Area) Leave(groupName string) error {
	i, g, ok := a.find(groupName)
	if !ok {
		return fmt.Errorf("area %q departure of %q: %w", a.name, groupName, ErrGroupNotFound)
	}
	a.groups = append(a.groups[:i], a.groups[i+1:]...)
	a.policy.Leave(a, g)
	return nil
}

func (a *Area) add(g *Group) {
	a.groups = append(a.groups, g.id)
}

// byStrength returns the present groups strongest first. The roster itself
// keeps arrival order.
func (a *Area) byStrength() []*Group {
	groups := a.Groups()
	sortStrongestFirst(groups)
	return groups
}

func (a *Area) find(name string) (int, *Group, bool) {
	if name == "" {
		return -1, nil, false
	}
	for i, id := range a.groups {
		if g, ok := a.store.Get(id); ok && g.name == name {
			return i, g, true
		}
	}
	return -1, nil, false
}

// shared departure for kinds without local state
type baseLeave struct{}

func (baseLeave) Leave(*Area, *Group) {}
