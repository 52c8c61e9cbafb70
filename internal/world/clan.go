package world

import (
	"fmt"
	"sort"

	"github.com/l1jgo/clanworld/internal/core/event"
)

// Clan owns an insertion-ordered roster of groups and a symmetric friendship
// relation. A clan consumed by Unite is cleared: no name, no groups, no
// friends.
type Clan struct {
	name    string
	store   *GroupStore
	groups  []GroupID
	friends map[*Clan]struct{}
}

// NewClan creates an empty clan whose groups live in store.
func NewClan(name string, store *GroupStore) (*Clan, error) {
	if name == "" {
		return nil, fmt.Errorf("new clan: %w", ErrEmptyName)
	}
	return &Clan{
		name:    name,
		store:   store,
		friends: make(map[*Clan]struct{}),
	}, nil
}

func (c *Clan) Name() string { return c.name }

// Cleared reports whether the clan was consumed by a union.
func (c *Clan) Cleared() bool { return c.name == "" }

// AddGroup stores a copy of g under this clan and moves it to this clan's
// affiliation (adjusting morale).
func (c *Clan) AddGroup(g Group) error {
	if g.Population() == 0 {
		return fmt.Errorf("clan %q add group %q: %w", c.name, g.name, ErrEmptyGroup)
	}
	if c.Contains(g.name) {
		return fmt.Errorf("clan %q add group %q: %w", c.name, g.name, ErrNameTaken)
	}
	id := c.store.Insert(g)
	stored, _ := c.store.Get(id)
	stored.ChangeAffiliation(c.name)
	c.groups = append(c.groups, id)
	return nil
}

// Group returns the live handle of the named group.
func (c *Clan) Group(name string) (*Group, error) {
	id, ok := c.lookup(name)
	if !ok {
		return nil, fmt.Errorf("clan %q group %q: %w", c.name, name, ErrGroupNotFound)
	}
	g, _ := c.store.Get(id)
	return g, nil
}

func (c *Clan) Contains(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Population sums the people of every group in the clan.
func (c *Clan) Population() int {
	total := 0
	for _, id := range c.groups {
		if g, ok := c.store.Get(id); ok {
			total += g.Population()
		}
	}
	return total
}

// Groups returns the non-cleared groups in insertion order.
func (c *Clan) Groups() []*Group {
	out := make([]*Group, 0, len(c.groups))
	for _, id := range c.groups {
		if g, ok := c.store.Get(id); ok && !g.Cleared() {
			out = append(out, g)
		}
	}
	return out
}

// Unite folds other into c under newName. Every check runs before any
// mutation, so a refused union leaves both clans untouched.
func (c *Clan) Unite(other *Clan, newName string) error {
	if newName == "" {
		return fmt.Errorf("unite clans %q and %q: %w", c.name, other.name, ErrEmptyName)
	}
	if c == other {
		return fmt.Errorf("unite clan %q with itself: %w", c.name, ErrCannotUnite)
	}
	for _, g := range c.Groups() {
		if other.Contains(g.name) {
			return fmt.Errorf("unite clans %q and %q: group %q in both: %w",
				c.name, other.name, g.name, ErrCannotUnite)
		}
	}

	oldName, otherName := c.name, other.name
	if newName != c.name {
		c.name = newName
		for _, g := range c.Groups() {
			g.ChangeAffiliation(newName)
		}
	}
	for _, id := range other.groups {
		if g, ok := c.store.Get(id); ok && !g.Cleared() {
			g.ChangeAffiliation(newName)
		}
		c.groups = append(c.groups, id)
	}

	for f := range other.friends {
		delete(f.friends, other)
		if f == c {
			continue
		}
		f.friends[c] = struct{}{}
		c.friends[f] = struct{}{}
	}
	delete(c.friends, other)
	other.clear()

	emit(c.store, event.ClansUnited{A: oldName, B: otherName, Name: newName})
	return nil
}

// MakeFriend links both clans. Already-friends is a no-op.
func (c *Clan) MakeFriend(other *Clan) {
	if c.IsFriend(other) {
		return
	}
	c.friends[other] = struct{}{}
	other.friends[c] = struct{}{}
}

// IsFriend reports friendship; every clan is its own friend.
func (c *Clan) IsFriend(other *Clan) bool {
	if c == other {
		return true
	}
	_, ok := c.friends[other]
	return ok
}

// Friends returns the friend clans' names, sorted.
func (c *Clan) Friends() []string {
	names := make([]string, 0, len(c.friends))
	for f := range c.friends {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// ByStrength returns the non-cleared groups strongest first.
func (c *Clan) ByStrength() []*Group {
	groups := c.Groups()
	sortStrongestFirst(groups)
	return groups
}

func (c *Clan) lookup(name string) (GroupID, bool) {
	if name == "" {
		return 0, false
	}
	for _, id := range c.groups {
		if g, ok := c.store.Get(id); ok && g.name == name {
			return id, true
		}
	}
	return 0, false
}

// release drops a group that was merged away and is no longer referenced
// by any area.
func (c *Clan) release(id GroupID) {
	for i, cur := range c.groups {
		if cur == id {
			c.groups = append(c.groups[:i], c.groups[i+1:]...)
			break
		}
	}
	c.store.Release(id)
}

func (c *Clan) clear() {
	c.name = ""
	c.groups = nil
	c.friends = make(map[*Clan]struct{})
}

func sortStrongestFirst(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[j].Less(groups[i])
	})
}
