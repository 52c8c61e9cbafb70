package world

import (
	"fmt"
	"io"
	"sort"

	"github.com/l1jgo/clanworld/internal/core/event"
	"go.uber.org/zap"
)

// World is the registry of clans and areas. It enforces world-wide group
// name uniqueness and reachability around the per-area rules.
// Single-goroutine access only.
type World struct {
	store *GroupStore
	clans map[string]*Clan
	areas map[string]*Area
	bus   *event.Bus
	log   *zap.Logger
}

// NewWorld creates an empty world. bus and log may be nil.
func NewWorld(bus *event.Bus, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		store: NewGroupStore(bus),
		clans: make(map[string]*Clan),
		areas: make(map[string]*Area),
		bus:   bus,
		log:   log,
	}
}

// Clan implements ClanLookup.
func (w *World) Clan(name string) (*Clan, bool) {
	c, ok := w.clans[name]
	return c, ok
}

func (w *World) Area(name string) (*Area, bool) {
	a, ok := w.areas[name]
	return a, ok
}

// Group finds a live group anywhere in the world.
func (w *World) Group(name string) (*Group, bool) {
	return w.store.Lookup(name)
}

func (w *World) AddClan(name string) error {
	if name == "" {
		return fmt.Errorf("add clan: %w", ErrInvalidArgument)
	}
	if _, ok := w.clans[name]; ok {
		return fmt.Errorf("add clan %q: %w", name, ErrNameTaken)
	}
	c, err := NewClan(name, w.store)
	if err != nil {
		return fmt.Errorf("add clan %q: %w", name, ErrInvalidArgument)
	}
	w.clans[name] = c
	event.Emit(w.bus, event.ClanAdded{Clan: name})
	w.log.Debug("clan added", zap.String("clan", name))
	return nil
}

func (w *World) AddArea(name string, kind Kind) error {
	if name == "" {
		return fmt.Errorf("add area: %w", ErrInvalidArgument)
	}
	if _, ok := w.areas[name]; ok {
		return fmt.Errorf("add area %q: %w", name, ErrNameTaken)
	}
	a, err := NewArea(name, kind, w.store)
	if err != nil {
		return fmt.Errorf("add area %q: %w", name, err)
	}
	w.areas[name] = a
	event.Emit(w.bus, event.AreaAdded{Area: name, Kind: kind.String()})
	w.log.Debug("area added", zap.String("area", name), zap.Stringer("kind", kind))
	return nil
}

// AddGroup creates a group with default resources, registers it with its
// clan and lets it arrive at the area.
func (w *World) AddGroup(name, clanName string, children, adults int, areaName string) error {
	g, err := NewGroup(name, children, adults)
	if err != nil {
		return fmt.Errorf("add group: %w", err)
	}
	if w.store.Has(name) {
		return fmt.Errorf("add group %q: %w", name, ErrNameTaken)
	}
	c, ok := w.clans[clanName]
	if !ok {
		return fmt.Errorf("add group %q: clan %q: %w", name, clanName, ErrClanNotFound)
	}
	a, ok := w.areas[areaName]
	if !ok {
		return fmt.Errorf("add group %q: area %q: %w", name, areaName, ErrAreaNotFound)
	}

	if err := c.AddGroup(g); err != nil {
		return fmt.Errorf("add group %q: %w", name, err)
	}
	if err := a.Arrive(name, clanName, w); err != nil {
		if id, ok := c.lookup(name); ok {
			c.release(id)
		}
		return fmt.Errorf("add group %q: %w", name, err)
	}

	event.Emit(w.bus, event.GroupAdded{
		Group:      name,
		Clan:       clanName,
		Area:       areaName,
		Population: children + adults,
	})
	w.log.Debug("group added",
		zap.String("group", name),
		zap.String("clan", clanName),
		zap.String("area", areaName),
	)
	return nil
}

// MakeReachable adds the directed edge from → to.
func (w *World) MakeReachable(from, to string) error {
	src, ok := w.areas[from]
	if !ok {
		return fmt.Errorf("make reachable %q: %w", from, ErrAreaNotFound)
	}
	if _, ok := w.areas[to]; !ok {
		return fmt.Errorf("make reachable %q: %w", to, ErrAreaNotFound)
	}
	src.AddReachable(to)
	event.Emit(w.bus, event.ReachabilityAdded{From: from, To: to})
	return nil
}

// MoveGroup takes a group out of its current area and lets it arrive at
// destination under the destination's rules.
func (w *World) MoveGroup(name, destination string) error {
	g, ok := w.store.Lookup(name)
	if !ok {
		return fmt.Errorf("move group %q: %w", name, ErrGroupNotFound)
	}
	dst, ok := w.areas[destination]
	if !ok {
		return fmt.Errorf("move group %q: area %q: %w", name, destination, ErrAreaNotFound)
	}
	if _, present := dst.FindGroup(name); present {
		return fmt.Errorf("move group %q: area %q: %w", name, destination, ErrGroupAlreadyInArea)
	}
	src := w.areaOf(name)
	if src != nil && !src.IsReachable(destination) {
		return fmt.Errorf("move group %q: %q -> %q: %w", name, src.name, destination, ErrAreaNotReachable)
	}
	clanName := g.clan
	if _, ok := w.clans[clanName]; !ok {
		return fmt.Errorf("move group %q: clan %q: %w", name, clanName, ErrClanNotFound)
	}

	from := ""
	if src != nil {
		from = src.name
		if err := src.Leave(name); err != nil {
			return fmt.Errorf("move group %q: %w", name, err)
		}
	}
	if err := dst.Arrive(name, clanName, w); err != nil {
		return fmt.Errorf("move group %q: %w", name, err)
	}

	event.Emit(w.bus, event.GroupMoved{Group: name, From: from, To: destination})
	w.log.Debug("group moved",
		zap.String("group", name),
		zap.String("from", from),
		zap.String("to", destination),
	)
	return nil
}

func (w *World) MakeFriends(a, b string) error {
	ca, ok := w.clans[a]
	if !ok {
		return fmt.Errorf("make friends %q: %w", a, ErrClanNotFound)
	}
	cb, ok := w.clans[b]
	if !ok {
		return fmt.Errorf("make friends %q: %w", b, ErrClanNotFound)
	}
	ca.MakeFriend(cb)
	event.Emit(w.bus, event.ClansBefriended{A: a, B: b})
	return nil
}

// UniteClans merges clan b into clan a and registers the result as newName.
func (w *World) UniteClans(a, b, newName string) error {
	if newName == "" || a == b {
		return fmt.Errorf("unite clans %q and %q: %w", a, b, ErrInvalidArgument)
	}
	if newName != a && newName != b {
		if _, ok := w.clans[newName]; ok {
			return fmt.Errorf("unite clans %q and %q as %q: %w", a, b, newName, ErrNameTaken)
		}
	}
	ca, ok := w.clans[a]
	if !ok {
		return fmt.Errorf("unite clans: %q: %w", a, ErrClanNotFound)
	}
	cb, ok := w.clans[b]
	if !ok {
		return fmt.Errorf("unite clans: %q: %w", b, ErrClanNotFound)
	}
	if err := ca.Unite(cb, newName); err != nil {
		return err
	}
	delete(w.clans, a)
	delete(w.clans, b)
	w.clans[newName] = ca
	w.log.Debug("clans united",
		zap.String("a", a),
		zap.String("b", b),
		zap.String("name", newName),
	)
	return nil
}

// PrintGroup writes the group report followed by its current area.
func (w *World) PrintGroup(out io.Writer, name string) error {
	g, ok := w.store.Lookup(name)
	if !ok {
		return fmt.Errorf("print group %q: %w", name, ErrGroupNotFound)
	}
	areaName := ""
	if a := w.areaOf(name); a != nil {
		areaName = a.name
	}
	if err := g.WriteReport(out); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Group's current area: %s\n", areaName)
	return err
}

func (w *World) PrintClan(out io.Writer, name string) error {
	c, ok := w.clans[name]
	if !ok {
		return fmt.Errorf("print clan %q: %w", name, ErrClanNotFound)
	}
	return c.WriteReport(out)
}

// GroupArea returns the name of the area holding the group, or "".
func (w *World) GroupArea(name string) string {
	if a := w.areaOf(name); a != nil {
		return a.name
	}
	return ""
}

// Stats summarizes the world for reporting.
type Stats struct {
	Clans      int
	Areas      int
	Groups     int
	Population int
}

func (w *World) Stats() Stats {
	s := Stats{Clans: len(w.clans), Areas: len(w.areas)}
	for _, c := range w.clans {
		groups := c.Groups()
		s.Groups += len(groups)
		s.Population += c.Population()
	}
	return s
}

// ClanNames returns the registered clan names, sorted.
func (w *World) ClanNames() []string {
	names := make([]string, 0, len(w.clans))
	for name := range w.clans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AreaNames returns the registered area names, sorted.
func (w *World) AreaNames() []string {
	names := make([]string, 0, len(w.areas))
	for name := range w.areas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (w *World) areaOf(groupName string) *Area {
	for _, a := range w.areas {
		if _, ok := a.FindGroup(groupName); ok {
			return a
		}
	}
	return nil
}
