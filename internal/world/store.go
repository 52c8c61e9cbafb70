package world

import (
	"github.com/l1jgo/clanworld/internal/core/ecs"
	"github.com/l1jgo/clanworld/internal/core/event"
)

// GroupStore owns every clan-held Group. Clans and areas keep only GroupIDs,
// so a fight or trade run by an area is what the clan sees.
// It also keeps the name registry used for world-wide uniqueness checks.
// Single-goroutine access only.
type GroupStore struct {
	pool   *ecs.EntityPool
	groups *ecs.PtrComponentStore[Group]
	byName map[string][]GroupID
	bus    *event.Bus
}

// NewGroupStore creates an empty store. bus may be nil.
func NewGroupStore(bus *event.Bus) *GroupStore {
	return &GroupStore{
		pool:   ecs.NewEntityPool(),
		groups: ecs.NewPtrComponentStore[Group](),
		byName: make(map[string][]GroupID),
		bus:    bus,
	}
}

// Insert stores a copy of g and returns its handle.
func (s *GroupStore) Insert(g Group) GroupID {
	id := s.pool.Create()
	stored := g
	stored.id = id
	stored.store = s
	s.groups.Set(id, &stored)
	s.index(id, stored.name)
	return id
}

// Get returns the live group behind id.
func (s *GroupStore) Get(id GroupID) (*Group, bool) {
	if !s.pool.Alive(id) {
		return nil, false
	}
	return s.groups.Get(id)
}

// Lookup finds a non-cleared group by name.
func (s *GroupStore) Lookup(name string) (*Group, bool) {
	if name == "" {
		return nil, false
	}
	for _, id := range s.byName[name] {
		if g, ok := s.Get(id); ok {
			return g, true
		}
	}
	return nil, false
}

// Has reports whether any stored group currently carries name.
func (s *GroupStore) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Release drops the group behind id. Stale ids are ignored.
func (s *GroupStore) Release(id GroupID) {
	g, ok := s.Get(id)
	if !ok {
		return
	}
	s.unindex(id, g.name)
	g.store = nil
	s.groups.Remove(id)
	s.pool.Destroy(id)
}

// Len returns the number of stored groups, cleared ones included.
func (s *GroupStore) Len() int {
	return s.pool.Len()
}

// Each visits every stored group. Iteration order is unspecified.
func (s *GroupStore) Each(fn func(GroupID, *Group)) {
	s.groups.Each(fn)
}

func (s *GroupStore) renamed(id GroupID, old, name string) {
	if old == name {
		return
	}
	s.unindex(id, old)
	s.index(id, name)
}

func (s *GroupStore) index(id GroupID, name string) {
	if name == "" {
		return
	}
	s.byName[name] = append(s.byName[name], id)
}

func (s *GroupStore) unindex(id GroupID, name string) {
	ids := s.byName[name]
	for i, cur := range ids {
		if cur == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.byName, name)
		return
	}
	s.byName[name] = ids
}

func emit[T any](s *GroupStore, ev T) {
	if s == nil {
		return
	}
	event.Emit(s.bus, ev)
}
