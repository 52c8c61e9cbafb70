package world

import (
	"errors"
	"testing"
)

func newTestClan(t *testing.T, store *GroupStore, name string, groups ...Group) *Clan {
	t.Helper()
	c, err := NewClan(name, store)
	if err != nil {
		t.Fatalf("new clan %s: %v", name, err)
	}
	for _, g := range groups {
		if err := c.AddGroup(g); err != nil {
			t.Fatalf("clan %s add %s: %v", name, g.Name(), err)
		}
	}
	return c
}

func defaultGroup(t *testing.T, name string, children, adults int) Group {
	t.Helper()
	g, err := NewGroup(name, children, adults)
	if err != nil {
		t.Fatalf("new group %s: %v", name, err)
	}
	return g
}

func TestNewClan_EmptyName(t *testing.T) {
	if _, err := NewClan("", NewGroupStore(nil)); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("err=%v want ErrEmptyName", err)
	}
}

func TestClan_AddGroupStoresAffiliatedCopy(t *testing.T) {
	store := NewGroupStore(nil)
	g := defaultGroup(t, "g", 2, 2)
	c := newTestClan(t, store, "A", g)

	if g.Clan() != "" || g.Morale() != 70 {
		t.Fatalf("caller's value mutated: clan=%q morale=%d", g.Clan(), g.Morale())
	}
	held, err := c.Group("g")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if held.Clan() != "A" || held.Morale() != 77 {
		t.Fatalf("held clan=%q morale=%d", held.Clan(), held.Morale())
	}
	viaStore, ok := store.Lookup("g")
	if !ok || viaStore != held {
		t.Fatalf("store and clan disagree on identity")
	}
}

func TestClan_AddGroupErrors(t *testing.T) {
	c := newTestClan(t, NewGroupStore(nil), "A", defaultGroup(t, "g", 1, 1))
	if err := c.AddGroup(defaultGroup(t, "g", 3, 3)); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("duplicate: err=%v", err)
	}
	if err := c.AddGroup(Group{name: "empty"}); !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("empty: err=%v", err)
	}
	if _, err := c.Group("missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("missing: err=%v", err)
	}
	if c.Contains("missing") || !c.Contains("g") {
		t.Fatalf("contains mismatch")
	}
}

func TestClan_Population(t *testing.T) {
	c := newTestClan(t, NewGroupStore(nil), "A",
		defaultGroup(t, "a", 1, 2), defaultGroup(t, "b", 3, 4))
	if c.Population() != 10 {
		t.Fatalf("population=%d want 10", c.Population())
	}
}

func TestClan_UniteRenamesAndMovesGroups(t *testing.T) {
	store := NewGroupStore(nil)
	a := newTestClan(t, store, "A", defaultGroup(t, "a1", 1, 1), defaultGroup(t, "a2", 2, 2))
	b := newTestClan(t, store, "B", defaultGroup(t, "b1", 3, 3))
	d := newTestClan(t, store, "D")
	b.MakeFriend(d)

	b1, _ := b.Group("b1")
	if err := a.Unite(b, "C"); err != nil {
		t.Fatalf("unite: %v", err)
	}
	if a.Name() != "C" || !b.Cleared() {
		t.Fatalf("names: a=%q b=%q", a.Name(), b.Name())
	}
	for _, name := range []string{"a1", "a2", "b1"} {
		g, err := a.Group(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if g.Clan() != "C" || g.Morale() != 69 {
			t.Fatalf("%s clan=%q morale=%d", name, g.Clan(), g.Morale())
		}
	}
	if moved, _ := a.Group("b1"); moved != b1 {
		t.Fatalf("b1 identity not preserved")
	}
	if len(b.Groups()) != 0 || b.Contains("b1") {
		t.Fatalf("consumed clan still holds groups")
	}
	if !a.IsFriend(d) || !d.IsFriend(a) {
		t.Fatalf("friendship not inherited")
	}
	if d.IsFriend(b) {
		t.Fatalf("consumed clan still a friend")
	}
}

func TestClan_UniteKeepingOwnName(t *testing.T) {
	store := NewGroupStore(nil)
	a := newTestClan(t, store, "A", defaultGroup(t, "a1", 1, 1))
	b := newTestClan(t, store, "B", defaultGroup(t, "b1", 1, 1))
	if err := a.Unite(b, "A"); err != nil {
		t.Fatalf("unite: %v", err)
	}
	a1, _ := a.Group("a1")
	b1, _ := a.Group("b1")
	if a1.Morale() != 77 {
		t.Fatalf("a1 morale=%d want unchanged 77", a1.Morale())
	}
	if b1.Morale() != 69 || b1.Clan() != "A" {
		t.Fatalf("b1 clan=%q morale=%d", b1.Clan(), b1.Morale())
	}
}

func TestClan_UniteRefusalsLeaveBothUntouched(t *testing.T) {
	store := NewGroupStore(nil)
	a := newTestClan(t, store, "A", defaultGroup(t, "g", 1, 1))
	b := newTestClan(t, NewGroupStore(nil), "B", defaultGroup(t, "g", 2, 2))

	if err := a.Unite(b, ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("empty name: err=%v", err)
	}
	if err := a.Unite(a, "X"); !errors.Is(err, ErrCannotUnite) {
		t.Fatalf("self: err=%v", err)
	}
	if err := a.Unite(b, "X"); !errors.Is(err, ErrCannotUnite) {
		t.Fatalf("collision: err=%v", err)
	}
	g, _ := a.Group("g")
	if a.Name() != "A" || b.Name() != "B" || g.Clan() != "A" || g.Morale() != 77 {
		t.Fatalf("refused union mutated state")
	}
}

func TestClan_Friendship(t *testing.T) {
	store := NewGroupStore(nil)
	a := newTestClan(t, store, "A")
	b := newTestClan(t, store, "B")
	if !a.IsFriend(a) {
		t.Fatalf("clan not its own friend")
	}
	if a.IsFriend(b) {
		t.Fatalf("friends by default")
	}
	a.MakeFriend(b)
	a.MakeFriend(b)
	if !b.IsFriend(a) {
		t.Fatalf("friendship not symmetric")
	}
	if got := a.Friends(); len(got) != 1 || got[0] != "B" {
		t.Fatalf("friends=%v", got)
	}
}

func TestClan_ReportStrongestFirst(t *testing.T) {
	c := newTestClan(t, NewGroupStore(nil), "A",
		defaultGroup(t, "small", 1, 1),
		defaultGroup(t, "big", 5, 5),
		defaultGroup(t, "twin-b", 2, 2),
		defaultGroup(t, "twin-a", 2, 2),
	)
	want := "Clan's name: A\nClan's groups:\nbig\ntwin-b\ntwin-a\nsmall\n"
	if got := c.String(); got != want {
		t.Fatalf("got=%q want %q", got, want)
	}
}
