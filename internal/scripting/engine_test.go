package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/clanworld/internal/world"
)

func newTestEngine(t *testing.T) (*Engine, *world.World) {
	t.Helper()
	w := world.NewWorld(nil, nil)
	e := NewEngine(w, nil)
	t.Cleanup(e.Close)
	return e, w
}

func TestEngine_DrivesWorld(t *testing.T) {
	e, w := newTestEngine(t)
	err := e.RunString(`
assert(world.add_clan("Israel") == nil)
assert(world.add_area("Jordan", "river") == nil)
assert(world.add_area("Negev", "plain") == nil)
assert(world.make_reachable("Jordan", "Negev") == nil)
assert(world.add_group("g1", "Israel", 5, 5, "Jordan") == nil)
assert(world.add_group{name = "g2", clan = "Israel", children = 1, adults = 1, area = "Negev"} == nil)
assert(world.move_group("g1", "Negev") == nil)
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := w.GroupArea("g2"); got != "Negev" {
		t.Fatalf("g2 area=%q", got)
	}
	if got := w.Stats().Clans; got != 1 {
		t.Fatalf("clans=%d", got)
	}
}

func TestEngine_ReturnsErrorCodes(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.RunString(`
assert(world.add_clan("") == "invalid_argument")
assert(world.add_clan("A") == nil)
assert(world.add_clan("A") == "name_taken")
assert(world.add_area("X", "swamp") == "invalid_argument")
assert(world.move_group("ghost", "X") == "group_not_found")
assert(world.unite_clans("A", "A", "B") == "invalid_argument")
assert(world.make_friends("A", "Z") == "clan_not_found")
local s, code = world.print_group("ghost")
assert(s == nil and code == "group_not_found")
local c, ccode = world.print_clan("Z")
assert(c == nil and ccode == "clan_not_found")
local g, gcode = world.group("ghost")
assert(g == nil and gcode == "group_not_found")
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestEngine_GroupSnapshotAndReports(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.RunString(`
world.add_clan("Israel")
world.add_area("Jordan", "river")
world.add_group("g1", "Israel", 5, 5, "Jordan")
local g = world.group("g1")
assert(g.name == "g1" and g.clan == "Israel")
assert(g.children == 5 and g.adults == 5)
assert(g.tools == 20 and g.food == 25 and g.morale == 77)
assert(g.area == "Jordan")
assert(g.power > 0)
local report = world.print_group("g1")
assert(string.find(report, "Group's current area: Jordan", 1, true))
local clan = world.print_clan("Israel")
assert(clan == "Clan's name: Israel\nClan's groups:\ng1\n")
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestEngine_ScriptErrorSurfaces(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.RunString(`error("boom")`); err == nil {
		t.Fatalf("expected error")
	}
	if err := e.RunString(`world.add_group("g", "A")`); err == nil {
		t.Fatalf("missing arguments: expected error")
	}
}

func TestEngine_RunDir(t *testing.T) {
	e, w := newTestEngine(t)
	dir := t.TempDir()
	files := map[string]string{
		"01_clans.lua": `world.add_clan("A")`,
		"02_areas.lua": `world.add_area("P", "plain")`,
		"notes.txt":    `not lua`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := e.RunDir(dir); err != nil {
		t.Fatalf("run dir: %v", err)
	}
	if s := w.Stats(); s.Clans != 1 || s.Areas != 1 {
		t.Fatalf("stats=%+v", s)
	}
	if err := e.RunDir(filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("missing dir: %v", err)
	}
}
