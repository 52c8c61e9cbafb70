package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/clanworld/internal/world"
)

// Engine wraps a single gopher-lua VM driving a World through the global
// "world" table. Single-goroutine access only.
type Engine struct {
	vm    *lua.LState
	world *world.World
	log   *zap.Logger
}

// NewEngine creates a Lua VM bound to w.
func NewEngine(w *world.World, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, world: w, log: log}
	e.register()
	return e
}

func (e *Engine) register() {
	t := e.vm.NewTable()
	e.vm.SetFuncs(t, map[string]lua.LGFunction{
		"add_clan":       e.addClan,
		"add_area":       e.addArea,
		"add_group":      e.addGroup,
		"make_reachable": e.makeReachable,
		"make_friends":   e.makeFriends,
		"move_group":     e.moveGroup,
		"unite_clans":    e.uniteClans,
		"print_group":    e.printGroup,
		"print_clan":     e.printClan,
		"group":          e.group,
		"log":            e.logLine,
	})
	e.vm.SetGlobal("world", t)
}

// RunString executes a chunk of Lua source.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

// RunFile executes a Lua file.
func (e *Engine) RunFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	e.log.Debug("ran lua script", zap.String("file", path))
	return nil
}

// RunDir executes every .lua file in dir in name order.
// A missing directory is not an error.
func (e *Engine) RunDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.RunFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// result pushes nil on success or the error code string on failure.
func (e *Engine) result(L *lua.LState, op string, err error) int {
	if err == nil {
		L.Push(lua.LNil)
		return 1
	}
	e.log.Debug("lua world call refused", zap.String("op", op), zap.Error(err))
	L.Push(lua.LString(world.ErrorCode(err)))
	return 1
}

func (e *Engine) addClan(L *lua.LState) int {
	return e.result(L, "add_clan", e.world.AddClan(L.CheckString(1)))
}

func (e *Engine) addArea(L *lua.LState) int {
	name := L.CheckString(1)
	kind, err := world.ParseKind(L.CheckString(2))
	if err != nil {
		return e.result(L, "add_area", err)
	}
	return e.result(L, "add_area", e.world.AddArea(name, kind))
}

// addGroup accepts positional arguments (name, clan, children, adults,
// area) or a single table with those keys.
func (e *Engine) addGroup(L *lua.LState) int {
	if t, ok := L.Get(1).(*lua.LTable); ok {
		err := e.world.AddGroup(lStr(t, "name"), lStr(t, "clan"),
			lInt(t, "children"), lInt(t, "adults"), lStr(t, "area"))
		return e.result(L, "add_group", err)
	}
	err := e.world.AddGroup(
		L.CheckString(1), // name
		L.CheckString(2), // clan
		L.CheckInt(3),    // children
		L.CheckInt(4),    // adults
		L.CheckString(5), // area
	)
	return e.result(L, "add_group", err)
}

func (e *Engine) makeReachable(L *lua.LState) int {
	return e.result(L, "make_reachable", e.world.MakeReachable(L.CheckString(1), L.CheckString(2)))
}

func (e *Engine) makeFriends(L *lua.LState) int {
	return e.result(L, "make_friends", e.world.MakeFriends(L.CheckString(1), L.CheckString(2)))
}

func (e *Engine) moveGroup(L *lua.LState) int {
	return e.result(L, "move_group", e.world.MoveGroup(L.CheckString(1), L.CheckString(2)))
}

func (e *Engine) uniteClans(L *lua.LState) int {
	err := e.world.UniteClans(L.CheckString(1), L.CheckString(2), L.CheckString(3))
	return e.result(L, "unite_clans", err)
}

func (e *Engine) printGroup(L *lua.LState) int {
	var b strings.Builder
	if err := e.world.PrintGroup(&b, L.CheckString(1)); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(world.ErrorCode(err)))
		return 2
	}
	L.Push(lua.LString(b.String()))
	return 1
}

func (e *Engine) printClan(L *lua.LState) int {
	var b strings.Builder
	if err := e.world.PrintClan(&b, L.CheckString(1)); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(world.ErrorCode(err)))
		return 2
	}
	L.Push(lua.LString(b.String()))
	return 1
}

// group returns a snapshot table of the named group.
func (e *Engine) group(L *lua.LState) int {
	name := L.CheckString(1)
	g, ok := e.world.Group(name)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LString(world.ErrorCode(world.ErrGroupNotFound)))
		return 2
	}
	t := L.NewTable()
	t.RawSetString("name", lua.LString(g.Name()))
	t.RawSetString("clan", lua.LString(g.Clan()))
	t.RawSetString("children", lua.LNumber(g.Children()))
	t.RawSetString("adults", lua.LNumber(g.Adults()))
	t.RawSetString("tools", lua.LNumber(g.Tools()))
	t.RawSetString("food", lua.LNumber(g.Food()))
	t.RawSetString("morale", lua.LNumber(g.Morale()))
	t.RawSetString("power", lua.LNumber(g.Power()))
	t.RawSetString("area", lua.LString(e.world.GroupArea(name)))
	L.Push(t)
	return 1
}

func (e *Engine) logLine(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}
