package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/clanworld/internal/world"
)

// Step operations.
const (
	OpAddClan       = "add_clan"
	OpAddArea       = "add_area"
	OpAddGroup      = "add_group"
	OpMakeReachable = "make_reachable"
	OpMakeFriends   = "make_friends"
	OpMove          = "move"
	OpUniteClans    = "unite_clans"
	OpPrintGroup    = "print_group"
	OpPrintClan     = "print_clan"
)

var knownOps = map[string]bool{
	OpAddClan: true, OpAddArea: true, OpAddGroup: true,
	OpMakeReachable: true, OpMakeFriends: true, OpMove: true,
	OpUniteClans: true, OpPrintGroup: true, OpPrintClan: true,
}

// Step is one world operation. Only the fields its Op needs are read.
type Step struct {
	Op       string `yaml:"op"`
	Clan     string `yaml:"clan,omitempty"`
	Group    string `yaml:"group,omitempty"`
	Area     string `yaml:"area,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	Children int    `yaml:"children,omitempty"`
	Adults   int    `yaml:"adults,omitempty"`
	From     string `yaml:"from,omitempty"`
	To       string `yaml:"to,omitempty"`
	A        string `yaml:"a,omitempty"`
	B        string `yaml:"b,omitempty"`
	Name     string `yaml:"name,omitempty"`
	// Expect is the error code the step must fail with; empty means it
	// must succeed.
	Expect string `yaml:"expect,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case OpAddClan:
		return fmt.Sprintf("%s %s", s.Op, s.Clan)
	case OpAddArea:
		return fmt.Sprintf("%s %s (%s)", s.Op, s.Area, s.Kind)
	case OpAddGroup:
		return fmt.Sprintf("%s %s/%s %d+%d in %s", s.Op, s.Clan, s.Group, s.Children, s.Adults, s.Area)
	case OpMakeReachable:
		return fmt.Sprintf("%s %s -> %s", s.Op, s.From, s.To)
	case OpMakeFriends, OpUniteClans:
		if s.Name != "" {
			return fmt.Sprintf("%s %s + %s as %s", s.Op, s.A, s.B, s.Name)
		}
		return fmt.Sprintf("%s %s + %s", s.Op, s.A, s.B)
	case OpMove:
		return fmt.Sprintf("%s %s -> %s", s.Op, s.Group, s.To)
	case OpPrintGroup:
		return fmt.Sprintf("%s %s", s.Op, s.Group)
	case OpPrintClan:
		return fmt.Sprintf("%s %s", s.Op, s.Clan)
	}
	return s.Op
}

type AreaEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type EdgeEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type GroupEntry struct {
	Name     string `yaml:"name"`
	Clan     string `yaml:"clan"`
	Children int    `yaml:"children"`
	Adults   int    `yaml:"adults"`
	Area     string `yaml:"area"`
}

// Scenario is a world setup plus a script of steps.
type Scenario struct {
	Name      string       `yaml:"name"`
	Clans     []string     `yaml:"clans"`
	Areas     []AreaEntry  `yaml:"areas"`
	Reachable []EdgeEntry  `yaml:"reachable"`
	Friends   [][]string   `yaml:"friends"`
	Groups    []GroupEntry `yaml:"groups"`
	Steps     []Step       `yaml:"steps"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML. Unknown keys are
// rejected so that a misspelled field does not silently become zero.
func ParseScenario(raw []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	for i, pair := range sc.Friends {
		if len(pair) != 2 {
			return fmt.Errorf("friends[%d]: want 2 clan names, got %d", i, len(pair))
		}
	}
	for i, a := range sc.Areas {
		if _, err := world.ParseKind(a.Kind); err != nil {
			return fmt.Errorf("areas[%d] %q: %w", i, a.Name, err)
		}
	}
	for i, s := range sc.Steps {
		if !knownOps[s.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, s.Op)
		}
		if s.Expect != "" && !world.IsErrorCode(s.Expect) {
			return fmt.Errorf("steps[%d]: unknown error code %q", i, s.Expect)
		}
	}
	return nil
}

// Expand flattens the setup sections and the explicit steps into one
// ordered list: clans, areas, reachable, friends, groups, then steps.
func (sc *Scenario) Expand() []Step {
	out := make([]Step, 0, len(sc.Clans)+len(sc.Areas)+len(sc.Reachable)+
		len(sc.Friends)+len(sc.Groups)+len(sc.Steps))
	for _, c := range sc.Clans {
		out = append(out, Step{Op: OpAddClan, Clan: c})
	}
	for _, a := range sc.Areas {
		out = append(out, Step{Op: OpAddArea, Area: a.Name, Kind: a.Kind})
	}
	for _, e := range sc.Reachable {
		out = append(out, Step{Op: OpMakeReachable, From: e.From, To: e.To})
	}
	for _, pair := range sc.Friends {
		out = append(out, Step{Op: OpMakeFriends, A: pair[0], B: pair[1]})
	}
	for _, g := range sc.Groups {
		out = append(out, Step{
			Op:       OpAddGroup,
			Group:    g.Name,
			Clan:     g.Clan,
			Children: g.Children,
			Adults:   g.Adults,
			Area:     g.Area,
		})
	}
	return append(out, sc.Steps...)
}
