package system

import (
	"bytes"
	"fmt"
	"io"

	coresys "github.com/l1jgo/clanworld/internal/core/system"
	"github.com/l1jgo/clanworld/internal/data"
	"github.com/l1jgo/clanworld/internal/world"
	"go.uber.org/zap"
)

// StepResult records how one scenario step went.
type StepResult struct {
	Tick   uint64
	Index  int
	Step   data.Step
	Code   string // error code, "" on success
	Passed bool   // Code matched Step.Expect
}

// ScenarioSystem applies one scenario step per tick. Report text produced
// by print steps is held until the report phase collects it.
// Phase 1 (Update).
type ScenarioSystem struct {
	world   *world.World
	steps   []data.Step
	next    int
	pending bytes.Buffer
	results []StepResult
	log     *zap.Logger
}

func NewScenarioSystem(w *world.World, steps []data.Step, log *zap.Logger) *ScenarioSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScenarioSystem{world: w, steps: steps, log: log}
}

func (s *ScenarioSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScenarioSystem) Update(tick uint64) {
	if s.Done() {
		return
	}
	i := s.next
	step := s.steps[i]
	s.next++

	err := ApplyStep(s.world, step, &s.pending)
	code := world.ErrorCode(err)
	res := StepResult{Tick: tick, Index: i, Step: step, Code: code, Passed: code == step.Expect}
	s.results = append(s.results, res)

	if !res.Passed {
		s.log.Warn("scenario step did not meet expectation",
			zap.Int("step", i),
			zap.Stringer("op", step),
			zap.String("got", codeOrOK(code)),
			zap.String("want", codeOrOK(step.Expect)),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("scenario step",
		zap.Int("step", i),
		zap.Stringer("op", step),
		zap.String("result", codeOrOK(code)),
	)
}

// Done reports whether every step has been applied.
func (s *ScenarioSystem) Done() bool {
	return s.next >= len(s.steps)
}

func (s *ScenarioSystem) Results() []StepResult {
	return s.results
}

// Failures counts steps that did not meet their expectation.
func (s *ScenarioSystem) Failures() int {
	n := 0
	for _, r := range s.results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// TakeOutput returns and clears the report text gathered so far.
func (s *ScenarioSystem) TakeOutput() []byte {
	out := bytes.Clone(s.pending.Bytes())
	s.pending.Reset()
	return out
}

func codeOrOK(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}

// ApplyStep runs one step against w. Print steps write their report to out.
func ApplyStep(w *world.World, step data.Step, out io.Writer) error {
	switch step.Op {
	case data.OpAddClan:
		return w.AddClan(step.Clan)
	case data.OpAddArea:
		kind, err := world.ParseKind(step.Kind)
		if err != nil {
			return err
		}
		return w.AddArea(step.Area, kind)
	case data.OpAddGroup:
		return w.AddGroup(step.Group, step.Clan, step.Children, step.Adults, step.Area)
	case data.OpMakeReachable:
		return w.MakeReachable(step.From, step.To)
	case data.OpMakeFriends:
		return w.MakeFriends(step.A, step.B)
	case data.OpMove:
		return w.MoveGroup(step.Group, step.To)
	case data.OpUniteClans:
		return w.UniteClans(step.A, step.B, step.Name)
	case data.OpPrintGroup:
		return w.PrintGroup(out, step.Group)
	case data.OpPrintClan:
		return w.PrintClan(out, step.Clan)
	}
	return fmt.Errorf("step op %q: %w", step.Op, world.ErrInvalidArgument)
}
