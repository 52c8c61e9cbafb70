package system

import (
	"io"

	coresys "github.com/l1jgo/clanworld/internal/core/system"
	"go.uber.org/zap"
)

// OutputSource hands over report text produced during the update phase.
type OutputSource interface {
	TakeOutput() []byte
}

// ReportSystem copies pending report text to the report writer.
// Phase 2 (Report).
type ReportSystem struct {
	src OutputSource
	out io.Writer
	log *zap.Logger
}

func NewReportSystem(src OutputSource, out io.Writer, log *zap.Logger) *ReportSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportSystem{src: src, out: out, log: log}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *ReportSystem) Update(_ uint64) {
	text := s.src.TakeOutput()
	if len(text) == 0 {
		return
	}
	if _, err := s.out.Write(text); err != nil {
		s.log.Error("write report", zap.Error(err))
	}
}
