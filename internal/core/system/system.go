package system

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver events emitted during the previous tick
	PhaseUpdate                // 1: apply world operations
	PhaseReport                // 2: collect report output
	PhasePersist               // 3: flush journal batches
)

// System is the interface every runner system implements.
type System interface {
	Phase() Phase
	Update(tick uint64)
}
