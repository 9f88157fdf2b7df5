package pipeline

// Phase is one step of the three-phase cycle.
type Phase uint8

const (
	// PhaseFetch moves the queue head into ALU slot 0.
	PhaseFetch Phase = iota
	// PhaseExecute fills ALU slots 1 to 3.
	PhaseExecute
	// PhaseMemoryWrite overwrites the memory bank.
	PhaseMemoryWrite

	// NumPhases is the length of one full cycle.
	NumPhases = 3
)

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	return (p + 1) % NumPhases
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFetch:
		return "FETCH"
	case PhaseExecute:
		return "EXECUTE"
	case PhaseMemoryWrite:
		return "MEMORY_WRITE"
	default:
		return "UNKNOWN"
	}
}
