package pipeline

import "github.com/sarchlab/blinkcpu/insts"

// Statistics holds pipeline activity counts.
type Statistics struct {
	// Ticks is the total number of ticks simulated.
	Ticks uint64
	// Cycles is the number of completed FETCH/EXECUTE/MEMORY_WRITE cycles.
	Cycles uint64
	// Fetches is the number of FETCH phases run.
	Fetches uint64
	// Executes is the number of EXECUTE phases run.
	Executes uint64
	// MemoryWrites is the number of MEMORY_WRITE phases run.
	MemoryWrites uint64
	// Slot2Fills is the number of EXECUTE phases that loaded ALU slot 2.
	Slot2Fills uint64
	// Slot3Fills is the number of EXECUTE phases that loaded ALU slot 3.
	Slot3Fills uint64
}

// Slot2Rate returns the observed fill frequency of ALU slot 2.
func (s Statistics) Slot2Rate() float64 {
	if s.Executes == 0 {
		return 0
	}
	return float64(s.Slot2Fills) / float64(s.Executes)
}

// Slot3Rate returns the observed fill frequency of ALU slot 3.
func (s Statistics) Slot3Rate() float64 {
	if s.Executes == 0 {
		return 0
	}
	return float64(s.Slot3Fills) / float64(s.Executes)
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithSource uses src both to generate instructions and to make the EXECUTE
// phase's probabilistic choices.
func WithSource(src insts.Source) PipelineOption {
	return func(p *Pipeline) {
		p.gen = src
		p.chooser = src
	}
}

// WithGenerator sets the instruction generator.
func WithGenerator(gen insts.Generator) PipelineOption {
	return func(p *Pipeline) {
		p.gen = gen
	}
}

// WithChooser sets the source of EXECUTE's probabilistic choices.
func WithChooser(chooser insts.Chooser) PipelineOption {
	return func(p *Pipeline) {
		p.chooser = chooser
	}
}

// WithExecuteProbabilities sets the fill probabilities of ALU slots 2 and 3.
func WithExecuteProbabilities(slot2, slot3 float64) PipelineOption {
	return func(p *Pipeline) {
		p.slot2Prob = slot2
		p.slot3Prob = slot3
	}
}

// Pipeline is the cycle scheduler. It owns the State and advances it through
// FETCH -> EXECUTE -> MEMORY_WRITE once per tick, forever.
type Pipeline struct {
	state State

	// Pipeline stages
	fetchStage       *FetchStage
	executeStage     *ExecuteStage
	memoryWriteStage *MemoryWriteStage

	// Shared entropy
	gen     insts.Generator
	chooser insts.Chooser

	slot2Prob float64
	slot3Prob float64

	// Statistics
	stats Statistics
}

// NewPipeline creates a pipeline whose queue is pre-filled to capacity and
// whose other slots and counters are empty.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		slot2Prob: DefaultSlot2Probability,
		slot3Prob: DefaultSlot3Probability,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.gen == nil || p.chooser == nil {
		src := insts.NewTimeSeededSource()
		if p.gen == nil {
			p.gen = src
		}
		if p.chooser == nil {
			p.chooser = src
		}
	}

	p.fetchStage = NewFetchStage(p.gen)
	p.executeStage = NewExecuteStage(p.gen, p.chooser, p.slot2Prob, p.slot3Prob)
	p.memoryWriteStage = NewMemoryWriteStage(p.gen)

	p.Reset()

	return p
}

// Reset clears all state and statistics and refills the queue.
func (p *Pipeline) Reset() {
	p.state = State{Phase: PhaseFetch}
	for !p.state.Queue.Full() {
		p.state.Queue.Push(p.gen.Generate())
	}
	p.stats = Statistics{}
}

// Tick runs the current phase, advances the phase and bumps the clock.
func (p *Pipeline) Tick() {
	switch p.state.Phase {
	case PhaseFetch:
		p.fetchStage.Fetch(&p.state)
		p.stats.Fetches++
	case PhaseExecute:
		result := p.executeStage.Execute(&p.state)
		p.stats.Executes++
		if result.Slot2 {
			p.stats.Slot2Fills++
		}
		if result.Slot3 {
			p.stats.Slot3Fills++
		}
	case PhaseMemoryWrite:
		p.memoryWriteStage.Write(&p.state)
		p.stats.MemoryWrites++
		p.stats.Cycles++
	}

	p.state.Phase = p.state.Phase.Next()
	p.state.Counters.Clock++
	p.stats.Ticks++
}

// RunCycles runs n ticks.
func (p *Pipeline) RunCycles(n uint64) {
	for i := uint64(0); i < n; i++ {
		p.Tick()
	}
}

// State returns a copy of the current state.
func (p *Pipeline) State() State {
	return p.state
}

// Phase returns the phase that the next Tick will run.
func (p *Pipeline) Phase() Phase {
	return p.state.Phase
}

// Stats returns pipeline statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}
