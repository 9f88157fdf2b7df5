package pipeline

import "github.com/sarchlab/blinkcpu/insts"

const (
	// DefaultSlot2Probability is the chance that EXECUTE fills ALU slot 2.
	DefaultSlot2Probability = 0.66
	// DefaultSlot3Probability is the chance that EXECUTE fills ALU slot 3.
	DefaultSlot3Probability = 0.33
)

// FetchStage moves the queue head into the ALU and refills the queue tail.
type FetchStage struct {
	gen insts.Generator
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(gen insts.Generator) *FetchStage {
	return &FetchStage{gen: gen}
}

// Fetch clears every ALU slot, pops the queue head into slot 0, appends a
// fresh instruction and bumps the instruction counter.
func (s *FetchStage) Fetch(state *State) {
	for i := range state.ALU {
		state.ALU[i].Clear()
	}

	if inst, ok := state.Queue.Pop(); ok {
		state.ALU[0].Load(inst)
	}

	state.Queue.Push(s.gen.Generate())
	state.Counters.Instructions++
}

// ExecuteResult reports which optional ALU slots were filled.
type ExecuteResult struct {
	Slot2 bool
	Slot3 bool
}

// ExecuteStage fills ALU slots 1 to 3. Slot 0 is left as FETCH set it.
type ExecuteStage struct {
	gen     insts.Generator
	chooser insts.Chooser

	slot2Prob float64
	slot3Prob float64
}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage(
	gen insts.Generator,
	chooser insts.Chooser,
	slot2Prob, slot3Prob float64,
) *ExecuteStage {
	return &ExecuteStage{
		gen:       gen,
		chooser:   chooser,
		slot2Prob: slot2Prob,
		slot3Prob: slot3Prob,
	}
}

// Execute loads slot 1 unconditionally and slots 2 and 3 independently with
// their configured probabilities.
func (s *ExecuteStage) Execute(state *State) ExecuteResult {
	var result ExecuteResult

	state.ALU[1].Load(s.gen.Generate())

	if s.chooser.Float64() < s.slot2Prob {
		state.ALU[2].Load(s.gen.Generate())
		result.Slot2 = true
	}

	if s.chooser.Float64() < s.slot3Prob {
		state.ALU[3].Load(s.gen.Generate())
		result.Slot3 = true
	}

	return result
}

// MemoryWriteStage overwrites the memory bank.
type MemoryWriteStage struct {
	gen insts.Generator
}

// NewMemoryWriteStage creates a new memory-write stage.
func NewMemoryWriteStage(gen insts.Generator) *MemoryWriteStage {
	return &MemoryWriteStage{gen: gen}
}

// Write fills every memory slot with a fresh instruction. ALU contents are
// never consulted.
func (s *MemoryWriteStage) Write(state *State) {
	for i := range state.Memory {
		state.Memory[i].Load(s.gen.Generate())
	}
}
