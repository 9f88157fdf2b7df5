// Package diagnostics derives the status indicators shown under the LED panel.
//
// Every indicator is a pure function of the current pipeline state. Nothing is
// remembered between ticks.
package diagnostics

import (
	"math"

	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

// ChaosThreshold is the deviation above which memory is considered chaotic.
const ChaosThreshold = 4.0

// Indicators holds the four diagnostic flags for one tick.
type Indicators struct {
	// Duplicate is set when two queued instructions share a bit pattern.
	Duplicate bool
	// ALUFull is set when ALU slot 3 is occupied.
	ALUFull bool
	// CounterOverflow is set when either system counter is zero.
	CounterOverflow bool
	// MemoryChaos is set when the memory bias deviation exceeds ChaosThreshold.
	MemoryChaos bool
}

// Unit computes indicators from pipeline state.
type Unit struct{}

// NewUnit creates a new diagnostics unit.
func NewUnit() *Unit {
	return &Unit{}
}

// Compute evaluates all four indicators.
func (u *Unit) Compute(state *pipeline.State) Indicators {
	return Indicators{
		Duplicate:       HasDuplicates(&state.Queue),
		ALUFull:         ALUFull(state),
		CounterOverflow: CounterOverflow(state),
		MemoryChaos:     MemoryChaos(state),
	}
}

// HasDuplicates reports whether any two queued instructions have the same bit
// pattern. The first repeated pattern decides.
func HasDuplicates(q *pipeline.Queue) bool {
	seen := make(map[insts.Instruction]struct{}, q.Len())
	for i := 0; i < q.Len(); i++ {
		key := q.At(i)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// ALUFull reports whether ALU slot 3 is occupied.
func ALUFull(state *pipeline.State) bool {
	return state.ALU[pipeline.NumALUSlots-1].Valid
}

// CounterOverflow reports whether the clock or the instruction counter is
// zero. Despite the name it detects empty counters, which only happens right
// after startup. Frames are published after the tick has bumped the clock, so
// no published frame ever shows it lit; only the state seen before the first
// tick (Core.Indicators on a fresh core) has it set. A panel that drew before
// counting would show it on its very first frame.
func CounterOverflow(state *pipeline.State) bool {
	return state.Counters.Clock == 0 || state.Counters.Instructions == 0
}

// MemoryDeviation returns |avg*8 - 4| where avg is the fraction of set bits
// across the occupied memory slots. ok is false when no slot is occupied.
func MemoryDeviation(state *pipeline.State) (deviation float64, ok bool) {
	ones, total := 0, 0
	for _, slot := range state.Memory {
		if !slot.Valid {
			continue
		}
		total += insts.Width
		ones += slot.Inst.OnesCount()
	}

	if total == 0 {
		return 0, false
	}

	avg := float64(ones) / float64(total)
	return math.Abs(avg*insts.Width - 4), true
}

// MemoryChaos reports whether the memory deviation exceeds ChaosThreshold.
// The deviation is bounded by 4, so this never fires; the formula is kept as
// the panel defines it.
func MemoryChaos(state *pipeline.State) bool {
	deviation, ok := MemoryDeviation(state)
	if !ok {
		return false
	}
	return deviation > ChaosThreshold
}
