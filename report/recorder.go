// Package report records a per-tick trace of a run and summarizes it.
package report

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/timing/core"
)

// Trace column names, in frame order.
const (
	ColTick            = "tick"
	ColPhase           = "phase"
	ColALU             = "alu_occupancy"
	ColMemoryOnes      = "memory_ones"
	ColMemorySlots     = "memory_slots"
	ColDuplicate       = "duplicate"
	ColALUFull         = "alu_full"
	ColCounterOverflow = "counter_overflow"
	ColMemoryChaos     = "memory_chaos"
)

// Recorder is a hook that keeps one row per published frame.
type Recorder struct {
	ticks       []int64
	phases      []string
	alu         []int64
	memoryOnes  []int64
	memorySlots []int64
	duplicate   []bool
	aluFull     []bool
	overflow    []bool
	chaos       []bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Func implements sim.Hook.
func (r *Recorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosFrame {
		return
	}

	frame, ok := ctx.Item.(core.Frame)
	if !ok {
		return
	}

	r.Record(frame)
}

// Record appends one frame to the trace.
func (r *Recorder) Record(frame core.Frame) {
	ones := 0
	for _, slot := range frame.State.Memory {
		if slot.Valid {
			ones += slot.Inst.OnesCount()
		}
	}

	r.ticks = append(r.ticks, int64(frame.State.Counters.Clock))
	r.phases = append(r.phases, frame.Phase.String())
	r.alu = append(r.alu, int64(frame.State.ALUOccupancy()))
	r.memoryOnes = append(r.memoryOnes, int64(ones))
	r.memorySlots = append(r.memorySlots, int64(frame.State.MemoryOccupancy()))
	r.duplicate = append(r.duplicate, frame.Indicators.Duplicate)
	r.aluFull = append(r.aluFull, frame.Indicators.ALUFull)
	r.overflow = append(r.overflow, frame.Indicators.CounterOverflow)
	r.chaos = append(r.chaos, frame.Indicators.MemoryChaos)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.ticks)
}

// Frame returns the trace as a DataFrame.
func (r *Recorder) Frame() *dataframe.DataFrame {
	return dataframe.NewDataFrame(
		newInt64Series(ColTick, r.ticks),
		newStringSeries(ColPhase, r.phases),
		newInt64Series(ColALU, r.alu),
		newInt64Series(ColMemoryOnes, r.memoryOnes),
		newInt64Series(ColMemorySlots, r.memorySlots),
		newBoolSeries(ColDuplicate, r.duplicate),
		newBoolSeries(ColALUFull, r.aluFull),
		newBoolSeries(ColCounterOverflow, r.overflow),
		newBoolSeries(ColMemoryChaos, r.chaos),
	)
}

func newInt64Series(name string, data []int64) *dataframe.SeriesInt64 {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesInt64(name, nil, vals...)
}

func newStringSeries(name string, data []string) *dataframe.SeriesString {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesString(name, nil, vals...)
}

func newBoolSeries(name string, data []bool) dataframe.Series {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		vals[i] = v
	}
	return dataframe.NewSeriesGeneric(name, false, nil, vals...)
}
