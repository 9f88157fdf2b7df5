package report

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
	"github.com/sarchlab/blinkcpu/translate"
)

const plotWidth = 64

// Summary aggregates a trace.
type Summary struct {
	Ticks int

	DuplicateRate       float64
	ALUFullRate         float64
	CounterOverflowRate float64
	MemoryChaosRate     float64

	// MeanALUOccupancy is the average number of occupied ALU slots per tick.
	MeanALUOccupancy float64

	// MemoryOnesRatio is the fraction of set bits over all populated memory
	// slots seen during the run. It is zero if memory was never written.
	MemoryOnesRatio float64

	// ALUOccupancy is the per-tick occupancy, for plotting.
	ALUOccupancy []float64
}

// Summarize computes a Summary from a trace produced by Recorder.Frame.
func Summarize(df *dataframe.DataFrame) Summary {
	var s Summary

	cols := map[string]dataframe.Series{}
	for _, series := range df.Series {
		cols[series.Name()] = series
	}

	tick := cols[ColTick]
	if tick == nil {
		return s
	}
	s.Ticks = tick.NRows()
	if s.Ticks == 0 {
		return s
	}

	s.DuplicateRate = boolRate(cols[ColDuplicate])
	s.ALUFullRate = boolRate(cols[ColALUFull])
	s.CounterOverflowRate = boolRate(cols[ColCounterOverflow])
	s.MemoryChaosRate = boolRate(cols[ColMemoryChaos])

	alu := cols[ColALU]
	s.ALUOccupancy = make([]float64, s.Ticks)
	total := 0.0
	for i := 0; i < s.Ticks; i++ {
		v := float64(int64At(alu, i))
		s.ALUOccupancy[i] = v
		total += v
	}
	s.MeanALUOccupancy = total / float64(s.Ticks)

	ones, bits := int64(0), int64(0)
	for i := 0; i < s.Ticks; i++ {
		ones += int64At(cols[ColMemoryOnes], i)
		bits += int64At(cols[ColMemorySlots], i) * insts.Width
	}
	if bits > 0 {
		s.MemoryOnesRatio = float64(ones) / float64(bits)
	}

	return s
}

// WriteSummary prints the summary table, followed by the pipeline fill rates
// and an ALU occupancy plot.
func WriteSummary(w io.Writer, s Summary, stats pipeline.Statistics) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{translate.From("Metric"), translate.From("Value")})

	rows := [][]string{
		{translate.From("Ticks"), fmt.Sprintf("%d", s.Ticks)},
		{translate.From("Cycles"), fmt.Sprintf("%d", stats.Cycles)},
		{translate.From("Slot 2 fill rate"), percent(stats.Slot2Rate())},
		{translate.From("Slot 3 fill rate"), percent(stats.Slot3Rate())},
		{translate.From("Mean ALU occupancy"), fmt.Sprintf("%.2f", s.MeanALUOccupancy)},
		{translate.From("Memory ones ratio"), fmt.Sprintf("%.3f", s.MemoryOnesRatio)},
		{translate.From("DUPL on"), percent(s.DuplicateRate)},
		{translate.From("ALU FULL on"), percent(s.ALUFullRate)},
		{translate.From("MEM CHAOS on"), percent(s.MemoryChaosRate)},
		{translate.From("CNT OVF on"), percent(s.CounterOverflowRate)},
	}
	table.AppendBulk(rows)
	table.Render()

	if len(s.ALUOccupancy) < 2 {
		return nil
	}

	plot := asciigraph.Plot(s.ALUOccupancy,
		asciigraph.Height(4),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(translate.From("ALU occupancy per tick")))

	_, err := fmt.Fprintf(w, "\n%s\n", plot)
	return err
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", 100*v)
}

func boolRate(series dataframe.Series) float64 {
	if series == nil || series.NRows() == 0 {
		return 0
	}
	on := 0
	for i := 0; i < series.NRows(); i++ {
		if b, ok := series.Value(i).(bool); ok && b {
			on++
		}
	}
	return float64(on) / float64(series.NRows())
}

func int64At(series dataframe.Series, i int) int64 {
	if series == nil || i >= series.NRows() {
		return 0
	}
	v, ok := series.Value(i).(int64)
	if !ok {
		return 0
	}
	return v
}
