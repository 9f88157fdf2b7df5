// Package render draws the pipeline state as a grid of LEDs.
//
// The renderer only reads state. Compose is a pure mapping from one frame to
// a Panel; TextRenderer prints panels to a terminal.
package render

import (
	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/timing/diagnostics"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
	"github.com/sarchlab/blinkcpu/translate"
)

const (
	// Width is the number of LED columns.
	Width = 16
	// Height is the number of LED rows, one per instruction bit.
	Height = insts.Width

	bandWidth = 4

	clockColumn        = 12
	instructionsColumn = 13
)

// Band is one of the four horizontal groups of columns.
type Band int

const (
	// BandQueue covers columns 0-3, the instruction queue.
	BandQueue Band = iota
	// BandALU covers columns 4-7, the ALU slots.
	BandALU
	// BandMemory covers columns 8-11, the memory bank.
	BandMemory
	// BandSystem covers columns 12-15, the system counters.
	BandSystem
)

// BandOf returns the band that column col belongs to.
func BandOf(col int) Band {
	return Band(col / bandWidth)
}

// RGB is a display color.
type RGB struct {
	R, G, B uint8
}

var (
	bandColors = [...]RGB{
		BandQueue:  {100, 255, 150},
		BandALU:    {255, 180, 50},
		BandMemory: {180, 220, 255},
		BandSystem: {255, 80, 80},
	}

	// OffColor is used for dark LEDs and inactive indicators.
	OffColor = RGB{30, 30, 30}
)

// Color returns the lit color of band b.
func (b Band) Color() RGB {
	return bandColors[b]
}

// Indicator is a status cell shown beneath the grid.
type Indicator struct {
	Label  string
	Column int
	Color  RGB
	On     bool
}

// Panel is one fully composed frame.
type Panel struct {
	LEDs       [Height][Width]bool
	Indicators []Indicator
}

// Lit reports whether the LED at column x, row y is on.
func (p *Panel) Lit(x, y int) bool {
	return p.LEDs[y][x]
}

// Compose maps pipeline state and indicators onto a panel.
//
// Columns 0-3 show the queue with the tail on the left, 4-7 the ALU slots,
// 8-11 the memory bank, 12 the clock and 13 the instruction counter. Columns
// 14 and 15 belong to the reserved counters and stay dark.
func Compose(state *pipeline.State, ind diagnostics.Indicators) Panel {
	var p Panel

	n := state.Queue.Len()
	for i := 0; i < n; i++ {
		p.column(i, state.Queue.At(n-1-i))
	}

	for i, slot := range state.ALU {
		if slot.Valid {
			p.column(bandWidth+i, slot.Inst)
		}
	}

	for i, slot := range state.Memory {
		if slot.Valid {
			p.column(2*bandWidth+i, slot.Inst)
		}
	}

	p.column(clockColumn, insts.FromCounter(state.Counters.Clock))
	p.column(instructionsColumn, insts.FromCounter(state.Counters.Instructions))

	p.Indicators = []Indicator{
		{Label: translate.From("DUPL"), Column: 1, Color: RGB{0, 255, 0}, On: ind.Duplicate},
		{Label: translate.From("ALU FULL"), Column: 5, Color: RGB{255, 180, 50}, On: ind.ALUFull},
		{Label: translate.From("MEM CHAOS"), Column: 9, Color: RGB{0, 200, 255}, On: ind.MemoryChaos},
		{Label: translate.From("CNT OVF"), Column: 13, Color: RGB{255, 0, 0}, On: ind.CounterOverflow},
	}

	return p
}

func (p *Panel) column(x int, inst insts.Instruction) {
	for y := 0; y < Height; y++ {
		p.LEDs[y][x] = inst.Bit(y) == 1
	}
}
