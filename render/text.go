package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/timing/core"
	"github.com/sarchlab/blinkcpu/translate"
)

const (
	ledOn  = "●"
	ledOff = "·"

	clearScreen = "\x1b[H\x1b[2J"
	resetColor  = "\x1b[0m"
)

// TextRenderer prints every frame to a terminal. It is an akita hook that
// listens on core.HookPosFrame.
type TextRenderer struct {
	out   io.Writer
	color bool
	clear bool
}

// NewTextRenderer creates a renderer that writes to out. With color set, LEDs
// are drawn in their band colors; with clear set, each frame redraws the
// screen in place.
func NewTextRenderer(out io.Writer, color, clear bool) *TextRenderer {
	return &TextRenderer{out: out, color: color, clear: clear}
}

// Func implements sim.Hook.
func (r *TextRenderer) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosFrame {
		return
	}

	frame, ok := ctx.Item.(core.Frame)
	if !ok {
		return
	}

	r.Draw(frame)
}

// Draw prints one frame.
func (r *TextRenderer) Draw(frame core.Frame) {
	panel := Compose(&frame.State, frame.Indicators)

	var sb strings.Builder
	if r.clear {
		sb.WriteString(clearScreen)
	}

	sb.WriteString(translate.From("tick %d  %v\n", frame.State.Counters.Clock, frame.Phase))

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if x > 0 && x%bandWidth == 0 {
				sb.WriteString(" │")
			}
			sb.WriteByte(' ')
			if panel.Lit(x, y) {
				sb.WriteString(r.paint(BandOf(x).Color(), ledOn))
			} else {
				sb.WriteString(r.paint(OffColor, ledOff))
			}
		}
		sb.WriteByte('\n')
	}

	for i, ind := range panel.Indicators {
		if i > 0 {
			sb.WriteString("  ")
		}
		mark := "[ ]"
		c := OffColor
		if ind.On {
			mark = "[x]"
			c = ind.Color
		}
		sb.WriteString(r.paint(c, mark))
		sb.WriteString(" ")
		sb.WriteString(ind.Label)
	}
	sb.WriteByte('\n')

	_, _ = io.WriteString(r.out, sb.String())
}

func (r *TextRenderer) paint(c RGB, s string) string {
	if !r.color {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, s, resetColor)
}
