package render_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/render"
	"github.com/sarchlab/blinkcpu/timing/core"
	"github.com/sarchlab/blinkcpu/timing/diagnostics"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

func columnOf(p *render.Panel, x int) insts.Instruction {
	var inst insts.Instruction
	for y := 0; y < render.Height; y++ {
		if p.Lit(x, y) {
			inst[y] = 1
		}
	}
	return inst
}

var _ = Describe("Compose", func() {
	var state *pipeline.State

	BeforeEach(func() {
		state = &pipeline.State{}
	})

	It("should map columns to bands", func() {
		Expect(render.BandOf(0)).To(Equal(render.BandQueue))
		Expect(render.BandOf(5)).To(Equal(render.BandALU))
		Expect(render.BandOf(11)).To(Equal(render.BandMemory))
		Expect(render.BandOf(15)).To(Equal(render.BandSystem))
		Expect(render.BandALU.Color()).To(Equal(render.RGB{R: 255, G: 180, B: 50}))
	})

	It("should draw the queue with the tail in column 0", func() {
		for i := 1; i <= 4; i++ {
			state.Queue.Push(insts.FromByte(uint8(i)))
		}

		p := render.Compose(state, diagnostics.Indicators{})

		Expect(columnOf(&p, 0)).To(Equal(insts.FromByte(4)))
		Expect(columnOf(&p, 3)).To(Equal(insts.FromByte(1)))
	})

	It("should draw ALU and memory slots and leave empty slots dark", func() {
		state.ALU[0].Load(insts.FromByte(0xAA))
		state.ALU[3].Load(insts.FromByte(0x0F))
		state.Memory[1].Load(insts.FromByte(0xFF))

		p := render.Compose(state, diagnostics.Indicators{})

		Expect(columnOf(&p, 4)).To(Equal(insts.FromByte(0xAA)))
		Expect(columnOf(&p, 5)).To(BeZero())
		Expect(columnOf(&p, 7)).To(Equal(insts.FromByte(0x0F)))
		Expect(columnOf(&p, 8)).To(BeZero())
		Expect(columnOf(&p, 9)).To(Equal(insts.FromByte(0xFF)))
	})

	It("should draw the low 8 bits of both counters", func() {
		state.Counters.Clock = 256 + 5
		state.Counters.Instructions = 3

		p := render.Compose(state, diagnostics.Indicators{})

		Expect(columnOf(&p, 12)).To(Equal(insts.FromByte(5)))
		Expect(columnOf(&p, 13)).To(Equal(insts.FromByte(3)))
		Expect(columnOf(&p, 14)).To(BeZero())
		Expect(columnOf(&p, 15)).To(BeZero())
	})

	It("should place one status cell per indicator", func() {
		p := render.Compose(state, diagnostics.Indicators{
			Duplicate:       true,
			CounterOverflow: true,
		})

		Expect(p.Indicators).To(HaveLen(4))

		byColumn := map[int]render.Indicator{}
		for _, ind := range p.Indicators {
			byColumn[ind.Column] = ind
		}
		Expect(byColumn[1].On).To(BeTrue())
		Expect(byColumn[5].On).To(BeFalse())
		Expect(byColumn[9].On).To(BeFalse())
		Expect(byColumn[13].On).To(BeTrue())
	})

	It("should not modify the state it reads", func() {
		pipe := pipeline.NewPipeline(pipeline.WithSource(insts.NewRandomSource(4)))
		pipe.RunCycles(5)
		s := pipe.State()
		before := s

		render.Compose(&s, diagnostics.Indicators{})
		Expect(s).To(Equal(before))
	})
})

var _ = Describe("TextRenderer", func() {
	var (
		out  *bytes.Buffer
		pipe *pipeline.Pipeline
		c    *core.Core
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		pipe = pipeline.NewPipeline(pipeline.WithSource(insts.NewRandomSource(9)))
		c = core.NewCore("Core", sim.NewSerialEngine(), 2*sim.Hz, pipe)
	})

	It("should draw a frame for every tick", func() {
		c.AcceptHook(render.NewTextRenderer(out, false, false))

		c.Step()
		c.Step()

		text := out.String()
		Expect(strings.Count(text, "tick ")).To(Equal(2))
		Expect(text).To(ContainSubstring("FETCH"))
		Expect(text).To(ContainSubstring("EXECUTE"))
		Expect(text).To(ContainSubstring("DUPL"))
		Expect(text).To(ContainSubstring("CNT OVF"))
		Expect(text).NotTo(ContainSubstring("\x1b["))
	})

	It("should draw eight rows of sixteen LEDs", func() {
		r := render.NewTextRenderer(out, false, false)
		r.Draw(c.Step())

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(1 + render.Height + 1))
		for _, line := range lines[1 : 1+render.Height] {
			leds := strings.Count(line, "●") + strings.Count(line, "·")
			Expect(leds).To(Equal(render.Width))
		}
	})

	It("should use ANSI colors and screen clearing when asked", func() {
		r := render.NewTextRenderer(out, true, true)
		r.Draw(c.Step())

		Expect(out.String()).To(HavePrefix("\x1b[H\x1b[2J"))
		Expect(out.String()).To(ContainSubstring("\x1b[38;2;"))
	})

	It("should ignore hook positions it does not know", func() {
		r := render.NewTextRenderer(out, false, false)
		r.Func(sim.HookCtx{Pos: &sim.HookPos{Name: "Other"}})
		Expect(out.Len()).To(BeZero())
	})
})
