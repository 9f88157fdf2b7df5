package report_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/report"
	"github.com/sarchlab/blinkcpu/timing/core"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

var _ = Describe("Recorder", func() {
	var (
		recorder *report.Recorder
		c        *core.Core
	)

	BeforeEach(func() {
		recorder = report.NewRecorder()
		src := insts.NewSequenceSource(
			insts.FromByte(0xFF), insts.FromByte(0x00),
			insts.FromByte(0x0F), insts.FromByte(0xF0),
		)
		pipe := pipeline.NewPipeline(pipeline.WithSource(src))
		c = core.NewCore("Core", sim.NewSerialEngine(), 2*sim.Hz, pipe,
			core.WithMaxTicks(6))
		c.AcceptHook(recorder)
	})

	It("should keep one row per tick", func() {
		Expect(c.Run()).To(Succeed())
		Expect(recorder.Len()).To(Equal(6))

		df := recorder.Frame()
		Expect(df.Series).To(HaveLen(9))
		for _, s := range df.Series {
			Expect(s.NRows()).To(Equal(6))
		}
		Expect(df.Series[0].Name()).To(Equal(report.ColTick))
		Expect(df.Series[0].Value(0)).To(Equal(int64(1)))
		Expect(df.Series[1].Value(2)).To(Equal("MEMORY_WRITE"))
	})

	It("should summarize indicator and occupancy rates", func() {
		Expect(c.Run()).To(Succeed())

		s := report.Summarize(recorder.Frame())

		Expect(s.Ticks).To(Equal(6))
		Expect(s.MemoryChaosRate).To(BeZero())
		Expect(s.CounterOverflowRate).To(BeZero())
		// Every choice fires with a sequence source, so EXECUTE fills all
		// four slots; ALU occupancy per tick is 1, 4, 4, 1, 4, 4.
		Expect(s.MeanALUOccupancy).To(Equal(3.0))
		Expect(s.ALUFullRate).To(BeNumerically("~", 4.0/6.0, 1e-9))
		// The sequence is balanced, so memory is half ones.
		Expect(s.MemoryOnesRatio).To(Equal(0.5))
	})

	It("should summarize an empty trace", func() {
		s := report.Summarize(recorder.Frame())
		Expect(s.Ticks).To(BeZero())
		Expect(s.ALUOccupancy).To(BeEmpty())
	})

	It("should write a table and a plot", func() {
		Expect(c.Run()).To(Succeed())

		var out bytes.Buffer
		s := report.Summarize(recorder.Frame())
		Expect(report.WriteSummary(&out, s, c.Stats())).To(Succeed())

		Expect(out.String()).To(ContainSubstring("Slot 2 fill rate"))
		Expect(out.String()).To(ContainSubstring("MEM CHAOS on"))
		Expect(out.String()).To(ContainSubstring("ALU occupancy per tick"))
	})

	It("should skip the plot for very short runs", func() {
		var out bytes.Buffer
		Expect(report.WriteSummary(&out, report.Summary{}, pipeline.Statistics{})).To(Succeed())
		Expect(out.String()).NotTo(ContainSubstring("ALU occupancy per tick"))
	})
})
