// Package core drives the pipeline from a fixed-rate clock.
// It wraps the pipeline and the diagnostics unit in an akita ticking
// component, so the simulation engine is the only source of progress.
package core

import (
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/timing/diagnostics"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

// HookPosFrame marks the hook invocation made after every tick, once the
// pipeline has stepped and the indicators have been recomputed.
var HookPosFrame = &sim.HookPos{Name: "Frame"}

// Frame is what observers see after a tick.
type Frame struct {
	// Phase is the phase that ran during this tick.
	Phase pipeline.Phase
	// State is a copy of the pipeline state after the tick.
	State pipeline.State
	// Indicators are the diagnostics computed from State.
	Indicators diagnostics.Indicators
}

// Option is a functional option for configuring the Core.
type Option func(*Core)

// WithLogger sets the logger. Lifecycle events log at V(0), ticks at V(1).
func WithLogger(log logr.Logger) Option {
	return func(c *Core) {
		c.log = log
	}
}

// WithMaxTicks stops the core after n ticks. Zero means no limit.
func WithMaxTicks(n uint64) Option {
	return func(c *Core) {
		c.maxTicks = n
	}
}

// Core advances the pipeline once per clock edge and publishes a Frame to its
// hooks after each step.
type Core struct {
	*sim.TickingComponent

	// Pipeline is the underlying three-phase pipeline.
	Pipeline *pipeline.Pipeline

	engine     sim.Engine
	diag       *diagnostics.Unit
	indicators diagnostics.Indicators

	maxTicks uint64
	stopped  atomic.Bool

	log logr.Logger
}

// NewCore creates a Core that ticks pipe at freq on engine.
func NewCore(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	pipe *pipeline.Pipeline,
	opts ...Option,
) *Core {
	c := &Core{
		Pipeline: pipe,
		engine:   engine,
		diag:     diagnostics.NewUnit(),
		log:      logr.Discard(),
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, freq, c)

	for _, opt := range opts {
		opt(c)
	}

	state := pipe.State()
	c.indicators = c.diag.Compute(&state)

	return c
}

// Tick implements sim.Ticker. It returns false once the core is stopped or
// has reached its tick limit, which lets the engine drain.
func (c *Core) Tick() bool {
	if c.stopped.Load() {
		return false
	}

	if c.maxTicks > 0 && c.Pipeline.Stats().Ticks >= c.maxTicks {
		return false
	}

	c.Step()

	return true
}

// Step runs exactly one pipeline tick, recomputes the indicators and invokes
// the hooks. It does not consult the engine.
func (c *Core) Step() Frame {
	ran := c.Pipeline.Phase()
	c.Pipeline.Tick()

	frame := Frame{
		Phase: ran,
		State: c.Pipeline.State(),
	}
	frame.Indicators = c.diag.Compute(&frame.State)
	c.indicators = frame.Indicators

	c.log.V(1).Info("tick",
		"clock", frame.State.Counters.Clock,
		"phase", ran.String(),
		"alu", frame.State.ALUOccupancy(),
		"duplicate", frame.Indicators.Duplicate,
		"aluFull", frame.Indicators.ALUFull)

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosFrame,
			Item:   frame,
		})
	}

	return frame
}

// Run schedules the first tick and runs the engine until the core stops.
func (c *Core) Run() error {
	c.log.Info("starting", "name", c.Name(), "maxTicks", c.maxTicks)

	c.TickLater()
	err := c.engine.Run()

	stats := c.Pipeline.Stats()
	c.log.Info("stopped", "ticks", stats.Ticks, "cycles", stats.Cycles)

	return err
}

// Stop halts the core at the next clock edge. It is safe to call from any
// goroutine.
func (c *Core) Stop() {
	c.stopped.Store(true)
}

// Indicators returns the indicators computed after the most recent tick.
func (c *Core) Indicators() diagnostics.Indicators {
	return c.indicators
}

// Stats returns pipeline statistics.
func (c *Core) Stats() pipeline.Statistics {
	return c.Pipeline.Stats()
}
