package core

import (
	"context"
	"time"

	"github.com/sarchlab/akita/v4/sim"
)

// Pacer is a hook that holds each frame until the next wall-clock edge, so a
// run advances at its configured real rate instead of as fast as possible.
type Pacer struct {
	ctx    context.Context
	ticker *time.Ticker
}

// NewPacer creates a Pacer firing every period. Waiting stops early when ctx
// is done. Periods below one nanosecond are raised to one nanosecond.
func NewPacer(ctx context.Context, period time.Duration) *Pacer {
	if period < 1 {
		period = 1
	}
	return &Pacer{
		ctx:    ctx,
		ticker: time.NewTicker(period),
	}
}

// Func implements sim.Hook.
func (p *Pacer) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosFrame {
		return
	}

	select {
	case <-p.ticker.C:
	case <-p.ctx.Done():
	}
}

// Close releases the underlying timer.
func (p *Pacer) Close() {
	p.ticker.Stop()
}
