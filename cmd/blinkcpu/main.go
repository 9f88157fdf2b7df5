// Package main provides the entry point for BlinkCPU.
// BlinkCPU animates a toy three-phase instruction pipeline on an LED panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/blinkcpu/insts"
	"github.com/sarchlab/blinkcpu/render"
	"github.com/sarchlab/blinkcpu/report"
	"github.com/sarchlab/blinkcpu/timing/config"
	"github.com/sarchlab/blinkcpu/timing/core"
	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

var (
	configPath = flag.String("config", "", "Path to a .json or .star configuration file")
	ticks      = flag.Uint64("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	seed       = flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	hz         = flag.Float64("hz", 0, "Tick rate in ticks per second")
	realtime   = flag.Bool("realtime", true, "Pace frames against the wall clock")
	color      = flag.Bool("color", true, "Draw the panel with ANSI colors")
	summary    = flag.Bool("summary", false, "Print a statistics summary at exit")
	verbose    = flag.Int("v", 0, "Log verbosity (1 logs every tick)")
)

func main() {
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Usage: blinkcpu [options]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{Verbosity: *verbose})

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, then applies explicitly set flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ticks":
			cfg.MaxTicks = *ticks
		case "seed":
			cfg.Seed = *seed
		case "hz":
			cfg.FrequencyHz = *hz
		case "realtime":
			cfg.Realtime = *realtime
		case "color":
			cfg.Color = *color
		case "summary":
			cfg.Summary = *summary
		}
	})

	return cfg, cfg.Validate()
}

// run builds the pipeline and its observers and drives them until the tick
// limit is hit or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, out io.Writer, log logr.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var src insts.Source
	if cfg.Seed != 0 {
		src = insts.NewRandomSource(cfg.Seed)
	} else {
		src = insts.NewTimeSeededSource()
	}

	pipe := pipeline.NewPipeline(
		pipeline.WithSource(src),
		pipeline.WithExecuteProbabilities(cfg.Slot2Probability, cfg.Slot3Probability),
	)

	engine := sim.NewSerialEngine()
	c := core.NewCore("BlinkCPU", engine, sim.Freq(cfg.FrequencyHz)*sim.Hz, pipe,
		core.WithLogger(log),
		core.WithMaxTicks(cfg.MaxTicks),
	)

	c.AcceptHook(render.NewTextRenderer(out, cfg.Color, cfg.Realtime))

	var recorder *report.Recorder
	if cfg.Summary {
		recorder = report.NewRecorder()
		c.AcceptHook(recorder)
	}

	if cfg.Realtime {
		pacer := core.NewPacer(ctx, cfg.Period())
		defer pacer.Close()
		c.AcceptHook(pacer)
	}

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	if err := c.Run(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if recorder != nil {
		s := report.Summarize(recorder.Frame())
		return report.WriteSummary(out, s, c.Stats())
	}

	return nil
}
