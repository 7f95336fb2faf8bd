// Package sim runs batches of independent Life boards.
//
// Each board is owned by exactly one goroutine for its whole run, so boards
// need no locking. The runner only coordinates fan-out, cancellation between
// generations, and reporting.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/sbl8/lanelife/kernels"
	"github.com/sbl8/lanelife/life"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds how many boards advance at once. Zero means GOMAXPROCS.
	Workers int
	// Kernel names the kernel set. Empty selects kernels.Default.
	Kernel string
	// Logger receives one record per finished board. Nil uses slog.Default.
	Logger *slog.Logger
}

// DefaultOptions provides sensible runner defaults.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Kernel:  kernels.Default,
	}
}

// Batch describes a set of boards to simulate.
type Batch struct {
	Width       int
	Height      int
	Boards      int
	Generations int
	Seed        uint64
}

// Result summarises one finished board.
type Result struct {
	Index       int
	RunID       string
	Generations uint64
	Population  int
	Checksum    uint64
	Elapsed     time.Duration
}

// Stats accumulates runner totals across batches.
type Stats struct {
	Boards        int64
	Generations   int64
	AverageUpdate time.Duration
	UpdateTime    time.Duration
}

// Runner advances batches of boards concurrently.
type Runner struct {
	opts    Options
	kernels kernels.Set
	logger  *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewRunner validates opts and returns a runner.
func NewRunner(opts Options) (*Runner, error) {
	set, err := kernels.Lookup(opts.Kernel)
	if err != nil {
		return nil, err
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, kernels: set, logger: logger}, nil
}

// Seeder returns the generator used for board index of a batch. Equal seeds
// and indexes always produce equal boards.
func Seeder(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// Run simulates every board of b and returns results ordered by index.
// Cancelling ctx stops boards between generations; Update itself is never
// interrupted.
func (r *Runner) Run(ctx context.Context, b Batch) ([]Result, error) {
	if b.Boards < 1 {
		return nil, fmt.Errorf("batch needs at least one board, got %d", b.Boards)
	}
	if b.Generations < 0 {
		return nil, fmt.Errorf("generations must be >= 0, got %d", b.Generations)
	}

	batchID := uuid.NewString()
	results := make([]Result, b.Boards)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i := 0; i < b.Boards; i++ {
		g.Go(func() error {
			res, err := r.runBoard(gCtx, b, i)
			if err != nil {
				boardsTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("board %d: %w", i, err)
			}
			boardsTotal.WithLabelValues("ok").Inc()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("batch finished",
		slog.String("batch_id", batchID),
		slog.Int("boards", b.Boards),
		slog.Int("generations", b.Generations),
		slog.String("kernel", r.kernels.Name))
	return results, nil
}

func (r *Runner) runBoard(ctx context.Context, b Batch, index int) (Result, error) {
	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "sim.runBoard")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.Int("board.index", index),
		attribute.Int("board.width", b.Width),
		attribute.Int("board.height", b.Height),
		attribute.Int("generations", b.Generations),
	)

	l, err := life.NewRandom(b.Width, b.Height, Seeder(b.Seed, index), life.WithKernels(r.kernels))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	hist := updateDuration.WithLabelValues(r.kernels.Name)
	start := time.Now()
	for gen := 0; gen < b.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "cancelled")
			return Result{}, err
		}
		t := time.Now()
		l.Update()
		hist.Observe(time.Since(t).Seconds())
	}
	elapsed := time.Since(start)
	generationsTotal.WithLabelValues(r.kernels.Name).Add(float64(b.Generations))

	view := l.Value()
	res := Result{
		Index:       index,
		RunID:       runID,
		Generations: l.Generation(),
		Population:  view.Population(),
		Checksum:    view.Checksum(),
		Elapsed:     elapsed,
	}
	lastPopulation.Set(float64(res.Population))
	span.SetAttributes(attribute.Int("population", res.Population))

	r.record(b.Generations, elapsed)
	r.logger.Debug("board finished",
		slog.String("run_id", runID),
		slog.Int("index", index),
		slog.Int("population", res.Population),
		slog.Duration("elapsed", elapsed))
	return res, nil
}

func (r *Runner) record(generations int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Boards++
	r.stats.Generations += int64(generations)
	r.stats.UpdateTime += elapsed
	if r.stats.Generations > 0 {
		r.stats.AverageUpdate = r.stats.UpdateTime / time.Duration(r.stats.Generations)
	}
}

// Stats returns a copy of the accumulated totals.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
