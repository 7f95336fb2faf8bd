package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbl8/lanelife/core"
	"github.com/sbl8/lanelife/kernels"
	"github.com/sbl8/lanelife/life"
	"github.com/sbl8/lanelife/pattern"
	"github.com/sbl8/lanelife/sim"
)

var (
	runPattern string
	runIn      string
	runOut     string
	runPrint   bool
	runQuiet   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a single board and print the result",
	Long: `Simulate one board. The board starts from a snapshot (--in), a plaintext
pattern placed at the centre (--pattern), or a random fill from --seed.`,
	Args: cobra.NoArgs,
	RunE: runSingle,
}

func runSingle(cmd *cobra.Command, _ []string) error {
	set, err := kernels.Lookup(cfg.Run.Kernel)
	if err != nil {
		return err
	}

	l, err := newRunBoard(set)
	if err != nil {
		return err
	}
	logArena(l.Arena())

	out := cmd.OutOrStdout()
	if runPrint {
		fmt.Fprintf(out, "generation 0\n%s\n", l.Value())
	}
	for i := 0; i < cfg.Run.Generations; i++ {
		l.Update()
		if runPrint {
			fmt.Fprintf(out, "generation %d\n%s\n", l.Generation(), l.Value())
		}
	}

	view := l.Value()
	if !runPrint && !runQuiet {
		fmt.Fprint(out, view.String())
	}
	fmt.Fprintf(out, "generation %d population %d checksum %016x\n",
		l.Generation(), view.Population(), view.Checksum())

	if runOut != "" {
		data, err := core.EncodeSnapshot(view)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(runOut, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		logger.Info("snapshot written", slog.String("path", runOut), slog.Int("bytes", len(data)))
	}
	return nil
}

func logArena(a *core.Arena) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, r := range a.Regions() {
		logger.Debug("arena region", slog.String("name", r.Name), slog.Int("offset", r.Offset), slog.Int("size", r.Size))
	}
	logger.Debug("arena allocated",
		slog.String("geometry", a.Geometry().String()),
		slog.Int("bytes", a.TotalSize()),
		slog.Bool("aligned", a.Aligned()))
}

func newRunBoard(set kernels.Set) (*life.Life, error) {
	switch {
	case runIn != "":
		data, err := os.ReadFile(runIn)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		b, err := core.DecodeSnapshot(data)
		if err != nil {
			return nil, err
		}
		logger.Debug("starting from snapshot", slog.String("path", runIn), slog.String("geometry", b.Geometry().String()))
		return life.FromBoard(b, life.WithKernels(set))

	case runPattern != "":
		p, err := pattern.Load(runPattern)
		if err != nil {
			return nil, err
		}
		l, err := life.New(cfg.Board.Width, cfg.Board.Height, life.WithKernels(set))
		if err != nil {
			return nil, err
		}
		if err := p.PlaceCentered(l); err != nil {
			return nil, err
		}
		logger.Debug("placed pattern", slog.String("name", p.Name), slog.Int("cells", len(p.Cells)))
		return l, nil

	default:
		return life.NewRandom(cfg.Board.Width, cfg.Board.Height, sim.Seeder(cfg.Run.Seed, 0), life.WithKernels(set))
	}
}
