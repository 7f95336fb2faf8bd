package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sbl8/lanelife/sim"
)

var (
	batchBoards      int
	batchMetricsAddr string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Simulate many independent boards concurrently",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("boards") {
		cfg.Run.Boards = batchBoards
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = batchMetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner, err := sim.NewRunner(sim.Options{
		Workers: cfg.Run.Workers,
		Kernel:  cfg.Run.Kernel,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	results, err := runner.Run(ctx, sim.Batch{
		Width:       cfg.Board.Width,
		Height:      cfg.Board.Height,
		Boards:      cfg.Run.Boards,
		Generations: cfg.Run.Generations,
		Seed:        cfg.Run.Seed,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%6s %-36s %10s %16s %12s\n", "board", "run", "population", "checksum", "elapsed")
	for _, r := range results {
		fmt.Fprintf(out, "%6d %-36s %10d %016x %12s\n", r.Index, r.RunID, r.Population, r.Checksum, r.Elapsed.Round(time.Microsecond))
	}
	stats := runner.Stats()
	fmt.Fprintf(out, "boards %d generations %d average update %s\n", stats.Boards, stats.Generations, stats.AverageUpdate)
	return nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()
	return srv
}
