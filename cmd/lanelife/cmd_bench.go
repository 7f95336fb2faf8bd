package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbl8/lanelife/kernels"
	"github.com/sbl8/lanelife/life"
	"github.com/sbl8/lanelife/sim"
)

var (
	benchSteps       int
	benchGenerations int
	benchAll         bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure update throughput over a sweep of square board sizes",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, _ []string) error {
	if benchSteps < 1 || benchGenerations < 1 {
		return fmt.Errorf("steps and generations must be positive")
	}

	names := []string{cfg.Run.Kernel}
	if benchAll {
		names = kernels.Names()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lanelife performance sweep\n")
	fmt.Fprintf(out, "==========================\n")
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "CPUs: %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "Generations per size: %d\n\n", benchGenerations)

	for _, name := range names {
		set, err := kernels.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s kernels\n", set.Name)
		fmt.Fprintf(out, "%12s %14s %12s\n", "cells", "ns/gen", "Mcells/s")

		for i := 1; i <= benchSteps; i++ {
			dim := i * 100
			l, err := life.NewRandom(dim, dim, sim.Seeder(cfg.Run.Seed, i), life.WithKernels(set))
			if err != nil {
				return err
			}

			start := time.Now()
			for g := 0; g < benchGenerations; g++ {
				l.Update()
				_ = l.Value()
			}
			elapsed := time.Since(start)

			perGen := elapsed / time.Duration(benchGenerations)
			cells := dim * dim
			mcells := float64(cells) * float64(benchGenerations) / elapsed.Seconds() / 1e6
			fmt.Fprintf(out, "%12d %14d %12.2f\n", cells, perGen.Nanoseconds(), mcells)
		}
		fmt.Fprintln(out)
	}
	return nil
}
