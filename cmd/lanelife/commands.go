package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbl8/lanelife/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	kernelName string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "lanelife",
	Short:         "Lane-parallel Conway's Game of Life",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if flags.Changed("log-format") {
			loaded.Log.Format = logFormat
		}
		if flags.Changed("kernel") {
			loaded.Run.Kernel = kernelName
		}
		applyBoardFlags(cmd, &loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}

		l, err := loaded.Log.NewLogger(os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(l)
		cfg, logger = loaded, l
		return nil
	},
}

// Board and run flags shared by run and batch. Only flags the user set
// override the loaded configuration.
var (
	flagWidth       int
	flagHeight      int
	flagGenerations int
	flagSeed        uint64
)

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells")
	cmd.Flags().IntVar(&flagGenerations, "generations", 0, "Generations to advance")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed")
}

func applyBoardFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("width") == nil {
		return
	}
	if flags.Changed("width") {
		c.Board.Width = flagWidth
	}
	if flags.Changed("height") {
		c.Board.Height = flagHeight
	}
	if flags.Changed("generations") {
		c.Run.Generations = flagGenerations
	}
	if flags.Changed("seed") {
		c.Run.Seed = flagSeed
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&kernelName, "kernel", "", "Kernel set (swar, scalar)")

	addBoardFlags(runCmd)
	runCmd.Flags().StringVar(&runPattern, "pattern", "", "Plaintext pattern to place at the board centre")
	runCmd.Flags().StringVar(&runIn, "in", "", "Snapshot file to start from")
	runCmd.Flags().StringVar(&runOut, "out", "", "Write the final generation as a snapshot")
	runCmd.Flags().BoolVar(&runPrint, "print", false, "Print every generation")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "Do not print the final board")

	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "Number of board sizes; step i uses an (i*100)x(i*100) board")
	benchCmd.Flags().IntVar(&benchGenerations, "generations", 10, "Generations timed per board size")
	benchCmd.Flags().BoolVar(&benchAll, "all", false, "Benchmark every kernel set")

	addBoardFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchBoards, "boards", 0, "Boards in the batch")
	batchCmd.Flags().StringVar(&batchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	rootCmd.AddCommand(runCmd, benchCmd, batchCmd)
}
