// Command lanelife runs and benchmarks lane-parallel Game of Life boards.
//
// Usage:
//
//	lanelife run --width 80 --height 40 --generations 100
//	lanelife run --pattern glider.cells --width 64 --height 64 --print
//	lanelife bench --steps 10 --generations 20
//	lanelife batch --config lanelife.yaml --metrics-addr :9090
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
