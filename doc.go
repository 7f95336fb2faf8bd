// Package lanelife computes generations of Conway's Game of Life with
// data-parallel arithmetic on packed byte lanes.
//
// A generation is two passes over a flat byte buffer holding one byte per
// cell. The first pass sums every three vertically adjacent cells; the
// second sums three of those triplets horizontally, which yields the full
// 3x3 neighbourhood, and applies the Life rule to LaneWidth cells at once.
//
// # Architecture Overview
//
//   - core: padded board layout, geometry, arena allocation, snapshots
//   - kernels: lane kernels in SWAR and scalar form
//   - life: the generation engine with double buffering
//   - pattern: plaintext pattern parsing and placement
//   - sim: concurrent batches of independent boards
//   - config: YAML configuration and logging setup
//   - cmd/lanelife: the command-line tool (run, bench, batch)
//
// # Basic Usage
//
//	l, err := life.New(64, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l.Set(5, 4, core.Alive)
//	l.Set(5, 5, core.Alive)
//	l.Set(5, 6, core.Alive)
//	l.Update()
//	fmt.Print(l.Value())
//
// The grid does not wrap: cells beyond the edges are always dead.
package lanelife
