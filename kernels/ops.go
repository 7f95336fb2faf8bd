// Package kernels provides the lane kernels behind a Life generation.
//
// A kernel operates on LaneWidth contiguous cell bytes at a time with zero
// allocations. Two passes make up a generation:
//   - Column: vertical sums of three adjacent rows, one lane column at a time,
//     sliding a three-row window down the board so each row is loaded once
//   - Rule: horizontal sum of three overlapping triplet windows, minus the
//     cell itself, mapped through the Life rule
//
// Mask forces shadow columns of the last lane back to dead.
//
// Implementations:
//   - swar: eight cells per uint64 word, branch-free
//   - scalar: one byte at a time, the reference the swar set is tested against
//
// Sets are registered in Catalog and selected by name at engine construction.
package kernels

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sbl8/lanelife/core"
)

// LaneWidth is the number of cells every kernel call covers.
const LaneWidth = core.LaneWidth

// ColumnFn writes vertical triplet sums for one lane column. src and dst
// start at the lane's first cell in row 0; rows are stride bytes apart.
type ColumnFn func(dst, src []byte, stride, rows int)

// RuleFn computes the next state of one lane from the three horizontal
// triplet windows and the current cells.
type RuleFn func(dst, left, mid, right, cur []byte)

// MaskFn ANDs a lane with a mask.
type MaskFn func(dst, mask []byte)

// Set is one complete family of lane kernels.
type Set struct {
	Name   string
	Column ColumnFn
	Rule   RuleFn
	Mask   MaskFn
}

// Kernel set names.
const (
	SWAR   = "swar"
	Scalar = "scalar"

	Default = SWAR
)

// ErrUnknownKernel is returned by Lookup for unregistered names.
var ErrUnknownKernel = errors.New("unknown kernel set")

// Catalog maps names to kernel sets.
var Catalog = map[string]Set{
	SWAR:   {Name: SWAR, Column: columnSWAR, Rule: ruleSWAR, Mask: maskSWAR},
	Scalar: {Name: Scalar, Column: columnScalar, Rule: ruleScalar, Mask: maskScalar},
}

// Lookup returns the kernel set registered under name. An empty name
// selects Default.
func Lookup(name string) (Set, error) {
	if name == "" {
		name = Default
	}
	s, ok := Catalog[name]
	if !ok {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return s, nil
}

// Names lists registered kernel sets in sorted order.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShadowMask returns a lane mask keeping the first live cells and clearing
// the rest.
func ShadowMask(live int) []byte {
	if live < 0 || live > LaneWidth {
		panic("kernels: mask width out of range")
	}
	mask := make([]byte, LaneWidth)
	for i := 0; i < live; i++ {
		mask[i] = 0xFF
	}
	return mask
}

// Next applies the Life rule to one cell: total is the 3x3 sum including
// the cell itself.
func Next(total, cur byte) byte {
	switch total - cur {
	case 3:
		return core.Alive
	case 2:
		return cur
	default:
		return core.Dead
	}
}
