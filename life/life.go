// Package life implements the Game of Life generation engine.
//
// An engine owns three boards of one geometry: the current generation, the
// next generation, and a triplet scratch board. Update advances exactly one
// generation in two passes and then swaps current and next:
//
//  1. Column pass: triplets[r] = current[r-1] + current[r] + current[r+1],
//     lane by lane, with rows outside the grid counting as dead.
//  2. Rule pass: the sum of the triplets left of, at and right of a cell is
//     its full 3x3 neighbourhood including itself. Subtracting the cell gives
//     the neighbour count the Life rule needs.
//
// Cells outside the grid are always dead; there is no wraparound.
//
// An engine is not safe for concurrent use. Independent engines share
// nothing and may run in parallel.
package life

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sbl8/lanelife/core"
	"github.com/sbl8/lanelife/kernels"
)

const (
	// MinWidth is the narrowest supported grid.
	MinWidth = 1
	// MinHeight is the shortest supported grid. The column pass needs a row
	// of context next to every row.
	MinHeight = 2
)

// ErrInvalidSize is returned by New for unsupported grid sizes.
var ErrInvalidSize = errors.New("invalid board size")

// ErrInvalidCell is returned by FromBoard for cells other than dead or alive.
var ErrInvalidCell = errors.New("invalid cell value")

const (
	regionCurrent  = "current"
	regionNext     = "next"
	regionTriplets = "triplets"
)

// Option configures an engine at construction.
type Option func(*options)

type options struct {
	kernels kernels.Set
}

// WithKernels selects the lane kernel implementation.
func WithKernels(s kernels.Set) Option {
	return func(o *options) {
		o.kernels = s
	}
}

// Life is a Game of Life engine over a fixed-size grid.
type Life struct {
	geom  core.Geometry
	arena *core.Arena

	current  *core.Board
	next     *core.Board
	triplets *core.Board

	k    kernels.Set
	mask []byte // nil when Width is lane aligned

	generation uint64
}

// New returns an engine with every cell dead.
func New(width, height int, opts ...Option) (*Life, error) {
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d (need width >= %d and height >= %d)",
			ErrInvalidSize, width, height, MinWidth, MinHeight)
	}

	o := options{kernels: kernels.Catalog[kernels.Default]}
	for _, opt := range opts {
		opt(&o)
	}
	if o.kernels.Column == nil || o.kernels.Rule == nil || o.kernels.Mask == nil {
		return nil, fmt.Errorf("kernel set %q is incomplete", o.kernels.Name)
	}

	geom := core.NewGeometry(width, height)
	arena, err := core.NewArena(geom, regionCurrent, regionNext, regionTriplets)
	if err != nil {
		return nil, fmt.Errorf("allocate boards: %w", err)
	}

	l := &Life{geom: geom, arena: arena, k: o.kernels}
	if l.current, err = arena.Board(regionCurrent); err != nil {
		return nil, err
	}
	if l.next, err = arena.Board(regionNext); err != nil {
		return nil, err
	}
	if l.triplets, err = arena.Board(regionTriplets); err != nil {
		return nil, err
	}

	if shadow := geom.Shadow(); shadow > 0 {
		l.mask = kernels.ShadowMask(core.LaneWidth - shadow)
	}
	return l, nil
}

// NewRandom returns an engine whose cells are each alive with probability 1/2.
func NewRandom(width, height int, rng *rand.Rand, opts ...Option) (*Life, error) {
	l, err := New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	l.Randomize(rng)
	return l, nil
}

// FromBoard returns an engine whose current generation is a copy of the
// logical cells of b. Padding in b is ignored.
func FromBoard(b *core.Board, opts ...Option) (*Life, error) {
	g := b.Geometry()
	l, err := New(g.Width, g.Height, opts...)
	if err != nil {
		return nil, err
	}
	for r := 0; r < g.Height; r++ {
		for c, v := range b.Row(r) {
			if v > core.Alive {
				return nil, fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidCell, v, r, c)
			}
			l.current.Set(r, c, v)
		}
	}
	return l, nil
}

// Randomize reseeds every cell of the current generation, one random bit
// per cell. The same generator state always yields the same board.
func (l *Life) Randomize(rng *rand.Rand) {
	var bits uint64
	left := 0
	for r := 0; r < l.geom.Height; r++ {
		for c := 0; c < l.geom.Width; c++ {
			if left == 0 {
				bits, left = rng.Uint64(), 64
			}
			l.current.Set(r, c, byte(bits&1))
			bits >>= 1
			left--
		}
	}
}

// Set writes a cell of the current generation. v must be core.Dead or
// core.Alive. A write between updates takes effect in the next Update.
func (l *Life) Set(row, col int, v byte) {
	l.current.Set(row, col, v)
}

// Get returns a cell of the current generation.
func (l *Life) Get(row, col int) byte {
	return l.current.Get(row, col)
}

// Alive reports whether a cell of the current generation is alive.
func (l *Life) Alive(row, col int) bool {
	return l.current.Get(row, col) == core.Alive
}

// Clear kills every cell without resetting the generation counter.
func (l *Life) Clear() {
	l.current.Clear()
}

// Value gives read-only access to the current generation. The View stays
// valid across updates and always shows the latest generation.
func (l *Life) Value() core.View {
	return core.NewView(l.current)
}

// Geometry returns the grid geometry.
func (l *Life) Geometry() core.Geometry {
	return l.geom
}

// Generation counts completed updates.
func (l *Life) Generation() uint64 {
	return l.generation
}

// Population counts live cells in the current generation.
func (l *Life) Population() int {
	return l.current.Population()
}

// Arena returns the slab backing the engine's boards.
func (l *Life) Arena() *core.Arena {
	return l.arena
}

// Kernels names the kernel set in use.
func (l *Life) Kernels() string {
	return l.k.Name
}

// Update advances the board by exactly one generation.
func (l *Life) Update() {
	l.sumTriplets()
	l.applyRule()
	l.current.Swap(l.next)
	l.generation++
}

func (l *Life) sumTriplets() {
	stride := l.geom.Stride()
	src := l.current.Bytes()
	dst := l.triplets.Bytes()
	for lane := 0; lane < l.geom.Lanes; lane++ {
		start := l.geom.BlockOffset(0, lane)
		l.k.Column(dst[start:], src[start:], stride, l.geom.Height)
	}
}

func (l *Life) applyRule() {
	last := l.geom.Lanes - 1
	for r := 0; r < l.geom.Height; r++ {
		for lane := 0; lane <= last; lane++ {
			l.k.Rule(
				l.next.Block(r, lane),
				l.triplets.BlockLeft(r, lane),
				l.triplets.Block(r, lane),
				l.triplets.BlockRight(r, lane),
				l.current.Block(r, lane),
			)
		}
		// Shadow columns must stay dead or they would feed the last real
		// column in the following generation.
		if l.mask != nil {
			l.k.Mask(l.next.Block(r, last), l.mask)
		}
	}
}
