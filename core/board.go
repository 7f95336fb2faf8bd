// Package core provides the memory layout primitives for the lanelife engine.
//
// A board is a flat, cache-aligned byte buffer holding one byte per cell.
// Rows are padded with a permanently dead sentinel column on each side so
// that horizontal neighbours can be read as whole lanes shifted by one byte,
// with no per-row edge handling.
//
// Key components:
//   - Geometry: logical size, lane count and buffer offsets
//   - Board: scalar cell access and LaneWidth block access
//   - View: read-only access to a board for readback
//   - Arena: a single aligned slab carved into named boards
//   - Snapshot encoding for whole-board readback
package core

import "fmt"

const (
	// Dead is the byte value of a dead cell.
	Dead byte = 0
	// Alive is the byte value of a live cell.
	Alive byte = 1
)

// Board is a padded, row-major byte buffer addressed through a Geometry.
// Out-of-range access is a programming error and panics.
type Board struct {
	geom Geometry
	buf  []byte
}

// NewBoard allocates a zeroed board; every cell starts dead.
func NewBoard(geom Geometry) *Board {
	return &Board{geom: geom, buf: AlignedBytes(geom.Len())}
}

func newBoardOn(geom Geometry, buf []byte) *Board {
	if len(buf) < geom.Len() {
		panic("core: board buffer too small")
	}
	return &Board{geom: geom, buf: buf[:geom.Len():geom.Len()]}
}

// Geometry returns the board geometry.
func (b *Board) Geometry() Geometry {
	return b.geom
}

// Bytes exposes the raw padded buffer, sentinel columns included.
func (b *Board) Bytes() []byte {
	return b.buf
}

// Get returns the byte at (row, col).
func (b *Board) Get(row, col int) byte {
	b.checkCell(row, col)
	return b.buf[b.geom.Offset(row, col)]
}

// Set writes a cell state. Only Dead and Alive are accepted.
func (b *Board) Set(row, col int, v byte) {
	if v > Alive {
		panic(fmt.Sprintf("core: invalid cell value %d", v))
	}
	b.SetRaw(row, col, v)
}

// SetRaw writes any byte value at (row, col). Scratch boards hold partial
// sums rather than cell states.
func (b *Board) SetRaw(row, col int, v byte) {
	b.checkCell(row, col)
	b.buf[b.geom.Offset(row, col)] = v
}

// Block returns a LaneWidth view of the cells of one lane in row.
// Writes through the view land in the board.
func (b *Board) Block(row, lane int) []byte {
	return b.window(row, lane, 0)
}

// BlockLeft returns the lane window shifted one byte left, so element i is
// the left neighbour of element i in Block.
func (b *Board) BlockLeft(row, lane int) []byte {
	return b.window(row, lane, -1)
}

// BlockRight returns the lane window shifted one byte right.
func (b *Board) BlockRight(row, lane int) []byte {
	return b.window(row, lane, 1)
}

// Clear kills every cell.
func (b *Board) Clear() {
	clear(b.buf)
}

// Row returns a copy of the logical cells of one row.
func (b *Board) Row(row int) []byte {
	b.checkCell(row, 0)
	start := b.geom.Offset(row, 0)
	out := make([]byte, b.geom.Width)
	copy(out, b.buf[start:start+b.geom.Width])
	return out
}

// Population counts live cells in the logical grid.
func (b *Board) Population() int {
	n := 0
	for r := 0; r < b.geom.Height; r++ {
		start := b.geom.Offset(r, 0)
		for _, v := range b.buf[start : start+b.geom.Width] {
			n += int(v)
		}
	}
	return n
}

// Swap exchanges the buffers of b and o. Both boards keep their identity,
// so Views of either follow the exchange.
func (b *Board) Swap(o *Board) {
	if b.geom != o.geom {
		panic("core: geometry mismatch")
	}
	b.buf, o.buf = o.buf, b.buf
}

func (b *Board) window(row, lane, shift int) []byte {
	if row < 0 || row >= b.geom.Height || lane < 0 || lane >= b.geom.Lanes {
		panic(fmt.Sprintf("core: block (%d, %d) out of range for %v", row, lane, b.geom))
	}
	start := b.geom.BlockOffset(row, lane) + shift
	return b.buf[start : start+LaneWidth : start+LaneWidth]
}

func (b *Board) checkCell(row, col int) {
	if !b.geom.Contains(row, col) {
		panic(fmt.Sprintf("core: cell (%d, %d) out of range for %v", row, col, b.geom))
	}
}
