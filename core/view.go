package core

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// View is read-only access to a board. It reads the board live, so a View
// taken from an engine always shows its current generation.
type View struct {
	b *Board
}

// NewView wraps b for readback.
func NewView(b *Board) View {
	return View{b: b}
}

// Geometry returns the geometry of the viewed board.
func (v View) Geometry() Geometry { return v.b.geom }

// Get returns the cell byte at (row, col).
func (v View) Get(row, col int) byte { return v.b.Get(row, col) }

// Alive reports whether (row, col) is alive.
func (v View) Alive(row, col int) bool { return v.b.Get(row, col) == Alive }

// Row returns a copy of one row of logical cells.
func (v View) Row(row int) []byte { return v.b.Row(row) }

// Rows returns a copy of the whole grid, one slice per row.
func (v View) Rows() [][]byte {
	rows := make([][]byte, v.b.geom.Height)
	for r := range rows {
		rows[r] = v.b.Row(r)
	}
	return rows
}

// Population counts live cells.
func (v View) Population() int { return v.b.Population() }

// Checksum hashes the grid size and then the logical cells row by row.
// Equal grids always hash equal; padding never contributes.
func (v View) Checksum() uint64 {
	g := v.b.geom
	d := xxhash.New()
	var size [8]byte
	binary.LittleEndian.PutUint32(size[0:], uint32(g.Width))
	binary.LittleEndian.PutUint32(size[4:], uint32(g.Height))
	_, _ = d.Write(size[:])
	for r := 0; r < g.Height; r++ {
		start := g.Offset(r, 0)
		_, _ = d.Write(v.b.buf[start : start+g.Width])
	}
	return d.Sum64()
}

// String renders the grid in plaintext form: 'O' alive, '.' dead.
func (v View) String() string {
	g := v.b.geom
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for r := 0; r < g.Height; r++ {
		start := g.Offset(r, 0)
		for _, c := range v.b.buf[start : start+g.Width] {
			if c == Alive {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
