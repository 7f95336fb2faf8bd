package core

import "fmt"

// Geometry describes the logical size of a grid and how its rows are laid
// out in a padded board buffer. It is a value type and never changes after
// construction.
//
// Every row holds one sentinel column on each side of Lanes*LaneWidth cells:
//
//	[pad][lane 0 ... lane n-1][pad]
//
// Columns in the last lane at or beyond Width are shadow cells. They exist
// only to fill out the lane and never represent grid state.
type Geometry struct {
	Width  int
	Height int
	Lanes  int
}

// NewGeometry returns the geometry for a width x height grid.
// Non-positive sizes are a programming error and panic.
func NewGeometry(width, height int) Geometry {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("core: invalid geometry %dx%d", width, height))
	}
	return Geometry{
		Width:  width,
		Height: height,
		Lanes:  lanesFor(width),
	}
}

// Stride is the distance in bytes between the starts of two adjacent rows.
func (g Geometry) Stride() int {
	return g.Lanes*LaneWidth + 2
}

// Len is the total buffer size of one board.
func (g Geometry) Len() int {
	return g.Stride() * g.Height
}

// Cells is the number of logical cells.
func (g Geometry) Cells() int {
	return g.Width * g.Height
}

// Shadow is the number of shadow columns in the last lane of every row.
func (g Geometry) Shadow() int {
	return g.Lanes*LaneWidth - g.Width
}

// Offset returns the buffer index of cell (row, col).
func (g Geometry) Offset(row, col int) int {
	return row*g.Stride() + 1 + col
}

// BlockOffset returns the buffer index of the first cell of a lane in row.
func (g Geometry) BlockOffset(row, lane int) int {
	return row*g.Stride() + 1 + lane*LaneWidth
}

// Contains reports whether (row, col) lies inside the logical grid.
func (g Geometry) Contains(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d/%d lanes", g.Width, g.Height, g.Lanes)
}
