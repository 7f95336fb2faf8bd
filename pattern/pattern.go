// Package pattern reads Life patterns in the LifeWiki plaintext format and
// places them onto a board.
//
//	!Name: Glider
//	.O.
//	..O
//	OOO
//
// Lines starting with '!' are comments. '.' is a dead cell; 'O' and '*' are
// live cells. Short lines are padded with dead cells.
package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sbl8/lanelife/core"
)

// ErrSyntax is returned for malformed pattern text.
var ErrSyntax = errors.New("pattern syntax error")

// ErrOutOfBounds is returned when a placement does not fit the grid.
var ErrOutOfBounds = errors.New("pattern out of bounds")

// Cell is a live cell relative to the pattern's top-left corner.
type Cell struct {
	Row int
	Col int
}

// Pattern is a set of live cells with a bounding box.
type Pattern struct {
	Name   string
	Width  int
	Height int
	Cells  []Cell
}

// Grid receives cell writes. *life.Life and *core.Board satisfy it.
type Grid interface {
	Geometry() core.Geometry
	Set(row, col int, v byte)
}

// Parse reads a plaintext pattern.
func Parse(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	sc := bufio.NewScanner(r)
	row := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			if name, ok := strings.CutPrefix(line, "!Name:"); ok && p.Name == "" {
				p.Name = strings.TrimSpace(name)
			}
			continue
		}
		for col, ch := range []byte(line) {
			switch ch {
			case '.':
			case 'O', '*':
				p.Cells = append(p.Cells, Cell{Row: row, Col: col})
			default:
				return nil, fmt.Errorf("%w: line %d col %d: unexpected %q", ErrSyntax, row+1, col+1, ch)
			}
		}
		p.Width = max(p.Width, len(line))
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	p.Height = row
	if p.Height == 0 || p.Width == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrSyntax)
	}
	return p, nil
}

// Load parses the pattern file at path.
func Load(path string) (*Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Place sets the pattern's live cells with its top-left corner at
// (row, col). The whole bounding box must fit inside the grid; nothing is
// written otherwise.
func (p *Pattern) Place(g Grid, row, col int) error {
	geom := g.Geometry()
	if row < 0 || col < 0 || row+p.Height > geom.Height || col+p.Width > geom.Width {
		return fmt.Errorf("%w: %dx%d at (%d, %d) on %dx%d grid",
			ErrOutOfBounds, p.Width, p.Height, row, col, geom.Width, geom.Height)
	}
	for _, c := range p.Cells {
		g.Set(row+c.Row, col+c.Col, core.Alive)
	}
	return nil
}

// PlaceCentered places the pattern in the middle of the grid.
func (p *Pattern) PlaceCentered(g Grid) error {
	geom := g.Geometry()
	return p.Place(g, (geom.Height-p.Height)/2, (geom.Width-p.Width)/2)
}

// String renders the pattern back to plaintext, without comments.
func (p *Pattern) String() string {
	grid := make([][]byte, p.Height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", p.Width))
	}
	for _, c := range p.Cells {
		grid[c.Row][c.Col] = 'O'
	}
	var sb strings.Builder
	for _, line := range grid {
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
