package pattern

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/lanelife/core"
	"github.com/sbl8/lanelife/life"
)

const glider = `!Name: Glider
!A small spaceship.
.O.
..O
OOO
`

func TestParse(t *testing.T) {
	t.Parallel()
	p, err := Parse(strings.NewReader(glider))
	require.NoError(t, err)

	assert.Equal(t, "Glider", p.Name)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, 3, p.Height)
	assert.Equal(t, []Cell{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}, p.Cells)
	assert.Equal(t, ".O.\n..O\nOOO\n", p.String())
}

func TestParseRaggedAndStars(t *testing.T) {
	t.Parallel()
	p, err := Parse(strings.NewReader("*\r\n.\n..*.\n"))
	require.NoError(t, err)

	assert.Empty(t, p.Name)
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 3, p.Height)
	assert.Equal(t, []Cell{{0, 0}, {2, 2}}, p.Cells)
	assert.Equal(t, "O...\n....\n..O.\n", p.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"bad char":      ".O.\n.X.\n",
		"only comments": "!Name: nothing\n",
		"empty":         "",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}

	_, err := Parse(strings.NewReader(".O.\n.X.\n"))
	assert.ErrorContains(t, err, "line 2 col 2")
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "glider.cells")
	require.NoError(t, os.WriteFile(path, []byte(glider), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Glider", p.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cells"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlace(t *testing.T) {
	t.Parallel()
	p, err := Parse(strings.NewReader(glider))
	require.NoError(t, err)

	b := core.NewBoard(core.NewGeometry(8, 8))
	require.NoError(t, p.Place(b, 5, 5))
	assert.Equal(t, 5, b.Population())
	assert.Equal(t, core.Alive, b.Get(5, 6))
	assert.Equal(t, core.Alive, b.Get(7, 7))

	for _, at := range [][2]int{{6, 0}, {0, 6}, {-1, 0}, {0, -1}} {
		err := p.Place(b, at[0], at[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "at %v", at)
	}
	assert.Equal(t, 5, b.Population(), "failed placements write nothing")
}

func TestGliderTravels(t *testing.T) {
	t.Parallel()
	p, err := Parse(strings.NewReader(glider))
	require.NoError(t, err)

	l, err := life.New(80, 20)
	require.NoError(t, err)
	require.NoError(t, p.PlaceCentered(l))
	start := l.Value().String()

	// A glider repeats its shape every 4 generations, one cell down and
	// one cell right.
	for i := 0; i < 4; i++ {
		l.Update()
	}
	moved := core.NewBoard(l.Geometry())
	require.NoError(t, p.Place(moved, 8+1, 38+1))
	assert.Equal(t, core.NewView(moved).String(), l.Value().String())
	assert.NotEqual(t, start, l.Value().String())
	assert.Equal(t, 5, l.Population())
}
