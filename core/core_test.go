package core

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		width  int
		height int
		lanes  int
		shadow int
	}{
		{name: "single cell column", width: 1, height: 2, lanes: 1, shadow: 63},
		{name: "exact lane", width: 64, height: 3, lanes: 1, shadow: 0},
		{name: "one past lane", width: 65, height: 3, lanes: 2, shadow: 63},
		{name: "two lanes", width: 128, height: 10, lanes: 2, shadow: 0},
		{name: "ragged", width: 100, height: 7, lanes: 2, shadow: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeometry(tt.width, tt.height)
			assert.Equal(t, tt.lanes, g.Lanes)
			assert.Equal(t, tt.shadow, g.Shadow())
			assert.Equal(t, tt.lanes*LaneWidth+2, g.Stride())
			assert.Equal(t, g.Stride()*tt.height, g.Len())
			assert.GreaterOrEqual(t, g.Lanes*LaneWidth, g.Width)
		})
	}
}

func TestGeometryOffsets(t *testing.T) {
	t.Parallel()
	g := NewGeometry(100, 4)

	assert.Equal(t, 1, g.Offset(0, 0), "column 0 sits after the left sentinel")
	assert.Equal(t, g.Stride()+1, g.Offset(1, 0))
	assert.Equal(t, 2*g.Stride()+1+64, g.BlockOffset(2, 1))
	assert.Equal(t, g.Offset(3, 64), g.BlockOffset(3, 1))
	assert.True(t, g.Contains(3, 99))
	assert.False(t, g.Contains(4, 0))
	assert.False(t, g.Contains(0, 100))
	assert.False(t, g.Contains(-1, 0))
}

func TestNewGeometryPanicsOnNonPositive(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewGeometry(0, 10) })
	assert.Panics(t, func() { NewGeometry(10, 0) })
	assert.Panics(t, func() { NewGeometry(-1, 5) })
}

func TestAlignedBytes(t *testing.T) {
	t.Parallel()
	for _, size := range []int{1, 63, 64, 65, 1000} {
		buf := AlignedBytes(size)
		require.Len(t, buf, size)
		assert.True(t, IsAligned(uintptr(unsafe.Pointer(&buf[0]))), "size %d", size)
	}
	assert.Nil(t, AlignedBytes(0))
	assert.Equal(t, 128, AlignCacheLine(65))
	assert.Equal(t, 64, AlignCacheLine(64))
}

func TestBoardStartsDead(t *testing.T) {
	t.Parallel()
	b := NewBoard(NewGeometry(70, 5))
	assert.Zero(t, b.Population())
	for _, v := range b.Bytes() {
		require.Zero(t, v)
	}
}

func TestBoardGetSet(t *testing.T) {
	t.Parallel()
	g := NewGeometry(70, 5)
	b := NewBoard(g)

	b.Set(0, 0, Alive)
	b.Set(4, 69, Alive)
	b.Set(2, 64, Alive)

	assert.Equal(t, Alive, b.Get(0, 0))
	assert.Equal(t, Alive, b.Get(4, 69))
	assert.Equal(t, Alive, b.Get(2, 64))
	assert.Equal(t, Dead, b.Get(2, 63))
	assert.Equal(t, 3, b.Population())

	buf := b.Bytes()
	assert.Zero(t, buf[0], "left sentinel of row 0")
	assert.Equal(t, Alive, buf[1])

	b.Set(0, 0, Dead)
	assert.Equal(t, 2, b.Population())
}

func TestBoardContractViolationsPanic(t *testing.T) {
	t.Parallel()
	b := NewBoard(NewGeometry(10, 3))

	assert.Panics(t, func() { b.Get(3, 0) })
	assert.Panics(t, func() { b.Get(0, 10) })
	assert.Panics(t, func() { b.Get(-1, 0) })
	assert.Panics(t, func() { b.Set(0, -1, Alive) })
	assert.Panics(t, func() { b.Set(0, 0, 2) }, "live boards only hold 0 or 1")
	assert.Panics(t, func() { b.Block(0, 1) })
	assert.NotPanics(t, func() { b.SetRaw(0, 0, 7) })
}

func TestBoardBlocks(t *testing.T) {
	t.Parallel()
	g := NewGeometry(128, 3)
	b := NewBoard(g)

	src := make([]byte, LaneWidth)
	for i := range src {
		src[i] = byte(i + 1)
	}
	copy(b.Block(1, 1), src)

	assert.Equal(t, src, b.Block(1, 1))
	assert.Equal(t, byte(1), b.Get(1, 64))
	assert.Equal(t, byte(64), b.Get(1, 127))

	left := b.BlockLeft(1, 1)
	right := b.BlockRight(1, 1)
	require.Len(t, left, LaneWidth)
	require.Len(t, right, LaneWidth)

	// left[i] is the cell at column 64+i-1, right[i] at column 64+i+1.
	assert.Equal(t, byte(0), left[0], "column 63 is still dead")
	assert.Equal(t, byte(1), left[1])
	assert.Equal(t, byte(2), right[0])
	assert.Equal(t, byte(0), right[LaneWidth-1], "right sentinel")

	// Views write through.
	b.Block(2, 0)[5] = Alive
	assert.Equal(t, Alive, b.Get(2, 5))
}

func TestBoardBlockWindowsStayInBounds(t *testing.T) {
	t.Parallel()
	g := NewGeometry(1, 2)
	b := NewBoard(g)
	assert.NotPanics(t, func() {
		_ = b.BlockLeft(0, 0)
		_ = b.BlockRight(g.Height-1, g.Lanes-1)
	})
}

func TestBoardRowPopulationClear(t *testing.T) {
	t.Parallel()
	g := NewGeometry(5, 3)
	b := NewBoard(g)

	b.Set(1, 2, Alive)
	assert.Equal(t, []byte{0, 0, 1, 0, 0}, b.Row(1))

	row := b.Row(1)
	row[0] = Alive
	assert.Equal(t, Dead, b.Get(1, 0), "Row returns a copy")

	b.Bytes()[g.Offset(1, 5)] = 9 // shadow cell
	assert.Equal(t, 1, b.Population(), "shadow bytes are not counted")

	b.Clear()
	assert.Zero(t, b.Population())
	assert.Zero(t, b.Bytes()[g.Offset(1, 5)])
}

func TestView(t *testing.T) {
	t.Parallel()
	b := NewBoard(NewGeometry(3, 2))
	b.Set(0, 1, Alive)
	b.Set(1, 2, Alive)
	v := NewView(b)

	assert.True(t, v.Alive(0, 1))
	assert.False(t, v.Alive(0, 0))
	assert.Equal(t, 2, v.Population())
	assert.Equal(t, ".O.\n..O\n", v.String())
	assert.Equal(t, [][]byte{{0, 1, 0}, {0, 0, 1}}, v.Rows())

	before := v.Checksum()
	b.Set(0, 0, Alive)
	assert.NotEqual(t, before, v.Checksum(), "view follows the board")
}

func TestViewChecksumIgnoresPadding(t *testing.T) {
	t.Parallel()
	g := NewGeometry(10, 2)
	a := NewBoard(g)
	b := NewBoard(g)
	a.Set(1, 3, Alive)
	b.Set(1, 3, Alive)
	b.Bytes()[g.Offset(0, 20)] = 1 // shadow
	b.Bytes()[0] = 1               // sentinel

	assert.Equal(t, NewView(a).Checksum(), NewView(b).Checksum())
}

func TestViewChecksumCoversShape(t *testing.T) {
	t.Parallel()
	wide := NewView(NewBoard(NewGeometry(3, 2)))
	tall := NewView(NewBoard(NewGeometry(2, 3)))
	assert.NotEqual(t, wide.Checksum(), tall.Checksum())
}

func TestBoardSwap(t *testing.T) {
	t.Parallel()
	g := NewGeometry(5, 5)
	a := NewBoard(g)
	b := NewBoard(g)
	a.Set(1, 1, Alive)
	v := NewView(a)

	a.Swap(b)
	assert.False(t, v.Alive(1, 1), "view follows the swapped buffer")
	assert.True(t, b.Get(1, 1) == Alive)

	a.Swap(b)
	assert.True(t, v.Alive(1, 1))
	assert.Panics(t, func() { a.Swap(NewBoard(NewGeometry(6, 5))) })
}

func TestArena(t *testing.T) {
	t.Parallel()
	g := NewGeometry(100, 10)
	a, err := NewArena(g, "current", "next", "triplets")
	require.NoError(t, err)

	regions := a.Regions()
	require.Len(t, regions, 3)
	for i, r := range regions {
		assert.Zero(t, r.Offset%CacheLineSize, "region %s aligned", r.Name)
		assert.GreaterOrEqual(t, r.Size, g.Len())
		if i > 0 {
			prev := regions[i-1]
			assert.LessOrEqual(t, prev.Offset+prev.Size, r.Offset, "%s overlaps %s", prev.Name, r.Name)
		}
	}
	assert.Equal(t, regions[2].Offset+regions[2].Size, a.TotalSize())

	cur, err := a.Board("current")
	require.NoError(t, err)
	next, err := a.Board("next")
	require.NoError(t, err)

	cur.Set(9, 99, Alive)
	assert.Equal(t, Dead, next.Get(9, 99), "regions do not alias")
	assert.True(t, IsAligned(uintptr(unsafe.Pointer(&cur.Bytes()[0]))))
	assert.True(t, a.Aligned())

	_, err = a.Board("missing")
	assert.ErrorIs(t, err, ErrUnknownRegion)
}

func TestArenaErrors(t *testing.T) {
	t.Parallel()
	g := NewGeometry(4, 4)

	_, err := NewArena(g)
	assert.Error(t, err)

	_, err = NewArena(g, "a", "a")
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	b := NewBoard(NewGeometry(70, 3))
	b.Set(0, 0, Alive)
	b.Set(2, 69, Alive)
	b.Set(1, 64, Alive)

	data, err := EncodeSnapshot(NewView(b))
	require.NoError(t, err)
	assert.Len(t, data, 8+70*3)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, b.Geometry(), got.Geometry())
	assert.Equal(t, NewView(b).Rows(), NewView(got).Rows())
}

func TestDecodeSnapshotErrors(t *testing.T) {
	t.Parallel()
	valid, err := EncodeSnapshot(NewView(NewBoard(NewGeometry(2, 2))))
	require.NoError(t, err)

	bad := append([]byte(nil), valid...)
	bad[len(bad)-1] = 5

	tests := []struct {
		name string
		data []byte
	}{
		{name: "short header", data: []byte{1, 0, 0}},
		{name: "zero width", data: []byte{0, 0, 0, 0, 2, 0, 0, 0}},
		{name: "truncated cells", data: valid[:len(valid)-1]},
		{name: "invalid cell", data: bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.data)
			assert.ErrorIs(t, err, ErrBadSnapshot)
		})
	}
}
