package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBadSnapshot is returned for snapshots that cannot be decoded.
var ErrBadSnapshot = errors.New("bad snapshot")

const snapshotHeader = 8

// EncodeSnapshot writes the logical cells of a view in binary form.
// Layout: [Width(4)][Height(4)][Width*Height cell bytes, row-major]
func EncodeSnapshot(v View) ([]byte, error) {
	g := v.Geometry()
	buf := &bytes.Buffer{}
	buf.Grow(snapshotHeader + g.Cells())

	if err := binary.Write(buf, binary.LittleEndian, uint32(g.Width)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(g.Height)); err != nil {
		return nil, err
	}
	for r := 0; r < g.Height; r++ {
		start := g.Offset(r, 0)
		if _, err := buf.Write(v.b.buf[start : start+g.Width]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot rebuilds a board from EncodeSnapshot output.
func DecodeSnapshot(data []byte) (*Board, error) {
	if len(data) < snapshotHeader {
		return nil, fmt.Errorf("%w: short header", ErrBadSnapshot)
	}
	width := int(binary.LittleEndian.Uint32(data[0:4]))
	height := int(binary.LittleEndian.Uint32(data[4:8]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadSnapshot, width, height)
	}

	cells := data[snapshotHeader:]
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cell bytes for %dx%d", ErrBadSnapshot, len(cells), width, height)
	}

	b := NewBoard(NewGeometry(width, height))
	for r := 0; r < height; r++ {
		row := cells[r*width : (r+1)*width]
		for c, v := range row {
			if v > Alive {
				return nil, fmt.Errorf("%w: cell (%d, %d) = %d", ErrBadSnapshot, r, c, v)
			}
		}
		copy(b.buf[b.geom.Offset(r, 0):], row)
	}
	return b, nil
}
