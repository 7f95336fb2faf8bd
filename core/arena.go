package core

import (
	"errors"
	"fmt"
	"unsafe"
)

// ArenaRegion is a named, cache-aligned slice of the arena.
type ArenaRegion struct {
	Offset int
	Size   int
	Name   string
}

// Arena owns one pre-allocated byte slab shared by every board of a single
// geometry. Regions are laid out back to back, each starting on a cache line.
type Arena struct {
	geom    Geometry
	buffer  []byte
	regions map[string]ArenaRegion
	order   []string
}

// ErrUnknownRegion is returned when a region name was never laid out.
var ErrUnknownRegion = errors.New("unknown arena region")

// NewArena lays out one board-sized region per name.
func NewArena(geom Geometry, names ...string) (*Arena, error) {
	if len(names) == 0 {
		return nil, errors.New("arena needs at least one region")
	}

	regionSize := AlignCacheLine(geom.Len())
	a := &Arena{
		geom:    geom,
		regions: make(map[string]ArenaRegion, len(names)),
	}

	offset := 0
	for _, name := range names {
		if _, dup := a.regions[name]; dup {
			return nil, fmt.Errorf("duplicate arena region %q", name)
		}
		a.regions[name] = ArenaRegion{Offset: offset, Size: regionSize, Name: name}
		a.order = append(a.order, name)
		offset += regionSize
	}

	a.buffer = AlignedBytes(offset)
	return a, nil
}

// Geometry returns the geometry every region is sized for.
func (a *Arena) Geometry() Geometry {
	return a.geom
}

// Region returns the named region.
func (a *Arena) Region(name string) (ArenaRegion, bool) {
	region, ok := a.regions[name]
	return region, ok
}

// Regions returns all regions in layout order.
func (a *Arena) Regions() []ArenaRegion {
	out := make([]ArenaRegion, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.regions[name])
	}
	return out
}

// Board returns a board backed by the named region.
func (a *Arena) Board(name string) (*Board, error) {
	region, ok := a.Region(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return newBoardOn(a.geom, a.buffer[region.Offset:region.Offset+region.Size]), nil
}

// Aligned reports whether every region starts on a cache line.
func (a *Arena) Aligned() bool {
	if len(a.buffer) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&a.buffer[0]))
	for _, r := range a.regions {
		if !IsAligned(base + uintptr(r.Offset)) {
			return false
		}
	}
	return true
}

// TotalSize returns the capacity of the slab.
func (a *Arena) TotalSize() int {
	return len(a.buffer)
}
