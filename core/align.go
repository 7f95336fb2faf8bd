package core

import "unsafe"

const (
	// CacheLineSize is a common cache line size, typically 64 bytes.
	CacheLineSize = 64

	// LaneWidth is the number of cells processed together by one lane kernel.
	// It matches the cache line so a lane never straddles more than two lines.
	LaneWidth = CacheLineSize
)

// IsAligned checks if an address is aligned to a cache line boundary.
func IsAligned(addr uintptr) bool {
	return addr%CacheLineSize == 0
}

// AlignSize rounds size up to the specified power-of-two alignment.
func AlignSize(size, align int) int {
	return (size + align - 1) &^ (align - 1)
}

// AlignCacheLine rounds size up to the cache line boundary.
func AlignCacheLine(size int) int {
	return AlignSize(size, CacheLineSize)
}

// AlignedBytes allocates a zeroed byte slice whose backing array starts on a
// cache line boundary.
func AlignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	// Allocate extra space to allow for alignment.
	buf := make([]byte, size+CacheLineSize-1)

	ptr := uintptr(unsafe.Pointer(&buf[0]))
	offset := uintptr(0)
	if mod := ptr % CacheLineSize; mod != 0 {
		offset = CacheLineSize - mod
	}
	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// lanesFor returns the number of LaneWidth lanes needed to cover width cells.
func lanesFor(width int) int {
	return (width + LaneWidth - 1) / LaneWidth
}
