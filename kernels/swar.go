package kernels

import "encoding/binary"

// Every byte of every word holds a small count (at most 9), so plain
// uint64 arithmetic never carries or borrows across byte boundaries.
const (
	words = LaneWidth / 8

	threes = 0x0303030303030303
	low7   = 0x7F7F7F7F7F7F7F7F
	highs  = 0x8080808080808080
)

type lane [words]uint64

func loadLane(b []byte) (l lane) {
	_ = b[LaneWidth-1]
	for w := range l {
		l[w] = binary.LittleEndian.Uint64(b[w*8:])
	}
	return l
}

func storeLane(b []byte, l *lane) {
	_ = b[LaneWidth-1]
	for w := range l {
		binary.LittleEndian.PutUint64(b[w*8:], l[w])
	}
}

func columnSWAR(dst, src []byte, stride, rows int) {
	var prev, out lane
	cur := loadLane(src)

	for r := 0; r < rows-1; r++ {
		next := loadLane(src[(r+1)*stride:])
		for w := range out {
			out[w] = prev[w] + cur[w] + next[w]
		}
		storeLane(dst[r*stride:], &out)
		prev, cur = cur, next
	}

	for w := range out {
		out[w] = prev[w] + cur[w]
	}
	storeLane(dst[(rows-1)*stride:], &out)
}

// lifeWord applies ((total - cur) | cur) == 3 to eight cells at once.
func lifeWord(total, cur uint64) uint64 {
	x := ((total - cur) | cur) ^ threes
	// x bytes are at most 0x0F, so adding 0x7F sets the high bit exactly
	// for the non-zero bytes.
	nonzero := (x + low7) & highs
	return (^nonzero & highs) >> 7
}

func ruleSWAR(dst, left, mid, right, cur []byte) {
	_ = dst[LaneWidth-1]
	_ = left[LaneWidth-1]
	_ = mid[LaneWidth-1]
	_ = right[LaneWidth-1]
	_ = cur[LaneWidth-1]
	for w := 0; w < words; w++ {
		o := w * 8
		total := binary.LittleEndian.Uint64(left[o:]) +
			binary.LittleEndian.Uint64(mid[o:]) +
			binary.LittleEndian.Uint64(right[o:])
		c := binary.LittleEndian.Uint64(cur[o:])
		binary.LittleEndian.PutUint64(dst[o:], lifeWord(total, c))
	}
}

func maskSWAR(dst, mask []byte) {
	_ = dst[LaneWidth-1]
	_ = mask[LaneWidth-1]
	for w := 0; w < words; w++ {
		o := w * 8
		v := binary.LittleEndian.Uint64(dst[o:]) & binary.LittleEndian.Uint64(mask[o:])
		binary.LittleEndian.PutUint64(dst[o:], v)
	}
}
