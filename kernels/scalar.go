package kernels

func columnScalar(dst, src []byte, stride, rows int) {
	var prev, cur, next [LaneWidth]byte
	copy(cur[:], src[:LaneWidth])

	for r := 0; r < rows-1; r++ {
		copy(next[:], src[(r+1)*stride:(r+1)*stride+LaneWidth])
		out := dst[r*stride : r*stride+LaneWidth]
		for i := range out {
			out[i] = prev[i] + cur[i] + next[i]
		}
		prev, cur = cur, next
	}

	out := dst[(rows-1)*stride : (rows-1)*stride+LaneWidth]
	for i := range out {
		out[i] = prev[i] + cur[i]
	}
}

func ruleScalar(dst, left, mid, right, cur []byte) {
	_ = dst[LaneWidth-1]
	_ = left[LaneWidth-1]
	_ = mid[LaneWidth-1]
	_ = right[LaneWidth-1]
	_ = cur[LaneWidth-1]
	for i := 0; i < LaneWidth; i++ {
		dst[i] = Next(left[i]+mid[i]+right[i], cur[i])
	}
}

func maskScalar(dst, mask []byte) {
	_ = dst[LaneWidth-1]
	_ = mask[LaneWidth-1]
	for i := 0; i < LaneWidth; i++ {
		dst[i] &= mask[i]
	}
}
