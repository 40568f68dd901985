package pixlet

// postprocessLuma expands the square-law gamma of the luma plane, mapping
// the depth-limited signed samples to full-range unsigned 16-bit output.
func postprocessLuma(dst []uint16, dstStride int, src []int16, srcStride int, w, h, depth int) {
	factor := float32(1) / float32((int32(1)<<uint(depth))-1)

	d, s := 0, 0
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			v := src[s+i]
			if v < 0 {
				v = 0
			}
			f := float32(v) * factor
			dst[d+i] = uint16(f * f * 65535)
		}
		d += dstStride
		s += srcStride
	}
}

// postprocessChroma re-biases a chroma plane around the depth midpoint and
// shifts it to 16-bit. The conversion is pure integer arithmetic and wraps
// rather than traps on out-of-range input.
func postprocessChroma(dst []uint16, dstStride int, src []int16, srcStride int, w, h, depth int) {
	add := 1 << uint(depth-1)
	shift := uint(16 - depth)

	d, s := 0, 0
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			dst[d+i] = uint16((add + int(src[s+i])) << shift)
		}
		d += dstStride
		s += srcStride
	}
}
