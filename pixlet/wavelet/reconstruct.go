package wavelet

// Reconstruct applies levels stages of separable inverse synthesis to the
// plane at dest. The block being synthesized starts at (width>>levels,
// height>>levels) and doubles each level. Rows are filtered with the
// per-level V scale and columns with the H scale, in that order, matching
// the scale table layout of the bitstream.
//
// col is column scratch of at least height entries; tmp is filter scratch of
// at least max(width, height)+16 entries.
func Reconstruct(dest []int16, width, height, stride, levels int, scaleH, scaleV []float32, col, tmp []int16) {
	scaledW := width >> uint(levels)
	scaledH := height >> uint(levels)

	for i := 0; i < levels; i++ {
		scaledW <<= 1
		scaledH <<= 1
		sH := scaleH[i]
		sV := scaleV[i]

		row := 0
		for j := 0; j < scaledH; j++ {
			Filter1D(dest[row:], tmp, scaledW, sV)
			row += stride
		}

		for j := 0; j < scaledW; j++ {
			p := j
			for k := 0; k < scaledH; k++ {
				col[k] = dest[p]
				p += stride
			}

			Filter1D(col, tmp, scaledH, sH)

			p = j
			for k := 0; k < scaledH; k++ {
				dest[p] = col[k]
				p += stride
			}
		}
	}
}
