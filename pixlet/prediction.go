package pixlet

// lowpassPrediction decodes the 2-D causal prediction over the lowpass
// subband in place. Every sample first accumulates the running sum of its
// column, then the running sum of its row; the column step must come first.
// pred caches the per-column sums and must hold at least width entries.
func lowpassPrediction(dst []int16, pred []int16, width, height, stride int) {
	for i := 0; i < width; i++ {
		pred[i] = 0
	}

	row := 0
	for i := 0; i < height; i++ {
		val := pred[0] + dst[row]
		dst[row] = val
		pred[0] = val
		for j := 1; j < width; j++ {
			val = pred[j] + dst[row+j]
			dst[row+j] = val
			pred[j] = val
			dst[row+j] += dst[row+j-1]
		}
		row += stride
	}
}
