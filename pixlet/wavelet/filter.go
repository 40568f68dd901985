// Package wavelet implements the inverse wavelet synthesis of the Pixlet
// intra-frame codec: a fixed 5/7 biorthogonal filter pair applied over four
// levels of a separable 2-D pyramid.
package wavelet

// Synthesis taps of the biorthogonal filter pair. The decoded stream is
// correct only with these exact single-precision values; accumulation may
// widen to double.
const (
	lowEvenOuter  float32 = -0.07576144003329376
	lowEvenCenter float32 = 0.8586296626673486
	highEvenPair  float32 = 0.3535533905932737

	lowOddOuter   float32 = -0.01515228715813062
	lowOddInner   float32 = 0.3687056777514043
	highOddOuter  float32 = 0.07071067811865475
	highOddCenter float32 = -0.8485281374238569
)

const pad = 4

// Filter1D runs one level of 1-D synthesis over dest[0:size] in place,
// recombining the lowpass half dest[0:size/2] and the highpass half
// dest[size/2:size]. size must be even and at least 2. tmp is caller scratch
// of at least size+16 entries; every output sample is scaled by scale and
// clipped to int16 before narrowing.
func Filter1D(dest []int16, tmp []int16, size int, scale float32) {
	hsize := size >> 1
	lo := pad
	hi := pad + hsize + 8

	copy(tmp[lo:lo+hsize], dest[:hsize])
	copy(tmp[hi:hi+hsize], dest[hsize:size])

	// Two-sample blocks read their right pad before the loop below writes
	// it; seed the slot with the reflection so the read is defined.
	if hsize == 1 {
		tmp[lo+1] = tmp[lo]
	}

	// Mirror-pad four samples on each side. The reflection is asymmetric
	// between the halves, and for narrow blocks later pads alias earlier
	// ones, so the write order is part of the layout.
	for k := 0; k < 4; k++ {
		tmp[lo-1-k] = tmp[lo+1+k]
		tmp[lo+hsize+k] = tmp[lo+hsize-k-1]
		tmp[hi-1-k] = tmp[hi+k]
		tmp[hi+hsize+k] = tmp[hi+hsize-k-2]
	}

	for i := 0; i < hsize; i++ {
		value := float64(tmp[lo+i+1])*float64(lowEvenOuter) +
			float64(tmp[lo+i])*float64(lowEvenCenter) +
			float64(tmp[lo+i-1])*float64(lowEvenOuter) +
			float64(tmp[hi+i])*float64(highEvenPair) +
			float64(tmp[hi+i-1])*float64(highEvenPair)
		dest[i*2] = clipScaled(value, scale)
	}

	for i := 0; i < hsize; i++ {
		value := float64(tmp[lo+i+2])*float64(lowOddOuter) +
			float64(tmp[lo+i+1])*float64(lowOddInner) +
			float64(tmp[lo+i])*float64(lowOddInner) +
			float64(tmp[lo+i-1])*float64(lowOddOuter) +
			float64(tmp[hi+i+1])*float64(highOddOuter) +
			float64(tmp[hi+i])*float64(highOddCenter) +
			float64(tmp[hi+i-1])*float64(highOddOuter)
		dest[i*2+1] = clipScaled(value, scale)
	}
}

func clipScaled(value float64, scale float32) int16 {
	v := value * float64(scale)
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
