package pixlet

import (
	"fmt"
	"math/bits"
)

// readLowCoeffs decodes size lowpass coefficients into dst, wrapping the
// output cursor every width samples and advancing by stride samples per row.
// The coder alternates adaptive value steps with run-length escapes; the
// accumulator state starts at 3 and a one-bit flag carries from short zero
// runs into the next magnitude. Returns the number of whole bytes consumed
// after byte-aligning the reader.
func readLowCoeffs(b *bitReader, dst []int16, size, width, stride int) (int, error) {
	var (
		state int64 = 3
		flag  int64
	)
	i, j, row := 0, 0, 0

	for i < size {
		nbits := bits.Len32(uint32((state>>8)+3)) - 1
		if nbits > 14 {
			nbits = 14
		}

		cnt1, err := b.unary(8)
		if err != nil {
			return 0, err
		}
		var escape int64
		if cnt1 < 8 {
			mask := int64(1)<<uint(nbits) - 1
			if v := int64(b.peekBits(nbits)); v <= 1 {
				if err := b.skipBits(nbits - 1); err != nil {
					return 0, err
				}
				escape = mask * int64(cnt1)
			} else {
				if err := b.skipBits(nbits); err != nil {
					return 0, err
				}
				escape = v + mask*int64(cnt1) - 1
			}
		} else {
			v, err := b.readBits(16)
			if err != nil {
				return 0, err
			}
			escape = int64(v)
		}

		sign := -((escape + flag) & 1) | 1
		dst[row+j] = int16(sign * ((escape + flag + 1) >> 1))
		i++
		j++
		if j == width {
			j = 0
			row += stride
		}
		state += 120*(escape+flag) - (120 * state >> 8)
		flag = 0

		if state*4 > 0xFF || i >= size {
			continue
		}

		nbits = int((state+8)>>5) + clz32NonZero(state) - 24
		escMask := int64(1)<<uint(nbits) - 1
		cnt1, err = b.unary(8)
		if err != nil {
			return 0, err
		}
		var rlen int64
		if cnt1 > 7 {
			v, err := b.readBits(16)
			if err != nil {
				return 0, err
			}
			rlen = int64(v)
		} else {
			if v := int64(b.peekBits(nbits)); v > 1 {
				if err := b.skipBits(nbits); err != nil {
					return 0, err
				}
				rlen = v + escMask*int64(cnt1) - 1
			} else {
				if err := b.skipBits(nbits - 1); err != nil {
					return 0, err
				}
				rlen = escMask * int64(cnt1)
			}
		}

		if int64(i)+rlen > int64(size) {
			return 0, fmt.Errorf("zero run %d exceeds %d remaining coefficients: %w", rlen, size-i, ErrInvalidData)
		}
		i += int(rlen)

		for k := int64(0); k < rlen; k++ {
			dst[row+j] = 0
			j++
			if j == width {
				j = 0
				row += stride
			}
		}

		state = 0
		if rlen < 0xFFFF {
			flag = 1
		} else {
			flag = 0
		}
	}

	b.align()
	return b.bytesConsumed(), nil
}

// clz32NonZero counts leading zeros of the low 32 bits of v, mapping v == 0
// to 32 the way the run-length prefix width derivation needs it.
func clz32NonZero(v int64) int {
	if v == 0 {
		return 32
	}
	return bits.LeadingZeros32(uint32(v))
}
