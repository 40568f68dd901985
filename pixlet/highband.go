package pixlet

import (
	"fmt"
	"math/bits"
)

// bandMagic separates the parameter block of every detail band from its
// entropy-coded payload.
const bandMagic = 0xDEADBEEF

// readHighCoeffs decodes size detail coefficients into dst. The coder is
// parameterized by the band's transmitted (scale, c, d) words: scale fixes
// the width of the escape field, c the reconstruction step, d the state
// adaptation rate. Returns the number of whole bytes consumed after
// byte-aligning the reader.
func readHighCoeffs(b *bitReader, dst []int16, size int, c, scale, d int32, width, stride int) (int, error) {
	if scale == 0 {
		return 0, fmt.Errorf("zero band scale: %w", ErrInvalidData)
	}

	// (scale >= 0) + (scale ^ (scale >> 31)) - (scale >> 31), as the
	// bitstream defines it: |scale| for negative values, scale+1 otherwise.
	m := int64(scale)
	if m >= 0 {
		m++
	} else {
		m = -m
	}
	nbits := 1
	if m != 1 {
		nbits = 33 - bits.LeadingZeros32(uint32(m-1))
		if nbits > 16 {
			return 0, fmt.Errorf("escape field of %d bits: %w", nbits, ErrInvalidData)
		}
	}
	length := 25 - nbits

	var (
		state int64 = 3
		flag  int64
	)
	i, j, row := 0, 0, 0

	for i < size {
		v := -1
		if state>>8 != -3 {
			v = 31 ^ bits.LeadingZeros32(uint32((state>>8)+3))
		}

		cnt1, err := b.unary(length)
		if err != nil {
			return 0, err
		}
		var x int64
		if cnt1 >= length {
			r, err := b.readBits(nbits)
			if err != nil {
				return 0, err
			}
			x = int64(r)
		} else {
			pfx := v
			if pfx > 14 {
				pfx = 14
			}
			if pfx < 1 {
				return 0, fmt.Errorf("degenerate prefix width %d: %w", pfx, ErrInvalidData)
			}
			x = int64(cnt1) * (int64(1)<<uint(pfx) - 1)
			if s := int64(b.peekBits(pfx)); s <= 1 {
				if err := b.skipBits(pfx - 1); err != nil {
					return 0, err
				}
			} else {
				if err := b.skipBits(pfx); err != nil {
					return 0, err
				}
				x += s - 1
			}
		}

		x += flag
		var value int64
		if x != 0 {
			p := x & 1
			tmp := int64(c)*((x+1)>>1) + int64(c)>>1
			value = p + (tmp ^ -p)
		}

		dst[row+j] = int16(int32(value))
		i++
		j++
		if j == width {
			j = 0
			row += stride
		}
		state += int64(d)*x - (int64(d) * state >> 8)
		flag = 0

		if state*4 > 0xFF || i >= size {
			continue
		}
		if state < 0 {
			return 0, fmt.Errorf("entropy state went negative: %w", ErrInvalidData)
		}

		pfx := int((state+8)>>5) + clz32NonZero(state) - 24
		escMask := int64(1)<<uint(pfx) - 1
		cnt1, err = b.unary(8)
		if err != nil {
			return 0, err
		}
		var rlen int64
		if cnt1 < 8 {
			if v := int64(b.peekBits(pfx)); v > 1 {
				if err := b.skipBits(pfx); err != nil {
					return 0, err
				}
				rlen = v + escMask*int64(cnt1) - 1
			} else {
				if err := b.skipBits(pfx - 1); err != nil {
					return 0, err
				}
				rlen = escMask * int64(cnt1)
			}
		} else {
			wide, err := b.readBits(1)
			if err != nil {
				return 0, err
			}
			n := 8
			if wide != 0 {
				n = 16
			}
			raw, err := b.readBits(n)
			if err != nil {
				return 0, err
			}
			rlen = int64(raw) + 8*escMask
		}

		if rlen > 0xFFFF || int64(i)+rlen > int64(size) {
			return 0, fmt.Errorf("zero run %d exceeds limits (%d coefficients left): %w", rlen, size-i, ErrInvalidData)
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

// readHighpass decodes the 3*levels detail bands of one plane. Every band
// carries four signed parameter words and a magic separator ahead of its
// payload; the payload length is only known once the coder has consumed it.
func (d *Decoder) readHighpass(r *byteReader, plane int, dst []int16, stride int) error {
	for i := 0; i < numLevels*3; i++ {
		a := r.int32BE()
		bw := r.int32BE()
		cw := r.int32BE()
		dw := r.int32BE()

		band := &d.band[plane][i+1]

		magic := r.uint32BE()
		if magic != bandMagic {
			return fmt.Errorf("wrong magic 0x%08X for plane %d, band %d: %w", magic, plane, i, ErrInvalidData)
		}

		scale := a
		if int64(bw) >= abs64(int64(a)) {
			scale = bw
		}

		br := newBitReader(r.remaining())
		dest := dst[band.y*stride+band.x:]
		n, err := readHighCoeffs(&br, dest, band.size, cw, scale, dw, band.width, stride)
		if err != nil {
			return fmt.Errorf("highpass coefficients for plane %d, band %d: %w", plane, i, err)
		}
		r.skip(n)
	}

	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
