package pixlet

import (
	"errors"
	"testing"
)

func TestBitReaderReadBits(t *testing.T) {
	b := newBitReader([]byte{0b10110100, 0b01100000})

	if v, err := b.readBits(3); err != nil || v != 0b101 {
		t.Fatalf("readBits(3) = %d, %v, want 5", v, err)
	}
	if v, err := b.readBits(5); err != nil || v != 0b10100 {
		t.Fatalf("readBits(5) = %d, %v, want 20", v, err)
	}
	if got := b.bitsCount(); got != 8 {
		t.Fatalf("bitsCount = %d, want 8", got)
	}
	if v, err := b.readBits(8); err != nil || v != 0b01100000 {
		t.Fatalf("readBits(8) = %d, %v, want 96", v, err)
	}
	if _, err := b.readBits(1); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("readBits past end: err = %v, want ErrInvalidData", err)
	}
}

func TestBitReaderPeekIsZeroPadded(t *testing.T) {
	b := newBitReader([]byte{0xFF})
	if err := b.skipBits(4); err != nil {
		t.Fatal(err)
	}
	// 4 real bits left; the rest of the peek window reads as zero.
	if v := b.peekBits(8); v != 0xF0 {
		t.Fatalf("peekBits(8) = %#x, want 0xF0", v)
	}
	if got := b.bitsCount(); got != 4 {
		t.Fatalf("peek moved the cursor to %d", got)
	}
}

func TestBitReaderUnary(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		max      int
		want     int
		wantBits int
	}{
		{"terminated", []byte{0b11100000}, 8, 3, 4},
		{"immediate zero", []byte{0b00000000}, 8, 0, 1},
		{"capped without terminator", []byte{0b11111111, 0b11000000}, 8, 8, 8},
		{"cap above run", []byte{0b11101111}, 24, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBitReader(tt.data)
			got, err := b.unary(tt.max)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("unary = %d, want %d", got, tt.want)
			}
			if b.bitsCount() != tt.wantBits {
				t.Errorf("consumed %d bits, want %d", b.bitsCount(), tt.wantBits)
			}
		})
	}
}

func TestBitReaderUnaryExhausted(t *testing.T) {
	b := newBitReader([]byte{0xFF})
	if _, err := b.unary(16); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestBitReaderAlign(t *testing.T) {
	b := newBitReader([]byte{0xAA, 0xBB, 0xCC})
	if _, err := b.readBits(3); err != nil {
		t.Fatal(err)
	}
	b.align()
	if got := b.bytesConsumed(); got != 1 {
		t.Fatalf("bytesConsumed = %d, want 1", got)
	}
	b.align()
	if got := b.bytesConsumed(); got != 1 {
		t.Fatalf("align is not idempotent: %d bytes", got)
	}
}
