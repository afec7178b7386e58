// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Bits is an append-only bit sequence.  Values are written most
// significant bit first.  Unwritten bits of the last byte are zero.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.TotalCodewords())}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Len returns the number of bits written.
func (b *Bits) Len() int {
	return b.nbit
}

// Bytes returns the bits packed into codewords.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Bit returns bit i as 0 or 1.
func (b *Bits) Bit(i int) byte {
	return b.b[i>>3] >> (7 &^ i) & 1
}

func (b *Bits) setBit(i int, v byte) {
	m := byte(0x80) >> (i & 7)
	if v != 0 {
		b.b[i>>3] |= m
	} else {
		b.b[i>>3] &^= m
	}
}

// Truncate discards all but the first n bits.
func (b *Bits) Truncate(n int) {
	if n < 0 || n > b.nbit {
		panic("qr: bit range out of bounds")
	}
	b.b = b.b[:(n+7)>>3]
	if n&7 != 0 {
		b.b[len(b.b)-1] &^= 0xff >> (n & 7)
	}
	b.nbit = n
}

// Clone returns an independent copy of b.
func (b *Bits) Clone() *Bits {
	c := &Bits{b: make([]byte, len(b.b), cap(b.b)), nbit: b.nbit}
	copy(c.b, b.b)
	return c
}

// Write appends the nbit low bits of v, 0 <= nbit <= 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit <= 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// Replace overwrites the length bits starting at bit start with the
// nbit low bits of v, right-justified and padded on the left with
// zeros.  The field must have been written.
func (b *Bits) Replace(start, length int, v uint32, nbit int) {
	if start < 0 || nbit > length || start+length > b.nbit {
		panic("qr: bit range out of bounds")
	}
	for i := 0; i < length; i++ {
		var bit byte
		if j := length - 1 - i; j < nbit {
			bit = byte(v>>j) & 1
		}
		b.setBit(start+i, bit)
	}
}

// PadTo adds a terminator of up to 4 zero bits, zero pads b to a byte
// boundary and adds alternating pad codewords 0xec and 0x11 up to n
// bytes.  PadTo never removes bits; if b already holds n bytes or
// more, only the byte boundary padding applies.
func (b *Bits) PadTo(n int) {
	if t := min(n*8-b.nbit, 4); t > 0 {
		b.nbit += t
	}
	b.nbit = (b.nbit + 7) &^ 7
	for len(b.b) < b.nbit>>3 {
		b.b = append(b.b, 0)
	}
	for pad := byte(0xec); len(b.b) < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	b.nbit = len(b.b) * 8
}

// Byte mode indicator.
const byteMode = 0b0100

// WriteBytes appends a byte mode segment holding data for version v:
// the mode indicator, the character count and the data.
func (b *Bits) WriteBytes(data []byte, v Version) error {
	nc := v.CountBits()
	if len(data) >= 1<<nc {
		return fmt.Errorf("%w: %d bytes exceed %d-bit count",
			ErrLongText, len(data), nc)
	}
	b.Write(byteMode, 4)
	b.Write(uint32(len(data)), nc)
	// The header is 12 or 20 bits long, so data is never aligned.
	s := data
	for ; len(s) >= 4; s = s[4:] {
		b.Write(uint32(s[0])<<24|uint32(s[1])<<16|
			uint32(s[2])<<8|uint32(s[3]), 32)
	}
	for _, c := range s {
		b.Write(uint32(c), 8)
	}
	return nil
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s as 0 or 1, most significant bit
// of each byte first.  Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
