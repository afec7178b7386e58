// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

const (
	formatPoly = 0x537  // BCH(15,5) generator
	formatMask = 0x5412 // XOR mask for format information
	versPoly   = 0x1f25 // BCH(18,6) generator
)

// bch returns v with the remainder of v<<k divided by poly appended.
// poly has k+1 significant bits.
func bch(v uint32, k int, poly uint32) uint32 {
	rem := v << k
	for i := 31; i >= k; i-- {
		if rem>>i&1 != 0 {
			rem ^= poly << (i - k)
		}
	}
	return v<<k | rem
}

// FormatBits returns the 15 bit masked format information for level l
// and mask m.
func FormatBits(l Level, m Mask) uint16 {
	return uint16(bch(uint32(l.formatCode()<<3|int(m)), 10, formatPoly) ^
		formatMask)
}

// VersionBits returns the 18 bit version information for version v.
// Only versions 7 and up carry it.
func VersionBits(v Version) uint32 {
	return bch(uint32(v), 12, versPoly)
}

// formatPos returns the positions of format bit i in both copies.
func formatPos(size, i int) (r1, c1, r2, c2 int) {
	switch {
	case i < 6:
		r1, c1 = i, 8
	case i < 8:
		r1, c1 = i+1, 8
	case i == 8:
		r1, c1 = 8, 7
	default:
		r1, c1 = 8, 14-i
	}
	if i < 8 {
		r2, c2 = 8, size-1-i
	} else {
		r2, c2 = size-15+i, 8
	}
	return
}

// WriteFormat writes both copies of the format information for level
// l and mask m into grid with size modules on a side.
func WriteFormat(grid []byte, size int, l Level, m Mask) {
	fb := FormatBits(l, m)
	for i := 0; i < 15; i++ {
		b := byte(fb>>i) & 1
		r1, c1, r2, c2 := formatPos(size, i)
		grid[r1*size+c1] = b
		grid[r2*size+c2] = b
	}
}

// ReadFormat decodes the format information in grid.  It reports
// false if the copies differ or do not form a valid code word.
func ReadFormat(grid []byte, size int) (Level, Mask, bool) {
	var fb1, fb2 uint16
	for i := 0; i < 15; i++ {
		r1, c1, r2, c2 := formatPos(size, i)
		fb1 |= uint16(grid[r1*size+c1]&1) << i
		fb2 |= uint16(grid[r2*size+c2]&1) << i
	}
	if fb1 != fb2 {
		return 0, 0, false
	}
	data := (fb1 ^ formatMask) >> 10
	l, m := Level(data>>3^1), Mask(data&7)
	if FormatBits(l, m) != fb1 {
		return 0, 0, false
	}
	return l, m, true
}

// WriteVersion writes both copies of the version information into grid
// with size modules on a side: bit i goes to row i/3, column
// size-11+i%3 and to the transposed position.  Versions below 7 have
// none.
func WriteVersion(grid []byte, size int, v Version) {
	if v < 7 {
		return
	}
	vb := VersionBits(v)
	for i := 0; i < 18; i++ {
		b := byte(vb>>i) & 1
		a, c := i/3, size-11+i%3
		grid[a*size+c] = b
		grid[c*size+a] = b
	}
}
