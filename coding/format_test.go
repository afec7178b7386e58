// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "testing"

func TestFormatBits(t *testing.T) {
	want := [4][NumMasks]uint16{
		L: {0x77c4, 0x72f3, 0x7daa, 0x789d, 0x662f, 0x6318, 0x6c41, 0x6976},
		M: {0x5412, 0x5125, 0x5e7c, 0x5b4b, 0x45f9, 0x40ce, 0x4f97, 0x4aa0},
		Q: {0x355f, 0x3068, 0x3f31, 0x3a06, 0x24b4, 0x2183, 0x2eda, 0x2bed},
		H: {0x1689, 0x13be, 0x1ce7, 0x19d0, 0x0762, 0x0255, 0x0d0c, 0x083b},
	}
	for l := L; l <= H; l++ {
		for m := Mask(0); m < NumMasks; m++ {
			if fb := FormatBits(l, m); fb != want[l][m] {
				t.Errorf("%v mask %v: %#04x, want %#04x",
					l, m, fb, want[l][m])
			}
		}
	}
}

func TestVersionBits(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want uint32
	}{
		{7, 0x07c94},
		{8, 0x085bc},
		{21, 0x15683},
		{40, 0x28c69},
	} {
		if vb := VersionBits(tt.v); vb != tt.want {
			t.Errorf("version %v: %#05x, want %#05x", tt.v, vb, tt.want)
		}
	}
}

func TestReadFormat(t *testing.T) {
	for _, v := range []Version{1, 7, 40} {
		siz := v.Size()
		grid := make([]byte, siz*siz)
		for l := L; l <= H; l++ {
			for m := Mask(0); m < NumMasks; m++ {
				WriteFormat(grid, siz, l, m)
				gl, gm, ok := ReadFormat(grid, siz)
				if !ok || gl != l || gm != m {
					t.Errorf("version %v: wrote %v/%v, read %v/%v %v",
						v, l, m, gl, gm, ok)
				}
			}
		}
		grid[8*siz+siz-1] ^= 1 // bit 0 of the second copy
		if _, _, ok := ReadFormat(grid, siz); ok {
			t.Errorf("version %v: mismatched copies accepted", v)
		}
		grid[0*siz+8] ^= 1 // bit 0 of the first copy
		if _, _, ok := ReadFormat(grid, siz); ok {
			t.Errorf("version %v: bad code word accepted", v)
		}
	}
}

func TestWriteVersion(t *testing.T) {
	siz := Version(7).Size()
	grid := make([]byte, siz*siz)
	WriteVersion(grid, siz, 7)
	vb := VersionBits(7)
	for i := 0; i < 18; i++ {
		want := byte(vb>>i) & 1
		r, c := i/3, siz-11+i%3
		if grid[r*siz+c] != want || grid[c*siz+r] != want {
			t.Errorf("bit %d: %d and %d, want %d", i,
				grid[r*siz+c], grid[c*siz+r], want)
		}
	}

	siz = Version(6).Size()
	grid = make([]byte, siz*siz)
	WriteVersion(grid, siz, 6)
	for i, b := range grid {
		if b != 0 {
			t.Fatalf("version 6: module %d written", i)
		}
	}
}

// Format and version information goes only to the reserved modules.
func TestFormatReserved(t *testing.T) {
	const blank = 9
	for _, v := range []Version{1, 6, 7, 40} {
		p, _ := NewPlan(v)
		grid := make([]byte, len(p.Map))
		for i := range grid {
			grid[i] = blank
		}
		WriteFormat(grid, p.Size, H, 7)
		WriteVersion(grid, p.Size, v)
		nset := 0
		for i, b := range grid {
			if b == blank {
				continue
			}
			nset++
			if !p.Map[i] || p.Pattern[i] != Light {
				t.Errorf("version %v: (%d, %d) is not reserved",
					v, i/p.Size, i%p.Size)
			}
		}
		want := 30
		if v >= 7 {
			want += 36
		}
		if nset != want {
			t.Errorf("version %v: %d modules written, want %d", v, nset, want)
		}
	}
}
