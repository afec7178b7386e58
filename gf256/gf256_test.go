// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"bytes"
	"testing"
)

var qr = NewField(0x11d, 2)

func TestTables(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 255; i++ {
		x := qr.Exp(i)
		if x == 0 || seen[x] {
			t.Fatalf("Exp(%d) = %#x repeats", i, x)
		}
		seen[x] = true
		if l := qr.Log(x); l != i {
			t.Errorf("Log(Exp(%d)) = %d", i, l)
		}
	}
	if x := qr.Exp(8); x != 0x1d {
		t.Errorf("Exp(8) = %#x, want 0x1d", x)
	}
	if l := qr.Log(0); l != -1 {
		t.Errorf("Log(0) = %d, want -1", l)
	}
	for i := 0; i < 255; i++ {
		if qr.exp[i] != qr.exp[i+255] {
			t.Fatalf("exp[%d] != exp[%d]", i, i+255)
		}
	}
}

func TestMul(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			want := byte(mul(x, y, 0x11d))
			if got := qr.Mul(byte(x), byte(y)); got != want {
				t.Fatalf("Mul(%#x, %#x) = %#x, want %#x",
					x, y, got, want)
			}
		}
		if x != 0 {
			if p := qr.Mul(byte(x), qr.Inv(byte(x))); p != 1 {
				t.Errorf("%#x * Inv(%#x) = %#x", x, x, p)
			}
		}
	}
}

func TestNewFieldPanics(t *testing.T) {
	for _, c := range []struct{ poly, α int }{
		{0x11b, 2}, // AES polynomial: 2 is not a generator
		{0x100, 2}, // reducible
		{0xff, 2},  // too small
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewField(%#x, %d) did not panic",
						c.poly, c.α)
				}
			}()
			NewField(c.poly, c.α)
		}()
	}
	NewField(0x11b, 3) // valid
}

func TestPolyMul(t *testing.T) {
	// (x + 1)(x + 2) = x² + 3x + 2
	if p := qr.PolyMul([]byte{1, 1}, []byte{1, 2}); !bytes.Equal(p, []byte{1, 3, 2}) {
		t.Errorf("PolyMul = %v", p)
	}
	if p := qr.PolyMul(nil, []byte{1}); p != nil {
		t.Errorf("PolyMul(nil) = %v", p)
	}
}

func TestPolyDivMod(t *testing.T) {
	p := []byte{7, 0, 13, 200, 1}
	q := []byte{3, 9, 1}
	quot, rem := qr.PolyDivMod(p, q)
	if len(rem) != len(q)-1 || len(quot) != len(p)-len(q)+1 {
		t.Fatalf("lengths: quot %d rem %d", len(quot), len(rem))
	}
	// p == quot*q + rem
	back := qr.PolyMul(quot, q)
	for i, v := range rem {
		back[len(back)-len(rem)+i] ^= v
	}
	if !bytes.Equal(back, p) {
		t.Errorf("quot*q+rem = %v, want %v", back, p)
	}

	// short dividend is its own remainder
	_, rem = qr.PolyDivMod([]byte{5}, q)
	if !bytes.Equal(rem, []byte{0, 5}) {
		t.Errorf("short remainder = %v", rem)
	}
}

func TestGen(t *testing.T) {
	// Generator of degree 7 from ISO/IEC 18004 Annex A, in α exponents:
	// x⁷ + α⁸⁷x⁶ + α²²⁹x⁵ + α¹⁴⁶x⁴ + α¹⁴⁹x³ + α²³⁸x² + α¹⁰²x + α²¹
	exps := []int{0, 87, 229, 146, 149, 238, 102, 21}
	g := qr.Gen(7)
	for i, e := range exps {
		if g[i] != qr.Exp(e) {
			t.Errorf("gen[%d] = α^%d, want α^%d", i, qr.Log(g[i]), e)
		}
	}
}

func TestECC(t *testing.T) {
	// "HELLO WORLD" as version 1-M data codewords.
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17,
		236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	check := make([]byte, len(want))
	NewRSEncoder(qr, len(want)).ECC(data, check)
	if !bytes.Equal(check, want) {
		t.Errorf("ECC = %v, want %v", check, want)
	}

	// data followed by check bytes is divisible by the generator
	rs := NewRSEncoder(qr, 18)
	data = []byte("some test data for a reed solomon block")
	check = make([]byte, 18)
	rs.ECC(data, check)
	_, rem := qr.PolyDivMod(append(data, check...), rs.gen)
	for i, v := range rem {
		if v != 0 {
			t.Fatalf("syndrome remainder[%d] = %#x", i, v)
		}
	}
}

func BenchmarkECC(b *testing.B) {
	data := make([]byte, 118)
	check := make([]byte, 30)
	rs := NewRSEncoder(qr, 30)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		rs.ECC(data, check)
	}
}
