// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon encoding.
package gf256 // import "github.com/unixdj/qrenc/gf256"

import "strconv"

// A Field represents an instance of GF(256) defined by a specific
// polynomial.  Polynomials are slices of coefficients, highest degree
// first.
type Field struct {
	log [256]byte // log[0] is unused
	exp [512]byte // exp[i] == exp[i+255], no reduction needed in lookups
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only affects the Exp and Log operations.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}

	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.exp[510] = f.exp[0]
	f.exp[511] = f.exp[1]
	return &f
}

// nbit returns the number of significant bits in p.
func nbit(p int) uint {
	n := uint(0)
	for ; p > 0; p >>= 1 {
		n++
	}
	return n
}

// polyDiv divides the polynomial p by q and returns the remainder.
func polyDiv(p, q int) int {
	np := nbit(p)
	nq := nbit(q)
	for ; np >= nq; np-- {
		if p&(1<<(np-1)) != 0 {
			p ^= q << (np - nq)
		}
	}
	return p
}

// mul returns the product x*y mod poly, a GF(256) multiplication.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// reducible reports whether p is reducible.
func reducible(p int) bool {
	// Multiplying n-bit * n-bit produces (2n-1)-bit,
	// so if p is reducible, one of its factors must be
	// of np/2+1 bits or fewer.
	np := nbit(p)
	for q := 2; q < 1<<(np/2+1); q++ {
		if polyDiv(p, q) == 0 {
			return true
		}
	}
	return false
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-f.log[x]]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// PolyMul returns the product of polynomials p and q.
func (f *Field) PolyMul(p, q []byte) []byte {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	r := make([]byte, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		la := int(f.log[a])
		for j, b := range q {
			if b != 0 {
				r[i+j] ^= f.exp[la+int(f.log[b])]
			}
		}
	}
	return r
}

// PolyDivMod divides dividend by divisor using synthetic division and
// returns the quotient and the remainder.  The remainder always has
// len(divisor)-1 coefficients.  PolyDivMod panics if the leading
// coefficient of divisor is zero.
func (f *Field) PolyDivMod(dividend, divisor []byte) (quot, rem []byte) {
	if len(divisor) == 0 || divisor[0] == 0 {
		panic("gf256: division by zero polynomial")
	}
	nrem := len(divisor) - 1
	if len(dividend) < len(divisor) {
		rem = make([]byte, nrem)
		copy(rem[nrem-len(dividend):], dividend)
		return nil, rem
	}
	out := append([]byte(nil), dividend...)
	lead := 255 - int(f.log[divisor[0]])
	nq := len(dividend) - nrem
	for i := 0; i < nq; i++ {
		c := out[i]
		if c == 0 {
			continue
		}
		// factor = c / divisor[0]
		lf := (int(f.log[c]) + lead) % 255
		out[i] = f.exp[lf]
		for j, d := range divisor[1:] {
			if d != 0 {
				out[i+1+j] ^= f.exp[lf+int(f.log[d])]
			}
		}
	}
	return out[:nq], out[nq:]
}

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of error correction bytes.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte
}

// Gen returns the generator polynomial of degree e,
// the product of (x - α^i) for i in [0, e).
func (f *Field) Gen(e int) []byte {
	p := []byte{1}
	for i := 0; i < e; i++ {
		p = f.PolyMul(p, []byte{1, f.exp[i]})
	}
	return p
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, gen: f.Gen(c)}
}

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
// len(check) must equal the number of error correction bytes.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}
	p := make([]byte, len(data)+rs.c)
	copy(p, data)
	_, rem := rs.f.PolyDivMod(p, rs.gen)
	copy(check, rem)
}
