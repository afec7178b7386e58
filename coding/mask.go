// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Mask is a QR data mask pattern, 0 to 7.
type Mask int

// NumMasks is the number of mask patterns.
const NumMasks = 8

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [NumMasks]func(r, c int) bool{
	func(r, c int) bool { return (r+c)%2 == 0 },
	func(r, c int) bool { return r%2 == 0 },
	func(r, c int) bool { return c%3 == 0 },
	func(r, c int) bool { return (r+c)%3 == 0 },
	func(r, c int) bool { return (r/2+c/3)%2 == 0 },
	func(r, c int) bool { return r*c%2+r*c%3 == 0 },
	func(r, c int) bool { return (r*c%2+r*c%3)%2 == 0 },
	func(r, c int) bool { return ((r+c)%2+r*c%3)%2 == 0 },
}

func (m Mask) String() string { return strconv.Itoa(int(m)) }

// IsValid reports whether m is in the range 0 to 7.
func (m Mask) IsValid() bool { return 0 <= m && m < NumMasks }

// Invert reports whether the module at row r, column c is inverted
// by m.
func (m Mask) Invert(r, c int) bool { return maskFunc[m](r, c) }

// Apply inverts the modules of grid selected by m, except function
// modules marked in fixed.  The grid has size modules on a side.
func (m Mask) Apply(grid []byte, fixed []bool, size int) {
	f := maskFunc[m]
	for r := 0; r < size; r++ {
		row := grid[r*size : (r+1)*size]
		fix := fixed[r*size : (r+1)*size]
		for c := range row {
			if !fix[c] && f(r, c) {
				row[c] ^= 1
			}
		}
	}
}

// Total penalty is the sum of penalties for runs and boxes of
// same-colour modules, finder-like patterns and colour balance.
//
//   - RunP: for non-overlapping runs of n modules, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for 1011101 with 4 light modules on both sides,
//     which may extend past the edge -> 40
//   - BalP: for n% of dark modules -> 10*floor(abs(n-50)/5)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
const (
	MinRun    = 5  // RunP:  minimum run length
	RunPDelta = -2 // RunP:  add to run length
	BoxPP     = 3  // BoxP:  points per box
	FindPP    = 40 // FindP: points per pattern
	FindQuiet = 4  // FindP: light modules on either side
	BalPP     = 10 // BalP:  10 points
	BalPStep  = 5  //        for every 5% away from 50%
)

// finder is the 1:1:3:1:1 position box cross-section.
var finder = [7]byte{1, 0, 1, 1, 1, 0, 1}

// Penalty returns the penalty score of a grid of 0 and 1 modules with
// size modules on a side.  Lower is better.
func Penalty(grid []byte, size int) int {
	return runPenalty(grid, size) + boxPenalty(grid, size) +
		finderPenalty(grid, size) + balancePenalty(grid)
}

// line returns an accessor for row i (col false) or column i (col true).
func line(grid []byte, size, i int, col bool) func(int) byte {
	if col {
		return func(j int) byte { return grid[j*size+i] }
	}
	row := grid[i*size : (i+1)*size]
	return func(j int) byte { return row[j] }
}

func runPenalty(grid []byte, size int) int {
	p := 0
	for _, col := range [2]bool{false, true} {
		for i := 0; i < size; i++ {
			at := line(grid, size, i, col)
			r := 1
			for j := 1; j < size; j++ {
				if at(j) == at(j-1) {
					r++
					continue
				}
				if r >= MinRun {
					p += r + RunPDelta
				}
				r = 1
			}
			if r >= MinRun {
				p += r + RunPDelta
			}
		}
	}
	return p
}

func boxPenalty(grid []byte, size int) int {
	p := 0
	for r := 0; r+1 < size; r++ {
		top, bot := grid[r*size:(r+1)*size], grid[(r+1)*size:(r+2)*size]
		for c := 0; c+1 < size; c++ {
			b := top[c]
			if top[c+1] == b && bot[c] == b && bot[c+1] == b {
				p += BoxPP
			}
		}
	}
	return p
}

func finderPenalty(grid []byte, size int) int {
	p := 0
	for _, col := range [2]bool{false, true} {
		for i := 0; i < size; i++ {
			at := line(grid, size, i, col)
		Scan:
			for j := 0; j+len(finder) <= size; j++ {
				for k, b := range finder {
					if at(j+k) != b {
						continue Scan
					}
				}
				for k := max(0, j-FindQuiet); k < j; k++ {
					if at(k) != Light {
						continue Scan
					}
				}
				end := j + len(finder)
				for k := end; k < min(size, end+FindQuiet); k++ {
					if at(k) != Light {
						continue Scan
					}
				}
				p += FindPP
			}
		}
	}
	return p
}

func balancePenalty(grid []byte) int {
	dark := 0
	for _, b := range grid {
		dark += int(b)
	}
	return abs(dark*100/len(grid)-50) / BalPStep * BalPP
}
