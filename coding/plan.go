// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Module values in a Plan pattern and in grids derived from it.
const (
	Light byte = 0
	Dark  byte = 1
	Unset byte = 2 // data module not yet placed
)

// A Plan describes the function patterns of a QR code with a specific
// version: position and alignment boxes, timing, reserved format and
// version areas and the dark module.  A Plan is read-only once built.
type Plan struct {
	Version Version // QR code version
	Size    int     // number of modules on a side

	Map     []bool // true for function modules, row by row
	Pattern []byte // Light, Dark or Unset, row by row
}

// NewPlan returns a Plan for a QR code with the given version.
func NewPlan(v Version) (*Plan, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	siz := v.Size()
	p := &Plan{
		Version: v,
		Size:    siz,
		Map:     make([]bool, siz*siz),
		Pattern: make([]byte, siz*siz),
	}
	for i := range p.Pattern {
		p.Pattern[i] = Unset
	}

	// Position boxes with separators.
	p.positionBox(0, 0)
	p.positionBox(0, siz-7)
	p.positionBox(siz-7, 0)

	// Timing strips, where not taken by position boxes.
	for i := 0; i < siz; i++ {
		b := Light
		if i&1 == 0 {
			b = Dark
		}
		if !p.Map[6*siz+i] {
			p.set(6, i, b)
		}
		if !p.Map[i*siz+6] {
			p.set(i, 6, b)
		}
	}

	// Alignment boxes, except where they would overlap position
	// boxes.  Those on the timing strips agree with them.
	pos := v.Alignment()
	for _, r := range pos {
		for _, c := range pos {
			if r <= 8 && c <= 8 || r <= 8 && c >= siz-9 ||
				r >= siz-9 && c <= 8 {
				continue
			}
			p.alignBox(r, c)
		}
	}

	// Format areas: 9+8 modules around the top left box, 8 below the
	// top right box and 7 right of the bottom left box.
	for i := 0; i <= 8; i++ {
		p.reserve(8, i)
		p.reserve(i, 8)
	}
	for i := 0; i < 8; i++ {
		p.reserve(8, siz-1-i)
	}
	for i := 0; i < 7; i++ {
		p.reserve(siz-1-i, 8)
	}

	// Version areas: 6x3 above the bottom left box and 3x6 left of
	// the top right one.
	if v >= 7 {
		for i := 0; i < 18; i++ {
			p.set(i/3, siz-11+i%3, Light)
			p.set(siz-11+i%3, i/3, Light)
		}
	}

	// One lonely dark module.
	p.set(siz-8, 8, Dark)
	return p, nil
}

func (p *Plan) set(r, c int, b byte) {
	i := r*p.Size + c
	p.Map[i] = true
	p.Pattern[i] = b
}

// reserve marks a light function module unless already taken.
func (p *Plan) reserve(r, c int) {
	if !p.Map[r*p.Size+c] {
		p.set(r, c, Light)
	}
}

// positionBox draws a position box at upper left r, c with its
// separator, clipped to the symbol.
func (p *Plan) positionBox(r, c int) {
	for dr := -1; dr <= 7; dr++ {
		for dc := -1; dc <= 7; dc++ {
			y, x := r+dr, c+dc
			if y < 0 || y >= p.Size || x < 0 || x >= p.Size {
				continue
			}
			// Rings 0 and 1 form the 3x3 core, 3 the outline,
			// 4 the separator.
			b := Dark
			if d := max(abs(dr-3), abs(dc-3)); d == 2 || d == 4 {
				b = Light
			}
			p.set(y, x, b)
		}
	}
}

// alignBox draws an alignment box centred at r, c.
func (p *Plan) alignBox(r, c int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			b := Dark
			if max(abs(dr), abs(dc)) == 1 {
				b = Light
			}
			p.set(r+dr, c+dc, b)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DataModules returns the number of modules left for codewords and
// remainder bits.
func (p *Plan) DataModules() int {
	n := 0
	for _, fixed := range p.Map {
		if !fixed {
			n++
		}
	}
	return n
}

// Place returns a new grid with function modules from the plan and
// bits from s placed in zigzag scan order: pairs of columns from the
// right, skipping the vertical timing strip, alternately upwards and
// downwards, right module before left.  Modules left after s is
// exhausted are light.
func (p *Plan) Place(s BitStream) []byte {
	siz := p.Size
	grid := make([]byte, len(p.Pattern))
	copy(grid, p.Pattern)
	up := true
	for x := siz - 1; x >= 1; x -= 2 {
		if x == 6 { // vertical timing strip
			x--
		}
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for _, c := range [2]int{x, x - 1} {
				if off := y*siz + c; grid[off] == Unset {
					grid[off] = s.Next()
				}
			}
		}
		up = !up
	}
	return grid
}
