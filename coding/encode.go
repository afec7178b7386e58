// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"sync"
)

// A Code is a square module grid.
type Code struct {
	Bitmap  []byte  // 1 is dark, 0 is light, row by row
	Size    int     // number of modules on a side
	Version Version // QR code version
	Level   Level   // error correction level
	Mask    Mask    // chosen mask pattern
	Penalty int     // penalty score of the chosen mask
}

// Black reports whether the module at column x, row y is dark.
// Modules outside the grid are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Size+x] != 0
}

// Pre-built Plans, created the first time a version is used.  Plans
// are never modified afterwards and may be shared.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *Plan
}

// plan returns plans[v], creating it if needed.
func plan(v Version) (*Plan, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	pp := &plans[v]
	pp.once.Do(func() {
		pp.p, _ = NewPlan(v)
	})
	return pp.p, nil
}

// Build returns a QR code of version v and level l holding the data
// codewords, which must fill the data capacity exactly.
func Build(v Version, l Level, data []byte) (*Code, error) {
	p, err := plan(v)
	if err != nil {
		return nil, err
	}
	cw, err := Interleave(v, l, data)
	if err != nil {
		return nil, err
	}
	grid := p.Place(NewBitStream(cw))
	m, pen, bitmap := p.selectMask(l, grid, Penalty)
	return &Code{
		Bitmap:  bitmap,
		Size:    p.Size,
		Version: v,
		Level:   l,
		Mask:    m,
		Penalty: pen,
	}, nil
}

// selectMask applies each mask to a copy of grid, adds format and
// version information and returns the mask with the smallest penalty,
// the lowest one on a tie, with its penalty and grid.
func (p *Plan) selectMask(l Level, grid []byte,
	penalty func([]byte, int) int) (Mask, int, []byte) {
	siz := p.Size
	trial := make([]byte, len(grid))
	best := make([]byte, len(grid)) // best grid so far
	var bm Mask
	pen := 1 << 30 // largest penalty is < 1<<20
	for m := Mask(0); m < NumMasks; m++ {
		copy(trial, grid)
		m.Apply(trial, p.Map, siz)
		WriteFormat(trial, siz, l, m)
		WriteVersion(trial, siz, p.Version)
		if s := penalty(trial, siz); s < pen {
			best, pen, bm, trial = trial, s, m, best
		}
	}
	return bm, pen, best
}

// Encoder encodes a QR code of a fixed version and level.
type Encoder struct {
	v Version
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(v Version, l Level) (*Encoder, error) {
	if _, err := v.BlockSpec(l); err != nil {
		return nil, err
	}
	return &Encoder{v: v, l: l, b: NewBits(v)}, nil
}

// Write adds data to e as a byte mode segment.
func (e *Encoder) Write(data []byte) error {
	n := e.b.Len()
	if err := e.b.WriteBytes(data, e.v); err != nil {
		return err
	}
	if nd := e.v.DataCodewords(e.l); e.b.Len() > nd*8 {
		nbit := e.b.Len()
		e.b.Truncate(n)
		return fmt.Errorf("%w: %d bits do not fit into %d-bit "+
			"version %v-%v", ErrLongText, nbit, nd*8, e.v, e.l)
	}
	return nil
}

// Reset discards data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// Code returns a QR code containing data written to e.  e can be
// written to and used again.
func (e *Encoder) Code() (*Code, error) {
	b := e.b.Clone()
	b.PadTo(e.v.DataCodewords(e.l))
	return Build(e.v, e.l, b.Bytes())
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(data []byte) (*Code, error) {
	if err := e.Write(data); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes data as a single byte mode segment into a QR code
// with the given version and level.
func Encode(v Version, l Level, data []byte) (*Code, error) {
	e, err := NewEncoder(v, l)
	if err != nil {
		return nil, err
	}
	return e.Encode(data)
}
