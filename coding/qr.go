// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, bit packing, Reed-Solomon blocks, function pattern layout,
// module placement, masking and format information.
package coding // import "github.com/unixdj/qrenc/coding"

import (
	"errors"
	"strconv"

	"github.com/unixdj/qrenc/gf256"
)

var (
	ErrLevel      = errors.New("qr: invalid level")
	ErrVersion    = errors.New("qr: invalid version")
	ErrDataLength = errors.New("qr: wrong data length")
	ErrLongText   = errors.New("qr: text too long")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40:
// the larger the version, the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is in the range 1 to 40.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// Size returns the number of modules on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// CountBits returns the length of the byte mode character count field.
func (v Version) CountBits() int {
	if v <= 9 {
		return 8
	}
	return 16
}

// RawModules returns the number of modules available for data and
// check codewords, including remainder bits.
func (v Version) RawModules() int {
	n := (16*int(v)+128)*int(v) + 64
	if v >= 2 {
		na := int(v)/7 + 2 // alignment patterns per row
		n -= (25*na-10)*na - 55
		if v >= 7 {
			n -= 36 // version information
		}
	}
	return n
}

// TotalCodewords returns the number of data and check codewords.
func (v Version) TotalCodewords() int { return v.RawModules() / 8 }

// DataCodewords returns the number of data codewords that can be
// stored in a QR code with the given version and level.
func (v Version) DataCodewords(l Level) int {
	lev := vtab[v].level[l]
	return v.TotalCodewords() - lev.nblock*lev.check
}

// Alignment returns the row and column coordinates of alignment
// pattern centres.  Version 1 has none.
func (v Version) Alignment() []int {
	vt := &vtab[v]
	if vt.apos == 0 {
		return nil
	}
	pos := []int{6}
	last := v.Size() - 7
	for x := vt.apos; x <= last; x += vt.astride {
		pos = append(pos, x)
		if vt.astride == 0 {
			break
		}
	}
	return pos
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q, H.
func (l Level) IsValid() bool { return L <= l && l <= H }

// formatCode returns the 2 bit level indicator: L=01, M=00, Q=11, H=10.
func (l Level) formatCode() int { return int(l) ^ 1 }

// A Group describes blocks of equal length.
type Group struct {
	Count   int // number of blocks
	DataLen int // data codewords per block
}

// A BlockSpec describes the division of codewords into Reed-Solomon
// blocks for a version and level.  Group1 holds the short blocks,
// Group2 the blocks one codeword longer.  An empty group is {0, 0}.
type BlockSpec struct {
	Total      int // data and check codewords
	ECPerBlock int // check codewords per block
	Group1     Group
	Group2     Group
}

// Blocks returns the number of blocks.
func (s BlockSpec) Blocks() int { return s.Group1.Count + s.Group2.Count }

// DataCodewords returns the number of data codewords.
func (s BlockSpec) DataCodewords() int {
	return s.Group1.Count*s.Group1.DataLen + s.Group2.Count*s.Group2.DataLen
}

// BlockSpec returns the block division for version v and level l.
func (v Version) BlockSpec(l Level) (BlockSpec, error) {
	if !v.IsValid() {
		return BlockSpec{}, ErrVersion
	}
	if !l.IsValid() {
		return BlockSpec{}, ErrLevel
	}
	lev := vtab[v].level[l]
	s := BlockSpec{
		Total:      v.TotalCodewords(),
		ECPerBlock: lev.check,
	}
	nd := s.Total - lev.nblock*lev.check
	long := nd % lev.nblock
	short := lev.nblock - long
	n := nd / lev.nblock
	if short > 0 {
		s.Group1 = Group{short, n}
	}
	if long > 0 {
		s.Group2 = Group{long, n + 1}
	}
	return s, nil
}

// A version describes metadata associated with a version.
type version struct {
	apos    int // second alignment pattern coordinate, 0 for none
	astride int // distance between further coordinates, 0 for none
	bytes   int // total codewords, as published
	level   [4]level
}

type level struct {
	nblock int // number of blocks
	check  int // check codewords per block
}
