// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrenc encodes byte strings as QR codes.

Data is encoded as a single byte mode segment into the smallest QR
code version that holds it at the requested error correction level,
using the mask pattern with the lowest penalty score.  Text is
converted to ISO 8859-1 first.
*/
package qrenc // import "github.com/unixdj/qrenc"

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/unixdj/qrenc/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

// DefaultLevel is the level to use absent other requirements.
const DefaultLevel = M

func (l Level) String() string { return coding.Level(l).String() }

// ParseLevel returns the level named by s, one of "L", "M", "Q", "H"
// in either case.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		if i := strings.IndexByte("lmqhLMQH", s[0]); i >= 0 {
			return Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", coding.ErrLevel, s)
}

var (
	ErrLongText     = coding.ErrLongText
	ErrNotEncodable = errors.New("qr: text not representable in ISO 8859-1")
)

// Encode returns an encoding of text at the given error correction
// level.  text is converted from UTF-8 to ISO 8859-1.
func Encode(text string, level Level) (*Code, error) {
	b, err := Latin1(text)
	if err != nil {
		return nil, err
	}
	return EncodeBytes(b, level)
}

// Latin1 converts text from UTF-8 to ISO 8859-1.
func Latin1(text string) ([]byte, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEncodable, err)
	}
	return b, nil
}

// EncodeBytes returns an encoding of data at the given error
// correction level in the smallest version that holds it.
func EncodeBytes(data []byte, level Level) (*Code, error) {
	l := coding.Level(level)
	if !l.IsValid() {
		return nil, coding.ErrLevel
	}
	v, cw, err := selectVersion(data, l)
	if err != nil {
		return nil, err
	}
	cc, err := coding.Build(v, l, cw)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}

// EncodeVersion returns an encoding of data at the given version and
// error correction level.
func EncodeVersion(data []byte, v coding.Version, level Level) (*Code, error) {
	cc, err := coding.Encode(v, coding.Level(level), data)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}

// MaxBytes returns the number of bytes that fit into a version 40 QR
// code at level l, or 0 for an invalid level.
func MaxBytes(l Level) int {
	if !coding.Level(l).IsValid() {
		return 0
	}
	// 4 bit mode indicator and 16 bit count, rounded up
	return coding.MaxVersion.DataCodewords(coding.Level(l)) - 3
}

// selectVersion returns the smallest version holding data at level l
// and the data codewords, padded to its capacity.
func selectVersion(data []byte, l coding.Level) (coding.Version, []byte, error) {
	if n := MaxBytes(Level(l)); len(data) > n {
		return 0, nil, fmt.Errorf("%w: %d bytes, level %v holds %d",
			ErrLongText, len(data), l, n)
	}
	// Header and data, rebuilt when the count field width changes.
	var base *coding.Bits
	nc := 0
	for v := coding.MinVersion; v <= coding.MaxVersion; v++ {
		if c := v.CountBits(); c != nc {
			nc = c
			base = coding.NewBits(v)
			if base.WriteBytes(data, v) != nil {
				base = nil // count field too narrow
			}
		}
		if base == nil {
			continue
		}
		nd := v.DataCodewords(l)
		b := base.Clone()
		b.PadTo(nd)
		if cw := b.Bytes(); len(cw) == nd {
			return v, cw, nil
		}
	}
	panic("qr: internal error")
}

// A Code is a square module grid.
type Code struct {
	Size    int            // number of modules on a side
	Modules []bool         // true is dark, row by row
	Version coding.Version // QR code version
	Level   Level          // error correction level
	Mask    coding.Mask    // mask pattern
	Penalty int            // penalty score of the mask
}

func newCode(cc *coding.Code) *Code {
	c := &Code{
		Size:    cc.Size,
		Modules: make([]bool, len(cc.Bitmap)),
		Version: cc.Version,
		Level:   Level(cc.Level),
		Mask:    cc.Mask,
		Penalty: cc.Penalty,
	}
	for i, b := range cc.Bitmap {
		c.Modules[i] = b != 0
	}
	return c
}

// Dark reports whether the module at row, col is dark.  Modules
// outside the grid are light.
func (c *Code) Dark(row, col int) bool {
	return 0 <= row && row < c.Size && 0 <= col && col < c.Size &&
		c.Modules[row*c.Size+col]
}

// Black returns true if the module at (x,y) is dark.
func (c *Code) Black(x, y int) bool { return c.Dark(y, x) }

// Rows returns the grid as rows sharing storage with c.Modules.
func (c *Code) Rows() [][]bool {
	rows := make([][]bool, c.Size)
	for i := range rows {
		rows[i] = c.Modules[i*c.Size : (i+1)*c.Size : (i+1)*c.Size]
	}
	return rows
}

// String returns the code drawn with block characters, two rows per
// line, light modules shown as blocks for dark terminals, with a quiet
// zone of 4 modules.
func (c *Code) String() string {
	const border = 4
	var b strings.Builder
	for y := -border; y < c.Size+border; y += 2 {
		for x := -border; x < c.Size+border; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
