// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"reflect"
	"testing"
)

func TestBlockSpec(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		if n := v.TotalCodewords(); n != vtab[v].bytes {
			t.Errorf("version %v: %d codewords, table says %d",
				v, n, vtab[v].bytes)
		}
		for l := L; l <= H; l++ {
			s, err := v.BlockSpec(l)
			if err != nil {
				t.Fatalf("%v-%v: %v", v, l, err)
			}
			g1, g2 := s.Group1, s.Group2
			if sum := s.DataCodewords() + s.ECPerBlock*s.Blocks(); sum != s.Total {
				t.Errorf("%v-%v: %+v sums to %d", v, l, s, sum)
			}
			if s.DataCodewords() != v.DataCodewords(l) {
				t.Errorf("%v-%v: %d data codewords, want %d",
					v, l, s.DataCodewords(), v.DataCodewords(l))
			}
			if g1.Count == 0 || (g2.Count != 0 && g2.DataLen != g1.DataLen+1) {
				t.Errorf("%v-%v: bad groups %+v", v, l, s)
			}
			if g2.Count == 0 && g2.DataLen != 0 {
				t.Errorf("%v-%v: empty group 2 %+v", v, l, g2)
			}
		}
	}
}

func TestBlockSpecValues(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		l    Level
		want BlockSpec
	}{
		{1, M, BlockSpec{26, 10, Group{1, 16}, Group{}}},
		{5, Q, BlockSpec{134, 18, Group{2, 15}, Group{2, 16}}},
		{10, Q, BlockSpec{346, 24, Group{6, 19}, Group{2, 20}}},
		{40, H, BlockSpec{3706, 30, Group{20, 15}, Group{61, 16}}},
	} {
		s, err := tt.v.BlockSpec(tt.l)
		if err != nil || s != tt.want {
			t.Errorf("%v-%v: %+v, %v; want %+v", tt.v, tt.l, s, err, tt.want)
		}
	}
	if _, err := Version(0).BlockSpec(M); !errors.Is(err, ErrVersion) {
		t.Errorf("version 0: %v", err)
	}
	if _, err := Version(41).BlockSpec(M); !errors.Is(err, ErrVersion) {
		t.Errorf("version 41: %v", err)
	}
	if _, err := Version(1).BlockSpec(Level(4)); !errors.Is(err, ErrLevel) {
		t.Errorf("level 4: %v", err)
	}
}

func TestVersion(t *testing.T) {
	for _, tt := range []struct {
		v         Version
		size, raw int
		count     int
		align     []int
	}{
		{1, 21, 208, 8, nil},
		{2, 25, 359, 8, []int{6, 18}},
		{7, 45, 1568, 8, []int{6, 22, 38}},
		{9, 53, 2336, 8, []int{6, 26, 46}},
		{10, 57, 2768, 16, []int{6, 28, 50}},
		{32, 145, 19723, 16, []int{6, 34, 60, 86, 112, 138}},
		{40, 177, 29648, 16, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		if n := tt.v.Size(); n != tt.size {
			t.Errorf("%v: size %d, want %d", tt.v, n, tt.size)
		}
		if n := tt.v.RawModules(); n != tt.raw {
			t.Errorf("%v: %d raw modules, want %d", tt.v, n, tt.raw)
		}
		if n := tt.v.CountBits(); n != tt.count {
			t.Errorf("%v: %d count bits, want %d", tt.v, n, tt.count)
		}
		if a := tt.v.Alignment(); !reflect.DeepEqual(a, tt.align) {
			t.Errorf("%v: alignment %v, want %v", tt.v, a, tt.align)
		}
	}
}

func TestLevel(t *testing.T) {
	for l, want := range []string{"L", "M", "Q", "H"} {
		if s := Level(l).String(); s != want {
			t.Errorf("Level(%d) = %q, want %q", l, s, want)
		}
	}
	if s := Level(7).String(); s != "7" {
		t.Errorf("Level(7) = %q", s)
	}
	for l, want := range []int{1, 0, 3, 2} {
		if c := Level(l).formatCode(); c != want {
			t.Errorf("%v: format code %d, want %d", Level(l), c, want)
		}
	}
}
