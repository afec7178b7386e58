// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrenc/gf256"
)

// A Block holds the data and check codewords of a Reed-Solomon block.
type Block struct {
	Data []byte
	ECC  []byte
}

// SplitBlocks splits data into group 1 and group 2 blocks for version
// v and level l and computes their check codewords.  The length of
// data must equal the data capacity.
func SplitBlocks(v Version, l Level, data []byte) ([]Block, BlockSpec, error) {
	spec, err := v.BlockSpec(l)
	if err != nil {
		return nil, spec, err
	}
	if nd := spec.DataCodewords(); len(data) != nd {
		return nil, spec, fmt.Errorf("%w: %d data codewords, "+
			"version %v-%v holds %d", ErrDataLength, len(data), v, l, nd)
	}
	rs := gf256.NewRSEncoder(Field, spec.ECPerBlock)
	blocks := make([]Block, 0, spec.Blocks())
	check := make([]byte, spec.Blocks()*spec.ECPerBlock)
	for _, g := range [2]Group{spec.Group1, spec.Group2} {
		for i := 0; i < g.Count; i++ {
			blk := Block{
				Data: data[:g.DataLen:g.DataLen],
				ECC:  check[:spec.ECPerBlock:spec.ECPerBlock],
			}
			rs.ECC(blk.Data, blk.ECC)
			blocks = append(blocks, blk)
			data = data[g.DataLen:]
			check = check[spec.ECPerBlock:]
		}
	}
	return blocks, spec, nil
}

// Interleave returns the final codeword sequence for data codewords of
// version v and level l: data codewords of all blocks interleaved
// column by column, followed by check codewords interleaved the same
// way.
func Interleave(v Version, l Level, data []byte) ([]byte, error) {
	blocks, spec, err := SplitBlocks(v, l, data)
	if err != nil {
		return nil, err
	}
	maxLen := max(spec.Group1.DataLen, spec.Group2.DataLen)
	dst := make([]byte, 0, spec.Total)
	for i := 0; i < maxLen; i++ {
		for _, b := range blocks {
			if i < len(b.Data) {
				dst = append(dst, b.Data[i])
			}
		}
	}
	for i := 0; i < spec.ECPerBlock; i++ {
		for _, b := range blocks {
			dst = append(dst, b.ECC[i])
		}
	}
	if len(dst) != spec.Total {
		panic("qr: internal error")
	}
	return dst, nil
}
