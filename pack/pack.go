/*
Copyright (C) 2023  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package pack is the filter-compact and gather-flatten family of
// spec 4.F: pack, nc_pack, pack_index, flatten and map_tokens.
package pack

import (
	"fmt"
	"unsafe"

	"github.com/docker/go-units"

	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/iter"
	"github.com/launix-de/parlaygo/seq"
)

// packLogThreshold is the output size above which Pack logs how much
// scratch space it allocated, the same diagnostic sortpkg's sample sort
// prints for its scratch buffer.
const packLogThreshold = 1 << 20

func logPackAlloc[T any](kept int) {
	if kept < packLogThreshold {
		return
	}
	var zero T
	fmt.Println("pack: allocating output buffer of", units.HumanSize(float64(kept)*float64(unsafe.Sizeof(zero))))
}

// blockSize is the block width pack counts and re-scatters at: ten times
// the scan/reduce floor block size.
const blockSize = 10 * seq.BaseBlockSize

func packBounds(n int) (bs, numBlocks int) {
	bs = blockSize
	if bs > n {
		bs = n
	}
	if bs < 1 {
		bs = 1
	}
	numBlocks = (n + bs - 1) / bs
	return
}

func packOffsets(n int, bs, numBlocks int, flags []bool) []int {
	counts := make([]int, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			s, e := bi*bs, min(n, (bi+1)*bs)
			c := 0
			for i := s; i < e; i++ {
				if flags[i] {
					c++
				}
			}
			counts[bi] = c
		}
	})
	offsets := make([]int, numBlocks+1)
	for bi := 0; bi < numBlocks; bi++ {
		offsets[bi+1] = offsets[bi] + counts[bi]
	}
	return offsets
}

// Pack returns the order-preserving subsequence of a whose corresponding
// flags entry is true: block the input, count trues per block in
// parallel, exclusive-scan the counts to per-block output offsets,
// allocate the result, then re-scan each block writing directly into its
// slot of the output through the range-indirection iterator.
func Pack[T any](a []T, flags []bool) []T {
	n := len(a)
	if n == 0 {
		return nil
	}
	bs, numBlocks := packBounds(n)
	offsets := packOffsets(n, bs, numBlocks, flags)
	logPackAlloc[T](offsets[numBlocks])
	out := make([]T, offsets[numBlocks])
	chunks := iter.IndChunksMut(out, iter.Explicit(offsets[:numBlocks]))
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			s, e := bi*bs, min(n, (bi+1)*bs)
			dst := chunks.At(bi)
			k := 0
			for i := s; i < e; i++ {
				if flags[i] {
					dst[k] = a[i]
					k++
				}
			}
		}
	})
	return out
}

// NCPack mirrors Pack's shape but builds each kept output element with a
// constructor closure instead of copying from an existing slice; it is
// the variant to use when T shouldn't (or can't cheaply) be copied ahead
// of time. Go's assignment semantics make this equivalent to Pack for any
// ordinary T, but the two-argument contract (destination pointer, source
// index) keeps parity with the write-by-pointer shape nc_pack exposes.
func NCPack[T any](n int, flags []bool, construct func(dst *T, srcIndex int)) []T {
	if n == 0 {
		return nil
	}
	bs, numBlocks := packBounds(n)
	offsets := packOffsets(n, bs, numBlocks, flags)
	out := make([]T, offsets[numBlocks])
	chunks := iter.IndChunksMut(out, iter.Explicit(offsets[:numBlocks]))
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			s, e := bi*bs, min(n, (bi+1)*bs)
			dst := chunks.At(bi)
			k := 0
			for i := s; i < e; i++ {
				if flags[i] {
					construct(&dst[k], i)
					k++
				}
			}
		}
	})
	return out
}

// PackIndex returns the indices where flags is true, in order: the same
// shape as Pack with an identity input i -> i.
func PackIndex(flags []bool) []int {
	return NCPack(len(flags), flags, func(dst *int, i int) { *dst = i })
}
