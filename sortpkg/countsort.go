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
package sortpkg

import (
	"unsafe"

	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/transpose"
)

// countSortParallelThreshold is the element count below which CountSort
// runs its serial backward-scatter pass instead of splitting into blocks.
const countSortParallelThreshold = 8192

// CountSort buckets a into numBuckets groups keyed by keys[i] (every key
// must be in [0,numBuckets)), writing the result into out and returning
// the numBuckets+1 bucket offsets. It is stable: equal keys keep their
// relative order. Below countSortParallelThreshold, or with a
// single-threaded engine, it runs a single backward scatter pass;
// otherwise it counts per block in parallel, transposes the block-major
// counts into bucket-major destination offsets, and scatters each block
// into its slice of out in parallel.
func CountSort[T any](a, out []T, keys []int, numBuckets int) []int {
	if len(a) < countSortParallelThreshold || engine.NumThreads() <= 1 {
		return countSortSerial(a, out, keys, numBuckets)
	}
	return countSortParallel(a, out, keys, numBuckets)
}

func countSortSerial[T any](a, out []T, keys []int, numBuckets int) []int {
	n := len(a)
	counts := make([]int, numBuckets)
	for _, k := range keys {
		counts[k]++
	}
	offsets := make([]int, numBuckets+1)
	for b := 0; b < numBuckets; b++ {
		offsets[b+1] = offsets[b] + counts[b]
	}
	end := append([]int(nil), offsets[1:]...)
	for i := n - 1; i >= 0; i-- {
		b := keys[i]
		end[b]--
		out[end[b]] = a[i]
	}
	return offsets
}

func countSortParallel[T any](a, out []T, keys []int, numBuckets int) []int {
	n := len(a)
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize < 1 {
		elemSize = 1
	}
	denom := numBuckets * 500
	if denom < 5000 {
		denom = 5000
	}
	numBlocks := 1 + (n*elemSize)/denom
	if numBlocks > n {
		numBlocks = n
	}
	if numBlocks < 1 {
		numBlocks = 1
	}
	blockSize := (n + numBlocks - 1) / numBlocks
	counts := make([]int, numBlocks*numBuckets)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for blk := lo; blk < hi; blk++ {
			s, e := blk*blockSize, min(n, (blk+1)*blockSize)
			for i := s; i < e; i++ {
				counts[blk*numBuckets+keys[i]]++
			}
		}
	})
	offsets, dest := transpose.Buckets(counts, numBlocks, numBuckets)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for blk := lo; blk < hi; blk++ {
			s, e := blk*blockSize, min(n, (blk+1)*blockSize)
			cursor := append([]int(nil), dest[blk]...)
			for i := s; i < e; i++ {
				b := keys[i]
				out[cursor[b]] = a[i]
				cursor[b]++
			}
		}
	})
	return offsets
}
