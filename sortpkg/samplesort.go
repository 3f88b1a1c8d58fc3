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
	"fmt"
	"math"
	"unsafe"

	"github.com/docker/go-units"
	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/internal/putil"
	"github.com/launix-de/parlaygo/iter"
	"github.com/launix-de/parlaygo/transpose"
)

// sampleSortBlockQuotient and sampleSortBucketQuotient tune, respectively,
// how many blocks the input is chopped into (a power of two near
// sqrt(n)/blockQuotient) and how many buckets the sampled pivots classify
// into (near sqrt(n)/bucketQuotient).
const sampleSortBlockQuotient = 4
const sampleSortBucketQuotient = 4
const sampleSortOversample = 8

// SampleSort returns a new sorted copy of a.
func SampleSort[T any](a []T, less func(a, b T) bool, stable bool) []T {
	out := make([]T, len(a))
	copy(out, a)
	SampleSortInplace(out, less, stable)
	return out
}

// SampleSortInplace sorts a in place: it samples and sorts a pivot set to
// build a classifier tree, serially sorts fixed-size blocks, classifies
// and counts each block's elements into buckets, transposes the
// block-major counts into bucket-major destination offsets, moves every
// element directly into place, and finally sorts each bucket (using the
// range-indirection iterator to dispatch the per-bucket work), skipping
// buckets whose bounding pivots are equal since those are already
// homogeneous.
func SampleSortInplace[T any](a []T, less func(a, b T) bool, stable bool) {
	n := len(a)
	if n < quickSortSerialThreshold {
		serialSortFallback(a, less, stable)
		return
	}
	sqrtN := int(math.Sqrt(float64(n)))
	numBlocksPow := putil.Log2Up(uint64(sqrtN/sampleSortBlockQuotient + 1))
	numBlocks := 1 << numBlocksPow
	if numBlocks > n {
		numBlocks = n
	}
	numBucketsRaw := sqrtN/sampleSortBucketQuotient + 1
	if numBucketsRaw < 2 {
		numBucketsRaw = 2
	}
	// classify's implicit-heap tree walk requires a power-of-two leaf
	// count, so the bucket count is rounded up like numBlocks above.
	numBuckets := 1 << putil.Log2Up(uint64(numBucketsRaw))
	sampleSetSize := numBuckets * sampleSortOversample
	if sampleSetSize > n {
		sampleSetSize = n
	}
	if sampleSetSize < numBuckets-1 {
		sampleSetSize = numBuckets - 1
	}

	samples := make([]T, sampleSetSize)
	stride := n / sampleSetSize
	if stride < 1 {
		stride = 1
	}
	for i := range samples {
		samples[i] = a[(i*stride)%n]
	}
	quickSortSerial(samples, less)
	pivots := make([]T, numBuckets-1)
	for i := range pivots {
		pivots[i] = samples[((i+1)*sampleSetSize)/numBuckets]
	}
	if pivotsDegenerate(pivots, less) {
		serialSortFallback(a, less, stable)
		return
	}
	tree := buildImplicitTree(pivots)

	blockSize := (n + numBlocks - 1) / numBlocks
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for blk := lo; blk < hi; blk++ {
			s, e := blk*blockSize, min(n, (blk+1)*blockSize)
			if e > s {
				serialSortFallback(a[s:e], less, stable)
			}
		}
	})

	bucketOf := make([]int, n)
	counts := make([]int, numBlocks*numBuckets)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for blk := lo; blk < hi; blk++ {
			s, e := blk*blockSize, min(n, (blk+1)*blockSize)
			for i := s; i < e; i++ {
				b := classify(tree, a[i], numBuckets, less)
				bucketOf[i] = b
				counts[blk*numBuckets+b]++
			}
		}
	})

	offsets, dest := transpose.Buckets(counts, numBlocks, numBuckets)
	var zero T
	fmt.Println("samplesort: allocating scratch buffer of", units.HumanSize(float64(n)*float64(unsafe.Sizeof(zero))))
	out := make([]T, n)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for blk := lo; blk < hi; blk++ {
			s, e := blk*blockSize, min(n, (blk+1)*blockSize)
			cursor := append([]int(nil), dest[blk]...)
			for i := s; i < e; i++ {
				b := bucketOf[i]
				out[cursor[b]] = a[i]
				cursor[b]++
			}
		}
	})
	copy(a, out)

	chunks := iter.IndChunksMut(a, iter.Explicit(offsets[:numBuckets]))
	engine.Range(0, numBuckets, 1, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			homogeneous := false
			if b > 0 && b < numBuckets-1 {
				homogeneous = !less(pivots[b-1], pivots[b]) && !less(pivots[b], pivots[b-1])
			}
			if homogeneous {
				continue
			}
			bucket := chunks.At(b)
			if len(bucket) > 1 {
				serialSortFallback(bucket, less, stable)
			}
		}
	})
}
