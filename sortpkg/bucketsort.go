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

import "github.com/launix-de/parlaygo/engine"

// bucketSortBits fixes bucket sort's fan-out at 2^4 = 16 buckets per level.
const bucketSortBits = 4
const bucketSortBuckets = 1 << bucketSortBits

func serialSortFallback[T any](a []T, less func(a, b T) bool, stable bool) {
	if len(a) < 2 {
		return
	}
	if stable {
		MergeSortInplace(a, less)
	} else {
		quickSortSerial(a, less)
	}
}

// BucketSort sorts a in place by repeatedly classifying elements into
// bucketSortBuckets buckets through a sampled pivot tree and recursing
// into each bucket, falling back to a comparison sort once the sampled
// pivots degenerate to a single value or the span clears the serial
// quicksort threshold.
func BucketSort[T any](a []T, less func(a, b T) bool, stable bool) {
	tmp := make([]T, len(a))
	bucketSortRec(a, tmp, less, stable)
}

func bucketSortRec[T any](a, tmp []T, less func(a, b T) bool, stable bool) {
	n := len(a)
	if n < quickSortSerialThreshold {
		serialSortFallback(a, less, stable)
		return
	}
	numBuckets := bucketSortBuckets
	overSample := 1 + n/(numBuckets*400)
	sampleSize := overSample * (numBuckets - 1)
	if sampleSize < numBuckets-1 {
		sampleSize = numBuckets - 1
	}
	if sampleSize > n {
		sampleSize = n
	}
	samples := make([]T, sampleSize)
	stride := n / sampleSize
	if stride < 1 {
		stride = 1
	}
	for i := range samples {
		samples[i] = a[(i*stride)%n]
	}
	quickSortSerial(samples, less)
	pivots := make([]T, numBuckets-1)
	for i := range pivots {
		pivots[i] = samples[((i+1)*sampleSize)/numBuckets]
	}
	if pivotsDegenerate(pivots, less) {
		serialSortFallback(a, less, stable)
		return
	}
	tree := buildImplicitTree(pivots)
	bucketOf := make([]int, n)
	counts := make([]int, numBuckets)
	for i, v := range a {
		b := classify(tree, v, numBuckets, less)
		bucketOf[i] = b
		counts[b]++
	}
	offsets := make([]int, numBuckets+1)
	for b := 0; b < numBuckets; b++ {
		offsets[b+1] = offsets[b] + counts[b]
	}
	cursor := append([]int(nil), offsets[:numBuckets]...)
	for i, v := range a {
		b := bucketOf[i]
		tmp[cursor[b]] = v
		cursor[b]++
	}
	copy(a, tmp)
	engine.Range(0, numBuckets, 1, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			start, end := offsets[b], offsets[b+1]
			if end-start < 2 {
				continue
			}
			bucketSortRec(a[start:end], tmp[start:end], less, stable)
		}
	})
}
