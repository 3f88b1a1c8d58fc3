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
	"github.com/launix-de/parlaygo/internal/putil"
	"github.com/launix-de/parlaygo/iter"
)

// radixPassBits is the width of one radix pass: up to 256 buckets.
const radixPassBits = 8

// radixRecursionThreshold is the span below which integer sort's
// multi-pass recursion drops to the fully serial radix-pass loop.
const radixRecursionThreshold = 1 << 17

// baseBits picks the widest key width IntegerSort will handle with a
// single counting-sort pass: log2 of 2*elemSize*n/1,000,000 rounded up,
// clamped to [8,13], so it grows with the input's total footprint.
func baseBits(n, elemSize int) uint {
	v := putil.Log2Up(uint64(max(1, 2*elemSize*n/1_000_000)))
	if v < 8 {
		v = 8
	}
	if v > 13 {
		v = 13
	}
	return v
}

// IntegerSortInplace sorts a in place by the low bits bits of keyOf(v). A
// key width within the single-counting-sort-pass budget (see baseBits)
// sorts in one pass; wider keys recurse 8 bits at a time, carving the
// output of each top-level pass along its bucket boundaries with the
// range-indirection iterator.
func IntegerSortInplace[T any](a []T, keyOf func(T) uint64, bits uint) {
	if bits == 0 || len(a) < 2 {
		return
	}
	var zero T
	bb := baseBits(len(a), int(unsafe.Sizeof(zero)))
	if bits <= bb {
		sortByLowBits(a, keyOf, bits)
		return
	}
	integerSortRecursive(a, keyOf, bits)
}

// IntegerSort returns a new copy of a sorted by the low bits bits of
// keyOf(v).
func IntegerSort[T any](a []T, keyOf func(T) uint64, bits uint) []T {
	out := make([]T, len(a))
	copy(out, a)
	IntegerSortInplace(out, keyOf, bits)
	return out
}

func sortByLowBits[T any](a []T, keyOf func(T) uint64, bits uint) []int {
	numBuckets := 1 << bits
	mask := uint64(numBuckets - 1)
	keys := make([]int, len(a))
	for i, v := range a {
		keys[i] = int(keyOf(v) & mask)
	}
	out := make([]T, len(a))
	offsets := CountSort(a, out, keys, numBuckets)
	copy(a, out)
	return offsets
}

// IntegerSortWithOffsets sorts a by the low bits bits of keyOf(v) and
// additionally returns the 2^bits+1 bucket offsets of the final ordering.
// It only supports key widths small enough for a single counting-sort
// pass (see baseBits); wider keys should use IntegerSortInplace, whose
// multi-pass recursion does not produce one flat offsets table.
func IntegerSortWithOffsets[T any](a []T, keyOf func(T) uint64, bits uint) []int {
	if bits == 0 {
		return []int{len(a)}
	}
	var zero T
	bb := baseBits(len(a), int(unsafe.Sizeof(zero)))
	if bits > bb {
		panic("sortpkg: IntegerSortWithOffsets needs a key width narrow enough for a single counting-sort pass")
	}
	return sortByLowBits(a, keyOf, bits)
}

func integerSortRecursive[T any](a []T, keyOf func(T) uint64, bits uint) {
	n := len(a)
	if n < 2 || bits == 0 {
		return
	}
	if n < radixRecursionThreshold {
		integerSortSerial(a, keyOf, bits)
		return
	}
	topBits := uint(radixPassBits)
	if topBits > bits {
		topBits = bits
	}
	shift := bits - topBits
	numBuckets := 1 << topBits
	mask := uint64(numBuckets - 1)
	keys := make([]int, n)
	for i, v := range a {
		keys[i] = int((keyOf(v) >> shift) & mask)
	}
	out := make([]T, n)
	offsets := CountSort(a, out, keys, numBuckets)
	copy(a, out)

	fullyHomogeneous := false
	for b := 0; b < numBuckets; b++ {
		if offsets[b+1]-offsets[b] == n {
			fullyHomogeneous = true
			break
		}
	}
	if fullyHomogeneous {
		if shift > 0 {
			integerSortRecursive(a, keyOf, shift)
		}
		return
	}
	if shift == 0 {
		return
	}
	chunks := iter.IndChunksMut(a, iter.Explicit(offsets[:numBuckets]))
	engine.Range(0, numBuckets, 1, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			bucket := chunks.At(b)
			if len(bucket) > 1 {
				integerSortRecursive(bucket, keyOf, shift)
			}
		}
	})
}

// integerSortSerial is the fully sequential multi-pass radix loop: each
// 8-bit pass counting-sorts into a scratch buffer and the two buffers are
// swapped, with a final copy back if an odd number of passes ran.
func integerSortSerial[T any](a []T, keyOf func(T) uint64, bits uint) {
	n := len(a)
	buf := make([]T, n)
	src, dst := a, buf
	swapped := false
	var shift uint
	remaining := bits
	for remaining > 0 {
		passBits := uint(radixPassBits)
		if passBits > remaining {
			passBits = remaining
		}
		numBuckets := 1 << passBits
		mask := uint64(numBuckets - 1)
		keys := make([]int, n)
		for i, v := range src {
			keys[i] = int((keyOf(v) >> shift) & mask)
		}
		countSortSerial(src, dst, keys, numBuckets)
		src, dst = dst, src
		swapped = !swapped
		shift += passBits
		remaining -= passBits
	}
	if swapped {
		copy(a, src)
	}
}
