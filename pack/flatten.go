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
package pack

import (
	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/iter"
)

// flattenGran is the granularity (sub-sequences per parallel leaf) of the
// per-sub-sequence copy in Flatten and FlattenByVal, per spec 4.F.
const flattenGran = 1024

// Flatten concatenates a sequence of sub-sequences into one buffer:
// exclusive-scan their lengths to offsets, allocate the total, and copy
// each sub-sequence into its slot via the range-indirection iterator.
func Flatten[T any](subs [][]T) []T {
	n := len(subs)
	if n == 0 {
		return nil
	}
	offsets := make([]int, n+1)
	for i, s := range subs {
		offsets[i+1] = offsets[i] + len(s)
	}
	out := make([]T, offsets[n])
	chunks := iter.IndChunksMut(out, iter.Explicit(offsets[:n])).WithGran(flattenGran)
	engine.Range(0, n, flattenGran, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			copy(chunks.At(i), subs[i])
		}
	})
	return out
}

// FlattenByVal is flatten's value-repeating sibling: vals[i] is repeated
// counts[i] times in the output, in order, rather than each sub-sequence
// being copied from an existing slice.
func FlattenByVal[T any](vals []T, counts []int) []T {
	n := len(vals)
	if n == 0 {
		return nil
	}
	offsets := make([]int, n+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}
	out := make([]T, offsets[n])
	chunks := iter.IndChunksMut(out, iter.Explicit(offsets[:n])).WithGran(flattenGran)
	engine.Range(0, n, flattenGran, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst := chunks.At(i)
			v := vals[i]
			for j := range dst {
				dst[j] = v
			}
		}
	})
	return out
}
