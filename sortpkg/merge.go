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

// mergeSerialThreshold is the combined length below which Merge falls
// through to a plain two-pointer merge.
const mergeSerialThreshold = 2000

func lowerBound[T any](b []T, pivot T, less func(a, c T) bool) int {
	lo, hi := 0, len(b)
	for lo < hi {
		mid := (lo + hi) / 2
		if less(b[mid], pivot) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func upperBound[T any](b []T, pivot T, less func(a, c T) bool) int {
	lo, hi := 0, len(b)
	for lo < hi {
		mid := (lo + hi) / 2
		if less(pivot, b[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func mergeTwoPointer[T any](left, right []T, out []T, less func(a, b T) bool) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if less(right[j], left[i]) {
			out[k] = right[j]
			j++
		} else {
			out[k] = left[i]
			i++
		}
		k++
	}
	k += copy(out[k:], left[i:])
	copy(out[k:], right[j:])
}

// Merge stably merges two sorted runs left and right into out (len(out) ==
// len(left)+len(right)), splitting the larger run's midpoint and
// binary-searching the smaller run so both halves can be merged in
// parallel once the combined length clears the serial threshold.
func Merge[T any](left, right []T, out []T, less func(a, b T) bool) {
	switch {
	case len(left) == 0:
		copy(out, right)
	case len(right) == 0:
		copy(out, left)
	case len(left)+len(right) < mergeSerialThreshold:
		mergeTwoPointer(left, right, out, less)
	case len(left) >= len(right):
		mid := len(left) / 2
		pivot := left[mid]
		j := lowerBound(right, pivot, less)
		engine.Join(
			func() { Merge(left[:mid], right[:j], out[:mid+j], less) },
			func() {
				out[mid+j] = pivot
				Merge(left[mid+1:], right[j:], out[mid+j+1:], less)
			},
		)
	default:
		mid := len(right) / 2
		pivot := right[mid]
		j := upperBound(left, pivot, less)
		engine.Join(
			func() { Merge(left[:j], right[:mid], out[:j+mid], less) },
			func() {
				out[j+mid] = pivot
				Merge(left[j:], right[mid+1:], out[j+mid+1:], less)
			},
		)
	}
}
