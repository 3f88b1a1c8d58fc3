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

// mergeSortBaseCase is the span below which MergeSort falls through to
// InsertionSort instead of splitting further.
const mergeSortBaseCase = 48

func mergeSortRec[T any](src, aux []T, less func(a, b T) bool) {
	n := len(src)
	if n < mergeSortBaseCase {
		InsertionSort(src, less)
		return
	}
	mid := n / 2
	engine.Join(
		func() { mergeSortRec(src[:mid], aux[:mid], less) },
		func() { mergeSortRec(src[mid:], aux[mid:], less) },
	)
	Merge(src[:mid], src[mid:], aux, less)
	copy(src, aux)
}

// MergeSortInplace stably sorts a in place: split mid, recurse on both
// halves in parallel, then merge back through a scratch buffer.
func MergeSortInplace[T any](a []T, less func(a, b T) bool) {
	if len(a) < 2 {
		return
	}
	aux := make([]T, len(a))
	mergeSortRec(a, aux, less)
}

// MergeSort returns a new stably sorted copy of a.
func MergeSort[T any](a []T, less func(a, b T) bool) []T {
	out := make([]T, len(a))
	copy(out, a)
	MergeSortInplace(out, less)
	return out
}
