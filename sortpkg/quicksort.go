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
)

// quickSortSerialThreshold is the span below which QuickSort stops forking
// and falls through to a purely serial dual-pivot recursion.
const quickSortSerialThreshold = 256

func baseCaseThreshold[T any]() int {
	var zero T
	if unsafe.Sizeof(zero) > 8 {
		return 16
	}
	return 24
}

// threeWayPartition partitions a in place into [<p1), [p1..p2], (p2<] and
// returns (lowEnd, highStart): a[:lowEnd] < p1, a[lowEnd:highStart] in
// [p1,p2], a[highStart:] > p2. It is the Dutch-flag three-way scan, driven
// by two sampled pivot values rather than pivots placed in the array.
func threeWayPartition[T any](a []T, p1, p2 T, less func(a, b T) bool) (lowEnd, highStart int) {
	n := len(a)
	lt, i, gt := 0, 0, n-1
	for i <= gt {
		switch {
		case less(a[i], p1):
			a[i], a[lt] = a[lt], a[i]
			lt++
			i++
		case less(p2, a[i]):
			a[i], a[gt] = a[gt], a[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt + 1
}

func samplePivots[T any](a []T, less func(a, b T) bool) (p1, p2 T) {
	n := len(a)
	idx := [5]int{0, n / 4, n / 2, (3 * n) / 4, n - 1}
	var samples [5]T
	for i, id := range idx {
		samples[i] = a[id]
	}
	InsertionSort(samples[:], less)
	return samples[1], samples[3]
}

// QuickSort sorts a in place with a dual-pivot, three-way parallel
// quicksort: five equally spaced samples are sorted serially to pick two
// pivots, the array is partitioned into three runs, and the runs recurse
// in parallel (serially below the serial threshold); the middle run is
// skipped when the two pivots are equal, since it is then homogeneous.
func QuickSort[T any](a []T, less func(a, b T) bool) {
	if len(a) < quickSortSerialThreshold {
		quickSortSerial(a, less)
		return
	}
	quickSortPar(a, less)
}

func quickSortPar[T any](a []T, less func(a, b T) bool) {
	n := len(a)
	if n < baseCaseThreshold[T]() {
		InsertionSort(a, less)
		return
	}
	p1, p2 := samplePivots(a, less)
	lo, hi := threeWayPartition(a, p1, p2, less)
	left, mid, right := a[:lo], a[lo:hi], a[hi:]
	recurse := func(s []T) func() {
		return func() {
			if len(s) < quickSortSerialThreshold {
				quickSortSerial(s, less)
			} else {
				quickSortPar(s, less)
			}
		}
	}
	if !less(p1, p2) && !less(p2, p1) {
		// both pivots equal: mid is already homogeneous, skip it
		engine.Join(recurse(left), recurse(right))
		return
	}
	engine.Join(
		func() { engine.Join(recurse(left), recurse(mid)) },
		recurse(right),
	)
}

// quickSortSerial is the purely sequential dual-pivot recursion used below
// the serial threshold, and as the base case for the bucket and sample
// sort families.
func quickSortSerial[T any](a []T, less func(a, b T) bool) {
	n := len(a)
	if n < baseCaseThreshold[T]() {
		InsertionSort(a, less)
		return
	}
	p1, p2 := samplePivots(a, less)
	lo, hi := threeWayPartition(a, p1, p2, less)
	quickSortSerial(a[:lo], less)
	if less(p1, p2) {
		quickSortSerial(a[lo:hi], less)
	}
	quickSortSerial(a[hi:], less)
}
