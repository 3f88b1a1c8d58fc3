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

// buildImplicitTree lays the sorted pivots out as a 1-indexed balanced
// binary search tree packed into a flat array of len(sortedPivots)+1
// (slot 0 unused; tree[i]'s children are at 2i and 2i+1), the classic branch-predictable classifier used by
// bucket and sample sort to map a key to one of len(sortedPivots)+1
// buckets with ceil(log2(buckets)) comparisons.
func buildImplicitTree[T any](sortedPivots []T) []T {
	tree := make([]T, len(sortedPivots)+1)
	var fill func(lo, hi, node int)
	fill = func(lo, hi, node int) {
		if lo >= hi || node >= len(tree) {
			return
		}
		mid := (lo + hi) / 2
		tree[node] = sortedPivots[mid]
		fill(lo, mid, 2*node)
		fill(mid+1, hi, 2*node+1)
	}
	fill(0, len(sortedPivots), 1)
	return tree
}

// classify walks the implicit tree and returns the bucket index in
// [0, numBuckets) that v belongs to.
func classify[T any](tree []T, v T, numBuckets int, less func(a, b T) bool) int {
	i := 1
	for i < numBuckets {
		if less(v, tree[i]) {
			i = 2 * i
		} else {
			i = 2*i + 1
		}
	}
	return i - numBuckets
}

func pivotsDegenerate[T any](pivots []T, less func(a, b T) bool) bool {
	for i := 1; i < len(pivots); i++ {
		if less(pivots[0], pivots[i]) || less(pivots[i], pivots[0]) {
			return false
		}
	}
	return true
}
