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
package collectreduce

import (
	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/pack"
	"github.com/launix-de/parlaygo/seq"
	"github.com/launix-de/parlaygo/sortpkg"
)

// sparseSmallThreshold is the item count below which ReduceSparse uses
// the plain open-addressed hash path instead of partitioning.
const sparseSmallThreshold = seq.BaseBlockSize

// ReduceSparse group-reduces items by key: distinct keys each produce one
// Pair in the (unordered) output. Below sparseSmallThreshold it hashes
// directly into an open-addressed table of more than 3n/2 slots (rounded
// up to a power of two); above it, it
// partitions through GetBucket and a counting sort, reduces each
// heavy-hitter bucket (known to hold one key) in a single call, and
// recurses the small-n path on every other bucket.
func ReduceSparse[Item any, Key comparable, R any](items []Item, h HelperSparse[Item, Key, R]) []Pair[Key, R] {
	if len(items) == 0 {
		return nil
	}
	if len(items) < sparseSmallThreshold {
		return sparseSmall(items, h)
	}
	return sparseLarge(items, h)
}

type sparseEntry[Key comparable, R any] struct {
	key Key
	val R
	has bool
}

func sparseSmall[Item any, Key comparable, R any](items []Item, h HelperSparse[Item, Key, R]) []Pair[Key, R] {
	n := len(items)
	tableSize := nextPow2(3*n/2 + 1)
	table := make([]sparseEntry[Key, R], tableSize)
	mask := uint64(tableSize - 1)
	for _, it := range items {
		k := h.GetKey(it)
		hh := h.Hash(k) & mask
		for {
			if !table[hh].has {
				var v R
				h.Init(&v, it)
				table[hh] = sparseEntry[Key, R]{key: k, val: v, has: true}
				break
			}
			if table[hh].key == k {
				h.Update(&table[hh].val, it)
				break
			}
			hh = (hh + 1) & mask
		}
	}
	out := make([]Pair[Key, R], 0, n)
	for _, e := range table {
		if e.has {
			out = append(out, Pair[Key, R]{Key: e.key, Val: e.val})
		}
	}
	return out
}

func sparseLarge[Item any, Key comparable, R any](items []Item, h HelperSparse[Item, Key, R]) []Pair[Key, R] {
	n := len(items)
	numBuckets := nextPow2(max(4, 4*engine.NumThreads()))
	gb := NewGetBucket[Item, Key](items, h.Hash, h.GetKey, numBuckets)
	keys := make([]int, n)
	idx := make([]int, n)
	for i, it := range items {
		keys[i] = gb.Bucket(it)
		idx[i] = i
	}
	sortedIdx := make([]int, n)
	offsets := sortpkg.CountSort(idx, sortedIdx, keys, numBuckets)

	perBucket := make([][]Pair[Key, R], numBuckets)
	engine.Range(0, numBuckets, 1, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			s, e := offsets[b], offsets[b+1]
			if s == e {
				continue
			}
			bucketItems := make([]Item, e-s)
			for j, id := range sortedIdx[s:e] {
				bucketItems[j] = items[id]
			}
			if b < gb.HeavyHitters() {
				v := h.Reduce(bucketItems)
				perBucket[b] = []Pair[Key, R]{{Key: h.GetKey(bucketItems[0]), Val: v}}
			} else {
				perBucket[b] = sparseSmall(bucketItems, h)
			}
		}
	})
	return pack.Flatten(perBucket)
}
