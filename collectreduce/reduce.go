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
	"fmt"
	"unsafe"

	"github.com/docker/go-units"

	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/seq"
	"github.com/launix-de/parlaygo/sortpkg"
)

// denseLogThreshold is the bucket count above which Reduce logs the
// size of the dense output vector it allocates.
const denseLogThreshold = 1 << 16

func logDenseAlloc[R any](numBuckets int) {
	if numBuckets < denseLogThreshold {
		return
	}
	var zero R
	fmt.Println("collectreduce: allocating dense output of", units.HumanSize(float64(numBuckets)*float64(unsafe.Sizeof(zero))))
}

// Reduce folds items into a dense []R of length numBuckets, one slot per
// bucket id produced by h.Hash(h.GetKey(item)) % numBuckets. Below
// numBuckets <= 4*NumThreads() (or for small n), it reduces each block
// into its own dense vector and merges the vectors serially; otherwise it
// partitions through GetBucket and an integer sort, combining
// heavy-hitter blocks in one call and stream-updating the rest.
func Reduce[Item any, Key comparable, R any](items []Item, numBuckets int, h HelperReduce[Item, Key, R]) []R {
	n := len(items)
	logDenseAlloc[R](numBuckets)
	if n == 0 {
		out := make([]R, numBuckets)
		for b := range out {
			out[b] = h.Init()
		}
		return out
	}
	if numBuckets <= 4*engine.NumThreads() || n < seq.BaseBlockSize {
		return reduceFewBuckets(items, numBuckets, h)
	}
	return reduceBucketed(items, numBuckets, h)
}

func reduceFewBuckets[Item any, Key comparable, R any](items []Item, numBuckets int, h HelperReduce[Item, Key, R]) []R {
	n := len(items)
	bs := seq.BlockSize(n)
	if bs > n {
		bs = n
	}
	numBlocks := (n + bs - 1) / bs
	perBlock := make([][]R, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			s, e := bi*bs, min(n, (bi+1)*bs)
			local := make([]R, numBuckets)
			for b := range local {
				local[b] = h.Init()
			}
			for i := s; i < e; i++ {
				k := h.GetKey(items[i])
				b := int(h.Hash(k) % uint64(numBuckets))
				h.Update(&local[b], h.GetVal(items[i]))
			}
			perBlock[bi] = local
		}
	})
	out := make([]R, numBuckets)
	for b := 0; b < numBuckets; b++ {
		out[b] = h.Init()
		for bi := 0; bi < numBlocks; bi++ {
			h.Update(&out[b], perBlock[bi][b])
		}
	}
	return out
}

func reduceBucketed[Item any, Key comparable, R any](items []Item, numBuckets int, h HelperReduce[Item, Key, R]) []R {
	n := len(items)
	gb := NewGetBucket[Item, Key](items, h.Hash, h.GetKey, numBuckets)
	keys := make([]int, n)
	idx := make([]int, n)
	for i, it := range items {
		keys[i] = gb.Bucket(it)
		idx[i] = i
	}
	sortedIdx := make([]int, n)
	offsets := sortpkg.CountSort(idx, sortedIdx, keys, numBuckets)

	slotOf := func(it Item) int { return int(h.Hash(h.GetKey(it)) % uint64(numBuckets)) }
	out := make([]R, numBuckets)
	for b := range out {
		out[b] = h.Init()
	}
	// Heavy-hitter buckets and remapped items fold into slots other than
	// their own bucket id, so the fold runs as a single serial leaf.
	engine.Range(0, numBuckets, numBuckets, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			s, e := offsets[b], offsets[b+1]
			if s == e {
				continue
			}
			ids := sortedIdx[s:e]
			if b < gb.HeavyHitters() {
				bucketItems := make([]Item, len(ids))
				for j, id := range ids {
					bucketItems[j] = items[id]
				}
				acc := h.Init()
				h.Combine(&acc, bucketItems)
				h.Update(&out[slotOf(bucketItems[0])], acc)
			} else {
				for _, id := range ids {
					h.Update(&out[slotOf(items[id])], h.GetVal(items[id]))
				}
			}
		}
	})
	return out
}
