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

import "github.com/launix-de/parlaygo/internal/putil"

// heavyHitterCutoff is the sample occurrence count beyond which a key is
// promoted to its own reserved bucket.
const heavyHitterCutoff = 5

type sampleSlot[Key comparable] struct {
	key   Key
	count int
	id    int
	has   bool
}

// GetBucket is the heavy-hitter-aware partitioner of spec 4.G: it samples
// 2^bits keys, counts their occurrences in a small linear-probe table,
// and promotes keys that recur often enough to their own bucket so a
// skewed key distribution doesn't serialize the whole reduce on one
// bucket.
type GetBucket[Item any, Key comparable] struct {
	hash       func(Key) uint64
	getKey     func(Item) Key
	numBuckets int
	heavyCount int
	table      []sampleSlot[Key]
	tableMask  uint64
	bucketMask uint64
}

// NewGetBucket builds a partitioner for the given items and a target
// bucket count, which must be a power of two.
func NewGetBucket[Item any, Key comparable](items []Item, hash func(Key) uint64, getKey func(Item) Key, numBuckets int) *GetBucket[Item, Key] {
	n := len(items)
	bits := putil.Log2Up(uint64(numBuckets))
	if bits < 1 {
		bits = 1
	}
	sampleCount := 1 << bits
	if sampleCount > n {
		sampleCount = n
	}
	if sampleCount < 1 {
		sampleCount = 1
	}
	tableSize := nextPow2(4 * sampleCount)
	table := make([]sampleSlot[Key], tableSize)
	tableMask := uint64(tableSize - 1)
	for i := range table {
		table[i].id = -1
	}
	probe := func(k Key) int {
		h := hash(k) & tableMask
		for {
			if !table[h].has || table[h].key == k {
				return int(h)
			}
			h = (h + 1) & tableMask
		}
	}
	for s := 0; s < sampleCount; s++ {
		idx := int(putil.Hash64Cheap(uint64(s)) % uint64(n))
		k := getKey(items[idx])
		si := probe(k)
		if !table[si].has {
			table[si] = sampleSlot[Key]{key: k, count: 1, id: -1, has: true}
		} else {
			table[si].count++
		}
	}
	heavyCap := numBuckets - 1
	if heavyCap < 0 {
		heavyCap = 0
	}
	heavyCount := 0
	for i := range table {
		if heavyCount >= heavyCap {
			break
		}
		if table[i].has && table[i].count > heavyHitterCutoff {
			table[i].id = heavyCount
			heavyCount++
		}
	}
	return &GetBucket[Item, Key]{
		hash: hash, getKey: getKey, numBuckets: numBuckets,
		heavyCount: heavyCount, table: table, tableMask: tableMask,
		bucketMask: uint64(numBuckets - 1),
	}
}

// HeavyHitters reports how many of the low bucket ids [0, HeavyHitters())
// are reserved, single-key heavy-hitter buckets.
func (g *GetBucket[Item, Key]) HeavyHitters() int { return g.heavyCount }

// Bucket assigns item to a bucket id in [0, numBuckets).
func (g *GetBucket[Item, Key]) Bucket(item Item) int {
	k := g.getKey(item)
	h := g.hash(k) & g.tableMask
	for {
		if !g.table[h].has {
			break
		}
		if g.table[h].key == k {
			if g.table[h].id >= 0 {
				return g.table[h].id
			}
			break
		}
		h = (h + 1) & g.tableMask
	}
	hb := int(g.hash(k) & g.bucketMask)
	if hb < g.heavyCount {
		return hb%(g.numBuckets-g.heavyCount) + g.heavyCount
	}
	return hb
}
