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

// Package hashtable is the open-addressing, linear-probing, lock-free
// table of spec 4.H. Unlike NonLockingReadMap (which rebuilds a sorted
// slice under CAS on every write and is read-optimized), this table
// fixes its capacity up front and keeps every probe sequence sorted
// descending by key through the insert protocol itself, so find can
// stop, lock-free, the first time it sees a key smaller than the one it
// is looking for.
package hashtable

import (
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/pack"
)

// Keyed is the contract a value must satisfy to live in a Table.
type Keyed[K constraints.Ordered] interface {
	Key() K
}

// Table is a fixed-capacity, open-addressed hash table over values V
// keyed by K. Slots hold *V via atomic.Pointer; nil is the empty
// sentinel. size and load together pick the capacity; load must be < 1.
type Table[K constraints.Ordered, V Keyed[K]] struct {
	slots   []atomic.Pointer[V]
	m       int
	hash    func(K) uint64
	replace func(newV, oldV V) bool
}

// New allocates a table sized for roughly `size` entries at the given
// load factor (capacity = floor(size*load) + 100). hash must be a
// well-distributed hash of K. replace decides, on an equal-key insert,
// whether the new value should overwrite the old one; return false to
// make Insert a no-op for existing keys.
func New[K constraints.Ordered, V Keyed[K]](size int, load float64, hash func(K) uint64, replace func(newV, oldV V) bool) *Table[K, V] {
	if load >= 1.0 {
		panic("hashtable: load factor must be < 1.0")
	}
	m := int(float64(size)*load) + 100
	return &Table[K, V]{
		slots:   make([]atomic.Pointer[V], m),
		m:       m,
		hash:    hash,
		replace: replace,
	}
}

// Cap returns the table's fixed slot capacity.
func (t *Table[K, V]) Cap() int { return t.m }

// Insert places v into the table, maintaining the sortedness invariant
// on every probe sequence: a slot transitions empty -> occupied(k), or
// occupied(k) -> occupied(k') only when k' > k or (k' == k and replace
// allows it). On a greater incoming key it evicts the resident value
// forward and keeps probing with the evicted value, which keeps every
// probe sequence descending. Returns false only when an equal key is
// found and replace rejects the overwrite.
func (t *Table[K, V]) Insert(v V) bool {
	i := int(t.hash(v.Key()) % uint64(t.m))
	cur := v
	for steps := 0; ; steps++ {
		if steps > t.m {
			panic("hashtable: probe sequence exceeded table capacity, table is full")
		}
		p := t.slots[i].Load()
		if p == nil {
			if t.slots[i].CompareAndSwap(nil, &cur) {
				return true
			}
			continue // lost the race for this slot, retry same i
		}
		ck, pk := cur.Key(), (*p).Key()
		switch {
		case ck < pk:
			i = (i + 1) % t.m
		case ck == pk:
			if !t.replace(cur, *p) {
				return false
			}
			if t.slots[i].CompareAndSwap(p, &cur) {
				return true
			}
			// slot changed under us, re-read and retry same i
		default: // ck > pk: evict p forward, continue probing with it
			nv := cur // the slot keeps its own copy; cur is reused below
			if t.slots[i].CompareAndSwap(p, &nv) {
				cur = *p
				i = (i + 1) % t.m
			}
			// CAS lost the race, retry same i with same cur
		}
	}
}

// Find walks the probe sequence from hash(k) mod m and returns the
// stored value on an exact key match, stopping (lock-free) the moment
// it sees a resident key strictly smaller than k, which the descending
// probe order guarantees means k isn't present.
func (t *Table[K, V]) Find(k K) (V, bool) {
	var zero V
	i := int(t.hash(k) % uint64(t.m))
	for steps := 0; steps <= t.m; steps++ {
		p := t.slots[i].Load()
		if p == nil {
			return zero, false
		}
		pk := (*p).Key()
		if pk == k {
			return *p, true
		}
		if k > pk {
			return zero, false
		}
		i = (i + 1) % t.m
	}
	return zero, false
}

// Entries returns every occupied slot's value, in table (slot) order,
// filtered in parallel.
func (t *Table[K, V]) Entries() []V {
	flags := make([]bool, t.m)
	values := make([]V, t.m)
	engine.Range(0, t.m, 4096, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if p := t.slots[i].Load(); p != nil {
				flags[i] = true
				values[i] = *p
			}
		}
	})
	return pack.Pack(values, flags)
}
