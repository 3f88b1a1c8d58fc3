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

// Package collectreduce implements spec 4.G: a dense histogram-style
// reduce over a small key domain, and a sparse group-by/dedup reduce,
// both partitioned across heavy-hitter-aware buckets for large inputs.
package collectreduce

// HelperReduce is the dense-reduce entry point's callback surface: items
// are folded into a fixed-size []R indexed by bucket.
type HelperReduce[Item any, Key comparable, R any] interface {
	Hash(k Key) uint64
	GetKey(item Item) Key
	Init() R
	GetVal(item Item) R
	Update(acc *R, v R)
	Combine(acc *R, items []Item)
}

// HelperSparse is the sparse-reduce entry point's callback surface:
// distinct keys become their own (key, R) pair in the output.
type HelperSparse[Item any, Key comparable, R any] interface {
	Hash(k Key) uint64
	GetKey(item Item) Key
	Init(acc *R, item Item)
	Reduce(items []Item) R
	Update(acc *R, item Item)
}

// Pair is one sparse-reduce output entry.
type Pair[Key comparable, R any] struct {
	Key Key
	Val R
}

func nextPow2(x int) int {
	p := 1
	for p < x {
		p <<= 1
	}
	return p
}
