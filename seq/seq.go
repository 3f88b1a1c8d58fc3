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

// Package seq holds the serial/parallel scan and reduce primitives every
// sort, pack and collect-reduce routine is layered on top of.
package seq

import (
	"math"

	"github.com/launix-de/parlaygo/engine"
)

// BaseBlockSize is the floor of the block size heuristic used by reduce
// and scan: max(BaseBlockSize, 4*ceil(sqrt(n))).
const BaseBlockSize = 2000

// BlockSize returns the block size reduce/scan should use for a sequence
// of length n.
func BlockSize(n int) int {
	if n <= 0 {
		return BaseBlockSize
	}
	b := 4 * int(math.Ceil(math.Sqrt(float64(n))))
	if b < BaseBlockSize {
		return BaseBlockSize
	}
	return b
}

func blockBounds(block, blockSize, n int) (int, int) {
	start := block * blockSize
	end := start + blockSize
	if end > n {
		end = n
	}
	return start, end
}

// ReduceSerial folds a left to right with op. Panics on an empty sequence:
// there is no supplied identity element to fall back to.
func ReduceSerial[T any](a []T, op func(T, T) T) T {
	if len(a) == 0 {
		panic("seq: ReduceSerial of an empty sequence")
	}
	acc := a[0]
	for _, v := range a[1:] {
		acc = op(acc, v)
	}
	return acc
}

// Reduce folds a with an associative (not necessarily commutative) op,
// blocking the input and recursing on the block sums so that order is
// preserved by block layout.
func Reduce[T any](a []T, op func(T, T) T) T {
	if len(a) == 0 {
		panic("seq: Reduce of an empty sequence")
	}
	n := len(a)
	bs := BlockSize(n)
	if n <= bs {
		return ReduceSerial(a, op)
	}
	numBlocks := (n + bs - 1) / bs
	partials := make([]T, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			start, end := blockBounds(bi, bs, n)
			partials[bi] = ReduceSerial(a[start:end], op)
		}
	})
	return ReduceSerial(partials, op)
}

func scanSerial[T any](a []T, start T, inclusive bool, op func(T, T) T) T {
	acc := start
	for i, v := range a {
		if inclusive {
			acc = op(acc, v)
			a[i] = acc
		} else {
			cur := acc
			acc = op(acc, v)
			a[i] = cur
		}
	}
	return acc
}

// ScanInplace scans a in place with an associative op and identity zero,
// returning the reduce-equivalent total. inclusive selects an inclusive
// vs. exclusive scan. Implementation is the two-phase block scan of spec
// 4.B: per-block local reduce, serial scan of the block sums, per-block
// serial scan seeded with its block's offset.
func ScanInplace[T any](a []T, zero T, inclusive bool, op func(T, T) T) T {
	n := len(a)
	if n == 0 {
		return zero
	}
	bs := BlockSize(n)
	if n <= bs {
		return scanSerial(a, zero, inclusive, op)
	}
	numBlocks := (n + bs - 1) / bs
	sums := make([]T, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			start, end := blockBounds(bi, bs, n)
			sums[bi] = ReduceSerial(a[start:end], op)
		}
	})
	offsets := make([]T, numBlocks)
	acc := zero
	for i, s := range sums {
		offsets[i] = acc
		acc = op(acc, s)
	}
	total := acc
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			start, end := blockBounds(bi, bs, n)
			scanSerial(a[start:end], offsets[bi], inclusive, op)
		}
	})
	return total
}

// Scan is the non-mutating counterpart of ScanInplace: it copies a before
// scanning so the input is left untouched.
func Scan[T any](a []T, zero T, inclusive bool, op func(T, T) T) ([]T, T) {
	out := make([]T, len(a))
	copy(out, a)
	total := ScanInplace(out, zero, inclusive, op)
	return out, total
}

// ScanDelayed is the lazy-producer variant used by MapTokens: instead of
// an input slice it takes get(i), and instead of writing in place it
// calls emit(i, value). Semantically equivalent to materializing
// []T{get(0),...,get(n-1)} and scanning it, without the allocation.
func ScanDelayed[T any](n int, zero T, inclusive bool, op func(T, T) T, get func(int) T, emit func(int, T)) T {
	if n == 0 {
		return zero
	}
	bs := BlockSize(n)
	if n <= bs {
		acc := zero
		for i := 0; i < n; i++ {
			v := get(i)
			if inclusive {
				acc = op(acc, v)
				emit(i, acc)
			} else {
				cur := acc
				acc = op(acc, v)
				emit(i, cur)
			}
		}
		return acc
	}
	numBlocks := (n + bs - 1) / bs
	sums := make([]T, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			start, end := blockBounds(bi, bs, n)
			acc := get(start)
			for i := start + 1; i < end; i++ {
				acc = op(acc, get(i))
			}
			sums[bi] = acc
		}
	})
	offsets := make([]T, numBlocks)
	acc := zero
	for i, s := range sums {
		offsets[i] = acc
		acc = op(acc, s)
	}
	total := acc
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			start, end := blockBounds(bi, bs, n)
			a := offsets[bi]
			for i := start; i < end; i++ {
				v := get(i)
				if inclusive {
					a = op(a, v)
					emit(i, a)
				} else {
					cur := a
					a = op(a, v)
					emit(i, cur)
				}
			}
		}
	})
	return total
}
