/*
Copyright (C) 2024  Carl-Philip Hänsch

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
package iter

import (
	"github.com/launix-de/parlaygo/engine"
)

const defaultGran = 1

// window is the logical sub-range [lo, hi) of a k-element offset
// sequence that a split ParIter currently covers.
type window struct {
	offs OffsetSeq
	lo   int
	hi   int
	k    int
}

func (w window) len() int { return w.hi - w.lo }

func (w window) split(i int) (window, window) {
	if i < 0 || i > w.len() {
		panic("iter: split index out of range")
	}
	mid := w.lo + i
	return window{w.offs, w.lo, mid, w.k}, window{w.offs, mid, w.hi, w.k}
}

// rangeBounds returns the physical [start,end) of the i-th (local) logical
// range in this window, given the backing buffer's length.
func (w window) rangeBounds(i, bufLen int) (int, int) {
	global := w.lo + i
	start := w.offs.At(global)
	var end int
	if global+1 < w.k {
		end = w.offs.At(global + 1)
	} else {
		end = bufLen
	}
	return start, end
}

func (w window) pos(i int) int {
	return w.offs.At(w.lo + i)
}

// ParIter is a splittable, indexed data-parallel iterator over logical
// elements of type E, each one either a sub-slice of a backing buffer
// (range indirection) or a pointer into it (scatter indirection).
type ParIter[E any] struct {
	w       window
	minLen  int
	maxLen  int
	element func(w window, i int) E
}

// Len reports the number of logical elements.
func (p ParIter[E]) Len() int { return p.w.len() }

// SplitAt splits both the logical view and, implicitly, the underlying
// offset window at logical index i, returning two independent ParIters.
func (p ParIter[E]) SplitAt(i int) (ParIter[E], ParIter[E]) {
	left, right := p.w.split(i)
	lp, rp := p, p
	lp.w, rp.w = left, right
	return lp, rp
}

// WithMinLen sets the minimum chunk size Drive will dispatch without
// further splitting.
func (p ParIter[E]) WithMinLen(n int) ParIter[E] {
	p.minLen = n
	return p
}

// WithMaxLen sets the maximum chunk size; currently used only as an upper
// clamp alongside WithMinLen, mirroring the runtime's own knob.
func (p ParIter[E]) WithMaxLen(n int) ParIter[E] {
	p.maxLen = n
	return p
}

// WithGran sets both WithMinLen and WithMaxLen to g.
func (p ParIter[E]) WithGran(g int) ParIter[E] {
	return p.WithMinLen(g).WithMaxLen(g)
}

func (p ParIter[E]) granularity() int {
	g := p.minLen
	if g <= 0 {
		g = defaultGran
	}
	if p.maxLen > 0 && g > p.maxLen {
		g = p.maxLen
	}
	return g
}

// Drive dispatches f over every logical element in parallel, respecting
// the configured granularity.
func (p ParIter[E]) Drive(f func(E)) {
	n := p.Len()
	if n == 0 {
		return
	}
	engine.Range(0, n, p.granularity(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(p.element(p.w, i))
		}
	})
}

// At returns the i-th logical element without going through Drive; used
// by callers (e.g. pack) that need direct indexed access.
func (p ParIter[E]) At(i int) E {
	return p.element(p.w, i)
}
