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
	"sync/atomic"

	"github.com/launix-de/parlaygo/engine"
)

func newWindow(offs OffsetSeq) window {
	k := offs.Len()
	return window{offs, 0, k, k}
}

// IndChunks iterates read-only ranges [off[i], off[i+1]) of buf (the last
// range extends to len(buf)).
func IndChunks[T any](buf []T, offs OffsetSeq) ParIter[[]T] {
	if engine.Current().RngIndSafe {
		checkRangeMonotone(offs, len(buf))
	}
	w := newWindow(offs)
	return ParIter[[]T]{w: w, element: func(w window, i int) []T {
		start, end := w.rangeBounds(i, len(buf))
		return buf[start:end]
	}}
}

// IndChunksMut iterates exclusive-mutable ranges of buf. Disjointness
// falls directly out of the monotone-offsets invariant (no two logical
// ranges share an index), so no further runtime check is needed beyond
// the monotonicity check IndChunks already performs.
func IndChunksMut[T any](buf []T, offs OffsetSeq) ParIter[[]T] {
	return IndChunks(buf, offs)
}

// IndIter iterates read-only single positions off[0..k) of buf.
func IndIter[T any](buf []T, offs OffsetSeq) ParIter[*T] {
	checkScatterBounds(offs, len(buf))
	w := newWindow(offs)
	return ParIter[*T]{w: w, element: func(w window, i int) *T {
		return &buf[w.pos(i)]
	}}
}

// IndIterMut iterates exclusive-mutable single positions of buf. When the
// runtime's SngIndSafe policy is enabled (the default), every offset is
// claimed against a CAS bitmap before the iterator is handed to the
// caller; a duplicate destination index is a fatal contract violation.
func IndIterMut[T any](buf []T, offs OffsetSeq) ParIter[*T] {
	checkScatterBounds(offs, len(buf))
	if engine.Current().SngIndSafe {
		assertUnique(offs, len(buf))
	}
	w := newWindow(offs)
	return ParIter[*T]{w: w, element: func(w window, i int) *T {
		return &buf[w.pos(i)]
	}}
}

func assertUnique(offs OffsetSeq, bufLen int) {
	k := offs.Len()
	if k == 0 {
		return
	}
	bm := newCasBitmap(bufLen)
	var duplicate atomic.Bool
	engine.Range(0, k, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if bm.claim(offs.At(i)) {
				duplicate.Store(true)
			}
		}
	})
	if duplicate.Load() {
		panic("iter: scatter-mutable offsets must be pairwise distinct")
	}
}
