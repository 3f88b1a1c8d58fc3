/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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
	"math/bits"
	"sync/atomic"
)

// casBitmap is a fixed-size, concurrently-settable bitmap used by the
// scatter-mutable iterators to detect duplicate destination indices: each
// visited index is claimed with a CAS, and a claim that finds the bit
// already set is a duplicate.
type casBitmap struct {
	data []uint64
}

func newCasBitmap(n int) *casBitmap {
	return &casBitmap{data: make([]uint64, (n+63)/64)}
}

// claim sets bit i and reports whether it was already set (i.e. whether
// this call lost a race with a prior claim of the same index).
func (b *casBitmap) claim(i int) (alreadySet bool) {
	word := &b.data[i>>6]
	bit := uint64(1) << uint(i&63)
	for {
		cur := atomic.LoadUint64(word)
		if cur&bit != 0 {
			return true
		}
		if atomic.CompareAndSwapUint64(word, cur, cur|bit) {
			return false
		}
	}
}

func (b *casBitmap) count() int {
	n := 0
	for _, w := range b.data {
		n += bits.OnesCount64(w)
	}
	return n
}
