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

// Package putil holds the small, leaf-level utilities every other
// parlaygo package builds on: integer mixing hashes, log2, and the
// atomic write-min used by reservation cells.
package putil

import "math/bits"

// Hash64 mixes a 64-bit value (the Numerical Recipes mix used throughout
// the sample/collect-reduce partitioners).
func Hash64(u uint64) uint64 {
	v := u*3935559000370003845 + 2691343689449507681
	v ^= v >> 21
	v ^= v << 37
	v ^= v >> 4
	v *= 4768777513237032717
	v ^= v << 20
	v ^= v >> 41
	v ^= v << 5
	return v
}

// Hash64Cheap mixes a 64-bit value with splitmix64, cheaper than Hash64
// and used where the sample size is large enough that the weaker
// avalanche behavior doesn't matter (e.g. the GetBucket sampling pass).
func Hash64Cheap(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x = x ^ (x >> 31)
	return x
}

// Log2Up returns the smallest k with 2^k >= x; 0 for x <= 1.
func Log2Up(x uint64) uint {
	if x <= 1 {
		return 0
	}
	return uint(bits.Len64(x - 1))
}
