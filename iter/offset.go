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

// Package iter implements the indirection iterator family: data-parallel
// iteration over irregular sub-ranges (range indirection) or scattered
// positions (single/scatter indirection) of a backing buffer, in
// read-only and exclusive-mutable forms.
package iter

// OffsetSeq is an ordered sequence of k non-negative integers into a
// backing buffer, provided either explicitly (a slice) or functionally
// (a pure function plus a length).
type OffsetSeq interface {
	Len() int
	At(i int) int
}

type explicitOffsets []int

func (e explicitOffsets) Len() int     { return len(e) }
func (e explicitOffsets) At(i int) int { return e[i] }

// Explicit builds an OffsetSeq from a read-only slice of offsets.
func Explicit(offsets []int) OffsetSeq {
	return explicitOffsets(offsets)
}

type functionalOffsets struct {
	f      func(int) int
	length int
}

func (fo functionalOffsets) Len() int     { return fo.length }
func (fo functionalOffsets) At(i int) int { return fo.f(i) }

// Functional builds an OffsetSeq representing the logically-equivalent
// sequence [f(0), f(1), ..., f(length-1)] without materializing it.
func Functional(f func(int) int, length int) OffsetSeq {
	return functionalOffsets{f, length}
}

// checkRangeMonotone validates the range-iteration invariants of spec
// section 3: offsets non-decreasing, off(0) >= 0, off(k-1) <= bufLen.
// A violation is a programmer bug and is reported as a panic.
func checkRangeMonotone(offs OffsetSeq, bufLen int) {
	k := offs.Len()
	if k == 0 {
		return
	}
	prev := offs.At(0)
	if prev < 0 {
		panic("iter: range offsets must start at a non-negative index")
	}
	for i := 1; i < k; i++ {
		cur := offs.At(i)
		if cur < prev {
			panic("iter: range offsets must be non-decreasing")
		}
		prev = cur
	}
	if prev > bufLen {
		panic("iter: range offset exceeds buffer length")
	}
}

// checkScatterBounds validates that every scatter offset is within
// [0, bufLen).
func checkScatterBounds(offs OffsetSeq, bufLen int) {
	k := offs.Len()
	for i := 0; i < k; i++ {
		p := offs.At(i)
		if p < 0 || p >= bufLen {
			panic("iter: scatter offset out of bounds")
		}
	}
}
