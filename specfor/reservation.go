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

// Package specfor is the speculative-for loop of spec 4.I: an optimistic
// parallel scheduler for data-dependent iterations, arbitrated by
// priority-by-index Reservation cells.
package specfor

import (
	"math"
	"sync/atomic"

	"github.com/launix-de/parlaygo/internal/putil"
)

// Unreserved is the sentinel a Reservation holds before any index claims it.
const Unreserved = math.MaxInt64

// Reservation is a single shared-resource cell: at most one index "owns"
// it at a time, and among concurrent claimants the lowest index always
// wins, because Reserve is an atomic write-min.
type Reservation struct {
	cur atomic.Int64
}

// NewReservation returns a Reservation in its unreserved state.
func NewReservation() *Reservation {
	r := &Reservation{}
	r.Reset()
	return r
}

// Reset clears the cell back to Unreserved.
func (r *Reservation) Reset() { r.cur.Store(Unreserved) }

// Reserve attempts to claim the cell for i; it is monotone and
// idempotent; concurrent callers converge on the smallest i that ever
// called Reserve since the last Reset.
func (r *Reservation) Reserve(i int) { putil.WriteMin(&r.cur, int64(i)) }

// Check reports whether i currently owns the cell.
func (r *Reservation) Check(i int) bool { return r.cur.Load() == int64(i) }

// CheckReset atomically verifies i owns the cell and, if so, clears it
// back to Unreserved, returning whether the check succeeded.
func (r *Reservation) CheckReset(i int) bool {
	return r.cur.CompareAndSwap(int64(i), Unreserved)
}

// Reserved reports whether any index currently owns the cell.
func (r *Reservation) Reserved() bool { return r.cur.Load() < Unreserved }
