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
package specfor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/launix-de/parlaygo/engine"
)

// ErrRoundsExceeded is returned when a run fails to complete all indices
// within 100 + 200*granularity rounds, the same cap spec.md's stateful
// variant documents; Run enforces it too rather than looping forever on
// a caller's reserve/commit pair that never terminates.
var ErrRoundsExceeded = errors.New("specfor: exceeded round cap before all indices committed")

// Stats summarizes one Run/RunStateful invocation.
type Stats struct {
	RunID           uuid.UUID
	Rounds          int
	TotalCandidates int
	TotalCommitted  int
	FinalRoundSize  int
}

// Run schedules indices in [s, e) through reserve/commit rounds with no
// per-candidate scratch state.
func Run(s, e, granularity int, reserve func(i int) bool, commit func(i int) bool) (Stats, error) {
	return RunStateful[struct{}](s, e, granularity,
		func(int) struct{} { return struct{}{} },
		func(i int, _ *struct{}) bool { return reserve(i) },
		func(i int, _ *struct{}) bool { return commit(i) },
	)
}

// RunStateful schedules indices in [s, e) through reserve/commit rounds,
// giving each candidate a private scratch value of type S that persists
// across re-enqueues of the same index.
//
// reserve(i, &scratch) must only mutate shared state via Reservation.Reserve;
// it returns whether i should proceed to commit this round. commit(i,
// &scratch) re-validates the reservation and performs the permanent
// mutation, returning true on success (i is done) or false to retry i in
// a later round. Because Reservation keeps the minimum index, the
// lowest-numbered contender among any conflicting set always wins,
// giving deterministic, serial-equivalent results.
func RunStateful[S any](s, e, granularity int, newScratch func(i int) S, reserve func(i int, scratch *S) bool, commit func(i int, scratch *S) bool) (Stats, error) {
	stats := Stats{RunID: uuid.New()}
	n := e - s
	if n <= 0 {
		return stats, nil
	}
	if granularity < 1 {
		granularity = 1
	}
	maxRoundSize := (n-1)/granularity + 1
	roundSize := maxRoundSize / 4
	if roundSize < 1 {
		roundSize = 1
	}
	maxRounds := 100 + 200*granularity

	scratch := make([]S, n)
	for i := 0; i < n; i++ {
		scratch[i] = newScratch(s + i)
	}

	var holdList []int
	nextFresh := s
	numberDone := 0

	for numberDone < n {
		stats.Rounds++
		if stats.Rounds > maxRounds {
			stats.FinalRoundSize = roundSize
			return stats, fmt.Errorf("%w: %d rounds, %d/%d indices committed", ErrRoundsExceeded, maxRounds, numberDone, n)
		}

		candidates := make([]int, 0, roundSize)
		candidates = append(candidates, holdList...)
		for len(candidates) < roundSize && nextFresh < e {
			candidates = append(candidates, nextFresh)
			nextFresh++
		}
		if len(candidates) == 0 {
			break
		}
		stats.TotalCandidates += len(candidates)

		keep := make([]bool, len(candidates))
		rcs := max(1, granularity)
		engine.Range(0, len(candidates), rcs, func(lo, hi int) {
			for ci := lo; ci < hi; ci++ {
				idx := candidates[ci]
				keep[ci] = reserve(idx, &scratch[idx-s])
			}
		})

		ccs := max(1, granularity)
		engine.Range(0, len(candidates), ccs, func(lo, hi int) {
			for ci := lo; ci < hi; ci++ {
				if !keep[ci] {
					continue
				}
				idx := candidates[ci]
				if commit(idx, &scratch[idx-s]) {
					keep[ci] = false
				}
			}
		})

		newHold := holdList[:0]
		failed := 0
		for ci, idx := range candidates {
			if keep[ci] {
				newHold = append(newHold, idx)
				failed++
			} else {
				numberDone++
				stats.TotalCommitted++
			}
		}
		holdList = newHold

		failRate := float64(failed) / float64(len(candidates))
		switch {
		case failRate < 0.10:
			roundSize = min(roundSize*2, maxRoundSize)
		case failRate > 0.20:
			roundSize = max(roundSize/2, maxRoundSize/64+1)
		}
	}
	stats.FinalRoundSize = roundSize
	return stats, nil
}
