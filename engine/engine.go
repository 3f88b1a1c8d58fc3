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

// Package engine is the fork-join data-parallel runtime every other
// parlaygo package is built on. It stands in for the task-parallel
// executor that spec authors assume is supplied externally: parallel_join,
// parallel_chunks and a current-worker count.
package engine

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/jtolds/gls"
	"golang.org/x/sync/semaphore"
)

var ctxMgr = gls.NewContextManager()

const workerSlotKey = "parlaygo-worker-slot"

func workers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

var sem = semaphore.NewWeighted(int64(workers()))

// NumThreads reports how many workers the engine is willing to run concurrently.
func NumThreads() int { return workers() }

// ThreadIndex reports the logical worker slot the calling goroutine was
// forked under, or -1 for the goroutine that started the outermost call.
func ThreadIndex() int {
	if v, ok := ctxMgr.GetValue(workerSlotKey); ok {
		return v.(int)
	}
	return -1
}

// ErrAffinityUnsupported is returned by SetAffinity on every platform: CPU
// pinning is benchmark-time setup, out of the core's scope.
var ErrAffinityUnsupported = fmt.Errorf("engine: thread affinity pinning is not supported by this runtime")

// SetAffinity is a documented stub.
func SetAffinity(core int) error {
	return ErrAffinityUnsupported
}

// wrappedPanic carries a recovered panic value across a goroutine boundary,
// the same shape storage/scan.go's scanError uses to cascade a panic through
// a channel.
type wrappedPanic struct {
	r     interface{}
	stack string
}

func (w wrappedPanic) Error() string {
	return fmt.Sprint(w.r) + "\n" + w.stack
}

func runRecover(f func()) (wp *wrappedPanic) {
	defer func() {
		if r := recover(); r != nil {
			wp = &wrappedPanic{r, string(debug.Stack())}
		}
	}()
	f()
	return nil
}

// Join runs a and b, in parallel when worker budget allows it, and returns
// only once both have finished. A panic from either side propagates to the
// caller by unwinding through Join once both sides have settled.
func Join(a, b func()) {
	if !sem.TryAcquire(1) {
		// no spare worker: run serially, still surfacing both panics in order
		aErr := runRecover(a)
		bErr := runRecover(b)
		if aErr != nil {
			panic(*aErr)
		}
		if bErr != nil {
			panic(*bErr)
		}
		return
	}

	slot := ThreadIndex() + 1
	done := make(chan *wrappedPanic, 1)
	gls.Go(func() {
		defer sem.Release(1)
		ctxMgr.SetValues(gls.Values{workerSlotKey: slot}, func() {
			done <- runRecover(b)
		})
	})

	aErr := runRecover(a)
	bErr := <-done
	if aErr != nil {
		panic(*aErr)
	}
	if bErr != nil {
		panic(*bErr)
	}
}

// Range recursively splits [lo, hi) via Join until a chunk is no larger than
// minLen, then calls f serially on the leaf range. This is the parallel_chunks
// primitive every sort/scan/pack routine dispatches through.
func Range(lo, hi, minLen int, f func(lo, hi int)) {
	if hi <= lo {
		return
	}
	if minLen <= 0 || hi-lo <= minLen {
		f(lo, hi)
		return
	}
	mid := lo + (hi-lo)/2
	Join(func() { Range(lo, mid, minLen, f) }, func() { Range(mid, hi, minLen, f) })
}
