package putil

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLog2Up(t *testing.T) {
	cases := map[uint64]uint{
		0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1024: 10, 1025: 11,
	}
	for x, want := range cases {
		if got := Log2Up(x); got != want {
			t.Errorf("Log2Up(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestHashesDiffer(t *testing.T) {
	if Hash64(1) == Hash64(2) {
		t.Fatal("Hash64 collided trivially on 1 and 2")
	}
	if Hash64Cheap(1) == Hash64Cheap(2) {
		t.Fatal("Hash64Cheap collided trivially on 1 and 2")
	}
}

func TestWriteMinKeepsMinimum(t *testing.T) {
	var cell atomic.Int64
	cell.Store(1 << 62)

	var wg sync.WaitGroup
	for i := int64(0); i < 200; i++ {
		wg.Add(1)
		go func(v int64) {
			defer wg.Done()
			WriteMin(&cell, v)
		}(i)
	}
	wg.Wait()
	if cell.Load() != 0 {
		t.Fatalf("expected minimum 0 to win, got %d", cell.Load())
	}
}

func TestWriteMinRejectsLarger(t *testing.T) {
	var cell atomic.Int64
	cell.Store(5)
	if WriteMin(&cell, 10) {
		t.Fatal("WriteMin must not install a larger value")
	}
	if cell.Load() != 5 {
		t.Fatalf("cell mutated despite rejected write: %d", cell.Load())
	}
}
