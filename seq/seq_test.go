package seq

import (
	"math/rand"
	"testing"
)

func sum(a, b int) int { return a + b }

func TestReduceMatchesSerial(t *testing.T) {
	n := 50000
	a := make([]int, n)
	for i := range a {
		a[i] = i%7 - 3
	}
	want := ReduceSerial(a, sum)
	got := Reduce(a, sum)
	if got != want {
		t.Fatalf("Reduce = %d, want %d", got, want)
	}
}

func TestReduceAssociativeLaw(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	a := make([]int, 3000)
	for i := range a {
		a[i] = r.Intn(1000)
	}
	split := 1200
	left := Reduce(a[:split], sum)
	right := Reduce(a[split:], sum)
	whole := Reduce(a, sum)
	if left+right != whole {
		t.Fatalf("reduce(a++b) != op(reduce(a), reduce(b)): %d+%d != %d", left, right, whole)
	}
}

func TestScanExclusiveMatchesReduce(t *testing.T) {
	n := 20000
	a := make([]int, n)
	for i := range a {
		a[i] = i % 13
	}
	out, total := Scan(a, 0, false, sum)
	if total != Reduce(a, sum) {
		t.Fatalf("scan total %d != reduce %d", total, Reduce(a, sum))
	}
	// exclusive scan: out[n-1] + a[n-1] == total
	if out[n-1]+a[n-1] != total {
		t.Fatalf("out[last]+a[last] = %d, want %d", out[n-1]+a[n-1], total)
	}
	// spot-check a prefix
	running := 0
	for i := 0; i < 500; i++ {
		if out[i] != running {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], running)
		}
		running += a[i]
	}
}

func TestScanInclusive(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	out, total := Scan(a, 0, true, sum)
	want := []int{1, 3, 6, 10, 15}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
	if total != 15 {
		t.Fatalf("total = %d, want 15", total)
	}
}

func TestScanInplaceDoesNotAllocateNewCaller(t *testing.T) {
	a := []int{5, 1, 2, 8, 3}
	total := ScanInplace(a, 0, false, sum)
	if total != 19 {
		t.Fatalf("total = %d, want 19", total)
	}
	want := []int{0, 5, 6, 8, 16}
	for i := range want {
		if a[i] != want[i] {
			t.Fatalf("a[%d] = %d, want %d", i, a[i], want[i])
		}
	}
}

func TestScanDelayedMatchesScan(t *testing.T) {
	n := 15000
	src := make([]int, n)
	for i := range src {
		src[i] = (i * 7) % 31
	}
	want, wantTotal := Scan(src, 0, false, sum)
	got := make([]int, n)
	total := ScanDelayed(n, 0, false, sum, func(i int) int { return src[i] }, func(i, v int) { got[i] = v })
	if total != wantTotal {
		t.Fatalf("total = %d, want %d", total, wantTotal)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBlockSize(t *testing.T) {
	if BlockSize(0) != BaseBlockSize {
		t.Fatalf("BlockSize(0) = %d, want %d", BlockSize(0), BaseBlockSize)
	}
	big := BlockSize(10_000_000)
	if big <= BaseBlockSize {
		t.Fatalf("BlockSize(10M) = %d, want > %d", big, BaseBlockSize)
	}
}
