package sortpkg

import (
	"math/rand"
	"sort"
	"testing"
)

func identityKey(v int) uint64 { return uint64(v) }

func TestIntegerSortScenario(t *testing.T) {
	a := []int{7, 3, 5, 1, 4, 2, 6, 0}
	got := IntegerSort(a, identityKey, 3)
	want := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIntegerSortWithOffsetsScenario(t *testing.T) {
	a := []int{7, 3, 5, 1, 4, 2, 6, 0}
	offsets := IntegerSortWithOffsets(a, identityKey, 3)
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("offsets[%d] = %d, want %d", i, offsets[i], want[i])
		}
	}
	sortedWant := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for i := range sortedWant {
		if a[i] != sortedWant[i] {
			t.Fatalf("a[%d] = %d, want %d", i, a[i], sortedWant[i])
		}
	}
}

func TestIntegerSortMatchesStdlibWideKeys(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	a := make([]int, 4000)
	for i := range a {
		a[i] = r.Intn(1 << 20)
	}
	want := append([]int(nil), a...)
	sort.Ints(want)
	got := IntegerSort(a, identityKey, 20)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIntegerSortWithOffsetsPanicsOnWideKeys(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic for a key width beyond the single-pass budget")
		}
	}()
	a := make([]int, 10)
	IntegerSortWithOffsets(a, identityKey, 40)
}
