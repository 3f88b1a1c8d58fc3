package sortpkg

import (
	"math/rand"
	"sort"
	"testing"
)

func TestSampleSortScenario(t *testing.T) {
	a := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4, 6, 2, 6, 4}
	want := []int{1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 7, 8, 8, 9, 9, 9}
	got := SampleSort(a, Ascending[int], false)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestSampleSortMatchesStdlibOnLargeInput(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	a := make([]int, 6000)
	for i := range a {
		a[i] = r.Intn(50000)
	}
	want := append([]int(nil), a...)
	sort.Ints(want)
	got := SampleSort(a, Ascending[int], false)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSampleSortStablePreservesOrderOfEqualKeys(t *testing.T) {
	n := 5000
	a := make([]kv, n)
	for i := range a {
		a[i] = kv{key: i % 23, tag: i}
	}
	sorted := SampleSort(a, func(x, y kv) bool { return x.key < y.key }, true)
	lastTagForKey := map[int]int{}
	for _, e := range sorted {
		if prev, ok := lastTagForKey[e.key]; ok && prev > e.tag {
			t.Fatalf("stability violated at key %d: tag %d after %d", e.key, e.tag, prev)
		}
		lastTagForKey[e.key] = e.tag
	}
}
