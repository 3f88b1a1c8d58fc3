package sortpkg

import (
	"math/rand"
	"sort"
	"testing"
)

type kv struct {
	key int
	tag int
}

func TestMergeSortMatchesStdlib(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	a := make([]int, 5000)
	for i := range a {
		a[i] = r.Intn(500)
	}
	want := append([]int(nil), a...)
	sort.Ints(want)
	sorted := MergeSort(a, Ascending[int])
	for i := range sorted {
		if sorted[i] != want[i] {
			t.Fatalf("sorted[%d] = %d, want %d", i, sorted[i], want[i])
		}
	}
}

func TestMergeSortIsStable(t *testing.T) {
	n := 4000
	a := make([]kv, n)
	for i := range a {
		a[i] = kv{key: i % 17, tag: i}
	}
	MergeSortInplace(a, func(x, y kv) bool { return x.key < y.key })
	lastTagForKey := map[int]int{}
	for _, e := range a {
		if prev, ok := lastTagForKey[e.key]; ok && prev > e.tag {
			t.Fatalf("stability violated at key %d: saw tag %d after %d", e.key, e.tag, prev)
		}
		lastTagForKey[e.key] = e.tag
	}
}

func TestMergeMergesTwoSortedRuns(t *testing.T) {
	left := []int{1, 3, 5, 7, 9}
	right := []int{2, 4, 6, 8, 10}
	out := make([]int, 10)
	Merge(left, right, out, Ascending[int])
	for i := 0; i < 10; i++ {
		if out[i] != i+1 {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], i+1)
		}
	}
}
