package sortpkg

import (
	"math/rand"
	"sort"
	"testing"
)

func TestBucketSortMatchesStdlib(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	a := make([]int, 4000)
	for i := range a {
		a[i] = r.Intn(20000)
	}
	want := append([]int(nil), a...)
	sort.Ints(want)
	BucketSort(a, Ascending[int], false)
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("a[%d] = %d, want %d", i, a[i], want[i])
		}
	}
}

func TestBucketSortDegeneratePivots(t *testing.T) {
	a := make([]int, 3000)
	for i := range a {
		a[i] = 1
	}
	BucketSort(a, Ascending[int], false)
	for _, v := range a {
		if v != 1 {
			t.Fatalf("got %d, want 1", v)
		}
	}
}
