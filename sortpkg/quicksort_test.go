package sortpkg

import (
	"math/rand"
	"sort"
	"testing"
)

func isSorted(a []int) bool {
	return sort.IntsAreSorted(a)
}

func TestInsertionSortSmall(t *testing.T) {
	a := []int{5, 3, 4, 1, 2}
	InsertionSort(a, Ascending[int])
	if !isSorted(a) {
		t.Fatalf("not sorted: %v", a)
	}
}

func TestQuickSortMatchesStdlib(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	a := make([]int, 3000)
	for i := range a {
		a[i] = r.Intn(10000)
	}
	want := append([]int(nil), a...)
	sort.Ints(want)
	QuickSort(a, Ascending[int])
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("a[%d] = %d, want %d", i, a[i], want[i])
		}
	}
}

func TestQuickSortAllEqual(t *testing.T) {
	a := make([]int, 2000)
	for i := range a {
		a[i] = 7
	}
	QuickSort(a, Ascending[int])
	for _, v := range a {
		if v != 7 {
			t.Fatalf("got %d, want 7", v)
		}
	}
}

func TestQuickSortEmptyAndSingle(t *testing.T) {
	var empty []int
	QuickSort(empty, Ascending[int])
	single := []int{42}
	QuickSort(single, Ascending[int])
	if single[0] != 42 {
		t.Fatalf("single element mutated")
	}
}
