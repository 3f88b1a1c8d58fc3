package collectreduce

import (
	"math/rand"
	"sort"
	"testing"
)

type intHelper struct{}

func (intHelper) Hash(k int) uint64       { return uint64(k)*2654435761 + 1 }
func (intHelper) GetKey(item int) int     { return item }
func (intHelper) Init() int               { return 0 }
func (intHelper) GetVal(item int) int     { return 1 }
func (intHelper) Update(acc *int, v int)  { *acc += v }
func (intHelper) Combine(acc *int, xs []int) { *acc += len(xs) }

func TestReduceFewBucketsHistogram(t *testing.T) {
	items := []int{0, 1, 1, 2, 2, 2, 3, 0, 1}
	got := Reduce[int, int, int](items, 4, intHelper{})
	// Slots are Hash(k) % 4: key 3 -> 0, key 0 -> 1, key 1 -> 2, key 2 -> 3.
	want := []int{1, 2, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReduceBucketedMatchesFewBuckets(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	n := 20000
	numKeys := 4000
	items := make([]int, n)
	for i := range items {
		items[i] = r.Intn(numKeys)
	}
	numBuckets := 8192
	got := reduceBucketed[int, int, int](items, numBuckets, intHelper{})
	want := reduceFewBuckets[int, int, int](items, numBuckets, intHelper{})
	for b := 0; b < numBuckets; b++ {
		if got[b] != want[b] {
			t.Fatalf("bucket %d: got %d, want %d", b, got[b], want[b])
		}
	}
}

type dedupHelper struct{}

func (dedupHelper) Hash(k int) uint64          { return uint64(k)*2654435761 + 1 }
func (dedupHelper) GetKey(item int) int        { return item }
func (dedupHelper) Init(acc *int, item int)    { *acc = item }
func (dedupHelper) Reduce(items []int) int     { return items[0] }
func (dedupHelper) Update(acc *int, item int)  {}

func TestReduceSparseDedupScenario(t *testing.T) {
	items := []int{5, 5, 1, 3, 1, 5, 2}
	got := ReduceSparse[int, int, int](items, dedupHelper{})
	seen := map[int]bool{}
	for _, p := range got {
		if seen[p.Key] {
			t.Fatalf("key %d appeared more than once", p.Key)
		}
		seen[p.Key] = true
	}
	want := map[int]bool{1: true, 2: true, 3: true, 5: true}
	if len(seen) != len(want) {
		t.Fatalf("got keys %v, want %v", seen, want)
	}
	for k := range want {
		if !seen[k] {
			t.Fatalf("missing key %d", k)
		}
	}
}

func TestReduceSparseLargeMatchesSmall(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	n := 30000
	numKeys := 5000
	items := make([]int, n)
	for i := range items {
		items[i] = r.Intn(numKeys)
	}
	small := sparseSmall[int, int, int](items, dedupHelper{})
	large := sparseLarge[int, int, int](items, dedupHelper{})
	smallKeys := make([]int, len(small))
	for i, p := range small {
		smallKeys[i] = p.Key
	}
	largeKeys := make([]int, len(large))
	for i, p := range large {
		largeKeys[i] = p.Key
	}
	sort.Ints(smallKeys)
	sort.Ints(largeKeys)
	if len(smallKeys) != len(largeKeys) {
		t.Fatalf("len mismatch: small=%d large=%d", len(smallKeys), len(largeKeys))
	}
	for i := range smallKeys {
		if smallKeys[i] != largeKeys[i] {
			t.Fatalf("key set differs at %d: %d vs %d", i, smallKeys[i], largeKeys[i])
		}
	}
}
