package hashtable

import (
	"sort"
	"sync"
	"testing"
)

type entry struct {
	k int
	v string
}

func (e entry) Key() int { return e.k }

func identityHash(k int) uint64 { return uint64(k) }

func keepFirst(newV, oldV entry) bool { return false }

func overwrite(newV, oldV entry) bool { return true }

func TestInsertFindBasic(t *testing.T) {
	tab := New[int, entry](16, 0.5, identityHash, keepFirst)
	items := []entry{{3, "c"}, {1, "a"}, {2, "b"}}
	for _, it := range items {
		if !tab.Insert(it) {
			t.Fatalf("insert %v failed", it)
		}
	}
	for _, it := range items {
		got, ok := tab.Find(it.k)
		if !ok || got != it {
			t.Fatalf("find(%d) = %v, %v, want %v, true", it.k, got, ok, it)
		}
	}
	if _, ok := tab.Find(99); ok {
		t.Fatalf("find(99) should miss")
	}
}

func TestInsertEqualKeyReplacePolicy(t *testing.T) {
	tab := New[int, entry](16, 0.5, identityHash, keepFirst)
	tab.Insert(entry{1, "first"})
	if tab.Insert(entry{1, "second"}) {
		t.Fatalf("keepFirst replace should reject the second insert")
	}
	got, _ := tab.Find(1)
	if got.v != "first" {
		t.Fatalf("want first to survive, got %v", got)
	}

	tab2 := New[int, entry](16, 0.5, identityHash, overwrite)
	tab2.Insert(entry{1, "first"})
	if !tab2.Insert(entry{1, "second"}) {
		t.Fatalf("overwrite replace should accept the second insert")
	}
	got2, _ := tab2.Find(1)
	if got2.v != "second" {
		t.Fatalf("want second to survive, got %v", got2)
	}
}

func TestProbeSortednessAfterCollisions(t *testing.T) {
	// All keys hash to the same slot, forcing linear probing; every
	// key should still be found, and find must stop early on misses.
	constHash := func(k int) uint64 { return 7 }
	tab := New[int, entry](100, 0.5, constHash, keepFirst)
	keys := []int{50, 10, 90, 30, 70, 20, 60, 40, 80}
	for _, k := range keys {
		tab.Insert(entry{k, "v"})
	}
	for _, k := range keys {
		if _, ok := tab.Find(k); !ok {
			t.Fatalf("find(%d) missed after collisions", k)
		}
	}
	if _, ok := tab.Find(1000); ok {
		t.Fatalf("find(1000) should miss (greater than every resident key)")
	}
}

func TestConcurrentInsert(t *testing.T) {
	n := 2000
	tab := New[int, entry](n, 0.6, identityHash, keepFirst)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += 8 {
				tab.Insert(entry{i, "x"})
			}
		}(w)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		if _, ok := tab.Find(i); !ok {
			t.Fatalf("find(%d) missed after concurrent insert", i)
		}
	}
}

func TestEntriesAndSortedEntries(t *testing.T) {
	tab := New[int, entry](16, 0.5, identityHash, keepFirst)
	want := []int{5, 1, 9, 3}
	for _, k := range want {
		tab.Insert(entry{k, "v"})
	}
	entries := tab.Entries()
	if len(entries) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(entries), len(want))
	}
	sorted := tab.SortedEntries()
	keys := make([]int, len(sorted))
	for i, e := range sorted {
		keys[i] = e.k
	}
	if !sort.IntsAreSorted(keys) {
		t.Fatalf("SortedEntries() not sorted by key: %v", keys)
	}
}

func TestNewPanicsOnLoadGEOne(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("want panic for load >= 1.0")
		}
	}()
	New[int, entry](16, 1.0, identityHash, keepFirst)
}
