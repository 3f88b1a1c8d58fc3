package sortpkg

import (
	"math/rand"
	"testing"
)

func TestCountSortSerialStable(t *testing.T) {
	a := []kv{{2, 0}, {1, 1}, {2, 2}, {0, 3}, {1, 4}}
	keys := make([]int, len(a))
	for i, e := range a {
		keys[i] = e.key
	}
	out := make([]kv, len(a))
	offsets := CountSort(a, out, keys, 3)
	want := []int{0, 1, 3, 5}
	for i, w := range want {
		if offsets[i] != w {
			t.Fatalf("offsets[%d] = %d, want %d", i, offsets[i], w)
		}
	}
	wantOrder := []int{3, 1, 4, 0, 2}
	for i, tag := range wantOrder {
		if out[i].tag != tag {
			t.Fatalf("out[%d].tag = %d, want %d", i, out[i].tag, tag)
		}
	}
}

func TestCountSortParallelMatchesSerial(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	n := 20000
	numBuckets := 64
	a := make([]kv, n)
	keys := make([]int, n)
	for i := range a {
		k := r.Intn(numBuckets)
		a[i] = kv{key: k, tag: i}
		keys[i] = k
	}
	outPar := make([]kv, n)
	offsetsPar := countSortParallel(a, outPar, keys, numBuckets)
	outSer := make([]kv, n)
	offsetsSer := countSortSerial(a, outSer, keys, numBuckets)
	for i := range offsetsPar {
		if offsetsPar[i] != offsetsSer[i] {
			t.Fatalf("offsets differ at %d: %d vs %d", i, offsetsPar[i], offsetsSer[i])
		}
	}
	for i := range outPar {
		if outPar[i] != outSer[i] {
			t.Fatalf("out differs at %d: %+v vs %+v", i, outPar[i], outSer[i])
		}
	}
}
