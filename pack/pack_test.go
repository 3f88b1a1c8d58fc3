package pack

import (
	"strings"
	"testing"
)

func TestPackPreservesOrderAndLength(t *testing.T) {
	a := []int{10, 20, 30, 40, 50, 60, 70}
	flags := []bool{true, false, true, true, false, false, true}
	got := Pack(a, flags)
	want := []int{10, 30, 40, 70}
	popcount := 0
	for _, f := range flags {
		if f {
			popcount++
		}
	}
	if len(got) != popcount {
		t.Fatalf("len(got) = %d, want popcount %d", len(got), popcount)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPackLargeInputCrossesBlockBoundary(t *testing.T) {
	n := 50000
	a := make([]int, n)
	flags := make([]bool, n)
	want := 0
	for i := range a {
		a[i] = i
		flags[i] = i%3 == 0
		if flags[i] {
			want++
		}
	}
	got := Pack(a, flags)
	if len(got) != want {
		t.Fatalf("len(got) = %d, want %d", len(got), want)
	}
	for i, v := range got {
		if v%3 != 0 {
			t.Fatalf("got[%d] = %d is not a multiple of 3", i, v)
		}
		if i > 0 && v <= got[i-1] {
			t.Fatalf("order not preserved at %d: %d after %d", i, v, got[i-1])
		}
	}
}

func TestPackIndex(t *testing.T) {
	flags := []bool{false, true, true, false, true}
	got := PackIndex(flags)
	want := []int{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFlattenTotalLengthAndOrder(t *testing.T) {
	subs := [][]int{{1, 2, 3}, {}, {4}, {5, 6}}
	got := Flatten(subs)
	want := []int{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFlattenByVal(t *testing.T) {
	vals := []string{"a", "b", "c"}
	counts := []int{2, 0, 3}
	got := FlattenByVal(vals, counts)
	want := []string{"a", "a", "c", "c", "c"}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func wordBoundaries(s string) (isStart, isEnd func(int) bool) {
	isWord := func(i int) bool {
		if i < 0 || i >= len(s) {
			return false
		}
		return !strings.ContainsRune(" \t\n", rune(s[i]))
	}
	isStart = func(i int) bool { return isWord(i) && !isWord(i-1) }
	isEnd = func(i int) bool { return isWord(i) && !isWord(i+1) }
	return
}

func TestMapTokensTokenizesWords(t *testing.T) {
	s := "the quick brown fox"
	isStart, isEnd := wordBoundaries(s)
	tokens := MapTokens(len(s), isStart, isEnd)
	var words []string
	for _, tk := range tokens {
		words = append(words, s[tk.Start:tk.End])
	}
	want := []string{"the", "quick", "brown", "fox"}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("words[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestMapTokensPackedMatchesDirect(t *testing.T) {
	s := "one two  three   four"
	isStart, isEnd := wordBoundaries(s)
	direct := MapTokens(len(s), isStart, isEnd)
	packed := MapTokensPacked(len(s), isStart, isEnd)
	if len(direct) != len(packed) {
		t.Fatalf("len mismatch: direct=%d packed=%d", len(direct), len(packed))
	}
	for i := range direct {
		if direct[i] != packed[i] {
			t.Fatalf("token %d: direct=%v packed=%v", i, direct[i], packed[i])
		}
	}
}
