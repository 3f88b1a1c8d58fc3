/*
Copyright (C) 2023  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package pack

import (
	"github.com/launix-de/parlaygo/engine"
	"github.com/launix-de/parlaygo/seq"
)

// Token is a half-open [Start, End) range into the buffer MapTokens was
// run over.
type Token struct {
	Start int
	End   int
}

// tokenState is the scan accumulator: Count tracks how many token starts
// have been seen so far (the running ordinal), Pos carries the most
// recent start position forward.
type tokenState struct {
	Count int
	Pos   int
}

// tokenOp is the associative scan operator of spec 4.F: a segment b that
// contains a start adds its start count to a's running ordinal and
// carries b's latest start position; a segment with no start just
// propagates a forward.
func tokenOp(a, b tokenState) tokenState {
	if b.Count == 0 {
		return a
	}
	return tokenState{a.Count + b.Count, b.Pos}
}

func countTrue(n int, pred func(int) bool) int {
	if n == 0 {
		return 0
	}
	bs := seq.BlockSize(n)
	if bs > n {
		bs = n
	}
	numBlocks := (n + bs - 1) / bs
	counts := make([]int, numBlocks)
	engine.Range(0, numBlocks, 1, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			s, e := bi*bs, min(n, (bi+1)*bs)
			c := 0
			for i := s; i < e; i++ {
				if pred(i) {
					c++
				}
			}
			counts[bi] = c
		}
	})
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func tokenLeaf(isStart func(int) bool) func(int) tokenState {
	return func(i int) tokenState {
		c := 0
		if isStart(i) {
			c = 1
		}
		return tokenState{c, i}
	}
}

// MapTokens tokenizes a buffer of length n given per-position isStart and
// isEnd predicates: an associative scan carries each token's start
// position and ordinal forward to its end position, and every end
// position writes its token directly into scan_count-1 of the output —
// no CAS needed, since the running ordinal is already unique and
// monotonic.
func MapTokens(n int, isStart, isEnd func(int) bool) []Token {
	if n == 0 {
		return nil
	}
	total := countTrue(n, isEnd)
	out := make([]Token, total)
	emit := func(i int, s tokenState) {
		if s.Count > 0 && isEnd(i) {
			out[s.Count-1] = Token{Start: s.Pos, End: i + 1}
		}
	}
	seq.ScanDelayed(n, tokenState{0, -1}, true, tokenOp, tokenLeaf(isStart), emit)
	return out
}

// MapTokensPacked is the safe, pack-based sibling of MapTokens: it writes
// every end position's token into a same-length candidate buffer plus a
// kept-flag, then compacts with Pack. It produces the same ordered
// output as MapTokens.
func MapTokensPacked(n int, isStart, isEnd func(int) bool) []Token {
	if n == 0 {
		return nil
	}
	candidates := make([]Token, n)
	flags := make([]bool, n)
	emit := func(i int, s tokenState) {
		if s.Count > 0 && isEnd(i) {
			candidates[i] = Token{Start: s.Pos, End: i + 1}
			flags[i] = true
		}
	}
	seq.ScanDelayed(n, tokenState{0, -1}, true, tokenOp, tokenLeaf(isStart), emit)
	return Pack(candidates, flags)
}
