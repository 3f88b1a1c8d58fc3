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
package transpose

// Buckets takes a block-major count matrix (counts[block*numBuckets+bucket]
// holds how many of that block's elements landed in that bucket) and
// transposes it logically into bucket-major destination offsets, without
// ever materializing the bucket-major matrix itself: the scatter that
// follows only needs, for each (block, bucket) pair, the starting index
// in the final bucket-major array.
//
// It returns bucketOffsets (length numBuckets+1, the exclusive prefix sum
// of per-bucket totals, bucketOffsets[numBuckets] == total element count)
// and dest, where dest[block][bucket] is that pair's destination start
// offset.
func Buckets(counts []int, numBlocks, numBuckets int) (bucketOffsets []int, dest [][]int) {
	totals := make([]int, numBuckets)
	for blk := 0; blk < numBlocks; blk++ {
		row := counts[blk*numBuckets : (blk+1)*numBuckets]
		for b, c := range row {
			totals[b] += c
		}
	}
	bucketOffsets = make([]int, numBuckets+1)
	for b := 0; b < numBuckets; b++ {
		bucketOffsets[b+1] = bucketOffsets[b] + totals[b]
	}
	dest = make([][]int, numBlocks)
	running := append([]int(nil), bucketOffsets[:numBuckets]...)
	for blk := 0; blk < numBlocks; blk++ {
		row := make([]int, numBuckets)
		copy(row, running)
		src := counts[blk*numBuckets : (blk+1)*numBuckets]
		for b, c := range src {
			running[b] += c
		}
		dest[blk] = row
	}
	return bucketOffsets, dest
}
