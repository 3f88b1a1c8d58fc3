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
package hashtable

import (
	"fmt"

	"github.com/google/btree"
)

// SortedEntries returns every occupied slot's value ordered by key,
// useful for debugging and tests; it's not on the hot path, so it pays
// for an actual ordered structure instead of sorting the Entries slice.
func (t *Table[K, V]) SortedEntries() []V {
	tree := btree.NewG[V](32, func(a, b V) bool { return a.Key() < b.Key() })
	for _, v := range t.Entries() {
		tree.ReplaceOrInsert(v)
	}
	out := make([]V, 0, tree.Len())
	tree.Ascend(func(v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Print writes every entry, ordered by key, to stdout.
func (t *Table[K, V]) Print() {
	for _, v := range t.SortedEntries() {
		fmt.Println(v)
	}
}
