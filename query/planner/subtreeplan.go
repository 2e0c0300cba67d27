// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package planner

import (
	"sort"
	"strings"

	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/util/cmp"
)

// nodeSet is a sorted set of triple-graph node ids.
type nodeSet []int

func newNodeSet(ids ...int) nodeSet {
	s := append(nodeSet{}, ids...)
	sort.Ints(s)
	return s
}

func (s nodeSet) contains(id int) bool {
	i := sort.SearchInts(s, id)
	return i < len(s) && s[i] == id
}

func (s nodeSet) disjoint(other nodeSet) bool {
	for _, id := range other {
		if s.contains(id) {
			return false
		}
	}
	return true
}

func (s nodeSet) union(other nodeSet) nodeSet {
	return newNodeSet(append(append(nodeSet{}, s...), other...)...)
}

// filterSet is a sorted set of indices into the query's filter list.
type filterSet []int

func (s filterSet) contains(id int) bool {
	i := sort.SearchInts(s, id)
	return i < len(s) && s[i] == id
}

func (s filterSet) with(id int) filterSet {
	out := append(filterSet{}, s...)
	out = append(out, id)
	sort.Ints(out)
	return out
}

func (s filterSet) union(other filterSet) filterSet {
	out := append(filterSet{}, s...)
	for _, id := range other {
		if !s.contains(id) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// SubtreePlan is (qet, includedNodes, includedFilters) from §3: the
// operator tree built so far, plus which triple-graph nodes and which
// filters it has incorporated.
type SubtreePlan struct {
	Root            plan.Operator
	IncludedNodes   nodeSet
	IncludedFilters filterSet
}

// pruningKeyOf computes the canonical pruning key from §4.2.4: the name of
// the column the plan is ordered on, plus the sorted set of included node
// ids. Built with the cmp package's Keyer convention.
type pruningKeyOf SubtreePlan

func (p pruningKeyOf) Key(b *strings.Builder) {
	cmp.WriteString(b, p.Root.SortedOn())
	for _, n := range p.IncludedNodes {
		cmp.WriteInt64(b, int64(n))
	}
}

func pruningKey(p SubtreePlan) string {
	return cmp.Key(pruningKeyOf(p))
}

// prune keeps, for each distinct pruning key within row, only the
// minimum-cost plan, per §4.2.4. Ties break on insertion order (stable),
// matching §4.2.6.
func prune(row []SubtreePlan) []SubtreePlan {
	plansConsidered.Add(float64(len(row)))
	best := make(map[string]int) // key -> index into out
	var out []SubtreePlan
	for _, p := range row {
		key := pruningKey(p)
		if idx, ok := best[key]; ok {
			if p.Root.CostEstimate() < out[idx].Root.CostEstimate() {
				out[idx] = p
			}
			plansPruned.Add(1)
			continue
		}
		best[key] = len(out)
		out = append(out, p)
	}
	return out
}

// connected reports whether some node in a has a graph edge into b, per
// §4.2.2.
func connected(adjacent func(node int) []int, a, b nodeSet) bool {
	for _, n := range a {
		for _, other := range adjacent(n) {
			if b.contains(other) {
				return true
			}
		}
	}
	return false
}
