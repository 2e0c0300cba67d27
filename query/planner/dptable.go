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
	"context"
	"fmt"

	"github.com/akutan-project/qcore/query/graph"
	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/sparql"
	"github.com/akutan-project/qcore/util/parallel"
)

// Table is the DP table from §3: table[k-1] holds every surviving plan
// covering exactly k triple-graph nodes.
type Table [][]SubtreePlan

// Build runs the full plan enumerator (§4.2) over a collapsed triple graph:
// seeding, then row-by-row DP merge/prune/filter-injection. The independent
// merge-candidate batches for a given row (one per split point i, §4.2.2)
// are evaluated concurrently via util/parallel, matching §10.2's
// "worker fan-out" — the row is still only published once every batch for
// it has completed, so callers observe a synchronous per-query call.
func Build(ctx context.Context, g *graph.Graph, filters []sparql.Filter, seeds []SubtreePlan) (Table, error) {
	n := len(g.Nodes)
	if n == 0 {
		return nil, nil
	}
	table := make(Table, n)

	row1, err := injectFilters(seeds, filters)
	if err != nil {
		return nil, err
	}
	table[0] = prune(row1)

	for k := 2; k <= n; k++ {
		splits := k / 2
		batches := make([][]SubtreePlan, splits)
		err := parallel.InvokeN(ctx, splits, func(_ context.Context, idx int) error {
			i := idx + 1 // i ranges 1..splits
			rowA := table[i-1]
			rowB := table[k-i-1]
			var candidates []SubtreePlan
			for _, a := range rowA {
				for _, b := range rowB {
					if !a.IncludedNodes.disjoint(b.IncludedNodes) {
						continue
					}
					if !connected(g.Adjacent, a.IncludedNodes, b.IncludedNodes) {
						continue
					}
					merged, err := merge(a, b)
					if err != nil {
						return err
					}
					candidates = append(candidates, merged...)
				}
			}
			batches[idx] = candidates
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("planner: building DP row %d: %w", k, err)
		}
		var row []SubtreePlan
		for _, b := range batches {
			row = append(row, b...)
		}
		row, err = injectFilters(row, filters)
		if err != nil {
			return nil, err
		}
		table[k-1] = prune(row)
	}
	return table, nil
}

// injectFilters implements §4.2.5: for every plan and every filter whose
// variables are all covered by that plan, wrap it in a filter operator and
// record the filter as applied. The wrapped plan replaces the original.
func injectFilters(row []SubtreePlan, filters []sparql.Filter) ([]SubtreePlan, error) {
	out := make([]SubtreePlan, len(row))
	copy(out, row)
	for i, p := range out {
		cols := p.Root.Columns()
		for fi, f := range filters {
			if p.IncludedFilters.contains(fi) {
				continue
			}
			_, lhsOK := cols[f.LHS]
			_, rhsOK := cols[f.RHS]
			if !lhsOK || !rhsOK {
				continue
			}
			p.Root = &plan.FilterOp{Child: p.Root, FilterDesc: filterDesc(f)}
			p.IncludedFilters = p.IncludedFilters.with(fi)
		}
		out[i] = p
	}
	return out, nil
}

func filterDesc(f sparql.Filter) string {
	return fmt.Sprintf("?%s cmp(%d) ?%s", f.LHS, f.Type, f.RHS)
}
