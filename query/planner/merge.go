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
	"fmt"

	"github.com/akutan-project/qcore/query/plan"
)

// sharedVariables returns the plain (non-score) variables present in both
// column maps.
func sharedVariables(a, b plan.ColumnMap) []string {
	var shared []string
	for v := range a {
		if isScoreVar(v) {
			continue
		}
		if _, ok := b[v]; ok {
			shared = append(shared, v)
		}
	}
	return shared
}

func isScoreVar(v string) bool {
	return len(v) > 6 && v[:6] == "SCORE("
}

// merge implements §4.2.3: given two connected, non-overlapping plans,
// produce the plan(s) that join them.
func merge(a, b SubtreePlan) ([]SubtreePlan, error) {
	shared := sharedVariables(a.Root.Columns(), b.Root.Columns())
	if len(shared) == 0 {
		return nil, fmt.Errorf("%w: merge candidates share no join variable", ErrBadQuery)
	}
	if len(shared) > 1 {
		return nil, fmt.Errorf("%w: query has a cyclic join (more than one shared variable between subplans)", ErrCyclicQuery)
	}
	joinVar := shared[0]
	nodes := a.IncludedNodes.union(b.IncludedNodes)
	filters := a.IncludedFilters.union(b.IncludedFilters)

	var out []SubtreePlan

	// Step 2: text-with-filter fusion, when exactly one side is a
	// text-leaf-without-filter and the other is not.
	if textPlan, otherPlan, ok := pickTextFusionCandidate(a, b); ok {
		text := textPlan.Root.(*plan.TextWithoutFilterOp)
		fused := &plan.TextWithFilterOp{
			CVar:        text.CVar,
			WordPart:    text.WordPart,
			FilterChild: otherPlan.Root,
			Size:        estimateTextWithFilterSize(text.Size, otherPlan.Root.SizeEstimate()),
		}
		out = append(out, SubtreePlan{Root: fused, IncludedNodes: nodes, IncludedFilters: filters})
	}

	// Step 3: always emit the sort-and-join plan.
	left := sortIfNeeded(a.Root, joinVar)
	right := sortIfNeeded(b.Root, joinVar)
	join := &plan.JoinOp{Left: left, Right: right, JoinVar: joinVar}
	out = append(out, SubtreePlan{Root: join, IncludedNodes: nodes, IncludedFilters: filters})

	return out, nil
}

func pickTextFusionCandidate(a, b SubtreePlan) (text, other SubtreePlan, ok bool) {
	_, aIsText := a.Root.(*plan.TextWithoutFilterOp)
	_, bIsText := b.Root.(*plan.TextWithoutFilterOp)
	switch {
	case aIsText && !bIsText:
		return a, b, true
	case bIsText && !aIsText:
		return b, a, true
	default:
		return SubtreePlan{}, SubtreePlan{}, false
	}
}

func estimateTextWithFilterSize(textSize, filterSize int64) int64 {
	if filterSize < textSize {
		return filterSize
	}
	return textSize
}

func sortIfNeeded(op plan.Operator, on string) plan.Operator {
	if op.SortedOn() == on {
		return op
	}
	return &plan.SortOp{Child: op, On: on}
}
