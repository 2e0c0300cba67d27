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
	"strings"

	"github.com/akutan-project/qcore/query/graph"
	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/sparql"
	"github.com/akutan-project/qcore/vocab"
)

// textLeafSizeEstimate is a constant stand-in for a real text-index
// statistics lookup, which lives in the on-disk index this spec places out
// of scope (§1). Determinism only requires that the same word part always
// yields the same estimate.
const textLeafSizeEstimate = 100

// Seed produces the row-1 seed plans for a (collapsed) triple graph, per
// §4.2.1: one scan per 1-variable node, two scan-direction plans per
// 2-variable node, and one text-leaf plan per text node.
func Seed(g *graph.Graph, v vocab.Vocabulary) ([]SubtreePlan, error) {
	var seeds []SubtreePlan
	for nodeID, n := range g.Nodes {
		if n.IsText {
			seeds = append(seeds, SubtreePlan{
				Root: &plan.TextWithoutFilterOp{
					CVar:     n.CVar,
					WordPart: strings.Join(n.WordPart, " "),
					Size:     textLeafSizeEstimate,
				},
				IncludedNodes: newNodeSet(nodeID),
			})
			continue
		}
		nodeSeeds, err := seedTriple(nodeID, n, v)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, nodeSeeds...)
	}
	return seeds, nil
}

func seedTriple(nodeID int, n graph.Node, v vocab.Vocabulary) ([]SubtreePlan, error) {
	t := n.Triple
	if sparql.IsVariable(t.Predicate) {
		return nil, fmt.Errorf("%w: triples need 1-2 variables; no predicate variables (triple %v)", ErrBadQuery, t)
	}
	switch len(n.Vars) {
	case 1:
		var permutation vocab.Permutation
		var fixed []string
		if t.Subject == n.Vars[0] {
			permutation, fixed = vocab.POS, []string{t.Predicate, t.Object}
		} else {
			permutation, fixed = vocab.SPO, []string{t.Subject, t.Predicate}
		}
		table, err := v.Scan(permutation, fixed...)
		if err != nil {
			return nil, err
		}
		scan := &plan.ScanOp{Permutation: permutation, Fixed: fixed, Vars: n.Vars, Size: int64(table.NumRows())}
		return []SubtreePlan{{Root: scan, IncludedNodes: newNodeSet(nodeID)}}, nil
	case 2:
		subjectFirst, err := v.Scan(vocab.PSO, t.Predicate)
		if err != nil {
			return nil, err
		}
		objectFirst, err := v.Scan(vocab.POS, t.Predicate)
		if err != nil {
			return nil, err
		}
		a := &plan.ScanOp{
			Permutation: vocab.PSO, Fixed: []string{t.Predicate},
			Vars: []string{t.Subject, t.Object}, Size: int64(subjectFirst.NumRows()),
		}
		b := &plan.ScanOp{
			Permutation: vocab.POS, Fixed: []string{t.Predicate},
			Vars: []string{t.Object, t.Subject}, Size: int64(objectFirst.NumRows()),
		}
		return []SubtreePlan{
			{Root: a, IncludedNodes: newNodeSet(nodeID)},
			{Root: b, IncludedNodes: newNodeSet(nodeID)},
		}, nil
	default:
		return nil, fmt.Errorf("%w: triples need 1-2 variables; no predicate variables (triple %v)", ErrBadQuery, t)
	}
}
