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
	"strconv"

	"github.com/davecgh/go-spew/spew"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"

	"github.com/akutan-project/qcore/query/graph"
	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/sparql"
	"github.com/akutan-project/qcore/vocab"
)

// Plan runs the full pipeline described by §4: build the triple graph,
// collapse text cliques, seed against v, run the DP table (or the
// pure-text fast path), select the cheapest surviving plan, and apply the
// post-processing ORDER BY/DISTINCT/text-limit steps from §4.3. The
// returned operator tree is ready for the exporter to walk. Each phase
// opens its own OpenTracing span, matching the teacher's per-phase span
// structure in query/q.go. A planning failure is logged as a warning with
// the query's triple patterns; once the graph is built, its collapsed form
// is dumped with go-spew at debug level on every call. Errors from building
// the triple graph wrap ErrBadQuery.
func Plan(ctx context.Context, q *sparql.Query, v vocab.Vocabulary) (plan.Operator, error) {
	buildSpan, ctx := opentracing.StartSpanFromContext(ctx, "build triple graph")
	g, err := graph.Build(q.Where)
	if err == nil {
		err = g.DetectTextNodes()
	}
	buildSpan.Finish()
	if err != nil {
		log.WithField("where", q.Where).Warnf("planner: failed to build triple graph: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBadQuery, err)
	}
	collapsed := g.CollapseTextCliques()
	log.WithField("graph", spew.Sdump(collapsed)).Debug("planner: collapsed triple graph")

	enumerateSpan, ctx := opentracing.StartSpanFromContext(ctx, "enumerate plans")
	root, err := planGraph(ctx, collapsed, v, q)
	enumerateSpan.Finish()
	if err != nil {
		log.WithField("where", q.Where).Warnf("planner: failed to enumerate plans: %v", err)
		return nil, err
	}

	selectSpan, _ := opentracing.StartSpanFromContext(ctx, "select plan")
	defer selectSpan.Finish()
	return postProcess(root, q)
}

func planGraph(ctx context.Context, g *graph.Graph, v vocab.Vocabulary, q *sparql.Query) (plan.Operator, error) {
	// §4.2.7: a query that is nothing but a single text clique skips DP
	// entirely. There is only one candidate, so wrap-then-select and
	// select-then-wrap coincide; apply ORDER BY here too so postProcess
	// never has to special-case which path produced root.
	if g.IsPureTextQuery() {
		n := g.Nodes[0]
		var root plan.Operator = &plan.TextForContextsOp{CVar: n.CVar, WordPart: joinWordPart(n.WordPart), Size: textLeafSizeEstimate}
		return applyOrderBy(root, q.OrderBy), nil
	}

	seeds, err := Seed(g, v)
	if err != nil {
		return nil, err
	}
	table, err := Build(ctx, g, q.Filters, seeds)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, ErrEmptyPlanRow
	}
	lastRow := table[len(table)-1]
	if len(lastRow) == 0 {
		return nil, ErrEmptyPlanRow
	}

	return selectBestOrdered(lastRow, q.OrderBy), nil
}

// selectBestOrdered implements §4.3's ORDER BY selection rule: every plan
// in the last DP row is wrapped for the query's ORDER BY clause first,
// producing a new row of fully order-by-augmented candidates, and minimum
// cost is selected over *that* row — not over the row's raw, unsorted
// costs. A plan that is already sorted the way ORDER BY needs can then win
// even when another plan has lower raw cost but would need an expensive
// Sort/OrderBy wrapper to match.
func selectBestOrdered(lastRow []SubtreePlan, keys []sparql.OrderKey) plan.Operator {
	best := applyOrderBy(lastRow[0].Root, keys)
	for _, p := range lastRow[1:] {
		candidate := applyOrderBy(p.Root, keys)
		if candidate.CostEstimate() < best.CostEstimate() {
			best = candidate
		}
	}
	return best
}

func joinWordPart(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		out := parts[0]
		for _, p := range parts[1:] {
			out += " " + p
		}
		return out
	}
}

// postProcess applies §4.3's DISTINCT and text-limit steps to an
// already-selected plan root. ORDER BY is applied earlier, by planGraph,
// because §4.3 requires it to wrap every last-row candidate before
// selection runs rather than wrapping the single already-chosen plan.
func postProcess(root plan.Operator, q *sparql.Query) (plan.Operator, error) {
	root = applyDistinct(root, q)

	limit, err := parseTextLimit(q.TextLimit)
	if err != nil {
		return nil, err
	}
	plan.AttachTextLimit(root, limit)
	return root, nil
}

func applyOrderBy(root plan.Operator, keys []sparql.OrderKey) plan.Operator {
	if len(keys) == 0 {
		return root
	}
	if len(keys) == 1 && !keys[0].Descending {
		if root.SortedOn() == keys[0].Variable {
			return root
		}
		return &plan.SortOp{Child: root, On: keys[0].Variable}
	}
	planKeys := make([]plan.OrderKey, len(keys))
	for i, k := range keys {
		planKeys[i] = plan.OrderKey{Var: k.Variable, Descending: k.Descending}
	}
	return &plan.OrderByOp{Child: root, Keys: planKeys}
}

func applyDistinct(root plan.Operator, q *sparql.Query) plan.Operator {
	if q.Select == nil || !q.Select.Distinct {
		return root
	}
	return &plan.DistinctOp{Child: root, Keep: plan.NewVarSet(q.Select.Variables...)}
}

// parseTextLimit implements §4.3 "Text limit": an empty clause defaults to
// 1; otherwise the clause's decimal string is parsed exactly.
func parseTextLimit(clause string) (int, error) {
	if clause == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(clause, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad text limit %q: %v", ErrBadQuery, clause, err)
	}
	return int(n), nil
}
