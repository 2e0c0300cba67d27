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

package main

import (
	"fmt"
	"sort"

	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/rpc"
	"github.com/akutan-project/qcore/vocab"
)

// row is one binding of variable name to Id. The planner and exporter
// packages work in terms of column-major rpc.IdTables; this CLI-only
// executor works in terms of rows because the plans it evaluates are small
// and its only job is to give the exporter something real to stream. The
// planner's physical operators (beyond the seed-time Scan contract) are an
// out-of-scope external collaborator per §1 — this file is that
// collaborator's minimal stand-in, not a part of the core spec.
type row map[string]rpc.Id

// evaluate walks op and returns the rows it produces against v. FilterOp is
// a no-op here: §6 treats filter *evaluation* as outside the planner's (and
// this demo's) scope, only filter *placement* is specified.
func evaluate(v vocab.Vocabulary, op plan.Operator) ([]row, error) {
	switch o := op.(type) {
	case *plan.ScanOp:
		return evaluateScan(v, o)
	case *plan.SortOp:
		rows, err := evaluate(v, o.Child)
		if err != nil {
			return nil, err
		}
		sortRows(rows, []plan.OrderKey{{Var: o.On}})
		return rows, nil
	case *plan.OrderByOp:
		rows, err := evaluate(v, o.Child)
		if err != nil {
			return nil, err
		}
		sortRows(rows, o.Keys)
		return rows, nil
	case *plan.JoinOp:
		return evaluateJoin(v, o)
	case *plan.FilterOp:
		return evaluate(v, o.Child)
	case *plan.DistinctOp:
		rows, err := evaluate(v, o.Child)
		if err != nil {
			return nil, err
		}
		return dedupe(rows, o.Keep), nil
	default:
		return nil, fmt.Errorf("cmd/sparql-query: %v requires a text index, which this demo does not implement", op.Kind())
	}
}

func evaluateScan(v vocab.Vocabulary, o *plan.ScanOp) ([]row, error) {
	table, err := v.Scan(o.Permutation, o.Fixed...)
	if err != nil {
		return nil, err
	}
	rows := make([]row, table.NumRows())
	for r := 0; r < table.NumRows(); r++ {
		rows[r] = make(row, len(o.Vars))
		for c, name := range o.Vars {
			rows[r][name] = table.At(r, c)
		}
	}
	return rows, nil
}

func evaluateJoin(v vocab.Vocabulary, o *plan.JoinOp) ([]row, error) {
	left, err := evaluate(v, o.Left)
	if err != nil {
		return nil, err
	}
	right, err := evaluate(v, o.Right)
	if err != nil {
		return nil, err
	}
	byKey := make(map[rpc.Id][]row, len(right))
	for _, r := range right {
		key := r[o.JoinVar]
		byKey[key] = append(byKey[key], r)
	}
	var out []row
	for _, l := range left {
		for _, r := range byKey[l[o.JoinVar]] {
			merged := make(row, len(l)+len(r))
			for k, id := range l {
				merged[k] = id
			}
			for k, id := range r {
				merged[k] = id
			}
			out = append(out, merged)
		}
	}
	return out, nil
}

func sortRows(rows []row, keys []plan.OrderKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareID(rows[i][k.Var], rows[j][k.Var])
			if c == 0 {
				continue
			}
			if k.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func dedupe(rows []row, keep plan.VarSet) []row {
	seen := make(map[string]bool, len(rows))
	out := make([]row, 0, len(rows))
	var key [64]byte
	for _, r := range rows {
		b := key[:0]
		for _, v := range keep {
			id := r[v]
			bs := id.AsBytes()
			b = append(b, bs[:]...)
		}
		k := string(b)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func compareID(a, b rpc.Id) int {
	ab, bb := a.AsBytes(), b.AsBytes()
	for i := range ab {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// toResult flattens rows into an rpc.IdTable in op's column order, so the
// exporter's Request can address columns the same way the planner does.
func toResult(op plan.Operator, rows []row) (*rpc.Result, plan.ColumnMap) {
	cols := op.Columns()
	names := make([]string, len(cols))
	for name, idx := range cols {
		names[idx] = name
	}
	table := rpc.NewIdTable(len(names))
	for _, r := range rows {
		vals := make([]rpc.Id, len(names))
		for i, name := range names {
			vals[i] = r[name]
		}
		table.AppendRow(vals...)
	}
	sortedCol := -1
	if on := op.SortedOn(); on != "" {
		if c, ok := cols[on]; ok {
			sortedCol = c
		}
	}
	return &rpc.Result{Table: table, LocalVocab: emptyLocalVocab{}, SortedOn: sortedCol}, cols
}

// emptyLocalVocab is the CLI's LocalVocab: this demo executor never
// allocates LocalVocabIndex Ids, so every lookup correctly reports "absent".
type emptyLocalVocab struct{}

func (emptyLocalVocab) Word(uint64) (string, bool) { return "", false }
