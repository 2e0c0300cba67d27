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

package export

import (
	"strings"

	"github.com/akutan-project/qcore/query/plan"
	"github.com/akutan-project/qcore/rpc"
	"github.com/akutan-project/qcore/sparql"
	"github.com/akutan-project/qcore/vocab"
)

// Request bundles everything a format writer needs: the selected plan's
// result, the column map it binds variables to, the query's projection and
// LIMIT/OFFSET/TEXTLIMIT clauses, and the shared vocabulary. Exactly one of
// Query.Select/Query.Construct is non-nil, per §6.
type Request struct {
	Result  *rpc.Result
	Columns plan.ColumnMap
	Query   *sparql.Query
	Vocab   vocab.Vocabulary
}

// rowRange computes [lo, hi) per §4.5's common pipeline: the LIMIT/OFFSET
// clause clamped to the table's actual row count.
func (r Request) rowRange() (lo, hi int) {
	n := r.Result.Table.NumRows()
	return r.Query.ActualOffset(n), r.Query.UpperBound(n)
}

// selectedVariables returns the SELECT clause's variables, stripped of
// their leading '?' when stripLeadingMark is set (CSV headers and
// SPARQL-JSON/XML "vars" both strip it; TSV headers do not).
func (r Request) selectedVariables(stripLeadingMark bool) []string {
	vars := r.Query.Select.Variables
	out := make([]string, len(vars))
	for i, v := range vars {
		if stripLeadingMark {
			out[i] = strings.TrimPrefix(v, "?")
		} else {
			out[i] = v
		}
	}
	return out
}

// resolveColumn runs the identifier facade for variable name in the given
// row, returning ok=false if the variable is not bound by this plan's
// columns or the identifier itself resolves to nothing.
func (r Request) resolveColumn(row int, name string, removeQuotesAndAngles, onlyLiterals bool) (value, datatype string, ok bool) {
	col, bound := r.Columns[name]
	if !bound {
		return "", "", false
	}
	id := r.Result.Table.At(row, col)
	return idToStringAndType(r.Vocab, r.Result.LocalVocab, id, removeQuotesAndAngles, onlyLiterals)
}

// rowEvalContext adapts one row of a Request's result into a
// sparql.EvalContext for CONSTRUCT template evaluation.
type rowEvalContext struct {
	req Request
	row int
}

// Resolve implements sparql.EvalContext. Per §4.4, a CONSTRUCT template's
// object position may only bind to a literal; subject and predicate accept
// any resolvable identifier.
func (c rowEvalContext) Resolve(name string, pos sparql.TermPosition) (string, bool) {
	onlyLiterals := pos == sparql.PositionObject
	value, datatype, ok := c.req.resolveColumn(c.row, name, false, onlyLiterals)
	if !ok {
		return "", false
	}
	return canonicalTerm(value, datatype), true
}

// evaluateConstructRow evaluates every template triple of the query's
// CONSTRUCT clause against row, in template order (§5 "Ordering").
func evaluateConstructRow(req Request, row int) [][3]string {
	ctx := rowEvalContext{req: req, row: row}
	out := make([][3]string, 0, len(req.Query.Construct.Templates))
	for _, tmpl := range req.Query.Construct.Templates {
		s, sok := tmpl.Subject.Evaluate(ctx, sparql.PositionSubject)
		p, pok := tmpl.Predicate.Evaluate(ctx, sparql.PositionPredicate)
		o, ook := tmpl.Object.Evaluate(ctx, sparql.PositionObject)
		if !sok || !pok || !ook {
			continue
		}
		out = append(out, [3]string{s, p, o})
	}
	return out
}
