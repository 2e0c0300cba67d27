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

// Package plan defines the closed set of operator-tree node kinds the
// planner builds and the exporter eventually walks, plus VarSet, the
// sorted-slice variable-set type used throughout planning.
package plan

import (
	"fmt"
	"math"

	"github.com/akutan-project/qcore/vocab"
)

// Kind names one of the closed set of operator tree node types. The planner
// only ever observes an Operator's Kind, cost, size, sort column, and
// column map — never a concrete type switch outside this package.
type Kind uint8

const (
	Scan Kind = iota
	Sort
	OrderBy
	Join
	Filter
	Distinct
	TextWithoutFilter
	TextWithFilter
	TextForEntities
	TextForContexts
)

func (k Kind) String() string {
	names := [...]string{"Scan", "Sort", "OrderBy", "Join", "Filter", "Distinct",
		"TextWithoutFilter", "TextWithFilter", "TextForEntities", "TextForContexts"}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ColumnMap gives the output column index for each variable (and, for text
// operators, the synthetic "SCORE(cvar)" pseudo-variable) an operator binds.
type ColumnMap map[string]int

// ScoreVar returns the synthetic score-column name for a context variable.
func ScoreVar(cvar string) string { return "SCORE(" + cvar + ")" }

// Operator is the interface every node of a plan's operator tree satisfies.
// anOperator is unexported so the set of implementations is closed to this
// package, following the teacher's Term/Operator marker-method convention.
type Operator interface {
	anOperator()
	Kind() Kind
	Columns() ColumnMap
	CostEstimate() float64
	SizeEstimate() int64
	// SortedOn returns the variable name the operator's output is known to
	// be sorted ascending on, or "" if unsorted (or sorted on something the
	// planner doesn't track, e.g. a multi-key ORDER BY).
	SortedOn() string
	Children() []Operator
}

func varSetOf(cols ColumnMap) VarSet {
	names := make([]string, 0, len(cols))
	for v := range cols {
		names = append(names, v)
	}
	return NewVarSet(names...)
}

// ScanOp is a permutation scan fixing zero, one or two terms, binding the
// remaining one or two positions to variables. Seeded directly from the
// triple graph (§4.2.1); never has children.
type ScanOp struct {
	Permutation vocab.Permutation
	Fixed       []string
	Vars        []string // variables bound, in output-column order
	Size        int64
}

func (s *ScanOp) anOperator() {}
func (s *ScanOp) Kind() Kind  { return Scan }
func (s *ScanOp) Columns() ColumnMap {
	m := make(ColumnMap, len(s.Vars))
	for i, v := range s.Vars {
		m[v] = i
	}
	return m
}
func (s *ScanOp) CostEstimate() float64 { return float64(s.Size) }
func (s *ScanOp) SizeEstimate() int64   { return s.Size }
func (s *ScanOp) SortedOn() string {
	if len(s.Vars) == 0 {
		return ""
	}
	return s.Vars[0]
}
func (s *ScanOp) Children() []Operator { return nil }

// SortOp sorts Child's rows ascending on On, unless Child already reports
// that sort column.
type SortOp struct {
	Child Operator
	On    string
}

func (s *SortOp) anOperator() {}
func (s *SortOp) Kind() Kind  { return Sort }
func (s *SortOp) Columns() ColumnMap { return s.Child.Columns() }
func (s *SortOp) CostEstimate() float64 {
	n := float64(s.Child.SizeEstimate())
	sortCost := n * math.Log2(n+1)
	return s.Child.CostEstimate() + sortCost
}
func (s *SortOp) SizeEstimate() int64   { return s.Child.SizeEstimate() }
func (s *SortOp) SortedOn() string      { return s.On }
func (s *SortOp) Children() []Operator  { return []Operator{s.Child} }

// OrderKey is one key of a multi-key ORDER BY clause.
type OrderKey struct {
	Var        string
	Descending bool
}

// OrderByOp implements a general (possibly multi-key, possibly descending)
// ORDER BY that a single-column ascending SortOp cannot express.
type OrderByOp struct {
	Child Operator
	Keys  []OrderKey
}

func (o *OrderByOp) anOperator() {}
func (o *OrderByOp) Kind() Kind  { return OrderBy }
func (o *OrderByOp) Columns() ColumnMap { return o.Child.Columns() }
func (o *OrderByOp) CostEstimate() float64 {
	n := float64(o.Child.SizeEstimate())
	return o.Child.CostEstimate() + n*math.Log2(n+1)
}
func (o *OrderByOp) SizeEstimate() int64  { return o.Child.SizeEstimate() }
func (o *OrderByOp) SortedOn() string {
	if len(o.Keys) == 1 && !o.Keys[0].Descending {
		return o.Keys[0].Var
	}
	return ""
}
func (o *OrderByOp) Children() []Operator { return []Operator{o.Child} }

// JoinOp is a sort-merge join of Left and Right on JoinVar; both children
// must report JoinVar as their SortedOn column (the merge step in the
// planner guarantees this by wrapping a child in SortOp first if needed).
type JoinOp struct {
	Left, Right Operator
	JoinVar     string
}

func (j *JoinOp) anOperator() {}
func (j *JoinOp) Kind() Kind  { return Join }
func (j *JoinOp) Columns() ColumnMap {
	left := j.Left.Columns()
	right := j.Right.Columns()
	out := make(ColumnMap, len(left)+len(right))
	next := 0
	for v := range left {
		out[v] = next
		next++
	}
	for v := range right {
		if v == j.JoinVar {
			continue
		}
		if _, dup := out[v]; dup {
			continue
		}
		out[v] = next
		next++
	}
	return out
}
func (j *JoinOp) CostEstimate() float64 {
	return j.Left.CostEstimate() + j.Right.CostEstimate() +
		float64(j.Left.SizeEstimate()) + float64(j.Right.SizeEstimate())
}
func (j *JoinOp) SizeEstimate() int64 {
	l, r := j.Left.SizeEstimate(), j.Right.SizeEstimate()
	if l < r {
		return l
	}
	return r
}
func (j *JoinOp) SortedOn() string     { return j.JoinVar }
func (j *JoinOp) Children() []Operator { return []Operator{j.Left, j.Right} }

// FilterOp wraps Child in a comparison filter; FilterDesc is opaque to the
// plan package (the planner records which filter was applied for §8's
// filter-coverage property, but evaluation is an exporter/executor concern
// outside this spec's scope).
type FilterOp struct {
	Child      Operator
	FilterDesc string
	SelPow     float64 // assumed selectivity in (0,1], for the size estimate
}

func (f *FilterOp) anOperator() {}
func (f *FilterOp) Kind() Kind  { return Filter }
func (f *FilterOp) Columns() ColumnMap { return f.Child.Columns() }
func (f *FilterOp) CostEstimate() float64 {
	return f.Child.CostEstimate() + float64(f.Child.SizeEstimate())
}
func (f *FilterOp) SizeEstimate() int64 {
	sel := f.SelPow
	if sel <= 0 || sel > 1 {
		sel = 0.5
	}
	return int64(float64(f.Child.SizeEstimate()) * sel)
}
func (f *FilterOp) SortedOn() string     { return f.Child.SortedOn() }
func (f *FilterOp) Children() []Operator { return []Operator{f.Child} }

// DistinctOp wraps Child, retaining only Keep columns. Variables not present
// in Child's column map are silently dropped per §4.3.
type DistinctOp struct {
	Child Operator
	Keep  VarSet
}

func (d *DistinctOp) anOperator() {}
func (d *DistinctOp) Kind() Kind  { return Distinct }
func (d *DistinctOp) Columns() ColumnMap {
	child := d.Child.Columns()
	out := make(ColumnMap, len(d.Keep))
	for _, v := range d.Keep {
		if c, ok := child[v]; ok {
			out[v] = c
		}
	}
	return out
}
func (d *DistinctOp) CostEstimate() float64 {
	n := float64(d.Child.SizeEstimate())
	return d.Child.CostEstimate() + n*math.Log2(n+1)
}
func (d *DistinctOp) SizeEstimate() int64 { return d.Child.SizeEstimate() }
func (d *DistinctOp) SortedOn() string {
	on := d.Child.SortedOn()
	if _, ok := d.Columns()[on]; ok {
		return on
	}
	return ""
}
func (d *DistinctOp) Children() []Operator { return []Operator{d.Child} }

// TextLimiter is implemented by the text-operator kinds; the plan selector
// uses it to attach the query's text-limit value (§4.3 "Text limit") to
// every text operator in the selected tree without a type switch outside
// this package.
type TextLimiter interface {
	SetTextLimit(n int)
}

// TextWithoutFilterOp is a text-leaf operator: all records mentioning
// WordPart, bound to CVar with a synthetic score column. Produced by
// seeding (§4.2.1) for a standalone text node.
type TextWithoutFilterOp struct {
	CVar      string
	WordPart  string
	Size      int64
	TextLimit int
}

// SetTextLimit implements TextLimiter.
func (t *TextWithoutFilterOp) SetTextLimit(n int) { t.TextLimit = n }

func (t *TextWithoutFilterOp) anOperator() {}
func (t *TextWithoutFilterOp) Kind() Kind  { return TextWithoutFilter }
func (t *TextWithoutFilterOp) Columns() ColumnMap {
	return ColumnMap{t.CVar: 0, ScoreVar(t.CVar): 1}
}
func (t *TextWithoutFilterOp) CostEstimate() float64 { return float64(t.Size) }
func (t *TextWithoutFilterOp) SizeEstimate() int64   { return t.Size }
func (t *TextWithoutFilterOp) SortedOn() string      { return t.CVar }
func (t *TextWithoutFilterOp) Children() []Operator  { return nil }

// TextWithFilterOp fuses a text operator with an entity filter produced by
// another plan, per §4.2.3 step 2: the filter child's rows restrict which
// context records the text operator considers.
type TextWithFilterOp struct {
	CVar        string
	WordPart    string
	FilterChild Operator
	Size        int64
	TextLimit   int
}

// SetTextLimit implements TextLimiter.
func (t *TextWithFilterOp) SetTextLimit(n int) { t.TextLimit = n }

func (t *TextWithFilterOp) anOperator() {}
func (t *TextWithFilterOp) Kind() Kind  { return TextWithFilter }
func (t *TextWithFilterOp) Columns() ColumnMap {
	out := ColumnMap{t.CVar: 0, ScoreVar(t.CVar): 1}
	next := 2
	for v, c := range t.FilterChild.Columns() {
		if v == t.CVar {
			continue
		}
		_ = c
		out[v] = next
		next++
	}
	return out
}
func (t *TextWithFilterOp) CostEstimate() float64 {
	return float64(t.Size) + t.FilterChild.CostEstimate()
}
func (t *TextWithFilterOp) SizeEstimate() int64  { return t.Size }
func (t *TextWithFilterOp) SortedOn() string     { return t.CVar }
func (t *TextWithFilterOp) Children() []Operator { return []Operator{t.FilterChild} }

// TextForEntitiesOp binds a context variable together with one or more
// already-bound entity variables. Per design note (c), the multi-bound-
// variable case is explicitly unimplemented: NewTextForEntitiesOp panics if
// more than one entity variable is supplied, and callers must not work
// around that by refactoring this type.
type TextForEntitiesOp struct {
	CVar       string
	EntityVars []string
	WordPart   string
	Size       int64
	TextLimit  int
}

// SetTextLimit implements TextLimiter.
func (t *TextForEntitiesOp) SetTextLimit(n int) { t.TextLimit = n }

// NewTextForEntitiesOp constructs a TextForEntitiesOp. It panics if more
// than one entity variable is given: fusing a text operator with more than
// one already-bound entity column requires a multi-column index probe that
// this planner does not implement (design note (c)).
func NewTextForEntitiesOp(cvar string, entityVars []string, wordPart string, size int64) *TextForEntitiesOp {
	if len(entityVars) > 1 {
		panic("plan: TextForEntities with more than one bound entity variable is not implemented")
	}
	return &TextForEntitiesOp{CVar: cvar, EntityVars: entityVars, WordPart: wordPart, Size: size}
}

func (t *TextForEntitiesOp) anOperator() {}
func (t *TextForEntitiesOp) Kind() Kind  { return TextForEntities }
func (t *TextForEntitiesOp) Columns() ColumnMap {
	out := ColumnMap{t.CVar: 0, ScoreVar(t.CVar): 1}
	for i, v := range t.EntityVars {
		out[v] = 2 + i
	}
	return out
}
func (t *TextForEntitiesOp) CostEstimate() float64 { return float64(t.Size) }
func (t *TextForEntitiesOp) SizeEstimate() int64   { return t.Size }
func (t *TextForEntitiesOp) SortedOn() string      { return t.CVar }
func (t *TextForEntitiesOp) Children() []Operator  { return nil }

// TextForContextsOp is the pure-text fast path leaf (§4.2.7): a single
// text node with nothing else in the query, producing just (cvar, score).
type TextForContextsOp struct {
	CVar      string
	WordPart  string
	Size      int64
	TextLimit int
}

// SetTextLimit implements TextLimiter.
func (t *TextForContextsOp) SetTextLimit(n int) { t.TextLimit = n }

func (t *TextForContextsOp) anOperator() {}
func (t *TextForContextsOp) Kind() Kind  { return TextForContexts }
func (t *TextForContextsOp) Columns() ColumnMap {
	return ColumnMap{t.CVar: 0, ScoreVar(t.CVar): 1}
}
func (t *TextForContextsOp) CostEstimate() float64 { return float64(t.Size) }
func (t *TextForContextsOp) SizeEstimate() int64   { return t.Size }
func (t *TextForContextsOp) SortedOn() string      { return t.CVar }
func (t *TextForContextsOp) Children() []Operator  { return nil }
