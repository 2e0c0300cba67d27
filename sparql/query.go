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

// Package sparql defines the frozen syntactic types the planner and
// exporter consume from a parser (§6), and a small reader that produces
// them from a restricted textual subset. The reader is intentionally not a
// general SPARQL grammar; the real grammar is an out-of-scope external
// collaborator.
package sparql

// TriplePattern is a where-clause triple: each component is either a
// variable (leading '?'), an IRI, a literal, or a word token, carried
// verbatim as a string; classification happens in the planner's triple
// graph construction.
type TriplePattern struct {
	Subject, Predicate, Object string
}

// IsVariable reports whether s names a variable.
func IsVariable(s string) bool { return len(s) > 0 && s[0] == '?' }

// FilterType names the comparison a Filter performs. The core spec treats
// filter evaluation as outside its scope; only filter *placement* (which
// plan a filter attaches to) matters here.
type FilterType uint8

const (
	FilterEqual FilterType = iota
	FilterNotEqual
	FilterLess
	FilterLessEqual
	FilterGreater
	FilterGreaterEqual
)

// Filter is a (lhs, rhs, type) condition over two variables.
type Filter struct {
	LHS, RHS string
	Type     FilterType
}

// Variables returns the set of variables this filter mentions.
func (f Filter) Variables() []string { return []string{f.LHS, f.RHS} }

// OrderKey is one key of an ORDER BY clause.
type OrderKey struct {
	Variable   string
	Descending bool
}

// LimitOffset is the (optional) LIMIT/OFFSET clause. A nil *int64 field
// means "unset".
type LimitOffset struct {
	Limit  *int64
	Offset *int64
}

// ActualOffset returns the offset clamped into [0, n].
func (lo LimitOffset) ActualOffset(n int) int {
	if lo.Offset == nil {
		return 0
	}
	o := int(*lo.Offset)
	if o < 0 {
		return 0
	}
	if o > n {
		return n
	}
	return o
}

// UpperBound returns the exclusive upper row bound, clamped into
// [ActualOffset(n), n].
func (lo LimitOffset) UpperBound(n int) int {
	off := lo.ActualOffset(n)
	if lo.Limit == nil {
		return n
	}
	limit := int(*lo.Limit)
	if limit < 0 {
		limit = 0
	}
	upper := off + limit
	if upper > n {
		upper = n
	}
	if upper < off {
		upper = off
	}
	return upper
}

// SelectClause is a SELECT query's projection.
type SelectClause struct {
	Variables []string
	Distinct  bool
}

// TermPosition names one of the three positions of a CONSTRUCT template.
type TermPosition uint8

const (
	PositionSubject TermPosition = iota
	PositionPredicate
	PositionObject
)

// EvalContext is whatever an Evaluate implementation needs to resolve a
// bound variable to its lexical string. The core spec treats its contents
// as opaque to the planner; only the exporter's CONSTRUCT path calls it.
type EvalContext interface {
	// Resolve returns the lexical string bound to variable name in the
	// current row, or ("", false) if variable is unbound or name is not a
	// variable. pos tells the implementation which template position is
	// being resolved, so it can restrict object-position bindings to
	// literals per §4.4's CONSTRUCT evaluation rules.
	Resolve(name string, pos TermPosition) (string, bool)
}

// ConstructTerm is one component of a CONSTRUCT template. Evaluate must be
// used verbatim by the exporter's CONSTRUCT generator (§6); it is either a
// literal string (for a fixed IRI/literal template component) or resolves
// a variable via ctx.
type ConstructTerm struct {
	fixed    string
	isFixed  bool
	variable string
}

// FixedTerm returns a ConstructTerm that always evaluates to s.
func FixedTerm(s string) ConstructTerm { return ConstructTerm{fixed: s, isFixed: true} }

// VariableTerm returns a ConstructTerm that resolves variable v from the
// row's bindings.
func VariableTerm(v string) ConstructTerm { return ConstructTerm{variable: v} }

// Evaluate resolves the term for the given row context and position.
func (t ConstructTerm) Evaluate(ctx EvalContext, pos TermPosition) (string, bool) {
	if t.isFixed {
		return t.fixed, true
	}
	return ctx.Resolve(t.variable, pos)
}

// ConstructTriple is one template triple of a CONSTRUCT clause.
type ConstructTriple struct {
	Subject, Predicate, Object ConstructTerm
}

// ConstructClause is a CONSTRUCT query's template list.
type ConstructClause struct {
	Templates []ConstructTriple
}

// Query is a complete parsed query: a where-clause plus either a Select or
// a Construct projection (exactly one of Select/Construct is non-nil).
type Query struct {
	Select    *SelectClause
	Construct *ConstructClause
	Where     []TriplePattern
	Filters   []Filter
	OrderBy   []OrderKey
	LimitOffset
	// TextLimit is the decimal string from the query's text-limit clause,
	// possibly empty (§4.3 "Text limit").
	TextLimit string
}
