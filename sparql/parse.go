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

package sparql

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a restricted textual subset of SPARQL:
//
//	SELECT [DISTINCT] ?v1 ?v2 WHERE { s1 p1 o1 . s2 p2 o2 . ... }
//	  [FILTER(?a = ?b)]* [ORDER BY ?v1 [DESC] ...] [LIMIT n] [OFFSET n]
//
// It exists to drive the CLI and integration tests against the frozen
// input types of §6; it is not a general SPARQL grammar (that remains out
// of scope — see §1's Non-goals).
func Parse(text string) (*Query, error) {
	p := &parser{toks: tokenize(text)}
	return p.parseQuery()
}

func tokenize(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	inLiteral := false
	for _, r := range text {
		switch {
		case r == '"':
			cur.WriteRune(r)
			inLiteral = !inLiteral
		case inLiteral:
			cur.WriteRune(r)
		case r == '{' || r == '}' || r == '.' || r == '(' || r == ')' || r == ',' || r == '=':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) peekUpper() string { return strings.ToUpper(p.peek()) }

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) expect(tok string) error {
	got := p.next()
	if !strings.EqualFold(got, tok) {
		return fmt.Errorf("sparql: expected %q, got %q", tok, got)
	}
	return nil
}

func (p *parser) parseQuery() (*Query, error) {
	q := &Query{}
	switch p.peekUpper() {
	case "SELECT":
		p.next()
		sel := &SelectClause{}
		if p.peekUpper() == "DISTINCT" {
			p.next()
			sel.Distinct = true
		}
		for IsVariable(p.peek()) {
			sel.Variables = append(sel.Variables, p.next())
		}
		q.Select = sel
	case "CONSTRUCT":
		p.next()
		if err := p.expect("{"); err != nil {
			return nil, err
		}
		var templates []ConstructTriple
		for p.peek() != "}" && p.peek() != "" {
			s, err := p.parseConstructTerm()
			if err != nil {
				return nil, err
			}
			pr, err := p.parseConstructTerm()
			if err != nil {
				return nil, err
			}
			o, err := p.parseConstructTerm()
			if err != nil {
				return nil, err
			}
			templates = append(templates, ConstructTriple{s, pr, o})
			if p.peek() == "." {
				p.next()
			}
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		q.Construct = &ConstructClause{Templates: templates}
	default:
		return nil, fmt.Errorf("sparql: expected SELECT or CONSTRUCT, got %q", p.peek())
	}

	if err := p.expect("WHERE"); err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	for p.peek() != "}" && p.peek() != "" {
		s := p.next()
		pr := p.next()
		o := p.next()
		q.Where = append(q.Where, TriplePattern{Subject: s, Predicate: pr, Object: o})
		if p.peek() == "." {
			p.next()
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}

	for p.peekUpper() == "FILTER" {
		p.next()
		if err := p.expect("("); err != nil {
			return nil, err
		}
		lhs := p.next()
		ft := FilterEqual
		switch p.next() {
		case "=":
			ft = FilterEqual
		}
		rhs := p.next()
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, Filter{LHS: lhs, RHS: rhs, Type: ft})
	}

	if p.peekUpper() == "ORDER" {
		p.next()
		if err := p.expect("BY"); err != nil {
			return nil, err
		}
		for IsVariable(p.peek()) {
			v := p.next()
			desc := false
			if p.peekUpper() == "DESC" {
				p.next()
				desc = true
			} else if p.peekUpper() == "ASC" {
				p.next()
			}
			q.OrderBy = append(q.OrderBy, OrderKey{Variable: v, Descending: desc})
		}
	}

	if p.peekUpper() == "LIMIT" {
		p.next()
		n, err := strconv.ParseInt(p.next(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sparql: bad LIMIT: %w", err)
		}
		q.LimitOffset.Limit = &n
	}
	if p.peekUpper() == "OFFSET" {
		p.next()
		n, err := strconv.ParseInt(p.next(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sparql: bad OFFSET: %w", err)
		}
		q.LimitOffset.Offset = &n
	}
	if p.peekUpper() == "TEXTLIMIT" {
		p.next()
		q.TextLimit = p.next()
	}

	return q, nil
}

func (p *parser) parseConstructTerm() (ConstructTerm, error) {
	tok := p.next()
	if tok == "" {
		return ConstructTerm{}, fmt.Errorf("sparql: unexpected end of input in CONSTRUCT template")
	}
	if IsVariable(tok) {
		return VariableTerm(tok), nil
	}
	return FixedTerm(tok), nil
}
