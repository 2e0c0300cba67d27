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

package vocab

import (
	"fmt"
	"sort"

	"github.com/akutan-project/qcore/rpc"
)

// Triple is a concrete (subject, predicate, object) fact as held by Static.
type Triple struct {
	S, P, O string
}

// Static is a minimal in-memory Vocabulary, standing in for the real
// on-disk RDF index that §1 places out of scope. It is sufficient to
// exercise and test the planner and exporter end to end.
type Static struct {
	triples []Triple
	index   map[string]rpc.Id
	words   []string
	texts   []string
}

// NewStatic builds a Static vocabulary over the given triples. Every
// distinct S/P/O string is assigned a stable VocabIndex Id in sorted order.
func NewStatic(triples []Triple) *Static {
	s := &Static{triples: triples, index: make(map[string]rpc.Id)}
	seen := make(map[string]bool)
	var terms []string
	for _, t := range triples {
		for _, term := range [3]string{t.S, t.P, t.O} {
			if !seen[term] {
				seen[term] = true
				terms = append(terms, term)
			}
		}
	}
	sort.Strings(terms)
	for i, term := range terms {
		s.index[term] = rpc.NewVocabIndex(uint64(i))
	}
	s.words = terms
	return s
}

// AddText registers a text excerpt and returns its TextRecordIndex Id.
func (s *Static) AddText(excerpt string) rpc.Id {
	idx := uint64(len(s.texts))
	s.texts = append(s.texts, excerpt)
	return rpc.NewTextRecordIndex(idx)
}

// IndexToString implements Vocabulary.
func (s *Static) IndexToString(id rpc.Id) (string, bool) {
	switch id.Tag() {
	case rpc.VocabIndex, rpc.WordVocabIndex:
		i := id.Index()
		if i >= uint64(len(s.words)) {
			return "", false
		}
		return s.words[i], true
	default:
		return "", false
	}
}

// GetTextExcerpt implements Vocabulary.
func (s *Static) GetTextExcerpt(id rpc.Id) (string, bool) {
	if id.Tag() != rpc.TextRecordIndex {
		return "", false
	}
	i := id.Index()
	if i >= uint64(len(s.texts)) {
		return "", false
	}
	return s.texts[i], true
}

// GetId implements Vocabulary.
func (s *Static) GetId(term string) (rpc.Id, bool) {
	id, ok := s.index[term]
	return id, ok
}

// Scan implements Vocabulary. fixed gives the fixed terms in the order the
// permutation's first positions list them; the returned table has one
// column per remaining unbound position, in the permutation's order.
func (s *Static) Scan(permutation Permutation, fixed ...string) (*rpc.IdTable, error) {
	order, ok := permutationOrder[permutation]
	if !ok {
		return nil, fmt.Errorf("vocab: unknown permutation %v", permutation)
	}
	if len(fixed) > 2 {
		return nil, fmt.Errorf("vocab: scan accepts at most 2 fixed terms, got %d", len(fixed))
	}
	numCols := 3 - len(fixed)
	table := rpc.NewIdTable(numCols)
	for _, t := range s.triples {
		vals := map[int]string{0: t.S, 1: t.P, 2: t.O}
		matches := true
		for i, term := range fixed {
			if vals[order[i]] != term {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}
		row := make([]rpc.Id, 0, numCols)
		for i := len(fixed); i < 3; i++ {
			id, ok := s.index[vals[order[i]]]
			if !ok {
				matches = false
				break
			}
			row = append(row, id)
		}
		if matches {
			table.AppendRow(row...)
		}
	}
	return table, nil
}

// permutationOrder gives the (subject=0,predicate=1,object=2) position
// index in the order each permutation visits them.
var permutationOrder = map[Permutation][3]int{
	SPO: {0, 1, 2},
	SOP: {0, 2, 1},
	PSO: {1, 0, 2},
	POS: {1, 2, 0},
	OSP: {2, 0, 1},
	OPS: {2, 1, 0},
}

var _ Vocabulary = (*Static)(nil)
