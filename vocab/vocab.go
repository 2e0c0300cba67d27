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

// Package vocab defines the go interfaces that the identifier & vocabulary
// facade needs from the on-disk RDF index, decoupling the planner and
// exporter from any particular index implementation, along with a minimal
// in-memory implementation suitable for tests and the CLI.
package vocab

import (
	"fmt"

	"github.com/akutan-project/qcore/rpc"
)

// Vocabulary resolves the global-vocabulary and text-index identifier
// classes to their lexical forms, and resolves terms to Ids for planner
// estimates. One instance is shared read-only for the process lifetime.
type Vocabulary interface {
	// IndexToString returns the lexical form (literal-or-IRI string, or a
	// plain word) for a VocabIndex or WordVocabIndex identifier.
	IndexToString(id rpc.Id) (string, bool)
	// GetTextExcerpt returns the text record contents for a TextRecordIndex
	// identifier.
	GetTextExcerpt(id rpc.Id) (string, bool)
	// GetId resolves a fixed (non-variable) term string to its Id, for use
	// in planner cost/size estimation. Returns false if the term is not
	// present in the vocabulary.
	GetId(term string) (rpc.Id, bool)
	// Scan retrieves an identifier table for a permutation scan fixing
	// zero, one, or two of (subject, predicate, object). fixed holds the
	// fixed terms in permutation order; the returned table has one column
	// per unbound position (three, two or one).
	Scan(permutation Permutation, fixed ...string) (*rpc.IdTable, error)
}

// Permutation names one of the six (S, P, O) orderings a scan can use.
type Permutation uint8

const (
	SPO Permutation = iota
	SOP
	PSO
	POS
	OSP
	OPS
)

func (p Permutation) String() string {
	switch p {
	case SPO:
		return "SPO"
	case SOP:
		return "SOP"
	case PSO:
		return "PSO"
	case POS:
		return "POS"
	case OSP:
		return "OSP"
	case OPS:
		return "OPS"
	default:
		return fmt.Sprintf("Permutation(%d)", uint8(p))
	}
}

// LocalVocab is the per-result local vocabulary: a table for strings
// synthesised during query evaluation (e.g. by filters or CONSTRUCT) that
// are not present in the global vocabulary. Implements rpc.LocalVocab.
type LocalVocab struct {
	words []string
}

// NewLocalVocab returns an empty local vocabulary.
func NewLocalVocab() *LocalVocab {
	return &LocalVocab{}
}

// Add appends a word and returns the Id referencing it.
func (v *LocalVocab) Add(word string) rpc.Id {
	idx := uint64(len(v.words))
	v.words = append(v.words, word)
	return rpc.NewLocalVocabIndex(idx)
}

// Word implements rpc.LocalVocab.
func (v *LocalVocab) Word(index uint64) (string, bool) {
	if index >= uint64(len(v.words)) {
		return "", false
	}
	return v.words[index], true
}

var _ rpc.LocalVocab = (*LocalVocab)(nil)
