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
	"strconv"
	"strings"
	"time"

	"github.com/akutan-project/qcore/rpc"
	"github.com/akutan-project/qcore/vocab"
)

const (
	xsdInt     = "xsd:int"
	xsdDecimal = "xsd:decimal"
	xsdBoolean = "xsd:boolean"
	xsdDate    = "xsd:date"
)

// idToStringAndType implements §4.4: resolve id to its lexical string form
// and, where applicable, its datatype IRI. ok is false when the identifier
// resolves to nothing printable (Undefined, a dangling index, or a
// non-literal identifier under onlyLiterals).
func idToStringAndType(v vocab.Vocabulary, lv rpc.LocalVocab, id rpc.Id, removeQuotesAndAngles, onlyLiterals bool) (value, datatype string, ok bool) {
	switch id.Tag() {
	case rpc.Undefined:
		return "", "", false

	case rpc.Int:
		return strconv.FormatInt(id.Int(), 10), xsdInt, true

	case rpc.Double:
		d := id.Double()
		if d == float64(int64(d)) {
			return strconv.FormatFloat(d, 'f', 0, 64), xsdDecimal, true
		}
		return strconv.FormatFloat(d, 'g', -1, 64), xsdDecimal, true

	case rpc.Bool:
		if id.Bool() {
			return "true", xsdBoolean, true
		}
		return "false", xsdBoolean, true

	case rpc.Date:
		return time.Unix(id.Date(), 0).UTC().Format("2006-01-02"), xsdDate, true

	case rpc.BlankNodeIndex:
		if onlyLiterals {
			return "", "", false
		}
		return "_:bn" + strconv.FormatUint(id.Index(), 10), "", true

	case rpc.VocabIndex, rpc.WordVocabIndex:
		s, found := v.IndexToString(id)
		if !found {
			return "", "", false
		}
		if onlyLiterals && looksLikeIRI(s) {
			return "", "", false
		}
		if removeQuotesAndAngles {
			s = stripQuotesAndAngles(s)
		}
		return s, "", true

	case rpc.LocalVocabIndex:
		s, found := lv.Word(id.Index())
		if !found {
			return "", "", false
		}
		if onlyLiterals && looksLikeIRI(s) {
			return "", "", false
		}
		if removeQuotesAndAngles {
			s = stripQuotesAndAngles(s)
		}
		return s, "", true

	case rpc.TextRecordIndex:
		s, found := v.GetTextExcerpt(id)
		if !found {
			return "", "", false
		}
		return s, "", true

	default:
		return "", "", false
	}
}

func looksLikeIRI(s string) bool {
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

func stripQuotesAndAngles(s string) string {
	if len(s) >= 2 {
		if s[0] == '"' && s[len(s)-1] == '"' {
			return s[1 : len(s)-1]
		}
		if s[0] == '<' && s[len(s)-1] == '>' {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// canonicalTerm reconstructs the lexical-plus-datatype form idToStringAndType
// decomposed, for use where a single RDF-term string is needed (CONSTRUCT
// evaluation, Turtle emission of a non-IRI/non-literal-looking value).
func canonicalTerm(value, datatype string) string {
	if datatype == "" {
		return value
	}
	return `"` + value + `"^^<` + datatype + `>`
}

// decodeBindingForm implements the SPARQL-JSON/XML binding decode rules
// from §4.5: given a resolved string with no datatype IRI from the
// resolver, classify it as a uri, bnode, or literal (optionally with an
// @lang suffix or a ^^<iri> datatype suffix).
func decodeBindingForm(s string) (kind, value, lang, datatype string) {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return "uri", s[1 : len(s)-1], "", ""
	}
	if strings.HasPrefix(s, "_:") {
		return "bnode", s[2:], "", ""
	}
	first := strings.IndexByte(s, '"')
	if first < 0 {
		return "literal", s, "", ""
	}
	last := strings.LastIndexByte(s, '"')
	lexical := s[first+1 : last]
	suffix := s[last+1:]
	switch {
	case strings.HasPrefix(suffix, "@"):
		return "literal", lexical, suffix[1:], ""
	case strings.HasPrefix(suffix, "^^"):
		dt := strings.TrimSuffix(strings.TrimPrefix(suffix[2:], "<"), ">")
		return "literal", lexical, "", dt
	default:
		return "literal", lexical, "", ""
	}
}
