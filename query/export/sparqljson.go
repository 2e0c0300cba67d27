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
	"context"
	"encoding/json"
	"fmt"
	"io"
)

type sparqlJSONBinding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func bindingFor(value, datatype string) sparqlJSONBinding {
	if datatype != "" {
		return sparqlJSONBinding{Type: "literal", Value: value, Datatype: datatype}
	}
	kind, v, lang, dt := decodeBindingForm(value)
	return sparqlJSONBinding{Type: kind, Value: v, Lang: lang, Datatype: dt}
}

// writeSparqlJSON implements the SPARQL-JSON format from §4.5, streaming
// row by row rather than buffering the whole bindings array. Refuses
// CONSTRUCT queries.
func writeSparqlJSON(ctx context.Context, w io.Writer, req Request) error {
	if req.Query.Select == nil {
		return ErrUnsupportedFormat
	}
	vars := req.selectedVariables(true)
	varsJSON, err := json.Marshal(vars)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `{"head":{"vars":%s},"results":{"bindings":[`, varsJSON); err != nil {
		return err
	}

	lo, hi := req.rowRange()
	first := true
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Stream query export"}
		}
		obj := make(map[string]sparqlJSONBinding, len(req.Query.Select.Variables))
		for _, v := range req.Query.Select.Variables {
			value, datatype, ok := req.resolveColumn(row, v, false, false)
			if !ok {
				continue
			}
			obj[trimMark(v)] = bindingFor(value, datatype)
		}
		encoded, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		if _, err := w.Write(encoded); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, `]}}`)
	return err
}

func trimMark(v string) string {
	if len(v) > 0 && v[0] == '?' {
		return v[1:]
	}
	return v
}
