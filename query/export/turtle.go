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
	"io"
)

// writeTurtle implements the Turtle format from §4.5: CONSTRUCT only. For
// each generated triple (s, p, o), emits "s SP p SP o .\n"; if o begins
// with a quote it is passed through the normalised-RDF-literal formatter
// first (design note (b): only the first character is checked, matching
// the original implementation's behaviour verbatim).
func writeTurtle(ctx context.Context, w io.Writer, req Request) error {
	if req.Query.Construct == nil {
		return ErrUnsupportedFormat
	}
	lo, hi := req.rowRange()
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Query export"}
		}
		for _, triple := range evaluateConstructRow(req, row) {
			o := triple[2]
			if len(o) > 0 && o[0] == '"' {
				o = normalizeRDFLiteral(o)
			}
			if _, err := io.WriteString(w, triple[0]+" "+triple[1]+" "+o+" .\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeRDFLiteral re-escapes an already-quoted RDF literal's interior
// so it is safe to embed in Turtle output: backslashes and embedded quotes
// are escaped, the surrounding quote/suffix (datatype or language tag) is
// preserved as-is.
func normalizeRDFLiteral(o string) string {
	last := len(o) - 1
	for last > 0 && o[last] != '"' {
		last--
	}
	if last == 0 {
		return o
	}
	inner := o[1:last]
	suffix := o[last+1:]
	escaped := make([]byte, 0, len(inner)+2)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' || c == '"' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return `"` + string(escaped) + `"` + suffix
}
