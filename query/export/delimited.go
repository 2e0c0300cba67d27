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
	"strings"
)

// writeDelimited implements the CSV/TSV format from §4.5: a header row of
// selected variable names, then one row per output row with cells
// separated by sep, unresolved cells left empty.
func writeDelimited(ctx context.Context, w io.Writer, req Request, sep string, stripLeadingMark bool) error {
	opName := "Query export"
	vars := req.selectedVariables(stripLeadingMark)
	if _, err := io.WriteString(w, strings.Join(vars, sep)+"\n"); err != nil {
		return err
	}

	lo, hi := req.rowRange()
	removeQuotes := stripLeadingMark // true for CSV, false for TSV
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: opName}
		}
		cells := make([]string, len(req.Query.Select.Variables))
		for i, v := range req.Query.Select.Variables {
			value, _, ok := req.resolveColumn(row, v, removeQuotes, false)
			if !ok {
				continue
			}
			cells[i] = delimitedEscape(value, sep)
		}
		if _, err := io.WriteString(w, strings.Join(cells, sep)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// delimitedEscape applies minimal RDF-aware escaping: backslash-escape any
// embedded separator, backslash, or newline so cells stay on one line and
// unambiguously delimited.
func delimitedEscape(s, sep string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		sep, `\`+sep,
		"\n", `\n`,
	)
	return r.Replace(s)
}
