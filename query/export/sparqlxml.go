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
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// xmlEscape returns s with the standard XML special characters escaped.
func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// writeSparqlXML implements the SPARQL-XML format from §4.5. Values are
// XML-escaped except datatype IRIs, which the resolver is trusted to have
// already produced pre-escaped (they are fixed xsd: names or vocabulary
// IRIs, never user data). Refuses CONSTRUCT queries.
func writeSparqlXML(ctx context.Context, w io.Writer, req Request) error {
	if req.Query.Select == nil {
		return ErrUnsupportedFormat
	}
	if _, err := io.WriteString(w, `<?xml version="1.0"?>`+"\n"+
		`<sparql xmlns="http://www.w3.org/2005/sparql-results#">`+"\n<head>"); err != nil {
		return err
	}
	for _, v := range req.selectedVariables(true) {
		if _, err := fmt.Fprintf(w, `<variable name=%q/>`, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<results>\n"); err != nil {
		return err
	}

	lo, hi := req.rowRange()
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Query export"}
		}
		if _, err := io.WriteString(w, "  <result>\n"); err != nil {
			return err
		}
		for _, v := range req.Query.Select.Variables {
			value, datatype, ok := req.resolveColumn(row, v, false, false)
			if !ok {
				continue
			}
			if err := writeXMLBinding(w, trimMark(v), value, datatype); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "  </result>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</results>\n</sparql>\n")
	return err
}

func writeXMLBinding(w io.Writer, name, value, datatype string) error {
	if datatype != "" {
		_, err := fmt.Fprintf(w, `    <binding name=%q><literal datatype=%q>%s</literal></binding>`+"\n",
			name, datatype, xmlEscape(value))
		return err
	}
	kind, v, lang, dt := decodeBindingForm(value)
	switch kind {
	case "uri":
		_, err := fmt.Fprintf(w, `    <binding name=%q><uri>%s</uri></binding>`+"\n", name, xmlEscape(v))
		return err
	case "bnode":
		_, err := fmt.Fprintf(w, `    <binding name=%q><bnode>%s</bnode></binding>`+"\n", name, xmlEscape(v))
		return err
	default:
		attrs := ""
		if lang != "" {
			attrs = fmt.Sprintf(` xml:lang=%q`, lang)
		} else if dt != "" {
			attrs = fmt.Sprintf(` datatype=%q`, dt)
		}
		_, err := fmt.Fprintf(w, `    <binding name=%q><literal%s>%s</literal></binding>`+"\n", name, attrs, xmlEscape(v))
		return err
	}
}
