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
	"time"

	"github.com/akutan-project/qcore/query/plan"
)

// RuntimeInfo carries the selected operator tree's statistics for the
// tool-JSON "runtimeInformation" field. Populated by the caller from the
// plan it selected; this package treats it as opaque data to marshal.
type RuntimeInfo struct {
	Operator      string        `json:"operator"`
	CostEstimate  float64       `json:"costEstimate"`
	SizeEstimate  int64         `json:"sizeEstimate"`
	Children      []RuntimeInfo `json:"children,omitempty"`
}

// RuntimeInfoFromPlan walks op's tree into the RuntimeInfo shape the
// tool-JSON format reports.
func RuntimeInfoFromPlan(op plan.Operator) RuntimeInfo {
	info := RuntimeInfo{
		Operator:     op.Kind().String(),
		CostEstimate: op.CostEstimate(),
		SizeEstimate: op.SizeEstimate(),
	}
	for _, c := range op.Children() {
		info.Children = append(info.Children, RuntimeInfoFromPlan(c))
	}
	return info
}

// ToolJSONMeta is the preamble data for the tool-specific JSON format
// (§4.5, "Tool-specific JSON"): everything but the row array and the
// resultsize/time_ms trailer, which depend on how many rows were actually
// emitted and are computed after the fact by both the streaming and
// buffered writers.
type ToolJSONMeta struct {
	Query    string      `json:"query"`
	Status   string      `json:"status"`
	Warnings []string    `json:"warnings"`
	Selected interface{} `json:"selected"`
	Runtime  RuntimeInfo `json:"runtimeInformation"`
}

func selectedDescription(req Request) interface{} {
	if req.Query.Construct != nil {
		out := make([][3]string, len(req.Query.Construct.Templates))
		for i := range out {
			out[i] = [3]string{"?s", "?p", "?o"}
		}
		return out
	}
	return req.Query.Select.Variables
}

// writeToolJSON implements the tool-specific JSON format for both SELECT
// and CONSTRUCT queries. When streaming is true, the preamble and suffix
// are emitted immediately around a comma-separated row stream with no
// buffering of the full result (§4.5); otherwise the whole document,
// including "res", is built and marshaled as one object.
func writeToolJSON(ctx context.Context, w io.Writer, req Request, meta ToolJSONMeta, start time.Time, streaming bool) error {
	if streaming {
		return writeToolJSONStreaming(ctx, w, req, meta, start)
	}
	return writeToolJSONBuffered(ctx, w, req, meta, start)
}

func writeToolJSONStreaming(ctx context.Context, w io.Writer, req Request, meta ToolJSONMeta, start time.Time) error {
	meta.Selected = selectedDescription(req)
	preamble, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	// preamble ends in "}"; splice the "res" array in before it.
	if _, err := w.Write(preamble[:len(preamble)-1]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `,"res":[`); err != nil {
		return err
	}

	lo, hi := req.rowRange()
	first := true
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Stream query export"}
		}
		rowJSON, err := json.Marshal(toolJSONRow(req, row))
		if err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		if _, err := w.Write(rowJSON); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, `],"resultsize":%d,"time_ms":%d}`, hi-lo, time.Since(start).Milliseconds())
	return err
}

func writeToolJSONBuffered(ctx context.Context, w io.Writer, req Request, meta ToolJSONMeta, start time.Time) error {
	lo, hi := req.rowRange()
	rows := make([]interface{}, 0, hi-lo)
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Query export"}
		}
		rows = append(rows, toolJSONRow(req, row))
	}
	meta.Selected = selectedDescription(req)

	doc := struct {
		ToolJSONMeta
		Res        []interface{} `json:"res"`
		ResultSize int           `json:"resultsize"`
		TimeMs     int64         `json:"time_ms"`
	}{ToolJSONMeta: meta, Res: rows, ResultSize: len(rows), TimeMs: time.Since(start).Milliseconds()}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}

// toolJSONRow implements §4.5.1: for SELECT, an array where each selected
// column is null (unbound), a quoted "<lexical>"^^<datatype> string, or
// the bare resolved string. For CONSTRUCT, a 3-element string array.
func toolJSONRow(req Request, row int) interface{} {
	if req.Query.Construct != nil {
		triples := evaluateConstructRow(req, row)
		out := make([][3]string, len(triples))
		copy(out, triples)
		return out
	}
	cells := make([]interface{}, len(req.Query.Select.Variables))
	for i, v := range req.Query.Select.Variables {
		value, datatype, ok := req.resolveColumn(row, v, false, false)
		if !ok {
			cells[i] = nil
			continue
		}
		if datatype != "" {
			cells[i] = `"` + value + `"^^<` + datatype + `>`
		} else {
			cells[i] = value
		}
	}
	return cells
}
