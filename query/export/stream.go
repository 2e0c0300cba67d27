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
	"errors"
	"fmt"
	"io"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Format names one of the wire formats the exporter can produce.
type Format uint8

const (
	CSV Format = iota
	TSV
	Binary
	SparqlJSON
	SparqlXML
	Turtle
	ToolJSON
)

func (f Format) String() string {
	names := [...]string{"CSV", "TSV", "Binary", "SparqlJSON", "SparqlXML", "Turtle", "ToolJSON"}
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Stream writes req's selected rows, in the given format, to w. ctx is
// polled at every row boundary (§5 "Suspension points"); if it is done,
// Stream stops and returns a *CancelledError without writing a partial
// final row. For ToolJSON, streaming selects between the format's
// streaming and buffered variants and runtimeInfo/queryText feed the
// document's preamble fields (its warnings list is always empty).
func Stream(ctx context.Context, w io.Writer, req Request, format Format, runtimeInfo RuntimeInfo, queryText string, streaming bool) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "export result")
	defer span.Finish()

	lo, hi := req.rowRange()
	err := stream(ctx, w, req, format, runtimeInfo, queryText, streaming)
	if err != nil {
		var cancelled *CancelledError
		if errors.As(err, &cancelled) {
			log.WithFields(log.Fields{"format": format, "op": cancelled.Op}).Warn("export: stream cancelled mid-flight")
		}
		return err
	}
	rowsExported.WithLabelValues(format.String()).Add(float64(hi - lo))
	return nil
}

func stream(ctx context.Context, w io.Writer, req Request, format Format, runtimeInfo RuntimeInfo, queryText string, streaming bool) error {
	switch format {
	case CSV:
		return writeDelimited(ctx, w, req, ",", true)
	case TSV:
		return writeDelimited(ctx, w, req, "\t", false)
	case Binary:
		return writeBinary(ctx, w, req)
	case SparqlJSON:
		return writeSparqlJSON(ctx, w, req)
	case SparqlXML:
		return writeSparqlXML(ctx, w, req)
	case Turtle:
		return writeTurtle(ctx, w, req)
	case ToolJSON:
		meta := ToolJSONMeta{Query: queryText, Status: "OK", Warnings: []string{}, Runtime: runtimeInfo}
		return writeToolJSON(ctx, w, req, meta, time.Now(), streaming)
	default:
		return fmt.Errorf("%w: unknown format %v", ErrUnsupportedFormat, format)
	}
}
