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

// Package export streams a selected plan's result in one of several wire
// formats: CSV, TSV, a binary octet-stream, SPARQL-JSON, SPARQL-XML, Turtle
// (CONSTRUCT only), and a tool-specific JSON format with streaming and
// non-streaming variants. Every row boundary is an explicit suspension and
// cancellation point; no row is ever emitted twice.
package export

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat marks a format refusing the query shape it was
// asked to render: binary/SPARQL-JSON/SPARQL-XML refuse CONSTRUCT queries,
// Turtle refuses anything but CONSTRUCT.
var ErrUnsupportedFormat = errors.New("export: format does not support this query shape")

// ErrCancelled is the sentinel errors.Is target for a CancelledError of any
// operation name.
var ErrCancelled = errors.New("export: cancelled")

// CancelledError reports that the cancellation handle was set at a
// suspension point, tagged with the name of the operation that observed it
// (§5 "Suspension points": "Stream query export" or "Query export").
type CancelledError struct {
	Op string
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("export: %s cancelled", e.Op)
}

// Is lets errors.Is(err, ErrCancelled) match any CancelledError regardless
// of operation name.
func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}
