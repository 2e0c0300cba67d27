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

// writeBinary implements the binary octet-stream format from §4.5: the raw
// little-endian Id bytes of each present selected column, concatenated, in
// order, no header or separators. Refuses CONSTRUCT queries.
func writeBinary(ctx context.Context, w io.Writer, req Request) error {
	if req.Query.Select == nil {
		return ErrUnsupportedFormat
	}
	lo, hi := req.rowRange()
	for row := lo; row < hi; row++ {
		if ctx.Err() != nil {
			return &CancelledError{Op: "Query export"}
		}
		for _, v := range req.Query.Select.Variables {
			col, bound := req.Columns[v]
			if !bound {
				continue
			}
			id := req.Result.Table.At(row, col)
			if id.IsUndefined() {
				continue
			}
			bytes := id.AsBytes()
			if _, err := w.Write(bytes[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
