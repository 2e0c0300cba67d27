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

package main

import (
	"fmt"
	"strings"

	"github.com/akutan-project/qcore/query/export"
)

// parseFormat maps the CLI's --format values onto export.Format.
func parseFormat(s string) (export.Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return export.CSV, nil
	case "tsv":
		return export.TSV, nil
	case "binary":
		return export.Binary, nil
	case "sparql-json":
		return export.SparqlJSON, nil
	case "sparql-xml":
		return export.SparqlXML, nil
	case "turtle":
		return export.Turtle, nil
	case "json":
		return export.ToolJSON, nil
	default:
		return 0, fmt.Errorf("unknown --format %q (want csv, tsv, binary, sparql-json, sparql-xml, turtle, or json)", s)
	}
}

// printPlan renders runtimeInfo as an indented tree, for the "plan"
// subcommand that stops short of executing the query.
func printPlan(info export.RuntimeInfo, depth int) {
	fmt.Printf("%s%s  cost=%.1f  size=%d\n", strings.Repeat("  ", depth), info.Operator, info.CostEstimate, info.SizeEstimate)
	for _, c := range info.Children {
		printPlan(c, depth+1)
	}
}
