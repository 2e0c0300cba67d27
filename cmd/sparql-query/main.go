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

// Command sparql-query plans, and optionally runs, a query against an
// in-memory fact store, in the idiom of the akutan-client tool it was
// adapted from.
package main

import (
	"bufio"
	"context"
	"os"
	"time"

	docopt "github.com/docopt/docopt-go"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akutan-project/qcore/config"
	"github.com/akutan-project/qcore/query/export"
	"github.com/akutan-project/qcore/query/planner"
	"github.com/akutan-project/qcore/sparql"
	"github.com/akutan-project/qcore/util/clocks"
	"github.com/akutan-project/qcore/vocab"
)

var fmtr = message.NewPrinter(language.English)

const usage = `sparql-query plans, and optionally runs, a query against an in-memory
fact store.

Usage:
  sparql-query [--config=FILE -t=DUR --trace=HOST --format=FORMAT --stream] query FACTS QUERYFILE
  sparql-query [--config=FILE] plan FACTS QUERYFILE

Options:
  --config=FILE           JSON configuration file (see the config package).
  -t=DUR, --timeout=DUR   Timeout for planning and export [default: 10s]
  --trace=HOST            Send OpenTracing traces to this collector.
  --format=FORMAT         csv, tsv, binary, sparql-json, sparql-xml, turtle, or json [default: csv]
  --stream                Use the streaming tool-JSON writer for --format=json.

FACTS is a tab-separated subject/predicate/object fact file that seeds the
in-memory vocabulary. QUERYFILE holds one query in sparql.Parse's tiny
textual subset; '-' reads it from standard input.

Examples:
  # Plan (but don't run) a query that joins two triples.
  sparql-query plan facts.tsv - <<EOF
  SELECT ?p WHERE {
  <car1> <fits> ?p
  ?p <madeBy> <acme>
  }
EOF

  # Run a query and print CSV to stdout.
  sparql-query query facts.tsv query.txt --format=csv
`

type options struct {
	Query bool `docopt:"query"`
	Plan  bool `docopt:"plan"`

	ConfigFile       string `docopt:"--config"`
	TimeoutString    string `docopt:"--timeout"`
	Timeout          time.Duration
	TracingCollector string `docopt:"--trace"`
	Format           string `docopt:"--format"`
	Streaming        bool   `docopt:"--stream"`

	FactsFile string `docopt:"FACTS"`
	QueryFile string `docopt:"QUERYFILE"`
}

func parseArgs() *options {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var o options
	if err := opts.Bind(&o); err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	o.Timeout, err = time.ParseDuration(o.TimeoutString)
	if err != nil {
		log.Fatalf("Unable to parse timeout value: %v", err)
	}
	if o.Timeout == 0 {
		o.Timeout = time.Hour
	}
	return &o
}

func main() {
	opts := parseArgs()

	var cfg *config.Config
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	var logging *config.Logging
	if cfg != nil {
		logging = cfg.Logging
	}
	configureLogging(logging)

	tracingCollector := opts.TracingCollector
	if tracingCollector == "" && cfg != nil && cfg.Tracing != nil {
		tracingCollector = cfg.Tracing.Locator.Host
	}
	if tracingCollector != "" {
		warnNoTracer(tracingCollector)
	}

	ctx, cancel := withDeadline(context.Background(), clocks.Wall, opts.Timeout)
	defer cancel()
	span, ctx := opentracing.StartSpanFromContext(ctx, "sparql-query run")
	defer span.Finish()

	facts, err := loadFacts(opts.FactsFile)
	if err != nil {
		log.Fatalf("Error loading facts: %v", err)
	}
	v := vocab.NewStatic(facts)
	log.WithField("triples", len(facts)).Info("loaded facts")

	queryText, err := readQueryText(opts.QueryFile)
	if err != nil {
		log.Fatalf("Error reading query: %v", err)
	}
	q, err := sparql.Parse(queryText)
	if err != nil {
		log.Fatalf("Error parsing query: %v", err)
	}

	start := clocks.Wall.Now()
	root, err := planner.Plan(ctx, q, v)
	if err != nil {
		log.Fatalf("Error planning query: %v", err)
	}
	runtimeInfo := export.RuntimeInfoFromPlan(root)
	log.Infof("selected plan in %v: cost=%s size=%s",
		clocks.Wall.Now().Sub(start),
		fmtr.Sprintf("%.0f", runtimeInfo.CostEstimate),
		fmtr.Sprintf("%d", runtimeInfo.SizeEstimate))

	if opts.Plan {
		printPlan(runtimeInfo, 0)
		return
	}

	format, err := parseFormat(opts.Format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	rows, err := evaluate(v, root)
	if err != nil {
		log.Fatalf("Error executing plan: %v", err)
	}
	result, columns := toResult(root, rows)

	req := export.Request{Result: result, Columns: columns, Query: q, Vocab: v}
	w := bufio.NewWriter(os.Stdout)
	exportStart := clocks.Wall.Now()
	if err := export.Stream(ctx, w, req, format, runtimeInfo, queryText, opts.Streaming); err != nil {
		log.Fatalf("Error exporting result: %v", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("Error flushing output: %v", err)
	}
	log.Infof("exported %s rows in %v", fmtr.Sprintf("%d", result.Table.NumRows()), clocks.Wall.Now().Sub(exportStart))
}
