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

// Package config loads and saves the JSON configuration document that
// drives the sparql-query CLI: logging, tracing, and planner sections.
package config

// Config is the top-level configuration document.
type Config struct {
	Logging *Logging `json:"logging,omitempty"`
	Tracing *Tracing `json:"tracing,omitempty"`
	Planner *Planner `json:"planner,omitempty"`
}

// Logging configures the logrus handler the CLI installs at startup.
type Logging struct {
	// Type selects the logrus formatter/handler ("logspec" is the only
	// value unit tests exercise directly).
	Type string `json:"type"`
}

// Tracing configures the opentracing.Tracer the CLI installs, if any.
type Tracing struct {
	Type    string  `json:"type"`
	Locator Locator `json:"locator"`
}

// Locator names where a tracing backend (collector) can be reached.
type Locator struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// Planner holds the DP planner's tunables. Load and Write carry these
// fields, but neither the planner nor the sparql-query CLI reads them.
type Planner struct {
	// DefaultTextLimit is a text limit for queries without a TEXTLIMIT
	// clause. It has no effect: the planner's default for an absent clause
	// is always 1 (§4.3).
	DefaultTextLimit int `json:"defaultTextLimit,omitempty"`
	// MergeWorkers is a cap on how many DP merge-candidate batches run
	// concurrently per row (§10.2). It has no effect: the planner always
	// runs one goroutine per split point through util/parallel.
	MergeWorkers int `json:"mergeWorkers,omitempty"`
}
