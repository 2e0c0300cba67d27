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

// Package planner implements the cost-based dynamic-programming join-order
// optimiser: seeding, DP enumeration, merge, pruning, filter injection, and
// plan selection with ORDER BY/DISTINCT/text-limit post-processing.
package planner

import "errors"

// ErrBadQuery marks a malformed query: bad triple arity, a predicate
// variable, a text triple without a context variable, or a missing word
// part. Fatal for the query being planned.
var ErrBadQuery = errors.New("planner: malformed query")

// ErrCyclicQuery marks a join graph the planner deliberately refuses to
// plan because it is cyclic (§1 Non-goals, §8 scenario 3).
var ErrCyclicQuery = errors.New("planner: cyclic join graph is not supported")

// ErrNotImplemented marks a combination the planner recognises but
// deliberately does not implement (design note (c): multi-bound-variable
// text operator fusion).
var ErrNotImplemented = errors.New("planner: not yet implemented")

// ErrEmptyPlanRow indicates the DP table's final row has no surviving
// plans, meaning the query as given cannot be planned (caller's contract
// violation per §4.3 "Selection").
var ErrEmptyPlanRow = errors.New("planner: no surviving plan for query")
