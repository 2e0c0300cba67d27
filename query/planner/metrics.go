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

package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansConsidered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qcore_planner_plans_considered_total",
		Help: "Subtree plans produced by DP row enumeration, before pruning.",
	})
	plansPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qcore_planner_plans_pruned_total",
		Help: "Subtree plans discarded by the pruning-key dominance check (§4.2.4).",
	})
)
