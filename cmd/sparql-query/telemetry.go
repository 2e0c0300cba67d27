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
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/akutan-project/qcore/config"
	"github.com/akutan-project/qcore/util/clocks"
)

// configureLogging installs logrus's text formatter with full RFC 3339 timestamps,
// matching the teacher's debuglog.Configure defaults. cfg may be nil (no
// --config given).
func configureLogging(cfg *config.Logging) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	if cfg != nil && cfg.Type != "" {
		log.WithField("type", cfg.Type).Info("Initialized Logrus")
	} else {
		log.Info("Initialized Logrus")
	}
}

// warnNoTracer logs that traces were requested but this build has no
// concrete OpenTracing backend linked (the corpus this CLI was adapted from
// carries one; it isn't among the dependencies available here). Spans are
// still created throughout the planner and exporter against the global
// no-op tracer, so --trace only changes whether they go anywhere.
func warnNoTracer(collector string) {
	log.WithField("collector", collector).Warn("no OpenTracing backend linked into this build; spans will be created but not exported")
}

// withDeadline bounds ctx by timeout, using clock instead of the wall clock
// directly so tests can substitute clocks.NewMock(). Adapted from the
// teacher's injectable-clock idiom (util/clocks).
func withDeadline(ctx context.Context, clock clocks.Source, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	deadline := clock.Now().Add(timeout)
	go func() {
		clock.SleepUntil(ctx, deadline)
		cancel()
	}()
	return ctx, cancel
}
