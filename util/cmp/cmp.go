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

// Package cmp holds small numeric helpers and the Key convention used
// throughout the query planner to build canonical, comparable string keys
// for values that don't otherwise have one (e.g. the DP table's pruning
// key, described in the planner package).
package cmp

import (
	"fmt"
	"strings"
)

// Keyer is implemented by types that can append a canonical representation
// of themselves to b, suitable for use as a map key or for equality
// comparison. Two values are defined to be equal iff they produce identical
// keys. Implementations must write a value of unambiguous length (e.g. by
// prefixing a length or by escaping a trailing delimiter) so that
// concatenating several Keyer outputs into one builder remains unambiguous.
type Keyer interface {
	Key(b *strings.Builder)
}

// WriteString writes s to b as a length-prefixed field, so that callers may
// concatenate several strings into one key without a delimiter collision.
func WriteString(b *strings.Builder, s string) {
	fmt.Fprintf(b, "%d:", len(s))
	b.WriteString(s)
}

// WriteInt64 writes v to b as a decimal field terminated by a delimiter.
func WriteInt64(b *strings.Builder, v int64) {
	fmt.Fprintf(b, "%d;", v)
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt64 returns the larger of a and b.
func MaxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// MinInt64 returns the smaller of a and b.
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// MaxUInt64 returns the larger of a and b.
func MaxUInt64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// MinUInt64 returns the smaller of a and b.
func MinUInt64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// MaxInt32 returns the larger of a and b.
func MaxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// MinInt32 returns the smaller of a and b.
func MinInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// MaxUInt32 returns the larger of a and b.
func MaxUInt32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// MinUInt32 returns the smaller of a and b.
func MinUInt32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Key returns the canonical string key for a Keyer, for convenient use as a
// map key.
func Key(k Keyer) string {
	var b strings.Builder
	k.Key(&b)
	return b.String()
}
