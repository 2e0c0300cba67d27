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

package cmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// These helpers check that Max/Min are consistent with each other and with
// the natural ordering of the slice under test, for every adjacent pair.

func testint64Values(t *testing.T, vals []int64) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.Equal(t, b, MaxInt64(a, b))
		assert.Equal(t, a, MinInt64(a, b))
	}
}

func testuint64Values(t *testing.T, vals []uint64) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.Equal(t, b, MaxUInt64(a, b))
		assert.Equal(t, a, MinUInt64(a, b))
	}
}

func testint32Values(t *testing.T, vals []int32) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.Equal(t, b, MaxInt32(a, b))
		assert.Equal(t, a, MinInt32(a, b))
	}
}

func testuint32Values(t *testing.T, vals []uint32) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.Equal(t, b, MaxUInt32(a, b))
		assert.Equal(t, a, MinUInt32(a, b))
	}
}

func testintValues(t *testing.T, vals []int) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.Equal(t, b, MaxInt(a, b))
		assert.Equal(t, a, MinInt(a, b))
	}
}

func teststringValues(t *testing.T, vals []string) {
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1], vals[i]
		assert.True(t, a < b, "fixture must be sorted ascending")
		ka, kb := Key(stringKeyer(a)), Key(stringKeyer(b))
		assert.NotEqual(t, ka, kb)
	}
}

// stringKeyer adapts a bare string to Keyer for teststringValues.
type stringKeyer string

func (s stringKeyer) Key(b *strings.Builder) { WriteString(b, string(s)) }
