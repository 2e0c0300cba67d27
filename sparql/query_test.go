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

package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LimitOffset_Clamping(t *testing.T) {
	limit := int64(2)
	offset := int64(2)
	lo := LimitOffset{Limit: &limit, Offset: &offset}
	assert.Equal(t, 2, lo.ActualOffset(5))
	assert.Equal(t, 4, lo.UpperBound(5))

	limit2 := int64(100)
	offset2 := int64(4)
	lo2 := LimitOffset{Limit: &limit2, Offset: &offset2}
	assert.Equal(t, 4, lo2.ActualOffset(5))
	assert.Equal(t, 5, lo2.UpperBound(5))
}

func Test_LimitOffset_Unset(t *testing.T) {
	var lo LimitOffset
	assert.Equal(t, 0, lo.ActualOffset(5))
	assert.Equal(t, 5, lo.UpperBound(5))
}

func Test_Parse_SimpleSelect(t *testing.T) {
	q, err := Parse(`SELECT ?x WHERE { ?x <p> <o> }`)
	require.NoError(t, err)
	require.NotNil(t, q.Select)
	assert.Equal(t, []string{"?x"}, q.Select.Variables)
	require.Len(t, q.Where, 1)
	assert.Equal(t, TriplePattern{Subject: "?x", Predicate: "<p>", Object: "<o>"}, q.Where[0])
}

func Test_Parse_JoinWithFilterOrderLimit(t *testing.T) {
	q, err := Parse(`SELECT ?x ?y WHERE { ?x <p> ?y . ?y <q> <o> } FILTER(?x = ?y) ORDER BY ?y DESC LIMIT 10 OFFSET 5`)
	require.NoError(t, err)
	assert.Len(t, q.Where, 2)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, "?x", q.Filters[0].LHS)
	require.Len(t, q.OrderBy, 1)
	assert.True(t, q.OrderBy[0].Descending)
	require.NotNil(t, q.Limit)
	assert.Equal(t, int64(10), *q.Limit)
	require.NotNil(t, q.Offset)
	assert.Equal(t, int64(5), *q.Offset)
}

func Test_Parse_Construct(t *testing.T) {
	q, err := Parse(`CONSTRUCT { ?x <p> ?y } WHERE { ?x <p> ?y }`)
	require.NoError(t, err)
	require.NotNil(t, q.Construct)
	require.Len(t, q.Construct.Templates, 1)
	str, ok := q.Construct.Templates[0].Predicate.Evaluate(nil, PositionPredicate)
	require.True(t, ok)
	assert.Equal(t, "<p>", str)
}
