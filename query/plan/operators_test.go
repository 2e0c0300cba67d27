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

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VarSet_SetOps(t *testing.T) {
	a := NewVarSet("x", "y")
	b := NewVarSet("y", "z")
	assert.Equal(t, NewVarSet("x", "y", "z"), a.Union(b))
	assert.Equal(t, NewVarSet("y"), a.Intersect(b))
	assert.Equal(t, NewVarSet("x"), a.Sub(b))
	assert.True(t, a.Contains("x"))
	assert.False(t, a.Contains("z"))
}

func Test_ScanOp_Columns(t *testing.T) {
	s := &ScanOp{Vars: []string{"x"}, Size: 10}
	assert.Equal(t, ColumnMap{"x": 0}, s.Columns())
	assert.Equal(t, "x", s.SortedOn())
}

func Test_JoinOp_ColumnsExcludesDuplicateJoinVar(t *testing.T) {
	left := &ScanOp{Vars: []string{"x", "y"}, Size: 10}
	right := &ScanOp{Vars: []string{"y", "z"}, Size: 5}
	j := &JoinOp{Left: left, Right: right, JoinVar: "y"}
	cols := j.Columns()
	assert.Len(t, cols, 3)
	assert.Contains(t, cols, "x")
	assert.Contains(t, cols, "z")
	assert.Equal(t, "y", j.SortedOn())
}

func Test_DistinctOp_DropsUnknownColumns(t *testing.T) {
	child := &ScanOp{Vars: []string{"x"}, Size: 10}
	d := &DistinctOp{Child: child, Keep: NewVarSet("x", "nope")}
	cols := d.Columns()
	assert.Len(t, cols, 1)
	assert.Contains(t, cols, "x")
}

func Test_NewTextForEntitiesOp_PanicsOnMultiBoundVariable(t *testing.T) {
	assert.Panics(t, func() {
		NewTextForEntitiesOp("c", []string{"x", "y"}, "hello", 1)
	})
	op := NewTextForEntitiesOp("c", []string{"x"}, "hello", 1)
	require.NotNil(t, op)
	assert.Equal(t, ColumnMap{"c": 0, "SCORE(c)": 1, "x": 2}, op.Columns())
}
