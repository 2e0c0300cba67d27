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

package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Id_Accessors(t *testing.T) {
	assert.Equal(t, int64(42), NewInt(42).Int())
	assert.Equal(t, 3.5, NewDouble(3.5).Double())
	assert.True(t, NewBool(true).Bool())
	assert.False(t, NewBool(false).Bool())
	assert.Equal(t, int64(1000), NewDate(1000).Date())
	assert.Equal(t, uint64(7), NewVocabIndex(7).Index())
	assert.Equal(t, uint64(7), NewLocalVocabIndex(7).Index())
	assert.True(t, UndefinedID.IsUndefined())
	assert.False(t, NewInt(0).IsUndefined())
}

func Test_Id_WrongAccessorPanics(t *testing.T) {
	assert.Panics(t, func() { NewInt(1).Double() })
	assert.Panics(t, func() { NewBool(true).Int() })
	assert.Panics(t, func() { NewInt(1).Index() })
}

func Test_IdTable_AppendAndAt(t *testing.T) {
	tbl := NewIdTable(2)
	tbl.AppendRow(NewInt(1), NewInt(2))
	tbl.AppendRow(NewInt(3), NewInt(4))
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, int64(1), tbl.At(0, 0).Int())
	assert.Equal(t, int64(4), tbl.At(1, 1).Int())
	assert.Panics(t, func() { tbl.AppendRow(NewInt(1)) })
}

func Test_Id_AsBytes_RoundTripsTag(t *testing.T) {
	b := NewInt(258).AsBytes()
	assert.Equal(t, byte(Int), b[0])
}
