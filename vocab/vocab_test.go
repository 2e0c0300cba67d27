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

package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LocalVocab_AddAndWord(t *testing.T) {
	lv := NewLocalVocab()
	id := lv.Add("hello")
	word, ok := lv.Word(id.Index())
	require.True(t, ok)
	assert.Equal(t, "hello", word)

	_, ok = lv.Word(99)
	assert.False(t, ok)
}

func Test_Static_Scan_OneVariable(t *testing.T) {
	s := NewStatic([]Triple{
		{S: "alice", P: "p", O: "o"},
		{S: "bob", P: "p", O: "o"},
		{S: "carol", P: "other", O: "o"},
	})
	// POS scan fixing (p, o), returns subject in column 0.
	tbl, err := s.Scan(POS, "p", "o")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 1, tbl.NumCols())
}

func Test_Static_GetId_RoundTrips(t *testing.T) {
	s := NewStatic([]Triple{{S: "alice", P: "p", O: "o"}})
	id, ok := s.GetId("alice")
	require.True(t, ok)
	str, ok := s.IndexToString(id)
	require.True(t, ok)
	assert.Equal(t, "alice", str)

	_, ok = s.GetId("nonexistent")
	assert.False(t, ok)
}
