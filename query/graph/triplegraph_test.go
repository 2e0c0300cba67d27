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

package graph

import (
	"testing"

	"github.com/akutan-project/qcore/sparql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Build_SingleTriple(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{{Subject: "?x", Predicate: "<p>", Object: "<o>"}})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, []string{"?x"}, g.Nodes[0].Vars)
}

func Test_Build_RejectsZeroVariables(t *testing.T) {
	_, err := Build([]sparql.TriplePattern{{Subject: "<a>", Predicate: "<p>", Object: "<o>"}})
	assert.Error(t, err)
}

func Test_Build_RejectsThreeVariables(t *testing.T) {
	_, err := Build([]sparql.TriplePattern{{Subject: "?a", Predicate: "?p", Object: "?o"}})
	assert.Error(t, err)
}

func Test_Build_ConnectsSharedVariable(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?x", Predicate: "<p>", Object: "?y"},
		{Subject: "?y", Predicate: "<q>", Object: "<o>"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, g.Adjacent(0))
	assert.Equal(t, []int{0}, g.Adjacent(1))
}

func Test_Build_RejectsCycleIsCallerConcern(t *testing.T) {
	// The graph itself allows a 3-cycle; the planner is responsible for
	// rejecting cyclic joins (§8 scenario 3). Here we just check the
	// adjacency is what a cycle looks like.
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?x", Predicate: "<p>", Object: "?y"},
		{Subject: "?y", Predicate: "<q>", Object: "?z"},
		{Subject: "?z", Predicate: "<r>", Object: "?x"},
	})
	require.NoError(t, err)
	assert.Len(t, g.Adjacent(0), 2)
	assert.Len(t, g.Adjacent(1), 2)
	assert.Len(t, g.Adjacent(2), 2)
}

func Test_DetectTextNodes(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?c", Predicate: InContextRelation, Object: "\"hello\""},
	})
	require.NoError(t, err)
	require.NoError(t, g.DetectTextNodes())
	assert.True(t, g.Nodes[0].IsText)
	assert.Equal(t, "?c", g.Nodes[0].CVar)
	assert.Equal(t, []string{"\"hello\""}, g.Nodes[0].WordPart)
}

func Test_DetectTextNodes_RejectsBothVariable(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?c", Predicate: InContextRelation, Object: "?word"},
	})
	require.NoError(t, err)
	assert.Error(t, g.DetectTextNodes())
}

func Test_CollapseTextCliques_MergesSameContextVar(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?c", Predicate: InContextRelation, Object: "\"hello\""},
		{Subject: "?c", Predicate: InContextRelation, Object: "\"world\""},
		{Subject: "?c", Predicate: "<mentions>", Object: "?x"},
	})
	require.NoError(t, err)
	require.NoError(t, g.DetectTextNodes())
	collapsed := g.CollapseTextCliques()
	require.Len(t, collapsed.Nodes, 2) // the non-text node + one synthetic text node
	var textNode *Node
	for i := range collapsed.Nodes {
		if collapsed.Nodes[i].IsText {
			textNode = &collapsed.Nodes[i]
		}
	}
	require.NotNil(t, textNode)
	assert.Equal(t, []string{"\"hello\"", "\"world\""}, textNode.WordPart)
}

func Test_CopyInduced_RemapsDensely(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?x", Predicate: "<p>", Object: "?y"},
		{Subject: "?y", Predicate: "<q>", Object: "?z"},
		{Subject: "?a", Predicate: "<r>", Object: "?b"},
	})
	require.NoError(t, err)
	sub := g.CopyInduced([]int{1, 2})
	require.Len(t, sub.Nodes, 2)
	assert.Empty(t, sub.Adjacent(0)) // node 1 and node 2 don't share a variable
}

func Test_IsPureTextQuery(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?c", Predicate: InContextRelation, Object: "\"hello\""},
	})
	require.NoError(t, err)
	require.NoError(t, g.DetectTextNodes())
	collapsed := g.CollapseTextCliques()
	assert.True(t, collapsed.IsPureTextQuery())
}

func Test_SplitAtContextVars_NoContextVars_ReturnsWholeGraph(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?x", Predicate: "<p>", Object: "?y"},
	})
	require.NoError(t, err)
	filters := []sparql.Filter{{LHS: "?x", RHS: "?y", Type: sparql.FilterEqual}}
	splits := SplitAtContextVars(g, filters)
	require.Len(t, splits, 1)
	assert.Same(t, g, splits[0].Graph)
	assert.Equal(t, filters, splits[0].Filters)
}

func Test_SplitAtContextVars_SplitsDisconnectedComponents(t *testing.T) {
	g, err := Build([]sparql.TriplePattern{
		{Subject: "?x", Predicate: "<p>", Object: "?y"},
		{Subject: "?y", Predicate: "<q>", Object: "<o>"},
		{Subject: "?c", Predicate: InContextRelation, Object: "\"hello\""},
	})
	require.NoError(t, err)
	require.NoError(t, g.DetectTextNodes())

	filters := []sparql.Filter{{LHS: "?x", RHS: "?y", Type: sparql.FilterEqual}}
	splits := SplitAtContextVars(g, filters)
	require.Len(t, splits, 2)

	// Smaller component (the lone text node) sorts first.
	assert.Len(t, splits[0].Graph.Nodes, 1)
	assert.True(t, splits[0].Graph.Nodes[0].IsText)
	assert.Empty(t, splits[0].Filters)

	assert.Len(t, splits[1].Graph.Nodes, 2)
	assert.Equal(t, filters, splits[1].Filters)
}
