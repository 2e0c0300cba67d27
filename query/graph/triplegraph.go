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

// Package graph builds the triple-pattern connection graph the planner
// enumerates joins over, and implements text-clique collapsing and the
// context-variable split used to break the graph into independently
// plannable pieces.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akutan-project/qcore/sparql"
)

// Context predicates mark a triple as relating a context variable to a
// text record it co-occurs in.
const (
	InContextRelation  = "<in-context>"
	HasContextRelation = "<has-context>"
)

// Node is one vertex of the triple graph: either an ordinary triple
// pattern, or (after text nodes are recognised) a text node carrying a
// context variable and word part instead of a predicate/object pair.
type Node struct {
	Triple   sparql.TriplePattern
	Vars     []string // variables mentioned by Triple, insertion order
	IsText   bool
	CVar     string   // set iff IsText
	WordPart []string // set iff IsText: the word tokens, in insertion order
}

// Graph is an undirected multigraph: adjacency[i] holds the ids of nodes
// adjacent to node i. Node ids are dense 0..len(Nodes)-1.
type Graph struct {
	Nodes     []Node
	adjacency [][]int
}

// Build constructs the triple graph from a query's where-clause triples, in
// parse order, per §4.1 "Build": for each new node, add undirected edges to
// every earlier node sharing a variable. It does not yet detect text nodes;
// call DetectTextNodes for that.
func Build(triples []sparql.TriplePattern) (*Graph, error) {
	g := &Graph{}
	for _, t := range triples {
		vars, err := variablesOf(t)
		if err != nil {
			return nil, err
		}
		id := len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Triple: t, Vars: vars})
		g.adjacency = append(g.adjacency, nil)
		for other := 0; other < id; other++ {
			if shareVariable(g.Nodes[other].Vars, vars) {
				g.addEdge(id, other)
			}
		}
	}
	return g, nil
}

func variablesOf(t sparql.TriplePattern) ([]string, error) {
	var vars []string
	seen := map[string]bool{}
	add := func(s string) {
		if sparql.IsVariable(s) && !seen[s] {
			seen[s] = true
			vars = append(vars, s)
		}
	}
	add(t.Subject)
	add(t.Predicate)
	add(t.Object)
	if len(vars) == 0 {
		return nil, fmt.Errorf("graph: triple pattern %v has no variable", t)
	}
	if len(vars) > 2 {
		return nil, fmt.Errorf("graph: triple pattern %v has more than 2 variables", t)
	}
	return vars, nil
}

func shareVariable(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (g *Graph) addEdge(a, b int) {
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
}

// Adjacent returns the ids of nodes adjacent to node.
func (g *Graph) Adjacent(node int) []int { return g.adjacency[node] }

// IsTextPredicate reports whether predicate is one of the context
// predicates.
func IsTextPredicate(predicate string) bool {
	return predicate == InContextRelation || predicate == HasContextRelation
}

// DetectTextNodes marks nodes whose predicate is a context predicate as
// text nodes and fills in their CVar and WordPart per §4.1 "Text-clique
// detection". It is an error for both endpoints of a text triple to be
// non-variable, or for neither to be.
func (g *Graph) DetectTextNodes() error {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if !IsTextPredicate(n.Triple.Predicate) {
			continue
		}
		sVar := sparql.IsVariable(n.Triple.Subject)
		oVar := sparql.IsVariable(n.Triple.Object)
		switch {
		case sVar && !oVar:
			n.IsText = true
			n.CVar = n.Triple.Subject
			n.WordPart = []string{n.Triple.Object}
		case oVar && !sVar:
			n.IsText = true
			n.CVar = n.Triple.Object
			n.WordPart = []string{n.Triple.Subject}
		case sVar && oVar:
			return fmt.Errorf("graph: text triple %v has no fixed word part", n.Triple)
		default:
			return fmt.Errorf("graph: text triple %v has no context variable", n.Triple)
		}
	}
	return nil
}

// ContextVars returns the set of distinct context variables among the
// graph's text nodes, in first-appearance order.
func (g *Graph) ContextVars() []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range g.Nodes {
		if n.IsText && !seen[n.CVar] {
			seen[n.CVar] = true
			out = append(out, n.CVar)
		}
	}
	return out
}

// CollapseTextCliques groups text nodes by context variable and replaces
// each group with one synthetic text node, per §4.1 "collapseTextCliques".
// Non-text nodes and remaining edges are renumbered contiguously.
func (g *Graph) CollapseTextCliques() *Graph {
	cvarGroups := make(map[string][]int) // cvar -> old node ids, insertion order
	var cvarOrder []string
	removed := make(map[int]bool)
	for i, n := range g.Nodes {
		if !n.IsText {
			continue
		}
		if _, ok := cvarGroups[n.CVar]; !ok {
			cvarOrder = append(cvarOrder, n.CVar)
		}
		cvarGroups[n.CVar] = append(cvarGroups[n.CVar], i)
		removed[i] = true
	}
	if len(cvarGroups) == 0 {
		return g.copyInduced(allNodeIDs(len(g.Nodes)))
	}

	// Build the new node list: kept non-text nodes first (original order),
	// then one synthetic node per context variable (in first-appearance
	// order), matching the teacher's renumbering discipline of assigning
	// dense ids deterministically rather than preserving old ids.
	var newNodes []Node
	for i, n := range g.Nodes {
		if removed[i] {
			continue
		}
		newNodes = append(newNodes, n)
	}

	for _, cvar := range cvarOrder {
		members := cvarGroups[cvar]
		varSet := map[string]bool{}
		var wordPart []string
		for _, m := range members {
			mn := g.Nodes[m]
			varSet[mn.CVar] = true
			wordPart = append(wordPart, mn.WordPart...)
		}
		vars := make([]string, 0, len(varSet))
		for v := range varSet {
			vars = append(vars, v)
		}
		sort.Strings(vars)
		synth := Node{
			IsText:   true,
			CVar:     cvar,
			WordPart: wordPart,
			Vars:     vars,
			Triple:   sparql.TriplePattern{Subject: cvar, Predicate: InContextRelation, Object: strings.Join(wordPart, " ")},
		}
		newNodes = append(newNodes, synth)
	}

	out := &Graph{Nodes: newNodes, adjacency: make([][]int, len(newNodes))}
	for i := range newNodes {
		for j := i + 1; j < len(newNodes); j++ {
			if shareVariable(newNodes[i].Vars, newNodes[j].Vars) {
				out.addEdge(i, j)
			}
		}
	}
	return out
}

func allNodeIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// CopyInduced returns the induced subgraph on keepNodes, with node ids
// remapped to a dense 0..len(keep)-1 range, per §4.1 "Induced-subgraph
// copy". keepNodes need not be sorted; the returned graph's node order
// follows keepNodes' order.
func (g *Graph) CopyInduced(keepNodes []int) *Graph {
	return g.copyInduced(keepNodes)
}

func (g *Graph) copyInduced(keepNodes []int) *Graph {
	oldToNew := make(map[int]int, len(keepNodes))
	for newID, old := range keepNodes {
		oldToNew[old] = newID
	}
	out := &Graph{
		Nodes:     make([]Node, len(keepNodes)),
		adjacency: make([][]int, len(keepNodes)),
	}
	for newID, old := range keepNodes {
		out.Nodes[newID] = g.Nodes[old]
		for _, adj := range g.adjacency[old] {
			if newAdj, ok := oldToNew[adj]; ok {
				out.adjacency[newID] = append(out.adjacency[newID], newAdj)
			}
		}
	}
	return out
}

// Split is one connected piece produced by SplitAtContextVars, along with
// the filters that mention only its variables.
type Split struct {
	Graph   *Graph
	Filters []sparql.Filter
}

// SplitAtContextVars partitions a graph that has at least one context
// variable into its connected components, each paired with the filters
// whose two variables both occur in it. Deterministic: smaller components
// appear first in the result. A graph without context variables comes back
// whole, with all the filters.
//
// Components are not cut further at text nodes: nodes that are joined
// through a context variable stay in the same split. The DP enumerator
// (package planner) operates on whole collapsed graphs and does not call
// this function.
func SplitAtContextVars(g *Graph, filters []sparql.Filter) []Split {
	cvars := g.ContextVars()
	if len(cvars) == 0 {
		return []Split{{Graph: g, Filters: filters}}
	}
	visited := make([]bool, len(g.Nodes))
	var components [][]int
	for start := range g.Nodes {
		if visited[start] {
			continue
		}
		comp := bfsComponent(g, start, visited)
		components = append(components, comp)
	}
	sort.Slice(components, func(i, j int) bool { return len(components[i]) < len(components[j]) })

	var splits []Split
	for _, comp := range components {
		sub := g.copyInduced(comp)
		compVars := map[string]bool{}
		for _, n := range sub.Nodes {
			for _, v := range n.Vars {
				compVars[v] = true
			}
		}
		var subFilters []sparql.Filter
		for _, f := range filters {
			if compVars[f.LHS] && compVars[f.RHS] {
				subFilters = append(subFilters, f)
			}
		}
		splits = append(splits, Split{Graph: sub, Filters: subFilters})
	}
	return splits
}

func bfsComponent(g *Graph, start int, visited []bool) []int {
	queue := []int{start}
	visited[start] = true
	var comp []int
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		comp = append(comp, n)
		for _, adj := range g.adjacency[n] {
			if !visited[adj] {
				visited[adj] = true
				queue = append(queue, adj)
			}
		}
	}
	return comp
}

// IsPureTextQuery reports whether the graph (after collapsing) consists of
// exactly one text node and nothing else, triggering §4.2.7's fast path.
func (g *Graph) IsPureTextQuery() bool {
	return len(g.Nodes) == 1 && g.Nodes[0].IsText
}
