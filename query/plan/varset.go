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
	"sort"
	"strings"

	"github.com/akutan-project/qcore/util/cmp"
)

// VarSet is a set of SPARQL variable names, kept exactly as given (the
// planner passes them with their leading '?'), held sorted so that two sets with the same contents are always == as values of
// their canonical Key, and so that set operations can run as sorted merges.
type VarSet []string

// NewVarSet returns a VarSet containing the distinct names given.
func NewVarSet(names ...string) VarSet {
	set := make(VarSet, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			set = append(set, n)
		}
	}
	sort.Strings(set)
	return set
}

// Contains reports whether name is a member, via binary search.
func (s VarSet) Contains(name string) bool {
	i := sort.SearchStrings(s, name)
	return i < len(s) && s[i] == name
}

// Union returns the sorted union of s and other.
func (s VarSet) Union(other VarSet) VarSet {
	return NewVarSet(append(append([]string{}, s...), other...)...)
}

// Intersect returns the sorted intersection of s and other.
func (s VarSet) Intersect(other VarSet) VarSet {
	var out VarSet
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			out = append(out, s[i])
			i++
			j++
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Sub returns s with every member of other removed.
func (s VarSet) Sub(other VarSet) VarSet {
	var out VarSet
	for _, v := range s {
		if !other.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same names.
func (s VarSet) Equal(other VarSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Key implements cmp.Keyer.
func (s VarSet) Key(b *strings.Builder) {
	for _, v := range s {
		cmp.WriteString(b, v)
	}
}

func (s VarSet) String() string {
	return "{" + strings.Join(s, ",") + "}"
}
