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

// Walk visits root and every descendant, calling visit on each.
func Walk(root Operator, visit func(Operator)) {
	if root == nil {
		return
	}
	visit(root)
	for _, c := range root.Children() {
		Walk(c, visit)
	}
}

// AttachTextLimit sets n as the text limit on every TextLimiter operator in
// the tree rooted at root, per §4.3 "Text limit".
func AttachTextLimit(root Operator, n int) {
	Walk(root, func(op Operator) {
		if tl, ok := op.(TextLimiter); ok {
			tl.SetTextLimit(n)
		}
	})
}
