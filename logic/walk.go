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

package logic

// Walk calls visit for t and every sub-term of t, parents before children,
// in deterministic order. It is used for value collection and query
// rewriting.
func Walk(t Term, visit func(Term)) {
	visit(t)
	switch t := t.(type) {
	case *Variable, *Value:
	case *Add:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Sub:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Mul:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Div:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *And:
		for _, arg := range t.args {
			Walk(arg, visit)
		}
	case *Or:
		for _, arg := range t.args {
			Walk(arg, visit)
		}
	case *Not:
		Walk(t.Arg, visit)
	case *Equality:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Greater:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *GreaterOrEqual:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Lower:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *LowerOrEqual:
		Walk(t.Left, visit)
		Walk(t.Right, visit)
	case *Exists:
		Walk(t.Arg, visit)
		Walk(t.Body, visit)
	case *Triple:
		Walk(t.Subject, visit)
		Walk(t.Predicate, visit)
		Walk(t.Object, visit)
	case *ZeroOrMorePath:
		Walk(t.Path, visit)
	case *Select:
		for _, arg := range t.args {
			Walk(arg, visit)
		}
		Walk(t.body, visit)
	}
}
