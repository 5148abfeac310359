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

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
)

// A Term is a node of the logic algebra: either a Formula or a *Select.
type Term interface {
	fmt.Stringer
	// Score is a heuristic rank, the max over sub-term scores, with Value
	// carrying the knowledge-base popularity of its resource.
	Score() int
	// key writes the canonical form used for equality and dedup. Bound
	// variables are written as binder-relative indices, so the key is
	// stable under renaming.
	key(k *keyer)
	aTerm()
}

// A Formula is a boolean- or value-typed logical expression.
type Formula interface {
	Term
	// Type is the formula's valuation type.
	Type() Type
	// Substitute replaces free occurrences of v by repl. Binders that
	// rebind v's name shadow it: their subtree is returned unchanged.
	Substitute(v *Variable, repl Formula) Formula
	// variablesTypes returns the types inferred for free variables from
	// the constraints the formula imposes. A variable missing from the
	// map is unconstrained (Top).
	variablesTypes() varTypes
	aFormula()
}

// Ensures all formula variants implement Formula.
var _ = []Formula{
	(*Variable)(nil),
	(*Value)(nil),
	(*Add)(nil),
	(*Sub)(nil),
	(*Mul)(nil),
	(*Div)(nil),
	(*And)(nil),
	(*Or)(nil),
	(*Not)(nil),
	(*Equality)(nil),
	(*Greater)(nil),
	(*GreaterOrEqual)(nil),
	(*Lower)(nil),
	(*LowerOrEqual)(nil),
	(*Exists)(nil),
	(*Triple)(nil),
	(*ZeroOrMorePath)(nil),
}

var _ Term = (*Select)(nil)

// KeyString returns the canonical key of a term. Two terms are equal up to
// bound-variable renaming iff their keys are equal.
func KeyString(t Term) string {
	k := newKeyer()
	t.key(k)
	return k.b.String()
}

// Equal reports structural equality up to bound-variable renaming and up to
// argument order for the symmetric operators (And, Or, Equality, Add, Mul).
func Equal(a, b Term) bool {
	return KeyString(a) == KeyString(b)
}

// keyer builds canonical keys. It tracks binder scopes so that bound
// variables key by binder depth instead of by name.
type keyer struct {
	b     strings.Builder
	depth int
	bound map[string][]int // variable name -> stack of binder depths
}

func newKeyer() *keyer {
	return &keyer{bound: map[string][]int{}}
}

// enter records a binder for name and returns the matching scope exit.
func (k *keyer) enter(name string) func() {
	k.depth++
	k.bound[name] = append(k.bound[name], k.depth)
	return func() {
		stack := k.bound[name]
		k.bound[name] = stack[:len(stack)-1]
		k.depth--
	}
}

func (k *keyer) variable(name string) {
	if stack := k.bound[name]; len(stack) > 0 {
		k.b.WriteByte('#')
		k.b.WriteString(strconv.Itoa(stack[len(stack)-1]))
		return
	}
	k.b.WriteByte('?')
	k.b.WriteString(name)
}

// subKeys returns the canonical keys of the given terms under the current
// scope, used by operators whose equality ignores argument order.
func (k *keyer) subKeys(terms []Formula) []string {
	keys := make([]string, len(terms))
	for i, t := range terms {
		sub := &keyer{depth: k.depth, bound: k.bound}
		t.key(sub)
		keys[i] = sub.b.String()
	}
	return keys
}

func (k *keyer) sortedList(op string, terms []Formula) {
	keys := k.subKeys(terms)
	sort.Strings(keys)
	k.b.WriteByte('(')
	k.b.WriteString(op)
	for _, key := range keys {
		k.b.WriteByte(' ')
		k.b.WriteString(key)
	}
	k.b.WriteByte(')')
}

func (k *keyer) orderedList(op string, terms ...Formula) {
	k.b.WriteByte('(')
	k.b.WriteString(op)
	for _, t := range terms {
		k.b.WriteByte(' ')
		t.key(k)
	}
	k.b.WriteByte(')')
}

var variableCounter uint64

// FreshVariable returns a variable with a process-unique generated name.
// Generated names never collide with each other; callers that mix fresh and
// hand-written variables must avoid the "µ" prefix.
func FreshVariable() *Variable {
	n := atomic.AddUint64(&variableCounter, 1)
	return &Variable{Name: "µ" + strconv.FormatUint(n, 10)}
}

// varTypes maps free variable names to inferred types. A missing key reads
// as Top.
type varTypes map[string]Type

func (vt varTypes) get(name string) Type {
	if t, ok := vt[name]; ok {
		return t
	}
	return Top()
}

func (vt varTypes) clone() varTypes {
	out := make(varTypes, len(vt))
	for k, v := range vt {
		out[k] = v
	}
	return out
}

// and merges constraint maps for conjunctions: types intersect per variable.
func (vt varTypes) and(o varTypes) varTypes {
	out := vt.clone()
	for name, t := range o {
		out[name] = out.get(name).Intersect(t)
	}
	return out
}

// or merges constraint maps for disjunctions: types union per variable. A
// variable missing from the receiver reads as Top, so a constraint present
// only in o widens to Top.
func (vt varTypes) or(o varTypes) varTypes {
	out := vt.clone()
	for name, t := range o {
		out[name] = out.get(name).Union(t)
	}
	return out
}

func (vt varTypes) restrict(name string, t Type) {
	vt[name] = vt.get(name).Intersect(t)
}
