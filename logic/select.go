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

import "strings"

// A Select is an open term { args | body }: a named projection of the body
// formula over one or more positional argument variables. It is the unit of
// query construction: a unary Select denotes a set of values, a binary
// Select a relation. Equality of Selects is alpha-equivalence.
type Select struct {
	args []*Variable
	body Formula
}

// NewSelect returns the projection of body over the given argument
// variables. At least one argument is required.
func NewSelect(body Formula, args ...*Variable) *Select {
	if len(args) == 0 {
		panic("logic: Select needs at least one argument")
	}
	return &Select{args: append([]*Variable{}, args...), body: body}
}

// Args returns the argument variables in positional order.
func (s *Select) Args() []*Variable {
	return append([]*Variable{}, s.args...)
}

// Arity returns the number of unbound positional arguments.
func (s *Select) Arity() int {
	return len(s.args)
}

// Body returns the body formula.
func (s *Select) Body() Formula {
	return s.body
}

// Bind substitutes the given terms for the leading positional arguments, in
// order. Binding every argument yields the resulting Formula; a partial
// binding yields a smaller Select. Bind panics when given more terms than
// there are arguments left.
func (s *Select) Bind(terms ...Formula) Term {
	if len(terms) > len(s.args) {
		panic("logic: Bind: too many arguments")
	}
	body := s.body
	for i, t := range terms {
		body = body.Substitute(s.args[i], t)
	}
	rest := s.args[len(terms):]
	if len(rest) == 0 {
		return body
	}
	return &Select{args: append([]*Variable{}, rest...), body: body}
}

// BindFormula binds every argument and returns the resulting Formula.
func (s *Select) BindFormula(terms ...Formula) Formula {
	if len(terms) != len(s.args) {
		panic("logic: BindFormula: argument count mismatch")
	}
	return s.Bind(terms...).(Formula)
}

// SwapArguments returns the Select with its first two arguments exchanged.
// It is its own inverse. Panics on unary Selects.
func (s *Select) SwapArguments() *Select {
	if len(s.args) < 2 {
		panic("logic: SwapArguments on a Select with fewer than two arguments")
	}
	args := append([]*Variable{}, s.args...)
	args[0], args[1] = args[1], args[0]
	return &Select{args: args, body: s.body}
}

// Substitute replaces free occurrences of v in the body. The arguments
// shadow their own names.
func (s *Select) Substitute(v *Variable, repl Formula) *Select {
	for _, arg := range s.args {
		if arg.Name == v.Name {
			return s
		}
	}
	return &Select{args: s.args, body: s.body.Substitute(v, repl)}
}

// Type returns the tuple of types inferred for each argument slot from the
// body's constraints.
func (s *Select) Type() TupleType {
	vt := s.body.variablesTypes()
	types := make([]Type, len(s.args))
	for i, arg := range s.args {
		types[i] = vt.get(arg.Name)
	}
	return TupleType(types)
}

// ArgType returns the inferred type of the i-th argument slot.
func (s *Select) ArgType(i int) Type {
	if i < 0 || i >= len(s.args) {
		return Bottom()
	}
	return s.body.variablesTypes().get(s.args[i].Name)
}

// Score implements Term.Score.
func (s *Select) Score() int {
	return s.body.Score()
}

func (s *Select) String() string {
	names := make([]string, len(s.args))
	for i, arg := range s.args {
		names[i] = arg.String()
	}
	return "{" + strings.Join(names, " ") + " | " + s.body.String() + "}"
}

func (s *Select) key(k *keyer) {
	exits := make([]func(), len(s.args))
	for i, arg := range s.args {
		exits[i] = k.enter(arg.Name)
	}
	k.b.WriteString("(select/")
	k.b.WriteString(strings.Repeat("*", len(s.args)))
	k.b.WriteByte(' ')
	s.body.key(k)
	k.b.WriteByte(')')
	for i := len(exits) - 1; i >= 0; i-- {
		exits[i]()
	}
}

func (s *Select) aTerm() {}
