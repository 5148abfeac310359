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
	"strings"

	"github.com/askgraph/askgraph/schema"
)

// Well-known types shared by the constructors.
var (
	booleanType  = FromDatatype(schema.XSDBoolean)
	numericType  = FromDatatype(schema.Numeric)
	calendarType = FromDatatype(schema.Calendar)
	durationType = FromDatatype(schema.XSDDuration)
	literalType  = FromDatatype(schema.RDFSLiteral)
	propertyType = FromClass(schema.RDFProperty)
	entityType   = FromClass(schema.OWLThing)
)

// EntityType returns the type of any entity.
func EntityType() Type { return entityType }

// LiteralType returns the type of any literal.
func LiteralType() Type { return literalType }

// Must returns f, panicking on a non-nil construction error. For static
// tables and tests where the operands are known well-formed.
func Must(f Formula, err error) Formula {
	if err != nil {
		panic(err)
	}
	return f
}

// A Variable is an unbound reference. Equality of whole terms treats bound
// variables up to renaming; free variables compare by name.
type Variable struct {
	Name string
}

// NewVariable returns a variable with the given name.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

func (v *Variable) String() string { return "?" + v.Name }

// Score implements Term.Score.
func (v *Variable) Score() int { return 0 }

// Type implements Formula.Type. A bare variable is unconstrained.
func (v *Variable) Type() Type { return Top() }

// Substitute implements Formula.Substitute.
func (v *Variable) Substitute(x *Variable, repl Formula) Formula {
	if v.Name == x.Name {
		return repl
	}
	return v
}

func (v *Variable) variablesTypes() varTypes { return nil }
func (v *Variable) key(k *keyer)             { k.variable(v.Name) }
func (v *Variable) aTerm()                   {}
func (v *Variable) aFormula()                {}

// A Value wraps a concrete resource. OriginalStr optionally carries the
// source text span the value was resolved from, used for disambiguation; it
// is provenance only and excluded from equality.
type Value struct {
	Resource    schema.Resource
	OriginalStr string
}

// NewValue wraps a resource.
func NewValue(r schema.Resource) *Value {
	return &Value{Resource: r}
}

// NewValueFrom wraps a resource and records the source text it was resolved
// from.
func NewValueFrom(r schema.Resource, originalStr string) *Value {
	return &Value{Resource: r, OriginalStr: originalStr}
}

// True and False are the boolean constants, the identity and absorbing
// elements of And and Or.
var (
	True  Formula = &Value{Resource: &schema.BooleanLiteral{Value: true}}
	False Formula = &Value{Resource: &schema.BooleanLiteral{Value: false}}
)

func isTrue(f Formula) bool {
	v, ok := f.(*Value)
	if !ok {
		return false
	}
	b, ok := v.Resource.(*schema.BooleanLiteral)
	return ok && b.Value
}

func isFalse(f Formula) bool {
	v, ok := f.(*Value)
	if !ok {
		return false
	}
	b, ok := v.Resource.(*schema.BooleanLiteral)
	return ok && !b.Value
}

func (v *Value) String() string { return v.Resource.String() }

// Score implements Term.Score: the resource's knowledge-base popularity for
// entities, 1 for literals.
func (v *Value) Score() int {
	if e, ok := v.Resource.(schema.Entity); ok {
		return e.Score()
	}
	return 1
}

// Type implements Formula.Type.
func (v *Value) Type() Type {
	switch r := v.Resource.(type) {
	case schema.TypeNode:
		return FromNode(r)
	case schema.Entity:
		t := Bottom()
		for _, c := range r.Types() {
			t = t.Union(FromClass(c))
		}
		return t
	case schema.Literal:
		return FromDatatype(r.Datatype())
	}
	return Bottom()
}

// Substitute implements Formula.Substitute.
func (v *Value) Substitute(x *Variable, repl Formula) Formula { return v }

func (v *Value) variablesTypes() varTypes { return nil }
func (v *Value) key(k *keyer)             { k.b.WriteString(v.Resource.String()) }
func (v *Value) aTerm()                   {}
func (v *Value) aFormula()                {}

// Binary arithmetic. Both operands must intersect the numeric type;
// construction fails otherwise. Add and Mul compare without regard to
// operand order.

// An Add is a numeric sum.
type Add struct{ Left, Right Formula }

// A Sub is a numeric difference.
type Sub struct{ Left, Right Formula }

// A Mul is a numeric product.
type Mul struct{ Left, Right Formula }

// A Div is a numeric quotient.
type Div struct{ Left, Right Formula }

func checkNumeric(op string, left, right Formula) error {
	if !left.Type().Intersects(numericType) {
		return fmt.Errorf("logic: %s: left operand %v is not numeric", op, left)
	}
	if !right.Type().Intersects(numericType) {
		return fmt.Errorf("logic: %s: right operand %v is not numeric", op, right)
	}
	return nil
}

// NewAdd returns the sum of two numeric formulas.
func NewAdd(left, right Formula) (Formula, error) {
	if err := checkNumeric("add", left, right); err != nil {
		return nil, err
	}
	return &Add{left, right}, nil
}

// NewSub returns the difference of two numeric formulas.
func NewSub(left, right Formula) (Formula, error) {
	if err := checkNumeric("sub", left, right); err != nil {
		return nil, err
	}
	return &Sub{left, right}, nil
}

// NewMul returns the product of two numeric formulas.
func NewMul(left, right Formula) (Formula, error) {
	if err := checkNumeric("mul", left, right); err != nil {
		return nil, err
	}
	return &Mul{left, right}, nil
}

// NewDiv returns the quotient of two numeric formulas.
func NewDiv(left, right Formula) (Formula, error) {
	if err := checkNumeric("div", left, right); err != nil {
		return nil, err
	}
	return &Div{left, right}, nil
}

func arithmeticType(left, right Formula) Type {
	return left.Type().Intersect(right.Type()).Intersect(numericType)
}

func arithmeticVarTypes(left, right Formula) varTypes {
	out := left.variablesTypes().and(right.variablesTypes()).clone()
	if v, ok := left.(*Variable); ok {
		out.restrict(v.Name, numericType)
	}
	if v, ok := right.(*Variable); ok {
		out.restrict(v.Name, numericType)
	}
	return out
}

// substFallback rebuilds a formula after substitution. Substitution can make
// a previously well-formed operator ill-typed (say, a literal bound into a
// triple subject); such a formula has no satisfying valuations, so it
// collapses to False rather than failing.
func substFallback(f Formula, err error) Formula {
	if err != nil {
		return False
	}
	return f
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (f *Add) String() string { return "(" + f.Left.String() + " + " + f.Right.String() + ")" }
func (f *Sub) String() string { return "(" + f.Left.String() + " - " + f.Right.String() + ")" }
func (f *Mul) String() string { return "(" + f.Left.String() + " * " + f.Right.String() + ")" }
func (f *Div) String() string { return "(" + f.Left.String() + " / " + f.Right.String() + ")" }

func (f *Add) Score() int { return max(f.Left.Score(), f.Right.Score()) }
func (f *Sub) Score() int { return max(f.Left.Score(), f.Right.Score()) }
func (f *Mul) Score() int { return max(f.Left.Score(), f.Right.Score()) }
func (f *Div) Score() int { return max(f.Left.Score(), f.Right.Score()) }

func (f *Add) Type() Type { return arithmeticType(f.Left, f.Right) }
func (f *Sub) Type() Type { return arithmeticType(f.Left, f.Right) }
func (f *Mul) Type() Type { return arithmeticType(f.Left, f.Right) }
func (f *Div) Type() Type { return arithmeticType(f.Left, f.Right) }

func (f *Add) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewAdd(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *Sub) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewSub(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *Mul) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewMul(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *Div) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewDiv(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}

func (f *Add) variablesTypes() varTypes { return arithmeticVarTypes(f.Left, f.Right) }
func (f *Sub) variablesTypes() varTypes { return arithmeticVarTypes(f.Left, f.Right) }
func (f *Mul) variablesTypes() varTypes { return arithmeticVarTypes(f.Left, f.Right) }
func (f *Div) variablesTypes() varTypes { return arithmeticVarTypes(f.Left, f.Right) }

func (f *Add) key(k *keyer) { k.sortedList("+", []Formula{f.Left, f.Right}) }
func (f *Sub) key(k *keyer) { k.orderedList("-", f.Left, f.Right) }
func (f *Mul) key(k *keyer) { k.sortedList("*", []Formula{f.Left, f.Right}) }
func (f *Div) key(k *keyer) { k.orderedList("/", f.Left, f.Right) }

func (f *Add) aTerm()    {}
func (f *Add) aFormula() {}
func (f *Sub) aTerm()    {}
func (f *Sub) aFormula() {}
func (f *Mul) aTerm()    {}
func (f *Mul) aFormula() {}
func (f *Div) aTerm()    {}
func (f *Div) aFormula() {}

// An And is an n-ary conjunction in normalized form: at least two arguments,
// none of them And, Or, or a boolean constant, deduplicated and stored in
// canonical key order.
type And struct {
	args []Formula
}

// NewAnd returns the conjunction of the given formulas, normalized: nested
// conjunctions are flattened, True arguments are dropped, a False argument
// short-circuits, and disjunction arguments are distributed into disjunctive
// normal form. An empty conjunction is True; a singleton unwraps to its
// argument.
func NewAnd(args ...Formula) Formula {
	clauses := [][]Formula{nil}
	for _, arg := range args {
		switch arg := arg.(type) {
		case *And:
			for i := range clauses {
				clauses[i] = append(clauses[i], arg.args...)
			}
		case *Or:
			split := make([][]Formula, 0, len(clauses)*len(arg.args))
			for _, clause := range clauses {
				for _, alt := range arg.args {
					split = append(split, append(append([]Formula{}, clause...), alt))
				}
			}
			clauses = split
		default:
			if isTrue(arg) {
				continue
			}
			if isFalse(arg) {
				return False
			}
			for i := range clauses {
				clauses[i] = append(clauses[i], arg)
			}
		}
	}
	if len(clauses) == 1 {
		return newConjunction(clauses[0])
	}
	alts := make([]Formula, len(clauses))
	for i, clause := range clauses {
		alts[i] = newConjunction(clause)
	}
	return NewOr(alts...)
}

// newConjunction builds a flat conjunction from arguments known to contain
// no Or. Nested And arguments (introduced by DNF splitting) are flattened.
func newConjunction(args []Formula) Formula {
	flat := make([]Formula, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case *And:
			flat = append(flat, arg.args...)
		default:
			if isTrue(arg) {
				continue
			}
			if isFalse(arg) {
				return False
			}
			flat = append(flat, arg)
		}
	}
	flat = dedupFormulas(flat)
	switch len(flat) {
	case 0:
		return True
	case 1:
		return flat[0]
	}
	return &And{args: flat}
}

// dedupFormulas sorts by canonical key and drops duplicates.
func dedupFormulas(args []Formula) []Formula {
	type keyed struct {
		key string
		f   Formula
	}
	keys := make([]keyed, len(args))
	for i, f := range args {
		keys[i] = keyed{KeyString(f), f}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].key < keys[j].key })
	out := args[:0]
	for i, k := range keys {
		if i == 0 || keys[i-1].key != k.key {
			out = append(out, k.f)
		}
	}
	return out
}

// Args returns the arguments in canonical order.
func (f *And) Args() []Formula {
	return append([]Formula{}, f.args...)
}

func (f *And) String() string {
	parts := make([]string, len(f.args))
	for i, arg := range f.args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, " & ") + ")"
}

// Score implements Term.Score.
func (f *And) Score() int {
	score := 0
	for _, arg := range f.args {
		score = max(score, arg.Score())
	}
	return score
}

// Type implements Formula.Type.
func (f *And) Type() Type { return booleanType }

// Substitute implements Formula.Substitute.
func (f *And) Substitute(v *Variable, repl Formula) Formula {
	args := make([]Formula, len(f.args))
	for i, arg := range f.args {
		args[i] = arg.Substitute(v, repl)
	}
	return NewAnd(args...)
}

func (f *And) variablesTypes() varTypes {
	var out varTypes
	for _, arg := range f.args {
		out = out.and(arg.variablesTypes())
	}
	return out
}

func (f *And) key(k *keyer) { k.sortedList("and", f.args) }
func (f *And) aTerm()       {}
func (f *And) aFormula()    {}

// An Or is an n-ary disjunction in normalized form: at least two arguments,
// none of them Or or a boolean constant, deduplicated and stored in
// canonical key order.
type Or struct {
	args []Formula
}

// NewOr returns the disjunction of the given formulas, normalized: nested
// disjunctions are flattened, False arguments are dropped, and a True
// argument short-circuits. An empty disjunction is False; a singleton
// unwraps to its argument.
func NewOr(args ...Formula) Formula {
	flat := make([]Formula, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case *Or:
			flat = append(flat, arg.args...)
		default:
			if isFalse(arg) {
				continue
			}
			if isTrue(arg) {
				return True
			}
			flat = append(flat, arg)
		}
	}
	flat = dedupFormulas(flat)
	switch len(flat) {
	case 0:
		return False
	case 1:
		return flat[0]
	}
	return &Or{args: flat}
}

// Args returns the arguments in canonical order.
func (f *Or) Args() []Formula {
	return append([]Formula{}, f.args...)
}

func (f *Or) String() string {
	parts := make([]string, len(f.args))
	for i, arg := range f.args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// Score implements Term.Score.
func (f *Or) Score() int {
	score := 0
	for _, arg := range f.args {
		score = max(score, arg.Score())
	}
	return score
}

// Type implements Formula.Type.
func (f *Or) Type() Type { return booleanType }

// Substitute implements Formula.Substitute.
func (f *Or) Substitute(v *Variable, repl Formula) Formula {
	args := make([]Formula, len(f.args))
	for i, arg := range f.args {
		args[i] = arg.Substitute(v, repl)
	}
	return NewOr(args...)
}

func (f *Or) variablesTypes() varTypes {
	var out varTypes
	for i, arg := range f.args {
		if i == 0 {
			out = arg.variablesTypes().clone()
			continue
		}
		out = out.or(arg.variablesTypes())
	}
	return out
}

func (f *Or) key(k *keyer) { k.sortedList("or", f.args) }
func (f *Or) aTerm()       {}
func (f *Or) aFormula()    {}

// A Not is a negation in normalized form: the argument is never a boolean
// constant, a Not, an And, or an Or.
type Not struct {
	Arg Formula
}

// NewNot returns the negation of f, normalized: constants fold, double
// negation cancels, and negation is pushed through And and Or by De
// Morgan's laws.
func NewNot(f Formula) Formula {
	switch f := f.(type) {
	case *Not:
		return f.Arg
	case *And:
		args := make([]Formula, len(f.args))
		for i, arg := range f.args {
			args[i] = NewNot(arg)
		}
		return NewOr(args...)
	case *Or:
		args := make([]Formula, len(f.args))
		for i, arg := range f.args {
			args[i] = NewNot(arg)
		}
		return NewAnd(args...)
	}
	if isTrue(f) {
		return False
	}
	if isFalse(f) {
		return True
	}
	return &Not{Arg: f}
}

func (f *Not) String() string { return "!" + f.Arg.String() }

// Score implements Term.Score.
func (f *Not) Score() int { return f.Arg.Score() }

// Type implements Formula.Type.
func (f *Not) Type() Type { return booleanType }

// Substitute implements Formula.Substitute.
func (f *Not) Substitute(v *Variable, repl Formula) Formula {
	return NewNot(f.Arg.Substitute(v, repl))
}

// A negated constraint does not narrow a variable's type.
func (f *Not) variablesTypes() varTypes { return nil }

func (f *Not) key(k *keyer) { k.orderedList("not", f.Arg) }
func (f *Not) aTerm()       {}
func (f *Not) aFormula()    {}

// An Equality asserts that two formulas denote the same value. Equality of
// the node itself ignores operand order.
type Equality struct {
	Left, Right Formula
}

// NewEquality returns the equality of two formulas, constant-folded: equal
// terms yield True, two distinct concrete values yield False.
func NewEquality(left, right Formula) Formula {
	if Equal(left, right) {
		return True
	}
	if _, ok := left.(*Value); ok {
		if _, ok := right.(*Value); ok {
			return False
		}
	}
	return &Equality{Left: left, Right: right}
}

func (f *Equality) String() string {
	return "(" + f.Left.String() + " = " + f.Right.String() + ")"
}

// Score implements Term.Score.
func (f *Equality) Score() int { return max(f.Left.Score(), f.Right.Score()) }

// Type implements Formula.Type.
func (f *Equality) Type() Type { return booleanType }

// Substitute implements Formula.Substitute.
func (f *Equality) Substitute(v *Variable, repl Formula) Formula {
	return NewEquality(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl))
}

func (f *Equality) variablesTypes() varTypes {
	out := f.Left.variablesTypes().and(f.Right.variablesTypes()).clone()
	if v, ok := f.Left.(*Variable); ok {
		out.restrict(v.Name, f.Right.Type())
	}
	if v, ok := f.Right.(*Variable); ok {
		out.restrict(v.Name, f.Left.Type())
	}
	return out
}

func (f *Equality) key(k *keyer) { k.sortedList("=", []Formula{f.Left, f.Right}) }
func (f *Equality) aTerm()       {}
func (f *Equality) aFormula()    {}

// Order comparisons. Operands must share one of the comparable categories:
// numeric, calendar, or duration.

// A Greater asserts left > right.
type Greater struct{ Left, Right Formula }

// A GreaterOrEqual asserts left >= right.
type GreaterOrEqual struct{ Left, Right Formula }

// A Lower asserts left < right.
type Lower struct{ Left, Right Formula }

// A LowerOrEqual asserts left <= right.
type LowerOrEqual struct{ Left, Right Formula }

// orderableType returns the union of the comparable categories a formula's
// type intersects.
func orderableType(f Formula) Type {
	t := f.Type()
	out := Bottom()
	for _, category := range []Type{numericType, calendarType, durationType} {
		if t.Intersects(category) {
			out = out.Union(category)
		}
	}
	return out
}

func checkOrderable(op string, left, right Formula) error {
	if orderableType(left).IsBottom() {
		return fmt.Errorf("logic: %s: left operand %v is not orderable", op, left)
	}
	if orderableType(right).IsBottom() {
		return fmt.Errorf("logic: %s: right operand %v is not orderable", op, right)
	}
	return nil
}

// NewGreater returns the comparison left > right.
func NewGreater(left, right Formula) (Formula, error) {
	if err := checkOrderable("greater", left, right); err != nil {
		return nil, err
	}
	return &Greater{left, right}, nil
}

// NewGreaterOrEqual returns the comparison left >= right.
func NewGreaterOrEqual(left, right Formula) (Formula, error) {
	if err := checkOrderable("greater-or-equal", left, right); err != nil {
		return nil, err
	}
	return &GreaterOrEqual{left, right}, nil
}

// NewLower returns the comparison left < right.
func NewLower(left, right Formula) (Formula, error) {
	if err := checkOrderable("lower", left, right); err != nil {
		return nil, err
	}
	return &Lower{left, right}, nil
}

// NewLowerOrEqual returns the comparison left <= right.
func NewLowerOrEqual(left, right Formula) (Formula, error) {
	if err := checkOrderable("lower-or-equal", left, right); err != nil {
		return nil, err
	}
	return &LowerOrEqual{left, right}, nil
}

func orderVarTypes(left, right Formula) varTypes {
	out := left.variablesTypes().and(right.variablesTypes()).clone()
	shared := orderableType(left).Intersect(orderableType(right))
	if v, ok := left.(*Variable); ok {
		out.restrict(v.Name, shared)
	}
	if v, ok := right.(*Variable); ok {
		out.restrict(v.Name, shared)
	}
	return out
}

func (f *Greater) String() string { return "(" + f.Left.String() + " > " + f.Right.String() + ")" }
func (f *GreaterOrEqual) String() string {
	return "(" + f.Left.String() + " >= " + f.Right.String() + ")"
}
func (f *Lower) String() string { return "(" + f.Left.String() + " < " + f.Right.String() + ")" }
func (f *LowerOrEqual) String() string {
	return "(" + f.Left.String() + " <= " + f.Right.String() + ")"
}

func (f *Greater) Score() int        { return max(f.Left.Score(), f.Right.Score()) }
func (f *GreaterOrEqual) Score() int { return max(f.Left.Score(), f.Right.Score()) }
func (f *Lower) Score() int          { return max(f.Left.Score(), f.Right.Score()) }
func (f *LowerOrEqual) Score() int   { return max(f.Left.Score(), f.Right.Score()) }

func (f *Greater) Type() Type        { return booleanType }
func (f *GreaterOrEqual) Type() Type { return booleanType }
func (f *Lower) Type() Type          { return booleanType }
func (f *LowerOrEqual) Type() Type   { return booleanType }

func (f *Greater) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewGreater(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *GreaterOrEqual) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewGreaterOrEqual(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *Lower) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewLower(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}
func (f *LowerOrEqual) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewLowerOrEqual(f.Left.Substitute(v, repl), f.Right.Substitute(v, repl)))
}

func (f *Greater) variablesTypes() varTypes        { return orderVarTypes(f.Left, f.Right) }
func (f *GreaterOrEqual) variablesTypes() varTypes { return orderVarTypes(f.Left, f.Right) }
func (f *Lower) variablesTypes() varTypes          { return orderVarTypes(f.Left, f.Right) }
func (f *LowerOrEqual) variablesTypes() varTypes   { return orderVarTypes(f.Left, f.Right) }

func (f *Greater) key(k *keyer)        { k.orderedList(">", f.Left, f.Right) }
func (f *GreaterOrEqual) key(k *keyer) { k.orderedList(">=", f.Left, f.Right) }
func (f *Lower) key(k *keyer)          { k.orderedList("<", f.Left, f.Right) }
func (f *LowerOrEqual) key(k *keyer)   { k.orderedList("<=", f.Left, f.Right) }

func (f *Greater) aTerm()           {}
func (f *Greater) aFormula()        {}
func (f *GreaterOrEqual) aTerm()    {}
func (f *GreaterOrEqual) aFormula() {}
func (f *Lower) aTerm()             {}
func (f *Lower) aFormula()          {}
func (f *LowerOrEqual) aTerm()      {}
func (f *LowerOrEqual) aFormula()   {}

// An Exists is an existential quantification over one variable.
type Exists struct {
	Arg  *Variable
	Body Formula
}

// NewExists returns the existential quantification of body over v,
// normalized: constants pass through, the quantifier distributes over
// disjunctions, an equation binding v to a concrete value is eliminated by
// substitution, and a bound variable with bottom inferred type collapses the
// formula to False.
func NewExists(v *Variable, body Formula) Formula {
	if isTrue(body) || isFalse(body) {
		return body
	}
	switch b := body.(type) {
	case *Or:
		args := make([]Formula, len(b.args))
		for i, arg := range b.args {
			args[i] = NewExists(v, arg)
		}
		return NewOr(args...)
	case *Equality:
		if repl, ok := boundValue(b, v); ok {
			return body.Substitute(v, repl)
		}
	case *And:
		for _, arg := range b.args {
			eq, ok := arg.(*Equality)
			if !ok {
				continue
			}
			if repl, ok := boundValue(eq, v); ok {
				return body.Substitute(v, repl)
			}
		}
	}
	if body.variablesTypes().get(v.Name).IsBottom() {
		return False
	}
	return &Exists{Arg: v, Body: body}
}

// boundValue returns the concrete value an equality binds v to, in either
// orientation.
func boundValue(eq *Equality, v *Variable) (Formula, bool) {
	if lv, ok := eq.Left.(*Variable); ok && lv.Name == v.Name {
		if _, ok := eq.Right.(*Value); ok {
			return eq.Right, true
		}
	}
	if rv, ok := eq.Right.(*Variable); ok && rv.Name == v.Name {
		if _, ok := eq.Left.(*Value); ok {
			return eq.Left, true
		}
	}
	return nil, false
}

func (f *Exists) String() string {
	return "∃" + f.Arg.String() + "." + f.Body.String()
}

// Score implements Term.Score.
func (f *Exists) Score() int { return f.Body.Score() }

// Type implements Formula.Type.
func (f *Exists) Type() Type { return booleanType }

// Substitute implements Formula.Substitute. The binder shadows its own
// variable name.
func (f *Exists) Substitute(v *Variable, repl Formula) Formula {
	if v.Name == f.Arg.Name {
		return f
	}
	return NewExists(f.Arg, f.Body.Substitute(v, repl))
}

func (f *Exists) variablesTypes() varTypes {
	out := f.Body.variablesTypes().clone()
	delete(out, f.Arg.Name)
	return out
}

func (f *Exists) key(k *keyer) {
	exit := k.enter(f.Arg.Name)
	k.orderedList("exists", f.Body)
	exit()
}

func (f *Exists) aTerm()    {}
func (f *Exists) aFormula() {}

// A Triple is an RDF statement pattern.
type Triple struct {
	Subject, Predicate, Object Formula
}

// NewTriple returns a triple pattern. The subject must not be literal-typed
// and the predicate's type must intersect the property class.
func NewTriple(subject, predicate, object Formula) (Formula, error) {
	if subject.Type().IncludedIn(literalType) {
		return nil, fmt.Errorf("logic: triple subject %v must not be a literal", subject)
	}
	if !predicate.Type().Intersects(propertyType) {
		return nil, fmt.Errorf("logic: triple predicate %v is not a property", predicate)
	}
	return &Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func (f *Triple) String() string {
	return "<" + f.Subject.String() + ", " + f.Predicate.String() + ", " + f.Object.String() + ">"
}

// Score implements Term.Score. The predicate is a structural element; only
// the subject and object carry resolution confidence.
func (f *Triple) Score() int { return max(f.Subject.Score(), f.Object.Score()) }

// Type implements Formula.Type.
func (f *Triple) Type() Type { return booleanType }

// Substitute implements Formula.Substitute.
func (f *Triple) Substitute(v *Variable, repl Formula) Formula {
	return substFallback(NewTriple(
		f.Subject.Substitute(v, repl),
		f.Predicate.Substitute(v, repl),
		f.Object.Substitute(v, repl)))
}

func (f *Triple) variablesTypes() varTypes {
	out := f.Subject.variablesTypes().
		and(f.Predicate.variablesTypes()).
		and(f.Object.variablesTypes()).clone()
	if v, ok := f.Predicate.(*Variable); ok {
		out.restrict(v.Name, propertyType)
	}
	if prop, ok := predicateProperty(f.Predicate); ok {
		if v, ok := f.Subject.(*Variable); ok {
			out.restrict(v.Name, FromClass(prop.Domain()))
		}
		if v, ok := f.Object.(*Variable); ok {
			out.restrict(v.Name, FromNode(prop.Range()))
		}
	}
	return out
}

// predicateProperty returns the declared property behind a predicate
// formula, unwrapping transitive-closure paths.
func predicateProperty(predicate Formula) (*schema.Property, bool) {
	switch p := predicate.(type) {
	case *Value:
		prop, ok := p.Resource.(*schema.Property)
		return prop, ok
	case *ZeroOrMorePath:
		return predicateProperty(p.Path)
	}
	return nil, false
}

func (f *Triple) key(k *keyer) { k.orderedList("triple", f.Subject, f.Predicate, f.Object) }
func (f *Triple) aTerm()       {}
func (f *Triple) aFormula()    {}

// A ZeroOrMorePath wraps a predicate to request transitive-closure
// traversal, used for subclass-of closures in classification relations.
type ZeroOrMorePath struct {
	Path Formula
}

// NewZeroOrMorePath wraps a predicate formula.
func NewZeroOrMorePath(path Formula) *ZeroOrMorePath {
	return &ZeroOrMorePath{Path: path}
}

func (f *ZeroOrMorePath) String() string { return f.Path.String() + "*" }

// Score implements Term.Score.
func (f *ZeroOrMorePath) Score() int { return f.Path.Score() }

// Type implements Formula.Type.
func (f *ZeroOrMorePath) Type() Type { return f.Path.Type() }

// Substitute implements Formula.Substitute.
func (f *ZeroOrMorePath) Substitute(v *Variable, repl Formula) Formula {
	return NewZeroOrMorePath(f.Path.Substitute(v, repl))
}

func (f *ZeroOrMorePath) variablesTypes() varTypes { return f.Path.variablesTypes() }
func (f *ZeroOrMorePath) key(k *keyer)             { k.orderedList("path*", f.Path) }
func (f *ZeroOrMorePath) aTerm()                   {}
func (f *ZeroOrMorePath) aFormula()                {}
