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
	"testing"

	"github.com/askgraph/askgraph/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Select_Bind(t *testing.T) {
	s := NewVariable("s")
	o := NewVariable("o")
	rel := NewSelect(triple(s, headOfGov, o), s, o)

	// Partial binding yields a smaller Select.
	partial, ok := rel.Bind(franceValue).(*Select)
	require.True(t, ok)
	assert.Equal(t, 1, partial.Arity())

	// Full binding yields a Formula with no remaining bound variables.
	f, ok := partial.Bind(parisValue).(Formula)
	require.True(t, ok)
	assert.True(t, Equal(f, triple(franceValue, headOfGov, parisValue)))

	// Binding everything at once is the same.
	assert.True(t, Equal(f, rel.BindFormula(franceValue, parisValue)))
}

func Test_Select_SwapArgumentsInvolution(t *testing.T) {
	s := NewVariable("s")
	o := NewVariable("o")
	rel := NewSelect(triple(s, headOfGov, o), s, o)

	swapped := rel.SwapArguments()
	assert.False(t, Equal(rel, swapped))
	assert.True(t, Equal(rel, swapped.SwapArguments()))

	// Swapping swaps the binding positions.
	f := swapped.BindFormula(parisValue, franceValue)
	assert.True(t, Equal(f, triple(franceValue, headOfGov, parisValue)))
}

func Test_Select_Types(t *testing.T) {
	s := NewVariable("s")
	o := NewVariable("o")
	rel := NewSelect(triple(s, birthDate, o), s, o)

	assert.True(t, rel.ArgType(0).Equal(FromClass(personClass)))
	assert.True(t, rel.ArgType(1).Equal(FromDatatype(schema.XSDDate)))
	assert.True(t, rel.Type().Equal(NewTupleType(
		FromClass(personClass), FromDatatype(schema.XSDDate))))
}

func Test_Select_AlphaEquivalence(t *testing.T) {
	s := NewVariable("s")
	o := NewVariable("o")
	a := NewVariable("a")
	b := NewVariable("b")

	r1 := NewSelect(triple(s, headOfGov, o), s, o)
	r2 := NewSelect(triple(a, headOfGov, b), a, b)
	assert.True(t, Equal(r1, r2))

	// Argument order is positional, not nominal.
	r3 := NewSelect(triple(o, headOfGov, s), s, o)
	assert.False(t, Equal(r1, r3))
}

func Test_Select_ScoreAndString(t *testing.T) {
	x := NewVariable("x")
	sel := NewSelect(triple(franceValue, headOfGov, x), x)
	assert.Equal(t, 50, sel.Score())
	assert.Equal(t, "{?x | <wd:Q142, wdt:P6, ?x>}", sel.String())
}
