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

package lang

import (
	"strings"

	"github.com/askgraph/askgraph/logic"
)

// A CaseTransform rewrites a binary relation to reflect the case word it is
// introduced by. The input relation has its argument slot first and its
// result slot second, so that rel.Bind(argument, output) reads as
// "output is rel of argument". A transform may return nil to reject the
// relation.
type CaseTransform func(rel *logic.Select) *logic.Select

// A CaseWord is a preposition (UD "case" dependent) together with the
// relation transform it demands.
type CaseWord struct {
	Word      string
	Transform CaseTransform
}

// identityTransform keeps the relation as-is: "capital of France" binds
// France into the argument slot directly.
func identityTransform(rel *logic.Select) *logic.Select {
	return rel
}

// swapTransform inverts the relation: "a book by Dickens" asks for things
// whose author is Dickens, not for authors of Dickens.
func swapTransform(rel *logic.Select) *logic.Select {
	return rel.SwapArguments()
}

// comparisonTransform turns a relation into an ordering over its results:
// the transformed relation holds results whose rel value compares against
// the argument. cmp builds the comparison with the result's value on the
// left and the argument on the right.
func comparisonTransform(cmp func(value, bound logic.Formula) (logic.Formula, error)) CaseTransform {
	return func(rel *logic.Select) *logic.Select {
		arg := logic.FreshVariable()
		out := logic.FreshVariable()
		value := logic.FreshVariable()
		compared, err := cmp(value, arg)
		if err != nil {
			return nil
		}
		body := logic.NewExists(value,
			logic.NewAnd(rel.BindFormula(out, value), compared))
		return logic.NewSelect(body, arg, out)
	}
}

var caseWords = map[string][]*CaseWord{
	"en": {
		{Word: "of", Transform: identityTransform},
		{Word: "in", Transform: identityTransform},
		{Word: "from", Transform: identityTransform},
		{Word: "by", Transform: swapTransform},
		{Word: "before", Transform: comparisonTransform(logic.NewLower)},
		{Word: "after", Transform: comparisonTransform(logic.NewGreater)},
	},
	"fr": {
		{Word: "de", Transform: identityTransform},
		{Word: "du", Transform: identityTransform},
		{Word: "des", Transform: identityTransform},
		{Word: "d'", Transform: identityTransform},
		{Word: "en", Transform: identityTransform},
		{Word: "par", Transform: swapTransform},
		{Word: "avant", Transform: comparisonTransform(logic.NewLower)},
		{Word: "après", Transform: comparisonTransform(logic.NewGreater)},
	},
	"de": {
		{Word: "von", Transform: identityTransform},
		{Word: "in", Transform: identityTransform},
		{Word: "aus", Transform: identityTransform},
		{Word: "durch", Transform: swapTransform},
		{Word: "vor", Transform: comparisonTransform(logic.NewLower)},
		{Word: "nach", Transform: comparisonTransform(logic.NewGreater)},
	},
	"es": {
		{Word: "de", Transform: identityTransform},
		{Word: "del", Transform: identityTransform},
		{Word: "en", Transform: identityTransform},
		{Word: "por", Transform: swapTransform},
		{Word: "antes", Transform: comparisonTransform(logic.NewLower)},
		{Word: "después", Transform: comparisonTransform(logic.NewGreater)},
	},
}

// CaseWordFromString returns the case word for the given surface form and
// language, or nil when there is none.
func CaseWordFromString(word, languageCode string) *CaseWord {
	needle := strings.ToLower(strings.TrimSpace(word))
	for _, cw := range caseWords[languageCode] {
		if cw.Word == needle {
			return cw
		}
	}
	return nil
}

// ImplicitCaseWord is the transform used for bare noun modifiers that carry
// no case word at all, as in "France prime minister".
func ImplicitCaseWord() *CaseWord {
	return &CaseWord{Word: "", Transform: identityTransform}
}
