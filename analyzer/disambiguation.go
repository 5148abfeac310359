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

package analyzer

import (
	"sort"

	"github.com/askgraph/askgraph/logic"
)

// A DisambiguationNode is one node of the clarification dialogue built from
// competing readings of a question. Every input term ends up in exactly one
// Leaf.
type DisambiguationNode interface {
	aDisambiguationNode()
}

// A Leaf holds readings that need no further clarification.
type Leaf struct {
	Terms []logic.Term
}

// A Step asks the user which resource a piece of the question meant. Terms
// that resolved that piece sit under the matching Choice; terms in which
// the piece does not occur continue under Others.
type Step struct {
	// OriginalStr is the question text being disambiguated.
	OriginalStr string
	Choices     []Choice
	Others      DisambiguationNode
}

// A Choice is one candidate resource with the readings that use it.
type Choice struct {
	Value *logic.Value
	Node  DisambiguationNode
}

func (*Leaf) aDisambiguationNode() {}
func (*Step) aDisambiguationNode() {}

// FindProcess builds the disambiguation dialogue for the given readings. At
// each step it asks about the question piece with the most distinct
// candidate resources. Readings with no ambiguous pieces left land in a
// Leaf.
func FindProcess(terms []logic.Term) DisambiguationNode {
	return findProcess(terms, map[string]bool{})
}

func findProcess(terms []logic.Term, excluded map[string]bool) DisambiguationNode {
	origin := mostAmbiguousOrigin(terms, excluded)
	if origin == "" {
		return &Leaf{Terms: terms}
	}

	byValue := make(map[string]*valueGroup)
	var valueKeys []string
	var others []logic.Term
	for _, term := range terms {
		values := originValues(term, origin)
		if len(values) == 0 {
			others = append(others, term)
			continue
		}
		// A term may resolve origin to several values; the last one decides
		// its branch so every term follows exactly one choice.
		v := values[len(values)-1]
		key := logic.KeyString(v)
		group := byValue[key]
		if group == nil {
			group = &valueGroup{value: v}
			byValue[key] = group
			valueKeys = append(valueKeys, key)
		}
		group.terms = append(group.terms, term)
	}

	childExcluded := make(map[string]bool, len(excluded)+1)
	for k := range excluded {
		childExcluded[k] = true
	}
	childExcluded[origin] = true

	sort.Strings(valueKeys)
	choices := make([]Choice, 0, len(valueKeys))
	for _, key := range valueKeys {
		group := byValue[key]
		choices = append(choices, Choice{
			Value: group.value,
			Node:  findProcess(group.terms, childExcluded),
		})
	}
	step := &Step{OriginalStr: origin, Choices: choices}
	if len(others) > 0 {
		step.Others = findProcess(others, childExcluded)
	}
	return step
}

type valueGroup struct {
	value *logic.Value
	terms []logic.Term
}

// mostAmbiguousOrigin returns the question piece with the most distinct
// resolved values across the readings, or "" when every piece resolves to
// one value. Ties break on the lexically smallest piece.
func mostAmbiguousOrigin(terms []logic.Term, excluded map[string]bool) string {
	distinct := make(map[string]map[string]bool)
	for _, term := range terms {
		logic.Walk(term, func(t logic.Term) {
			v, ok := t.(*logic.Value)
			if !ok || v.OriginalStr == "" || excluded[v.OriginalStr] {
				return
			}
			values := distinct[v.OriginalStr]
			if values == nil {
				values = make(map[string]bool)
				distinct[v.OriginalStr] = values
			}
			values[logic.KeyString(v)] = true
		})
	}
	best, bestCount := "", 1
	for origin, values := range distinct {
		n := len(values)
		if n > bestCount || (n == bestCount && best != "" && origin < best) {
			best, bestCount = origin, n
		}
	}
	return best
}

// originValues returns the distinct values term resolved origin to, in walk
// order.
func originValues(term logic.Term, origin string) []*logic.Value {
	seen := make(map[string]bool)
	var out []*logic.Value
	logic.Walk(term, func(t logic.Term) {
		v, ok := t.(*logic.Value)
		if !ok || v.OriginalStr != origin {
			return
		}
		key := logic.KeyString(v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	})
	return out
}
