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

// Package kb defines the knowledge-base abstraction the analyzer resolves
// labels against and the question answerer evaluates terms with.
package kb

import (
	"context"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

// A KnowledgeBase resolves natural-language labels to entities and
// relations, and evaluates logic terms against the underlying store.
// Implementations must be safe for concurrent use.
type KnowledgeBase interface {
	// IndividualsFromLabel returns the individuals whose label in the
	// given language matches, best matches first. A non-nil filter
	// restricts the results to instances of that class. The returned
	// values carry the label as their original string.
	IndividualsFromLabel(ctx context.Context, label, language string, filter *schema.Class) ([]*logic.Value, error)

	// RelationsFromLabel returns the binary relations whose label
	// matches, each as a Select { subject object | <subject, p, object> }.
	RelationsFromLabel(ctx context.Context, label, language string) ([]*logic.Select, error)

	// RelationsFromLabels returns the union of RelationsFromLabel over
	// the given labels, deduplicated, preserving label order.
	RelationsFromLabels(ctx context.Context, labels []string, language string) ([]*logic.Select, error)

	// TypeRelations returns the relations that connect an individual to
	// its classes, for resolving phrases like "X that is a Y".
	TypeRelations() []*logic.Select

	// EvaluateTerm evaluates a closed boolean formula or a unary Select
	// against the store and returns the result resources.
	EvaluateTerm(ctx context.Context, term logic.Term) ([]schema.Resource, error)
}

// An Interpretation is one reading of a question: the logic term it was
// mapped to and, once evaluated, the results it produced.
type Interpretation struct {
	Term    logic.Term
	Results []schema.Resource
}

// Score returns the term's score, used to order competing interpretations.
func (in *Interpretation) Score() int {
	return in.Term.Score()
}

// BuildInterpretation evaluates term against the knowledge base and wraps
// the outcome.
func BuildInterpretation(ctx context.Context, k KnowledgeBase, term logic.Term) (*Interpretation, error) {
	results, err := k.EvaluateTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	return &Interpretation{Term: term, Results: results}, nil
}

// DedupeRelations drops alpha-equivalent duplicates, keeping first
// occurrences in order.
func DedupeRelations(relations []*logic.Select) []*logic.Select {
	seen := make(map[string]bool, len(relations))
	out := relations[:0]
	for _, rel := range relations {
		key := logic.KeyString(rel)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rel)
	}
	return out
}
