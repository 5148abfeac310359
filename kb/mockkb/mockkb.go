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

// Package mockkb provides an in-memory KnowledgeBase for tests.
package mockkb

import (
	"context"
	"sort"

	"github.com/askgraph/askgraph/kb"
	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

// KB is an in-memory knowledge base. Labels are looked up with the same
// fuzzy rules the real backends use. The zero value is empty and usable.
type KB struct {
	// Individuals maps a label to the individuals carrying it.
	Individuals map[string][]*schema.Individual
	// Relations maps a label to the properties carrying it.
	Relations map[string][]*schema.Property
	// TypeProperties are the instance-of style properties.
	TypeProperties []*schema.Property
	// EvaluateFunc, when set, backs EvaluateTerm.
	EvaluateFunc func(ctx context.Context, term logic.Term) ([]schema.Resource, error)
}

var _ kb.KnowledgeBase = (*KB)(nil)

// AddIndividual registers an individual under the given label.
func (m *KB) AddIndividual(label string, individual *schema.Individual) {
	if m.Individuals == nil {
		m.Individuals = make(map[string][]*schema.Individual)
	}
	m.Individuals[label] = append(m.Individuals[label], individual)
}

// AddRelation registers a property under the given label.
func (m *KB) AddRelation(label string, property *schema.Property) {
	if m.Relations == nil {
		m.Relations = make(map[string][]*schema.Property)
	}
	m.Relations[label] = append(m.Relations[label], property)
}

// IndividualsFromLabel implements kb.KnowledgeBase.
func (m *KB) IndividualsFromLabel(ctx context.Context, label, language string, filter *schema.Class) ([]*logic.Value, error) {
	var out []*logic.Value
	for _, matched := range kb.MatchLabels(label, sortedKeys(m.Individuals)) {
		for _, individual := range m.Individuals[matched] {
			if filter != nil && !individual.IsInstanceOf(filter) {
				continue
			}
			out = append(out, logic.NewValueFrom(individual, label))
		}
	}
	return out, nil
}

// RelationsFromLabel implements kb.KnowledgeBase.
func (m *KB) RelationsFromLabel(ctx context.Context, label, language string) ([]*logic.Select, error) {
	var out []*logic.Select
	for _, matched := range kb.MatchLabels(label, sortedKeys(m.Relations)) {
		for _, property := range m.Relations[matched] {
			out = append(out, kb.PropertyRelation(property, label))
		}
	}
	return kb.DedupeRelations(out), nil
}

// RelationsFromLabels implements kb.KnowledgeBase.
func (m *KB) RelationsFromLabels(ctx context.Context, labels []string, language string) ([]*logic.Select, error) {
	var out []*logic.Select
	for _, label := range labels {
		relations, err := m.RelationsFromLabel(ctx, label, language)
		if err != nil {
			return nil, err
		}
		out = append(out, relations...)
	}
	return kb.DedupeRelations(out), nil
}

// TypeRelations implements kb.KnowledgeBase.
func (m *KB) TypeRelations() []*logic.Select {
	out := make([]*logic.Select, 0, len(m.TypeProperties))
	for _, property := range m.TypeProperties {
		out = append(out, kb.PropertyRelation(property, ""))
	}
	return out
}

// EvaluateTerm implements kb.KnowledgeBase.
func (m *KB) EvaluateTerm(ctx context.Context, term logic.Term) ([]schema.Resource, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, term)
	}
	return nil, nil
}

func sortedKeys[V any](m map[string][]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
