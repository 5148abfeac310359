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

package qa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askgraph/askgraph/kb"
	"github.com/askgraph/askgraph/kb/mockkb"
	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/nlp"
	"github.com/askgraph/askgraph/schema"
)

// treeParser returns canned parse trees, keyed by question text.
type treeParser map[string]*nlp.Token

func (p treeParser) Parse(ctx context.Context, text, languageCode string) ([]*nlp.Sentence, error) {
	root, ok := p[text]
	if !ok {
		return nil, nil
	}
	return []*nlp.Sentence{{Root: root}}, nil
}

var (
	countryClass = schema.NewClass("http://www.wikidata.org/entity/Q6256", schema.OWLThing)
	humanClass   = schema.NewClass("http://www.wikidata.org/entity/Q5", schema.OWLThing)

	france  = schema.NewIndividual("http://www.wikidata.org/entity/Q142", 50, countryClass)
	attal   = schema.NewIndividual("http://www.wikidata.org/entity/Q42952540", 20, humanClass)
	germany = schema.NewIndividual("http://www.wikidata.org/entity/Q183", 55, countryClass)

	primeMinister = schema.NewObjectProperty(
		"http://www.wikidata.org/prop/direct/P6", countryClass, humanClass)
)

// "Who is the prime minister of France?"
func pmOfFranceTree() *nlp.Token {
	who := &nlp.Token{Word: "Who", Lemma: "who", POS: nlp.POSPron, Dep: nlp.DepNsubj}
	is := &nlp.Token{Word: "is", Lemma: "be", POS: nlp.POSAux, Dep: nlp.DepCop}
	the := &nlp.Token{Word: "the", Lemma: "the", POS: nlp.POSDet, Dep: nlp.DepDet}
	prime := &nlp.Token{Word: "prime", Lemma: "prime", POS: nlp.POSAdj, Dep: nlp.DepAmod}
	of := &nlp.Token{Word: "of", Lemma: "of", POS: nlp.POSAdp, Dep: nlp.DepCase}
	franceTok := &nlp.Token{Word: "France", Lemma: "France", POS: nlp.POSPropn,
		Dep: nlp.DepNmod, Left: []*nlp.Token{of}}
	return &nlp.Token{Word: "minister", Lemma: "minister", POS: nlp.POSNoun,
		Dep: nlp.DepRoot, Left: []*nlp.Token{who, is, the, prime},
		Right: []*nlp.Token{franceTok}}
}

const pmQuestion = "Who is the prime minister of France?"

// newTestKB answers the France/prime-minister triple with attal and
// everything else with nothing.
func newTestKB() *mockkb.KB {
	m := &mockkb.KB{}
	m.AddIndividual("France", france)
	m.AddIndividual("France", germany) // a wrong but lower-scored homonym
	m.AddRelation("prime minister", primeMinister)
	x := logic.NewVariable("x")
	answered := logic.NewSelect(logic.Must(logic.NewTriple(
		logic.NewValue(france), logic.NewValue(primeMinister), x)), x)
	m.EvaluateFunc = func(ctx context.Context, term logic.Term) ([]schema.Resource, error) {
		if logic.Equal(answered, term) {
			return []schema.Resource{attal}, nil
		}
		return nil, nil
	}
	return m
}

func Test_Answer(t *testing.T) {
	parser := treeParser{pmQuestion: pmOfFranceTree()}
	service := New(parser, newTestKB(), Options{})

	interpretations, err := service.Answer(context.Background(), pmQuestion, "en")
	require.NoError(t, err)
	require.Len(t, interpretations, 1)
	require.Len(t, interpretations[0].Results, 1)
	assert.Equal(t, attal, interpretations[0].Results[0])
}

func Test_Answer_allInterpretations(t *testing.T) {
	parser := treeParser{pmQuestion: pmOfFranceTree()}
	service := New(parser, newTestKB(), Options{AllInterpretations: true})

	interpretations, err := service.Answer(context.Background(), pmQuestion, "en")
	require.NoError(t, err)
	require.NotEmpty(t, interpretations)
	// Only candidates scoring at least as well as the winner survive.
	floor := 0
	for _, in := range interpretations {
		if len(in.Results) > 0 {
			floor = in.Score()
		}
	}
	for _, in := range interpretations {
		assert.GreaterOrEqual(t, in.Score(), floor)
	}
}

func Test_Answer_noResults(t *testing.T) {
	parser := treeParser{pmQuestion: pmOfFranceTree()}
	m := newTestKB()
	m.EvaluateFunc = func(ctx context.Context, term logic.Term) ([]schema.Resource, error) {
		return nil, nil
	}
	service := New(parser, m, Options{})

	interpretations, err := service.Answer(context.Background(), pmQuestion, "en")
	require.NoError(t, err)
	assert.Empty(t, interpretations)
}

func Test_Answer_evaluationErrorsSkipped(t *testing.T) {
	parser := treeParser{pmQuestion: pmOfFranceTree()}
	m := newTestKB()
	inner := m.EvaluateFunc
	calls := 0
	m.EvaluateFunc = func(ctx context.Context, term logic.Term) ([]schema.Resource, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("store unreachable")
		}
		return inner(ctx, term)
	}
	service := New(parser, m, Options{Parallelism: 1})

	interpretations, err := service.Answer(context.Background(), pmQuestion, "en")
	require.NoError(t, err)
	for _, in := range interpretations {
		assert.NotNil(t, in)
	}
}

func Test_Answer_analysisTimeout(t *testing.T) {
	parser := treeParser{pmQuestion: pmOfFranceTree()}
	service := New(parser, newTestKB(), Options{Timeout: time.Nanosecond})

	// The deadline expires before analysis finishes; the question still
	// succeeds with no results.
	interpretations, err := service.Answer(context.Background(), pmQuestion, "en")
	require.NoError(t, err)
	assert.Empty(t, interpretations)
}

func Test_Answer_unparseable(t *testing.T) {
	service := New(treeParser{}, newTestKB(), Options{})
	interpretations, err := service.Answer(context.Background(), "gibberish", "en")
	require.NoError(t, err)
	assert.Empty(t, interpretations)
}

func Test_Pick_ordering(t *testing.T) {
	x := logic.NewVariable("x")
	mk := func(individual *schema.Individual, results ...schema.Resource) *kb.Interpretation {
		return &kb.Interpretation{
			Term:    logic.NewSelect(logic.NewEquality(x, logic.NewValue(individual)), x),
			Results: results,
		}
	}
	best := mk(germany)         // score 55, empty
	winner := mk(france, attal) // score 50, non-empty
	loser := mk(attal, attal)   // score 20, non-empty

	service := &Service{options: Options{}}
	picked := service.pick([]*kb.Interpretation{best, winner, loser})
	require.Len(t, picked, 1)
	assert.Equal(t, winner, picked[0])

	service.options.AllInterpretations = true
	picked = service.pick([]*kb.Interpretation{best, winner, loser})
	// The empty higher-scored candidate stays, the lower-scored one goes.
	assert.Equal(t, []*kb.Interpretation{best, winner}, picked)

	assert.Nil(t, service.pick([]*kb.Interpretation{best, nil}))
}

func Test_DetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Who is the president of France?", "en"},
		{"Qui est le président de la France ?", "fr"},
		{"Wer ist der Präsident von Frankreich?", "de"},
		{"¿Quién es el presidente de Francia?", "es"},
		{"Zorblatt frumious?", "en"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, DetectLanguage(test.text), test.text)
	}
}
