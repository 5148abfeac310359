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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

	france = schema.NewIndividual("http://www.wikidata.org/entity/Q142", 50, countryClass)

	primeMinister = schema.NewObjectProperty(
		"http://www.wikidata.org/prop/direct/P6", countryClass, humanClass)
	birthDate = schema.NewDatatypeProperty(
		"http://www.wikidata.org/prop/direct/P569", humanClass, schema.XSDDate)
)

func newTestKB() *mockkb.KB {
	m := &mockkb.KB{}
	m.AddIndividual("France", france)
	m.AddRelation("prime minister", primeMinister)
	m.AddRelation("birth date", birthDate)
	return m
}

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

func Test_Analyze_PrimeMinisterOfFrance(t *testing.T) {
	parser := treeParser{"Who is the prime minister of France?": pmOfFranceTree()}
	a := New(parser, newTestKB())

	results, err := a.Analyze(context.Background(),
		"Who is the prime minister of France?", "en")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	x := logic.NewVariable("x")
	want := logic.NewSelect(logic.Must(logic.NewTriple(
		logic.NewValue(france), logic.NewValue(primeMinister), x)), x)

	found := false
	for _, sel := range results {
		if logic.Equal(want, sel) {
			found = true
		}
		// "Who" restricts every reading to entities.
		assert.True(t, sel.ArgType(0).Intersects(logic.EntityType()),
			sel.String())
	}
	assert.True(t, found, "expected reading not produced: %v", results)
}

func Test_Analyze_UnknownLabel(t *testing.T) {
	xyzzy := &nlp.Token{Word: "xyzzy", Lemma: "xyzzy", POS: nlp.POSNoun, Dep: nlp.DepRoot}
	parser := treeParser{"xyzzy": xyzzy}
	a := New(parser, newTestKB())

	results, err := a.Analyze(context.Background(), "xyzzy", "en")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func Test_ConsumeQuestionWord(t *testing.T) {
	root := pmOfFranceTree()
	qw, pruned := consumeQuestionWord(root, "en")
	require.NotNil(t, qw)
	assert.Equal(t, "who", qw.Words)
	require.NotNil(t, pruned)
	// "Who" is gone, the rest keeps its shape.
	for _, tok := range pruned.Subtree() {
		assert.NotEqual(t, "Who", tok.Word)
	}
	assert.Equal(t, "minister", pruned.Word)

	noQW := &nlp.Token{Word: "kings", Lemma: "king", POS: nlp.POSNoun, Dep: nlp.DepRoot}
	qw, pruned = consumeQuestionWord(noQW, "en")
	assert.Nil(t, qw)
	assert.Equal(t, noQW, pruned)
}

func Test_MeaningfulRoots(t *testing.T) {
	me := &nlp.Token{Word: "me", Lemma: "me", POS: nlp.POSPron, Dep: nlp.DepIobj}
	kings := &nlp.Token{Word: "kings", Lemma: "king", POS: nlp.POSNoun, Dep: nlp.DepObj}
	give := &nlp.Token{Word: "Give", Lemma: "give", POS: nlp.POSVerb,
		Dep: nlp.DepRoot, Right: []*nlp.Token{me, kings}}

	roots := meaningfulRoots(give, "en")
	require.Len(t, roots, 1)
	assert.Equal(t, kings, roots[0])

	roots = meaningfulRoots(kings, "en")
	assert.Equal(t, []*nlp.Token{kings}, roots)
}

func Test_SpanTokens(t *testing.T) {
	_, root := consumeQuestionWord(pmOfFranceTree(), "en")
	require.NotNil(t, root)
	prime := root.Left[2]
	franceTok := root.Right[0]

	// [prime ... minister]: "of France" stays outside the span.
	assert.Equal(t, "prime minister", labelText(spanTokens(root, prime, nil), false))
	// [minister ... France]: interior case words survive edge trimming.
	assert.Equal(t, "minister of France", labelText(spanTokens(root, nil, franceTok), false))
	// No span ends: the bare head.
	assert.Equal(t, "minister", labelText(spanTokens(root, nil, nil), false))
	// Argument subtrees trim their case word at the edge.
	assert.Equal(t, "France", labelText(trimEdges(franceTok.Subtree()), false))

	// Compound dependents always join the span.
	united := &nlp.Token{Word: "United", POS: nlp.POSPropn, Dep: nlp.DepCompound}
	states := &nlp.Token{Word: "States", POS: nlp.POSPropn, Dep: nlp.DepRoot,
		Left: []*nlp.Token{united}}
	assert.Equal(t, "United States", labelText(spanTokens(states, nil, nil), false))
}

// "What is the date of birth of Alan Turing?" parsed with "of Alan Turing"
// hanging off "birth", the way parsers nest chained nmods.
func birthOfTuringTree() *nlp.Token {
	what := &nlp.Token{Word: "What", Lemma: "what", POS: nlp.POSPron, Dep: nlp.DepNsubj}
	is := &nlp.Token{Word: "is", Lemma: "be", POS: nlp.POSAux, Dep: nlp.DepCop}
	the := &nlp.Token{Word: "the", Lemma: "the", POS: nlp.POSDet, Dep: nlp.DepDet}
	ofBirth := &nlp.Token{Word: "of", Lemma: "of", POS: nlp.POSAdp, Dep: nlp.DepCase}
	ofTuring := &nlp.Token{Word: "of", Lemma: "of", POS: nlp.POSAdp, Dep: nlp.DepCase}
	alan := &nlp.Token{Word: "Alan", Lemma: "Alan", POS: nlp.POSPropn, Dep: nlp.DepCompound}
	turing := &nlp.Token{Word: "Turing", Lemma: "Turing", POS: nlp.POSPropn,
		Dep: nlp.DepNmod, Left: []*nlp.Token{ofTuring, alan}}
	birth := &nlp.Token{Word: "birth", Lemma: "birth", POS: nlp.POSNoun,
		Dep: nlp.DepNmod, Left: []*nlp.Token{ofBirth}, Right: []*nlp.Token{turing}}
	return &nlp.Token{Word: "date", Lemma: "date", POS: nlp.POSNoun,
		Dep: nlp.DepRoot, Left: []*nlp.Token{what, is, the},
		Right: []*nlp.Token{birth}}
}

// A multi-word predicate span: the relation label "date of birth" covers the
// head plus its first nmod, and only the remaining child is an argument.
func Test_Analyze_DateOfBirth(t *testing.T) {
	turing := schema.NewIndividual("http://www.wikidata.org/entity/Q7251", 40, humanClass)
	m := newTestKB()
	m.AddIndividual("Alan Turing", turing)
	m.AddRelation("date of birth", birthDate)

	question := "What is the date of birth of Alan Turing?"
	a := New(treeParser{question: birthOfTuringTree()}, m)

	results, err := a.Analyze(context.Background(), question, "en")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	x := logic.NewVariable("x")
	want := logic.NewSelect(logic.Must(logic.NewTriple(
		logic.NewValue(turing), logic.NewValue(birthDate), x)), x)
	found := false
	for _, sel := range results {
		if logic.Equal(want, sel) {
			found = true
		}
	}
	assert.True(t, found, "expected reading not produced: %v", results)
}

func Test_ParseLiterals(t *testing.T) {
	literals := parseLiterals("1789-07-14", "en")
	require.Len(t, literals, 1)
	assert.Equal(t, &schema.DateLiteral{Year: 1789, Month: 7, Day: 14}, literals[0])

	literals = parseLiterals("14 July 1789", "en")
	require.Len(t, literals, 1)
	assert.Equal(t, &schema.DateLiteral{Year: 1789, Month: 7, Day: 14}, literals[0])

	literals = parseLiterals("14 juillet 1789", "fr")
	require.Len(t, literals, 1)
	assert.Equal(t, &schema.DateLiteral{Year: 1789, Month: 7, Day: 14}, literals[0])

	// A four digit number reads both as an integer and as a year.
	literals = parseLiterals("1789", "en")
	require.Len(t, literals, 2)
	assert.Equal(t, &schema.IntegerLiteral{Value: 1789}, literals[0])
	assert.Equal(t, &schema.GYearLiteral{Year: 1789}, literals[1])

	assert.Nil(t, parseLiterals("France", "en"))
	assert.Nil(t, parseLiterals("14 July", "en"))
}

func Test_Reshapings(t *testing.T) {
	// "president of the United States of America" parsed with
	// "of America" hanging off "States".
	ofUS := &nlp.Token{Word: "of", POS: nlp.POSAdp, Dep: nlp.DepCase}
	ofAmerica := &nlp.Token{Word: "of", POS: nlp.POSAdp, Dep: nlp.DepCase}
	america := &nlp.Token{Word: "America", POS: nlp.POSPropn, Dep: nlp.DepNmod,
		Left: []*nlp.Token{ofAmerica}}
	states := &nlp.Token{Word: "States", POS: nlp.POSPropn, Dep: nlp.DepNmod,
		Left:  []*nlp.Token{ofUS, {Word: "United", POS: nlp.POSPropn, Dep: nlp.DepCompound}},
		Right: []*nlp.Token{america}}
	president := &nlp.Token{Word: "president", POS: nlp.POSNoun, Dep: nlp.DepRoot,
		Right: []*nlp.Token{states}}

	variants := reshapings(president)
	require.Len(t, variants, 2)
	assert.Equal(t, president, variants[0])
	// The variant hangs America directly off president.
	promoted := variants[1]
	require.Len(t, promoted.Right, 2)
	assert.Equal(t, "States", promoted.Right[0].Word)
	assert.Empty(t, promoted.Right[0].Right)
	assert.Equal(t, "America", promoted.Right[1].Word)
}

func Test_FindProcess_Completeness(t *testing.T) {
	paris1 := logic.NewValueFrom(schema.NewIndividual("wd:Q90", 30), "Paris")
	paris2 := logic.NewValueFrom(schema.NewIndividual("wd:Q167646", 5), "Paris")
	seine := logic.NewValueFrom(schema.NewIndividual("wd:Q1471", 10), "Seine")

	mk := func(values ...*logic.Value) logic.Term {
		x := logic.NewVariable("x")
		parts := make([]logic.Formula, len(values))
		for i, v := range values {
			parts[i] = logic.NewEquality(x, v)
		}
		return logic.NewSelect(logic.NewAnd(parts...), x)
	}
	// The third term resolves "Paris" to two distinct values; it must still
	// follow a single branch rather than land under both choices.
	terms := []logic.Term{
		mk(paris1, seine), mk(paris2, seine), mk(paris1, paris2), mk(seine),
	}

	node := FindProcess(terms)
	step, ok := node.(*Step)
	require.True(t, ok)
	assert.Equal(t, "Paris", step.OriginalStr)
	require.Len(t, step.Choices, 2)
	require.NotNil(t, step.Others)

	// Every input term lands in exactly one leaf.
	var collected []logic.Term
	var walk func(n DisambiguationNode)
	walk = func(n DisambiguationNode) {
		switch n := n.(type) {
		case *Leaf:
			collected = append(collected, n.Terms...)
		case *Step:
			for _, c := range n.Choices {
				walk(c.Node)
			}
			if n.Others != nil {
				walk(n.Others)
			}
		}
	}
	walk(node)
	require.Len(t, collected, len(terms))
	for _, term := range terms {
		found := 0
		for _, c := range collected {
			if logic.Equal(term, c) {
				found++
			}
		}
		assert.Equal(t, 1, found, term.String())
	}
}
