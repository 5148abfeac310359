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

package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_POSTagFromString(t *testing.T) {
	tag, err := POSTagFromString("noun")
	require.NoError(t, err)
	assert.Equal(t, POSNoun, tag)

	tag, err = POSTagFromString("CONJ")
	require.NoError(t, err)
	assert.Equal(t, POSCconj, tag)

	_, err = POSTagFromString("NN")
	assert.Error(t, err)
}

func Test_DependencyFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected Dependency
	}{
		{"nsubj", DepNsubj},
		{"NSUBJ", DepNsubj},
		{"dobj", DepObj},
		{"nsubjpass", DepNsubjPass},
		{"nmod:poss", DepNmodPoss},
		{"nmod:of", Dependency("nmod:of")},
		{"mwe", DepFixed},
	}
	for _, test := range tests {
		dep, err := DependencyFromString(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.expected, dep, test.in)
	}
	_, err := DependencyFromString("prep")
	assert.Error(t, err)
}

func Test_Dependency_Extends(t *testing.T) {
	assert.True(t, DepNsubjPass.Extends(DepNsubj))
	assert.True(t, DepNsubj.Extends(DepNsubj))
	assert.True(t, DepNmodPoss.Extends(DepNmod))
	assert.False(t, DepNsubj.Extends(DepNsubjPass))
	assert.False(t, Dependency("nsubjx").Extends(DepNsubj))
	assert.Equal(t, DepNmod, DepNmodPoss.Base())
}

func Test_Token_SubtreeOrder(t *testing.T) {
	// "the prime minister of France"
	of := &Token{Word: "of", POS: POSAdp, Dep: DepCase}
	france := &Token{Word: "France", POS: POSPropn, Dep: DepNmod, Left: []*Token{of}}
	the := &Token{Word: "the", POS: POSDet, Dep: DepDet}
	prime := &Token{Word: "prime", POS: POSAdj, Dep: DepAmod}
	minister := &Token{
		Word: "minister", POS: POSNoun, Dep: DepRoot,
		Left:  []*Token{the, prime},
		Right: []*Token{france},
	}

	var words []string
	for _, tok := range minister.Subtree() {
		words = append(words, tok.Word)
	}
	assert.Equal(t, []string{"the", "prime", "minister", "of", "France"}, words)
	assert.Equal(t, []*Token{the, prime, france}, minister.Children())
	assert.Equal(t, "the prime minister of France", (&Sentence{Root: minister}).String())
}

func Test_CoreNLP_BuildTree(t *testing.T) {
	s := corenlpSentence{
		Tokens: []corenlpToken{
			{Index: 1, Word: "Who", Lemma: "who", POS: "PRON"},
			{Index: 2, Word: "wrote", Lemma: "write", POS: "VERB"},
			{Index: 3, Word: "Hamlet", Lemma: "Hamlet", POS: "PROPN"},
		},
		Dependencies: []corenlpDependency{
			{Dep: "root", Governor: 0, Dependent: 2},
			{Dep: "nsubj", Governor: 2, Dependent: 1},
			{Dep: "dobj", Governor: 2, Dependent: 3},
		},
	}
	root, err := buildTree(s)
	require.NoError(t, err)
	assert.Equal(t, "wrote", root.Word)
	require.Len(t, root.Left, 1)
	require.Len(t, root.Right, 1)
	assert.Equal(t, DepNsubj, root.Left[0].Dep)
	assert.Equal(t, DepObj, root.Right[0].Dep)
}
