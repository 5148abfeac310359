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

package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

var (
	entityClass = schema.NewClass("http://www.wikidata.org/entity/Q35120", schema.OWLThing)

	q2 = schema.NewIndividual("http://www.wikidata.org/entity/Q2", 10, entityClass)
	p2 = schema.NewObjectProperty("http://www.wikidata.org/prop/direct/P2",
		schema.OWLThing, entityClass)

	france = schema.NewIndividual("http://www.wikidata.org/entity/Q142", 50, entityClass)
	p6     = schema.NewObjectProperty("http://www.wikidata.org/prop/direct/P6",
		schema.OWLThing, entityClass)
)

func Test_Build_Ranked(t *testing.T) {
	x := logic.NewVariable("x")
	sel := logic.NewSelect(logic.Must(logic.NewTriple(x, logic.NewValue(p2), logic.NewValue(q2))), x)

	got, err := Build(sel, Options{Ranking: true})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT DISTINCT ?x WHERE {\n"+
			"\t?x wdt:P2 wd:Q2 .\n"+
			"\tOPTIONAL { ?x wikibase:sitelinks ?sitelinksCount . }\n"+
			"} ORDER BY DESC(?sitelinksCount) LIMIT 100",
		got)
}

func Test_Build_Unranked(t *testing.T) {
	x := logic.NewVariable("x")
	sel := logic.NewSelect(logic.Must(logic.NewTriple(logic.NewValue(france), logic.NewValue(p6), x)), x)

	got, err := Build(sel, Options{})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT DISTINCT ?x WHERE {\n"+
			"\twd:Q142 wdt:P6 ?x .\n"+
			"} LIMIT 100",
		got)
}

func Test_Build_RetrieveContext(t *testing.T) {
	x := logic.NewVariable("x")
	sel := logic.NewSelect(logic.Must(logic.NewTriple(logic.NewValue(france), logic.NewValue(p6), x)), x)

	got, err := Build(sel, Options{RetrieveContext: true})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT DISTINCT ?x ?s ?p WHERE {\n"+
			"\t?s ?p ?x .\n"+
			"\tBIND(wd:Q142 AS ?s)\n"+
			"\tBIND(wdt:P6 AS ?p)\n"+
			"} LIMIT 100",
		got)
}

func Test_Build_Union(t *testing.T) {
	x := logic.NewVariable("x")
	a := logic.Must(logic.NewTriple(logic.NewValue(france), logic.NewValue(p6), x))
	b := logic.Must(logic.NewTriple(logic.NewValue(q2), logic.NewValue(p6), x))
	sel := logic.NewSelect(logic.NewOr(a, b), x)

	got, err := Build(sel, Options{})
	require.NoError(t, err)
	assert.Contains(t, got, " UNION ")
	assert.Contains(t, got, "{ wd:Q142 wdt:P6 ?x . }")
	assert.Contains(t, got, "{ wd:Q2 wdt:P6 ?x . }")
}

func Test_Build_FilterAndBind(t *testing.T) {
	x := logic.NewVariable("x")
	y := logic.NewVariable("y")
	date := logic.NewValue(&schema.DateLiteral{Year: 1900, Month: 1, Day: 1})

	birth := schema.NewDatatypeProperty("http://www.wikidata.org/prop/direct/P569",
		schema.OWLThing, schema.XSDDate)
	triple := logic.Must(logic.NewTriple(x, logic.NewValue(birth), y))
	cmp := logic.Must(logic.NewLower(y, date))
	sel := logic.NewSelect(logic.NewAnd(triple, cmp), x)

	got, err := Build(sel, Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "?x wdt:P569 ?y .")
	assert.Contains(t, got, `FILTER(?y < "1900-01-01"^^xsd:date)`)
}

func Test_Build_Ask(t *testing.T) {
	f := logic.Must(logic.NewTriple(logic.NewValue(france), logic.NewValue(p6), logic.NewValue(q2)))
	got, err := Build(f, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ASK {\n\twd:Q142 wdt:P6 wd:Q2 .\n}", got)
}

func Test_Build_ZeroOrMorePath(t *testing.T) {
	x := logic.NewVariable("x")
	instanceOf := schema.NewObjectProperty("http://www.wikidata.org/prop/direct/P279",
		schema.OWLThing, schema.OWLThing)
	path := logic.NewZeroOrMorePath(logic.NewValue(instanceOf))
	sel := logic.NewSelect(logic.Must(logic.NewTriple(x, path, logic.NewValue(q2))), x)

	got, err := Build(sel, Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "?x wdt:P279* wd:Q2 .")
}

func Test_Build_RenamesGeneratedVariables(t *testing.T) {
	out := logic.FreshVariable()
	sel := logic.NewSelect(logic.Must(logic.NewTriple(logic.NewValue(france), logic.NewValue(p6), out)), out)

	got, err := Build(sel, Options{})
	require.NoError(t, err)
	assert.NotContains(t, got, "µ")
	assert.Contains(t, got, "SELECT DISTINCT ?v1 WHERE")
}

func Test_Build_Unsupported(t *testing.T) {
	x := logic.NewVariable("x")
	not := logic.NewNot(logic.Must(logic.NewTriple(x, logic.NewValue(p6), logic.NewValue(q2))))
	sel := logic.NewSelect(not, x)

	_, err := Build(sel, Options{})
	require.Error(t, err)
	var evalErr *EvaluationError
	assert.ErrorAs(t, err, &evalErr)
}
