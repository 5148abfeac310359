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

package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

func Test_Wikidata_IndividualsFromLabel(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/search/simple", r.URL.Path)
		assert.Equal(t, "France", r.URL.Query().Get("q"))
		assert.Equal(t, "item", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"member": [
			{"@id": "wd:Q142", "name": "France", "@type": ["wd:Q6256"], "score": 50},
			{"@id": "wd:Q1741", "name": "Vienna", "score": 20}
		]}`))
	}))
	defer server.Close()

	w, err := NewWikidata(server.URL, server.URL, nil)
	require.NoError(t, err)

	values, err := w.IndividualsFromLabel(context.Background(), "France", "en", nil)
	require.NoError(t, err)
	require.Len(t, values, 1)
	individual := values[0].Resource.(*schema.Individual)
	assert.Equal(t, "http://www.wikidata.org/entity/Q142", individual.IRI())
	assert.Equal(t, 50, individual.Score())
	assert.Equal(t, "France", values[0].OriginalStr)

	// Second lookup hits the cache.
	_, err = w.IndividualsFromLabel(context.Background(), "France", "en", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func Test_Wikidata_EvaluateTerm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Form.Get("query"), "SELECT DISTINCT ?x ?s ?p WHERE")
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{
			"head": {"vars": ["x"]},
			"results": {"bindings": [
				{"x": {"type": "uri", "value": "http://www.wikidata.org/entity/Q3052772"}},
				{"x": {"type": "literal", "value": "1952-03-11T00:00:00Z",
					"datatype": "http://www.w3.org/2001/XMLSchema#dateTime"}}
			]}
		}`))
	}))
	defer server.Close()

	w, err := NewWikidata(server.URL, server.URL, nil)
	require.NoError(t, err)

	x := logic.NewVariable("x")
	property := schema.NewObjectProperty("http://www.wikidata.org/prop/direct/P6", nil, nil)
	subject := schema.NewIndividual("http://www.wikidata.org/entity/Q142", 50)
	sel := logic.NewSelect(logic.Must(logic.NewTriple(
		logic.NewValue(subject), logic.NewValue(property), x)), x)

	results, err := w.EvaluateTerm(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "http://www.wikidata.org/entity/Q3052772",
		results[0].(*schema.Individual).IRI())
	// Midnight on March 11 carries day precision.
	assert.Equal(t, &schema.DateLiteral{Year: 1952, Month: 3, Day: 11}, results[1])
}

func Test_DecodeDateTime(t *testing.T) {
	tests := []struct {
		value    string
		expected schema.Resource
	}{
		{"1952-03-11T00:00:00Z", &schema.DateLiteral{Year: 1952, Month: 3, Day: 11}},
		{"1952-03-01T00:00:00Z", &schema.GYearMonthLiteral{Year: 1952, Month: 3}},
		{"1952-01-01T00:00:00Z", &schema.GYearLiteral{Year: 1952}},
		{"1952-03-11T08:30:00Z", &schema.DateTimeLiteral{
			Year: 1952, Month: 3, Day: 11, Hour: 8, Minute: 30}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, decodeDateTime(test.value), test.value)
	}
	assert.Nil(t, decodeDateTime("not a date"))
}

func Test_MemberProperty(t *testing.T) {
	date := memberProperty(searchMember{ID: "wdt:P569", Range: "xsd:dateTime", Score: 3})
	assert.Equal(t, "http://www.wikidata.org/prop/direct/P569", date.IRI())
	assert.False(t, date.IsObjectProperty())
	assert.Equal(t, schema.XSDDateTime, date.Range())
	assert.Equal(t, 3, date.Score())

	obj := memberProperty(searchMember{ID: "wdt:P6", Range: "owl:Thing"})
	assert.True(t, obj.IsObjectProperty())
}

func Test_HardcodedRelations(t *testing.T) {
	sons := hardcodedRelations("son", "en")
	require.Len(t, sons, 1)
	assert.Equal(t, 2, sons[0].Arity())

	daughters := hardcodedRelations("daughters", "en")
	require.Len(t, daughters, 1)
	assert.False(t, logic.Equal(sons[0], daughters[0]))

	assert.Empty(t, hardcodedRelations("son", "fr"))
	assert.Empty(t, hardcodedRelations("child", "en"))
}

func Test_InstanceOfClosure(t *testing.T) {
	rel := instanceOfClosure()
	assert.Equal(t, 2, rel.Arity())
	// The closure is stable under alpha-renaming.
	assert.True(t, logic.Equal(rel, instanceOfClosure()))
}

func Test_Wikidata_TypeRelations(t *testing.T) {
	w, err := NewWikidata("http://example.org", "http://example.org", nil)
	require.NoError(t, err)
	relations := w.TypeRelations()
	assert.Len(t, relations, 6)
	for _, rel := range relations {
		assert.Equal(t, 2, rel.Arity())
	}
}
