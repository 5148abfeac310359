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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
	"github.com/askgraph/askgraph/sparql"
)

const (
	wikidataEntityNS = "http://www.wikidata.org/entity/"
	wikidataDirectNS = "http://www.wikidata.org/prop/direct/"

	// cacheSize bounds each of the label and query caches.
	cacheSize = 8192
)

var cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "askgraph",
	Subsystem: "kb",
	Name:      "cache_requests_total",
	Help:      "Lookups in the Wikidata client caches, by cache and outcome.",
}, []string{"cache", "outcome"})

func init() {
	prometheus.MustRegister(cacheRequests)
}

// A Wikidata is a KnowledgeBase backed by the Wikidata entity search API
// and the Wikidata Query Service.
type Wikidata struct {
	searchURL string
	queryURL  string
	client    *http.Client

	searchCache *lru.Cache[string, []searchMember]
	queryCache  *lru.Cache[string, []schema.Resource]
}

var _ KnowledgeBase = (*Wikidata)(nil)

// NewWikidata returns a client for the given entity search and SPARQL
// endpoints.
func NewWikidata(searchURL, queryURL string, client *http.Client) (*Wikidata, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	searchCache, err := lru.New[string, []searchMember](cacheSize)
	if err != nil {
		return nil, err
	}
	queryCache, err := lru.New[string, []schema.Resource](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Wikidata{
		searchURL:   searchURL,
		queryURL:    queryURL,
		client:      client,
		searchCache: searchCache,
		queryCache:  queryCache,
	}, nil
}

// Wire shape of the entity search response.
type searchResponse struct {
	Member []searchMember `json:"member"`
}

type searchMember struct {
	ID       string   `json:"@id"`
	Name     string   `json:"name"`
	Types    []string `json:"@type"`
	Score    int      `json:"score"`
	Range    string   `json:"range"`
	MainType string   `json:"mainType"`
}

// search queries the /search/simple endpoint, with caching.
func (w *Wikidata) search(ctx context.Context, label, language, kind string) ([]searchMember, error) {
	key := kind + "\x00" + language + "\x00" + strings.ToLower(label)
	if members, ok := w.searchCache.Get(key); ok {
		cacheRequests.WithLabelValues("search", "hit").Inc()
		return members, nil
	}
	cacheRequests.WithLabelValues("search", "miss").Inc()

	query := url.Values{}
	query.Set("q", label)
	query.Set("language", language)
	query.Set("type", kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		w.searchURL+"/search/simple?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kb: entity search failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kb: entity search returned %s", resp.Status)
	}
	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("kb: decoding entity search response: %w", err)
	}
	w.searchCache.Add(key, decoded.Member)
	return decoded.Member, nil
}

// expandIRI resolves the compact ids the search endpoint returns.
func expandIRI(id string) string {
	switch {
	case strings.HasPrefix(id, "wd:"):
		return wikidataEntityNS + id[len("wd:"):]
	case strings.HasPrefix(id, "wdt:"):
		return wikidataDirectNS + id[len("wdt:"):]
	default:
		return id
	}
}

// IndividualsFromLabel implements KnowledgeBase.
func (w *Wikidata) IndividualsFromLabel(ctx context.Context, label, language string, filter *schema.Class) ([]*logic.Value, error) {
	members, err := w.search(ctx, label, language, "item")
	if err != nil {
		return nil, err
	}
	var out []*logic.Value
	for _, m := range members {
		if !LabelMatches(label, m.Name) {
			continue
		}
		types := make([]*schema.Class, 0, len(m.Types))
		for _, t := range m.Types {
			types = append(types, schema.NewClass(expandIRI(t), schema.OWLThing))
		}
		individual := schema.NewIndividual(expandIRI(m.ID), m.Score, types...)
		if filter != nil && !individual.IsInstanceOf(filter) {
			continue
		}
		out = append(out, logic.NewValueFrom(individual, label))
	}
	return out, nil
}

// RelationsFromLabel implements KnowledgeBase.
func (w *Wikidata) RelationsFromLabel(ctx context.Context, label, language string) ([]*logic.Select, error) {
	out := append([]*logic.Select{}, hardcodedRelations(label, language)...)
	members, err := w.search(ctx, label, language, "property")
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if !LabelMatches(label, m.Name) {
			continue
		}
		property := memberProperty(m)
		out = append(out, PropertyRelation(property, label))
	}
	return DedupeRelations(out), nil
}

// memberProperty builds the schema property for a search result, using the
// declared range to pick between object and datatype properties.
func memberProperty(m searchMember) *schema.Property {
	iri := expandIRI(m.ID)
	switch m.Range {
	case "xsd:dateTime":
		return schema.NewDatatypeProperty(iri, nil, schema.XSDDateTime).WithScore(m.Score)
	case "xsd:date":
		return schema.NewDatatypeProperty(iri, nil, schema.XSDDate).WithScore(m.Score)
	case "xsd:decimal":
		return schema.NewDatatypeProperty(iri, nil, schema.XSDDecimal).WithScore(m.Score)
	case "xsd:string":
		return schema.NewDatatypeProperty(iri, nil, schema.XSDString).WithScore(m.Score)
	case "", "owl:Thing":
		return schema.NewObjectProperty(iri, nil, nil).WithScore(m.Score)
	default:
		return schema.NewObjectProperty(iri,
			nil, schema.NewClass(expandIRI(m.Range), schema.OWLThing)).WithScore(m.Score)
	}
}

// RelationsFromLabels implements KnowledgeBase.
func (w *Wikidata) RelationsFromLabels(ctx context.Context, labels []string, language string) ([]*logic.Select, error) {
	var out []*logic.Select
	for _, label := range labels {
		relations, err := w.RelationsFromLabel(ctx, label, language)
		if err != nil {
			return nil, err
		}
		out = append(out, relations...)
	}
	return DedupeRelations(out), nil
}

// Well-known Wikidata properties.
var (
	wdChild       = schema.NewObjectProperty(wikidataDirectNS+"P40", nil, nil)
	wdSex         = schema.NewObjectProperty(wikidataDirectNS+"P21", nil, nil)
	wdCitizenship = schema.NewObjectProperty(wikidataDirectNS+"P27", nil, nil)
	wdInstanceOf  = schema.NewObjectProperty(wikidataDirectNS+"P31", nil, nil)
	wdSubclassOf  = schema.NewObjectProperty(wikidataDirectNS+"P279", nil, nil)
	wdTaxonRank   = schema.NewObjectProperty(wikidataDirectNS+"P105", nil, nil)
	wdOccupation  = schema.NewObjectProperty(wikidataDirectNS+"P106", nil, nil)
	wdGenre       = schema.NewObjectProperty(wikidataDirectNS+"P136", nil, nil)

	wdLabel = schema.NewDatatypeProperty(
		"http://www.w3.org/2000/01/rdf-schema#label", nil, schema.RDFLangString)

	wdMale   = schema.NewIndividual(wikidataEntityNS+"Q6581097", 0)
	wdFemale = schema.NewIndividual(wikidataEntityNS+"Q6581072", 0)
)

// PropertyRelation wraps a property as the binary relation
// { s o | <s, property, o> }.
func PropertyRelation(property *schema.Property, originalStr string) *logic.Select {
	s := logic.FreshVariable()
	o := logic.FreshVariable()
	body := logic.Must(logic.NewTriple(s, logic.NewValueFrom(property, originalStr), o))
	return logic.NewSelect(body, s, o)
}

// hardcodedRelations covers kinship and naming words that Wikidata models
// with a property plus a constraint rather than a single property: "son"
// is "child with male sex".
func hardcodedRelations(label, language string) []*logic.Select {
	if language != "en" {
		return nil
	}
	switch strings.ToLower(label) {
	case "son", "sons":
		return []*logic.Select{childWithSex(wdMale, label)}
	case "daughter", "daughters":
		return []*logic.Select{childWithSex(wdFemale, label)}
	case "name", "names":
		return []*logic.Select{PropertyRelation(wdLabel, label)}
	}
	return nil
}

func childWithSex(sex *schema.Individual, originalStr string) *logic.Select {
	s := logic.FreshVariable()
	o := logic.FreshVariable()
	body := logic.NewAnd(
		logic.Must(logic.NewTriple(s, logic.NewValueFrom(wdChild, originalStr), o)),
		logic.Must(logic.NewTriple(o, logic.NewValue(wdSex), logic.NewValue(sex))),
	)
	return logic.NewSelect(body, s, o)
}

// TypeRelations implements KnowledgeBase. Instance-of runs through the
// subclass closure so "X that is a writer" also finds instances of writer
// subclasses.
func (w *Wikidata) TypeRelations() []*logic.Select {
	direct := []*schema.Property{wdSex, wdCitizenship, wdTaxonRank, wdOccupation, wdGenre}
	out := make([]*logic.Select, 0, len(direct)+1)
	for _, property := range direct {
		out = append(out, PropertyRelation(property, ""))
	}
	out = append(out, instanceOfClosure())
	return out
}

// instanceOfClosure is { s o | ∃m <s, P31, m> ∧ <m, P279*, o> }.
func instanceOfClosure() *logic.Select {
	s := logic.FreshVariable()
	o := logic.FreshVariable()
	m := logic.FreshVariable()
	body := logic.NewExists(m, logic.NewAnd(
		logic.Must(logic.NewTriple(s, logic.NewValue(wdInstanceOf), m)),
		logic.Must(logic.NewTriple(m, logic.NewZeroOrMorePath(logic.NewValue(wdSubclassOf)), o)),
	))
	return logic.NewSelect(body, s, o)
}

// EvaluateTerm implements KnowledgeBase: the term is rendered as SPARQL and
// sent to the query service. The query also projects the subject and
// predicate that produced each result; only the first projected variable
// carries the answers.
func (w *Wikidata) EvaluateTerm(ctx context.Context, term logic.Term) ([]schema.Resource, error) {
	query, err := sparql.Build(term, sparql.Options{Ranking: true, RetrieveContext: true})
	if err != nil {
		return nil, err
	}
	if results, ok := w.queryCache.Get(query); ok {
		cacheRequests.WithLabelValues("query", "hit").Inc()
		return results, nil
	}
	cacheRequests.WithLabelValues("query", "miss").Inc()

	form := url.Values{}
	form.Set("query", query)
	form.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.queryURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kb: SPARQL query failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kb: SPARQL endpoint returned %s", resp.Status)
	}

	var decoded sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("kb: decoding SPARQL response: %w", err)
	}
	results := decodeResults(&decoded)
	w.queryCache.Add(query, results)
	return results, nil
}

// Wire shapes of the SPARQL JSON results format.
type sparqlResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Boolean *bool `json:"boolean"`
	Results struct {
		Bindings []map[string]sparqlTerm `json:"bindings"`
	} `json:"results"`
}

type sparqlTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype"`
	Lang     string `json:"xml:lang"`
}

// decodeResults converts the endpoint's bindings to resources. Only the
// first projected variable carries the answers; the rest is context.
func decodeResults(resp *sparqlResponse) []schema.Resource {
	if resp.Boolean != nil {
		return []schema.Resource{&schema.BooleanLiteral{Value: *resp.Boolean}}
	}
	if len(resp.Head.Vars) == 0 {
		return nil
	}
	answer := resp.Head.Vars[0]
	var out []schema.Resource
	for _, binding := range resp.Results.Bindings {
		term, ok := binding[answer]
		if !ok {
			continue
		}
		r := decodeTerm(term)
		if r == nil {
			log.WithFields(log.Fields{
				"type":  term.Type,
				"value": term.Value,
			}).Warn("Skipping undecodable SPARQL result term")
			continue
		}
		out = append(out, r)
	}
	return out
}

func decodeTerm(term sparqlTerm) schema.Resource {
	switch term.Type {
	case "uri":
		return schema.NewIndividual(term.Value, 0)
	case "literal", "typed-literal":
		return decodeLiteral(term)
	default:
		return nil
	}
}

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

func decodeLiteral(term sparqlTerm) schema.Resource {
	if term.Lang != "" {
		return &schema.LangStringLiteral{Value: term.Value, Language: term.Lang}
	}
	switch term.Datatype {
	case "", xsdNS + "string":
		return &schema.StringLiteral{Value: term.Value}
	case xsdNS + "boolean":
		return &schema.BooleanLiteral{Value: term.Value == "true"}
	case xsdNS + "integer", xsdNS + "int", xsdNS + "long":
		v, err := strconv.ParseInt(term.Value, 10, 64)
		if err != nil {
			return nil
		}
		return &schema.IntegerLiteral{Value: v}
	case xsdNS + "decimal":
		return &schema.DecimalLiteral{Lexical: term.Value}
	case xsdNS + "double", xsdNS + "float":
		v, err := strconv.ParseFloat(term.Value, 64)
		if err != nil {
			return nil
		}
		return &schema.DoubleLiteral{Value: v}
	case xsdNS + "dateTime":
		return decodeDateTime(term.Value)
	case xsdNS + "date":
		var l schema.DateLiteral
		if _, err := fmt.Sscanf(term.Value, "%d-%d-%d", &l.Year, &l.Month, &l.Day); err != nil {
			return nil
		}
		return &l
	case xsdNS + "gYear":
		year, err := strconv.Atoi(term.Value)
		if err != nil {
			return nil
		}
		return &schema.GYearLiteral{Year: year}
	case xsdNS + "gYearMonth":
		var l schema.GYearMonthLiteral
		if _, err := fmt.Sscanf(term.Value, "%d-%d", &l.Year, &l.Month); err != nil {
			return nil
		}
		return &l
	default:
		return &schema.TypedLiteral{Lexical: term.Value,
			Type: schema.NewDatatype(term.Datatype, schema.RDFSLiteral)}
	}
}

// decodeDateTime collapses the query service's dateTime values to the
// precision they actually carry: Wikidata stores dates of unknown time as
// midnight, and year-only dates as January first.
func decodeDateTime(value string) schema.Resource {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	switch {
	case t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0:
		return &schema.DateTimeLiteral{
			Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
			Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		}
	case t.Month() == time.January && t.Day() == 1:
		return &schema.GYearLiteral{Year: t.Year()}
	case t.Day() == 1:
		return &schema.GYearMonthLiteral{Year: t.Year(), Month: int(t.Month())}
	default:
		return &schema.DateLiteral{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	}
}
