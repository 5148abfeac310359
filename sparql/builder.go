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

// Package sparql renders logic terms as SPARQL queries for a Wikidata-style
// endpoint. Unary Selects become SELECT queries, closed boolean formulas
// become ASK queries.
package sparql

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

// An EvaluationError marks a term the SPARQL rendering cannot express.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return "sparql: " + e.Reason
}

func errorf(format string, args ...interface{}) *EvaluationError {
	return &EvaluationError{Reason: fmt.Sprintf(format, args...)}
}

// Options control query rendering.
type Options struct {
	// Ranking orders entity results by their Wikipedia sitelink count, a
	// cheap popularity proxy.
	Ranking bool
	// RetrieveContext extends the projection with the subject and
	// predicate of the triple that produced each result.
	RetrieveContext bool
	// Limit caps the number of rows. Zero means 100.
	Limit int
}

const defaultLimit = 100

// Build renders term as a SPARQL query.
func Build(term logic.Term, opts Options) (string, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	b := newBuilder(term)
	switch t := term.(type) {
	case *logic.Select:
		return b.selectQuery(t, opts)
	case logic.Formula:
		return b.askQuery(t)
	default:
		return "", errorf("unsupported term %T", term)
	}
}

type builder struct {
	renamed map[string]string
	taken   map[string]bool
	counter int
}

// newBuilder prepares the variable renaming table. Names the analyzer
// generates are not always legal SPARQL variable names, so those are
// rewritten; names the caller chose are kept.
func newBuilder(term logic.Term) *builder {
	b := &builder{
		renamed: make(map[string]string),
		taken:   make(map[string]bool),
	}
	logic.Walk(term, func(t logic.Term) {
		if v, ok := t.(*logic.Variable); ok && legalVarName(v.Name) {
			b.taken[v.Name] = true
		}
	})
	return b
}

func legalVarName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func (b *builder) variable(v *logic.Variable) string {
	if legalVarName(v.Name) {
		return "?" + v.Name
	}
	if r, ok := b.renamed[v.Name]; ok {
		return "?" + r
	}
	for {
		b.counter++
		candidate := "v" + strconv.Itoa(b.counter)
		if !b.taken[candidate] {
			b.taken[candidate] = true
			b.renamed[v.Name] = candidate
			return "?" + candidate
		}
	}
}

// freshVariable returns a variable unused anywhere in the query.
func (b *builder) freshVariable(preferred string) *logic.Variable {
	if !b.taken[preferred] {
		b.taken[preferred] = true
		return logic.NewVariable(preferred)
	}
	for i := 2; ; i++ {
		name := preferred + strconv.Itoa(i)
		if !b.taken[name] {
			b.taken[name] = true
			return logic.NewVariable(name)
		}
	}
}

func (b *builder) selectQuery(sel *logic.Select, opts Options) (string, error) {
	if opts.RetrieveContext {
		sel = b.withContext(sel)
	}
	args := sel.Args()
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = b.variable(arg)
	}
	clauses, err := b.pattern(sel.Body())
	if err != nil {
		return "", err
	}

	ranked := opts.Ranking && sel.ArgType(0).Intersects(logic.EntityType())
	if ranked {
		clauses = append(clauses, fmt.Sprintf(
			"OPTIONAL { %s wikibase:sitelinks ?sitelinksCount . }",
			b.variable(rankArgument(args))))
	}

	var q strings.Builder
	q.WriteString("SELECT DISTINCT ")
	q.WriteString(strings.Join(names, " "))
	q.WriteString(" WHERE {\n")
	for _, clause := range clauses {
		q.WriteByte('\t')
		q.WriteString(clause)
		q.WriteByte('\n')
	}
	q.WriteString("}")
	if ranked {
		q.WriteString(" ORDER BY DESC(?sitelinksCount)")
	}
	fmt.Fprintf(&q, " LIMIT %d", opts.Limit)
	return q.String(), nil
}

// rankArgument picks the variable to rank on: the argument named "s" when
// present, the first argument otherwise.
func rankArgument(args []*logic.Variable) *logic.Variable {
	for _, arg := range args {
		if arg.Name == "s" {
			return arg
		}
	}
	return args[0]
}

func (b *builder) askQuery(f logic.Formula) (string, error) {
	clauses, err := b.pattern(f)
	if err != nil {
		return "", err
	}
	var q strings.Builder
	q.WriteString("ASK {\n")
	for _, clause := range clauses {
		q.WriteByte('\t')
		q.WriteString(clause)
		q.WriteByte('\n')
	}
	q.WriteString("}")
	return q.String(), nil
}

// withContext rewrites { r | ... <a, b, r> ... } so the query also returns
// the subject and predicate of the triple that produced each result.
func (b *builder) withContext(sel *logic.Select) *logic.Select {
	if sel.Arity() != 1 {
		return sel
	}
	result := sel.Args()[0]
	s := b.freshVariable("s")
	p := b.freshVariable("p")
	body, ok := contextualize(sel.Body(), result, s, p)
	if !ok {
		return sel
	}
	return logic.NewSelect(body, result, s, p)
}

// contextualize replaces the first triple producing result in each branch
// with a fully variable one plus bindings for its subject and predicate.
func contextualize(f logic.Formula, result, s, p *logic.Variable) (logic.Formula, bool) {
	switch f := f.(type) {
	case *logic.Triple:
		obj, ok := f.Object.(*logic.Variable)
		if !ok || obj.Name != result.Name {
			return f, false
		}
		if _, isPath := f.Predicate.(*logic.ZeroOrMorePath); isPath {
			return f, false
		}
		return logic.NewAnd(
			logic.Must(logic.NewTriple(s, p, obj)),
			logic.NewEquality(s, f.Subject),
			logic.NewEquality(p, f.Predicate),
		), true
	case *logic.And:
		args := f.Args()
		for i, arg := range args {
			if rewritten, ok := contextualize(arg, result, s, p); ok {
				args[i] = rewritten
				return logic.NewAnd(args...), true
			}
		}
		return f, false
	case *logic.Or:
		args := f.Args()
		any := false
		for i, arg := range args {
			if rewritten, ok := contextualize(arg, result, s, p); ok {
				args[i] = rewritten
				any = true
			}
		}
		if !any {
			return f, false
		}
		return logic.NewOr(args...), true
	case *logic.Exists:
		if f.Arg.Name == result.Name {
			return f, false
		}
		body, ok := contextualize(f.Body, result, s, p)
		if !ok {
			return f, false
		}
		return logic.NewExists(f.Arg, body), true
	default:
		return f, false
	}
}

// pattern renders a formula as group graph pattern lines, sorted.
func (b *builder) pattern(f logic.Formula) ([]string, error) {
	switch f := f.(type) {
	case *logic.Triple:
		subject, err := b.node(f.Subject)
		if err != nil {
			return nil, err
		}
		predicate, err := b.node(f.Predicate)
		if err != nil {
			return nil, err
		}
		object, err := b.node(f.Object)
		if err != nil {
			return nil, err
		}
		return []string{subject + " " + predicate + " " + object + " ."}, nil
	case *logic.And:
		var out []string
		for _, arg := range f.Args() {
			clauses, err := b.pattern(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, clauses...)
		}
		sort.Strings(out)
		return out, nil
	case *logic.Or:
		branches := make([]string, 0, len(f.Args()))
		for _, arg := range f.Args() {
			clauses, err := b.pattern(arg)
			if err != nil {
				return nil, err
			}
			branches = append(branches, "{ "+strings.Join(clauses, " ")+" }")
		}
		sort.Strings(branches)
		return []string{strings.Join(branches, " UNION ")}, nil
	case *logic.Exists:
		return b.pattern(f.Body)
	case *logic.Equality:
		return b.equality(f)
	case *logic.Greater:
		return b.comparison(f.Left, ">", f.Right)
	case *logic.GreaterOrEqual:
		return b.comparison(f.Left, ">=", f.Right)
	case *logic.Lower:
		return b.comparison(f.Left, "<", f.Right)
	case *logic.LowerOrEqual:
		return b.comparison(f.Left, "<=", f.Right)
	default:
		return nil, errorf("no SPARQL rendering for %T", f)
	}
}

// equality renders variable-to-value equalities as BIND, everything else
// as FILTER.
func (b *builder) equality(f *logic.Equality) ([]string, error) {
	if v, ok := f.Left.(*logic.Variable); ok {
		if value, ok := f.Right.(*logic.Value); ok {
			rendered, err := b.resource(value.Resource)
			if err != nil {
				return nil, err
			}
			return []string{"BIND(" + rendered + " AS " + b.variable(v) + ")"}, nil
		}
	}
	if v, ok := f.Right.(*logic.Variable); ok {
		if value, ok := f.Left.(*logic.Value); ok {
			rendered, err := b.resource(value.Resource)
			if err != nil {
				return nil, err
			}
			return []string{"BIND(" + rendered + " AS " + b.variable(v) + ")"}, nil
		}
	}
	return b.comparison(f.Left, "=", f.Right)
}

func (b *builder) comparison(left logic.Formula, op string, right logic.Formula) ([]string, error) {
	l, err := b.node(left)
	if err != nil {
		return nil, err
	}
	r, err := b.node(right)
	if err != nil {
		return nil, err
	}
	return []string{"FILTER(" + l + " " + op + " " + r + ")"}, nil
}

// node renders a term position of a triple or expression.
func (b *builder) node(f logic.Formula) (string, error) {
	switch f := f.(type) {
	case *logic.Variable:
		return b.variable(f), nil
	case *logic.Value:
		return b.resource(f.Resource)
	case *logic.ZeroOrMorePath:
		inner, err := b.node(f.Path)
		if err != nil {
			return "", err
		}
		return inner + "*", nil
	default:
		return "", errorf("no SPARQL rendering for %T in term position", f)
	}
}

// knownPrefixes are the namespaces the Wikidata query service predeclares.
var knownPrefixes = []struct {
	namespace string
	prefix    string
}{
	{"http://www.wikidata.org/entity/", "wd:"},
	{"http://www.wikidata.org/prop/direct/", "wdt:"},
	{"http://www.wikidata.org/prop/statement/", "ps:"},
	{"http://www.wikidata.org/prop/qualifier/", "pq:"},
	{"http://www.wikidata.org/prop/", "p:"},
	{"http://wikiba.se/ontology#", "wikibase:"},
	{"http://www.w3.org/2001/XMLSchema#", "xsd:"},
	{"http://www.w3.org/1999/02/22-rdf-syntax-ns#", "rdf:"},
	{"http://www.w3.org/2000/01/rdf-schema#", "rdfs:"},
	{"http://www.w3.org/2002/07/owl#", "owl:"},
	{"http://www.w3.org/2004/02/skos/core#", "skos:"},
	{"http://schema.org/", "schema:"},
	{"http://www.opengis.net/ont/geosparql#", "geo:"},
	{"http://www.w3.org/ns/prov#", "prov:"},
	{"http://creativecommons.org/ns#", "cc:"},
}

// iri renders an IRI, prefixed when a known namespace applies.
func iri(value string) string {
	for _, known := range knownPrefixes {
		local, ok := strings.CutPrefix(value, known.namespace)
		if !ok || !legalLocalName(local) {
			continue
		}
		return known.prefix + local
	}
	return "<" + value + ">"
}

func legalLocalName(local string) bool {
	if local == "" {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' || r == '_':
		default:
			return false
		}
	}
	return true
}

func (b *builder) resource(r schema.Resource) (string, error) {
	switch r := r.(type) {
	case *schema.Individual:
		return iri(r.IRI()), nil
	case *schema.Property:
		return iri(r.IRI()), nil
	case *schema.Class:
		return iri(r.IRI()), nil
	case *schema.Datatype:
		return iri(r.IRI()), nil
	case *schema.IntegerLiteral:
		return r.LexicalForm(), nil
	case *schema.DecimalLiteral:
		return r.LexicalForm(), nil
	case *schema.BooleanLiteral:
		return r.LexicalForm(), nil
	case *schema.StringLiteral:
		return strconv.Quote(r.Value), nil
	case *schema.LangStringLiteral:
		return strconv.Quote(r.Value) + "@" + r.Language, nil
	case schema.Literal:
		return strconv.Quote(r.LexicalForm()) + "^^" + iri(r.Datatype().IRI()), nil
	default:
		return "", errorf("no SPARQL rendering for resource %T", r)
	}
}
