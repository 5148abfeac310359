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

// Package analyzer turns dependency-parsed questions into logic terms. Each
// question maps to zero or more unary Selects, one per plausible reading,
// which the caller evaluates and ranks.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/askgraph/askgraph/kb"
	"github.com/askgraph/askgraph/lang"
	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/nlp"
)

// An Analyzer maps questions to logic terms, resolving labels against a
// knowledge base.
type Analyzer struct {
	parser nlp.Parser
	kb     kb.KnowledgeBase
}

// New returns an Analyzer using the given parser and knowledge base.
func New(parser nlp.Parser, knowledgeBase kb.KnowledgeBase) *Analyzer {
	return &Analyzer{parser: parser, kb: knowledgeBase}
}

// Analyze returns the candidate readings of the question, deduplicated,
// in discovery order. An empty result means the question was understood
// but nothing in the knowledge base matched its words.
func (a *Analyzer) Analyze(ctx context.Context, question, language string) ([]*logic.Select, error) {
	sentences, err := a.parser.Parse(ctx, question, language)
	if err != nil {
		return nil, err
	}
	var results []*logic.Select
	for _, sentence := range sentences {
		sels, err := a.analyzeSentence(ctx, sentence.Root, language)
		if err != nil {
			return nil, err
		}
		results = append(results, sels...)
	}
	return dedupeSelects(results), nil
}

func (a *Analyzer) analyzeSentence(ctx context.Context, root *nlp.Token, language string) ([]*logic.Select, error) {
	qw, root := consumeQuestionWord(root, language)
	if root == nil {
		return nil, nil
	}
	expected := logic.Top()
	if qw != nil {
		expected = qw.ExpectedType
	}
	an := &analysis{analyzer: a, language: language, questionWord: qw}

	var results []*logic.Select
	for _, head := range meaningfulRoots(root, language) {
		for _, variant := range reshapings(head) {
			sels, err := an.nodeTerms(ctx, variant, expected)
			if err != nil {
				return nil, err
			}
			for _, sel := range sels {
				extended, err := an.addDataFromQuestion(ctx, sel)
				if err != nil {
					return nil, err
				}
				results = append(results, extended...)
			}
		}
	}
	filtered := results[:0]
	for _, sel := range results {
		if sel.ArgType(0).Intersects(expected) {
			filtered = append(filtered, sel)
		}
	}
	if len(filtered) == 0 {
		log.WithFields(log.Fields{
			"sentence": (&nlp.Sentence{Root: root}).String(),
			"language": language,
		}).Debug("No reading found for sentence")
	}
	return filtered, nil
}

// meaningfulRoots descends through contentless imperative roots like "give"
// in "give me the kings of France".
func meaningfulRoots(root *nlp.Token, language string) []*nlp.Token {
	if !lang.IsMeaninglessRoot(root.Lemma, language) {
		return []*nlp.Token{root}
	}
	var out []*nlp.Token
	for _, child := range root.Children() {
		if trimmedToken(child) || child.POS == nlp.POSPron {
			continue
		}
		out = append(out, meaningfulRoots(child, language)...)
	}
	if len(out) == 0 {
		return []*nlp.Token{root}
	}
	return out
}

// consumeQuestionWord matches the longest question word or phrase at the
// start of the sentence and prunes its tokens from the tree. It returns a
// nil root when nothing is left.
func consumeQuestionWord(root *nlp.Token, language string) (*lang.QuestionWord, *nlp.Token) {
	seq := root.Subtree()
	longest := 3
	if len(seq) < longest {
		longest = len(seq)
	}
	for n := longest; n >= 1; n-- {
		words := make([]string, n)
		for i := 0; i < n; i++ {
			words[i] = seq[i].Word
		}
		qw := lang.QuestionWordFromString(strings.Join(words, " "), language)
		if qw == nil {
			continue
		}
		drop := make(map[*nlp.Token]bool, n)
		for _, tok := range seq[:n] {
			drop[tok] = true
		}
		return qw, pruneTokens(root, drop)
	}
	return nil, root
}

// pruneTokens rebuilds the tree without the dropped tokens. Children of a
// dropped token survive: the first one takes its place.
func pruneTokens(t *nlp.Token, drop map[*nlp.Token]bool) *nlp.Token {
	keep := func(children []*nlp.Token) []*nlp.Token {
		var out []*nlp.Token
		for _, c := range children {
			if kept := pruneTokens(c, drop); kept != nil {
				out = append(out, kept)
			}
		}
		return out
	}
	left, right := keep(t.Left), keep(t.Right)
	if !drop[t] {
		return &nlp.Token{Word: t.Word, Lemma: t.Lemma, POS: t.POS, Dep: t.Dep,
			Left: left, Right: right}
	}
	rest := append(left, right...)
	if len(rest) == 0 {
		return nil
	}
	head := rest[0]
	promoted := &nlp.Token{Word: head.Word, Lemma: head.Lemma, POS: head.POS,
		Dep: t.Dep, Left: head.Left, Right: head.Right}
	for _, sibling := range rest[1:] {
		promoted.Right = append(promoted.Right, sibling)
	}
	return promoted
}

// trimmedPOS are word classes that carry no label content.
var trimmedPOS = map[nlp.POSTag]bool{
	nlp.POSAdp: true, nlp.POSAux: true, nlp.POSCconj: true, nlp.POSDet: true,
	nlp.POSIntj: true, nlp.POSPunct: true, nlp.POSSconj: true,
}

// trimmedDeps are relations whose dependents carry no label content.
var trimmedDeps = map[nlp.Dependency]bool{
	nlp.DepCase: true, nlp.DepCop: true, nlp.DepDet: true, nlp.DepAux: true,
	nlp.DepPunct: true, nlp.DepMark: true, nlp.DepCC: true,
}

func trimmedToken(t *nlp.Token) bool {
	return trimmedDeps[t.Dep.Base()] || trimmedPOS[t.POS]
}

// labelText returns the text of the tokens, joined in the given order.
// useLemma substitutes each word with its lemma.
func labelText(tokens []*nlp.Token, useLemma bool) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		w := tok.Word
		if useLemma && tok.Lemma != "" {
			w = tok.Lemma
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// trimEdges drops tokens carrying no label content from both ends. Interior
// ones stay: "date of birth" keeps its "of".
func trimEdges(tokens []*nlp.Token) []*nlp.Token {
	start, end := 0, len(tokens)
	for start < end && trimmedToken(tokens[start]) {
		start++
	}
	for end > start && trimmedToken(tokens[end-1]) {
		end--
	}
	return tokens[start:end]
}

// mainChildren filters out dependents that cannot name a relation or fill an
// argument slot on their own.
func mainChildren(tokens []*nlp.Token) []*nlp.Token {
	var out []*nlp.Token
	for _, tok := range tokens {
		if !trimmedToken(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// analysis carries the per-sentence state through the recursive descent.
type analysis struct {
	analyzer     *Analyzer
	language     string
	questionWord *lang.QuestionWord
}

// maxReadings bounds the number of readings produced for a single node, so
// that noun phrases with many modifiers cannot blow up combinatorially.
const maxReadings = 64

// nodeTerms returns the readings of the phrase rooted at t as unary
// Selects. A reading is either a direct match of the whole phrase against
// the knowledge base, a literal value, or a decomposition of the phrase
// into a relation applied to the readings of a modifier.
func (an *analysis) nodeTerms(ctx context.Context, t *nlp.Token, expected logic.Type) ([]*logic.Select, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label := labelText(trimEdges(t.Subtree()), false)
	if label == "" {
		return nil, nil
	}
	var results []*logic.Select

	// The whole phrase as an individual.
	individuals, err := an.analyzer.kb.IndividualsFromLabel(ctx, label, an.language, nil)
	if err != nil {
		return nil, err
	}
	for _, v := range individuals {
		if !v.Type().Intersects(expected) {
			continue
		}
		out := logic.FreshVariable()
		results = append(results, logic.NewSelect(logic.NewEquality(out, v), out))
	}

	// The whole phrase as a literal.
	if expected.Intersects(logic.LiteralType()) {
		for _, lit := range parseLiterals(label, an.language) {
			v := logic.NewValueFrom(lit, label)
			if !v.Type().Intersects(expected) {
				continue
			}
			out := logic.FreshVariable()
			results = append(results, logic.NewSelect(logic.NewEquality(out, v), out))
		}
	}

	decomposed, err := an.decompose(ctx, t)
	if err != nil {
		return nil, err
	}
	results = append(results, decomposed...)
	if len(results) > maxReadings {
		results = results[:maxReadings]
	}
	return dedupeSelects(results), nil
}

// decompose splits the phrase at t into a predicate span and argument
// subtrees, one reading per (span, assignment) pair. The span
// [start ... t ... end] names the relation; children outside the span fill
// its argument slots. Every left start and every right end is tried,
// including none on either side.
func (an *analysis) decompose(ctx context.Context, t *nlp.Token) ([]*logic.Select, error) {
	left := mainChildren(t.Left)
	right := mainChildren(t.Right)
	if len(left)+len(right) == 0 {
		return nil, nil
	}

	var results []*logic.Select
	for si := 0; si <= len(left); si++ {
		var start *nlp.Token
		if si < len(left) {
			start = left[si]
		}
		for ei := -1; ei < len(right); ei++ {
			var end *nlp.Token
			args := append([]*nlp.Token{}, left[:si]...)
			if ei >= 0 {
				end = right[ei]
				args = append(args, right[ei+1:]...)
			} else {
				args = append(args, right...)
			}
			if len(args) == 0 {
				continue
			}
			sels, err := an.decomposeSpan(ctx, t, start, end, args)
			if err != nil {
				return nil, err
			}
			results = append(results, sels...)
			if len(results) >= maxReadings {
				return results[:maxReadings], nil
			}
		}
	}
	return results, nil
}

// sameEntityDep reports dependents that name the same entity as their head,
// so they always join the predicate span.
func sameEntityDep(d nlp.Dependency) bool {
	return d.Extends(nlp.DepCompound) || d.Extends(nlp.DepFlat) ||
		d.Extends(nlp.DepFixed)
}

// spanTokens returns the label tokens of the predicate span
// [start ... t ... end] in sentence order, edge-trimmed. A compound, flat or
// fixed dependent widens the span on its side even when start or end does
// not reach it.
func spanTokens(t *nlp.Token, start, end *nlp.Token) []*nlp.Token {
	from := len(t.Left)
	for i, c := range t.Left {
		if c == start || sameEntityDep(c.Dep) {
			from = i
			break
		}
	}
	to := -1
	for i := len(t.Right) - 1; i >= 0; i-- {
		if c := t.Right[i]; c == end || sameEntityDep(c.Dep) {
			to = i
			break
		}
	}
	var tokens []*nlp.Token
	for _, c := range t.Left[from:] {
		tokens = append(tokens, c.Subtree()...)
	}
	tokens = append(tokens, t)
	for _, c := range t.Right[:to+1] {
		tokens = append(tokens, c.Subtree()...)
	}
	return trimEdges(tokens)
}

func (an *analysis) decomposeSpan(ctx context.Context, t *nlp.Token, start, end *nlp.Token, argChildren []*nlp.Token) ([]*logic.Select, error) {
	relations, err := an.predicateRelations(ctx, spanTokens(t, start, end))
	if err != nil {
		return nil, err
	}

	// Readings per argument child; a child with none kills the whole
	// assignment.
	perChild := make([][]func(out *logic.Variable) logic.Formula, len(argChildren))
	for i, child := range argChildren {
		options, err := an.argumentOptions(ctx, child, relations)
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			return nil, nil
		}
		perChild[i] = options
	}

	// Cartesian combination of the per-child readings.
	var results []*logic.Select
	indices := make([]int, len(perChild))
	for {
		out := logic.FreshVariable()
		parts := make([]logic.Formula, len(perChild))
		for i, j := range indices {
			parts[i] = perChild[i][j](out)
		}
		body := logic.NewAnd(parts...)
		if !logic.Equal(body, logic.False) {
			results = append(results, logic.NewSelect(body, out))
		}
		if len(results) >= maxReadings {
			return results, nil
		}
		i := len(indices) - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(perChild[i]) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return results, nil
		}
	}
}

// predicateRelations looks up the relations named by the span tokens. The
// question word's property patterns widen the search: "when did X die" also
// tries "die date".
func (an *analysis) predicateRelations(ctx context.Context, span []*nlp.Token) ([]*logic.Select, error) {
	labels := appendUnique(nil, labelText(span, false))
	labels = appendUnique(labels, labelText(span, true))
	if an.questionWord != nil {
		for _, pattern := range an.questionWord.PropertyPatterns {
			for _, base := range labels[:min(len(labels), 2)] {
				labels = appendUnique(labels, fmt.Sprintf(pattern, base))
			}
		}
	}
	var nonEmpty []string
	for _, l := range labels {
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil
	}
	return an.analyzer.kb.RelationsFromLabels(ctx, nonEmpty, an.language)
}

// argumentOptions returns the ways the child can constrain the node's
// output variable. A child whose dependency has no argument reading yields
// no options, which kills its assignment but not the node's other spans.
func (an *analysis) argumentOptions(ctx context.Context, child *nlp.Token, relations []*logic.Select) ([]func(out *logic.Variable) logic.Formula, error) {
	switch {
	case child.Dep == nlp.DepAmod:
		return an.typeOptions(ctx, child)
	case child.Dep.Extends(nlp.DepNsubj), child.Dep == nlp.DepAppos,
		child.Dep == nlp.DepObj, child.Dep.Base() == nlp.DepNmod:
	default:
		return nil, nil
	}
	transform, ok := an.caseTransform(child)
	if !ok {
		return nil, nil
	}
	argSels, err := an.nodeTerms(ctx, child, logic.Top())
	if err != nil {
		return nil, err
	}

	var options []func(out *logic.Variable) logic.Formula
	for _, rel := range relations {
		oriented := rel
		if child.Dep == nlp.DepObj {
			// "X wrote Y": Y fills the relation's object slot.
			oriented = rel.SwapArguments()
		}
		oriented = transform(oriented)
		if oriented == nil {
			continue
		}
		for _, argSel := range argSels {
			if !oriented.ArgType(0).Intersects(argSel.ArgType(0)) {
				continue
			}
			oriented, argSel := oriented, argSel
			options = append(options, func(out *logic.Variable) logic.Formula {
				av := logic.FreshVariable()
				return logic.NewExists(av, logic.NewAnd(
					argSel.BindFormula(av),
					oriented.BindFormula(av, out)))
			})
		}
	}
	return options, nil
}

// typeOptions reads an adjective modifier as a class constraint through the
// knowledge base's type relations: "French kings" keeps kings whose type
// chain reaches the reading of "French".
func (an *analysis) typeOptions(ctx context.Context, child *nlp.Token) ([]func(out *logic.Variable) logic.Formula, error) {
	argSels, err := an.nodeTerms(ctx, child, logic.EntityType())
	if err != nil {
		return nil, err
	}
	var options []func(out *logic.Variable) logic.Formula
	for _, typeRel := range an.analyzer.kb.TypeRelations() {
		for _, argSel := range argSels {
			if !typeRel.ArgType(1).Intersects(argSel.ArgType(0)) {
				continue
			}
			typeRel, argSel := typeRel, argSel
			options = append(options, func(out *logic.Variable) logic.Formula {
				tv := logic.FreshVariable()
				return logic.NewExists(tv, logic.NewAnd(
					typeRel.BindFormula(out, tv),
					argSel.BindFormula(tv)))
			})
		}
	}
	return options, nil
}

// caseTransform finds the child's case word and returns its relation
// transform. A child with no case word gets the implicit "of" reading; a
// child with several case words or an unknown one has no reading.
func (an *analysis) caseTransform(child *nlp.Token) (lang.CaseTransform, bool) {
	if child.Dep.Base() != nlp.DepNmod {
		return lang.ImplicitCaseWord().Transform, true
	}
	var caseWords []*nlp.Token
	for _, c := range child.Children() {
		if c.Dep.Base() == nlp.DepCase {
			caseWords = append(caseWords, c)
		}
	}
	switch len(caseWords) {
	case 0:
		return lang.ImplicitCaseWord().Transform, true
	case 1:
		cw := lang.CaseWordFromString(caseWords[0].Word, an.language)
		if cw == nil {
			return nil, false
		}
		return cw.Transform, true
	default:
		return nil, false
	}
}

// addDataFromQuestion appends the implicit hop a question word carries:
// for "when was X born", a reading of "X born" that is not already a date
// is extended through the knowledge base's date relations.
func (an *analysis) addDataFromQuestion(ctx context.Context, sel *logic.Select) ([]*logic.Select, error) {
	qw := an.questionWord
	if qw == nil || len(qw.DefaultProperties) == 0 {
		return []*logic.Select{sel}, nil
	}
	if sel.ArgType(0).IncludedIn(qw.ExpectedType) {
		return []*logic.Select{sel}, nil
	}
	relations, err := an.analyzer.kb.RelationsFromLabels(ctx, qw.DefaultProperties, an.language)
	if err != nil {
		return nil, err
	}
	var out []*logic.Select
	for _, rel := range relations {
		if !rel.ArgType(1).Intersects(qw.ExpectedType) {
			continue
		}
		if !rel.ArgType(0).Intersects(sel.ArgType(0)) {
			continue
		}
		y := logic.FreshVariable()
		x := logic.FreshVariable()
		body := logic.NewExists(x, logic.NewAnd(
			sel.BindFormula(x), rel.BindFormula(x, y)))
		if logic.Equal(body, logic.False) {
			continue
		}
		out = append(out, logic.NewSelect(body, y))
	}
	if len(out) == 0 {
		return []*logic.Select{sel}, nil
	}
	return out, nil
}

func dedupeSelects(sels []*logic.Select) []*logic.Select {
	seen := make(map[string]bool, len(sels))
	out := sels[:0]
	for _, sel := range sels {
		key := logic.KeyString(sel)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sel)
	}
	return out
}

func appendUnique(labels []string, label string) []string {
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
