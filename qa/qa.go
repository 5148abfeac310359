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

// Package qa runs the question answering pipeline: parse the question,
// analyze it into candidate logic terms, evaluate the candidates against
// the knowledge base, and pick the winning interpretations.
package qa

import (
	"context"
	"errors"
	"time"

	"github.com/google/btree"
	"github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"

	"github.com/askgraph/askgraph/analyzer"
	"github.com/askgraph/askgraph/kb"
	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/nlp"
	"github.com/askgraph/askgraph/util/clocks"
	"github.com/askgraph/askgraph/util/parallel"
	"github.com/askgraph/askgraph/util/tracing"
)

// Options configures a Service. The zero value picks sensible defaults.
type Options struct {
	// Timeout bounds the wall-clock time spent on a single question,
	// including parsing and knowledge-base evaluation. Defaults to 15s.
	Timeout time.Duration
	// Parallelism bounds concurrent knowledge-base evaluations for one
	// question. Defaults to 8.
	Parallelism int
	// AllInterpretations reports every interpretation at least as good
	// as the best non-empty one, rather than just the winner.
	AllInterpretations bool
	// Clock is the time source, settable for tests. Defaults to
	// clocks.Wall.
	Clock clocks.Source
}

const (
	defaultTimeout     = 15 * time.Second
	defaultParallelism = 8
)

// A Service answers natural-language questions. It is safe for concurrent
// use; each question gets its own fresh analysis.
type Service struct {
	analyzer *analyzer.Analyzer
	kb       kb.KnowledgeBase
	options  Options
}

// New returns a Service answering questions with the given parser and
// knowledge base.
func New(parser nlp.Parser, knowledgeBase kb.KnowledgeBase, options Options) *Service {
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeout
	}
	if options.Parallelism <= 0 {
		options.Parallelism = defaultParallelism
	}
	if options.Clock == nil {
		options.Clock = clocks.Wall
	}
	return &Service{
		analyzer: analyzer.New(parser, knowledgeBase),
		kb:       knowledgeBase,
		options:  options,
	}
}

// Answer maps the question to logic terms and evaluates them, returning the
// winning interpretations, best first. language is a BCP 47 code; when empty
// or "und" the language is guessed from the question text. An empty result
// means the question produced no reading with any results, or ran out of
// time before producing one. Evaluation
// failures of individual candidates are logged and skipped, they never fail
// the whole question.
func (s *Service) Answer(ctx context.Context, question, language string) ([]*kb.Interpretation, error) {
	if language == "" || language == "und" {
		language = DetectLanguage(question)
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "qa.Answer")
	span.SetTag("language", language)
	defer span.Finish()
	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	start := s.options.Clock.Now()
	defer func() {
		metrics.requestDuration.WithLabelValues(language).
			Observe(s.options.Clock.Now().Sub(start).Seconds())
	}()
	metrics.questions.WithLabelValues(language).Inc()

	candidates, err := s.Candidates(ctx, question, language)
	if err != nil {
		// A deadline during analysis means an empty answer, like a deadline
		// during evaluation, never a failed question.
		if errors.Is(err, context.DeadlineExceeded) {
			log.WithFields(log.Fields{
				"question": question,
				"timeout":  s.options.Timeout,
			}).Warn("Question timed out during analysis, returning no results")
			return nil, nil
		}
		return nil, err
	}
	interpretations := s.evaluate(ctx, candidates)
	if ctx.Err() == context.DeadlineExceeded {
		log.WithFields(log.Fields{
			"question": question,
			"timeout":  s.options.Timeout,
		}).Warn("Question timed out, returning partial results")
	}
	return s.pick(interpretations), nil
}

// Candidates produces the candidate terms for the question, ordered by
// descending score with alpha-equivalence keys breaking ties. The order
// makes answers deterministic across runs.
func (s *Service) Candidates(ctx context.Context, question, language string) ([]*logic.Select, error) {
	if language == "" || language == "und" {
		language = DetectLanguage(question)
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "qa.candidates")
	defer span.Finish()
	sels, err := s.analyzer.Analyze(ctx, question, language)
	if err != nil {
		return nil, err
	}
	tree := btree.NewG(8, func(a, b *ranked) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		return a.key < b.key
	})
	for _, sel := range sels {
		tree.ReplaceOrInsert(&ranked{
			sel:   sel,
			score: sel.Score(),
			key:   logic.KeyString(sel),
		})
	}
	ordered := make([]*logic.Select, 0, tree.Len())
	tree.Ascend(func(item *ranked) bool {
		ordered = append(ordered, item.sel)
		return true
	})
	return ordered, nil
}

type ranked struct {
	sel   *logic.Select
	score int
	key   string
}

// evaluate runs the candidates against the knowledge base with bounded
// parallelism. The result slice is aligned with candidates; a nil entry
// means the candidate failed to evaluate.
func (s *Service) evaluate(ctx context.Context, candidates []*logic.Select) []*kb.Interpretation {
	span, ctx := opentracing.StartSpanFromContext(ctx, "qa.evaluate")
	tracing.UpdateMetric(span, metrics.evaluationSeconds)
	defer span.Finish()
	out := make([]*kb.Interpretation, len(candidates))
	_ = parallel.InvokeNBounded(ctx, len(candidates), s.options.Parallelism,
		func(ctx context.Context, i int) error {
			interpretation, err := kb.BuildInterpretation(ctx, s.kb, candidates[i])
			if err != nil {
				metrics.evaluationFailures.Inc()
				log.WithFields(log.Fields{
					"term":  candidates[i],
					"error": err,
				}).Warn("Could not evaluate candidate term")
				return nil
			}
			out[i] = interpretation
			return nil
		})
	return out
}

// pick applies the winning policy to interpretations ordered best first:
// the first one with results wins. In AllInterpretations mode every
// interpretation scoring at least as well as the winner is kept.
func (s *Service) pick(interpretations []*kb.Interpretation) []*kb.Interpretation {
	winner := -1
	for i, in := range interpretations {
		if in != nil && len(in.Results) > 0 {
			winner = i
			break
		}
	}
	if winner == -1 {
		return nil
	}
	if !s.options.AllInterpretations {
		return []*kb.Interpretation{interpretations[winner]}
	}
	floor := interpretations[winner].Score()
	var out []*kb.Interpretation
	for _, in := range interpretations {
		if in != nil && in.Score() >= floor {
			out = append(out, in)
		}
	}
	return out
}
