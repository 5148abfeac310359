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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// A CoreNLPParser talks to a CoreNLP-protocol dependency parsing server. The
// server is expected to annotate with Universal Dependencies tags and
// relations.
type CoreNLPParser struct {
	serverURL string
	languages map[string]bool
	client    *http.Client
}

// NewCoreNLPParser returns a parser backed by the server at serverURL,
// accepting the given language codes.
func NewCoreNLPParser(serverURL string, languages []string, client *http.Client) *CoreNLPParser {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	supported := make(map[string]bool, len(languages))
	for _, l := range languages {
		supported[l] = true
	}
	return &CoreNLPParser{serverURL: serverURL, languages: supported, client: client}
}

// Wire shapes of the CoreNLP JSON output.
type corenlpResponse struct {
	Sentences []corenlpSentence `json:"sentences"`
}

type corenlpSentence struct {
	Tokens       []corenlpToken      `json:"tokens"`
	Dependencies []corenlpDependency `json:"basicDependencies"`
}

type corenlpToken struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

type corenlpDependency struct {
	Dep       string `json:"dep"`
	Governor  int    `json:"governor"`
	Dependent int    `json:"dependent"`
}

// Parse implements Parser.Parse.
func (p *CoreNLPParser) Parse(ctx context.Context, text, languageCode string) ([]*Sentence, error) {
	if !p.languages[languageCode] {
		return nil, ErrLanguageNotSupported
	}
	properties := fmt.Sprintf(
		`{"annotators":"tokenize,ssplit,pos,lemma,depparse","outputFormat":"json","pipelineLanguage":%q}`,
		languageCode)
	reqURL := p.serverURL + "?properties=" + url.QueryEscape(properties)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL,
		bytes.NewReader([]byte(text)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlp: parsing request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlp: parsing server returned %s", resp.Status)
	}
	var decoded corenlpResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("nlp: decoding parse response: %w", err)
	}
	sentences := make([]*Sentence, 0, len(decoded.Sentences))
	for _, s := range decoded.Sentences {
		root, err := buildTree(s)
		if err != nil {
			log.WithFields(log.Fields{
				"language": languageCode,
				"error":    err,
			}).Warn("Skipping unparseable sentence")
			continue
		}
		sentences = append(sentences, &Sentence{Root: root})
	}
	return sentences, nil
}

// buildTree assembles a Token tree from the flat token and dependency lists.
// Token indices are 1-based; governor 0 marks the root.
func buildTree(s corenlpSentence) (*Token, error) {
	tokens := make(map[int]*Token, len(s.Tokens))
	for _, t := range s.Tokens {
		pos, err := POSTagFromString(t.POS)
		if err != nil {
			pos = POSX
		}
		tokens[t.Index] = &Token{Word: t.Word, Lemma: t.Lemma, POS: pos}
	}
	var rootIndex int
	type edge struct{ governor, dependent int }
	var edges []edge
	for _, d := range s.Dependencies {
		tok := tokens[d.Dependent]
		if tok == nil {
			return nil, fmt.Errorf("dependency references missing token %d", d.Dependent)
		}
		dep, err := DependencyFromString(d.Dep)
		if err != nil {
			dep = DepDep
		}
		tok.Dep = dep
		if d.Governor == 0 {
			rootIndex = d.Dependent
			continue
		}
		edges = append(edges, edge{d.Governor, d.Dependent})
	}
	if rootIndex == 0 {
		return nil, fmt.Errorf("sentence has no root")
	}
	// Attach dependents in sentence order.
	sort.Slice(edges, func(i, j int) bool { return edges[i].dependent < edges[j].dependent })
	for _, e := range edges {
		head := tokens[e.governor]
		if head == nil {
			return nil, fmt.Errorf("dependency references missing token %d", e.governor)
		}
		child := tokens[e.dependent]
		if e.dependent < e.governor {
			head.Left = append(head.Left, child)
		} else {
			head.Right = append(head.Right, child)
		}
	}
	return tokens[rootIndex], nil
}
