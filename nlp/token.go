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
	"context"
	"errors"
	"strings"
)

// A Token is a node of a dependency-parse tree. Dep is the relation to the
// token's head; Left and Right hold the dependents before and after the
// token in sentence order. Tokens are treated as immutable once built: the
// analyzer derives reshaped trees by building new tokens.
type Token struct {
	Word  string
	Lemma string
	POS   POSTag
	Dep   Dependency
	Left  []*Token
	Right []*Token
}

// Children returns the dependents in sentence order.
func (t *Token) Children() []*Token {
	out := make([]*Token, 0, len(t.Left)+len(t.Right))
	out = append(out, t.Left...)
	return append(out, t.Right...)
}

// Subtree returns the token and all its descendants in sentence order.
func (t *Token) Subtree() []*Token {
	var out []*Token
	for _, child := range t.Left {
		out = append(out, child.Subtree()...)
	}
	out = append(out, t)
	for _, child := range t.Right {
		out = append(out, child.Subtree()...)
	}
	return out
}

func (t *Token) String() string {
	return t.Word
}

// A Sentence is one parsed sentence.
type Sentence struct {
	Root *Token
}

func (s *Sentence) String() string {
	words := make([]string, 0, 8)
	for _, t := range s.Root.Subtree() {
		words = append(words, t.Word)
	}
	return strings.Join(words, " ")
}

// ErrLanguageNotSupported is returned by parsers asked for a language they
// cannot parse.
var ErrLanguageNotSupported = errors.New("nlp: language not supported")

// A Parser turns question text into dependency-parse trees. Implementations
// wrap external parsing services and must be safe for concurrent use.
type Parser interface {
	Parse(ctx context.Context, text, languageCode string) ([]*Sentence, error)
}
