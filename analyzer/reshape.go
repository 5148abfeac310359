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
	"strings"

	"github.com/askgraph/askgraph/nlp"
)

// maxReshapings bounds the number of tree variants explored per sentence.
const maxReshapings = 64

// reshapings returns the tree itself plus variants with alternative noun
// modifier attachments. Parsers routinely hang "of America" off "United
// States" when the question meant it to modify the head noun; promoting a
// nested nmod to its grandparent recovers that reading. Variants are
// deduplicated by shape.
func reshapings(root *nlp.Token) []*nlp.Token {
	variants := []*nlp.Token{root}
	seen := map[string]bool{shape(root): true}
	for i := 0; i < len(variants) && len(variants) < maxReshapings; i++ {
		for _, v := range promoteNestedNmods(variants[i]) {
			sig := shape(v)
			if seen[sig] {
				continue
			}
			seen[sig] = true
			variants = append(variants, v)
			if len(variants) >= maxReshapings {
				break
			}
		}
	}
	return variants
}

// promoteNestedNmods returns one variant per nmod grandchild that can move
// up to the root: for each nmod child of root carrying its own rightmost
// nmod dependent, the grandchild is reattached to root.
func promoteNestedNmods(root *nlp.Token) []*nlp.Token {
	var variants []*nlp.Token
	for ci, child := range root.Right {
		if child.Dep.Base() != nlp.DepNmod {
			continue
		}
		for gi := len(child.Right) - 1; gi >= 0; gi-- {
			grandchild := child.Right[gi]
			if grandchild.Dep.Base() != nlp.DepNmod {
				continue
			}
			newChild := &nlp.Token{Word: child.Word, Lemma: child.Lemma,
				POS: child.POS, Dep: child.Dep, Left: child.Left,
				Right: remove(child.Right, gi)}
			newRight := append([]*nlp.Token{}, root.Right...)
			newRight[ci] = newChild
			newRight = append(newRight, grandchild)
			variants = append(variants, &nlp.Token{Word: root.Word,
				Lemma: root.Lemma, POS: root.POS, Dep: root.Dep,
				Left: root.Left, Right: newRight})
			// Only the rightmost nested nmod moves; deeper moves come
			// from reshaping the variant again.
			break
		}
	}
	return variants
}

func remove(tokens []*nlp.Token, i int) []*nlp.Token {
	out := make([]*nlp.Token, 0, len(tokens)-1)
	out = append(out, tokens[:i]...)
	return append(out, tokens[i+1:]...)
}

// shape serializes the tree structure for deduplication.
func shape(t *nlp.Token) string {
	var b strings.Builder
	var walk func(tok *nlp.Token)
	walk = func(tok *nlp.Token) {
		b.WriteByte('(')
		b.WriteString(tok.Word)
		b.WriteByte('/')
		b.WriteString(string(tok.Dep))
		for _, c := range tok.Left {
			b.WriteByte('<')
			walk(c)
		}
		for _, c := range tok.Right {
			b.WriteByte('>')
			walk(c)
		}
		b.WriteByte(')')
	}
	walk(t)
	return b.String()
}
