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
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LabelMatches reports whether the queried label matches a reference label.
// Comparison is case-insensitive. One edit of slack is allowed, but only
// when the reference is at least three runes long, so that short labels
// like "RA" never match "R2".
func LabelMatches(queried, reference string) bool {
	q := strings.ToLower(queried)
	r := strings.ToLower(reference)
	if q == r {
		return true
	}
	if utf8.RuneCountInString(reference) < 3 {
		return false
	}
	return fuzzy.LevenshteinDistance(q, r) <= 1
}

// MatchLabels returns the candidates matching the queried label. Exact
// matches win: when any candidate matches exactly, near matches are
// dropped. Candidate order is preserved.
func MatchLabels(queried string, candidates []string) []string {
	q := strings.ToLower(queried)
	var exact, near []string
	for _, c := range candidates {
		if strings.ToLower(c) == q {
			exact = append(exact, c)
		} else if LabelMatches(queried, c) {
			near = append(near, c)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return near
}
