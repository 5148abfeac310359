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

package qa

import (
	"strings"
	"unicode"
)

// Function words that are frequent in questions and rarely shared across
// these languages. Ambiguous words (es/fr "que", en/fr "a") are left out.
var stopwords = map[string][]string{
	"en": {"who", "what", "when", "where", "which", "how", "is", "are",
		"was", "were", "the", "of", "did", "does", "do", "many", "much"},
	"fr": {"qui", "quand", "quel", "quelle", "quels", "quelles", "est",
		"sont", "le", "la", "les", "du", "des", "où", "combien", "quoi"},
	"de": {"wer", "was", "wann", "wo", "welche", "welcher", "welches",
		"ist", "sind", "der", "die", "das", "des", "von", "wie", "viele"},
	"es": {"quién", "quiénes", "cuándo", "dónde", "cuál", "cuáles", "es",
		"son", "el", "los", "las", "del", "cuántos", "cuántas", "cómo"},
}

// DetectLanguage guesses the language of the question text by counting
// per-language function words. Ties and unknown text fall back to English.
func DetectLanguage(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	best, bestCount := "en", 0
	for _, language := range []string{"en", "fr", "de", "es"} {
		count := 0
		for _, word := range words {
			for _, stopword := range stopwords[language] {
				if word == stopword {
					count++
					break
				}
			}
		}
		if count > bestCount {
			best, bestCount = language, count
		}
	}
	return best
}
