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

// Package lang holds the static per-language lexicons the analyzer consumes:
// interrogative words, case (preposition) words with their relation
// transforms, and per-language lists of meaningless root words. The tables
// are process-wide constants; lookups are case-insensitive and return nil on
// a miss.
package lang

import (
	"strings"

	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/schema"
)

// A QuestionWord describes an interrogative word or phrase.
type QuestionWord struct {
	// Words is the surface form, lowercase.
	Words string
	// ExpectedType restricts the type of the answers.
	ExpectedType logic.Type
	// PropertyPatterns are relation-label templates tried in addition to
	// the bare predicate label, with the predicate label substituted for
	// the %s verb: "when did X die" looks for "death date".
	PropertyPatterns []string
	// DefaultProperties are relation labels for the implicit extra hop
	// the question word carries: "when" implies a "date" hop when the
	// structurally resolved term is not already calendar-typed.
	DefaultProperties []string
}

func openQuestionWord(words string) *QuestionWord {
	return &QuestionWord{Words: words, ExpectedType: logic.Top()}
}

func entityQuestionWord(words string) *QuestionWord {
	return &QuestionWord{Words: words, ExpectedType: logic.EntityType()}
}

func calendarQuestionWord(words string, properties ...string) *QuestionWord {
	patterns := make([]string, len(properties))
	for i, p := range properties {
		patterns[i] = "%s " + p
	}
	return &QuestionWord{
		Words:             words,
		ExpectedType:      logic.FromDatatype(schema.Calendar),
		PropertyPatterns:  patterns,
		DefaultProperties: properties,
	}
}

func numericQuestionWord(words string, properties ...string) *QuestionWord {
	return &QuestionWord{
		Words:             words,
		ExpectedType:      logic.FromDatatype(schema.Numeric),
		DefaultProperties: properties,
	}
}

func placeQuestionWord(words string, properties ...string) *QuestionWord {
	patterns := make([]string, len(properties))
	for i, p := range properties {
		patterns[i] = "%s " + p
	}
	return &QuestionWord{
		Words:             words,
		ExpectedType:      logic.EntityType(),
		PropertyPatterns:  patterns,
		DefaultProperties: properties,
	}
}

var questionWords = map[string][]*QuestionWord{
	"en": {
		entityQuestionWord("who"),
		entityQuestionWord("whom"),
		openQuestionWord("what"),
		openQuestionWord("which"),
		calendarQuestionWord("when", "date", "time"),
		placeQuestionWord("where", "place", "location"),
		numericQuestionWord("how many", "number", "quantity"),
		numericQuestionWord("how much", "amount", "quantity"),
	},
	"fr": {
		entityQuestionWord("qui"),
		openQuestionWord("que"),
		openQuestionWord("quoi"),
		openQuestionWord("quel"),
		openQuestionWord("quelle"),
		openQuestionWord("quels"),
		openQuestionWord("quelles"),
		calendarQuestionWord("quand", "date"),
		placeQuestionWord("où", "lieu", "endroit"),
		numericQuestionWord("combien", "nombre", "quantité"),
		numericQuestionWord("combien de", "nombre", "quantité"),
	},
	"de": {
		entityQuestionWord("wer"),
		entityQuestionWord("wen"),
		entityQuestionWord("wem"),
		openQuestionWord("was"),
		openQuestionWord("welche"),
		openQuestionWord("welcher"),
		openQuestionWord("welches"),
		calendarQuestionWord("wann", "datum"),
		placeQuestionWord("wo", "ort"),
		numericQuestionWord("wie viele", "anzahl"),
	},
	"es": {
		entityQuestionWord("quién"),
		entityQuestionWord("quiénes"),
		openQuestionWord("qué"),
		openQuestionWord("cuál"),
		openQuestionWord("cuáles"),
		calendarQuestionWord("cuándo", "fecha"),
		placeQuestionWord("dónde", "lugar"),
		numericQuestionWord("cuántos", "número"),
		numericQuestionWord("cuántas", "número"),
	},
}

// QuestionWordFromString returns the question word for the given surface
// form and language, or nil when there is none.
func QuestionWordFromString(words, languageCode string) *QuestionWord {
	needle := strings.ToLower(strings.TrimSpace(words))
	for _, qw := range questionWords[languageCode] {
		if qw.Words == needle {
			return qw
		}
	}
	return nil
}
