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
	"fmt"
	"strconv"
	"strings"

	"github.com/vektah/goparsify"

	"github.com/askgraph/askgraph/schema"
)

// fixedLengthInt parses an integer of up to the given number of digits.
func fixedLengthInt(length int) goparsify.Parser {
	description := fmt.Sprintf("fixedLengthInt:%d", length)
	return goparsify.NewParser(description, func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		maxPos := ps.Pos
		end := len(ps.Input)
		for i := 0; i < length; i++ {
			if maxPos < end && ps.Input[maxPos] >= '0' && ps.Input[maxPos] <= '9' {
				maxPos++
			}
		}
		var err error
		node.Result, err = strconv.Atoi(ps.Input[ps.Pos:maxPos])
		if err != nil {
			ps.ErrorHere(description)
			return
		}
		ps.Pos = maxPos
	})
}

var monthNames = map[string]map[string]int{
	"en": {
		"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
		"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
		"november": 11, "december": 12,
	},
	"fr": {
		"janvier": 1, "février": 2, "mars": 3, "avril": 4, "mai": 5,
		"juin": 6, "juillet": 7, "août": 8, "septembre": 9, "octobre": 10,
		"novembre": 11, "décembre": 12,
	},
}

// monthName matches a month name of the given language, case-insensitively.
func monthName(language string) goparsify.Parser {
	months := monthNames[language]
	return goparsify.NewParser("month", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		end := 0
		for end < len(in) && (in[end] >= 'a' && in[end] <= 'z' ||
			in[end] >= 'A' && in[end] <= 'Z' || in[end] >= 0x80) {
			end++
		}
		if m, ok := months[strings.ToLower(in[:end])]; ok {
			node.Result = m
			ps.Advance(end)
			return
		}
		ps.ErrorHere("month")
	})
}

// literalParser builds the parser recognizing the literal values a question
// can carry inline: dates in ISO or spelled-out form, years, numbers, and
// booleans. Every alternative yields a []schema.Literal; ambiguous text like
// a four-digit number yields one literal per reading.
func literalParser(language string) goparsify.Parser {
	year4 := fixedLengthInt(4)
	int2 := fixedLengthInt(2)

	isoDate := goparsify.Seq(year4, "-", int2, "-", int2).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.DateLiteral{
			Year:  n.Child[0].Result.(int),
			Month: n.Child[2].Result.(int),
			Day:   n.Child[4].Result.(int),
		}}
	})
	isoYearMonth := goparsify.Seq(year4, "-", int2).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.GYearMonthLiteral{
			Year:  n.Child[0].Result.(int),
			Month: n.Child[2].Result.(int),
		}}
	})

	month := monthName(language)
	// "14 July 1789"
	dayMonthYear := goparsify.Seq(int2, month, year4).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.DateLiteral{
			Year:  n.Child[2].Result.(int),
			Month: n.Child[1].Result.(int),
			Day:   n.Child[0].Result.(int),
		}}
	})
	// "July 14, 1789"
	monthDayYear := goparsify.Seq(month, int2, goparsify.Maybe(","), year4).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.DateLiteral{
			Year:  n.Child[3].Result.(int),
			Month: n.Child[0].Result.(int),
			Day:   n.Child[1].Result.(int),
		}}
	})
	// "July 1789"
	monthYear := goparsify.Seq(month, year4).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.GYearMonthLiteral{
			Year:  n.Child[1].Result.(int),
			Month: n.Child[0].Result.(int),
		}}
	})

	number := goparsify.NumberLit().Map(func(n *goparsify.Result) {
		switch v := n.Result.(type) {
		case int64:
			literals := []schema.Literal{&schema.IntegerLiteral{Value: v}}
			// A four digit integer also reads as a year.
			if v >= 1000 && v <= 2999 {
				literals = append(literals, &schema.GYearLiteral{Year: int(v)})
			}
			n.Result = literals
		case float64:
			n.Result = []schema.Literal{&schema.DoubleLiteral{Value: v}}
		}
	})

	boolean := goparsify.Any(goparsify.Exact("true"), goparsify.Exact("false")).Map(func(n *goparsify.Result) {
		n.Result = []schema.Literal{&schema.BooleanLiteral{Value: n.Token == "true"}}
	})

	return goparsify.Any(isoDate, isoYearMonth, dayMonthYear, monthDayYear, monthYear, boolean, number)
}

var literalParsers = map[string]goparsify.Parser{
	"en": literalParser("en"),
	"fr": literalParser("fr"),
	"de": literalParser("en"),
	"es": literalParser("en"),
}

// parseLiterals returns the literal readings of text, or nil when the text
// is not a literal. The whole text must be consumed.
func parseLiterals(text, language string) []schema.Literal {
	parser, ok := literalParsers[language]
	if !ok {
		parser = literalParsers["en"]
	}
	result, err := goparsify.Run(parser, text)
	if err != nil {
		return nil
	}
	literals, ok := result.([]schema.Literal)
	if !ok {
		return nil
	}
	return literals
}
