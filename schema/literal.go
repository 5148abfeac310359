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

package schema

import (
	"fmt"
	"strconv"
)

// A Literal is a typed literal resource.
type Literal interface {
	Resource
	// LexicalForm returns the literal's lexical value, without quoting or
	// datatype annotation.
	LexicalForm() string
	// Datatype returns the literal's datatype.
	Datatype() *Datatype
}

var _ = []Literal{
	(*StringLiteral)(nil),
	(*LangStringLiteral)(nil),
	(*BooleanLiteral)(nil),
	(*IntegerLiteral)(nil),
	(*DecimalLiteral)(nil),
	(*DoubleLiteral)(nil),
	(*DateTimeLiteral)(nil),
	(*DateLiteral)(nil),
	(*GYearMonthLiteral)(nil),
	(*GYearLiteral)(nil),
	(*AnyURILiteral)(nil),
	(*TypedLiteral)(nil),
}

// A StringLiteral is an xsd:string literal.
type StringLiteral struct {
	Value string
}

func (l *StringLiteral) LexicalForm() string { return l.Value }
func (l *StringLiteral) Datatype() *Datatype { return XSDString }
func (l *StringLiteral) String() string      { return strconv.Quote(l.Value) }

// A LangStringLiteral is an rdf:langString literal, a string tagged with a
// language code.
type LangStringLiteral struct {
	Value    string
	Language string
}

func (l *LangStringLiteral) LexicalForm() string { return l.Value }
func (l *LangStringLiteral) Datatype() *Datatype { return RDFLangString }
func (l *LangStringLiteral) String() string {
	return strconv.Quote(l.Value) + "@" + l.Language
}

// A BooleanLiteral is an xsd:boolean literal.
type BooleanLiteral struct {
	Value bool
}

func (l *BooleanLiteral) LexicalForm() string { return strconv.FormatBool(l.Value) }
func (l *BooleanLiteral) Datatype() *Datatype { return XSDBoolean }
func (l *BooleanLiteral) String() string      { return l.LexicalForm() }

// An IntegerLiteral is an xsd:integer literal.
type IntegerLiteral struct {
	Value int64
}

func (l *IntegerLiteral) LexicalForm() string { return strconv.FormatInt(l.Value, 10) }
func (l *IntegerLiteral) Datatype() *Datatype { return XSDInteger }
func (l *IntegerLiteral) String() string      { return l.LexicalForm() }

// A DecimalLiteral is an xsd:decimal literal. The lexical form is kept as
// given, no numeric normalization is applied.
type DecimalLiteral struct {
	Lexical string
}

func (l *DecimalLiteral) LexicalForm() string { return l.Lexical }
func (l *DecimalLiteral) Datatype() *Datatype { return XSDDecimal }
func (l *DecimalLiteral) String() string      { return l.Lexical }

// A DoubleLiteral is an xsd:double literal.
type DoubleLiteral struct {
	Value float64
}

func (l *DoubleLiteral) LexicalForm() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}
func (l *DoubleLiteral) Datatype() *Datatype { return XSDDouble }
func (l *DoubleLiteral) String() string      { return annotated(l) }

// A DateTimeLiteral is an xsd:dateTime literal in UTC.
type DateTimeLiteral struct {
	Year                 int
	Month, Day           int
	Hour, Minute, Second int
}

func (l *DateTimeLiteral) LexicalForm() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
		l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second)
}
func (l *DateTimeLiteral) Datatype() *Datatype { return XSDDateTime }
func (l *DateTimeLiteral) String() string      { return annotated(l) }

// A DateLiteral is an xsd:date literal.
type DateLiteral struct {
	Year       int
	Month, Day int
}

func (l *DateLiteral) LexicalForm() string {
	return fmt.Sprintf("%04d-%02d-%02d", l.Year, l.Month, l.Day)
}
func (l *DateLiteral) Datatype() *Datatype { return XSDDate }
func (l *DateLiteral) String() string      { return annotated(l) }

// A GYearMonthLiteral is an xsd:gYearMonth literal.
type GYearMonthLiteral struct {
	Year  int
	Month int
}

func (l *GYearMonthLiteral) LexicalForm() string {
	return fmt.Sprintf("%04d-%02d", l.Year, l.Month)
}
func (l *GYearMonthLiteral) Datatype() *Datatype { return XSDGYearMonth }
func (l *GYearMonthLiteral) String() string      { return annotated(l) }

// A GYearLiteral is an xsd:gYear literal.
type GYearLiteral struct {
	Year int
}

func (l *GYearLiteral) LexicalForm() string { return fmt.Sprintf("%04d", l.Year) }
func (l *GYearLiteral) Datatype() *Datatype { return XSDGYear }
func (l *GYearLiteral) String() string      { return annotated(l) }

// An AnyURILiteral is an xsd:anyURI literal.
type AnyURILiteral struct {
	Value string
}

func (l *AnyURILiteral) LexicalForm() string { return l.Value }
func (l *AnyURILiteral) Datatype() *Datatype { return XSDAnyURI }
func (l *AnyURILiteral) String() string      { return annotated(l) }

// A TypedLiteral is a literal of an arbitrary datatype, used for datatypes
// with no dedicated representation here.
type TypedLiteral struct {
	Lexical string
	Type    *Datatype
}

func (l *TypedLiteral) LexicalForm() string { return l.Lexical }
func (l *TypedLiteral) Datatype() *Datatype { return l.Type }
func (l *TypedLiteral) String() string      { return annotated(l) }

func annotated(l Literal) string {
	return strconv.Quote(l.LexicalForm()) + "^^<" + l.Datatype().IRI() + ">"
}

func literalJSONLD(l Literal) map[string]interface{} {
	return map[string]interface{}{
		"@value": l.LexicalForm(),
		"@type":  l.Datatype().IRI(),
	}
}

func (l *StringLiteral) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@value": l.Value}
}

func (l *LangStringLiteral) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@value": l.Value, "@language": l.Language}
}

func (l *BooleanLiteral) JSONLD() map[string]interface{}    { return literalJSONLD(l) }
func (l *IntegerLiteral) JSONLD() map[string]interface{}    { return literalJSONLD(l) }
func (l *DecimalLiteral) JSONLD() map[string]interface{}    { return literalJSONLD(l) }
func (l *DoubleLiteral) JSONLD() map[string]interface{}     { return literalJSONLD(l) }
func (l *DateTimeLiteral) JSONLD() map[string]interface{}   { return literalJSONLD(l) }
func (l *DateLiteral) JSONLD() map[string]interface{}       { return literalJSONLD(l) }
func (l *GYearMonthLiteral) JSONLD() map[string]interface{} { return literalJSONLD(l) }
func (l *GYearLiteral) JSONLD() map[string]interface{}      { return literalJSONLD(l) }
func (l *AnyURILiteral) JSONLD() map[string]interface{}     { return literalJSONLD(l) }
func (l *TypedLiteral) JSONLD() map[string]interface{}      { return literalJSONLD(l) }

func (l *StringLiteral) aResource()     {}
func (l *LangStringLiteral) aResource() {}
func (l *BooleanLiteral) aResource()    {}
func (l *IntegerLiteral) aResource()    {}
func (l *DecimalLiteral) aResource()    {}
func (l *DoubleLiteral) aResource()     {}
func (l *DateTimeLiteral) aResource()   {}
func (l *DateLiteral) aResource()       {}
func (l *GYearMonthLiteral) aResource() {}
func (l *GYearLiteral) aResource()      {}
func (l *AnyURILiteral) aResource()     {}
func (l *TypedLiteral) aResource()      {}
