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

// Package logic implements the typed formula algebra: a lattice of semantic
// types over entity classes and literal datatypes, and a closed sum type of
// logical formulas with self-normalizing constructors. All values are
// immutable and safe to share across goroutines.
package logic

import (
	"sort"
	"strings"

	"github.com/askgraph/askgraph/schema"
)

// A Type is an element of the semantic type lattice. It is a union of
// intersections of entity classes plus a union of intersections of literal
// datatypes, kept in canonical simplified form by every operation.
//
// Canonical bottom is the union {{owl:Nothing}} on the entity dimension and
// the empty union on the literal dimension.
type Type struct {
	entity  []classSet
	literal []datatypeSet
}

type classSet []*schema.Class       // an intersection, sorted by IRI
type datatypeSet []*schema.Datatype // an intersection, sorted by IRI

var (
	topType = Type{
		entity:  []classSet{{schema.OWLThing}},
		literal: []datatypeSet{{schema.RDFSLiteral}},
	}
	bottomType = Type{
		entity:  []classSet{{schema.OWLNothing}},
		literal: nil,
	}
)

// Top returns the greatest type: any entity or any literal.
func Top() Type {
	return topType
}

// Bottom returns the least type, with no possible values.
func Bottom() Type {
	return bottomType
}

// FromClass lifts a single entity class into an atomic type.
func FromClass(c *schema.Class) Type {
	return Type{entity: simplifyClassUnion([]classSet{{c}})}
}

// FromDatatype lifts a single literal datatype into an atomic type.
func FromDatatype(d *schema.Datatype) Type {
	return Type{
		entity:  bottomType.entity,
		literal: simplifyDatatypeUnion([]datatypeSet{{d}}),
	}
}

// FromNode lifts a schema type node (class or datatype) into an atomic type.
func FromNode(n schema.TypeNode) Type {
	switch n := n.(type) {
	case *schema.Class:
		return FromClass(n)
	case *schema.Datatype:
		return FromDatatype(n)
	}
	return Bottom()
}

// Union returns the least upper bound of t and o.
func (t Type) Union(o Type) Type {
	return Type{
		entity:  simplifyClassUnion(append(append([]classSet{}, t.entity...), o.entity...)),
		literal: simplifyDatatypeUnion(append(append([]datatypeSet{}, t.literal...), o.literal...)),
	}
}

// Intersect returns the greatest lower bound of t and o.
func (t Type) Intersect(o Type) Type {
	var entity []classSet
	for _, a := range t.entity {
		for _, b := range o.entity {
			entity = append(entity, append(append(classSet{}, a...), b...))
		}
	}
	var literal []datatypeSet
	for _, a := range t.literal {
		for _, b := range o.literal {
			literal = append(literal, append(append(datatypeSet{}, a...), b...))
		}
	}
	return Type{
		entity:  simplifyClassUnion(entity),
		literal: simplifyDatatypeUnion(literal),
	}
}

// Equal reports whether t and o are the same lattice element.
func (t Type) Equal(o Type) bool {
	return t.key() == o.key()
}

// Includes reports whether o <= t in the lattice order, defined as
// Union(t, o) == t.
func (t Type) Includes(o Type) bool {
	return t.Union(o).Equal(t)
}

// IncludedIn reports whether t <= o.
func (t Type) IncludedIn(o Type) bool {
	return o.Includes(t)
}

// StrictlyIncludes reports whether o < t.
func (t Type) StrictlyIncludes(o Type) bool {
	return t.Includes(o) && !t.Equal(o)
}

// IsBottom reports whether t has no possible values.
func (t Type) IsBottom() bool {
	return t.Equal(bottomType)
}

// Intersects reports whether t and o have a non-bottom intersection.
func (t Type) Intersects(o Type) bool {
	return !t.Intersect(o).IsBottom()
}

func (t Type) String() string {
	var parts []string
	for _, inter := range t.entity {
		parts = append(parts, interString(classIRIs(inter)))
	}
	for _, inter := range t.literal {
		parts = append(parts, interString(datatypeIRIs(inter)))
	}
	return strings.Join(parts, " | ")
}

func interString(iris []string) string {
	if len(iris) == 1 {
		return iris[0]
	}
	return "(" + strings.Join(iris, " & ") + ")"
}

// key returns a canonical string for the simplified form. Simplification is
// deterministic, so equal lattice elements have equal keys.
func (t Type) key() string {
	var b strings.Builder
	for _, inter := range t.entity {
		b.WriteString("e:")
		b.WriteString(strings.Join(classIRIs(inter), "&"))
		b.WriteByte(';')
	}
	for _, inter := range t.literal {
		b.WriteString("l:")
		b.WriteString(strings.Join(datatypeIRIs(inter), "&"))
		b.WriteByte(';')
	}
	return b.String()
}

func classIRIs(inter classSet) []string {
	iris := make([]string, len(inter))
	for i, c := range inter {
		iris[i] = c.IRI()
	}
	return iris
}

func datatypeIRIs(inter datatypeSet) []string {
	iris := make([]string, len(inter))
	for i, d := range inter {
		iris[i] = d.IRI()
	}
	return iris
}

// simplifyClassIntersection keeps the most specific members of an
// intersection. An empty intersection is the universal entity class.
func simplifyClassIntersection(inter classSet) classSet {
	var result classSet
	for _, c := range inter {
		redundant := false
		for _, other := range inter {
			if other.IRI() != c.IRI() && other.IsSubclassOf(c) {
				redundant = true
				break
			}
		}
		if !redundant {
			result = append(result, c)
		}
	}
	if len(result) == 0 {
		return classSet{schema.OWLThing}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IRI() < result[j].IRI() })
	return dedupClasses(result)
}

func dedupClasses(sorted classSet) classSet {
	out := sorted[:0]
	for _, c := range sorted {
		if len(out) == 0 || out[len(out)-1].IRI() != c.IRI() {
			out = append(out, c)
		}
	}
	return out
}

// classIntersectionIn reports whether every member of sub is a subclass of
// some member of sup, i.e. sub denotes a subset of sup.
func classIntersectionIn(sub, sup classSet) bool {
	for _, c := range sub {
		found := false
		for _, s := range sup {
			if c.IsSubclassOf(s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// simplifyClassUnion canonicalizes a union of class intersections: each
// intersection is simplified, duplicates are merged, and intersections
// subsumed by a different member are dropped. An empty result is the
// canonical entity bottom {owl:Nothing}.
func simplifyClassUnion(inters []classSet) []classSet {
	present := make([]classSet, 0, len(inters))
	seen := map[string]bool{}
	for _, inter := range inters {
		s := simplifyClassIntersection(inter)
		k := strings.Join(classIRIs(s), "&")
		if !seen[k] {
			seen[k] = true
			present = append(present, s)
		}
	}
	var result []classSet
	for i, inter := range present {
		subsumed := false
		for j, other := range present {
			if i != j && classIntersectionIn(inter, other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			result = append(result, inter)
		}
	}
	if len(result) == 0 {
		return []classSet{{schema.OWLNothing}}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.Join(classIRIs(result[i]), "&") < strings.Join(classIRIs(result[j]), "&")
	})
	return result
}

// simplifyDatatypeIntersection keeps the most specific members of an
// intersection. An empty intersection is the universal literal datatype.
// Two or more unrelated datatypes have no common values: the intersection is
// dropped from its union (ok == false).
func simplifyDatatypeIntersection(inter datatypeSet) (_ datatypeSet, ok bool) {
	var result datatypeSet
	for _, d := range inter {
		redundant := false
		for _, other := range inter {
			if other.IRI() != d.IRI() && other.IsRestrictionOf(d) {
				redundant = true
				break
			}
		}
		if !redundant {
			result = append(result, d)
		}
	}
	switch {
	case len(result) == 0:
		return datatypeSet{schema.RDFSLiteral}, true
	case len(dedupDatatypes(result)) == 1:
		return dedupDatatypes(result), true
	default:
		return nil, false
	}
}

func dedupDatatypes(in datatypeSet) datatypeSet {
	sorted := append(datatypeSet{}, in...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].IRI() < sorted[j].IRI() })
	out := sorted[:0]
	for _, d := range sorted {
		if len(out) == 0 || out[len(out)-1].IRI() != d.IRI() {
			out = append(out, d)
		}
	}
	return out
}

func datatypeIntersectionIn(sub, sup datatypeSet) bool {
	for _, d := range sub {
		found := false
		for _, s := range sup {
			if d.IsRestrictionOf(s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// simplifyDatatypeUnion canonicalizes a union of datatype intersections. The
// canonical literal bottom is the empty union.
func simplifyDatatypeUnion(inters []datatypeSet) []datatypeSet {
	present := make([]datatypeSet, 0, len(inters))
	seen := map[string]bool{}
	for _, inter := range inters {
		s, ok := simplifyDatatypeIntersection(inter)
		if !ok {
			continue
		}
		k := strings.Join(datatypeIRIs(s), "&")
		if !seen[k] {
			seen[k] = true
			present = append(present, s)
		}
	}
	var result []datatypeSet
	for i, inter := range present {
		subsumed := false
		for j, other := range present {
			if i != j && datatypeIntersectionIn(inter, other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			result = append(result, inter)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.Join(datatypeIRIs(result[i]), "&") < strings.Join(datatypeIRIs(result[j]), "&")
	})
	return result
}
