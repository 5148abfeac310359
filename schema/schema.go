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

// Package schema models the RDF/OWL-ish vocabulary the rest of the system is
// typed against: classes with a subclass order, datatypes with a restriction
// order, properties with declared domain and range, named individuals with a
// popularity score, and the usual literal kinds. Everything here is immutable
// after construction and safe to share across goroutines.
package schema

// A Resource is an RDF term: either an Entity or a Literal. The String form
// is canonical, two resources are the same iff their String forms are equal.
type Resource interface {
	String() string
	// JSONLD returns a minimal JSON-LD rendering of the resource, used by
	// the HTTP result formatting.
	JSONLD() map[string]interface{}
	aResource()
}

// An Entity is a resource identified by an IRI.
type Entity interface {
	Resource
	IRI() string
	// Types returns the classes this entity is declared an instance of.
	Types() []*Class
	// Score is a popularity rank supplied by the knowledge base. Zero when
	// unknown.
	Score() int
}

// Ensure the entity kinds stay in sync with the interface.
var _ = []Entity{
	(*Class)(nil),
	(*Datatype)(nil),
	(*Property)(nil),
	(*Individual)(nil),
}

// A TypeNode is a schema node usable as an atomic semantic type: either a
// *Class or a *Datatype.
type TypeNode interface {
	Entity
	aTypeNode()
}

var _ = []TypeNode{
	(*Class)(nil),
	(*Datatype)(nil),
}

// A Class is an entity class in the subclass partial order.
type Class struct {
	iri        string
	subClassOf []*Class
}

// NewClass returns a class with the given direct superclasses. Pass OWLThing
// as (transitive) superclass of anything that should be subsumed by the
// universal entity class.
func NewClass(iri string, subClassOf ...*Class) *Class {
	return &Class{iri: iri, subClassOf: subClassOf}
}

// IRI returns the class IRI.
func (c *Class) IRI() string {
	return c.iri
}

// IsSubclassOf reports whether c is other or a (transitive) subclass of
// other. OWLNothing is a subclass of every class.
func (c *Class) IsSubclassOf(other *Class) bool {
	if c.iri == other.iri {
		return true
	}
	if c.iri == owlNothingIRI {
		return true
	}
	for _, super := range c.subClassOf {
		if super.IsSubclassOf(other) {
			return true
		}
	}
	return false
}

// Types implements Entity.Types.
func (c *Class) Types() []*Class {
	return []*Class{RDFSClass}
}

// Score implements Entity.Score.
func (c *Class) Score() int {
	return 0
}

func (c *Class) String() string {
	return c.iri
}

// JSONLD implements Resource.JSONLD.
func (c *Class) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@id": c.iri}
}

func (c *Class) aResource() {}
func (c *Class) aTypeNode() {}

// A Datatype is a literal datatype in the restriction partial order.
type Datatype struct {
	iri           string
	restrictionOf []*Datatype
}

// NewDatatype returns a datatype restricting the given datatypes.
func NewDatatype(iri string, restrictionOf ...*Datatype) *Datatype {
	return &Datatype{iri: iri, restrictionOf: restrictionOf}
}

// IRI returns the datatype IRI.
func (d *Datatype) IRI() string {
	return d.iri
}

// IsRestrictionOf reports whether d is other or a (transitive) restriction
// of other.
func (d *Datatype) IsRestrictionOf(other *Datatype) bool {
	if d.iri == other.iri {
		return true
	}
	for _, base := range d.restrictionOf {
		if base.IsRestrictionOf(other) {
			return true
		}
	}
	return false
}

// Types implements Entity.Types.
func (d *Datatype) Types() []*Class {
	return []*Class{RDFSDatatypeClass}
}

// Score implements Entity.Score.
func (d *Datatype) Score() int {
	return 0
}

func (d *Datatype) String() string {
	return d.iri
}

// JSONLD implements Resource.JSONLD.
func (d *Datatype) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@id": d.iri}
}

func (d *Datatype) aResource() {}
func (d *Datatype) aTypeNode() {}

// A Property is a relation between a subject entity and an object, which is
// an entity for object properties and a literal for datatype properties.
type Property struct {
	iri    string
	domain *Class
	rng    TypeNode
	object bool
	score  int
}

// NewObjectProperty returns a property relating entities of the domain class
// to entities of the range class. A nil domain or range defaults to OWLThing.
func NewObjectProperty(iri string, domain, rng *Class) *Property {
	if domain == nil {
		domain = OWLThing
	}
	if rng == nil {
		rng = OWLThing
	}
	return &Property{iri: iri, domain: domain, rng: rng, object: true}
}

// NewDatatypeProperty returns a property relating entities of the domain
// class to literals of the range datatype. A nil domain defaults to OWLThing
// and a nil range to RDFSLiteral.
func NewDatatypeProperty(iri string, domain *Class, rng *Datatype) *Property {
	if domain == nil {
		domain = OWLThing
	}
	var r TypeNode = RDFSLiteral
	if rng != nil {
		r = rng
	}
	return &Property{iri: iri, domain: domain, rng: r}
}

// WithScore returns a copy of the property carrying the given popularity
// score.
func (p *Property) WithScore(score int) *Property {
	q := *p
	q.score = score
	return &q
}

// IRI returns the property IRI.
func (p *Property) IRI() string {
	return p.iri
}

// Domain returns the declared subject class.
func (p *Property) Domain() *Class {
	return p.domain
}

// Range returns the declared object type: a *Class for object properties, a
// *Datatype for datatype properties.
func (p *Property) Range() TypeNode {
	return p.rng
}

// IsObjectProperty reports whether the property's objects are entities.
func (p *Property) IsObjectProperty() bool {
	return p.object
}

// Types implements Entity.Types.
func (p *Property) Types() []*Class {
	if p.object {
		return []*Class{OWLObjectProperty}
	}
	return []*Class{OWLDatatypeProperty}
}

// Score implements Entity.Score.
func (p *Property) Score() int {
	return p.score
}

func (p *Property) String() string {
	return p.iri
}

// JSONLD implements Resource.JSONLD.
func (p *Property) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@id": p.iri}
}

func (p *Property) aResource() {}

// An Individual is a named instance of one or more classes, with a popularity
// score from the knowledge base.
type Individual struct {
	iri   string
	types []*Class
	score int
}

// NewIndividual returns a named individual. With no explicit types the
// individual is an instance of OWLThing.
func NewIndividual(iri string, score int, types ...*Class) *Individual {
	if len(types) == 0 {
		types = []*Class{OWLThing}
	}
	return &Individual{iri: iri, types: types, score: score}
}

// IRI returns the individual IRI.
func (i *Individual) IRI() string {
	return i.iri
}

// Types implements Entity.Types.
func (i *Individual) Types() []*Class {
	return i.types
}

// IsInstanceOf reports whether the individual is declared an instance of c
// or of a subclass of c.
func (i *Individual) IsInstanceOf(c *Class) bool {
	for _, t := range i.types {
		if t.IsSubclassOf(c) {
			return true
		}
	}
	return false
}

// Score implements Entity.Score.
func (i *Individual) Score() int {
	return i.score
}

func (i *Individual) String() string {
	return i.iri
}

// JSONLD implements Resource.JSONLD.
func (i *Individual) JSONLD() map[string]interface{} {
	return map[string]interface{}{"@id": i.iri}
}

func (i *Individual) aResource() {}
