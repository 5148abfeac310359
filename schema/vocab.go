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

// Well-known namespace IRIs.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
	GeoNamespace  = "http://www.opengis.net/ont/geosparql#"

	// Private namespace for the abstract super-datatypes that group
	// comparable literal families.
	vocabNamespace = "http://askgraph.org/vocab#"

	owlNothingIRI = OWLNamespace + "Nothing"
)

// Core class hierarchy. Every class other than OWLThing itself has OWLThing
// as a (transitive) superclass so that the universal entity class subsumes
// the whole entity dimension.
var (
	// OWLThing is the universal entity class.
	OWLThing = NewClass(OWLNamespace + "Thing")
	// OWLNothing is the empty class, a subclass of every class.
	OWLNothing = NewClass(owlNothingIRI, OWLThing)

	RDFSClass         = NewClass(RDFSNamespace+"Class", OWLThing)
	RDFSDatatypeClass = NewClass(RDFSNamespace+"Datatype", RDFSClass)

	// RDFProperty is the class of all properties.
	RDFProperty         = NewClass(RDFNamespace+"Property", OWLThing)
	OWLObjectProperty   = NewClass(OWLNamespace+"ObjectProperty", RDFProperty)
	OWLDatatypeProperty = NewClass(OWLNamespace+"DatatypeProperty", RDFProperty)
)

// Datatype hierarchy. Numeric and Calendar are abstract groupings used by
// the comparison operators; they are not concrete XSD datatypes.
var (
	// RDFSLiteral is the universal literal datatype.
	RDFSLiteral = NewDatatype(RDFSNamespace + "Literal")

	// Numeric groups the datatypes comparable as numbers.
	Numeric = NewDatatype(vocabNamespace+"numeric", RDFSLiteral)
	// Calendar groups the datatypes comparable as points in time.
	Calendar = NewDatatype(vocabNamespace+"calendar", RDFSLiteral)

	XSDDecimal = NewDatatype(XSDNamespace+"decimal", Numeric)
	XSDInteger = NewDatatype(XSDNamespace+"integer", XSDDecimal)
	XSDDouble  = NewDatatype(XSDNamespace+"double", Numeric)
	XSDFloat   = NewDatatype(XSDNamespace+"float", Numeric)

	XSDDateTime   = NewDatatype(XSDNamespace+"dateTime", Calendar)
	XSDDate       = NewDatatype(XSDNamespace+"date", Calendar)
	XSDGYearMonth = NewDatatype(XSDNamespace+"gYearMonth", Calendar)
	XSDGYear      = NewDatatype(XSDNamespace+"gYear", Calendar)

	XSDString     = NewDatatype(XSDNamespace+"string", RDFSLiteral)
	RDFLangString = NewDatatype(RDFNamespace+"langString", RDFSLiteral)
	XSDBoolean    = NewDatatype(XSDNamespace+"boolean", RDFSLiteral)
	XSDAnyURI     = NewDatatype(XSDNamespace+"anyURI", RDFSLiteral)
	XSDDuration   = NewDatatype(XSDNamespace+"duration", RDFSLiteral)
	GeoWKTLiteral = NewDatatype(GeoNamespace+"wktLiteral", RDFSLiteral)
)
