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

// Package nlp defines the dependency-parse shapes consumed by the analyzer:
// Universal Dependencies part-of-speech tags and dependency labels, read-only
// Token trees, and the Parser interface to external parsing services.
package nlp

import (
	"fmt"
	"strings"
)

// A POSTag is a Universal Dependencies part-of-speech tag.
type POSTag string

// The UD v2 part-of-speech tags.
const (
	POSAdj   POSTag = "ADJ"
	POSAdp   POSTag = "ADP"
	POSAdv   POSTag = "ADV"
	POSAux   POSTag = "AUX"
	POSCconj POSTag = "CCONJ"
	POSDet   POSTag = "DET"
	POSIntj  POSTag = "INTJ"
	POSNoun  POSTag = "NOUN"
	POSNum   POSTag = "NUM"
	POSPart  POSTag = "PART"
	POSPron  POSTag = "PRON"
	POSPropn POSTag = "PROPN"
	POSPunct POSTag = "PUNCT"
	POSSconj POSTag = "SCONJ"
	POSSym   POSTag = "SYM"
	POSVerb  POSTag = "VERB"
	POSX     POSTag = "X"
)

var posTags = map[POSTag]bool{
	POSAdj: true, POSAdp: true, POSAdv: true, POSAux: true, POSCconj: true,
	POSDet: true, POSIntj: true, POSNoun: true, POSNum: true, POSPart: true,
	POSPron: true, POSPropn: true, POSPunct: true, POSSconj: true,
	POSSym: true, POSVerb: true, POSX: true,
}

// POSTagFromString parses a part-of-speech tag, accepting the UD v1 CONJ
// spelling for CCONJ.
func POSTagFromString(s string) (POSTag, error) {
	tag := POSTag(strings.ToUpper(strings.TrimSpace(s)))
	if tag == "CONJ" {
		tag = POSCconj
	}
	if !posTags[tag] {
		return "", fmt.Errorf("nlp: unknown part-of-speech tag %q", s)
	}
	return tag, nil
}

// A Dependency is a Universal Dependencies relation label, possibly with a
// language-specific subtype after a colon, like "nmod:poss".
type Dependency string

// The UD v2 dependency relations and the subtypes the analyzer cares about.
const (
	DepACL        Dependency = "acl"
	DepACLRelcl   Dependency = "acl:relcl"
	DepAdvcl      Dependency = "advcl"
	DepAdvmod     Dependency = "advmod"
	DepAmod       Dependency = "amod"
	DepAppos      Dependency = "appos"
	DepAux        Dependency = "aux"
	DepAuxPass    Dependency = "aux:pass"
	DepCase       Dependency = "case"
	DepCC         Dependency = "cc"
	DepCComp      Dependency = "ccomp"
	DepClf        Dependency = "clf"
	DepCompound   Dependency = "compound"
	DepConj       Dependency = "conj"
	DepCop        Dependency = "cop"
	DepCsubj      Dependency = "csubj"
	DepCsubjPass  Dependency = "csubj:pass"
	DepDep        Dependency = "dep"
	DepDet        Dependency = "det"
	DepDiscourse  Dependency = "discourse"
	DepDislocated Dependency = "dislocated"
	DepExpl       Dependency = "expl"
	DepFixed      Dependency = "fixed"
	DepFlat       Dependency = "flat"
	DepGoeswith   Dependency = "goeswith"
	DepIobj       Dependency = "iobj"
	DepList       Dependency = "list"
	DepMark       Dependency = "mark"
	DepNmod       Dependency = "nmod"
	DepNmodPoss   Dependency = "nmod:poss"
	DepNsubj      Dependency = "nsubj"
	DepNsubjPass  Dependency = "nsubj:pass"
	DepNummod     Dependency = "nummod"
	DepObj        Dependency = "obj"
	DepObl        Dependency = "obl"
	DepOrphan     Dependency = "orphan"
	DepParataxis  Dependency = "parataxis"
	DepPunct      Dependency = "punct"
	DepRoot       Dependency = "root"
	DepVocative   Dependency = "vocative"
	DepXcomp      Dependency = "xcomp"
)

// ud1Dependencies maps the UD v1 labels emitted by older parsers to their
// v2 equivalents.
var ud1Dependencies = map[string]Dependency{
	"dobj":       DepObj,
	"nsubjpass":  DepNsubjPass,
	"auxpass":    DepAuxPass,
	"csubjpass":  DepCsubjPass,
	"mwe":        DepFixed,
	"name":       DepFlat,
	"neg":        DepAdvmod,
	"nmod:npmod": DepNmod,
	"nmod:tmod":  DepNmod,
}

var baseDependencies = map[Dependency]bool{
	DepACL: true, DepAdvcl: true, DepAdvmod: true, DepAmod: true,
	DepAppos: true, DepAux: true, DepCase: true, DepCC: true, DepCComp: true,
	DepClf: true, DepCompound: true, DepConj: true, DepCop: true,
	DepCsubj: true, DepDep: true, DepDet: true, DepDiscourse: true,
	DepDislocated: true, DepExpl: true, DepFixed: true, DepFlat: true,
	DepGoeswith: true, DepIobj: true, DepList: true, DepMark: true,
	DepNmod: true, DepNsubj: true, DepNummod: true, DepObj: true,
	DepObl: true, DepOrphan: true, DepParataxis: true, DepPunct: true,
	DepRoot: true, DepVocative: true, DepXcomp: true,
}

// DependencyFromString parses a dependency label, accepting UD v1
// spellings. Unknown subtypes of a known base relation are kept as-is.
func DependencyFromString(s string) (Dependency, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	if mapped, ok := ud1Dependencies[label]; ok {
		return mapped, nil
	}
	d := Dependency(label)
	if baseDependencies[d.Base()] {
		return d, nil
	}
	return "", fmt.Errorf("nlp: unknown dependency label %q", s)
}

// Base returns the relation without its subtype: "nmod:poss" -> "nmod".
func (d Dependency) Base() Dependency {
	if i := strings.IndexByte(string(d), ':'); i >= 0 {
		return d[:i]
	}
	return d
}

// Extends reports whether d is base or a subtype of base: "nsubj:pass"
// extends "nsubj".
func (d Dependency) Extends(base Dependency) bool {
	return d == base || strings.HasPrefix(string(d), string(base)+":")
}
