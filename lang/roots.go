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

package lang

import "strings"

// meaninglessRoots are imperative verbs that carry no semantic content of
// their own: "give me the kings of France" means the same as "the kings of
// France". Lemmas, lowercase.
var meaninglessRoots = map[string]map[string]bool{
	"en": {
		"give": true, "show": true, "tell": true, "list": true,
		"name": true, "find": true, "get": true, "me": true, "us": true,
		"be": true, "do": true,
	},
	"fr": {
		"donner": true, "montrer": true, "dire": true, "lister": true,
		"nommer": true, "trouver": true, "être": true,
	},
	"de": {
		"geben": true, "zeigen": true, "nennen": true, "finden": true,
		"sein": true,
	},
	"es": {
		"dar": true, "mostrar": true, "decir": true, "listar": true,
		"nombrar": true, "encontrar": true, "ser": true,
	},
}

// IsMeaninglessRoot reports whether the lemma is a contentless imperative
// root for the given language.
func IsMeaninglessRoot(lemma, languageCode string) bool {
	return meaninglessRoots[languageCode][strings.ToLower(lemma)]
}
