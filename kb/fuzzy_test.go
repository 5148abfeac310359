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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LabelMatches(t *testing.T) {
	tests := []struct {
		queried   string
		reference string
		expected  bool
	}{
		{"France", "France", true},
		{"france", "France", true},
		{"Frrance", "France", true},
		{"Frnce", "France", true},
		{"Frrnce", "France", false},
		// One edit away, but the reference is too short for slack.
		{"R2", "RA", false},
		{"ra", "RA", true},
		{"ok", "oak", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, LabelMatches(test.queried, test.reference),
			"%q vs %q", test.queried, test.reference)
	}
}

func Test_MatchLabels_ExactWins(t *testing.T) {
	candidates := []string{"Paris", "Pari", "Parisy", "London"}
	assert.Equal(t, []string{"Paris"}, MatchLabels("paris", candidates))
	assert.Equal(t, []string{"Parisy"}, MatchLabels("parisy", candidates))
	assert.Equal(t, []string{"Paris", "Parisy"}, MatchLabels("pariss", candidates))
	assert.Empty(t, MatchLabels("Tokyo", candidates))
}
