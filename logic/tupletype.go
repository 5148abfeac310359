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

package logic

import "strings"

// A TupleType is a fixed-arity positional type, used for multi-argument
// Select terms. Operations are pointwise; a missing position reads as
// Bottom, and trailing bottom positions are trimmed to keep the form
// canonical.
type TupleType []Type

// NewTupleType returns the canonical form of the given positional types.
func NewTupleType(types ...Type) TupleType {
	return TupleType(types).trim()
}

func (t TupleType) trim() TupleType {
	end := len(t)
	for end > 0 && t[end-1].IsBottom() {
		end--
	}
	out := make(TupleType, end)
	copy(out, t[:end])
	return out
}

// At returns the type at position i, Bottom when out of range.
func (t TupleType) At(i int) Type {
	if i < 0 || i >= len(t) {
		return Bottom()
	}
	return t[i]
}

// Union returns the pointwise least upper bound.
func (t TupleType) Union(o TupleType) TupleType {
	n := len(t)
	if len(o) > n {
		n = len(o)
	}
	out := make(TupleType, n)
	for i := range out {
		out[i] = t.At(i).Union(o.At(i))
	}
	return out.trim()
}

// Intersect returns the pointwise greatest lower bound.
func (t TupleType) Intersect(o TupleType) TupleType {
	n := len(t)
	if len(o) > n {
		n = len(o)
	}
	out := make(TupleType, n)
	for i := range out {
		out[i] = t.At(i).Intersect(o.At(i))
	}
	return out.trim()
}

// Equal reports whether t and o are the same element, position by position.
func (t TupleType) Equal(o TupleType) bool {
	a, b := t.trim(), o.trim()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Includes reports whether o <= t pointwise.
func (t TupleType) Includes(o TupleType) bool {
	return t.Union(o).Equal(t.trim())
}

// IncludedIn reports whether t <= o pointwise.
func (t TupleType) IncludedIn(o TupleType) bool {
	return o.Includes(t)
}

func (t TupleType) String() string {
	parts := make([]string, len(t))
	for i, typ := range t {
		parts[i] = typ.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
