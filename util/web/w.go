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

// Package web carries the response helpers shared by the HTTP handlers.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WriteError writes a plain-text error response with the given status code.
// The message is formatted fmt.Sprintf style and gets a trailing newline.
func WriteError(w http.ResponseWriter, statusCode int, format string, args ...interface{}) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, format, args...)
	io.WriteString(w, "\n")
}

// Write renders val as an HTTP response: a string as plain text, an error as
// a 500, nil as 204 No Content, anything else as JSON.
func Write(w http.ResponseWriter, val interface{}) {
	switch v := val.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case string:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, v)
	case error:
		WriteError(w, http.StatusInternalServerError, "Unexpected error: %v", v)
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
}
