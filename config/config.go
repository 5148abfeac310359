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

// Package config contains the configuration for an AskGraph server. The
// configuration is typically loaded from a JSON file on disk.
package config

import (
	"time"
)

// AskGraph describes the configuration for an AskGraph server.
type AskGraph struct {
	// Configuration for the HTTP API server.
	API API `json:"api"`

	// How to reach the dependency parsing service.
	Parser Parser `json:"parser"`

	// How to reach the knowledge base.
	KnowledgeBase KnowledgeBase `json:"knowledgeBase"`

	// If non-nil, the configuration for distributed tracing (OpenTracing).
	// If nil, the server will not collect traces.
	Tracing *Tracing `json:"tracing,omitempty"`
}

// Tracing contains configuration related to distributed execution tracing.
type Tracing struct {
	// Must be "jaeger" (for now).
	Type string `json:"type"`

	// URL that accepts jaeger.thrift over HTTP directly from clients, like
	// "http://localhost:14268/api/traces".
	CollectorURL string `json:"collectorURL"`
}

// API contains configuration specific to the HTTP API server.
type API struct {
	// The host:port or :port on which to serve HTTP requests, including
	// Prometheus metrics. Defaults to ":8090".
	HTTPAddress string `json:"httpAddress,omitempty"`

	// Wall-clock bound on answering a single question, as a Go duration
	// string like "15s". Defaults to 15 seconds.
	RequestTimeout string `json:"requestTimeout,omitempty"`

	// Bound on concurrent knowledge-base evaluations per question.
	// Defaults to 8.
	Parallelism int `json:"parallelism,omitempty"`

	// If true, responses carry every interpretation that scored at least
	// as well as the winning one, not just the winner.
	AllInterpretations bool `json:"allInterpretations,omitempty"`
}

// Parser contains configuration for the CoreNLP-protocol dependency parsing
// service.
type Parser struct {
	// Base URL of the parsing service. Defaults to
	// "http://localhost:9000".
	URL string `json:"url,omitempty"`

	// BCP 47 codes of the languages the service can parse. Defaults to
	// English only.
	Languages []string `json:"languages,omitempty"`
}

// KnowledgeBase contains configuration for the Wikidata-protocol knowledge
// base endpoints.
type KnowledgeBase struct {
	// Base URL of the entity search service. Defaults to the public
	// askplatyp.us one.
	SearchURL string `json:"searchURL,omitempty"`

	// SPARQL query endpoint. Defaults to the public Wikidata Query
	// Service.
	QueryURL string `json:"queryURL,omitempty"`
}

// Timeout returns the parsed API request timeout.
func (api *API) Timeout() (time.Duration, error) {
	if api.RequestTimeout == "" {
		return 15 * time.Second, nil
	}
	return time.ParseDuration(api.RequestTimeout)
}

// applyDefaults fills in the documented defaults for unset fields.
func (cfg *AskGraph) applyDefaults() {
	if cfg.API.HTTPAddress == "" {
		cfg.API.HTTPAddress = ":8090"
	}
	if cfg.Parser.URL == "" {
		cfg.Parser.URL = "http://localhost:9000"
	}
	if len(cfg.Parser.Languages) == 0 {
		cfg.Parser.Languages = []string{"en"}
	}
	if cfg.KnowledgeBase.SearchURL == "" {
		cfg.KnowledgeBase.SearchURL = "https://kb.askplatyp.us/api/v1"
	}
	if cfg.KnowledgeBase.QueryURL == "" {
		cfg.KnowledgeBase.QueryURL = "https://query.wikidata.org/sparql"
	}
}
