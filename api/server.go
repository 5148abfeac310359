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

// Package api exposes the question answering pipeline over HTTP.
package api

import (
	"net/http"
	_ "net/http/pprof" // enable pprof endpoints
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/askgraph/askgraph/config"
	"github.com/askgraph/askgraph/logic"
	"github.com/askgraph/askgraph/qa"
	"github.com/askgraph/askgraph/sparql"
	"github.com/askgraph/askgraph/util/profiling"
	"github.com/askgraph/askgraph/util/web"
)

// New returns a new instance of the API server. The returned Server will not
// start handling traffic until a subsequent call to Server.Run().
func New(cfg *config.AskGraph, service *qa.Service) *Server {
	return &Server{cfg: cfg, qa: service}
}

// Server answers questions over HTTP.
type Server struct {
	cfg *config.AskGraph
	qa  *qa.Service
}

// Run starts listening for HTTP requests. This function will block until the
// server is shutdown.
func (s *Server) Run() error {
	m := httprouter.New()
	m.GET("/ask", s.ask)
	m.GET("/sparql", s.sparql)
	m.POST("/profile", s.profile)
	// prometheus metrics
	m.Handler("GET", "/metrics", promhttp.Handler())

	m.NotFound = http.DefaultServeMux
	logger := func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("[API] %v %v", r.Method, r.URL)
		m.ServeHTTP(w, r)
	}
	return http.ListenAndServe(s.cfg.API.HTTPAddress, http.HandlerFunc(logger))
}

// Structure to hold the JSON response for /ask.
type askResponse struct {
	Question        string           `json:"question"`
	Language        string           `json:"language"`
	Interpretations []interpretation `json:"interpretations"`
}

type interpretation struct {
	Term    string                   `json:"term"`
	Score   int                      `json:"score"`
	Results []map[string]interface{} `json:"results"`
}

// ask answers GET /ask?question=...&lang=... with the winning
// interpretations of the question, rendered as JSON-LD resources.
func (s *Server) ask(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	question := r.URL.Query().Get("question")
	if question == "" {
		web.WriteError(w, http.StatusBadRequest, "missing question parameter")
		return
	}
	language := r.URL.Query().Get("lang")
	if language == "" {
		language = qa.DetectLanguage(question)
	}
	interpretations, err := s.qa.Answer(r.Context(), question, language)
	if err != nil {
		web.WriteError(w, http.StatusInternalServerError,
			"could not answer question: %v", err)
		return
	}
	resp := askResponse{
		Question:        question,
		Language:        language,
		Interpretations: make([]interpretation, 0, len(interpretations)),
	}
	for _, in := range interpretations {
		rendered := interpretation{
			Term:    in.Term.String(),
			Score:   in.Score(),
			Results: make([]map[string]interface{}, 0, len(in.Results)),
		}
		for _, resource := range in.Results {
			rendered.Results = append(rendered.Results, resource.JSONLD())
		}
		resp.Interpretations = append(resp.Interpretations, rendered)
	}
	web.Write(w, resp)
}

// sparql answers GET /sparql?question=...&lang=...&limit=... with the SPARQL
// query for the best reading of the question, as plain text.
func (s *Server) sparql(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	question := r.URL.Query().Get("question")
	if question == "" {
		web.WriteError(w, http.StatusBadRequest, "missing question parameter")
		return
	}
	options := sparql.Options{Ranking: true}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			web.WriteError(w, http.StatusBadRequest, "invalid limit parameter: %v", limit)
			return
		}
		options.Limit = n
	}
	candidates, err := s.qa.Candidates(r.Context(), question, r.URL.Query().Get("lang"))
	if err != nil {
		web.WriteError(w, http.StatusInternalServerError,
			"could not analyze question: %v", err)
		return
	}
	if len(candidates) == 0 {
		web.WriteError(w, http.StatusNotFound, "no reading found for question")
		return
	}
	query, err := sparql.Build(best(candidates), options)
	if err != nil {
		web.WriteError(w, http.StatusInternalServerError,
			"could not build query: %v", err)
		return
	}
	web.Write(w, query)
}

// profile answers POST /profile?d=30s by collecting a CPU profile into
// prof.cpu for the given duration.
func (s *Server) profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	duration := 30 * time.Second
	if d := r.URL.Query().Get("d"); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, "invalid duration: %v", err)
			return
		}
		duration = parsed
	}
	if err := profiling.CPUProfileForDuration("prof.cpu", duration); err != nil {
		web.Write(w, err)
		return
	}
	web.Write(w, "Profiling started\n")
}

// best returns the highest scoring candidate. Candidates from qa.Candidates
// arrive best first already; this guards against other callers.
func best(candidates []*logic.Select) *logic.Select {
	top := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score() > top.Score() {
			top = candidate
		}
	}
	return top
}
