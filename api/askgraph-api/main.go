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

// Command askgraph-api runs an AskGraph question answering server daemon.
package main

import (
	docopt "github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"

	"github.com/askgraph/askgraph/api"
	"github.com/askgraph/askgraph/config"
	"github.com/askgraph/askgraph/kb"
	"github.com/askgraph/askgraph/nlp"
	"github.com/askgraph/askgraph/qa"
	"github.com/askgraph/askgraph/util/debuglog"
	"github.com/askgraph/askgraph/util/tracing"
)

const usage = `askgraph-api runs the AskGraph question answering HTTP server.

Usage:
  askgraph-api [--cfg=FILE]

Options:
  --cfg=FILE  Configuration file [default: config.json]
`

type options struct {
	ConfigFile string `docopt:"--cfg"`
}

func parseArgs() *options {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	return &options
}

func main() {
	debuglog.Configure(debuglog.Options{})
	options := parseArgs()

	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}
	log.Infof("Using config: %+v", cfg)

	tracer, err := tracing.New("askgraph-api", cfg.Tracing)
	if err != nil {
		log.Fatalf("Unable to initialize distributed tracing: %v", err)
	}
	defer tracer.Close()

	timeout, err := cfg.API.Timeout()
	if err != nil {
		log.Fatalf("Invalid request timeout: %v", err)
	}
	parser := nlp.NewCoreNLPParser(cfg.Parser.URL, cfg.Parser.Languages, nil)
	knowledgeBase, err := kb.NewWikidata(
		cfg.KnowledgeBase.SearchURL, cfg.KnowledgeBase.QueryURL, nil)
	if err != nil {
		log.Fatalf("Unable to initialize knowledge base: %v", err)
	}
	service := qa.New(parser, knowledgeBase, qa.Options{
		Timeout:            timeout,
		Parallelism:        cfg.API.Parallelism,
		AllInterpretations: cfg.API.AllInterpretations,
	})

	server := api.New(cfg, service)
	log.WithFields(log.Fields{
		"address": cfg.API.HTTPAddress,
	}).Info("Starting AskGraph API server")
	log.Fatalf("Server::Run returned %v", server.Run())
}
