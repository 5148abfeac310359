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

package qa

import (
	"github.com/prometheus/client_golang/prometheus"
)

var metrics = struct {
	questions          *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	evaluationSeconds  prometheus.Histogram
	evaluationFailures prometheus.Counter
}{
	questions: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "askgraph",
		Subsystem: "qa",
		Name:      "questions_total",
		Help:      "Number of questions asked, by language.",
	}, []string{"language"}),
	requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "askgraph",
		Subsystem: "qa",
		Name:      "request_duration_seconds",
		Help:      "Wall-clock time spent answering one question.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"language"}),
	evaluationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "askgraph",
		Subsystem: "qa",
		Name:      "evaluation_seconds",
		Help:      "Time spent evaluating all candidate terms for one question.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}),
	evaluationFailures: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "askgraph",
		Subsystem: "qa",
		Name:      "evaluation_failures_total",
		Help:      "Number of candidate terms that failed to evaluate.",
	}),
}

func init() {
	prometheus.MustRegister(
		metrics.questions,
		metrics.requestDuration,
		metrics.evaluationSeconds,
		metrics.evaluationFailures,
	)
}
