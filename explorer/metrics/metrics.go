/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"d7y.io/explorer/explorer/config"
	"d7y.io/explorer/pkg/types"
	"d7y.io/explorer/version"
)

// Variables declared for metrics.
var (
	EvaluationCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "evaluation_total",
		Help:      "Counter of the number of the evaluation.",
	}, []string{"dataset", "classifier"})

	EvaluationFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "evaluation_failure_total",
		Help:      "Counter of the number of failed of the evaluation.",
	}, []string{"dataset", "classifier"})

	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "evaluation_duration_seconds",
		Help:      "Histogram of the time each evaluation took.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"dataset", "classifier"})

	EvaluationAccuracy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "evaluation_accuracy",
		Help:      "Gauge of the accuracy of the last evaluation.",
	}, []string{"dataset", "classifier"})

	PredictionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "prediction_total",
		Help:      "Counter of the number of the predicted samples.",
	}, []string{"type", "classifier"})

	PredictionFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "prediction_failure_total",
		Help:      "Counter of the number of failed of the prediction.",
	}, []string{"type", "classifier"})

	ProjectionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "projection_total",
		Help:      "Counter of the number of the rendered projection.",
	}, []string{"dataset"})

	ProjectionFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "projection_failure_total",
		Help:      "Counter of the number of failed of the rendered projection.",
	}, []string{"dataset"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ExplorerMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

const (
	// SamplePredictionType is the prediction type of one sample.
	SamplePredictionType = "sample"

	// BatchPredictionType is the prediction type of a csv batch.
	BatchPredictionType = "batch"
)

// New returns the metrics server.
func New(cfg *config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
}
