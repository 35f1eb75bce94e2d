/*
 * Copyright (C) 2024 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package ingest

import (
	operationalMetrics "github.com/netobserv/bgp-bogons/pkg/operational/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	routesIngested = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_routes_total",
		Help: "Number of route announcements read",
	}, []string{"type"})
	linesSkipped = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_lines_skipped_total",
		Help: "Number of input lines that carried no usable record",
	}, []string{"type", "code"})
	delegationsIngested = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_delegations_total",
		Help: "Number of delegation records read",
	}, []string{"type"})
	downloadAttempts = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_download_attempts_total",
		Help: "Number of delegation download attempts, by outcome",
	}, []string{"outcome"})
)

// Increment skipped lines counter
// `code` should reflect a short reason, never a dynamic value with high cardinality
func skipped(stageType, code string) {
	linesSkipped.WithLabelValues(stageType, code).Inc()
}
