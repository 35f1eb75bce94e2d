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

package operationalMetrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	TypeCounter   = "counter"
	TypeGauge     = "gauge"
	TypeHistogram = "histogram"
)

type metricDefinition struct {
	Name   string
	Help   string
	Type   string
	Labels []string
}

var (
	metricsOpts []metricDefinition
	optsMutex   sync.Mutex
)

func register(name, help, metricType string, labels ...string) {
	optsMutex.Lock()
	defer optsMutex.Unlock()
	metricsOpts = append(metricsOpts, metricDefinition{
		Name:   name,
		Help:   help,
		Type:   metricType,
		Labels: labels,
	})
}

func NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	register(opts.Name, opts.Help, TypeCounter)
	return promauto.NewCounter(opts)
}

func NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	register(opts.Name, opts.Help, TypeCounter, labelNames...)
	return promauto.NewCounterVec(opts, labelNames)
}

func NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	register(opts.Name, opts.Help, TypeGauge)
	return promauto.NewGauge(opts)
}

func NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	register(opts.Name, opts.Help, TypeGauge, labelNames...)
	return promauto.NewGaugeVec(opts, labelNames)
}

func NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	register(opts.Name, opts.Help, TypeHistogram, labelNames...)
	return promauto.NewHistogramVec(opts, labelNames)
}

// GetDocumentation renders every registered metric as markdown, sorted by name
func GetDocumentation() string {
	optsMutex.Lock()
	defs := make([]metricDefinition, len(metricsOpts))
	copy(defs, metricsOpts)
	optsMutex.Unlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	doc := ""
	for _, opts := range defs {
		labels := "-"
		if len(opts.Labels) > 0 {
			labels = strings.Join(opts.Labels, ", ")
		}
		doc += fmt.Sprintf(
			`
### %s
| **Name** | %s | 
|:---|:---|
| **Description** | %s | 
| **Type** | %s | 
| **Labels** | %s | 

`,
			opts.Name,
			opts.Name,
			opts.Help,
			opts.Type,
			labels,
		)
	}

	return doc
}
