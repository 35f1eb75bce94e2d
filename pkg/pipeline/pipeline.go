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

package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/aspath"
	"github.com/netobserv/bgp-bogons/pkg/config"
	"github.com/netobserv/bgp-bogons/pkg/index"
	operationalMetrics "github.com/netobserv/bgp-bogons/pkg/operational/metrics"
	"github.com/netobserv/bgp-bogons/pkg/pipeline/ingest"
	"github.com/netobserv/bgp-bogons/pkg/pipeline/write"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var (
	routesRejected = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "index_routes_rejected_total",
		Help: "Number of route announcements not added to the index",
	}, []string{"reason"})
	indexPrefixes = operationalMetrics.NewGaugeVec(prometheus.GaugeOpts{
		Name: "index_prefixes",
		Help: "Number of distinct prefixes in the index",
	}, []string{"family"})
	delegationsSkipped = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
		Name: "query_delegations_skipped_total",
		Help: "Number of delegation records skipped",
	}, []string{"reason"})
	queryBlocks = operationalMetrics.NewCounter(prometheus.CounterOpts{
		Name: "query_blocks_total",
		Help: "Number of CIDR blocks looked up",
	})
	reportRows = operationalMetrics.NewGauge(prometheus.GaugeOpts{
		Name: "report_rows",
		Help: "Number of rows of the last report",
	})
	stageDuration = operationalMetrics.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stage_duration_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})
)

// route rejection reasons
const (
	rejectPrefix = "invalid_prefix"
	rejectPath   = "empty_path"
	rejectFamily = "family"
)

// Pipeline runs one cross-reference: index build, delegation read, query, write
type Pipeline struct {
	routes      ingest.RouteIngester
	delegations ingest.DelegationIngester
	tables      *index.Tables
	driver      *xref.Driver
	writer      write.Writer
	running     atomic.Bool
	indexed     atomic.Bool
}

// NewPipeline defines the pipeline stages from the configuration
func NewPipeline(cfg *config.ConfigFileStruct) (*Pipeline, error) {
	log.Debugf("entering NewPipeline")
	return newBuilder(cfg).build()
}

// Run executes the stages in order and returns the report that was written.
// Skipped records do not fail the run; unreadable input or a failed write does.
func (p *Pipeline) Run(ctx context.Context) (xref.Report, error) {
	p.running.Store(true)
	defer p.running.Store(false)

	if err := p.buildIndex(ctx); err != nil {
		return xref.Report{}, &Error{StageName: StageRoutes, wrapped: err}
	}

	start := time.Now()
	var delegations []xref.Delegation
	var parseDiags []xref.Diagnostic
	err := p.delegations.Ingest(ctx,
		func(d xref.Delegation) { delegations = append(delegations, d) },
		func(d xref.Diagnostic) { parseDiags = append(parseDiags, d) })
	if err != nil {
		return xref.Report{}, &Error{StageName: StageDelegations, wrapped: err}
	}
	observe(StageDelegations, start)
	log.Infof("read %d delegations", len(delegations))

	start = time.Now()
	report, err := p.driver.Run(ctx, delegations)
	if err != nil {
		return report, &Error{StageName: StageQuery, wrapped: err}
	}
	observe(StageQuery, start)
	report.Diagnostics = append(parseDiags, report.Diagnostics...)
	report.Stats.Skipped = len(report.Diagnostics)
	for _, d := range report.Diagnostics {
		delegationsSkipped.WithLabelValues(d.Reason).Inc()
		log.WithFields(log.Fields{"line": d.Line, "record": d.Record, "reason": d.Reason}).WithError(d.Err).Warn("skipped delegation")
	}
	queryBlocks.Add(float64(report.Stats.Blocks))
	reportRows.Set(float64(len(report.Rows)))

	start = time.Now()
	if err := p.writer.Write(ctx, report.Rows); err != nil {
		return report, &Error{StageName: StageWrite, wrapped: err}
	}
	observe(StageWrite, start)
	log.WithFields(log.Fields{
		"delegations": report.Stats.Delegations,
		"selected":    report.Stats.Selected,
		"skipped":     report.Stats.Skipped,
		"blocks":      report.Stats.Blocks,
		"matches":     report.Stats.Matches,
		"rows":        report.Stats.Rows,
	}).Info("cross-reference done")
	return report, nil
}

func (p *Pipeline) buildIndex(ctx context.Context) error {
	start := time.Now()
	err := p.routes.Ingest(ctx, p.addRoute)
	if err != nil {
		return err
	}
	v4, v6 := p.tables.Len()
	indexPrefixes.WithLabelValues(index.FamilyIPv4.String()).Set(float64(v4))
	indexPrefixes.WithLabelValues(index.FamilyIPv6.String()).Set(float64(v6))
	observe(StageIndex, start)
	log.Infof("index built: %d IPv4 prefixes, %d IPv6 prefixes", v4, v6)
	p.indexed.Store(true)
	return nil
}

func (p *Pipeline) addRoute(r api.Route) {
	pfx, err := index.ParsePrefix(r.Prefix)
	if err != nil {
		rejectRoute(r, rejectPrefix, err)
		return
	}
	origin, err := aspath.Origin(r.ASPath)
	if err != nil {
		rejectRoute(r, rejectPath, err)
		return
	}
	if err := p.tables.Add(pfx, index.Family(r.Family), r.ASPath, origin); err != nil {
		reason := rejectPrefix
		if errors.Is(err, index.ErrFamilyMismatch) || errors.Is(err, index.ErrUnsupportedType) {
			reason = rejectFamily
		}
		rejectRoute(r, reason, err)
	}
}

func rejectRoute(r api.Route, reason string, err error) {
	routesRejected.WithLabelValues(reason).Inc()
	log.WithFields(log.Fields{"prefix": r.Prefix, "as_path": r.ASPath, "reason": reason}).WithError(err).Warn("skipped route")
}

func observe(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (p *Pipeline) IsReady() healthcheck.Check {
	return func() error {
		if !p.indexed.Load() {
			return errors.New("index not built")
		}
		return nil
	}
}

func (p *Pipeline) IsAlive() healthcheck.Check {
	return func() error {
		if !p.running.Load() {
			return errors.New("pipeline is not running")
		}
		return nil
	}
}
