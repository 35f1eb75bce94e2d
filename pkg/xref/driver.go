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

package xref

import (
	"context"
	"errors"

	"github.com/netobserv/bgp-bogons/pkg/cidr"
	"github.com/netobserv/bgp-bogons/pkg/index"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

var ErrNoStore = errors.New("no index for address family")

// StoreProvider gives access to the frozen store of each family
type StoreProvider interface {
	Store(family index.Family) index.Store
}

// Driver cross-references delegations against the routing index.
// The stores must not be written while Run executes.
type Driver struct {
	stores  StoreProvider
	filter  Filter
	workers int
}

// NewDriver creates a driver. A nil filter selects IPv4 available and
// reserved delegations; workers > 1 queries delegations concurrently.
func NewDriver(stores StoreProvider, filter Filter, workers int) *Driver {
	if filter == nil {
		filter = NewStatusFilter(nil, nil)
	}
	return &Driver{
		stores:  stores,
		filter:  filter,
		workers: workers,
	}
}

type result struct {
	rows    []Row
	diag    *Diagnostic
	blocks  int
	matches int
}

// Run queries every selected delegation and returns the rows in input order.
// Records that cannot be processed are skipped and reported as diagnostics;
// only a cancelled context makes Run fail.
func (d *Driver) Run(ctx context.Context, delegations []Delegation) (Report, error) {
	log.Debugf("entering Driver.Run, delegations = %d, workers = %d", len(delegations), d.workers)
	report := Report{}
	report.Stats.Delegations = len(delegations)

	selected := make([]Delegation, 0, len(delegations))
	for i := range delegations {
		rec := &delegations[i]
		ok, err := d.filter.Match(rec)
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Line: rec.Line, Record: rec.String(), Reason: ReasonFilter, Err: err,
			})
			continue
		}
		if ok {
			selected = append(selected, *rec)
		}
	}
	report.Stats.Selected = len(selected)

	query := func(rec *Delegation) result {
		if ctx.Err() != nil {
			return result{}
		}
		return d.query(rec)
	}

	var results []result
	if d.workers > 1 {
		mapper := iter.Mapper[Delegation, result]{MaxGoroutines: d.workers}
		results = mapper.Map(selected, query)
	} else {
		results = make([]result, 0, len(selected))
		for i := range selected {
			results = append(results, query(&selected[i]))
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	for _, res := range results {
		report.Stats.Blocks += res.blocks
		report.Stats.Matches += res.matches
		if res.diag != nil {
			report.Diagnostics = append(report.Diagnostics, *res.diag)
			continue
		}
		report.Rows = append(report.Rows, res.rows...)
	}
	report.Stats.Skipped = len(report.Diagnostics)
	report.Stats.Rows = len(report.Rows)
	log.Debugf("Driver.Run stats = %+v", report.Stats)
	return report, nil
}

func (d *Driver) query(rec *Delegation) result {
	blocks, err := cidr.Decompose(rec.Start, rec.HostCount)
	if err != nil {
		return result{diag: &Diagnostic{Line: rec.Line, Record: rec.String(), Reason: ReasonDecompose, Err: err}}
	}
	store := d.stores.Store(rec.Family)
	if store == nil {
		return result{diag: &Diagnostic{Line: rec.Line, Record: rec.String(), Reason: ReasonNoStore, Err: ErrNoStore}}
	}

	res := result{blocks: len(blocks)}
	for _, block := range blocks {
		for _, entry := range store.LookupCovered(block) {
			res.matches++
			row := NewRow(entry, rec.Status)
			if len(row.Paths) > 0 {
				res.rows = append(res.rows, row)
			}
		}
	}
	return res
}
