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
	"fmt"

	"github.com/netobserv/bgp-bogons/pkg/config"
	"github.com/netobserv/bgp-bogons/pkg/index"
	"github.com/netobserv/bgp-bogons/pkg/pipeline/ingest"
	"github.com/netobserv/bgp-bogons/pkg/pipeline/write"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	log "github.com/sirupsen/logrus"
)

// Stage names, also used as metric and log labels
const (
	StageRoutes      = "routes"
	StageIndex       = "index"
	StageDelegations = "delegations"
	StageQuery       = "query"
	StageWrite       = "write"
)

// Error wraps any error caused by a wrong formation of the pipeline
type Error struct {
	StageName string
	wrapped   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline stage %q: %s", e.StageName, e.wrapped.Error())
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// builder instantiates the native Go object of every configured stage
type builder struct {
	cfg *config.ConfigFileStruct
}

func newBuilder(cfg *config.ConfigFileStruct) *builder {
	return &builder{cfg: cfg}
}

func (b *builder) build() (*Pipeline, error) {
	routes, err := ingest.NewRouteIngester(b.cfg.Routes)
	if err != nil {
		return nil, &Error{StageName: StageRoutes, wrapped: err}
	}
	delegations, err := ingest.NewDelegationIngester(b.cfg.Delegations)
	if err != nil {
		return nil, &Error{StageName: StageDelegations, wrapped: err}
	}
	tables, err := index.NewTables(b.cfg.Index.Backend)
	if err != nil {
		return nil, &Error{StageName: StageIndex, wrapped: err}
	}
	filter, err := b.filter()
	if err != nil {
		return nil, &Error{StageName: StageQuery, wrapped: err}
	}
	writer, err := write.NewWriter(b.cfg.Output)
	if err != nil {
		return nil, &Error{StageName: StageWrite, wrapped: err}
	}
	log.Debugf("pipeline: routes = %s, delegations = %s, index = %s, workers = %d, output = %s",
		b.cfg.Routes.Type, b.cfg.Delegations.Type, b.cfg.Index.Backend, b.cfg.Query.Workers, b.cfg.Output.Type)

	return &Pipeline{
		routes:      routes,
		delegations: delegations,
		tables:      tables,
		driver:      xref.NewDriver(tables, filter, b.cfg.Query.Workers),
		writer:      writer,
	}, nil
}

func (b *builder) filter() (xref.Filter, error) {
	q := b.cfg.Query
	if q.Filter != "" {
		return xref.NewExprFilter(q.Filter)
	}
	families := make([]index.Family, 0, len(q.Families))
	for _, f := range q.Families {
		family, err := index.ParseFamily(f)
		if err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return xref.NewStatusFilter(families, q.Statuses), nil
}
