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
	"context"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
)

// RouteIngester reads a routing table, calling process for every announcement
type RouteIngester interface {
	Ingest(ctx context.Context, process func(api.Route)) error
}

// DelegationIngester reads registry delegations. Records that cannot be
// parsed are passed to diag and skipped.
type DelegationIngester interface {
	Ingest(ctx context.Context, process func(xref.Delegation), diag func(xref.Diagnostic)) error
}

func NewRouteIngester(params api.IngestRoutes) (RouteIngester, error) {
	switch params.Type {
	case api.IngestRoutesTypeName("File"):
		if params.File == nil {
			return nil, errors.New("missing file ingest parameters")
		}
		return NewIngestRoutesFile(*params.File)
	case api.IngestRoutesTypeName("Kafka"):
		if params.Kafka == nil {
			return nil, errors.New("missing kafka ingest parameters")
		}
		return NewIngestKafka(*params.Kafka)
	}
	return nil, errors.Errorf("unknown route ingest type %q", params.Type)
}

func NewDelegationIngester(params api.IngestDelegations) (DelegationIngester, error) {
	switch params.Type {
	case api.IngestDelegationsTypeName("File"):
		return NewIngestDelegationsFile(params)
	case api.IngestDelegationsTypeName("HTTP"):
		return NewIngestDelegationsHTTP(params)
	}
	return nil, errors.Errorf("unknown delegation ingest type %q", params.Type)
}
