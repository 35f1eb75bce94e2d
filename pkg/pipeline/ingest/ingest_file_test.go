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
	"testing"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/test"
	"github.com/stretchr/testify/require"
)

func TestParseBgpstreamLine(t *testing.T) {
	route, err := ParseBgpstreamLine("rib|R|1438416000.000000|ris|rrc00|None|None|4608|203.119.76.5|2.21.94.0/23|203.119.76.5|4608 1221 4637 6453 34164 34164||None|None")
	require.NoError(t, err)
	require.Equal(t, api.Route{Prefix: "2.21.94.0/23", ASPath: "4608 1221 4637 6453 34164 34164"}, route)

	route, err = ParseBgpstreamLine("update|A|1438416000.000000|ris|rrc00|None|None|4608|203.119.76.5|2001:db8::/32|203.119.76.5|4608 64496|4608:1|None|None")
	require.NoError(t, err)
	require.Equal(t, "2001:db8::/32", route.Prefix)

	_, err = ParseBgpstreamLine("update|W|1438416000.000000|ris|rrc00|None|None|4608|203.119.76.5|2.21.94.0/23|||||")
	require.ErrorIs(t, err, ErrNotRoute)

	_, err = ParseBgpstreamLine("rib|R|1438416000.000000|ris")
	require.ErrorIs(t, err, ErrMalformedLine)

	_, err = ParseBgpstreamLine("rib|R|1438416000.000000|ris|rrc00|None|None|4608|203.119.76.5|2.21.94.0/23|203.119.76.5|||None|None")
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseJSONLine(t *testing.T) {
	route, err := ParseJSONLine([]byte(`{"prefix":"192.0.2.0/24","as_path":"64496 64497","family":4}`))
	require.NoError(t, err)
	require.Equal(t, api.Route{Prefix: "192.0.2.0/24", ASPath: "64496 64497", Family: 4}, route)

	_, err = ParseJSONLine([]byte(`{"prefix":"192.0.2.0/24"}`))
	require.ErrorIs(t, err, ErrMalformedLine)
	_, err = ParseJSONLine([]byte(`{"prefix":`))
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestIngestRoutesFileBgpstream(t *testing.T) {
	path := test.CreateTempFile(t, "rib.txt", test.BgpstreamRIB)
	ingester, err := NewRouteIngester(api.IngestRoutes{Type: "file", File: &api.IngestRoutesFile{Filename: path}})
	require.NoError(t, err)

	var routes []api.Route
	require.NoError(t, ingester.Ingest(context.Background(), func(r api.Route) { routes = append(routes, r) }))
	require.Len(t, routes, 4)
	require.Equal(t, api.Route{Prefix: "2.21.94.0/23", ASPath: "4608 1221 4637 6453 34164 34164"}, routes[0])
	require.Equal(t, "8492 8492 8492 34164", routes[1].ASPath)
	require.Equal(t, "203.0.113.0/24", routes[2].Prefix)
	require.Equal(t, "2001:db8::/32", routes[3].Prefix)
}

func TestIngestRoutesFileJSON(t *testing.T) {
	content := `{"prefix":"192.0.2.0/24","as_path":"64496 64497"}
# comment

not json
{"prefix":"2001:db8::/48","as_path":"64498"}
`
	path := test.CreateTempFile(t, "routes.json", content)
	ingester, err := NewIngestRoutesFile(api.IngestRoutesFile{Filename: path, Format: "json"})
	require.NoError(t, err)

	var routes []api.Route
	require.NoError(t, ingester.Ingest(context.Background(), func(r api.Route) { routes = append(routes, r) }))
	require.Equal(t, []api.Route{
		{Prefix: "192.0.2.0/24", ASPath: "64496 64497"},
		{Prefix: "2001:db8::/48", ASPath: "64498"},
	}, routes)
}

func TestIngestRoutesFileErrors(t *testing.T) {
	_, err := NewIngestRoutesFile(api.IngestRoutesFile{})
	require.Error(t, err)

	ingester, err := NewIngestRoutesFile(api.IngestRoutesFile{Filename: "/does/not/exist"})
	require.NoError(t, err)
	require.Error(t, ingester.Ingest(context.Background(), func(api.Route) {}))

	_, err = NewRouteIngester(api.IngestRoutes{Type: "bmp"})
	require.Error(t, err)
	_, err = NewRouteIngester(api.IngestRoutes{Type: "file"})
	require.Error(t, err)
}
