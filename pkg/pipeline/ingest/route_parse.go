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
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/pkg/errors"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrNotRoute      = errors.New("line carries no route")
)

// bgpreader elem line columns
const (
	bgpstreamElemType = 1
	bgpstreamPrefix   = 9
	bgpstreamASPath   = 11
	bgpstreamMinCols  = 12
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseBgpstreamLine parses one bgpreader elem line:
// type|elem|ts|project|collector|router|router-ip|peer-asn|peer-ip|prefix|next-hop|as-path|...
// Only RIB (R) and announcement (A) elems carry a route; other elems return ErrNotRoute.
func ParseBgpstreamLine(line string) (api.Route, error) {
	cols := strings.Split(line, "|")
	if len(cols) < bgpstreamMinCols {
		return api.Route{}, errors.Wrapf(ErrMalformedLine, "%d columns", len(cols))
	}
	switch cols[bgpstreamElemType] {
	case "R", "A":
	default:
		return api.Route{}, ErrNotRoute
	}
	route := api.Route{
		Prefix: strings.TrimSpace(cols[bgpstreamPrefix]),
		ASPath: strings.TrimSpace(cols[bgpstreamASPath]),
	}
	if route.Prefix == "" || route.ASPath == "" {
		return api.Route{}, errors.Wrap(ErrMalformedLine, "empty prefix or as-path")
	}
	return route, nil
}

// ParseJSONLine decodes one api.Route json object
func ParseJSONLine(line []byte) (api.Route, error) {
	var route api.Route
	if err := jsonAPI.Unmarshal(line, &route); err != nil {
		return api.Route{}, errors.Wrap(ErrMalformedLine, err.Error())
	}
	if route.Prefix == "" || route.ASPath == "" {
		return api.Route{}, errors.Wrap(ErrMalformedLine, "empty prefix or as_path")
	}
	return route, nil
}
