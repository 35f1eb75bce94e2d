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
	"bufio"
	"context"
	"os"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxLineSize = 1024 * 1024

type ingestRoutesFile struct {
	fileName string
	format   string
}

// Ingest reads the routes file once, line by line
func (r *ingestRoutesFile) Ingest(ctx context.Context, process func(api.Route)) error {
	file, err := os.Open(r.fileName)
	if err != nil {
		return errors.Wrap(err, "can't open routes file")
	}
	defer func() {
		_ = file.Close()
	}()

	parse := func(line []byte) (api.Route, error) {
		return ParseBgpstreamLine(string(line))
	}
	if r.format == api.RouteFormatName("JSON") {
		parse = ParseJSONLine
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum, count := 0, 0
	for scanner.Scan() {
		lineNum++
		if lineNum%10000 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		route, err := parse(line)
		if err != nil {
			if errors.Is(err, ErrNotRoute) {
				skipped("file", "not_route")
				continue
			}
			skipped("file", "malformed")
			log.WithFields(log.Fields{"file": r.fileName, "line": lineNum}).WithError(err).Warn("skipping route line")
			continue
		}
		count++
		routesIngested.WithLabelValues("file").Inc()
		process(route)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", r.fileName)
	}
	log.Infof("ingested %d routes from %s", count, r.fileName)
	return nil
}

// NewIngestRoutesFile create a new route file ingester
func NewIngestRoutesFile(params api.IngestRoutesFile) (RouteIngester, error) {
	log.Debugf("entering NewIngestRoutesFile")
	if params.Filename == "" {
		return nil, errors.New("ingest filename not specified")
	}
	format := params.Format
	if format == "" {
		format = api.RouteFormatName("Bgpstream")
	}

	log.Infof("input file name = %s, format = %s", params.Filename, format)

	return &ingestRoutesFile{
		fileName: params.Filename,
		format:   format,
	}, nil
}
