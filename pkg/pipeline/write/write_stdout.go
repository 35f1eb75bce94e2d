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

package write

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jsonRow struct {
	Prefix  string   `json:"prefix"`
	Status  string   `json:"status"`
	ASPaths []string `json:"as_paths"`
}

type writeStdout struct {
	format string
	out    io.Writer
}

// Write prints the rows to standard output
func (t *writeStdout) Write(_ context.Context, rows []xref.Row) error {
	log.Debugf("entering writeStdout Write")
	log.Debugf("writeStdout: number of rows = %d", len(rows))
	if t.format == "json" {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(t.out)
		for _, r := range rows {
			if err := enc.Encode(jsonRow{Prefix: r.Prefix.String(), Status: r.Status, ASPaths: r.Paths}); err != nil {
				return errors.Wrap(err, "writing to stdout")
			}
		}
	} else {
		for _, r := range rows {
			if _, err := fmt.Fprintln(t.out, r.CSV()); err != nil {
				return errors.Wrap(err, "writing to stdout")
			}
		}
	}
	rowsWritten.WithLabelValues("stdout").Add(float64(len(rows)))
	return nil
}

// NewWriteStdout create a new write
func NewWriteStdout(params api.WriteStdout) (Writer, error) {
	log.Debugf("entering NewWriteStdout")
	switch params.Format {
	case "", "csv", "json":
	default:
		return nil, errors.Errorf("unknown stdout format %q", params.Format)
	}
	return &writeStdout{
		format: params.Format,
		out:    os.Stdout,
	}, nil
}
