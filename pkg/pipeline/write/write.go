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
	"bytes"
	"context"

	"github.com/netobserv/bgp-bogons/pkg/api"
	operationalMetrics "github.com/netobserv/bgp-bogons/pkg/operational/metrics"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Writer outputs the report of a run, once
type Writer interface {
	Write(ctx context.Context, rows []xref.Row) error
}

var rowsWritten = operationalMetrics.NewCounterVec(prometheus.CounterOpts{
	Name: "write_rows_total",
	Help: "Number of report rows written",
}, []string{"type"})

func NewWriter(params api.Write) (Writer, error) {
	switch params.Type {
	case api.WriteTypeName("Stdout"):
		p := api.WriteStdout{}
		if params.Stdout != nil {
			p = *params.Stdout
		}
		return NewWriteStdout(p)
	case api.WriteTypeName("File"):
		p := api.WriteFile{}
		if params.File != nil {
			p = *params.File
		}
		return NewWriteFile(p)
	case api.WriteTypeName("S3"):
		if params.S3 == nil {
			return nil, errors.New("missing s3 write parameters")
		}
		return NewWriteS3(*params.S3)
	}
	return nil, errors.Errorf("unknown write type %q", params.Type)
}

// EncodeCSV renders rows one per line, without header
func EncodeCSV(rows []xref.Row) []byte {
	var buf bytes.Buffer
	for _, r := range rows {
		buf.WriteString(r.CSV())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
