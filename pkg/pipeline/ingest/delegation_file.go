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
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ingestDelegationsFile struct {
	fileName string
}

func (r *ingestDelegationsFile) Ingest(ctx context.Context, process func(xref.Delegation), diag func(xref.Diagnostic)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := os.Open(r.fileName)
	if err != nil {
		return errors.Wrap(err, "can't open delegations file")
	}
	defer func() {
		_ = file.Close()
	}()
	log.Infof("reading delegations from %s", r.fileName)
	return ParseDelegations(bufio.NewReader(file), process, diag)
}

// NewIngestDelegationsFile create a new ingester of a local delegated-extended file
func NewIngestDelegationsFile(params api.IngestDelegations) (DelegationIngester, error) {
	if params.Filename == "" {
		return nil, errors.New("delegations filename not specified")
	}
	return &ingestDelegationsFile{fileName: params.Filename}, nil
}
