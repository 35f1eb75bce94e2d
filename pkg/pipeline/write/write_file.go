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
	"os"
	"path/filepath"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type writeFile struct {
	fileName string
}

// Write replaces the report file atomically: rows go to a temporary file in
// the same directory, which is then renamed over the target
func (w *writeFile) Write(_ context.Context, rows []xref.Row) error {
	dir := filepath.Dir(w.fileName)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.fileName)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temporary report file")
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(EncodeCSV(rows)); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "syncing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), w.fileName); err != nil {
		return errors.Wrapf(err, "renaming report to %s", w.fileName)
	}
	rowsWritten.WithLabelValues("file").Add(float64(len(rows)))
	log.Infof("wrote %d rows to %s", len(rows), w.fileName)
	return nil
}

// NewWriteFile create a new writer of a local csv report
func NewWriteFile(params api.WriteFile) (Writer, error) {
	fileName := params.Filename
	if fileName == "" {
		fileName = api.DefaultOutputFilename
	}
	log.Debugf("NewWriteFile, filename = %s", fileName)
	return &writeFile{fileName: fileName}, nil
}
