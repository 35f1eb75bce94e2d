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
	"sync"

	"github.com/netobserv/bgp-bogons/pkg/xref"
	log "github.com/sirupsen/logrus"
)

// WriteFake keeps the rows in memory, for tests
type WriteFake struct {
	mutex sync.Mutex
	Rows  []xref.Row
	Err   error
}

// Write stores in memory all rows, or fails with Err when set
func (w *WriteFake) Write(_ context.Context, rows []xref.Row) error {
	log.Debugf("writeFake: number of rows = %d", len(rows))
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Rows = append(w.Rows, rows...)
	return nil
}
