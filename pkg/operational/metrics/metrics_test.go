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

package operationalMetrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestDocumentation(t *testing.T) {
	c := NewCounterVec(prometheus.CounterOpts{
		Name: "test_doc_skipped_total",
		Help: "Records skipped in a test",
	}, []string{"reason"})
	g := NewGauge(prometheus.GaugeOpts{
		Name: "test_doc_entries",
		Help: "Entries in a test",
	})
	c.WithLabelValues("parse").Add(2)
	g.Set(5)
	require.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("parse")))
	require.Equal(t, 5.0, testutil.ToFloat64(g))

	doc := GetDocumentation()
	require.Contains(t, doc, "### test_doc_skipped_total")
	require.Contains(t, doc, "| **Labels** | reason | ")
	require.Contains(t, doc, "| **Type** | gauge | ")
	// sorted by name
	require.Less(t, strings.Index(doc, "test_doc_entries"), strings.Index(doc, "test_doc_skipped_total"))
}
