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

package xref

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/netobserv/bgp-bogons/pkg/aspath"
	"github.com/netobserv/bgp-bogons/pkg/index"
	"lukechampine.com/uint128"
)

const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
)

// Diagnostic reasons, also used as metric labels
const (
	ReasonParse     = "parse"
	ReasonFilter    = "filter"
	ReasonDecompose = "decompose"
	ReasonNoStore   = "no_store"
)

// Delegation is one registry record, as parsed from a delegated-extended file
type Delegation struct {
	Registry  string
	Country   string
	Family    index.Family
	Start     netip.Addr
	HostCount uint128.Uint128
	Date      string
	Status    string
	Line      int
}

func (d *Delegation) String() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s", d.Registry, d.Country, d.Family, d.Start, d.HostCount, d.Status)
}

// Row is one output line: a routed prefix found inside a delegation
type Row struct {
	Prefix netip.Prefix
	Status string
	// normalized AS paths, one per announcement of Prefix
	Paths []string
}

// NewRow builds the row of a matched entry, normalizing each of its AS paths
func NewRow(e *index.Entry, status string) Row {
	paths := make([]string, 0, len(e.ASPaths))
	for _, p := range e.ASPaths {
		paths = append(paths, aspath.NormalizeString(p))
	}
	return Row{Prefix: e.Prefix, Status: status, Paths: paths}
}

// CSV renders the row as prefix,status,'path1','path2',...
func (r Row) CSV() string {
	quoted := make([]string, 0, len(r.Paths))
	for _, p := range r.Paths {
		quoted = append(quoted, "'"+p+"'")
	}
	return fmt.Sprintf("%s,%s,%s", r.Prefix, r.Status, strings.Join(quoted, ","))
}

// Diagnostic describes a record that was skipped, and why
type Diagnostic struct {
	Line   int
	Record string
	Reason string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d (%s): %s: %v", d.Line, d.Record, d.Reason, d.Err)
}

// Stats summarizes a cross-reference run
type Stats struct {
	Delegations int
	Selected    int
	Skipped     int
	Blocks      int
	Matches     int
	Rows        int
}

// Report is the outcome of a run: rows in input order plus what was skipped
type Report struct {
	Rows        []Row
	Diagnostics []Diagnostic
	Stats       Stats
}
