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
	"encoding/csv"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"github.com/netobserv/bgp-bogons/pkg/cidr"
	"github.com/netobserv/bgp-bogons/pkg/index"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// delegated-extended columns: registry|cc|type|start|value|date|status[|opaque-id|extensions...]
const (
	colRegistry = iota
	colCountry
	colType
	colStart
	colValue
	colDate
	colStatus
	minDelegationCols
)

var ErrMalformedRecord = errors.New("malformed delegation record")

// ParseDelegations reads a delegated-extended file. The version line, summary
// lines and asn records are skipped; malformed ip records go to diag.
// For ipv4 the value column is a host count, for ipv6 a prefix length.
func ParseDelegations(r io.Reader, process func(xref.Delegation), diag func(xref.Diagnostic)) error {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	first := true
	for {
		cols, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped("delegations", "malformed")
				diag(xref.Diagnostic{Line: parseErr.StartLine, Reason: xref.ReasonParse, Err: err})
				continue
			}
			return errors.Wrap(err, "reading delegations")
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if isVersionLine(cols) {
				continue
			}
		}
		if len(cols) > colType && (cols[colCountry] == "*" || cols[len(cols)-1] == "summary") {
			continue
		}
		if len(cols) > colType && cols[colType] == "asn" {
			skipped("delegations", "asn")
			continue
		}

		d, err := parseDelegation(cols, line)
		if err != nil {
			skipped("delegations", "malformed")
			diag(xref.Diagnostic{Line: line, Record: strings.Join(cols, "|"), Reason: xref.ReasonParse, Err: err})
			continue
		}
		delegationsIngested.WithLabelValues(d.Family.String()).Inc()
		process(d)
	}
}

func isVersionLine(cols []string) bool {
	if len(cols) == 0 || cols[0] == "" {
		return false
	}
	_, err := strconv.ParseFloat(cols[0], 64)
	return err == nil
}

func parseDelegation(cols []string, line int) (xref.Delegation, error) {
	if len(cols) < minDelegationCols {
		return xref.Delegation{}, errors.Wrapf(ErrMalformedRecord, "%d columns", len(cols))
	}
	family, err := index.ParseFamily(cols[colType])
	if err != nil {
		return xref.Delegation{}, errors.Wrap(ErrMalformedRecord, err.Error())
	}
	start, err := netip.ParseAddr(cols[colStart])
	if err != nil {
		return xref.Delegation{}, errors.Wrap(ErrMalformedRecord, err.Error())
	}
	if index.FamilyOf(start) != family {
		return xref.Delegation{}, errors.Wrapf(ErrMalformedRecord, "%s is not an %s address", start, family)
	}
	value, err := strconv.ParseUint(cols[colValue], 10, 64)
	if err != nil {
		return xref.Delegation{}, errors.Wrapf(ErrMalformedRecord, "value %q", cols[colValue])
	}

	var hosts uint128.Uint128
	switch family {
	case index.FamilyIPv4:
		if value > 1<<32 {
			return xref.Delegation{}, errors.Wrapf(ErrMalformedRecord, "host count %d out of range", value)
		}
		hosts = uint128.From64(value)
	case index.FamilyIPv6:
		if value > 128 {
			return xref.Delegation{}, errors.Wrapf(ErrMalformedRecord, "prefix length %d out of range", value)
		}
		hosts, err = cidr.HostCount(family.Bits(), int(value))
		if err != nil {
			return xref.Delegation{}, errors.Wrap(ErrMalformedRecord, err.Error())
		}
	}

	return xref.Delegation{
		Registry:  cols[colRegistry],
		Country:   cols[colCountry],
		Family:    family,
		Start:     start,
		HostCount: hosts,
		Date:      cols[colDate],
		Status:    cols[colStatus],
		Line:      line,
	}, nil
}
