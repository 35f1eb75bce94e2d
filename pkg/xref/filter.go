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
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/netobserv/bgp-bogons/pkg/index"
	"github.com/pkg/errors"
)

// Filter selects the delegations to cross-reference
type Filter interface {
	Match(d *Delegation) (bool, error)
}

type statusFilter struct {
	families map[index.Family]struct{}
	statuses map[string]struct{}
}

// NewStatusFilter selects delegations by family and status. Empty lists
// default to IPv4 and to the available and reserved statuses.
func NewStatusFilter(families []index.Family, statuses []string) Filter {
	if len(families) == 0 {
		families = []index.Family{index.FamilyIPv4}
	}
	if len(statuses) == 0 {
		statuses = []string{StatusAvailable, StatusReserved}
	}
	f := &statusFilter{
		families: map[index.Family]struct{}{},
		statuses: map[string]struct{}{},
	}
	for _, fam := range families {
		f.families[fam] = struct{}{}
	}
	for _, s := range statuses {
		f.statuses[strings.ToLower(s)] = struct{}{}
	}
	return f
}

func (f *statusFilter) Match(d *Delegation) (bool, error) {
	if _, ok := f.families[d.Family]; !ok {
		return false, nil
	}
	_, ok := f.statuses[strings.ToLower(d.Status)]
	return ok, nil
}

type exprFilter struct {
	expression *govaluate.EvaluableExpression
}

// NewExprFilter selects delegations with a boolean expression over the
// parameters registry, country, family, status, start and hosts, e.g.
// `family == 'ipv4' && (status == 'reserved' || country == 'ZZ')`
func NewExprFilter(expr string) (Filter, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid delegation filter %q", expr)
	}
	return &exprFilter{expression: expression}, nil
}

func (f *exprFilter) Match(d *Delegation) (bool, error) {
	hosts, _ := d.HostCount.Big().Float64()
	result, err := f.expression.Evaluate(map[string]interface{}{
		"registry": d.Registry,
		"country":  d.Country,
		"family":   d.Family.String(),
		"status":   d.Status,
		"start":    d.Start.String(),
		"hosts":    hosts,
	})
	if err != nil {
		return false, err
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T instead of a boolean", result)
	}
	return matched, nil
}
