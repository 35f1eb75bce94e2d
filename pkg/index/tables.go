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

package index

import (
	"net/netip"

	"github.com/pkg/errors"
)

// Tables holds one Store per address family and dispatches by prefix family.
type Tables struct {
	v4 Store
	v6 Store
}

// NewTables creates an IPv4 and an IPv6 store of the same backend
func NewTables(backend string) (*Tables, error) {
	v4, err := NewStore(backend, FamilyIPv4)
	if err != nil {
		return nil, err
	}
	v6, err := NewStore(backend, FamilyIPv6)
	if err != nil {
		return nil, err
	}
	return &Tables{v4: v4, v6: v6}, nil
}

// Store returns the store of a family, or nil when the family is not indexed
func (t *Tables) Store(family Family) Store {
	switch family {
	case FamilyIPv4:
		return t.v4
	case FamilyIPv6:
		return t.v6
	}
	return nil
}

// Add validates pfx and merges the announcement into the store of its family.
// When family is not FamilyUnknown it must agree with the prefix.
func (t *Tables) Add(pfx netip.Prefix, family Family, asPath, origin string) error {
	if err := Validate(pfx); err != nil {
		return err
	}
	pfxFamily := FamilyOf(pfx.Addr())
	if family != FamilyUnknown && family != pfxFamily {
		return errors.Wrapf(ErrFamilyMismatch, "%v announced as %v", pfx, family)
	}
	store := t.Store(pfxFamily)
	if store == nil {
		return errors.Wrapf(ErrUnsupportedType, "%v", pfxFamily)
	}
	store.Insert(pfx, asPath, origin)
	return nil
}

// Len returns the number of distinct prefixes per family
func (t *Tables) Len() (v4, v6 int) {
	return t.v4.Len(), t.v6.Len()
}
