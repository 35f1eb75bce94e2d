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

const (
	BackendTrie = "trie"
	BackendBart = "bart"
)

var (
	ErrInvalidPrefix   = errors.New("invalid prefix")
	ErrNonCanonical    = errors.New("prefix has bits set beyond its mask length")
	ErrMappedAddress   = errors.New("IPv4-mapped IPv6 prefixes are not accepted")
	ErrFamilyMismatch  = errors.New("prefix family does not match store family")
	ErrUnknownBackend  = errors.New("unknown index backend")
	ErrUnsupportedType = errors.New("unsupported address family")
)

// Store indexes prefixes of a single address family.
//
// Insert expects a prefix accepted by Validate and of the store's family;
// Tables.Add performs that check before reaching the store.
// LookupCovered returns entries in CIDR sort order: address ascending, and for
// equal addresses the shorter mask first. That is the depth-first order of the
// binary trie visiting the bit-0 child before the bit-1 child.
type Store interface {
	Family() Family
	Insert(pfx netip.Prefix, asPath, origin string)
	LookupExact(pfx netip.Prefix) (*Entry, bool)
	LookupCovered(pfx netip.Prefix) []*Entry
	Len() int
}

// NewStore creates an empty store of the given backend for one family
func NewStore(backend string, family Family) (Store, error) {
	if family.Bits() == 0 {
		return nil, errors.Wrapf(ErrUnsupportedType, "%v", family)
	}
	switch backend {
	case "", BackendTrie:
		return NewTrie(family), nil
	case BackendBart:
		return NewBart(family), nil
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
}

// Validate checks that a prefix is well-formed for indexing: valid, canonical
// and not an IPv4-mapped IPv6 prefix.
func Validate(pfx netip.Prefix) error {
	if !pfx.IsValid() {
		return errors.Wrapf(ErrInvalidPrefix, "%v", pfx)
	}
	if pfx.Addr().Is4In6() {
		return errors.Wrapf(ErrMappedAddress, "%v", pfx)
	}
	if pfx.Masked() != pfx {
		return errors.Wrapf(ErrNonCanonical, "%v", pfx)
	}
	return nil
}

// ParsePrefix parses a CIDR string and validates it
func ParsePrefix(s string) (netip.Prefix, error) {
	pfx, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, errors.Wrap(ErrInvalidPrefix, err.Error())
	}
	if err := Validate(pfx); err != nil {
		return netip.Prefix{}, err
	}
	return pfx, nil
}
