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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablesAddDispatchesByFamily(t *testing.T) {
	tables, err := NewTables(BackendTrie)
	require.NoError(t, err)

	require.NoError(t, tables.Add(netip.MustParsePrefix("192.0.2.0/24"), FamilyIPv4, "1 2", "2"))
	require.NoError(t, tables.Add(netip.MustParsePrefix("2001:db8::/32"), FamilyUnknown, "1 3", "3"))

	v4, v6 := tables.Len()
	require.Equal(t, 1, v4)
	require.Equal(t, 1, v6)

	_, ok := tables.Store(FamilyIPv4).LookupExact(netip.MustParsePrefix("192.0.2.0/24"))
	require.True(t, ok)
	_, ok = tables.Store(FamilyIPv6).LookupExact(netip.MustParsePrefix("2001:db8::/32"))
	require.True(t, ok)
	require.Nil(t, tables.Store(FamilyUnknown))
}

func TestTablesAddRejectsMalformed(t *testing.T) {
	tables, err := NewTables(BackendBart)
	require.NoError(t, err)

	tests := []struct {
		name   string
		pfx    netip.Prefix
		family Family
		err    error
	}{
		{name: "host bits set", pfx: netip.MustParsePrefix("192.0.2.1/24"), err: ErrNonCanonical},
		{name: "invalid", pfx: netip.Prefix{}, err: ErrInvalidPrefix},
		{name: "mapped", pfx: netip.MustParsePrefix("::ffff:192.0.2.0/120"), err: ErrMappedAddress},
		{name: "family mismatch", pfx: netip.MustParsePrefix("192.0.2.0/24"), family: FamilyIPv6, err: ErrFamilyMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tables.Add(tt.pfx, tt.family, "1", "1"), tt.err)
		})
	}
	v4, v6 := tables.Len()
	require.Zero(t, v4)
	require.Zero(t, v6)

	require.EqualError(t, tables.Add(netip.MustParsePrefix("192.0.2.0/24"), FamilyIPv6, "1", "1"),
		"192.0.2.0/24 announced as ipv6: prefix family does not match store family")
}

func TestParsePrefix(t *testing.T) {
	pfx, err := ParsePrefix("2.21.94.0/23")
	require.NoError(t, err)
	require.Equal(t, 23, pfx.Bits())

	_, err = ParsePrefix("2.21.94.0/33")
	require.ErrorIs(t, err, ErrInvalidPrefix)
	_, err = ParsePrefix("2.21.95.0/23")
	require.ErrorIs(t, err, ErrNonCanonical)
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("ipv4")
	require.NoError(t, err)
	require.Equal(t, FamilyIPv4, f)
	require.Equal(t, 32, f.Bits())

	f, err = ParseFamily("6")
	require.NoError(t, err)
	require.Equal(t, FamilyIPv6, f)
	require.Equal(t, "ipv6", f.String())

	_, err = ParseFamily("asn")
	require.Error(t, err)
}
