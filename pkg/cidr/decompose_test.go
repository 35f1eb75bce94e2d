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

package cidr

import (
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
	"go4.org/netipx"
	"lukechampine.com/uint128"
)

func toStrings(pfxs []netip.Prefix) []string {
	out := make([]string, 0, len(pfxs))
	for _, p := range pfxs {
		out = append(out, p.String())
	}
	return out
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		count    uint64
		expected []string
	}{
		{name: "aligned /24", start: "10.0.0.0", count: 256, expected: []string{"10.0.0.0/24"}},
		{name: "unaligned pair", start: "10.0.0.1", count: 2, expected: []string{"10.0.0.1/32", "10.0.0.2/32"}},
		{name: "single host", start: "192.0.2.7", count: 1, expected: []string{"192.0.2.7/32"}},
		{name: "zero", start: "192.0.2.0", count: 0, expected: []string{}},
		{
			name:     "registry block not a power of two",
			start:    "212.122.224.0",
			count:    8192 + 1024,
			expected: []string{"212.122.224.0/19", "212.123.0.0/22"},
		},
		{
			name:     "unaligned start and end",
			start:    "10.0.0.3",
			count:    10,
			expected: []string{"10.0.0.3/32", "10.0.0.4/30", "10.0.0.8/30", "10.0.0.12/32"},
		},
		{name: "whole IPv4 space", start: "0.0.0.0", count: 1 << 32, expected: []string{"0.0.0.0/0"}},
		{name: "last address", start: "255.255.255.255", count: 1, expected: []string{"255.255.255.255/32"}},
		{name: "ipv6 /112", start: "2001:db8::", count: 1 << 16, expected: []string{"2001:db8::/112"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := DecomposeCount(netip.MustParseAddr(tt.start), tt.count)
			require.NoError(t, err)
			require.Equal(t, tt.expected, toStrings(blocks))
		})
	}
}

func TestDecomposeIPv6HostCount(t *testing.T) {
	count, err := HostCount(128, 32)
	require.NoError(t, err)
	blocks, err := Decompose(netip.MustParseAddr("2001:db8::"), count)
	require.NoError(t, err)
	require.Equal(t, []string{"2001:db8::/32"}, toStrings(blocks))

	// ends exactly on the last IPv6 address
	count, err = HostCount(128, 1)
	require.NoError(t, err)
	blocks, err = Decompose(netip.MustParseAddr("8000::"), count)
	require.NoError(t, err)
	require.Equal(t, []string{"8000::/1"}, toStrings(blocks))

	_, err = HostCount(128, 0)
	require.ErrorIs(t, err, ErrRangeOverflow)
	_, err = HostCount(32, 33)
	require.Error(t, err)
}

func TestDecomposeErrors(t *testing.T) {
	_, err := DecomposeCount(netip.MustParseAddr("255.255.255.0"), 257)
	require.ErrorIs(t, err, ErrRangeOverflow)

	_, err = DecomposeCount(netip.MustParseAddr("0.0.0.1"), 1<<32)
	require.ErrorIs(t, err, ErrRangeOverflow)

	_, err = Decompose(netip.MustParseAddr("ffff::"), uint128.Max)
	require.ErrorIs(t, err, ErrRangeOverflow)

	_, err = DecomposeCount(netip.Addr{}, 1)
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = DecomposeCount(netip.MustParseAddr("::ffff:10.0.0.0"), 1)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

// blocks must match the canonical range decomposition of netipx
func TestDecomposeMatchesNetipx(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		startV := uint64(rnd.Uint32())
		count := uint64(rnd.Intn(1<<20)) + 1
		if startV+count-1 > 0xffffffff {
			count = 0xffffffff - startV + 1
		}
		start := Uint128ToAddr(uint128.From64(startV), 32)
		end := Uint128ToAddr(uint128.From64(startV+count-1), 32)

		blocks, err := DecomposeCount(start, count)
		require.NoError(t, err)
		require.Equal(t, netipx.IPRangeFrom(start, end).Prefixes(), blocks, "start %s count %d", start, count)
	}
}

func TestDecomposeIPv6MatchesNetipx(t *testing.T) {
	start := netip.MustParseAddr("2001:db8::3")
	count := uint128.From64(1).Lsh(70).Add64(12345)
	end := Uint128ToAddr(AddrToUint128(start).Add(count).Sub64(1), 128)

	blocks, err := Decompose(start, count)
	require.NoError(t, err)
	require.Equal(t, netipx.IPRangeFrom(start, end).Prefixes(), blocks)
}

func TestAddrConversions(t *testing.T) {
	for _, s := range []string{"0.0.0.0", "10.1.2.3", "255.255.255.255", "::", "2001:db8::1", "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"} {
		addr := netip.MustParseAddr(s)
		require.Equal(t, addr, Uint128ToAddr(AddrToUint128(addr), addr.BitLen()))
	}
	require.Equal(t, uint128.From64(0x0a010203), AddrToUint128(netip.MustParseAddr("10.1.2.3")))
}
