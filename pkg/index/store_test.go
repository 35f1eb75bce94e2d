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
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []string{BackendTrie, BackendBart}

func newTestStore(t *testing.T, backend string, family Family) Store {
	s, err := NewStore(backend, family)
	require.NoError(t, err)
	return s
}

func prefixesOf(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Prefix.String())
	}
	return out
}

func TestInsertMergesSamePrefix(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := newTestStore(t, backend, FamilyIPv4)
			pfx := netip.MustParsePrefix("203.0.113.0/24")
			s.Insert(pfx, "4608 1221 4637", "4637")
			s.Insert(pfx, "701 701 4637", "4637")

			require.Equal(t, 1, s.Len())
			e, ok := s.LookupExact(pfx)
			require.True(t, ok)
			require.Equal(t, []string{"4608 1221 4637", "701 701 4637"}, e.ASPaths)
			require.Equal(t, []string{"4637", "4637"}, e.Origins)
			require.Equal(t, 2, e.Announcements())
		})
	}
}

func TestLookupExact(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := newTestStore(t, backend, FamilyIPv4)
			s.Insert(netip.MustParsePrefix("10.0.0.0/8"), "1 2", "2")
			s.Insert(netip.MustParsePrefix("10.1.0.0/16"), "1 3", "3")

			_, ok := s.LookupExact(netip.MustParsePrefix("10.0.0.0/8"))
			assert.True(t, ok)
			_, ok = s.LookupExact(netip.MustParsePrefix("10.1.0.0/16"))
			assert.True(t, ok)

			// structural node on the path to 10.1.0.0/16, never inserted
			_, ok = s.LookupExact(netip.MustParsePrefix("10.0.0.0/12"))
			assert.False(t, ok)
			_, ok = s.LookupExact(netip.MustParsePrefix("10.1.0.0/24"))
			assert.False(t, ok)
			_, ok = s.LookupExact(netip.MustParsePrefix("192.168.0.0/16"))
			assert.False(t, ok)
			// other family
			_, ok = s.LookupExact(netip.MustParsePrefix("2001:db8::/32"))
			assert.False(t, ok)
		})
	}
}

func TestLookupCovered(t *testing.T) {
	stored := []string{
		"0.0.0.0/0",
		"10.0.0.0/8",
		"10.0.0.0/16",
		"10.0.0.0/24",
		"10.0.1.0/24",
		"10.128.0.0/9",
		"10.1.2.3/32",
		"11.0.0.0/8",
		"203.0.113.0/24",
	}
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "subtree with exact match first",
			query:    "10.0.0.0/8",
			expected: []string{"10.0.0.0/8", "10.0.0.0/16", "10.0.0.0/24", "10.0.1.0/24", "10.1.2.3/32", "10.128.0.0/9"},
		},
		{
			name:     "subtree without exact match",
			query:    "10.0.0.0/15",
			expected: []string{"10.0.0.0/16", "10.0.0.0/24", "10.0.1.0/24", "10.1.2.3/32"},
		},
		{
			name:     "exact only",
			query:    "203.0.113.0/24",
			expected: []string{"203.0.113.0/24"},
		},
		{
			name:     "host route",
			query:    "10.1.2.3/32",
			expected: []string{"10.1.2.3/32"},
		},
		{
			name:     "no structural path",
			query:    "192.168.0.0/16",
			expected: []string{},
		},
		{
			name:     "less specific stored prefixes are not returned",
			query:    "10.0.0.0/23",
			expected: []string{"10.0.0.0/24", "10.0.1.0/24"},
		},
	}
	for _, backend := range backends {
		s := newTestStore(t, backend, FamilyIPv4)
		for _, p := range stored {
			s.Insert(netip.MustParsePrefix(p), "65000", "65000")
		}
		for _, tt := range tests {
			t.Run(backend+"/"+tt.name, func(t *testing.T) {
				got := s.LookupCovered(netip.MustParsePrefix(tt.query))
				require.Equal(t, tt.expected, prefixesOf(got))
			})
		}
		t.Run(backend+"/whole space", func(t *testing.T) {
			got := s.LookupCovered(netip.MustParsePrefix("0.0.0.0/0"))
			require.Len(t, got, len(stored))
			require.Equal(t, "0.0.0.0/0", got[0].Prefix.String())
		})
	}
}

func TestLookupCoveredIPv6(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := newTestStore(t, backend, FamilyIPv6)
			s.Insert(netip.MustParsePrefix("2001:db8::/32"), "3333 1299", "1299")
			s.Insert(netip.MustParsePrefix("2001:db8:1::/48"), "3333 174", "174")
			s.Insert(netip.MustParsePrefix("2001:db9::/32"), "3333 2914", "2914")

			got := s.LookupCovered(netip.MustParsePrefix("2001:db8::/32"))
			require.Equal(t, []string{"2001:db8::/32", "2001:db8:1::/48"}, prefixesOf(got))
			require.Empty(t, s.LookupCovered(netip.MustParsePrefix("2001:db8:2::/48")))
			require.Empty(t, s.LookupCovered(netip.MustParsePrefix("10.0.0.0/8")))
		})
	}
}

// the covering query must return exactly the stored prefixes whose leading bits match the query
func TestLookupCoveredMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	var stored []netip.Prefix
	for i := 0; i < 2000; i++ {
		a4 := [4]byte{10, byte(rnd.Intn(4)), byte(rnd.Intn(256)), byte(rnd.Intn(256))}
		pfx, err := netip.AddrFrom4(a4).Prefix(8 + rnd.Intn(25))
		require.NoError(t, err)
		stored = append(stored, pfx)
	}
	queries := []string{"10.0.0.0/8", "10.1.0.0/16", "10.2.128.0/17", "10.3.3.0/24", "10.0.0.0/30", "11.0.0.0/8"}

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := newTestStore(t, backend, FamilyIPv4)
			for _, p := range stored {
				s.Insert(p, "1", "1")
			}
			for _, q := range queries {
				query := netip.MustParsePrefix(q)
				expected := map[netip.Prefix]struct{}{}
				for _, p := range stored {
					if p.Bits() >= query.Bits() && query.Contains(p.Addr()) {
						expected[p] = struct{}{}
					}
				}
				got := s.LookupCovered(query)
				require.Len(t, got, len(expected), "query %s", q)
				for _, e := range got {
					_, ok := expected[e.Prefix]
					require.True(t, ok, "unexpected %s for query %s", e.Prefix, q)
				}
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	trie := newTestStore(t, BackendTrie, FamilyIPv4)
	bt := newTestStore(t, BackendBart, FamilyIPv4)
	for i := 0; i < 1000; i++ {
		a4 := [4]byte{byte(rnd.Intn(8)), byte(rnd.Intn(256)), byte(rnd.Intn(256)), 0}
		pfx, err := netip.AddrFrom4(a4).Prefix(rnd.Intn(25))
		require.NoError(t, err)
		trie.Insert(pfx, "a", "a")
		bt.Insert(pfx, "a", "a")
	}
	require.Equal(t, trie.Len(), bt.Len())
	for _, q := range []string{"0.0.0.0/0", "0.0.0.0/5", "1.0.0.0/8", "2.3.0.0/16", "7.255.0.0/16"} {
		query := netip.MustParsePrefix(q)
		require.Equal(t, prefixesOf(trie.LookupCovered(query)), prefixesOf(bt.LookupCovered(query)), "query %s", q)
	}
}

func TestNewStoreErrors(t *testing.T) {
	_, err := NewStore("patricia", FamilyIPv4)
	require.ErrorIs(t, err, ErrUnknownBackend)
	_, err = NewStore(BackendTrie, FamilyUnknown)
	require.ErrorIs(t, err, ErrUnsupportedType)
}
