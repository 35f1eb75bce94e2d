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
	"sync"

	"github.com/gaissmai/bart"
)

// Bart is a Store backed by a multibit ART routing table.
// Entries are kept behind pointers so that merging an announcement never
// needs to write the table again.
type Bart struct {
	mu     sync.RWMutex
	family Family
	table  *bart.Table[*Entry]
	size   int
}

// NewBart creates an empty bart-backed store for the given family
func NewBart(family Family) *Bart {
	return &Bart{
		family: family,
		table:  new(bart.Table[*Entry]),
	}
}

func (b *Bart) Family() Family {
	return b.family
}

func (b *Bart) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

func (b *Bart) Insert(pfx netip.Prefix, asPath, origin string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.table.Get(pfx); ok {
		e.add(asPath, origin)
		return
	}
	b.table.Insert(pfx, newEntry(pfx, asPath, origin))
	b.size++
}

func (b *Bart) LookupExact(pfx netip.Prefix) (*Entry, bool) {
	if FamilyOf(pfx.Addr()) != b.family {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Get(pfx)
}

func (b *Bart) LookupCovered(pfx netip.Prefix) []*Entry {
	if FamilyOf(pfx.Addr()) != b.family {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Entry
	for _, e := range b.table.Subnets(pfx) {
		out = append(out, e)
	}
	return out
}
