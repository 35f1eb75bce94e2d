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
)

// trieNode is one bit position of the trie. A nil entry marks a structural node.
type trieNode struct {
	children [2]*trieNode
	entry    *Entry
}

// Trie is a binary trie over address bits, one level per bit.
type Trie struct {
	mu     sync.RWMutex
	family Family
	root   *trieNode
	size   int
}

// NewTrie creates an empty trie for the given family
func NewTrie(family Family) *Trie {
	return &Trie{
		family: family,
		root:   &trieNode{},
	}
}

func (t *Trie) Family() Family {
	return t.family
}

// Len returns the number of distinct prefixes stored
func (t *Trie) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Insert merges one announcement into the entry of pfx, creating the entry
// and any missing structural nodes on the way.
func (t *Trie) Insert(pfx netip.Prefix, asPath, origin string) {
	key := addrBytes(pfx.Addr())

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for i := 0; i < pfx.Bits(); i++ {
		b := bitAt(key, i)
		if n.children[b] == nil {
			n.children[b] = &trieNode{}
		}
		n = n.children[b]
	}

	if n.entry == nil {
		n.entry = newEntry(pfx, asPath, origin)
		t.size++
		return
	}
	n.entry.add(asPath, origin)
}

// LookupExact returns the entry stored for exactly pfx
func (t *Trie) LookupExact(pfx netip.Prefix) (*Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.descend(pfx)
	if n == nil || n.entry == nil {
		return nil, false
	}
	return n.entry, true
}

// LookupCovered returns every stored entry equal to or more specific than pfx
func (t *Trie) LookupCovered(pfx netip.Prefix) []*Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.descend(pfx)
	if n == nil {
		return nil
	}
	var out []*Entry
	collect(n, &out)
	return out
}

func (t *Trie) descend(pfx netip.Prefix) *trieNode {
	if FamilyOf(pfx.Addr()) != t.family {
		return nil
	}
	key := addrBytes(pfx.Addr())
	n := t.root
	for i := 0; i < pfx.Bits(); i++ {
		n = n.children[bitAt(key, i)]
		if n == nil {
			return nil
		}
	}
	return n
}

// collect walks the subtree depth-first: the node itself, then bit 0, then bit 1.
func collect(n *trieNode, out *[]*Entry) {
	if n.entry != nil {
		*out = append(*out, n.entry)
	}
	for _, child := range n.children {
		if child != nil {
			collect(child, out)
		}
	}
}

func addrBytes(addr netip.Addr) []byte {
	if addr.Is4() {
		a4 := addr.As4()
		return a4[:]
	}
	a16 := addr.As16()
	return a16[:]
}

// bitAt returns bit i of key, bit 0 being the most significant bit of key[0]
func bitAt(key []byte, i int) int {
	return int(key[i/8]>>(7-uint(i%8))) & 1
}
