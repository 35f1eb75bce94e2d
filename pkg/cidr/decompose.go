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

// Package cidr converts numeric address ranges into CIDR blocks.
//
// Addresses of both families are handled as 128-bit unsigned integers; an
// IPv4 address occupies the low 32 bits.
package cidr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"lukechampine.com/uint128"
)

var (
	ErrInvalidAddress = errors.New("invalid start address")
	ErrRangeOverflow  = errors.New("range exceeds the address family")
)

var maxIPv4 = uint128.From64(0xffffffff)

// Decompose returns the minimal ordered list of CIDR blocks whose union is
// exactly [start, start+hostCount-1]. A zero hostCount yields an empty list.
func Decompose(start netip.Addr, hostCount uint128.Uint128) ([]netip.Prefix, error) {
	if !start.IsValid() || start.Is4In6() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, start)
	}
	start = start.WithZone("")
	if hostCount.IsZero() {
		return []netip.Prefix{}, nil
	}

	width := start.BitLen()
	cur := AddrToUint128(start)
	if hostCount.Sub64(1).Cmp(maxOf(width).Sub(cur)) > 0 {
		return nil, fmt.Errorf("%w: %v + %v hosts", ErrRangeOverflow, start, hostCount)
	}

	var blocks []netip.Prefix
	remaining := hostCount
	for !remaining.IsZero() {
		// largest block aligned on cur...
		size := cur.TrailingZeros()
		if size > width {
			size = width
		}
		// ...that does not exceed what is left
		if fit := remaining.Len() - 1; fit < size {
			size = fit
		}
		blocks = append(blocks, netip.PrefixFrom(Uint128ToAddr(cur, width), width-size))

		block := uint128.From64(1).Lsh(uint(size))
		remaining = remaining.Sub(block)
		cur = cur.AddWrap(block)
	}
	return blocks, nil
}

// DecomposeCount is Decompose for host counts that fit in 64 bits
func DecomposeCount(start netip.Addr, hostCount uint64) ([]netip.Prefix, error) {
	return Decompose(start, uint128.From64(hostCount))
}

// HostCount returns the number of addresses in a block of the given prefix
// length, for an address width of 32 or 128. A /0 in IPv6 (2^128) does not
// fit and is reported as an overflow.
func HostCount(width, bits int) (uint128.Uint128, error) {
	if (width != 32 && width != 128) || bits < 0 || bits > width {
		return uint128.Zero, fmt.Errorf("invalid prefix length /%d for a %d-bit address", bits, width)
	}
	if width-bits == 128 {
		return uint128.Zero, fmt.Errorf("%w: /0 holds 2^128 addresses", ErrRangeOverflow)
	}
	return uint128.From64(1).Lsh(uint(width - bits)), nil
}

// AddrToUint128 returns the numeric value of an address
func AddrToUint128(addr netip.Addr) uint128.Uint128 {
	if addr.Is4() {
		a4 := addr.As4()
		return uint128.From64(uint64(binary.BigEndian.Uint32(a4[:])))
	}
	a16 := addr.As16()
	return uint128.FromBytesBE(a16[:])
}

// Uint128ToAddr builds an address of the given width (32 or 128) from its numeric value
func Uint128ToAddr(v uint128.Uint128, width int) netip.Addr {
	if width == 32 {
		var a4 [4]byte
		binary.BigEndian.PutUint32(a4[:], uint32(v.Lo))
		return netip.AddrFrom4(a4)
	}
	var a16 [16]byte
	v.PutBytesBE(a16[:])
	return netip.AddrFrom16(a16)
}

func maxOf(width int) uint128.Uint128 {
	if width == 32 {
		return maxIPv4
	}
	return uint128.Max
}
