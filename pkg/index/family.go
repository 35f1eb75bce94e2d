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
	"fmt"
	"net/netip"
	"strings"

	"github.com/pkg/errors"
)

// Family is an address family, as announced in routing data (4 or 6)
type Family int

const (
	FamilyUnknown Family = 0
	FamilyIPv4    Family = 4
	FamilyIPv6    Family = 6
)

// Bits returns the address width of the family
func (f Family) Bits() int {
	switch f {
	case FamilyIPv4:
		return 32
	case FamilyIPv6:
		return 128
	}
	return 0
}

// String returns the registry spelling of the family: ipv4 or ipv6
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// FamilyOf returns the family of an address. IPv4-mapped IPv6 addresses are IPv6.
func FamilyOf(addr netip.Addr) Family {
	switch {
	case addr.Is4():
		return FamilyIPv4
	case addr.Is6():
		return FamilyIPv6
	}
	return FamilyUnknown
}

// ParseFamily accepts both the registry spelling (ipv4, ipv6) and the numeric one (4, 6)
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ipv4", "4":
		return FamilyIPv4, nil
	case "ipv6", "6":
		return FamilyIPv6, nil
	}
	return FamilyUnknown, errors.Errorf("unknown address family %q", s)
}
