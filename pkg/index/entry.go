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

import "net/netip"

// Entry holds every announcement seen for one prefix, in insertion order.
// ASPaths[i] and Origins[i] always describe the same announcement.
type Entry struct {
	Prefix  netip.Prefix
	ASPaths []string
	Origins []string
}

func newEntry(pfx netip.Prefix, asPath, origin string) *Entry {
	return &Entry{
		Prefix:  pfx,
		ASPaths: []string{asPath},
		Origins: []string{origin},
	}
}

func (e *Entry) add(asPath, origin string) {
	e.ASPaths = append(e.ASPaths, asPath)
	e.Origins = append(e.Origins, origin)
}

// Announcements returns the number of announcements merged into the entry
func (e *Entry) Announcements() int {
	return len(e.ASPaths)
}
