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

package aspath

import (
	"errors"
	"strings"
)

var ErrEmptyPath = errors.New("empty AS path")

// Parse splits a space-delimited AS path into its tokens
func Parse(path string) []string {
	return strings.Fields(path)
}

// Normalize removes AS-path prepending: every run of consecutive identical
// tokens is collapsed into one. Repeats that are not adjacent are kept.
func Normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i, asn := range tokens {
		if i > 0 && asn == tokens[i-1] {
			continue
		}
		out = append(out, asn)
	}
	return out
}

// NormalizeString parses, normalizes and re-joins a path with single spaces
func NormalizeString(path string) string {
	return strings.Join(Normalize(Parse(path)), " ")
}

// Origin returns the originating AS of a path, i.e. its rightmost token
func Origin(path string) (string, error) {
	tokens := Parse(path)
	if len(tokens) == 0 {
		return "", ErrEmptyPath
	}
	return tokens[len(tokens)-1], nil
}
