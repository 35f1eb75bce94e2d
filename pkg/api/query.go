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

package api

type Index struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty" enum:"IndexBackendEnum" doc:"(enum) prefix index implementation:"`
}

type IndexBackendEnum struct {
	Trie string `yaml:"trie" doc:"binary trie, one node per address bit (default)"`
	Bart string `yaml:"bart" doc:"multibit trie from github.com/gaissmai/bart"`
}

func IndexBackendName(b string) string {
	return GetEnumName(IndexBackendEnum{}, b)
}

type Query struct {
	Families []string `yaml:"families,omitempty" json:"families,omitempty" doc:"address families of the delegations to check (default: ipv4)"`
	Statuses []string `yaml:"statuses,omitempty" json:"statuses,omitempty" doc:"delegation statuses to check (default: available, reserved)"`
	Filter   string   `yaml:"filter,omitempty" json:"filter,omitempty" doc:"boolean expression over registry, country, family, status, start and hosts; replaces families and statuses"`
	Workers  int      `yaml:"workers,omitempty" json:"workers,omitempty" doc:"number of delegations queried concurrently (default: 1)"`
}
