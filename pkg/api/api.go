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

const TagYaml = "yaml"
const TagDoc = "doc"
const TagEnum = "enum"

// Note: items beginning with doc: "## title" are top level items that get divided into sections inside api.md.

type API struct {
	IngestRoutes      IngestRoutes      `yaml:"routes" doc:"## Route ingest API\nFollowing is the supported API format for routing table ingest:\n"`
	IngestDelegations IngestDelegations `yaml:"delegations" doc:"## Delegation ingest API\nFollowing is the supported API format for registry delegation ingest:\n"`
	Index             Index             `yaml:"index" doc:"## Index API\nFollowing is the supported API format for the prefix index:\n"`
	Query             Query             `yaml:"query" doc:"## Query API\nFollowing is the supported API format for the cross-reference query:\n"`
	Write             Write             `yaml:"output" doc:"## Write API\nFollowing is the supported API format for report output:\n"`
}
