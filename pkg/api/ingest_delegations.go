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

const DefaultDelegationsURL = "https://ftp.ripe.net/pub/stats/ripencc/nro-stats/latest/nro-delegated-stats"

type IngestDelegations struct {
	Type       string     `yaml:"type" json:"type" enum:"IngestDelegationsTypeEnum" doc:"(enum) source of the delegation records:"`
	Filename   string     `yaml:"filename,omitempty" json:"filename,omitempty" doc:"path of a local delegated-extended file (file type)"`
	URL        string     `yaml:"url,omitempty" json:"url,omitempty" doc:"address of the delegated-extended file (http type, default: NRO combined stats)"`
	Timeout    Duration   `yaml:"timeout,omitempty" json:"timeout,omitempty" doc:"timeout of a single download attempt (default: 5m)"`
	MaxRetries int        `yaml:"maxRetries,omitempty" json:"maxRetries,omitempty" doc:"maximum number of retries on transient failures (default: 8)"`
	TLS        *ClientTLS `yaml:"tls,omitempty" json:"tls,omitempty" doc:"TLS configuration (optional)"`
}

type IngestDelegationsTypeEnum struct {
	File string `yaml:"file" doc:"read a local file"`
	HTTP string `yaml:"http" doc:"download over http(s) with retries"`
}

func IngestDelegationsTypeName(t string) string {
	return GetEnumName(IngestDelegationsTypeEnum{}, t)
}
