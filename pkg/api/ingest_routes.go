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

// Route is one announcement of a routing table: a prefix and the AS path it was heard with
type Route struct {
	Prefix string `yaml:"prefix" json:"prefix" doc:"announced prefix, in CIDR notation"`
	ASPath string `yaml:"as_path" json:"as_path" doc:"space-delimited AS path, origin last"`
	Family int    `yaml:"family,omitempty" json:"family,omitempty" doc:"address family (4 or 6); derived from the prefix when unset"`
}

type IngestRoutes struct {
	Type  string            `yaml:"type" json:"type" enum:"IngestRoutesTypeEnum" doc:"(enum) source of the routing table:"`
	File  *IngestRoutesFile `yaml:"file,omitempty" json:"file,omitempty" doc:"parameters for the file ingester"`
	Kafka *IngestKafka      `yaml:"kafka,omitempty" json:"kafka,omitempty" doc:"parameters for the kafka ingester"`
}

type IngestRoutesTypeEnum struct {
	File  string `yaml:"file" doc:"read routes from a local file"`
	Kafka string `yaml:"kafka" doc:"consume routes from a kafka topic"`
}

func IngestRoutesTypeName(t string) string {
	return GetEnumName(IngestRoutesTypeEnum{}, t)
}

type IngestRoutesFile struct {
	Filename string `yaml:"filename" json:"filename" doc:"path of the routes file"`
	Format   string `yaml:"format,omitempty" json:"format,omitempty" enum:"RouteFormatEnum" doc:"(enum) format of each line:"`
}

type RouteFormatEnum struct {
	Bgpstream string `yaml:"bgpstream" doc:"pipe-delimited bgpreader elem lines (default)"`
	JSON      string `yaml:"json" doc:"one Route json object per line"`
}

func RouteFormatName(f string) string {
	return GetEnumName(RouteFormatEnum{}, f)
}

type IngestKafka struct {
	Brokers     []string   `yaml:"brokers,omitempty" json:"brokers,omitempty" doc:"list of kafka broker addresses"`
	Topic       string     `yaml:"topic,omitempty" json:"topic,omitempty" doc:"kafka topic to listen on"`
	GroupID     string     `yaml:"groupId,omitempty" json:"groupId,omitempty" doc:"separate groupId for each consumer on specified topic"`
	StartOffset string     `yaml:"startOffset,omitempty" json:"startOffset,omitempty" doc:"FirstOffset (least recent - default) or LastOffset (most recent) offset available for a partition"`
	MaxMessages int        `yaml:"maxMessages,omitempty" json:"maxMessages,omitempty" doc:"stop after reading this many messages (default: unbounded)"`
	IdleTimeout Duration   `yaml:"idleTimeout,omitempty" json:"idleTimeout,omitempty" doc:"stop when no message arrives for this long (default: 30s)"`
	TLS         *ClientTLS `yaml:"tls,omitempty" json:"tls,omitempty" doc:"TLS configuration (optional)"`
}
