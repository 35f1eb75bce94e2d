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

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/index"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options are the values set from command line flags, environment and the config file
type Options struct {
	Parameters  string
	Routes      RoutesOptions
	Delegations api.IngestDelegations
	Index       api.Index
	Query       api.Query
	Output      OutputOptions
	Metrics     MetricsSettings
	Health      Health
	Profile     Profile
}

// RoutesOptions flattens the route ingest parameters for flag binding
type RoutesOptions struct {
	Type  string
	File  api.IngestRoutesFile
	Kafka api.IngestKafka
}

// OutputOptions flattens the write parameters for flag binding
type OutputOptions struct {
	Type   string
	Stdout api.WriteStdout
	File   api.WriteFile
	S3     api.WriteS3
}

type Health struct {
	Address string
	Port    string
}

type Profile struct {
	Port int
}

// ConfigFileStruct is the resolved configuration of a run
type ConfigFileStruct struct {
	LogLevel        string                `yaml:"log-level,omitempty" json:"log-level,omitempty"`
	Routes          api.IngestRoutes      `yaml:"routes" json:"routes"`
	Delegations     api.IngestDelegations `yaml:"delegations" json:"delegations"`
	Index           api.Index             `yaml:"index,omitempty" json:"index,omitempty"`
	Query           api.Query             `yaml:"query,omitempty" json:"query,omitempty"`
	Output          api.Write             `yaml:"output" json:"output"`
	MetricsSettings MetricsSettings       `yaml:"metricsSettings,omitempty" json:"metricsSettings,omitempty"`
}

// MetricsSettings configures the operational metrics endpoint, global to the application
type MetricsSettings struct {
	api.PromConnectionInfo `yaml:",inline" json:",inline"`
	DisableGlobalServer    bool `yaml:"disableGlobalServer,omitempty" json:"disableGlobalServer,omitempty" doc:"disabling the global metrics server makes operational metrics unavailable"`
	NoPanic                bool `yaml:"noPanic,omitempty" json:"noPanic,omitempty"`
	SuppressGoMetrics      bool `yaml:"suppressGoMetrics,omitempty" json:"suppressGoMetrics,omitempty" doc:"filter out Go and process metrics"`
}

// ParseConfig creates the resolved configuration from the options.
// A non-empty Options.Parameters holds the json of a whole ConfigFileStruct
// and takes precedence over the individual options.
func ParseConfig(opts *Options) (ConfigFileStruct, error) {
	out := ConfigFileStruct{
		Routes: api.IngestRoutes{
			Type:  opts.Routes.Type,
			File:  &opts.Routes.File,
			Kafka: &opts.Routes.Kafka,
		},
		Delegations: opts.Delegations,
		Index:       opts.Index,
		Query:       opts.Query,
		Output: api.Write{
			Type:   opts.Output.Type,
			Stdout: &opts.Output.Stdout,
			File:   &opts.Output.File,
			S3:     &opts.Output.S3,
		},
		MetricsSettings: opts.Metrics,
	}

	if opts.Parameters != "" {
		logrus.Debugf("opts.Parameters = %v ", opts.Parameters)
		out = ConfigFileStruct{MetricsSettings: opts.Metrics}
		if err := JsonUnmarshalStrict([]byte(opts.Parameters), &out); err != nil {
			logrus.Errorf("error when parsing parameters: %v", err)
			return out, err
		}
	}

	setDefaults(&out)
	if err := validate(&out); err != nil {
		return out, err
	}
	logrus.Debugf("config = %+v ", out)
	return out, nil
}

// enum values are matched in lower case by the stages
func normalize(cfg *ConfigFileStruct) {
	cfg.Routes.Type = strings.ToLower(cfg.Routes.Type)
	if cfg.Routes.File != nil {
		cfg.Routes.File.Format = strings.ToLower(cfg.Routes.File.Format)
	}
	cfg.Delegations.Type = strings.ToLower(cfg.Delegations.Type)
	cfg.Index.Backend = strings.ToLower(cfg.Index.Backend)
	cfg.Output.Type = strings.ToLower(cfg.Output.Type)
	if cfg.Output.Stdout != nil {
		cfg.Output.Stdout.Format = strings.ToLower(cfg.Output.Stdout.Format)
	}
}

func setDefaults(cfg *ConfigFileStruct) {
	normalize(cfg)
	if cfg.Routes.Type == "" {
		cfg.Routes.Type = api.IngestRoutesTypeName("File")
	}
	if cfg.Routes.File != nil && cfg.Routes.File.Format == "" {
		cfg.Routes.File.Format = api.RouteFormatName("Bgpstream")
	}
	if cfg.Delegations.Type == "" {
		cfg.Delegations.Type = api.IngestDelegationsTypeName("HTTP")
	}
	if cfg.Delegations.Type == api.IngestDelegationsTypeName("HTTP") && cfg.Delegations.URL == "" {
		cfg.Delegations.URL = api.DefaultDelegationsURL
	}
	if cfg.Index.Backend == "" {
		cfg.Index.Backend = api.IndexBackendName("Trie")
	}
	if cfg.Query.Workers < 1 {
		cfg.Query.Workers = 1
	}
	if cfg.Output.Type == "" {
		cfg.Output.Type = api.WriteTypeName("File")
	}
	if cfg.Output.File == nil {
		cfg.Output.File = &api.WriteFile{}
	}
	if cfg.Output.File.Filename == "" {
		cfg.Output.File.Filename = api.DefaultOutputFilename
	}
}

func validate(cfg *ConfigFileStruct) error {
	switch cfg.Routes.Type {
	case api.IngestRoutesTypeName("File"):
		if cfg.Routes.File == nil || cfg.Routes.File.Filename == "" {
			return errors.New("routes: file ingest requires a filename")
		}
		if !oneOf(cfg.Routes.File.Format, api.EnumValues(api.RouteFormatEnum{})) {
			return errors.Errorf("routes: unknown format %q", cfg.Routes.File.Format)
		}
	case api.IngestRoutesTypeName("Kafka"):
		if cfg.Routes.Kafka == nil || len(cfg.Routes.Kafka.Brokers) == 0 || cfg.Routes.Kafka.Topic == "" {
			return errors.New("routes: kafka ingest requires brokers and a topic")
		}
	default:
		return errors.Errorf("routes: unknown type %q", cfg.Routes.Type)
	}

	switch cfg.Delegations.Type {
	case api.IngestDelegationsTypeName("File"):
		if cfg.Delegations.Filename == "" {
			return errors.New("delegations: file ingest requires a filename")
		}
	case api.IngestDelegationsTypeName("HTTP"):
	default:
		return errors.Errorf("delegations: unknown type %q", cfg.Delegations.Type)
	}

	if !oneOf(cfg.Index.Backend, api.EnumValues(api.IndexBackendEnum{})) {
		return errors.Errorf("index: unknown backend %q", cfg.Index.Backend)
	}
	for _, f := range cfg.Query.Families {
		if _, err := index.ParseFamily(f); err != nil {
			return errors.Wrap(err, "query")
		}
	}

	switch cfg.Output.Type {
	case api.WriteTypeName("Stdout"), api.WriteTypeName("File"):
	case api.WriteTypeName("S3"):
		if cfg.Output.S3 == nil || cfg.Output.S3.Endpoint == "" || cfg.Output.S3.Bucket == "" {
			return errors.New("output: s3 requires an endpoint and a bucket")
		}
	default:
		return errors.Errorf("output: unknown type %q", cfg.Output.Type)
	}
	return nil
}

func oneOf(v string, values []string) bool {
	for _, candidate := range values {
		if v == candidate {
			return true
		}
	}
	return false
}

// JsonUnmarshalStrict is like Unmarshal except that any fields that are found
// in the data that do not have corresponding struct members, or mapping
// keys that are duplicates, will result in
// an error.
func JsonUnmarshalStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("strict json decoding: %w", err)
	}
	return nil
}
