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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "bgpstream", RouteFormatName("Bgpstream"))
	assert.Equal(t, "kafka", IngestRoutesTypeName("Kafka"))
	assert.Equal(t, "http", IngestDelegationsTypeName("HTTP"))
	assert.Equal(t, "bart", IndexBackendName("Bart"))
	assert.Equal(t, "s3", WriteTypeName("S3"))
	assert.Equal(t, []string{"stdout", "file", "s3"}, EnumValues(WriteTypeEnum{}))
	assert.Panics(t, func() { WriteTypeName("Loki") })
}

func TestEnumReflectionType(t *testing.T) {
	// every enum tag used by a parameter must be registered
	require.NotNil(t, GetEnumReflectionTypeByFieldName("IngestRoutesTypeEnum"))
	require.NotNil(t, GetEnumReflectionTypeByFieldName("RouteFormatEnum"))
	require.NotNil(t, GetEnumReflectionTypeByFieldName("IngestDelegationsTypeEnum"))
	require.NotNil(t, GetEnumReflectionTypeByFieldName("IndexBackendEnum"))
	require.NotNil(t, GetEnumReflectionTypeByFieldName("WriteTypeEnum"))
	require.NotNil(t, GetEnumReflectionTypeByFieldName("TLSTypeEnum"))
}

func TestUnmarshalRoutesParams(t *testing.T) {
	conf := `
type: kafka
kafka:
  brokers: ["10.0.0.1:9092"]
  topic: ris-live
  maxMessages: 1000
  idleTimeout: 10s
`
	var routes IngestRoutes
	require.NoError(t, yaml.UnmarshalStrict([]byte(conf), &routes))
	require.Equal(t, IngestRoutesTypeName("Kafka"), routes.Type)
	require.NotNil(t, routes.Kafka)
	require.Equal(t, []string{"10.0.0.1:9092"}, routes.Kafka.Brokers)
	require.Equal(t, 1000, routes.Kafka.MaxMessages)
	require.Equal(t, "10s", routes.Kafka.IdleTimeout.String())
	require.Nil(t, routes.File)
}

func TestClientTLS(t *testing.T) {
	var none *ClientTLS
	require.False(t, none.IsEnabled())
	cfg, err := none.Build()
	require.NoError(t, err)
	require.Nil(t, cfg)

	simple := &ClientTLS{Type: "simple", InsecureSkipVerify: true}
	cfg, err = simple.Build()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.True(t, cfg.InsecureSkipVerify)

	_, err = (&ClientTLS{Type: "mutual"}).Build()
	require.Error(t, err)

	_, err = (&ClientTLS{Type: "simple", CACertPath: "/does/not/exist"}).Build()
	require.Error(t, err)
}

func TestPromTLSConf(t *testing.T) {
	cfg, err := (&PromTLSConf{}).Build()
	require.NoError(t, err)
	require.Nil(t, cfg)
	_, err = (&PromTLSConf{CertPath: "cert.pem"}).Build()
	require.Error(t, err)
}
