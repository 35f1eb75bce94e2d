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
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// ClientTLS configures the TLS side of outgoing connections (kafka brokers, delegation downloads)
type ClientTLS struct {
	Type               string `yaml:"type,omitempty" json:"type,omitempty" enum:"TLSTypeEnum" doc:"type of TLS: none, simple or mutual."`
	CACertPath         string `yaml:"caCertPath,omitempty" json:"caCertPath,omitempty" doc:"path to the CA certificate; system roots are used when empty"`
	UserCertPath       string `yaml:"userCertPath,omitempty" json:"userCertPath,omitempty" doc:"path to the user certificate, for mutual TLS"`
	UserKeyPath        string `yaml:"userKeyPath,omitempty" json:"userKeyPath,omitempty" doc:"path to the user private key, for mutual TLS"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify,omitempty" json:"insecureSkipVerify,omitempty" doc:"skip verifying the peer certificate chain and host name"`
}

type TLSTypeEnum struct {
	None   string `yaml:"none" json:"none" doc:"No TLS"`
	Simple string `yaml:"simple" json:"simple" doc:"One-way TLS"`
	Mutual string `yaml:"mutual" json:"mutual" doc:"Mutual TLS"`
}

func TLSTypeName(operation string) string {
	return GetEnumName(TLSTypeEnum{}, operation)
}

func (c *ClientTLS) IsEnabled() bool {
	return c != nil && c.Type != "" && c.Type != TLSTypeName("None")
}

// Build returns nil when TLS is disabled
func (c *ClientTLS) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
	if c.CACertPath != "" {
		caCert, err := os.ReadFile(c.CACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "could not read CA file")
		}
		tlsConfig.RootCAs = x509.NewCertPool()
		if !tlsConfig.RootCAs.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("no certificate found in %s", c.CACertPath)
		}
	}
	if c.Type == TLSTypeName("Mutual") {
		if c.UserCertPath == "" || c.UserKeyPath == "" {
			return nil, errors.New("userCertPath and userKeyPath must be provided for mutual TLS")
		}
		pair, err := tls.LoadX509KeyPair(c.UserCertPath, c.UserKeyPath)
		if err != nil {
			return nil, errors.Wrap(err, "could not load user key pair")
		}
		tlsConfig.Certificates = []tls.Certificate{pair}
	}
	return tlsConfig, nil
}

// PromTLSConf is the server side TLS of the metrics endpoint
type PromTLSConf struct {
	CertPath string `yaml:"certPath,omitempty" json:"certPath,omitempty" doc:"path to the certificate file"`
	KeyPath  string `yaml:"keyPath,omitempty" json:"keyPath,omitempty" doc:"path to the key file"`
}

func (c *PromTLSConf) Build() (*tls.Config, error) {
	if c == nil || c.CertPath == "" {
		return nil, nil
	}
	if c.KeyPath == "" {
		return nil, errors.New("keyPath must be provided for server TLS")
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}, nil
}

type PromConnectionInfo struct {
	Address string       `yaml:"address,omitempty" json:"address,omitempty" doc:"endpoint address to expose"`
	Port    int          `yaml:"port,omitempty" json:"port,omitempty" doc:"endpoint port number to expose"`
	TLS     *PromTLSConf `yaml:"tls,omitempty" json:"tls,omitempty" doc:"TLS configuration for the endpoint"`
}
