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

package prometheus

import (
	"fmt"
	"net/http"
	"os"

	"github.com/netobserv/bgp-bogons/pkg/config"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const defaultPort = 9090

var plog = logrus.WithField("module", "prometheus")

// InitializePrometheus starts the global metrics server, or returns nil when disabled
func InitializePrometheus(settings *config.MetricsSettings) *http.Server {
	if settings.DisableGlobalServer {
		plog.Info("Disabled global Prometheus server - no operational metrics will be available")
		return nil
	}
	if settings.SuppressGoMetrics {
		prom.Unregister(collectors.NewGoCollector())
		prom.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	port := settings.Port
	if port == 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	// The Handler function provides a default handler to expose metrics
	// via an HTTP server. "/metrics" is the usual endpoint for that.
	mux.Handle("/metrics", promhttp.Handler())
	// if value of address is empty, then by default it will take 0.0.0.0
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%v", settings.Address, port),
		Handler: mux,
	}
	go startServer(settings, server)
	return server
}

// startServer listens for prometheus resource usage requests
func startServer(settings *config.MetricsSettings, server *http.Server) {
	plog.Infof("Prometheus server: addr = %s", server.Addr)
	tlsConfig, err := settings.TLS.Build()
	if err != nil {
		plog.Errorf("error getting TLS configuration: %v", err)
		if !settings.NoPanic {
			os.Exit(1)
		}
		return
	}
	server.TLSConfig = tlsConfig

	if tlsConfig != nil {
		err = server.ListenAndServeTLS(settings.TLS.CertPath, settings.TLS.KeyPath)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		plog.Errorf("error in http.ListenAndServe: %v", err)
		if !settings.NoPanic {
			os.Exit(1)
		}
	}
}
