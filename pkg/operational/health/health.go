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

package health

import (
	"context"
	"net"
	"net/http"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/bgp-bogons/pkg/config"
	log "github.com/sirupsen/logrus"
)

const defaultServerHost = "0.0.0.0"

type Server struct {
	handler healthcheck.Handler
	address string
	server  *http.Server
}

func (hs *Server) serve() {
	err := hs.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Errorf("health server ListenAndServe error %v", err)
	}
}

func (hs *Server) Shutdown(ctx context.Context) error {
	return hs.server.Shutdown(ctx)
}

// NewHealthServer starts serving /live and /ready in the background.
// Readiness is reported once the prefix index has been built.
func NewHealthServer(opts *config.Options, isAlive, isReady healthcheck.Check) *Server {
	handler := healthcheck.NewHandler()
	host := opts.Health.Address
	if host == "" {
		host = defaultServerHost
	}
	address := net.JoinHostPort(host, opts.Health.Port)

	handler.AddLivenessCheck("PipelineCheck", isAlive)
	handler.AddReadinessCheck("IndexCheck", isReady)

	server := &Server{
		handler: handler,
		address: address,
		server:  &http.Server{Addr: address, Handler: handler},
	}
	log.WithField("address", address).Info("starting health server")
	go server.serve()

	return server
}
