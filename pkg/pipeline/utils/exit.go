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

package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// SetupElegantExit returns a context that is cancelled on SIGINT or SIGTERM,
// so that blocking stages (kafka reads, downloads) can stop cleanly
func SetupElegantExit(parent context.Context) (context.Context, context.CancelFunc) {
	log.Debugf("entering SetupElegantExit")
	ctx, cancel := context.WithCancel(parent)
	exitSigChan := make(chan os.Signal, 1)
	signal.Notify(exitSigChan, syscall.SIGINT, syscall.SIGTERM)
	log.Debugf("registered exit signal channel")
	go func() {
		defer signal.Stop(exitSigChan)
		// wait for exit signal; then cancel the run
		select {
		case sig := <-exitSigChan:
			log.Infof("received exit signal = %v", sig)
			cancel()
		case <-ctx.Done():
		}
		log.Debugf("exiting SetupElegantExit go function")
	}()
	return ctx, cancel
}
