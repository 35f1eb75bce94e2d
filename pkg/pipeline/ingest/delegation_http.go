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

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultDownloadTimeout = 5 * time.Minute
	defaultMaxRetries      = 8
)

// statuses worth another attempt; anything else that is not 2xx is final
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type ingestDelegationsHTTP struct {
	url        string
	client     *http.Client
	maxRetries int
	newBackOff func() backoff.BackOff
}

func (h *ingestDelegationsHTTP) Ingest(ctx context.Context, process func(xref.Delegation), diag func(xref.Diagnostic)) error {
	body, err := h.download(ctx)
	if err != nil {
		return err
	}
	log.Infof("downloaded %d bytes from %s", len(body), h.url)
	return ParseDelegations(bytes.NewReader(body), process, diag)
}

func (h *ingestDelegationsHTTP) download(ctx context.Context) ([]byte, error) {
	var body []byte
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := h.client.Do(req)
		if err != nil {
			downloadAttempts.WithLabelValues("transport_error").Inc()
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err := fmt.Errorf("GET %s: %s", h.url, resp.Status)
			if retryableStatus[resp.StatusCode] {
				downloadAttempts.WithLabelValues("retryable_status").Inc()
				return err
			}
			downloadAttempts.WithLabelValues("failed").Inc()
			return backoff.Permanent(err)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			downloadAttempts.WithLabelValues("transport_error").Inc()
			return err
		}
		downloadAttempts.WithLabelValues("success").Inc()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(h.newBackOff(), uint64(h.maxRetries)), ctx)
	err := backoff.RetryNotify(attempt, policy, func(err error, next time.Duration) {
		log.WithError(err).Warnf("delegations download failed, retrying in %v", next)
	})
	if err != nil {
		return nil, errors.Wrap(err, "downloading delegations")
	}
	return body, nil
}

// NewIngestDelegationsHTTP create a new ingester downloading a delegated-extended file
func NewIngestDelegationsHTTP(params api.IngestDelegations) (DelegationIngester, error) {
	url := params.URL
	if url == "" {
		url = api.DefaultDelegationsURL
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	tlsConfig, err := params.TLS.Build()
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}
	log.Infof("delegations url = %s", url)

	return &ingestDelegationsHTTP{
		url: url,
		client: &http.Client{
			Timeout:   api.DurationOr(params.Timeout, defaultDownloadTimeout),
			Transport: transport,
		},
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}, nil
}
