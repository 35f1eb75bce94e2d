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
	"context"
	"time"

	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/pkg/errors"
	kafkago "github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const defaultIdleTimeout = 30 * time.Second

type kafkaReadMessage interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Config() kafkago.ReaderConfig
	Close() error
}

type ingestKafka struct {
	kafkaParams api.IngestKafka
	kafkaReader kafkaReadMessage
	idleTimeout time.Duration
}

// Ingest consumes json routes until maxMessages are read or the topic stays idle for idleTimeout
func (k *ingestKafka) Ingest(ctx context.Context, process func(api.Route)) error {
	defer func() {
		if err := k.kafkaReader.Close(); err != nil {
			log.WithError(err).Warn("closing kafka reader")
		}
	}()
	count := 0
	for k.kafkaParams.MaxMessages <= 0 || count < k.kafkaParams.MaxMessages {
		readCtx, cancel := context.WithTimeout(ctx, k.idleTimeout)
		m, err := k.kafkaReader.ReadMessage(readCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				log.Infof("no kafka message for %v, stopping", k.idleTimeout)
				break
			}
			return errors.Wrap(err, "reading kafka topic")
		}
		count++
		log.Debugf("message at topic:%v partition:%v offset:%v", m.Topic, m.Partition, m.Offset)
		route, err := ParseJSONLine(m.Value)
		if err != nil {
			skipped("kafka", "malformed")
			log.WithFields(log.Fields{"partition": m.Partition, "offset": m.Offset}).WithError(err).Warn("skipping route message")
			continue
		}
		routesIngested.WithLabelValues("kafka").Inc()
		process(route)
	}
	log.Infof("consumed %d kafka messages from %s", count, k.kafkaParams.Topic)
	return nil
}

// NewIngestKafka create a new route ingester reading a kafka topic
func NewIngestKafka(params api.IngestKafka) (RouteIngester, error) {
	log.Debugf("entering NewIngestKafka")
	if len(params.Brokers) == 0 || params.Topic == "" {
		return nil, errors.New("kafka ingest requires brokers and a topic")
	}

	var startOffset int64
	switch params.StartOffset {
	case "", "FirstOffset":
		startOffset = kafkago.FirstOffset
	case "LastOffset":
		startOffset = kafkago.LastOffset
	default:
		return nil, errors.Errorf("illegal value for StartOffset: %s", params.StartOffset)
	}

	dialer := &kafkago.Dialer{
		Timeout:   kafkago.DefaultDialer.Timeout,
		DualStack: kafkago.DefaultDialer.DualStack,
	}
	tlsConfig, err := params.TLS.Build()
	if err != nil {
		return nil, err
	}
	dialer.TLS = tlsConfig

	kafkaReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     params.Brokers,
		Topic:       params.Topic,
		GroupID:     params.GroupID,
		StartOffset: startOffset,
		Dialer:      dialer,
	})
	if kafkaReader == nil {
		return nil, errors.New("NewIngestKafka: failed to create kafka reader")
	}

	return &ingestKafka{
		kafkaParams: params,
		kafkaReader: kafkaReader,
		idleTimeout: api.DurationOr(params.IdleTimeout, defaultIdleTimeout),
	}, nil
}
