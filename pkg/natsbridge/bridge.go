/*
 * Copyright 2026 Carver Automation Corporation.
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
 */

package natsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/posturecheck/pkg/logger"
	"github.com/carverauto/posturecheck/pkg/models"
	"github.com/carverauto/posturecheck/pkg/verifier"
)

// DefaultSubjectRoot is the subject prefix used when none is configured.
const DefaultSubjectRoot = "posture"

var errBadSubject = errors.New("subject carries no connection id token")

// connEvent is the payload of connection lifecycle subjects.
type connEvent struct {
	ConnectionID string `json:"connection_id"`
}

// Bridge subscribes to the session layer's subjects and drives the
// verifier. Connection ids must be single subject tokens.
//
// All inbound subjects are covered by one subscription so every event is
// handled on the subscription's single dispatch goroutine in publish
// order. Sessions carry no lock and depend on that ordering.
type Bridge struct {
	nc   *nats.Conn
	v    *verifier.Verifier
	root string
	log  logger.Logger

	ctx context.Context
	sub *nats.Subscription
}

// New builds a Bridge over an established NATS connection.
func New(nc *nats.Conn, v *verifier.Verifier, root string, log logger.Logger) *Bridge {
	if root == "" {
		root = DefaultSubjectRoot
	}

	return &Bridge{
		nc:   nc,
		v:    v,
		root: root,
		log:  log.WithComponent("natsbridge"),
	}
}

// Start subscribes to the subject tree. The given context is the base
// context for all verifier invocations.
func (b *Bridge) Start(ctx context.Context) error {
	b.ctx = ctx

	// A single wildcard subscription: nats.go delivers one subscription's
	// messages on one goroutine in publish order, so events for a
	// connection can never run concurrently or out of order.
	subject := b.root + ".>"

	sub, err := b.nc.Subscribe(subject, b.dispatch)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	b.sub = sub

	b.log.Info().Str("subject_root", b.root).Msg("bridge started")

	return nil
}

// Close drains the subscription.
func (b *Bridge) Close() {
	if b.sub == nil {
		return
	}

	if err := b.sub.Unsubscribe(); err != nil {
		b.log.Warn().Err(err).Str("subject", b.sub.Subject).Msg("unsubscribe failed")
	}

	b.sub = nil
}

// dispatch routes one message by its first subject token under the root.
// The bridge's own outbound subjects arrive on the wildcard too and are
// skipped.
func (b *Bridge) dispatch(msg *nats.Msg) {
	rest := strings.TrimPrefix(msg.Subject, b.root+".")

	event, detail, _ := strings.Cut(rest, ".")

	switch event {
	case "conn":
		switch detail {
		case "created":
			b.handleConnCreated(msg)
		case "deleted":
			b.handleConnDeleted(msg)
		default:
			b.log.Warn().Str("subject", msg.Subject).Msg("unknown connection event")
		}
	case "batch":
		b.handleBatch(msg)
	case "batchend":
		b.handleBatchEnding(msg)
	case "solicit":
		b.handleSolicit(msg)
	case "out", "assess", "verdict":
		// Own outbound traffic.
	default:
		b.log.Warn().Str("subject", msg.Subject).Msg("unknown subject")
	}
}

func (b *Bridge) handleConnCreated(msg *nats.Msg) {
	var ev connEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil || ev.ConnectionID == "" {
		b.log.Warn().Err(err).Str("subject", msg.Subject).Msg("bad connection-created payload")
		return
	}

	if err := b.v.ConnectionCreated(b.ctx, ev.ConnectionID); err != nil {
		b.log.Error().Err(err).Str("connection_id", ev.ConnectionID).Msg("connection-created rejected")
	}
}

func (b *Bridge) handleConnDeleted(msg *nats.Msg) {
	var ev connEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil || ev.ConnectionID == "" {
		b.log.Warn().Err(err).Str("subject", msg.Subject).Msg("bad connection-deleted payload")
		return
	}

	if err := b.v.ConnectionDeleted(b.ctx, ev.ConnectionID); err != nil {
		b.log.Error().Err(err).Str("connection_id", ev.ConnectionID).Msg("connection-deleted rejected")
	}
}

func (b *Bridge) handleBatch(msg *nats.Msg) {
	connectionID, err := connIDFromSubject(msg.Subject)
	if err != nil {
		b.log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping batch")
		return
	}

	batch, err := models.DecodeBatch(msg.Data)
	if err != nil {
		// A codec failure is a protocol violation for the session, not a
		// bridge failure: deliver an empty fatal batch.
		b.log.Warn().Err(err).Str("connection_id", connectionID).Msg("batch decode failed")

		batch = &models.Batch{Violation: true}
	}

	if err := b.v.BatchReceived(b.ctx, connectionID, batch); err != nil {
		b.log.Error().Err(err).Str("connection_id", connectionID).Msg("batch rejected")
	}
}

func (b *Bridge) handleBatchEnding(msg *nats.Msg) {
	connectionID, err := connIDFromSubject(msg.Subject)
	if err != nil {
		b.log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping batch-ending")
		return
	}

	if err := b.v.BatchEnding(b.ctx, connectionID); err != nil {
		b.log.Error().Err(err).Str("connection_id", connectionID).Msg("batch-ending rejected")
	}
}

func (b *Bridge) handleSolicit(msg *nats.Msg) {
	connectionID, err := connIDFromSubject(msg.Subject)
	if err != nil {
		b.log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping solicit")
		return
	}

	if err := b.v.SolicitRecommendation(b.ctx, connectionID); err != nil {
		b.log.Error().Err(err).Str("connection_id", connectionID).Msg("solicit rejected")
	}
}

func connIDFromSubject(subject string) (string, error) {
	idx := strings.LastIndex(subject, ".")
	if idx < 0 || idx == len(subject)-1 {
		return "", errBadSubject
	}

	return subject[idx+1:], nil
}
