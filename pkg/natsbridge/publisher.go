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

// Package natsbridge adapts the verifier to a NATS-based session layer:
// inbound subjects deliver connection lifecycle and batch events, outbound
// subjects carry attribute requests, assessments and verdicts.
package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/carverauto/posturecheck/pkg/logger"
	"github.com/carverauto/posturecheck/pkg/models"
)

// Publisher implements verifier.Transport over NATS.
type Publisher struct {
	nc   *nats.Conn
	root string
	log  logger.Logger
}

// outEnvelope frames one outbound verifier message on the wire.
type outEnvelope struct {
	ID        string                   `json:"id"`
	Exclusive bool                     `json:"exclusive"`
	Request   *models.AttributeRequest `json:"request,omitempty"`
}

// verdictEnvelope frames the final recommendation on the wire.
type verdictEnvelope struct {
	ID             string                `json:"id"`
	ConnectionID   string                `json:"connection_id"`
	Recommendation models.Recommendation `json:"recommendation"`
}

// NewPublisher builds a Transport publishing under the given subject root.
func NewPublisher(nc *nats.Conn, root string, log logger.Logger) *Publisher {
	if root == "" {
		root = DefaultSubjectRoot
	}

	return &Publisher{
		nc:   nc,
		root: root,
		log:  log.WithComponent("natsbridge"),
	}
}

// Send publishes one verifier message for the endpoint.
func (p *Publisher) Send(_ context.Context, msg *models.Message, exclusive bool) error {
	env := outEnvelope{
		ID:        msg.ID,
		Exclusive: exclusive,
		Request:   msg.Request,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal outbound message: %w", err)
	}

	subject := fmt.Sprintf("%s.out.%s", p.root, msg.ConnectionID)

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// SendAssessment publishes the assessment-terminated message.
func (p *Publisher) SendAssessment(_ context.Context, msg *models.AssessmentMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	subject := fmt.Sprintf("%s.assess.%s", p.root, msg.ConnectionID)

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// ProvideRecommendation publishes the verdict for the enforcement layer.
func (p *Publisher) ProvideRecommendation(_ context.Context, connectionID string, rec models.Recommendation) error {
	env := verdictEnvelope{
		ID:             uuid.New().String(),
		ConnectionID:   connectionID,
		Recommendation: rec,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	subject := fmt.Sprintf("%s.verdict.%s", p.root, connectionID)

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	p.log.Info().
		Str("connection_id", connectionID).
		Str("action", string(rec.Action)).
		Msg("verdict published")

	return nil
}
