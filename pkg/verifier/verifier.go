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

// Package verifier implements the posture verifier core: per-connection
// handshake state, attribute dispatch, the bounded missing-attribute retry
// protocol and the compliance decision.
//
// One Verifier instance serves all connections. The surrounding session
// layer invokes it synchronously and guarantees in-order delivery of events
// for a single connection id; events for different connection ids may
// interleave freely.
package verifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/carverauto/posturecheck/pkg/logger"
	"github.com/carverauto/posturecheck/pkg/models"
)

// Verifier evaluates endpoint posture and issues access recommendations.
// Construct with New, tear down with Close; entry points on a closed
// Verifier fail with ErrNotRunning.
type Verifier struct {
	db        Database
	transport Transport
	log       logger.Logger

	registry *sessionRegistry

	mu     sync.RWMutex
	closed bool
}

// New constructs the single verifier instance for the host process.
func New(db Database, transport Transport, log logger.Logger) (*Verifier, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	if transport == nil {
		return nil, ErrNilTransport
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Verifier{
		db:        db,
		transport: transport,
		log:       log.WithComponent("verifier"),
		registry:  newSessionRegistry(),
	}, nil
}

// Close tears the verifier down. A second Close fails with
// ErrAlreadyClosed; any other entry point afterwards fails with
// ErrNotRunning.
func (v *Verifier) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrAlreadyClosed
	}

	v.closed = true
	v.log.Info().Int("sessions", v.registry.len()).Msg("verifier closed")

	return nil
}

func (v *Verifier) checkRunning() error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.closed {
		return ErrNotRunning
	}

	return nil
}

// ConnectionCreated registers a session for a new connection id.
func (v *Verifier) ConnectionCreated(ctx context.Context, connectionID string) error {
	if err := v.checkRunning(); err != nil {
		return err
	}

	// Reserve the registry slot before touching the database so a
	// duplicate create can never insert a second sessions row.
	sess, err := v.registry.create(connectionID)
	if err != nil {
		return err
	}

	sessionID, err := v.db.AddSession(ctx, connectionID)
	if err != nil {
		v.registry.remove(connectionID)

		return fmt.Errorf("failed to register session for connection %s: %w", connectionID, err)
	}

	sess.setSessionID(sessionID)

	v.log.Debug().
		Str("connection_id", connectionID).
		Int64("session_id", sessionID).
		Msg("session created")

	return nil
}

// ConnectionDeleted tears a session down. Teardown never produces a
// recommendation, but a session that had reached policy evaluation gets its
// policy deactivated in the database.
func (v *Verifier) ConnectionDeleted(ctx context.Context, connectionID string) error {
	if err := v.checkRunning(); err != nil {
		return err
	}

	sess, err := v.registry.remove(connectionID)
	if err != nil {
		return err
	}

	if sess.State() == StatePolicyStart {
		if err := v.db.PolicyScript(ctx, sess.SessionID(), false); err != nil {
			v.log.Warn().Err(err).
				Str("connection_id", connectionID).
				Msg("policy deactivation failed during teardown")
		}
	}

	v.log.Debug().
		Str("connection_id", connectionID).
		Str("state", sess.State().String()).
		Msg("session deleted")

	return nil
}

// SolicitRecommendation hands the session's current verdict to the
// enforcement layer on demand. Fails with ErrAssessmentDone once the
// verdict has already been provided.
func (v *Verifier) SolicitRecommendation(ctx context.Context, connectionID string) error {
	if err := v.checkRunning(); err != nil {
		return err
	}

	sess, err := v.registry.lookup(connectionID)
	if err != nil {
		return err
	}

	if sess.AssessmentDone() {
		return ErrAssessmentDone
	}

	return v.provideRecommendation(ctx, sess)
}

// provideRecommendation delivers the verdict exactly once per session.
func (v *Verifier) provideRecommendation(ctx context.Context, sess *Session) error {
	if !sess.markAssessmentDone() {
		return ErrAssessmentDone
	}

	rec := sess.Recommendation()

	v.log.Info().
		Str("connection_id", sess.ConnectionID()).
		Str("action", string(rec.Action)).
		Str("result", string(rec.Result)).
		Msg("recommendation provided")

	return v.transport.ProvideRecommendation(ctx, sess.ConnectionID(), rec)
}

// emitAssessment sends the assessment-terminated message and provides the
// recommendation.
func (v *Verifier) emitAssessment(ctx context.Context, sess *Session) error {
	msg := &models.AssessmentMessage{
		ID:             uuid.New().String(),
		ConnectionID:   sess.ConnectionID(),
		Recommendation: sess.Recommendation(),
	}

	if err := v.transport.SendAssessment(ctx, msg); err != nil {
		return fmt.Errorf("failed to send assessment for connection %s: %w", sess.ConnectionID(), err)
	}

	return v.provideRecommendation(ctx, sess)
}

func (v *Verifier) newMessage(sess *Session, req *models.AttributeRequest) *models.Message {
	return &models.Message{
		ID:           uuid.New().String(),
		ConnectionID: sess.ConnectionID(),
		Request:      req,
	}
}
