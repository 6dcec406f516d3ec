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

package verifier

import (
	"context"
	"fmt"

	"github.com/carverauto/posturecheck/pkg/models"
)

// BatchEnding runs the handshake state machine once per batch-ending event.
//
// The protocol offers the endpoint at most one retry round for missing
// mandatory attributes: the first batch-ending at init sends a request and
// advances to attr_req; a batch-ending at attr_req with the identity
// attributes still missing terminates the assessment with an error verdict.
func (v *Verifier) BatchEnding(ctx context.Context, connectionID string) error {
	if err := v.checkRunning(); err != nil {
		return err
	}

	sess, err := v.registry.lookup(connectionID)
	if err != nil {
		return err
	}

	// The verdict is terminal: later batch endings must not re-send the
	// assessment or another attribute request.
	if sess.AssessmentDone() {
		return nil
	}

	state := sess.State()
	received := sess.Received()

	if state == StateInit && !received.HasAll(models.MandatoryKinds) {
		req := buildAttrRequest(received)

		if err := v.transport.Send(ctx, v.newMessage(sess, req), false); err != nil {
			return fmt.Errorf("failed to send attribute request for connection %s: %w", connectionID, err)
		}

		v.log.Debug().
			Str("connection_id", connectionID).
			Int("missing", len(req.Kinds)).
			Msg("attribute request sent")
	}

	if state < StatePolicyStart {
		// Product identity counts only when name and version arrived
		// together and were resolved into a product.
		if sess.Product() != nil && (received.Has(models.KindDeviceID) || state == StateAttrReq) {
			return v.startPolicy(ctx, sess)
		}

		if state == StateAttrReq {
			// The retry round is exhausted and the identity attributes are
			// still missing.
			sess.setRecommendation(models.ActionNoRecommendation, models.ResultError)

			v.log.Info().
				Str("connection_id", connectionID).
				Msg("mandatory identity attributes missing after retry")

			return v.emitAssessment(ctx, sess)
		}

		sess.advance(StateAttrReq)
	}

	return nil
}

// startPolicy activates policy evaluation for the session and requests the
// installed-packages inventory.
func (v *Verifier) startPolicy(ctx context.Context, sess *Session) error {
	if err := v.db.PolicyScript(ctx, sess.SessionID(), true); err != nil {
		v.log.Warn().Err(err).
			Str("connection_id", sess.ConnectionID()).
			Msg("policy activation failed")
	}

	sess.advance(StatePolicyStart)

	req := &models.AttributeRequest{Kinds: []models.AttributeKind{models.KindInstalledPackages}}

	if err := v.transport.Send(ctx, v.newMessage(sess, req), true); err != nil {
		return fmt.Errorf("failed to request installed packages for connection %s: %w", sess.ConnectionID(), err)
	}

	v.log.Debug().
		Str("connection_id", sess.ConnectionID()).
		Msg("policy evaluation started")

	return nil
}
