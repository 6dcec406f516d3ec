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
	"github.com/carverauto/posturecheck/pkg/models"
)

// HandshakeState tracks how far a session's attribute exchange has
// progressed. States are totally ordered and only ever advance.
type HandshakeState int

const (
	StateInit HandshakeState = iota
	StateAttrReq
	StatePolicyStart
)

func (s HandshakeState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAttrReq:
		return "attr_req"
	case StatePolicyStart:
		return "policy_start"
	default:
		return "invalid"
	}
}

// Session is the verifier's per-connection state. Sessions are owned by the
// registry; the transport layer guarantees events for one connection id are
// delivered in order, so Session itself carries no lock.
type Session struct {
	connectionID string
	sessionID    int64

	state    HandshakeState
	received models.KindSet
	settings models.SettingsSet

	counts          models.PackageCounts
	countsProcessed bool
	angelCount      int

	deviceID    int64
	deviceIDSet bool
	product     *models.Product

	recommendation models.Recommendation
	assessmentDone bool
}

func newSession(connectionID string) *Session {
	return &Session{
		connectionID: connectionID,
		state:        StateInit,
		received:     models.NewKindSet(),
		settings:     models.NewSettingsSet(),
		recommendation: models.Recommendation{
			Action: models.ActionNoRecommendation,
			Result: models.ResultDontKnow,
		},
	}
}

// ConnectionID returns the opaque connection id the session belongs to.
func (s *Session) ConnectionID() string { return s.connectionID }

// SessionID returns the compliance database correlation key.
func (s *Session) SessionID() int64 { return s.sessionID }

// State returns the current handshake state.
func (s *Session) State() HandshakeState { return s.state }

// Received returns a copy of the set of attribute kinds seen so far.
func (s *Session) Received() models.KindSet { return s.received.Clone() }

// Settings returns the insecure OS settings observed so far. The returned
// set is live; it is only ever added to.
func (s *Session) Settings() models.SettingsSet { return s.settings }

// Counts returns the package check counts. Meaningful only after an
// installed-packages attribute was processed.
func (s *Session) Counts() models.PackageCounts { return s.counts }

// AngelCount returns the number of active helper processes on the endpoint.
func (s *Session) AngelCount() int { return s.angelCount }

// Product returns the resolved OS identity, or nil before resolution.
func (s *Session) Product() *models.Product { return s.product }

// Recommendation returns the session's current verdict.
func (s *Session) Recommendation() models.Recommendation { return s.recommendation }

// AssessmentDone reports whether the verdict has been provided.
func (s *Session) AssessmentDone() bool { return s.assessmentDone }

// advance moves the handshake state forward. Backward moves are ignored so
// the state is monotonically non-decreasing.
func (s *Session) advance(state HandshakeState) {
	if state > s.state {
		s.state = state
	}
}

// markReceived records that an attribute kind arrived. The set never
// shrinks.
func (s *Session) markReceived(kind models.AttributeKind) {
	s.received.Add(kind)
}

func (s *Session) addSetting(setting models.OSSetting) {
	s.settings.Add(setting)
}

func (s *Session) setCounts(counts models.PackageCounts) {
	s.counts = counts
	s.countsProcessed = true
}

func (s *Session) startAngel() {
	s.angelCount++
}

// stopAngel decrements the helper counter, clamping at zero: a stray stop
// must not block finalization forever.
func (s *Session) stopAngel() {
	if s.angelCount > 0 {
		s.angelCount--
	}
}

// setSessionID stores the database correlation key once registration
// completes. Write-once.
func (s *Session) setSessionID(id int64) {
	if s.sessionID == 0 {
		s.sessionID = id
	}
}

// setDeviceID stores the database-assigned device id. Write-once; repeat
// assignments are ignored.
func (s *Session) setDeviceID(id int64) {
	if !s.deviceIDSet {
		s.deviceID = id
		s.deviceIDSet = true
	}
}

// setProduct stores the resolved OS identity. Write-once; returns whether
// this call performed the assignment.
func (s *Session) setProduct(product models.Product) bool {
	if s.product != nil {
		return false
	}

	s.product = &product

	return true
}

func (s *Session) setRecommendation(action models.Action, result models.Result) {
	s.recommendation = models.Recommendation{Action: action, Result: result}
}

// markAssessmentDone flips the done flag. Returns false if it was already
// set, so callers can enforce the exactly-once verdict contract.
func (s *Session) markAssessmentDone() bool {
	if s.assessmentDone {
		return false
	}

	s.assessmentDone = true

	return true
}
