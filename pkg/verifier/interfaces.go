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

//go:generate mockgen -destination=mock_verifier.go -package=verifier github.com/carverauto/posturecheck/pkg/verifier Database,Transport

package verifier

import (
	"context"

	"github.com/carverauto/posturecheck/pkg/models"
)

// Database is the compliance database collaborator. All persistence is
// delegated here; the verifier core owns no durable state.
type Database interface {
	// AddSession registers a new connection and returns the session
	// correlation key used by every other call.
	AddSession(ctx context.Context, connectionID string) (int64, error)

	// CheckPackages evaluates the endpoint's package inventory against
	// policy and returns per-category counts.
	CheckPackages(ctx context.Context, sessionID int64, packages []models.Package) (models.PackageCounts, error)

	// AddDevice records the endpoint's raw device identity and returns the
	// database-assigned device id.
	AddDevice(ctx context.Context, sessionID int64, rawID []byte) (int64, error)

	// AddProduct records the endpoint's resolved OS identity.
	AddProduct(ctx context.Context, sessionID int64, product models.Product) error

	// SetDeviceInfo persists the final assessment inputs for the session.
	SetDeviceInfo(ctx context.Context, sessionID int64, total, outOfDate, blacklisted int, settings models.SettingsSet) error

	// PolicyScript activates (true) or deactivates (false) the policy
	// evaluation for the session.
	PolicyScript(ctx context.Context, sessionID int64, activate bool) error
}

// Transport is the outbound half of the session layer the verifier is
// attached to.
type Transport interface {
	// Send delivers one verifier message to the endpoint. exclusive maps to
	// the session layer's exclusive-delivery flag.
	Send(ctx context.Context, msg *models.Message, exclusive bool) error

	// SendAssessment delivers the assessment-terminated message that ends
	// the attribute exchange.
	SendAssessment(ctx context.Context, msg *models.AssessmentMessage) error

	// ProvideRecommendation hands the final verdict to the enforcement
	// layer. Called exactly once per session.
	ProvideRecommendation(ctx context.Context, connectionID string, rec models.Recommendation) error
}
