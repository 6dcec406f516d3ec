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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/posturecheck/pkg/models"
)

// advanceToPolicyStart drives a fresh session to policy_start with a single
// batch carrying the identity attributes.
func advanceToPolicyStart(t *testing.T, v *Verifier, mockDB *MockDatabase, mockTransport *MockTransport, connID string, sessionID int64) {
	t.Helper()

	ctx := context.Background()

	mockDB.EXPECT().AddDevice(gomock.Any(), sessionID, []byte("dev-1")).Return(int64(100), nil)
	mockDB.EXPECT().AddProduct(gomock.Any(), sessionID, gomock.Any()).Return(nil)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.ProductInfo{Name: "Ubuntu"},
		models.StringVersion{Version: "20.04"},
		models.DeviceID{Value: []byte("dev-1")},
	}}
	require.NoError(t, v.BatchReceived(ctx, connID, batch))

	// Missing-attribute request, then policy activation and the
	// installed-packages request.
	mockTransport.EXPECT().Send(gomock.Any(), gomock.Any(), false).Return(nil)
	mockDB.EXPECT().PolicyScript(gomock.Any(), sessionID, true).Return(nil)
	mockTransport.EXPECT().Send(gomock.Any(), gomock.Any(), true).Return(nil)

	require.NoError(t, v.BatchEnding(ctx, connID))

	sess := lookupSession(t, v, connID)
	require.Equal(t, StatePolicyStart, sess.State())
}

// Scenario: identity and device id arrive in the first batch; batch-ending
// jumps straight to policy_start without an attr_req round.
func TestBatchEndingDirectToPolicyStart(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)

	ctx := context.Background()

	mockDB.EXPECT().AddDevice(gomock.Any(), int64(7), []byte("dev-1")).Return(int64(100), nil)
	mockDB.EXPECT().
		AddProduct(gomock.Any(), int64(7), models.Product{
			Type:    models.OSUbuntu,
			Name:    "Ubuntu",
			Version: "20.04",
		}).
		Return(nil)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.ProductInfo{Name: "Ubuntu"},
		models.StringVersion{Version: "20.04"},
		models.DeviceID{Value: []byte("dev-1")},
	}}
	require.NoError(t, v.BatchReceived(ctx, "conn-1", batch))

	var attrRequest *models.AttributeRequest

	// The mandatory set is not complete, so a missing-attribute request
	// still goes out (non-exclusive) before policy evaluation starts.
	mockTransport.EXPECT().
		Send(gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(_ context.Context, msg *models.Message, _ bool) error {
			attrRequest = msg.Request
			return nil
		})

	mockDB.EXPECT().PolicyScript(gomock.Any(), int64(7), true).Return(nil)

	var pkgRequest *models.AttributeRequest

	mockTransport.EXPECT().
		Send(gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, msg *models.Message, _ bool) error {
			pkgRequest = msg.Request
			return nil
		})

	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	sess := lookupSession(t, v, "conn-1")
	require.Equal(t, StatePolicyStart, sess.State())

	require.NotNil(t, attrRequest)
	require.NotContains(t, attrRequest.Kinds, models.KindProductInfo)
	require.Contains(t, attrRequest.Kinds, models.KindNumericVersion)

	require.NotNil(t, pkgRequest)
	require.Equal(t, []models.AttributeKind{models.KindInstalledPackages}, pkgRequest.Kinds)
}

// Scenario: everything but the numeric version arrived, with name and
// version in separate batches so the product is unresolved; batch-ending
// requests the numeric version and parks the session at attr_req.
func TestBatchEndingRequestsMissingAndRetries(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)

	ctx := context.Background()

	require.NoError(t, v.BatchReceived(ctx, "conn-1", &models.Batch{Attributes: []models.Attribute{
		models.ProductInfo{Name: "Ubuntu"},
	}}))

	mockDB.EXPECT().AddDevice(gomock.Any(), int64(7), gomock.Any()).Return(int64(100), nil)

	require.NoError(t, v.BatchReceived(ctx, "conn-1", &models.Batch{Attributes: []models.Attribute{
		models.StringVersion{Version: "20.04"},
		models.OperationalStatus{Status: models.OpStatusOperational, Result: models.OpResultSuccessful},
		models.ForwardingEnabled{Status: models.FwdDisabled},
		models.DefaultPasswordEnabled{Enabled: false},
		models.DeviceID{Value: []byte("dev-1")},
	}}))

	var request *models.AttributeRequest

	mockTransport.EXPECT().
		Send(gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(_ context.Context, msg *models.Message, _ bool) error {
			request = msg.Request
			return nil
		})

	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	sess := lookupSession(t, v, "conn-1")
	require.Equal(t, StateAttrReq, sess.State())

	require.NotNil(t, request)
	require.Equal(t, []models.AttributeKind{models.KindNumericVersion}, request.Kinds)
}

// Scenario: a second batch-ending with the product still unresolved
// terminates with an error verdict and no further request.
func TestBatchEndingRetryExhausted(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)

	ctx := context.Background()

	mockTransport.EXPECT().Send(gomock.Any(), gomock.Any(), false).Return(nil)
	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	sess := lookupSession(t, v, "conn-1")
	require.Equal(t, StateAttrReq, sess.State())

	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil)
	mockTransport.EXPECT().
		ProvideRecommendation(gomock.Any(), "conn-1", models.Recommendation{
			Action: models.ActionNoRecommendation,
			Result: models.ResultError,
		}).
		Return(nil)

	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	require.True(t, sess.AssessmentDone())
	require.Equal(t, StateAttrReq, sess.State())

	// The verdict is terminal: a third batch-ending must neither re-send
	// the assessment nor issue another request.
	require.NoError(t, v.BatchEnding(ctx, "conn-1"))
	require.NoError(t, v.BatchEnding(ctx, "conn-1"))
}

// A session that resolved its product during the retry round reaches
// policy_start even without a device id.
func TestBatchEndingRetryResolvesWithoutDeviceID(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)

	ctx := context.Background()

	mockTransport.EXPECT().Send(gomock.Any(), gomock.Any(), false).Return(nil)
	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	mockDB.EXPECT().AddProduct(gomock.Any(), int64(7), gomock.Any()).Return(nil)

	require.NoError(t, v.BatchReceived(ctx, "conn-1", &models.Batch{Attributes: []models.Attribute{
		models.ProductInfo{Name: "Debian GNU/Linux"},
		models.StringVersion{Version: "12"},
	}}))

	mockDB.EXPECT().PolicyScript(gomock.Any(), int64(7), true).Return(nil)
	mockTransport.EXPECT().Send(gomock.Any(), gomock.Any(), true).Return(nil)

	require.NoError(t, v.BatchEnding(ctx, "conn-1"))

	sess := lookupSession(t, v, "conn-1")
	require.Equal(t, StatePolicyStart, sess.State())
}

func TestHandshakeStateNeverMovesBackward(t *testing.T) {
	sess := newSession("conn-1")

	sess.advance(StateAttrReq)
	require.Equal(t, StateAttrReq, sess.State())

	sess.advance(StateInit)
	require.Equal(t, StateAttrReq, sess.State())

	sess.advance(StatePolicyStart)
	require.Equal(t, StatePolicyStart, sess.State())

	sess.advance(StateAttrReq)
	require.Equal(t, StatePolicyStart, sess.State())
}
