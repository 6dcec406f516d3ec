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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/posturecheck/pkg/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		counts   models.PackageCounts
		settings models.SettingsSet
		want     models.Recommendation
	}{
		{
			name:     "clean endpoint allows",
			counts:   models.PackageCounts{Total: 10, OK: 10},
			settings: models.NewSettingsSet(),
			want:     models.Recommendation{Action: models.ActionAllow, Result: models.ResultCompliant},
		},
		{
			name:     "out of date packages isolate",
			counts:   models.PackageCounts{Total: 10, OutOfDate: 2, OK: 8},
			settings: models.NewSettingsSet(),
			want:     models.Recommendation{Action: models.ActionIsolate, Result: models.ResultNoncompliantMinor},
		},
		{
			name:     "blacklisted packages isolate",
			counts:   models.PackageCounts{Total: 10, Blacklisted: 1, OK: 9},
			settings: models.NewSettingsSet(),
			want:     models.Recommendation{Action: models.ActionIsolate, Result: models.ResultNoncompliantMinor},
		},
		{
			name:     "insecure settings isolate",
			counts:   models.PackageCounts{Total: 10, OK: 10},
			settings: models.NewSettingsSet(models.SettingFwdEnabled),
			want:     models.Recommendation{Action: models.ActionIsolate, Result: models.ResultNoncompliantMinor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, decide(tt.counts, tt.settings))
		})
	}
}

// Scenario: two out-of-date packages at policy_start isolate the endpoint
// and the assessment inputs are persisted first.
func TestDecisionIsolatesOutOfDateEndpoint(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)
	advanceToPolicyStart(t, v, mockDB, mockTransport, "conn-1", 7)

	counts := models.PackageCounts{Total: 10, OutOfDate: 2, Blacklisted: 0, OK: 8}

	mockDB.EXPECT().CheckPackages(gomock.Any(), int64(7), gomock.Any()).Return(counts, nil)
	mockDB.EXPECT().
		SetDeviceInfo(gomock.Any(), int64(7), 10, 2, 0, models.NewSettingsSet()).
		Return(nil)

	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil)
	mockTransport.EXPECT().
		ProvideRecommendation(gomock.Any(), "conn-1", models.Recommendation{
			Action: models.ActionIsolate,
			Result: models.ResultNoncompliantMinor,
		}).
		Return(nil)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.InstalledPackages{Packages: []models.Package{{Name: "bash", Version: "5.0"}}},
	}}
	require.NoError(t, v.BatchReceived(context.Background(), "conn-1", batch))

	sess := lookupSession(t, v, "conn-1")
	require.True(t, sess.AssessmentDone())
}

// Scenario: a clean inventory at policy_start allows the endpoint.
func TestDecisionAllowsCleanEndpoint(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)
	advanceToPolicyStart(t, v, mockDB, mockTransport, "conn-1", 7)

	counts := models.PackageCounts{Total: 10, OK: 10}

	mockDB.EXPECT().CheckPackages(gomock.Any(), int64(7), gomock.Any()).Return(counts, nil)
	mockDB.EXPECT().
		SetDeviceInfo(gomock.Any(), int64(7), 10, 0, 0, models.NewSettingsSet()).
		Return(nil)

	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil)
	mockTransport.EXPECT().
		ProvideRecommendation(gomock.Any(), "conn-1", models.Recommendation{
			Action: models.ActionAllow,
			Result: models.ResultCompliant,
		}).
		Return(nil)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.InstalledPackages{Packages: []models.Package{{Name: "bash", Version: "5.1"}}},
	}}
	require.NoError(t, v.BatchReceived(context.Background(), "conn-1", batch))
}

// Scenario: an active helper process defers the decision until the
// matching stop returns the counter to zero.
func TestDecisionWaitsForAngel(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)
	advanceToPolicyStart(t, v, mockDB, mockTransport, "conn-1", 7)

	ctx := context.Background()

	counts := models.PackageCounts{Total: 5, OK: 5}
	mockDB.EXPECT().CheckPackages(gomock.Any(), int64(7), gomock.Any()).Return(counts, nil)

	// Packages processed while a helper is active: no assessment yet.
	batch := &models.Batch{Attributes: []models.Attribute{
		models.StartAngel{},
		models.InstalledPackages{Packages: []models.Package{{Name: "bash", Version: "5.1"}}},
	}}
	require.NoError(t, v.BatchReceived(ctx, "conn-1", batch))

	sess := lookupSession(t, v, "conn-1")
	require.False(t, sess.AssessmentDone())
	require.Equal(t, 1, sess.AngelCount())

	mockDB.EXPECT().SetDeviceInfo(gomock.Any(), int64(7), 5, 0, 0, models.NewSettingsSet()).Return(nil)
	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil)
	mockTransport.EXPECT().
		ProvideRecommendation(gomock.Any(), "conn-1", models.Recommendation{
			Action: models.ActionAllow,
			Result: models.ResultCompliant,
		}).
		Return(nil)

	require.NoError(t, v.BatchReceived(ctx, "conn-1", &models.Batch{Attributes: []models.Attribute{
		models.StopAngel{},
	}}))

	require.True(t, sess.AssessmentDone())
}

// A device-info persist failure must not leave the session without a
// verdict; the decision still runs on the in-memory counts.
func TestDecisionSurvivesPersistFailure(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)
	advanceToPolicyStart(t, v, mockDB, mockTransport, "conn-1", 7)

	counts := models.PackageCounts{Total: 3, Blacklisted: 1, OK: 2}

	mockDB.EXPECT().CheckPackages(gomock.Any(), int64(7), gomock.Any()).Return(counts, nil)
	mockDB.EXPECT().
		SetDeviceInfo(gomock.Any(), int64(7), 3, 0, 1, models.NewSettingsSet()).
		Return(errors.New("connection refused"))

	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil)
	mockTransport.EXPECT().
		ProvideRecommendation(gomock.Any(), "conn-1", models.Recommendation{
			Action: models.ActionIsolate,
			Result: models.ResultNoncompliantMinor,
		}).
		Return(nil)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.InstalledPackages{Packages: []models.Package{{Name: "rootkit", Version: "1.0"}}},
	}}
	require.NoError(t, v.BatchReceived(context.Background(), "conn-1", batch))

	sess := lookupSession(t, v, "conn-1")
	require.True(t, sess.AssessmentDone())
}

// The verdict is provided exactly once even if more batches arrive.
func TestRecommendationProvidedExactlyOnce(t *testing.T) {
	v, mockDB, mockTransport := newTestVerifier(t)

	createSession(t, v, mockDB, "conn-1", 7)
	advanceToPolicyStart(t, v, mockDB, mockTransport, "conn-1", 7)

	ctx := context.Background()

	counts := models.PackageCounts{Total: 1, OK: 1}
	mockDB.EXPECT().CheckPackages(gomock.Any(), int64(7), gomock.Any()).Return(counts, nil)
	mockDB.EXPECT().SetDeviceInfo(gomock.Any(), int64(7), 1, 0, 0, models.NewSettingsSet()).Return(nil)

	mockTransport.EXPECT().SendAssessment(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mockTransport.EXPECT().ProvideRecommendation(gomock.Any(), "conn-1", gomock.Any()).Return(nil).Times(1)

	batch := &models.Batch{Attributes: []models.Attribute{
		models.InstalledPackages{Packages: []models.Package{{Name: "bash", Version: "5.1"}}},
	}}
	require.NoError(t, v.BatchReceived(ctx, "conn-1", batch))

	// Further traffic must not produce a second verdict.
	require.NoError(t, v.BatchReceived(ctx, "conn-1", &models.Batch{Attributes: []models.Attribute{
		models.NumericVersion{Major: 20, Minor: 4},
	}}))

	err := v.SolicitRecommendation(ctx, "conn-1")
	require.ErrorIs(t, err, ErrAssessmentDone)
}
