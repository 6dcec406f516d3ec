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

	"github.com/carverauto/posturecheck/pkg/models"
)

// decisionReady reports whether the compliance decision can run: policy
// evaluation has started, the package inventory has been checked, no
// helper process is still active and no verdict has been produced yet.
func (*Verifier) decisionReady(sess *Session) bool {
	return sess.State() == StatePolicyStart &&
		sess.countsProcessed &&
		sess.AngelCount() == 0 &&
		!sess.AssessmentDone()
}

// evaluate persists the assessment inputs and sets the session's verdict.
// A persist failure must not strand the session without a verdict, so the
// decision still runs.
func (v *Verifier) evaluate(ctx context.Context, sess *Session) {
	counts := sess.Counts()
	settings := sess.Settings()

	if err := v.db.SetDeviceInfo(ctx, sess.SessionID(), counts.Total, counts.OutOfDate,
		counts.Blacklisted, settings); err != nil {
		v.log.Warn().Err(err).
			Str("connection_id", sess.ConnectionID()).
			Msg("failed to persist device info")
	}

	rec := decide(counts, settings)
	sess.setRecommendation(rec.Action, rec.Result)

	v.log.Info().
		Str("connection_id", sess.ConnectionID()).
		Str("action", string(rec.Action)).
		Str("result", string(rec.Result)).
		Strs("os_settings", settings.Names()).
		Msg("compliance decided")
}

// decide is the pure compliance rule: any out-of-date or blacklisted
// package, or any insecure OS setting, isolates the endpoint.
func decide(counts models.PackageCounts, settings models.SettingsSet) models.Recommendation {
	if counts.OutOfDate > 0 || counts.Blacklisted > 0 || !settings.Empty() {
		return models.Recommendation{
			Action: models.ActionIsolate,
			Result: models.ResultNoncompliantMinor,
		}
	}

	return models.Recommendation{
		Action: models.ActionAllow,
		Result: models.ResultCompliant,
	}
}
