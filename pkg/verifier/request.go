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

import "github.com/carverauto/posturecheck/pkg/models"

// buildAttrRequest computes the attribute request for the mandatory kinds
// absent from received. Pure: identical sets produce identical requests.
//
// Product information and string version are requested as a pair when
// either is missing, since the endpoint must deliver them together.
func buildAttrRequest(received models.KindSet) *models.AttributeRequest {
	req := &models.AttributeRequest{}

	if !received.Has(models.KindProductInfo) || !received.Has(models.KindStringVersion) {
		req.Kinds = append(req.Kinds, models.KindProductInfo, models.KindStringVersion)
	}

	single := []models.AttributeKind{
		models.KindNumericVersion,
		models.KindOperationalStatus,
		models.KindForwardingEnabled,
		models.KindDefaultPasswordEnabled,
		models.KindDeviceID,
	}

	for _, kind := range single {
		if !received.Has(kind) {
			req.Kinds = append(req.Kinds, kind)
		}
	}

	return req
}
