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

// settingNames maps settings-bag entry names to the insecure OS setting
// they flag when carrying the literal value "1".
var settingNames = map[string]models.OSSetting{
	"install_non_market_apps": models.SettingNonMarketApps,
}

// batchScratch accumulates batch-local observations during dispatch.
// Product name and version are only combined when both arrive in the same
// batch; attributes from separate batches are never merged.
type batchScratch struct {
	osName    string
	osVersion string
}

// dispatchEffect is what one attribute handler asks the batch loop to do
// next, alongside the state deltas it already applied to the session.
type dispatchEffect struct {
	// forceError terminates the assessment with {no-recommendation, error}.
	forceError bool
	// haltBatch stops processing the remaining attributes of the batch.
	haltBatch bool
}

// BatchReceived routes every attribute of one inbound batch to its handler
// and, when the trigger conditions hold, runs the compliance decision.
func (v *Verifier) BatchReceived(ctx context.Context, connectionID string, batch *models.Batch) error {
	if err := v.checkRunning(); err != nil {
		return err
	}

	sess, err := v.registry.lookup(connectionID)
	if err != nil {
		return err
	}

	var (
		scratch    batchScratch
		assessment bool
	)

	for _, attr := range batch.Attributes {
		effect := v.dispatchAttribute(ctx, sess, attr, &scratch)

		if effect.forceError {
			sess.setRecommendation(models.ActionNoRecommendation, models.ResultError)

			assessment = true
		}

		if effect.haltBatch {
			break
		}
	}

	v.resolveProduct(ctx, sess, &scratch)

	// A codec-level fatal error overrides whatever the attributes said.
	if batch.Violation {
		sess.setRecommendation(models.ActionNoRecommendation, models.ResultError)

		assessment = true
	}

	if !assessment && v.decisionReady(sess) {
		v.evaluate(ctx, sess)

		assessment = true
	}

	if assessment && !sess.AssessmentDone() {
		return v.emitAssessment(ctx, sess)
	}

	return nil
}

// dispatchAttribute applies one attribute's state delta to the session and
// returns the effect the batch loop must honor. Unknown kinds are ignored
// for forward compatibility.
func (v *Verifier) dispatchAttribute(ctx context.Context, sess *Session, attr models.Attribute, scratch *batchScratch) dispatchEffect {
	switch a := attr.(type) {
	case models.ProductInfo:
		sess.markReceived(models.KindProductInfo)
		scratch.osName = a.Name

		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Str("os_name", a.Name).
			Uint32("vendor_id", a.VendorID).
			Msg("product information received")

	case models.StringVersion:
		sess.markReceived(models.KindStringVersion)
		scratch.osVersion = a.Version

		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Str("os_version", a.Version).
			Msg("string version received")

	case models.NumericVersion:
		sess.markReceived(models.KindNumericVersion)

		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Uint32("major", a.Major).
			Uint32("minor", a.Minor).
			Msg("numeric version received")

	case models.OperationalStatus:
		sess.markReceived(models.KindOperationalStatus)

		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Str("status", string(a.Status)).
			Str("result", string(a.Result)).
			Time("last_boot", a.LastBoot).
			Msg("operational status received")

	case models.ForwardingEnabled:
		sess.markReceived(models.KindForwardingEnabled)

		if a.Status == models.FwdEnabled {
			sess.addSetting(models.SettingFwdEnabled)
		}

	case models.DefaultPasswordEnabled:
		sess.markReceived(models.KindDefaultPasswordEnabled)

		if a.Enabled {
			sess.addSetting(models.SettingDefaultPwdEnabled)
		}

	case models.InstalledPackages:
		return v.handleInstalledPackages(ctx, sess, a)

	case models.SettingsBag:
		v.handleSettingsBag(sess, a)

	case models.DeviceID:
		v.handleDeviceID(ctx, sess, a)

	case models.StartAngel:
		sess.startAngel()

	case models.StopAngel:
		sess.stopAngel()

	default:
		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Str("kind", string(attr.AttrKind())).
			Msg("ignoring unknown attribute")
	}

	return dispatchEffect{}
}

// handleInstalledPackages delegates the package inventory to the database.
// A check failure ends the assessment with an error verdict and stops the
// rest of the batch.
func (v *Verifier) handleInstalledPackages(ctx context.Context, sess *Session, attr models.InstalledPackages) dispatchEffect {
	counts, err := v.db.CheckPackages(ctx, sess.SessionID(), attr.Packages)
	if err != nil {
		v.log.Error().Err(err).
			Str("connection_id", sess.ConnectionID()).
			Msg("package check failed")

		return dispatchEffect{forceError: true, haltBatch: true}
	}

	sess.setCounts(counts)

	v.log.Info().
		Str("connection_id", sess.ConnectionID()).
		Int("total", counts.Total).
		Int("out_of_date", counts.OutOfDate).
		Int("blacklisted", counts.Blacklisted).
		Int("ok", counts.OK).
		Int("not_found", counts.NotFound()).
		Msg("packages processed")

	return dispatchEffect{}
}

func (v *Verifier) handleSettingsBag(sess *Session, attr models.SettingsBag) {
	for _, setting := range attr.Settings {
		if flag, ok := settingNames[setting.Name]; ok && setting.Value == "1" {
			sess.addSetting(flag)
		}

		v.log.Debug().
			Str("connection_id", sess.ConnectionID()).
			Str("name", setting.Name).
			Str("value", setting.Value).
			Msg("endpoint setting received")
	}
}

func (v *Verifier) handleDeviceID(ctx context.Context, sess *Session, attr models.DeviceID) {
	sess.markReceived(models.KindDeviceID)

	deviceID, err := v.db.AddDevice(ctx, sess.SessionID(), attr.Value)
	if err != nil {
		v.log.Warn().Err(err).
			Str("connection_id", sess.ConnectionID()).
			Msg("failed to register device identity")

		return
	}

	sess.setDeviceID(deviceID)

	v.log.Debug().
		Str("connection_id", sess.ConnectionID()).
		Int64("device_id", deviceID).
		Msg("device identity registered")
}

// resolveProduct combines product name and version when both arrived in
// this batch, classifies the OS family and registers the product.
func (v *Verifier) resolveProduct(ctx context.Context, sess *Session, scratch *batchScratch) {
	if scratch.osName == "" || scratch.osVersion == "" {
		return
	}

	product := models.Product{
		Type:    models.OSTypeFromName(scratch.osName),
		Name:    scratch.osName,
		Version: scratch.osVersion,
	}

	if !sess.setProduct(product) {
		return
	}

	v.log.Info().
		Str("connection_id", sess.ConnectionID()).
		Str("os_type", string(product.Type)).
		Str("os_name", product.Name).
		Str("os_version", product.Version).
		Msg("product resolved")

	if err := v.db.AddProduct(ctx, sess.SessionID(), product); err != nil {
		v.log.Warn().Err(err).
			Str("connection_id", sess.ConnectionID()).
			Msg("failed to register product")
	}
}
