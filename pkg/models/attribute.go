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

package models

import "time"

// AttributeKind identifies one posture attribute type carried in a batch.
type AttributeKind string

const (
	KindProductInfo            AttributeKind = "product_info"
	KindStringVersion          AttributeKind = "string_version"
	KindNumericVersion         AttributeKind = "numeric_version"
	KindOperationalStatus      AttributeKind = "operational_status"
	KindForwardingEnabled      AttributeKind = "forwarding_enabled"
	KindDefaultPasswordEnabled AttributeKind = "default_pwd_enabled"
	KindInstalledPackages      AttributeKind = "installed_packages"
	KindSettings               AttributeKind = "settings"
	KindDeviceID               AttributeKind = "device_id"
	KindStartAngel             AttributeKind = "start_angel"
	KindStopAngel              AttributeKind = "stop_angel"
	KindUnknown                AttributeKind = "unknown"
)

// MandatoryKinds is the set of attributes an endpoint must supply before
// the verifier can start policy evaluation. Request ordering in outbound
// attribute requests follows this slice.
var MandatoryKinds = []AttributeKind{
	KindProductInfo,
	KindStringVersion,
	KindNumericVersion,
	KindOperationalStatus,
	KindForwardingEnabled,
	KindDefaultPasswordEnabled,
	KindDeviceID,
}

// Attribute is one decoded posture attribute. Concrete payload types
// implement this; dispatch switches on the concrete type.
type Attribute interface {
	AttrKind() AttributeKind
}

// ProductInfo carries the endpoint's operating system product name.
type ProductInfo struct {
	VendorID uint32 `json:"vendor_id"`
	Name     string `json:"name"`
}

// StringVersion carries the human-readable OS version.
type StringVersion struct {
	Version string `json:"version"`
	Build   string `json:"build,omitempty"`
}

// NumericVersion carries the numeric OS version.
type NumericVersion struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// OpStatus is the endpoint's reported operational status.
type OpStatus string

const (
	OpStatusUnknown      OpStatus = "unknown"
	OpStatusNotInstalled OpStatus = "not_installed"
	OpStatusInstalled    OpStatus = "installed"
	OpStatusOperational  OpStatus = "operational"
)

// OpResult is the outcome of the endpoint's last operation.
type OpResult string

const (
	OpResultUnknown      OpResult = "unknown"
	OpResultSuccessful   OpResult = "successful"
	OpResultErrored      OpResult = "errored"
	OpResultUnsuccessful OpResult = "unsuccessful"
)

// OperationalStatus carries status, result and last boot time.
type OperationalStatus struct {
	Status   OpStatus  `json:"status"`
	Result   OpResult  `json:"result"`
	LastBoot time.Time `json:"last_boot"`
}

// FwdStatus reports whether IP forwarding is active on the endpoint.
type FwdStatus string

const (
	FwdDisabled FwdStatus = "disabled"
	FwdEnabled  FwdStatus = "enabled"
	FwdUnknown  FwdStatus = "unknown"
)

// ForwardingEnabled carries the endpoint's IP forwarding status.
type ForwardingEnabled struct {
	Status FwdStatus `json:"status"`
}

// DefaultPasswordEnabled reports whether the factory default password is
// still set on the endpoint.
type DefaultPasswordEnabled struct {
	Enabled bool `json:"enabled"`
}

// Package is one installed software package reported by the endpoint.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InstalledPackages carries the endpoint's software inventory.
type InstalledPackages struct {
	Packages []Package `json:"packages"`
}

// Setting is one name/value pair from a settings bag.
type Setting struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SettingsBag carries arbitrary endpoint settings as name/value pairs.
type SettingsBag struct {
	Settings []Setting `json:"settings"`
}

// DeviceID carries the endpoint's raw device identity.
type DeviceID struct {
	Value []byte `json:"value"`
}

// StartAngel signals that a helper process became active on the endpoint.
type StartAngel struct{}

// StopAngel signals that a helper process finished on the endpoint.
type StopAngel struct{}

// UnknownAttribute preserves attributes of kinds this verifier does not
// understand. They are ignored during dispatch.
type UnknownAttribute struct {
	RawKind string `json:"raw_kind"`
}

func (ProductInfo) AttrKind() AttributeKind            { return KindProductInfo }
func (StringVersion) AttrKind() AttributeKind          { return KindStringVersion }
func (NumericVersion) AttrKind() AttributeKind         { return KindNumericVersion }
func (OperationalStatus) AttrKind() AttributeKind      { return KindOperationalStatus }
func (ForwardingEnabled) AttrKind() AttributeKind      { return KindForwardingEnabled }
func (DefaultPasswordEnabled) AttrKind() AttributeKind { return KindDefaultPasswordEnabled }
func (InstalledPackages) AttrKind() AttributeKind      { return KindInstalledPackages }
func (SettingsBag) AttrKind() AttributeKind            { return KindSettings }
func (DeviceID) AttrKind() AttributeKind               { return KindDeviceID }
func (StartAngel) AttrKind() AttributeKind             { return KindStartAngel }
func (StopAngel) AttrKind() AttributeKind              { return KindStopAngel }
func (UnknownAttribute) AttrKind() AttributeKind       { return KindUnknown }

// KindSet is a set of attribute kinds. It only ever grows.
type KindSet map[AttributeKind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...AttributeKind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}

	return s
}

// Add inserts a kind into the set.
func (s KindSet) Add(kind AttributeKind) {
	s[kind] = struct{}{}
}

// Has reports membership.
func (s KindSet) Has(kind AttributeKind) bool {
	_, ok := s[kind]
	return ok
}

// HasAll reports whether every given kind is present.
func (s KindSet) HasAll(kinds []AttributeKind) bool {
	for _, k := range kinds {
		if !s.Has(k) {
			return false
		}
	}

	return true
}

// Clone returns an independent copy of the set.
func (s KindSet) Clone() KindSet {
	out := make(KindSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}

	return out
}
