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

import "strings"

// Action is the access-control action the verifier recommends to the
// enforcement layer.
type Action string

const (
	ActionNoRecommendation Action = "no_recommendation"
	ActionIsolate          Action = "isolate"
	ActionAllow            Action = "allow"
)

// Result qualifies a recommendation.
type Result string

const (
	ResultDontKnow          Result = "dont_know"
	ResultError             Result = "error"
	ResultNoncompliantMinor Result = "noncompliant_minor"
	ResultCompliant         Result = "compliant"
)

// Recommendation is the verifier's verdict for one connection.
type Recommendation struct {
	Action Action `json:"action"`
	Result Result `json:"result"`
}

// PackageCounts aggregates the outcome of an installed-packages check.
type PackageCounts struct {
	Total       int `json:"total"`
	OutOfDate   int `json:"out_of_date"`
	Blacklisted int `json:"blacklisted"`
	OK          int `json:"ok"`
}

// NotFound is the number of reported packages the policy database had no
// opinion on.
func (c PackageCounts) NotFound() int {
	return c.Total - c.OutOfDate - c.Blacklisted - c.OK
}

// OSSetting is one insecure endpoint configuration flag.
type OSSetting string

const (
	SettingFwdEnabled        OSSetting = "fwd_enabled"
	SettingDefaultPwdEnabled OSSetting = "default_pwd_enabled"
	SettingNonMarketApps     OSSetting = "non_market_apps"
)

// SettingsSet is a set of insecure OS settings observed on the endpoint.
// Like KindSet it only ever grows.
type SettingsSet map[OSSetting]struct{}

// NewSettingsSet builds a set from the given settings.
func NewSettingsSet(settings ...OSSetting) SettingsSet {
	s := make(SettingsSet, len(settings))
	for _, v := range settings {
		s[v] = struct{}{}
	}

	return s
}

// Add inserts a setting into the set.
func (s SettingsSet) Add(setting OSSetting) {
	s[setting] = struct{}{}
}

// Has reports membership.
func (s SettingsSet) Has(setting OSSetting) bool {
	_, ok := s[setting]
	return ok
}

// Empty reports whether no insecure setting was observed.
func (s SettingsSet) Empty() bool {
	return len(s) == 0
}

// Names returns the settings in a stable order for persistence and logs.
func (s SettingsSet) Names() []string {
	ordered := []OSSetting{SettingFwdEnabled, SettingDefaultPwdEnabled, SettingNonMarketApps}

	out := make([]string, 0, len(s))

	for _, v := range ordered {
		if s.Has(v) {
			out = append(out, string(v))
		}
	}

	return out
}

// OSType classifies a product name into a known OS family.
type OSType string

const (
	OSUnknown OSType = "unknown"
	OSDebian  OSType = "debian"
	OSUbuntu  OSType = "ubuntu"
	OSFedora  OSType = "fedora"
	OSRedHat  OSType = "redhat"
	OSCentOS  OSType = "centos"
	OSSUSE    OSType = "suse"
	OSGentoo  OSType = "gentoo"
	OSAndroid OSType = "android"
	OSWindows OSType = "windows"
	OSMacOS   OSType = "macos"
)

var osNameFamilies = []struct {
	substr string
	typ    OSType
}{
	{"debian", OSDebian},
	{"ubuntu", OSUbuntu},
	{"fedora", OSFedora},
	{"red hat", OSRedHat},
	{"redhat", OSRedHat},
	{"centos", OSCentOS},
	{"suse", OSSUSE},
	{"gentoo", OSGentoo},
	{"android", OSAndroid},
	{"windows", OSWindows},
	{"mac os", OSMacOS},
	{"macos", OSMacOS},
	{"os x", OSMacOS},
}

// OSTypeFromName classifies a reported product name against the known OS
// name families. Unrecognized names map to OSUnknown.
func OSTypeFromName(name string) OSType {
	lowered := strings.ToLower(name)

	for _, family := range osNameFamilies {
		if strings.Contains(lowered, family.substr) {
			return family.typ
		}
	}

	return OSUnknown
}

// Product is the endpoint's resolved operating system identity.
type Product struct {
	Type    OSType `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version"`
}
