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

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidDuration reports a config duration that is neither a number of
// nanoseconds nor a time.ParseDuration string.
var ErrInvalidDuration = errors.New("invalid duration value")

// Duration is a wrapper around time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}

		*d = Duration(tmp)
	default:
		return ErrInvalidDuration
	}

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// VerifierConfig is the top-level service configuration.
type VerifierConfig struct {
	Database DatabaseConfig `json:"database"`
	NATS     NATSConfig     `json:"nats"`
	Logging  LoggingConfig  `json:"logging"`
}

// DatabaseConfig configures the Postgres compliance database and the
// policy script run when a session reaches policy evaluation.
type DatabaseConfig struct {
	Host            string            `json:"host"`
	Port            int               `json:"port"`
	Database        string            `json:"database"`
	Username        string            `json:"username"`
	Password        string            `json:"password"`
	SSLMode         string            `json:"ssl_mode"`
	ApplicationName string            `json:"application_name"`
	MaxConnections  int32             `json:"max_connections"`
	RuntimeParams   map[string]string `json:"runtime_params,omitempty"`

	PolicyScript        string   `json:"policy_script"`
	PolicyScriptTimeout Duration `json:"policy_script_timeout"`
}

// NATSConfig configures the transport bridge.
type NATSConfig struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	SubjectRoot  string `json:"subject_root"`
	CredsFile    string `json:"creds_file,omitempty"`
	MaxReconnect int    `json:"max_reconnect"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	Level      string `json:"level"`
	Debug      bool   `json:"debug"`
	Output     string `json:"output"`
	TimeFormat string `json:"time_format"`
}
