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

// Package config loads the verifier service configuration from a JSON file
// with environment overrides for deployment secrets.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carverauto/posturecheck/pkg/models"
	"github.com/carverauto/posturecheck/pkg/natsbridge"
)

// Load reads the JSON config at path, applies env overrides and fills in
// defaults.
func Load(path string) (*models.VerifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	var cfg models.VerifierConfig

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyEnv overrides the fields that are usually injected per deployment
// rather than committed to the config file.
func applyEnv(cfg *models.VerifierConfig) {
	if v := os.Getenv("POSTURECHECK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	if v := os.Getenv("POSTURECHECK_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}

	if v := os.Getenv("POSTURECHECK_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func applyDefaults(cfg *models.VerifierConfig) {
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	if cfg.Database.ApplicationName == "" {
		cfg.Database.ApplicationName = "posturecheck"
	}

	if cfg.NATS.URL == "" {
		cfg.NATS.URL = "nats://localhost:4222"
	}

	if cfg.NATS.Name == "" {
		cfg.NATS.Name = "posturecheck-verifier"
	}

	if cfg.NATS.SubjectRoot == "" {
		cfg.NATS.SubjectRoot = natsbridge.DefaultSubjectRoot
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
