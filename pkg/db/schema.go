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

package db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id            BIGSERIAL PRIMARY KEY,
		connection_id TEXT NOT NULL,
		device_id     BIGINT,
		product_id    BIGINT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS devices (
		id         BIGSERIAL PRIMARY KEY,
		value      TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_seen  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id      BIGSERIAL PRIMARY KEY,
		os_type TEXT NOT NULL,
		name    TEXT NOT NULL,
		version TEXT NOT NULL,
		UNIQUE (name, version)
	)`,
	`CREATE TABLE IF NOT EXISTS package_policy (
		name        TEXT NOT NULL,
		version     TEXT NOT NULL,
		blacklisted BOOLEAN NOT NULL DEFAULT false,
		PRIMARY KEY (name, version)
	)`,
	`CREATE TABLE IF NOT EXISTS device_infos (
		session_id  BIGINT PRIMARY KEY REFERENCES sessions (id),
		total       INT NOT NULL,
		out_of_date INT NOT NULL,
		blacklisted INT NOT NULL,
		os_settings TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the compliance tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToInit, err)
		}
	}

	return nil
}
