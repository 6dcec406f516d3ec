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

// Package db implements the compliance database collaborator on Postgres.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/posturecheck/pkg/logger"
	"github.com/carverauto/posturecheck/pkg/models"
)

// Store is the Postgres-backed compliance database. It implements
// verifier.Database.
type Store struct {
	pool *pgxpool.Pool
	log  logger.Logger

	policyScript  string
	scriptTimeout time.Duration
}

const defaultScriptTimeout = 30 * time.Second

// New connects to the configured database and returns a Store.
func New(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*Store, error) {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.PolicyScriptTimeout)
	if timeout <= 0 {
		timeout = defaultScriptTimeout
	}

	return &Store{
		pool:          pool,
		log:           log.WithComponent("db"),
		policyScript:  cfg.PolicyScript,
		scriptTimeout: timeout,
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// AddSession registers a connection and returns its session id.
func (s *Store) AddSession(ctx context.Context, connectionID string) (int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx,
		`INSERT INTO sessions (connection_id) VALUES ($1) RETURNING id`,
		connectionID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w sessions: %w", ErrFailedToInsert, err)
	}

	return id, nil
}

// CheckPackages evaluates the reported inventory against the package
// policy table. Packages the policy has no rows for count toward total
// only; a known package at an unlisted version counts as out of date.
func (s *Store) CheckPackages(ctx context.Context, sessionID int64, packages []models.Package) (models.PackageCounts, error) {
	counts := models.PackageCounts{Total: len(packages)}

	for _, pkg := range packages {
		rows, err := s.pool.Query(ctx,
			`SELECT version, blacklisted FROM package_policy WHERE name = $1`,
			pkg.Name)
		if err != nil {
			return models.PackageCounts{}, fmt.Errorf("%w package_policy: %w", ErrFailedToQuery, err)
		}

		known := false
		versionMatch := false
		blacklisted := false

		for rows.Next() {
			var (
				version string
				blFlag  bool
			)

			if err := rows.Scan(&version, &blFlag); err != nil {
				rows.Close()
				return models.PackageCounts{}, fmt.Errorf("%w package_policy: %w", ErrFailedToQuery, err)
			}

			known = true

			if version == pkg.Version {
				versionMatch = true
				blacklisted = blFlag
			}
		}

		rows.Close()

		if err := rows.Err(); err != nil {
			return models.PackageCounts{}, fmt.Errorf("%w package_policy: %w", ErrFailedToQuery, err)
		}

		switch {
		case !known:
			// Not covered by policy; total only.
		case !versionMatch:
			counts.OutOfDate++
		case blacklisted:
			counts.Blacklisted++
		default:
			counts.OK++
		}
	}

	s.log.Debug().
		Int64("session_id", sessionID).
		Int("total", counts.Total).
		Int("out_of_date", counts.OutOfDate).
		Int("blacklisted", counts.Blacklisted).
		Int("ok", counts.OK).
		Msg("package check complete")

	return counts, nil
}

// AddDevice upserts the raw device identity and links it to the session.
func (s *Store) AddDevice(ctx context.Context, sessionID int64, rawID []byte) (int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx,
		`INSERT INTO devices (value) VALUES ($1)
		 ON CONFLICT (value) DO UPDATE SET last_seen = now()
		 RETURNING id`,
		string(rawID)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w devices: %w", ErrFailedToInsert, err)
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE sessions SET device_id = $1 WHERE id = $2`, id, sessionID); err != nil {
		return 0, fmt.Errorf("%w sessions: %w", ErrFailedToInsert, err)
	}

	return id, nil
}

// AddProduct upserts the resolved OS identity and links it to the session.
func (s *Store) AddProduct(ctx context.Context, sessionID int64, product models.Product) error {
	var id int64

	err := s.pool.QueryRow(ctx,
		`INSERT INTO products (os_type, name, version) VALUES ($1, $2, $3)
		 ON CONFLICT (name, version) DO UPDATE SET os_type = EXCLUDED.os_type
		 RETURNING id`,
		string(product.Type), product.Name, product.Version).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w products: %w", ErrFailedToInsert, err)
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE sessions SET product_id = $1 WHERE id = $2`, id, sessionID); err != nil {
		return fmt.Errorf("%w sessions: %w", ErrFailedToInsert, err)
	}

	return nil
}

// SetDeviceInfo persists the final assessment inputs for a session.
func (s *Store) SetDeviceInfo(ctx context.Context, sessionID int64, total, outOfDate, blacklisted int, settings models.SettingsSet) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO device_infos (session_id, total, out_of_date, blacklisted, os_settings)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id) DO UPDATE SET
		   total = EXCLUDED.total,
		   out_of_date = EXCLUDED.out_of_date,
		   blacklisted = EXCLUDED.blacklisted,
		   os_settings = EXCLUDED.os_settings`,
		sessionID, total, outOfDate, blacklisted, settings.Names())
	if err != nil {
		return fmt.Errorf("%w device_infos: %w", ErrFailedToInsert, err)
	}

	return nil
}
