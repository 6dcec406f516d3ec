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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/posturecheck/pkg/config"
	"github.com/carverauto/posturecheck/pkg/db"
	"github.com/carverauto/posturecheck/pkg/logger"
	"github.com/carverauto/posturecheck/pkg/natsbridge"
	"github.com/carverauto/posturecheck/pkg/verifier"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/posturecheck/verifier.json", "Path to verifier config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.New(ctx, &cfg.Database, lg)
	if err != nil {
		return fmt.Errorf("failed to connect to compliance database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	opts := []nats.Option{nats.Name(cfg.NATS.Name)}

	if cfg.NATS.MaxReconnect != 0 {
		opts = append(opts, nats.MaxReconnects(cfg.NATS.MaxReconnect))
	}

	if cfg.NATS.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(cfg.NATS.CredsFile))
	}

	nc, err := nats.Connect(cfg.NATS.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer nc.Close()

	transport := natsbridge.NewPublisher(nc, cfg.NATS.SubjectRoot, lg)

	v, err := verifier.New(store, transport, lg)
	if err != nil {
		return err
	}

	bridge := natsbridge.New(nc, v, cfg.NATS.SubjectRoot, lg)
	if err := bridge.Start(ctx); err != nil {
		return err
	}
	defer bridge.Close()

	lg.Info().Str("nats_url", cfg.NATS.URL).Msg("posture verifier running")

	<-ctx.Done()

	lg.Info().Msg("shutting down")

	return v.Close()
}
