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
	"os/exec"
	"strconv"
)

// PolicyScript runs the operator's policy manager for a session. The script
// receives "start" or "stop" plus the session id and is expected to prepare
// or clean up the policy rows the package check reads.
func (s *Store) PolicyScript(ctx context.Context, sessionID int64, activate bool) error {
	if s.policyScript == "" {
		s.log.Debug().Int64("session_id", sessionID).Msg("no policy script configured, skipping")
		return nil
	}

	verb := "stop"
	if activate {
		verb = "start"
	}

	runCtx, cancel := context.WithTimeout(ctx, s.scriptTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.policyScript, verb, strconv.FormatInt(sessionID, 10))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("policy script %s failed for session %d: %w: %s",
			verb, sessionID, err, string(output))
	}

	s.log.Debug().
		Int64("session_id", sessionID).
		Str("verb", verb).
		Msg("policy script completed")

	return nil
}
