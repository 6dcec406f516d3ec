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

import "errors"

var (

	// Instance lifecycle.

	ErrNotRunning    = errors.New("verifier is not running")
	ErrAlreadyClosed = errors.New("verifier already closed")

	// Session registry.

	ErrSessionExists   = errors.New("session already exists for connection")
	ErrSessionNotFound = errors.New("no session for connection")

	// Assessment contract.

	ErrAssessmentDone = errors.New("assessment already provided for session")

	// Constructor validation.

	ErrNilDatabase  = errors.New("database collaborator is required")
	ErrNilTransport = errors.New("transport collaborator is required")
)
