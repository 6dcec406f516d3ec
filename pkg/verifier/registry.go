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

import "sync"

// sessionRegistry owns every live session, keyed by connection id. Lookup
// and create/delete are atomic; sessions for different connections share
// nothing beyond this table.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*Session),
	}
}

// create registers a session for a connection id. Fails with
// ErrSessionExists when one is already live. The database correlation key
// is assigned afterwards via setSessionID.
func (r *sessionRegistry) create(connectionID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connectionID]; ok {
		return nil, ErrSessionExists
	}

	sess := newSession(connectionID)
	r.sessions[connectionID] = sess

	return sess, nil
}

// lookup returns the live session for a connection id.
func (r *sessionRegistry) lookup(connectionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[connectionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// remove deletes the session for a connection id and returns it so the
// caller can run teardown hooks.
func (r *sessionRegistry) remove(connectionID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[connectionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	delete(r.sessions, connectionID)

	return sess, nil
}

func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
