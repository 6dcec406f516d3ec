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

import (
	"errors"
	"testing"
)

func TestRegistryCreateAndLookup(t *testing.T) {
	reg := newSessionRegistry()

	sess, err := reg.create("conn-1")
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	sess.setSessionID(7)

	if sess.ConnectionID() != "conn-1" || sess.SessionID() != 7 {
		t.Fatalf("unexpected session: %#v", sess)
	}

	sess.setSessionID(8)

	if sess.SessionID() != 7 {
		t.Fatalf("session id must be write-once, got %d", sess.SessionID())
	}

	if sess.State() != StateInit {
		t.Fatalf("expected new session in init state, got %s", sess.State())
	}

	got, err := reg.lookup("conn-1")
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}

	if got != sess {
		t.Fatalf("lookup returned a different session")
	}
}

func TestRegistryCreateDuplicate(t *testing.T) {
	reg := newSessionRegistry()

	if _, err := reg.create("conn-1"); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	if _, err := reg.create("conn-1"); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	reg := newSessionRegistry()

	if _, err := reg.lookup("conn-404"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := newSessionRegistry()

	if _, err := reg.create("conn-1"); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	if _, err := reg.remove("conn-1"); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}

	if _, err := reg.lookup("conn-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}

	if _, err := reg.remove("conn-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected remove of missing session to fail, got %v", err)
	}
}

func TestRegistryIndependentSessions(t *testing.T) {
	reg := newSessionRegistry()

	a, err := reg.create("conn-a")
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	b, err := reg.create("conn-b")
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	a.advance(StatePolicyStart)

	if b.State() != StateInit {
		t.Fatalf("session b state changed with session a: %s", b.State())
	}

	if reg.len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", reg.len())
	}
}
