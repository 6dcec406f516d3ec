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

// Batch is one inbound message's worth of decoded attributes.
//
// Violation marks a decode-level fatal error reported by the codec; the
// attributes that did decode are still delivered, but the verifier must
// terminate the assessment with an error verdict.
type Batch struct {
	Attributes []Attribute
	Violation  bool
}

// AttributeRequest asks the endpoint to supply the listed attribute kinds.
type AttributeRequest struct {
	Kinds []AttributeKind `json:"kinds"`
}

// Message is one outbound verifier message for a connection.
type Message struct {
	ID           string            `json:"id"`
	ConnectionID string            `json:"connection_id"`
	Request      *AttributeRequest `json:"request,omitempty"`
}

// AssessmentMessage terminates the attribute exchange for a connection and
// carries the final verdict alongside it.
type AssessmentMessage struct {
	ID             string         `json:"id"`
	ConnectionID   string         `json:"connection_id"`
	Recommendation Recommendation `json:"recommendation"`
}
