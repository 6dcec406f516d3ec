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
	"fmt"
)

// attrEnvelope is the wire framing for one attribute: the kind tag selects
// the payload type on decode.
type attrEnvelope struct {
	Kind    AttributeKind   `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// batchEnvelope is the wire framing for one inbound batch.
type batchEnvelope struct {
	ID         string         `json:"id"`
	Attributes []attrEnvelope `json:"attributes"`
}

// EncodeBatch marshals a batch into its JSON wire form. The envelope id is
// caller-assigned for correlation in logs.
func EncodeBatch(id string, batch *Batch) ([]byte, error) {
	env := batchEnvelope{
		ID:         id,
		Attributes: make([]attrEnvelope, 0, len(batch.Attributes)),
	}

	for _, attr := range batch.Attributes {
		payload, err := json.Marshal(attr)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s attribute: %w", attr.AttrKind(), err)
		}

		env.Attributes = append(env.Attributes, attrEnvelope{
			Kind:    attr.AttrKind(),
			Payload: payload,
		})
	}

	return json.Marshal(env)
}

// DecodeBatch unmarshals a batch from its JSON wire form. Attributes of
// unknown kinds decode to UnknownAttribute and are preserved in order.
func DecodeBatch(data []byte) (*Batch, error) {
	var env batchEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch envelope: %w", err)
	}

	batch := &Batch{Attributes: make([]Attribute, 0, len(env.Attributes))}

	for _, raw := range env.Attributes {
		attr, err := decodeAttribute(raw)
		if err != nil {
			return nil, err
		}

		batch.Attributes = append(batch.Attributes, attr)
	}

	return batch, nil
}

func decodeAttribute(raw attrEnvelope) (Attribute, error) {
	var (
		attr Attribute
		err  error
	)

	switch raw.Kind {
	case KindProductInfo:
		attr, err = decodePayload[ProductInfo](raw)
	case KindStringVersion:
		attr, err = decodePayload[StringVersion](raw)
	case KindNumericVersion:
		attr, err = decodePayload[NumericVersion](raw)
	case KindOperationalStatus:
		attr, err = decodePayload[OperationalStatus](raw)
	case KindForwardingEnabled:
		attr, err = decodePayload[ForwardingEnabled](raw)
	case KindDefaultPasswordEnabled:
		attr, err = decodePayload[DefaultPasswordEnabled](raw)
	case KindInstalledPackages:
		attr, err = decodePayload[InstalledPackages](raw)
	case KindSettings:
		attr, err = decodePayload[SettingsBag](raw)
	case KindDeviceID:
		attr, err = decodePayload[DeviceID](raw)
	case KindStartAngel:
		attr = StartAngel{}
	case KindStopAngel:
		attr = StopAngel{}
	case KindUnknown:
		attr = UnknownAttribute{RawKind: string(raw.Kind)}
	default:
		attr = UnknownAttribute{RawKind: string(raw.Kind)}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s attribute: %w", raw.Kind, err)
	}

	return attr, nil
}

func decodePayload[T Attribute](raw attrEnvelope) (Attribute, error) {
	var payload T
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return payload, nil
}
