// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package packet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type ackKind uint8

const (
	ackKindResult ackKind = 1
	ackKindError  ackKind = 2
)

// Acknowledgement is the counterparty's reply to an envelope. It is either a
// Result carrying an operation specific payload or an Error carrying a reason.
// The zero value is neither and fails to encode.
type Acknowledgement struct {
	kind   ackKind
	result []byte
	err    string
}

// NewResultAck returns a Result acknowledgement
func NewResultAck(data []byte) Acknowledgement {
	if data == nil {
		data = []byte{}
	}
	return Acknowledgement{kind: ackKindResult, result: data}
}

// NewErrorAck returns an Error acknowledgement
func NewErrorAck(msg string) Acknowledgement {
	return Acknowledgement{kind: ackKindError, err: msg}
}

// IsError reports whether the acknowledgement is an Error
func (a Acknowledgement) IsError() bool {
	return a.kind == ackKindError
}

// Match calls exactly one of onResult or onError depending on the variant and
// returns its error
func (a Acknowledgement) Match(
	onResult func(data []byte) error,
	onError func(msg string) error,
) error {
	switch a.kind {
	case ackKindResult:
		return onResult(a.result)
	case ackKindError:
		return onError(a.err)
	default:
		return errors.New("uninitialized acknowledgement")
	}
}

func (a Acknowledgement) String() string {
	switch a.kind {
	case ackKindResult:
		return fmt.Sprintf("Result(%d bytes)", len(a.result))
	case ackKindError:
		return fmt.Sprintf("Error(%q)", a.err)
	default:
		return "Acknowledgement(invalid)"
	}
}

func (a Acknowledgement) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case ackKindResult:
		return json.Marshal(struct {
			Result []byte `json:"result"`
		}{Result: a.result})
	case ackKindError:
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: a.err})
	default:
		return nil, errors.New("cannot encode uninitialized acknowledgement")
	}
}

func (a *Acknowledgement) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("acknowledgement must have exactly one key, found %d", len(tagged))
	}
	for key, raw := range tagged {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("acknowledgement %s is null", key)
		}
		switch key {
		case "result":
			var result []byte
			if err := json.Unmarshal(raw, &result); err != nil {
				return fmt.Errorf("acknowledgement result: %w", err)
			}
			*a = NewResultAck(result)
		case "error":
			var msg string
			if err := json.Unmarshal(raw, &msg); err != nil {
				return fmt.Errorf("acknowledgement error: %w", err)
			}
			*a = NewErrorAck(msg)
		default:
			return fmt.Errorf("unknown acknowledgement variant %q", key)
		}
	}
	return nil
}

// Encode serializes the acknowledgement
func (a Acknowledgement) Encode() ([]byte, error) {
	return json.Marshal(a)
}

// DecodeAcknowledgement parses an acknowledgement. Every failure wraps
// ErrDecode.
func DecodeAcknowledgement(data []byte) (Acknowledgement, error) {
	var ack Acknowledgement
	if err := ack.UnmarshalJSON(data); err != nil {
		return Acknowledgement{}, fmt.Errorf("%w: acknowledgement: %w", ErrDecode, err)
	}
	return ack, nil
}
