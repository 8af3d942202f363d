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

// Package packet implements the JSON envelopes exchanged with the
// counterparty: outbound query envelopes, acknowledgements and the result
// payloads carried by successful acknowledgements.
package packet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SpotPriceQuery asks for the spot price of TokenOut in TokenIn on a pool
type SpotPriceQuery struct {
	PoolID   uint64
	TokenIn  string
	TokenOut string
}

// EstimateSwapQuery asks how much TokenOut a swap of TokenIn (a coin such as
// "1000uosmo") would yield
type EstimateSwapQuery struct {
	Sender   string
	PoolID   uint64
	TokenIn  string
	TokenOut string
}

// Envelope is an outbound query. Exactly one of SpotPrice and EstimateSwap is
// set for those discriminators; neither is set for a probe.
type Envelope struct {
	ClientID      string
	Format        Format
	Discriminator Discriminator
	SpotPrice     *SpotPriceQuery
	EstimateSwap  *EstimateSwapQuery
}

func NewSpotPriceEnvelope(format Format, clientID string, q SpotPriceQuery) *Envelope {
	return &Envelope{
		ClientID:      clientID,
		Format:        format,
		Discriminator: DiscriminatorSpotPrice,
		SpotPrice:     &q,
	}
}

func NewEstimateSwapEnvelope(format Format, clientID string, q EstimateSwapQuery) *Envelope {
	return &Envelope{
		ClientID:      clientID,
		Format:        format,
		Discriminator: DiscriminatorEstimateSwap,
		EstimateSwap:  &q,
	}
}

func NewProbeEnvelope(format Format, clientID string) *Envelope {
	return &Envelope{
		ClientID:      clientID,
		Format:        format,
		Discriminator: DiscriminatorProbe,
	}
}

type pathEnvelope struct {
	ClientID string `json:"client_id,omitempty"`
	Path     string `json:"path"`
	Data     []byte `json:"data"`
}

type spotPriceBody struct {
	PoolID   uint64 `json:"pool_id,string"`
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
}

type estimateSwapBody struct {
	Sender   string `json:"sender"`
	PoolID   uint64 `json:"pool_id,string"`
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
}

type queryBody struct {
	SpotPrice    *spotPriceBody    `json:"spot_price,omitempty"`
	EstimateSwap *estimateSwapBody `json:"estimate_swap,omitempty"`
}

type queryEnvelope struct {
	ClientID string    `json:"client_id,omitempty"`
	Query    queryBody `json:"query"`
}

type flatEnvelope struct {
	ClientID string `json:"client_id,omitempty"`
	spotPriceBody
}

// Encode serializes the envelope in its configured format
func (e *Envelope) Encode() ([]byte, error) {
	if !e.Format.Supports(e.Discriminator) {
		return nil, fmt.Errorf(
			"envelope format %s cannot express %s",
			e.Format,
			e.Discriminator,
		)
	}
	if err := e.checkQuery(); err != nil {
		return nil, err
	}
	switch e.Format {
	case FormatPath:
		env := pathEnvelope{
			ClientID: e.ClientID,
			Path:     e.Discriminator.Path(),
			Data:     []byte{},
		}
		switch e.Discriminator {
		case DiscriminatorSpotPrice:
			env.Data = MarshalSpotPriceRequest(*e.SpotPrice)
		case DiscriminatorEstimateSwap:
			env.Data = MarshalSwapExactAmountInRequest(*e.EstimateSwap)
		}
		return json.Marshal(env)
	case FormatQuery:
		env := queryEnvelope{ClientID: e.ClientID}
		if e.SpotPrice != nil {
			env.Query.SpotPrice = &spotPriceBody{
				PoolID:   e.SpotPrice.PoolID,
				TokenIn:  e.SpotPrice.TokenIn,
				TokenOut: e.SpotPrice.TokenOut,
			}
		} else {
			env.Query.EstimateSwap = &estimateSwapBody{
				Sender:   e.EstimateSwap.Sender,
				PoolID:   e.EstimateSwap.PoolID,
				TokenIn:  e.EstimateSwap.TokenIn,
				TokenOut: e.EstimateSwap.TokenOut,
			}
		}
		return json.Marshal(env)
	default:
		env := flatEnvelope{
			ClientID: e.ClientID,
			spotPriceBody: spotPriceBody{
				PoolID:   e.SpotPrice.PoolID,
				TokenIn:  e.SpotPrice.TokenIn,
				TokenOut: e.SpotPrice.TokenOut,
			},
		}
		return json.Marshal(env)
	}
}

func (e *Envelope) checkQuery() error {
	switch e.Discriminator {
	case DiscriminatorSpotPrice:
		if e.SpotPrice == nil || e.EstimateSwap != nil {
			return errors.New("spot price envelope requires exactly a spot price query")
		}
	case DiscriminatorEstimateSwap:
		if e.EstimateSwap == nil || e.SpotPrice != nil {
			return errors.New("estimate swap envelope requires exactly an estimate swap query")
		}
	case DiscriminatorProbe:
		if e.SpotPrice != nil || e.EstimateSwap != nil {
			return errors.New("probe envelope carries no query")
		}
	}
	return nil
}

// DecodeEnvelope parses an envelope in any of the supported formats. The
// format is recognized from the top-level keys: "path", "query" or
// "pool_id". Every failure wraps ErrDecode.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, fmt.Errorf("%w: envelope: %w", ErrDecode, err)
	}
	return env, nil
}

func decodeEnvelope(data []byte) (*Envelope, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	if keys == nil {
		return nil, errors.New("envelope is null")
	}
	if _, ok := keys["path"]; ok {
		return decodePathEnvelope(data, keys)
	}
	if _, ok := keys["query"]; ok {
		return decodeQueryEnvelope(data)
	}
	if _, ok := keys["pool_id"]; ok {
		var flat flatEnvelope
		if err := strictUnmarshal(data, &flat); err != nil {
			return nil, err
		}
		return NewSpotPriceEnvelope(
			FormatFlat,
			flat.ClientID,
			SpotPriceQuery(flat.spotPriceBody),
		), nil
	}
	return nil, errors.New("unrecognized envelope shape")
}

func decodePathEnvelope(data []byte, keys map[string]json.RawMessage) (*Envelope, error) {
	if _, ok := keys["data"]; !ok {
		return nil, errors.New("path envelope missing data")
	}
	var env pathEnvelope
	if err := strictUnmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Path {
	case PathSpotPrice:
		q, err := UnmarshalSpotPriceRequest(env.Data)
		if err != nil {
			return nil, err
		}
		return NewSpotPriceEnvelope(FormatPath, env.ClientID, q), nil
	case PathEstimateSwap:
		q, err := UnmarshalSwapExactAmountInRequest(env.Data)
		if err != nil {
			return nil, err
		}
		return NewEstimateSwapEnvelope(FormatPath, env.ClientID, q), nil
	case PathNodeInfo:
		return NewProbeEnvelope(FormatPath, env.ClientID), nil
	default:
		return nil, fmt.Errorf("unknown query path %q", env.Path)
	}
}

func decodeQueryEnvelope(data []byte) (*Envelope, error) {
	var env queryEnvelope
	if err := strictUnmarshal(data, &env); err != nil {
		return nil, err
	}
	switch {
	case env.Query.SpotPrice != nil && env.Query.EstimateSwap == nil:
		return NewSpotPriceEnvelope(
			FormatQuery,
			env.ClientID,
			SpotPriceQuery(*env.Query.SpotPrice),
		), nil
	case env.Query.EstimateSwap != nil && env.Query.SpotPrice == nil:
		return NewEstimateSwapEnvelope(
			FormatQuery,
			env.ClientID,
			EstimateSwapQuery(*env.Query.EstimateSwap),
		), nil
	default:
		return nil, errors.New("query must hold exactly one of spot_price or estimate_swap")
	}
}

func strictUnmarshal(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
