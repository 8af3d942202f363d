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
	"encoding/json"
	"fmt"
)

// SpotPriceResult is the Result payload for a spot price query
type SpotPriceResult struct {
	Price string `json:"price"`
}

// EstimateSwapResult is the Result payload for a swap estimate
type EstimateSwapResult struct {
	Amount string `json:"amount"`
}

// ProbeResult is the Result payload for a node probe. Address is optional.
type ProbeResult struct {
	Balance string `json:"balance"`
	Address string `json:"address,omitempty"`
}

func DecodeSpotPriceResult(data []byte) (SpotPriceResult, error) {
	var res SpotPriceResult
	if err := decodeResult(data, &res, "price"); err != nil {
		return SpotPriceResult{}, err
	}
	if err := ValidateDecimal(res.Price); err != nil {
		return SpotPriceResult{}, fmt.Errorf("%w: spot price result: %w", ErrDecode, err)
	}
	return res, nil
}

func DecodeEstimateSwapResult(data []byte) (EstimateSwapResult, error) {
	var res EstimateSwapResult
	if err := decodeResult(data, &res, "amount"); err != nil {
		return EstimateSwapResult{}, err
	}
	if err := ValidateAmount(res.Amount); err != nil {
		return EstimateSwapResult{}, fmt.Errorf("%w: estimate swap result: %w", ErrDecode, err)
	}
	return res, nil
}

func DecodeProbeResult(data []byte) (ProbeResult, error) {
	var res ProbeResult
	if err := decodeResult(data, &res, "balance"); err != nil {
		return ProbeResult{}, err
	}
	if err := ValidateAmount(res.Balance); err != nil {
		return ProbeResult{}, fmt.Errorf("%w: probe result: %w", ErrDecode, err)
	}
	if res.Address != "" {
		if _, err := ValidateAddress(res.Address); err != nil {
			return ProbeResult{}, fmt.Errorf("%w: probe result: %w", ErrDecode, err)
		}
	}
	return res, nil
}

// decodeResult unmarshals a result payload and requires the named key
func decodeResult(data []byte, dest any, required string) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("%w: result: %w", ErrDecode, err)
	}
	if _, ok := keys[required]; !ok {
		return fmt.Errorf("%w: result: missing %q", ErrDecode, required)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: result: %w", ErrDecode, err)
	}
	return nil
}

// EncodeResult serializes a result payload for use with NewResultAck
func EncodeResult(res any) ([]byte, error) {
	return json.Marshal(res)
}
