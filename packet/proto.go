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
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Remote query paths for the path envelope form
const (
	PathSpotPrice    = "/osmosis.gamm.v1beta1.Query/SpotPrice"
	PathEstimateSwap = "/osmosis.gamm.v1beta1.Query/EstimateSwapExactAmountIn"
	PathNodeInfo     = "/cosmos.base.tendermint.v1beta1.Service/GetNodeInfo"
)

// QuerySpotPriceRequest field numbers
const (
	spotPricePoolIDField        protowire.Number = 1
	spotPriceTokenInDenomField  protowire.Number = 2
	spotPriceTokenOutDenomField protowire.Number = 3
	spotPriceWithSwapFeeField   protowire.Number = 4
)

// QuerySwapExactAmountInRequest and SwapAmountInRoute field numbers
const (
	swapSenderField         protowire.Number = 1
	swapPoolIDField         protowire.Number = 2
	swapTokenInField        protowire.Number = 3
	swapRoutesField         protowire.Number = 4
	routePoolIDField        protowire.Number = 1
	routeTokenOutDenomField protowire.Number = 2
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// MarshalSpotPriceRequest encodes q as an osmosis QuerySpotPriceRequest.
// with_swap_fee is always false and therefore omitted.
func MarshalSpotPriceRequest(q SpotPriceQuery) []byte {
	var b []byte
	b = appendVarintField(b, spotPricePoolIDField, q.PoolID)
	b = appendStringField(b, spotPriceTokenInDenomField, q.TokenIn)
	b = appendStringField(b, spotPriceTokenOutDenomField, q.TokenOut)
	return b
}

// MarshalSwapExactAmountInRequest encodes q as an osmosis
// QuerySwapExactAmountInRequest with a single route through the same pool
func MarshalSwapExactAmountInRequest(q EstimateSwapQuery) []byte {
	var route []byte
	route = appendVarintField(route, routePoolIDField, q.PoolID)
	route = appendStringField(route, routeTokenOutDenomField, q.TokenOut)

	var b []byte
	b = appendStringField(b, swapSenderField, q.Sender)
	b = appendVarintField(b, swapPoolIDField, q.PoolID)
	b = appendStringField(b, swapTokenInField, q.TokenIn)
	b = appendMessageField(b, swapRoutesField, route)
	return b
}

// UnmarshalSpotPriceRequest decodes an osmosis QuerySpotPriceRequest
func UnmarshalSpotPriceRequest(data []byte) (SpotPriceQuery, error) {
	var q SpotPriceQuery
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case spotPricePoolIDField:
			return consumeVarint(typ, b, &q.PoolID)
		case spotPriceTokenInDenomField:
			return consumeString(typ, b, &q.TokenIn)
		case spotPriceTokenOutDenomField:
			return consumeString(typ, b, &q.TokenOut)
		case spotPriceWithSwapFeeField:
			var withSwapFee uint64
			n, err := consumeVarint(typ, b, &withSwapFee)
			if err == nil && withSwapFee != 0 {
				return n, errors.New("with_swap_fee must be false")
			}
			return n, err
		}
		return skipField(num, typ, b)
	})
	if err != nil {
		return SpotPriceQuery{}, fmt.Errorf("QuerySpotPriceRequest: %w", err)
	}
	return q, nil
}

// UnmarshalSwapExactAmountInRequest decodes an osmosis
// QuerySwapExactAmountInRequest. Only the first route is kept.
func UnmarshalSwapExactAmountInRequest(data []byte) (EstimateSwapQuery, error) {
	var q EstimateSwapQuery
	routes := 0
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case swapSenderField:
			return consumeString(typ, b, &q.Sender)
		case swapPoolIDField:
			return consumeVarint(typ, b, &q.PoolID)
		case swapTokenInField:
			return consumeString(typ, b, &q.TokenIn)
		case swapRoutesField:
			var route []byte
			n, err := consumeBytes(typ, b, &route)
			if err != nil {
				return n, err
			}
			routes++
			if routes > 1 {
				return n, nil
			}
			return n, walkFields(route, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
				if num == routeTokenOutDenomField {
					return consumeString(typ, b, &q.TokenOut)
				}
				return skipField(num, typ, b)
			})
		}
		return skipField(num, typ, b)
	})
	if err != nil {
		return EstimateSwapQuery{}, fmt.Errorf("QuerySwapExactAmountInRequest: %w", err)
	}
	if routes == 0 {
		return EstimateSwapQuery{}, errors.New("QuerySwapExactAmountInRequest: no routes")
	}
	return q, nil
}

func walkFields(
	data []byte,
	fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error),
) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		n, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func wrongType(typ, want protowire.Type) error {
	return fmt.Errorf("unexpected wire type %d (expected %d)", typ, want)
}

func consumeVarint(typ protowire.Type, b []byte, dest *uint64) (int, error) {
	if typ != protowire.VarintType {
		return 0, wrongType(typ, protowire.VarintType)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dest = v
	return n, nil
}

func consumeString(typ protowire.Type, b []byte, dest *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, wrongType(typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dest = v
	return n, nil
}

func consumeBytes(typ protowire.Type, b []byte, dest *[]byte) (int, error) {
	if typ != protowire.BytesType {
		return 0, wrongType(typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dest = v
	return n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
