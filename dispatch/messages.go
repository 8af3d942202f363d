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

package dispatch

// SpotPriceMsg requests the spot price of TokenOut in TokenIn on a pool
type SpotPriceMsg struct {
	Channel  string  `json:"channel"`
	ClientID string  `json:"client_id,omitempty"`
	PoolID   uint64  `json:"pool_id"`
	TokenIn  string  `json:"token_in"`
	TokenOut string  `json:"token_out"`
	Timeout  *uint64 `json:"timeout,omitempty"` // seconds
}

// EstimateSwapMsg requests the output of swapping TokenIn, a coin such as
// "1000uosmo", for TokenOut on a pool
type EstimateSwapMsg struct {
	Channel  string  `json:"channel"`
	ClientID string  `json:"client_id,omitempty"`
	Sender   string  `json:"sender"`
	PoolID   uint64  `json:"pool_id"`
	TokenIn  string  `json:"token_in"`
	TokenOut string  `json:"token_out"`
	Timeout  *uint64 `json:"timeout,omitempty"` // seconds
}

// ProbeMsg requests the counterparty's node info. It always uses the default
// packet lifetime.
type ProbeMsg struct {
	Channel  string `json:"channel"`
	ClientID string `json:"client_id,omitempty"`
}
