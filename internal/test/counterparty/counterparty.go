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

// Package counterparty provides a mock of the remote side of a query channel.
// It decodes the envelopes it is handed and answers them with the configured
// results, the way the real counterparty echoes acknowledgements back through
// the transport.
package counterparty

import (
	"fmt"
	"sync"

	"github.com/blinklabs-io/gammquery/packet"
)

// Counterparty answers query envelopes with canned results
type Counterparty struct {
	mutex      sync.Mutex
	spotPrice  string
	swapAmount string
	balance    string
	address    string
	failure    string
	received   []*packet.Envelope
}

// CounterpartyOptionFunc is a function that modifies a Counterparty
type CounterpartyOptionFunc func(*Counterparty)

// New returns a Counterparty with the given options. Unconfigured results
// default to "1" for prices and "0" for amounts and balances.
func New(options ...CounterpartyOptionFunc) *Counterparty {
	c := &Counterparty{
		spotPrice:  "1",
		swapAmount: "0",
		balance:    "0",
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// WithSpotPrice sets the price returned for spot price queries
func WithSpotPrice(price string) CounterpartyOptionFunc {
	return func(c *Counterparty) {
		c.spotPrice = price
	}
}

// WithSwapAmount sets the amount returned for swap estimates
func WithSwapAmount(amount string) CounterpartyOptionFunc {
	return func(c *Counterparty) {
		c.swapAmount = amount
	}
}

// WithBalance sets the balance and optional address returned for probes
func WithBalance(balance string, address string) CounterpartyOptionFunc {
	return func(c *Counterparty) {
		c.balance = balance
		c.address = address
	}
}

// WithFailure makes every answer an Error acknowledgement with msg
func WithFailure(msg string) CounterpartyOptionFunc {
	return func(c *Counterparty) {
		c.failure = msg
	}
}

// Answer decodes an outbound packet and returns the serialized
// acknowledgement for it
func (c *Counterparty) Answer(data []byte) ([]byte, error) {
	env, err := packet.DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.received = append(c.received, env)
	if c.failure != "" {
		return packet.NewErrorAck(c.failure).Encode()
	}
	var res any
	switch env.Discriminator {
	case packet.DiscriminatorSpotPrice:
		res = packet.SpotPriceResult{Price: c.spotPrice}
	case packet.DiscriminatorEstimateSwap:
		res = packet.EstimateSwapResult{Amount: c.swapAmount}
	case packet.DiscriminatorProbe:
		res = packet.ProbeResult{Balance: c.balance, Address: c.address}
	default:
		return nil, fmt.Errorf("unknown operation: %s", env.Discriminator)
	}
	resData, err := packet.EncodeResult(res)
	if err != nil {
		return nil, err
	}
	return packet.NewResultAck(resData).Encode()
}

// Received returns every envelope answered so far
func (c *Counterparty) Received() []*packet.Envelope {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	ret := make([]*packet.Envelope, len(c.received))
	copy(ret, c.received)
	return ret
}
