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

// Package ack applies acknowledgements and timeouts for previously dispatched
// queries to the per-channel accounts. The query operation is recovered from
// the original envelope echoed back alongside each acknowledgement.
package ack

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gammquery/packet"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
)

// AcknowledgementEvent is delivered when the counterparty answers a packet
type AcknowledgementEvent struct {
	// SourceChannel is the local channel the original packet was sent on
	SourceChannel   string
	OriginalPacket  []byte
	Acknowledgement []byte
}

// TimeoutEvent is delivered when a packet expired without an answer
type TimeoutEvent struct {
	SourceChannel  string
	OriginalPacket []byte
}

// ReceiveEvent is delivered when the counterparty sends a packet of its own
type ReceiveEvent struct {
	DestinationChannel string
	Data               []byte
}

// Config holds the processor settings
type Config struct {
	Logger *slog.Logger
}

// AckOptionFunc is a function that modifies a Config
type AckOptionFunc func(*Config)

// NewConfig returns a Config with any option functions applied
func NewConfig(options ...AckOptionFunc) Config {
	c := Config{}
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) AckOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Processor handles acknowledgement, timeout and inbound packet events
type Processor struct {
	logger *slog.Logger
}

// NewProcessor returns a Processor for the given configuration
func NewProcessor(cfg Config) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger,
	}
}

// OnAcknowledgment applies an acknowledgement to the source channel's
// account. Error acknowledgements are recorded as attributes and leave the
// account untouched. A Result that cannot be decoded for the recovered
// operation aborts the event with packet.ErrDecode.
func (p *Processor) OnAcknowledgment(
	accounts *store.AccountStore,
	ev AcknowledgementEvent,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	env, err := packet.DecodeEnvelope(ev.OriginalPacket)
	if err != nil {
		return nil, err
	}
	ack, err := packet.DecodeAcknowledgement(ev.Acknowledgement)
	if err != nil {
		return nil, err
	}
	resp := protocol.NewResponse().
		AddAttribute("action", "receive_"+env.Discriminator.String())
	err = ack.Match(
		func(data []byte) error {
			return p.applyResult(accounts, ev.SourceChannel, env.Discriminator, data, now, resp)
		},
		func(msg string) error {
			p.logger.Warn(
				"query failed on counterparty",
				"component", "gammquery",
				"channel_id", ev.SourceChannel,
				"operation", env.Discriminator.String(),
				"error", msg,
			)
			resp.AddAttribute("error", msg)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (p *Processor) applyResult(
	accounts *store.AccountStore,
	channelID string,
	discriminator packet.Discriminator,
	data []byte,
	now protocol.Timestamp,
	resp *protocol.Response,
) error {
	var apply func(store.Account) store.Account
	switch discriminator {
	case packet.DiscriminatorSpotPrice:
		res, err := packet.DecodeSpotPriceResult(data)
		if err != nil {
			return err
		}
		apply = func(a store.Account) store.Account {
			a.RemoteSpotPrice = res.Price
			return a
		}
		resp.AddAttribute("amount", res.Price)
	case packet.DiscriminatorEstimateSwap:
		res, err := packet.DecodeEstimateSwapResult(data)
		if err != nil {
			return err
		}
		apply = func(a store.Account) store.Account {
			a.RemoteSwapAmount = res.Amount
			return a
		}
		resp.AddAttribute("amount", res.Amount)
	case packet.DiscriminatorProbe:
		res, err := packet.DecodeProbeResult(data)
		if err != nil {
			return err
		}
		apply = func(a store.Account) store.Account {
			a.RemoteBalance = res.Balance
			a.RemoteAddress = res.Address
			return a
		}
		resp.AddAttribute("balance", res.Balance)
		if res.Address != "" {
			resp.AddAttribute("address", res.Address)
		}
	default:
		return fmt.Errorf("%w: unknown operation %s", packet.ErrDecode, discriminator)
	}
	_, err := accounts.Update(channelID, func(a store.Account) (store.Account, error) {
		a = apply(a)
		a.LastUpdateTime = now
		return a, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNoAccountToUpdate, channelID)
		}
		return err
	}
	p.logger.Debug(
		"applied query result",
		"component", "gammquery",
		"channel_id", channelID,
		"operation", discriminator.String(),
		"last_update_time", now.String(),
	)
	return nil
}

// OnTimeout records an expired packet. It never modifies accounts and accepts
// packets for closed channels and envelopes it cannot decode.
func (p *Processor) OnTimeout(ev TimeoutEvent) *protocol.Response {
	resp := protocol.NewResponse().
		AddAttribute("action", "ibc_packet_timeout").
		AddAttribute("channel_id", ev.SourceChannel).
		AddAttribute("packet_digest", packet.Digest(ev.OriginalPacket))
	operation := "unknown"
	if env, err := packet.DecodeEnvelope(ev.OriginalPacket); err == nil {
		operation = env.Discriminator.String()
		resp.AddAttribute("operation", operation)
	}
	p.logger.Warn(
		"query timed out",
		"component", "gammquery",
		"channel_id", ev.SourceChannel,
		"operation", operation,
	)
	return resp
}

// OnInboundRequest rejects every packet sent by the counterparty
func (p *Processor) OnInboundRequest(ev ReceiveEvent) (*protocol.Response, error) {
	p.logger.Error(
		"counterparty sent unsolicited packet",
		"component", "gammquery",
		"channel_id", ev.DestinationChannel,
		"size", len(ev.Data),
	)
	return nil, fmt.Errorf("%w on %s", ErrUnsupportedInboundPacket, ev.DestinationChannel)
}
