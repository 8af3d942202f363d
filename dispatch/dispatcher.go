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

// Package dispatch builds outbound query packets for connected channels
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gammquery/packet"
	"github.com/blinklabs-io/gammquery/protocol"
)

// DefaultPacketLifetime is the packet lifetime in seconds used when a request
// does not specify one
const DefaultPacketLifetime uint64 = 60 * 60

// AccountChecker reports whether a channel has an account
type AccountChecker interface {
	Has(channelID string) (bool, error)
}

// Config holds the dispatcher settings
type Config struct {
	Format         packet.Format
	DefaultTimeout uint64
	Logger         *slog.Logger
}

// DispatchOptionFunc is a function that modifies a Config
type DispatchOptionFunc func(*Config)

// NewConfig returns a Config using the path envelope format and the default
// packet lifetime, with any option functions applied
func NewConfig(options ...DispatchOptionFunc) Config {
	c := Config{
		Format:         packet.FormatPath,
		DefaultTimeout: DefaultPacketLifetime,
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithFormat sets the envelope format for outbound packets
func WithFormat(format packet.Format) DispatchOptionFunc {
	return func(c *Config) {
		c.Format = format
	}
}

// WithDefaultTimeout sets the packet lifetime in seconds used when a request
// does not specify one
func WithDefaultTimeout(seconds uint64) DispatchOptionFunc {
	return func(c *Config) {
		c.DefaultTimeout = seconds
	}
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) DispatchOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Dispatcher builds query envelopes and the send effects that carry them. It
// never modifies account state.
type Dispatcher struct {
	config Config
	logger *slog.Logger
}

// NewDispatcher returns a Dispatcher for the given configuration
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = DefaultPacketLifetime
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		config: cfg,
		logger: logger,
	}
}

// Config returns the effective configuration
func (d *Dispatcher) Config() Config {
	return d.config
}

// SpotPrice dispatches a spot price query
func (d *Dispatcher) SpotPrice(
	accounts AccountChecker,
	msg SpotPriceMsg,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	if err := d.checkChannel(accounts, msg.Channel); err != nil {
		return nil, err
	}
	if err := validateSpotPrice(msg.PoolID, msg.TokenIn, msg.TokenOut); err != nil {
		return nil, err
	}
	env := packet.NewSpotPriceEnvelope(
		d.config.Format,
		msg.ClientID,
		packet.SpotPriceQuery{
			PoolID:   msg.PoolID,
			TokenIn:  msg.TokenIn,
			TokenOut: msg.TokenOut,
		},
	)
	return d.send(msg.Channel, env, msg.Timeout, now)
}

// EstimateSwap dispatches a swap estimate query
func (d *Dispatcher) EstimateSwap(
	accounts AccountChecker,
	msg EstimateSwapMsg,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	if err := d.checkChannel(accounts, msg.Channel); err != nil {
		return nil, err
	}
	if err := validateEstimateSwap(msg); err != nil {
		return nil, err
	}
	env := packet.NewEstimateSwapEnvelope(
		d.config.Format,
		msg.ClientID,
		packet.EstimateSwapQuery{
			Sender:   msg.Sender,
			PoolID:   msg.PoolID,
			TokenIn:  msg.TokenIn,
			TokenOut: msg.TokenOut,
		},
	)
	return d.send(msg.Channel, env, msg.Timeout, now)
}

// Probe dispatches a node info query
func (d *Dispatcher) Probe(
	accounts AccountChecker,
	msg ProbeMsg,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	if err := d.checkChannel(accounts, msg.Channel); err != nil {
		return nil, err
	}
	env := packet.NewProbeEnvelope(d.config.Format, msg.ClientID)
	return d.send(msg.Channel, env, nil, now)
}

func (d *Dispatcher) checkChannel(accounts AccountChecker, channelID string) error {
	if channelID == "" {
		return fmt.Errorf("%w: empty channel", ErrInvalidRequest)
	}
	ok, err := accounts.Has(channelID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}
	return nil
}

func (d *Dispatcher) send(
	channelID string,
	env *packet.Envelope,
	timeout *uint64,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	if !env.Format.Supports(env.Discriminator) {
		return nil, fmt.Errorf(
			"%w: %s cannot express %s",
			ErrFormatUnsupported,
			env.Format,
			env.Discriminator,
		)
	}
	data, err := env.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", env.Discriminator, err)
	}
	delta := d.config.DefaultTimeout
	if timeout != nil {
		delta = *timeout
	}
	deadline := now.PlusSeconds(delta)
	digest := packet.Digest(data)
	d.logger.Debug(
		"dispatching query",
		"component", "gammquery",
		"channel_id", channelID,
		"operation", env.Discriminator.String(),
		"format", env.Format.String(),
		"timeout", deadline.String(),
		"packet_digest", digest,
	)
	resp := protocol.NewResponse().
		AddMessage(protocol.SendPacket{
			ChannelID: channelID,
			Data:      data,
			Timeout:   deadline,
		}).
		AddAttribute("action", env.Discriminator.String()).
		AddAttribute("packet_digest", digest)
	return resp, nil
}

func validateSpotPrice(poolID uint64, tokenIn string, tokenOut string) error {
	if poolID == 0 {
		return fmt.Errorf("%w: pool id must be non-zero", ErrInvalidRequest)
	}
	if err := packet.ValidateDenom(tokenIn); err != nil {
		return fmt.Errorf("%w: token in: %w", ErrInvalidRequest, err)
	}
	if err := packet.ValidateDenom(tokenOut); err != nil {
		return fmt.Errorf("%w: token out: %w", ErrInvalidRequest, err)
	}
	return nil
}

func validateEstimateSwap(msg EstimateSwapMsg) error {
	if _, err := packet.ValidateAddress(msg.Sender); err != nil {
		return fmt.Errorf("%w: sender: %w", ErrInvalidRequest, err)
	}
	if msg.PoolID == 0 {
		return fmt.Errorf("%w: pool id must be non-zero", ErrInvalidRequest)
	}
	amount, _, err := packet.ParseCoin(msg.TokenIn)
	if err != nil {
		return fmt.Errorf("%w: token in: %w", ErrInvalidRequest, err)
	}
	if amount.IsZero() {
		return fmt.Errorf("%w: token in amount must be non-zero", ErrInvalidRequest)
	}
	if err := packet.ValidateDenom(msg.TokenOut); err != nil {
		return fmt.Errorf("%w: token out: %w", ErrInvalidRequest, err)
	}
	return nil
}
