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

// Package gammquery implements the local side of a cross-chain query channel.
//
// A Module issues asynchronous queries (spot price, swap estimate and node
// probe) to a counterparty over a channel, and applies the counterparty's
// acknowledgements to per-channel account records. Events are handled one at
// a time; each event either commits all of its store changes and effects or
// none of them.
//
// This package is the main entry point into this library. The channel,
// dispatch, ack and store packages can be used on their own, with the caller
// providing the store handle for every operation.
package gammquery

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/gammquery/ack"
	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/dispatch"
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
)

// Transport delivers outbound packets to the counterparty
type Transport interface {
	SendPacket(channelID string, data []byte, timeout protocol.Timestamp) error
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(channelID string, data []byte, timeout protocol.Timestamp) error

func (f TransportFunc) SendPacket(channelID string, data []byte, timeout protocol.Timestamp) error {
	return f(channelID, data, timeout)
}

// ResponseFunc is called with the response of every successfully handled event
type ResponseFunc func(Event, *protocol.Response)

// Module hosts the channel lifecycle, dispatch and acknowledgement handling
// on top of a single key/value store
type Module struct {
	mutex          sync.Mutex
	kv             store.KVStore
	transport      Transport
	clock          Clock
	logger         *slog.Logger
	errorChan      chan error
	responseFunc   ResponseFunc
	channelConfig  channel.Config
	dispatchConfig dispatch.Config
	channels       *channel.Manager
	dispatcher     *dispatch.Dispatcher
	acks           *ack.Processor
	onceClose      sync.Once
	closed         bool
}

// New returns a new Module with the specified options. Without WithStore an
// in-memory store is used, and without WithClock the system clock.
func New(options ...ModuleOptionFunc) (*Module, error) {
	m := &Module{
		channelConfig:  channel.NewConfig(),
		dispatchConfig: dispatch.NewConfig(),
	}
	// Apply provided options functions
	for _, option := range options {
		option(m)
	}
	if m.kv == nil {
		m.kv = store.NewMemStore()
	}
	if m.clock == nil {
		m.clock = SystemClock
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.errorChan == nil {
		m.errorChan = make(chan error, 10)
	}
	if m.channelConfig.Version == "" {
		return nil, errors.New("channel version must not be empty")
	}
	if m.channelConfig.Order != channel.OrderUnordered &&
		m.channelConfig.Order != channel.OrderOrdered {
		return nil, fmt.Errorf("invalid channel ordering: %s", m.channelConfig.Order)
	}
	switch m.dispatchConfig.Format {
	case packet.FormatPath, packet.FormatQuery, packet.FormatFlat:
	default:
		return nil, fmt.Errorf("invalid envelope format: %s", m.dispatchConfig.Format)
	}
	m.channelConfig.Logger = m.logger
	m.dispatchConfig.Logger = m.logger
	m.channels = channel.NewManager(m.channelConfig)
	m.dispatcher = dispatch.NewDispatcher(m.dispatchConfig)
	m.acks = ack.NewProcessor(ack.NewConfig(ack.WithLogger(m.logger)))
	m.logger.Info(
		"module initialized",
		"component", "gammquery",
		"version", m.channelConfig.Version,
		"ordering", m.channelConfig.Order.String(),
		"format", m.dispatchConfig.Format.String(),
	)
	return m, nil
}

// ErrorChan returns the channel that Run reports per-event errors on
func (m *Module) ErrorChan() chan error {
	return m.errorChan
}

// Store returns the underlying key/value store
func (m *Module) Store() store.KVStore {
	return m.kv
}

// ChannelConfig returns the effective handshake configuration
func (m *Module) ChannelConfig() channel.Config {
	return m.channels.Config()
}

// DispatchConfig returns the effective dispatch configuration
func (m *Module) DispatchConfig() dispatch.Config {
	return m.dispatcher.Config()
}

// Close flushes a persistent store. Events handled after Close fail with
// ErrModuleClosed.
func (m *Module) Close() error {
	var err error
	m.onceClose.Do(func() {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		m.closed = true
		if flusher, ok := m.kv.(store.Flusher); ok {
			err = flusher.Flush()
		}
	})
	return err
}
