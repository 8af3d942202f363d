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

package gammquery

import (
	"log/slog"

	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/packet"
	"github.com/blinklabs-io/gammquery/store"
)

// ModuleOptionFunc is a type that represents functions that modify the Module config
type ModuleOptionFunc func(*Module)

// WithStore specifies the key/value store holding the accounts. Stores that
// implement store.Flusher are flushed after every event that changed them
func WithStore(kv store.KVStore) ModuleOptionFunc {
	return func(m *Module) {
		m.kv = kv
	}
}

// WithTransport specifies the transport used to send outbound packets
func WithTransport(transport Transport) ModuleOptionFunc {
	return func(m *Module) {
		m.transport = transport
	}
}

// WithClock specifies the clock used for deadlines and update times
func WithClock(clock Clock) ModuleOptionFunc {
	return func(m *Module) {
		m.clock = clock
	}
}

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) ModuleOptionFunc {
	return func(m *Module) {
		m.logger = logger
	}
}

// WithErrorChan specifies the error channel to use. If none is provided, one will be created
func WithErrorChan(errorChan chan error) ModuleOptionFunc {
	return func(m *Module) {
		m.errorChan = errorChan
	}
}

// WithResponseFunc specifies a callback for the response of every handled event
func WithResponseFunc(responseFunc ResponseFunc) ModuleOptionFunc {
	return func(m *Module) {
		m.responseFunc = responseFunc
	}
}

// WithChannelVersion specifies the channel version required during the handshake
func WithChannelVersion(version string) ModuleOptionFunc {
	return func(m *Module) {
		m.channelConfig.Version = version
	}
}

// WithChannelOrder specifies the channel ordering required during the handshake
func WithChannelOrder(order channel.Order) ModuleOptionFunc {
	return func(m *Module) {
		m.channelConfig.Order = order
	}
}

// WithPacketFormat specifies the envelope format for outbound packets
func WithPacketFormat(format packet.Format) ModuleOptionFunc {
	return func(m *Module) {
		m.dispatchConfig.Format = format
	}
}

// WithDefaultTimeout specifies the packet lifetime in seconds for requests
// that do not set one
func WithDefaultTimeout(seconds uint64) ModuleOptionFunc {
	return func(m *Module) {
		m.dispatchConfig.DefaultTimeout = seconds
	}
}
