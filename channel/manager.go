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

package channel

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
)

// Manager validates channel handshakes and keeps the account store in step
// with the channel lifecycle
type Manager struct {
	config Config
	logger *slog.Logger
}

// NewManager returns a Manager for the given configuration
func NewManager(cfg Config) *Manager {
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Order == OrderNone {
		cfg.Order = DefaultOrder
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		config: cfg,
		logger: logger,
	}
}

// Config returns the effective configuration
func (m *Manager) Config() Config {
	return m.config
}

// ValidateOpen checks the proposed handshake parameters against the
// configured ordering and version. It has no side effects.
func (m *Manager) ValidateOpen(req OpenRequest) error {
	if req.Order != m.config.Order {
		return fmt.Errorf(
			"%w: only supports %s channels",
			ErrOrderMismatch,
			m.config.Order,
		)
	}
	if req.Version != m.config.Version {
		return fmt.Errorf(
			"%w: must set version to `%s`",
			ErrVersionMismatch,
			m.config.Version,
		)
	}
	if req.CounterpartyVersion != "" &&
		req.CounterpartyVersion != m.config.Version {
		return fmt.Errorf(
			"%w: counterparty version must be `%s`",
			ErrVersionMismatch,
			m.config.Version,
		)
	}
	return nil
}

// OnConnect creates the account for the channel, resetting any existing one
func (m *Manager) OnConnect(
	accounts *store.AccountStore,
	channelID string,
) (*protocol.Response, error) {
	if err := accounts.Save(channelID, store.Account{}); err != nil {
		return nil, fmt.Errorf("create account for %s: %w", channelID, err)
	}
	m.logger.Info(
		"channel connected",
		"component", "gammquery",
		"channel_id", channelID,
	)
	return protocol.NewResponse().
		AddAttribute("action", "ibc_connect").
		AddAttribute("channel_id", channelID), nil
}

// OnClose removes the account for the channel. A missing account is fine.
func (m *Manager) OnClose(
	accounts *store.AccountStore,
	channelID string,
) (*protocol.Response, error) {
	if err := accounts.Delete(channelID); err != nil {
		return nil, fmt.Errorf("remove account for %s: %w", channelID, err)
	}
	m.logger.Info(
		"channel closed",
		"component", "gammquery",
		"channel_id", channelID,
	)
	return protocol.NewResponse().
		AddAttribute("action", "ibc_close").
		AddAttribute("channel_id", channelID), nil
}

// State returns the lifecycle state of a channel as recorded in the store.
// Only Connected and Unconnected are observable from persisted state.
func (m *Manager) State(
	accounts *store.AccountStore,
	channelID string,
) (protocol.State, error) {
	ok, err := accounts.Has(channelID)
	if err != nil {
		return StateUnconnected, err
	}
	if ok {
		return StateConnected, nil
	}
	return StateUnconnected, nil
}

// Transition returns the state reached by handling eventType in current
func (m *Manager) Transition(current protocol.State, eventType uint8) (protocol.State, error) {
	return StateMap.Next(current, eventType)
}
