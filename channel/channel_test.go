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

package channel_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOpen(t *testing.T) {
	m := channel.NewManager(channel.NewConfig())
	testDefs := []struct {
		name        string
		req         channel.OpenRequest
		expectedErr error
		message     string
	}{
		{
			name: "valid init",
			req: channel.OpenRequest{
				ChannelID: "channel-12",
				Order:     channel.OrderUnordered,
				Version:   "cw-query-1",
			},
		},
		{
			name: "valid try",
			req: channel.OpenRequest{
				ChannelID:           "channel-12",
				Order:               channel.OrderUnordered,
				Version:             "cw-query-1",
				CounterpartyVersion: "cw-query-1",
			},
		},
		{
			name: "wrong order",
			req: channel.OpenRequest{
				ChannelID: "channel-12",
				Order:     channel.OrderOrdered,
				Version:   "cw-query-1",
			},
			expectedErr: channel.ErrOrderMismatch,
			message:     "only supports unordered channels",
		},
		{
			name: "wrong version",
			req: channel.OpenRequest{
				ChannelID: "channel-12",
				Order:     channel.OrderUnordered,
				Version:   "reflect",
			},
			expectedErr: channel.ErrVersionMismatch,
			message:     "must set version to `cw-query-1`",
		},
		{
			name: "wrong counterparty version",
			req: channel.OpenRequest{
				ChannelID:           "channel-12",
				Order:               channel.OrderUnordered,
				Version:             "cw-query-1",
				CounterpartyVersion: "cw-query-2",
			},
			expectedErr: channel.ErrVersionMismatch,
			message:     "counterparty version must be `cw-query-1`",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			err := m.ValidateOpen(testDef.req)
			if testDef.expectedErr == nil {
				require.NoError(t, err)
				return
			}
			if !errors.Is(err, testDef.expectedErr) {
				t.Fatalf("did not get expected error: got %v, wanted %v", err, testDef.expectedErr)
			}
			assert.Contains(t, err.Error(), testDef.message)
		})
	}
}

func TestValidateOpenCustomConfig(t *testing.T) {
	m := channel.NewManager(
		channel.NewConfig(
			channel.WithVersion("cw-query-2"),
			channel.WithOrder(channel.OrderOrdered),
		),
	)
	require.NoError(t, m.ValidateOpen(channel.OpenRequest{
		Order:   channel.OrderOrdered,
		Version: "cw-query-2",
	}))
	err := m.ValidateOpen(channel.OpenRequest{
		Order:   channel.OrderUnordered,
		Version: "cw-query-2",
	})
	assert.ErrorIs(t, err, channel.ErrOrderMismatch)
	assert.Contains(t, err.Error(), "only supports ordered channels")
}

func TestConnectClose(t *testing.T) {
	m := channel.NewManager(channel.NewConfig())
	accounts := store.NewAccountStore(store.NewMemStore())

	state, err := m.State(accounts, "channel-1234")
	require.NoError(t, err)
	assert.Equal(t, channel.StateUnconnected, state)

	resp, err := m.OnConnect(accounts, "channel-1234")
	require.NoError(t, err)
	action, _ := resp.Attribute("action")
	assert.Equal(t, "ibc_connect", action)
	channelID, _ := resp.Attribute("channel_id")
	assert.Equal(t, "channel-1234", channelID)
	assert.Empty(t, resp.Messages)

	account, err := accounts.Load("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, store.Account{}, account)
	state, err = m.State(accounts, "channel-1234")
	require.NoError(t, err)
	assert.Equal(t, channel.StateConnected, state)

	// Reconnect resets the account
	_, err = accounts.Update("channel-1234", func(a store.Account) (store.Account, error) {
		a.LastUpdateTime = protocol.Timestamp(5)
		a.RemoteSpotPrice = "2"
		return a, nil
	})
	require.NoError(t, err)
	_, err = m.OnConnect(accounts, "channel-1234")
	require.NoError(t, err)
	account, err = accounts.Load("channel-1234")
	require.NoError(t, err)
	assert.Equal(t, store.Account{}, account)

	resp, err = m.OnClose(accounts, "channel-1234")
	require.NoError(t, err)
	action, _ = resp.Attribute("action")
	assert.Equal(t, "ibc_close", action)
	ok, err := accounts.Has("channel-1234")
	require.NoError(t, err)
	assert.False(t, ok)

	// Closing an unknown channel is not an error
	_, err = m.OnClose(accounts, "channel-9")
	require.NoError(t, err)
}

func TestStateMap(t *testing.T) {
	m := channel.NewManager(channel.NewConfig())
	state := channel.StateUnconnected
	for _, step := range []struct {
		event    uint8
		expected protocol.State
	}{
		{channel.EventOpen, channel.StateOpenPending},
		{channel.EventConnect, channel.StateConnected},
		{channel.EventDispatch, channel.StateConnected},
		{channel.EventAck, channel.StateConnected},
		{channel.EventClose, channel.StateClosed},
		{channel.EventTimeout, channel.StateClosed},
		{channel.EventAck, channel.StateClosed},
		{channel.EventConnect, channel.StateConnected},
	} {
		next, err := m.Transition(state, step.event)
		require.NoError(t, err)
		assert.Equal(t, step.expected, next)
		state = next
	}

	for _, s := range []protocol.State{
		channel.StateUnconnected,
		channel.StateOpenPending,
		channel.StateClosed,
	} {
		_, err := m.Transition(s, channel.EventDispatch)
		assert.ErrorIs(t, err, protocol.ErrInvalidTransition, s.String())
	}
	for _, s := range []protocol.State{
		channel.StateUnconnected,
		channel.StateOpenPending,
		channel.StateConnected,
		channel.StateClosed,
	} {
		next, err := m.Transition(s, channel.EventConnect)
		require.NoError(t, err)
		assert.Equal(t, channel.StateConnected, next)
		next, err = m.Transition(s, channel.EventClose)
		require.NoError(t, err)
		assert.Equal(t, channel.StateClosed, next)
	}
}

func TestParseOrder(t *testing.T) {
	for name, expected := range map[string]channel.Order{
		"unordered":       channel.OrderUnordered,
		"ORDER_UNORDERED": channel.OrderUnordered,
		"Ordered":         channel.OrderOrdered,
	} {
		order, err := channel.ParseOrder(name)
		require.NoError(t, err)
		assert.Equal(t, expected, order)
	}
	_, err := channel.ParseOrder("sideways")
	assert.Error(t, err)
}
