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
	"errors"
	"fmt"

	"github.com/blinklabs-io/gammquery/ack"
	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/dispatch"
	"github.com/blinklabs-io/gammquery/protocol"
	"github.com/blinklabs-io/gammquery/store"
)

// HandleEvent processes a single event. Store changes are made on a branch of
// the store that is only written back when the event succeeds, and outbound
// packets are only handed to the transport after that write. The transport
// and the response callback run without the module lock held, so they may
// call back into the module.
func (m *Module) HandleEvent(ev Event) (*protocol.Response, error) {
	resp, err := m.commitEvent(ev)
	if err != nil {
		return nil, err
	}
	for _, msg := range resp.Messages {
		if err := m.transport.SendPacket(msg.ChannelID, msg.Data, msg.Timeout); err != nil {
			return nil, fmt.Errorf("send packet on %s: %w", msg.ChannelID, err)
		}
	}
	if m.responseFunc != nil {
		m.responseFunc(ev, resp)
	}
	return resp, nil
}

// commitEvent handles the event and commits its store changes. Either every
// change reaches the store (and its file, for a store.Flusher) or none does.
func (m *Module) commitEvent(ev Event) (*protocol.Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.closed {
		return nil, ErrModuleClosed
	}

	branch := store.NewCacheStore(m.kv)
	accounts := store.NewAccountStore(branch)
	now := protocol.NewTimestamp(m.clock.Now())

	resp, err := m.handleChecked(accounts, ev, now)
	if err != nil {
		branch.Discard()
		m.logger.Debug(
			"event failed",
			"component", "gammquery",
			"channel_id", ev.EventChannel(),
			"event_type", ev.EventType(),
			"error", err,
		)
		return nil, err
	}
	if len(resp.Messages) > 0 && m.transport == nil {
		branch.Discard()
		return nil, ErrNoTransport
	}

	dirty := branch.Dirty()
	undo, err := branch.Commit()
	if err != nil {
		return nil, fmt.Errorf("commit event: %w", err)
	}
	if flusher, ok := m.kv.(store.Flusher); ok && dirty {
		if err := flusher.Flush(); err != nil {
			return nil, errors.Join(fmt.Errorf("flush store: %w", err), undo())
		}
	}

	m.logger.Debug(
		"event handled",
		append(
			[]any{
				"component", "gammquery",
				"channel_id", ev.EventChannel(),
				"event_type", ev.EventType(),
			},
			resp.LogArgs()...,
		)...,
	)
	return resp, nil
}

func (m *Module) handleChecked(
	accounts *store.AccountStore,
	ev Event,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	if err := m.checkTransition(accounts, ev); err != nil {
		return nil, err
	}
	return m.handle(accounts, ev, now)
}

func (m *Module) handle(
	accounts *store.AccountStore,
	ev Event,
	now protocol.Timestamp,
) (*protocol.Response, error) {
	switch e := ev.(type) {
	case ChannelOpenEvent:
		if err := m.channels.ValidateOpen(channel.OpenRequest(e)); err != nil {
			return nil, err
		}
		return protocol.NewResponse(), nil
	case ChannelConnectEvent:
		return m.channels.OnConnect(accounts, e.ChannelID)
	case ChannelCloseEvent:
		return m.channels.OnClose(accounts, e.ChannelID)
	case SpotPriceRequest:
		return m.dispatcher.SpotPrice(accounts, dispatch.SpotPriceMsg(e), now)
	case EstimateSwapRequest:
		return m.dispatcher.EstimateSwap(accounts, dispatch.EstimateSwapMsg(e), now)
	case ProbeRequest:
		return m.dispatcher.Probe(accounts, dispatch.ProbeMsg(e), now)
	case AcknowledgementEvent:
		return m.acks.OnAcknowledgment(accounts, ack.AcknowledgementEvent(e), now)
	case TimeoutEvent:
		return m.acks.OnTimeout(ack.TimeoutEvent(e)), nil
	case ReceiveEvent:
		return m.acks.OnInboundRequest(ack.ReceiveEvent(e))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

// checkTransition rejects events the channel lifecycle does not permit in the
// channel's current state. Events without a channel are left to their handlers.
func (m *Module) checkTransition(accounts *store.AccountStore, ev Event) error {
	channelID := ev.EventChannel()
	if channelID == "" {
		return nil
	}
	current, err := m.channels.State(accounts, channelID)
	if err != nil {
		return err
	}
	next, err := m.channels.Transition(current, ev.EventType())
	if err != nil {
		switch ev.EventType() {
		case channel.EventDispatch:
			return fmt.Errorf("%w: %s: %w", dispatch.ErrChannelNotFound, channelID, err)
		case channel.EventReceive:
			return fmt.Errorf("%w: %w", ack.ErrUnsupportedInboundPacket, err)
		case channel.EventOpen:
			return fmt.Errorf("%w: %s: %w", channel.ErrChannelConnected, channelID, err)
		default:
			return err
		}
	}
	m.logger.Debug(
		"channel transition",
		"component", "gammquery",
		"channel_id", channelID,
		"from", current.String(),
		"to", next.String(),
	)
	return nil
}
