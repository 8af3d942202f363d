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
	"github.com/blinklabs-io/gammquery/ack"
	"github.com/blinklabs-io/gammquery/channel"
	"github.com/blinklabs-io/gammquery/dispatch"
)

// Event is a single unit of work for the module
type Event interface {
	// EventChannel returns the local channel the event concerns
	EventChannel() string
	// EventType returns the channel state machine event type
	EventType() uint8
}

// ChannelOpenEvent proposes a new channel
type ChannelOpenEvent channel.OpenRequest

func (e ChannelOpenEvent) EventChannel() string { return e.ChannelID }
func (e ChannelOpenEvent) EventType() uint8     { return channel.EventOpen }

// ChannelConnectEvent reports a completed handshake
type ChannelConnectEvent struct {
	ChannelID string
}

func (e ChannelConnectEvent) EventChannel() string { return e.ChannelID }
func (e ChannelConnectEvent) EventType() uint8     { return channel.EventConnect }

// ChannelCloseEvent reports a closed channel
type ChannelCloseEvent struct {
	ChannelID string
}

func (e ChannelCloseEvent) EventChannel() string { return e.ChannelID }
func (e ChannelCloseEvent) EventType() uint8     { return channel.EventClose }

// AcknowledgementEvent carries the counterparty's answer and the echoed
// original packet
type AcknowledgementEvent ack.AcknowledgementEvent

func (e AcknowledgementEvent) EventChannel() string { return e.SourceChannel }
func (e AcknowledgementEvent) EventType() uint8     { return channel.EventAck }

// TimeoutEvent reports a packet that expired unanswered
type TimeoutEvent ack.TimeoutEvent

func (e TimeoutEvent) EventChannel() string { return e.SourceChannel }
func (e TimeoutEvent) EventType() uint8     { return channel.EventTimeout }

// ReceiveEvent carries a packet sent by the counterparty. It is always rejected
type ReceiveEvent ack.ReceiveEvent

func (e ReceiveEvent) EventChannel() string { return e.DestinationChannel }
func (e ReceiveEvent) EventType() uint8     { return channel.EventReceive }

// SpotPriceRequest dispatches a spot price query
type SpotPriceRequest dispatch.SpotPriceMsg

func (e SpotPriceRequest) EventChannel() string { return e.Channel }
func (e SpotPriceRequest) EventType() uint8     { return channel.EventDispatch }

// EstimateSwapRequest dispatches a swap estimate query
type EstimateSwapRequest dispatch.EstimateSwapMsg

func (e EstimateSwapRequest) EventChannel() string { return e.Channel }
func (e EstimateSwapRequest) EventType() uint8     { return channel.EventDispatch }

// ProbeRequest dispatches a node info query
type ProbeRequest dispatch.ProbeMsg

func (e ProbeRequest) EventChannel() string { return e.Channel }
func (e ProbeRequest) EventType() uint8     { return channel.EventDispatch }
