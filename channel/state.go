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

import "github.com/blinklabs-io/gammquery/protocol"

// Event types driving the per-channel state machine
const (
	EventOpen     uint8 = 1
	EventConnect  uint8 = 2
	EventClose    uint8 = 3
	EventDispatch uint8 = 4
	EventAck      uint8 = 5
	EventTimeout  uint8 = 6
	EventReceive  uint8 = 7
)

var (
	StateUnconnected = protocol.NewState(1, "Unconnected")
	StateOpenPending = protocol.NewState(2, "OpenPending")
	StateConnected   = protocol.NewState(3, "Connected")
	StateClosed      = protocol.NewState(4, "Closed")
)

// StateMap is the per-channel lifecycle state machine. Connect and close are
// accepted in every state. Dispatch is only permitted once connected, while
// acknowledgements and timeouts may still arrive after a close. Inbound
// packets are not permitted in any state.
var StateMap = protocol.StateMap{
	StateUnconnected: protocol.StateMapEntry{
		Transitions: []protocol.StateTransition{
			{
				EventType: EventOpen,
				NewState:  StateOpenPending,
			},
			{
				EventType: EventConnect,
				NewState:  StateConnected,
			},
			{
				EventType: EventClose,
				NewState:  StateClosed,
			},
			{
				EventType: EventAck,
				NewState:  StateUnconnected,
			},
			{
				EventType: EventTimeout,
				NewState:  StateUnconnected,
			},
		},
	},
	StateOpenPending: protocol.StateMapEntry{
		Transitions: []protocol.StateTransition{
			{
				EventType: EventOpen,
				NewState:  StateOpenPending,
			},
			{
				EventType: EventConnect,
				NewState:  StateConnected,
			},
			{
				EventType: EventClose,
				NewState:  StateClosed,
			},
		},
	},
	StateConnected: protocol.StateMapEntry{
		Transitions: []protocol.StateTransition{
			{
				EventType: EventConnect,
				NewState:  StateConnected,
			},
			{
				EventType: EventClose,
				NewState:  StateClosed,
			},
			{
				EventType: EventDispatch,
				NewState:  StateConnected,
			},
			{
				EventType: EventAck,
				NewState:  StateConnected,
			},
			{
				EventType: EventTimeout,
				NewState:  StateConnected,
			},
		},
	},
	StateClosed: protocol.StateMapEntry{
		Transitions: []protocol.StateTransition{
			{
				EventType: EventOpen,
				NewState:  StateOpenPending,
			},
			{
				EventType: EventConnect,
				NewState:  StateConnected,
			},
			{
				EventType: EventClose,
				NewState:  StateClosed,
			},
			{
				EventType: EventAck,
				NewState:  StateClosed,
			},
			{
				EventType: EventTimeout,
				NewState:  StateClosed,
			},
		},
	},
}
