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

package ack

import "errors"

var (
	// ErrNoAccountToUpdate is returned when a result acknowledgement arrives
	// for a channel that has no account
	ErrNoAccountToUpdate = errors.New("no account to update")
	// ErrUnsupportedInboundPacket is returned for any packet the counterparty
	// sends unsolicited. This side only ever queries.
	ErrUnsupportedInboundPacket = errors.New("unsupported inbound packet")
)
